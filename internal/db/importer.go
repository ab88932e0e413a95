package db

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/jmoiron/sqlx"

	"archive-service/internal/archive"
	"archive-service/internal/models"
)

const importBatchSize = 100

// Import mirrors a loaded archive into the messages/media/reactions tables.
// Text fields are already repaired by the loader, so rows land correctly
// encoded. A populated messages table makes Import a no-op; truncate first to
// re-import.
func Import(ctx context.Context, db *sqlx.DB, arch *archive.Archive) error {
	var existing int
	if err := db.GetContext(ctx, &existing, `SELECT COUNT(*) FROM messages`); err != nil {
		return fmt.Errorf("count messages: %w", err)
	}
	if existing > 0 {
		log.Printf("database already has %d messages, skipping import", existing)
		log.Printf("to re-import run: TRUNCATE messages, media, reactions RESTART IDENTITY CASCADE;")
		return nil
	}

	msgs := arch.MessagesByTime()
	for start := 0; start < len(msgs); start += importBatchSize {
		end := start + importBatchSize
		if end > len(msgs) {
			end = len(msgs)
		}
		if err := importBatch(ctx, db, msgs[start:end]); err != nil {
			return fmt.Errorf("import batch at %d: %w", start, err)
		}
		log.Printf("imported %d/%d messages", end, len(msgs))
	}
	return nil
}

func importBatch(ctx context.Context, db *sqlx.DB, batch []models.Message) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, msg := range batch {
		var messageID int
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO messages (sender_name, text, timestamp, type, is_unsent, share_link)
             VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
             RETURNING id`,
			msg.SenderName, msg.Text, msg.Timestamp, msg.Type, msg.IsUnsent, msg.ShareLink,
		).Scan(&messageID)
		if err != nil {
			return err
		}

		for _, m := range msg.Media {
			filename := path.Base(m.URI)
			ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO media (message_id, uri, original_filename, file_type) VALUES ($1, $2, $3, $4)`,
				messageID, m.URI, filename, ext,
			); err != nil {
				return err
			}
		}

		for _, r := range msg.Reactions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO reactions (message_id, actor, reaction) VALUES ($1, $2, $3)`,
				messageID, r.Actor, r.Reaction,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
