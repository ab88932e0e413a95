package db

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect initializes the database connection and runs migrations. The
// relational mirror exists only for the one-shot import tool; the serving
// path reads the archive from memory.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            sender_name TEXT NOT NULL,
            text TEXT NOT NULL DEFAULT '',
            timestamp BIGINT NOT NULL,
            type TEXT NOT NULL,
            is_unsent BOOLEAN DEFAULT FALSE,
            share_link TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS media (
            id SERIAL PRIMARY KEY,
            message_id INT NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
            uri TEXT NOT NULL,
            original_filename TEXT,
            file_type TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS reactions (
            id SERIAL PRIMARY KEY,
            message_id INT NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
            actor TEXT NOT NULL,
            reaction TEXT NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages (timestamp);`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Println("database migrations applied")
	return nil
}
