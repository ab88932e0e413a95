package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"archive-service/internal/models"
)

// Raw export records as serialized on disk. Their text fields hold the
// mangled Latin-1 byte reinterpretation; conversion into models types goes
// through RepairText exactly once, so repaired and raw strings never share a
// type.
type rawExport struct {
	Participants []string     `json:"participants"`
	ThreadName   string       `json:"threadName"`
	Messages     []rawMessage `json:"messages"`
}

type rawMessage struct {
	SenderName string            `json:"senderName"`
	Text       string            `json:"text"`
	Timestamp  int64             `json:"timestamp"`
	Type       string            `json:"type"`
	Media      []models.MediaRef `json:"media"`
	Reactions  []rawReaction     `json:"reactions"`
	IsUnsent   bool              `json:"isUnsent"`
	ShareLink  string            `json:"shareLink"`
}

type rawReaction struct {
	Actor    string `json:"actor"`
	Reaction string `json:"reaction"`
}

// Loader reads the export file at most once per process and hands the same
// Archive (or the same error) to every caller.
type Loader struct {
	path string
	once sync.Once
	arch *Archive
	err  error
}

// NewLoader returns a Loader for the export at path. Nothing is read until
// the first Load call.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the export on first call and returns the resulting Archive.
// Concurrent first callers block until the one parse finishes and then all
// observe the same result. A failed load is terminal; the error is returned
// on every subsequent call.
func (l *Loader) Load() (*Archive, error) {
	l.once.Do(func() {
		l.arch, l.err = load(l.path)
	})
	return l.arch, l.err
}

func load(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load archive: %w", err)
	}

	var raw rawExport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("load archive: parse %s: %w", path, err)
	}

	thread := models.Thread{
		Participants: make([]string, len(raw.Participants)),
		ThreadName:   RepairText(raw.ThreadName),
	}
	for i, p := range raw.Participants {
		thread.Participants[i] = RepairText(p)
	}

	messages := make([]models.Message, len(raw.Messages))
	for i, rm := range raw.Messages {
		messages[i] = repairMessage(rm)
	}

	return New(thread, messages), nil
}

// repairMessage converts one raw record, running encoding repair over every
// text field. Timestamps, URIs and type tags pass through untouched.
func repairMessage(rm rawMessage) models.Message {
	msg := models.Message{
		SenderName: RepairText(rm.SenderName),
		Text:       RepairText(rm.Text),
		Timestamp:  rm.Timestamp,
		Type:       rm.Type,
		Media:      rm.Media,
		IsUnsent:   rm.IsUnsent,
		ShareLink:  rm.ShareLink,
	}
	if len(rm.Reactions) > 0 {
		msg.Reactions = make([]models.Reaction, len(rm.Reactions))
		for i, rr := range rm.Reactions {
			msg.Reactions[i] = models.Reaction{
				Actor:    RepairText(rr.Actor),
				Reaction: RepairText(rr.Reaction),
			}
		}
	}
	return msg
}
