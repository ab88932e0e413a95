package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"archive-service/internal/archive"
	"archive-service/internal/models"
)

var (
	// ErrInvalidDate reports an unparseable from/to/day value. Distinct from
	// an empty result so callers can tell "bad filter" from "nothing matched".
	ErrInvalidDate = errors.New("invalid date")
	// ErrEmptyQuery reports a missing or whitespace-only search term.
	ErrEmptyQuery = errors.New("empty search query")
	// ErrInvalidPage reports a negative page or a page size below one.
	ErrInvalidPage = errors.New("invalid page parameters")
)

// SearchLimit caps the number of search results returned per query. Matches
// beyond the cap are truncated, never an error.
const SearchLimit = 200

// MessageRepository answers read queries over the archived conversation.
type MessageRepository interface {
	Paginate(ctx context.Context, page, pageSize int, from, to string) (models.Page, error)
	Search(ctx context.Context, query, from, to string) ([]models.Message, int, error)
	ByDate(ctx context.Context, date string) ([]models.Message, error)
	DaySummaries(ctx context.Context) ([]models.DaySummary, error)
	Thread(ctx context.Context) (models.Thread, error)
}

// ArchiveRepo serves queries from the in-memory corpus. Every method is a
// synchronous scan over immutable data, so the repo needs no locking and is
// safe for any number of concurrent readers.
type ArchiveRepo struct {
	arch *archive.Archive
}

// NewArchiveRepo constructs an ArchiveRepo over a loaded archive.
func NewArchiveRepo(arch *archive.Archive) *ArchiveRepo {
	return &ArchiveRepo{arch: arch}
}

// Paginate returns the requested page of the date-filtered corpus, ascending
// by timestamp, together with the filtered total. Pages past the end yield an
// empty slice with the total intact.
func (r *ArchiveRepo) Paginate(ctx context.Context, page, pageSize int, from, to string) (models.Page, error) {
	if page < 0 || pageSize < 1 {
		return models.Page{}, fmt.Errorf("%w: page=%d pageSize=%d", ErrInvalidPage, page, pageSize)
	}

	window, err := r.window(from, to)
	if err != nil {
		return models.Page{}, err
	}

	result := models.Page{
		Messages: []models.Message{},
		Total:    len(window),
		Page:     page,
		PageSize: pageSize,
	}

	start := page * pageSize
	if start < len(window) {
		end := start + pageSize
		if end > len(window) {
			end = len(window)
		}
		result.Messages = window[start:end]
	}
	return result, nil
}

// Search returns up to SearchLimit date-filtered messages whose text contains
// the query as a case-insensitive substring, ascending by timestamp, plus the
// total number of matches before truncation. Only message text is searched;
// sender names, reactions and media URIs never match.
func (r *ArchiveRepo) Search(ctx context.Context, query, from, to string) ([]models.Message, int, error) {
	if strings.TrimSpace(query) == "" {
		return nil, 0, ErrEmptyQuery
	}

	window, err := r.window(from, to)
	if err != nil {
		return nil, 0, err
	}

	q := strings.ToLower(query)
	results := []models.Message{}
	total := 0
	for _, m := range window {
		if m.Text == "" || !strings.Contains(strings.ToLower(m.Text), q) {
			continue
		}
		total++
		if len(results) < SearchLimit {
			results = append(results, m)
		}
	}
	return results, total, nil
}

// ByDate returns every message on the given UTC calendar day, ascending by
// timestamp.
func (r *ArchiveRepo) ByDate(ctx context.Context, date string) ([]models.Message, error) {
	start, err := dayStart(date)
	if err != nil {
		return nil, err
	}
	return r.slice(start, start+archive.DayMillis), nil
}

// DaySummaries returns the per-day index of the corpus.
func (r *ArchiveRepo) DaySummaries(ctx context.Context) ([]models.DaySummary, error) {
	return r.arch.DaySummaries(), nil
}

// Thread returns the export header.
func (r *ArchiveRepo) Thread(ctx context.Context) (models.Thread, error) {
	return r.arch.Thread(), nil
}

// window resolves the optional from/to bounds and returns the matching
// subslice of the time-ordered corpus. from includes the whole of its day and
// to is inclusive through the end of its day. An inverted range yields an
// empty window, not an error.
func (r *ArchiveRepo) window(from, to string) ([]models.Message, error) {
	msgs := r.arch.MessagesByTime()
	lo := 0
	hi := len(msgs)

	if from != "" {
		start, err := dayStart(from)
		if err != nil {
			return nil, err
		}
		lo = sort.Search(len(msgs), func(i int) bool { return msgs[i].Timestamp >= start })
	}
	if to != "" {
		start, err := dayStart(to)
		if err != nil {
			return nil, err
		}
		end := start + archive.DayMillis
		hi = sort.Search(len(msgs), func(i int) bool { return msgs[i].Timestamp >= end })
	}
	if lo > hi {
		return msgs[:0], nil
	}
	return msgs[lo:hi], nil
}

func (r *ArchiveRepo) slice(min, max int64) []models.Message {
	msgs := r.arch.MessagesByTime()
	lo := sort.Search(len(msgs), func(i int) bool { return msgs[i].Timestamp >= min })
	hi := sort.Search(len(msgs), func(i int) bool { return msgs[i].Timestamp >= max })
	return msgs[lo:hi]
}

// dayStart parses a YYYY-MM-DD day and returns its UTC midnight in
// milliseconds. Malformed input surfaces ErrInvalidDate instead of silently
// matching nothing.
func dayStart(date string) (int64, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t.UnixMilli(), nil
}
