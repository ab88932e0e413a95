package archive

import (
	"sort"
	"time"

	"archive-service/internal/models"
)

// DayMillis is the length of one UTC calendar day in milliseconds.
const DayMillis int64 = 86_400_000

// Archive is the immutable corpus of one conversation. All fields are built
// once by the loader; every method is a read over shared state and is safe
// for concurrent use. Returned slices are shared and must not be modified.
type Archive struct {
	thread models.Thread
	byTime []models.Message
	days   []models.DaySummary
}

// New builds an Archive from messages in export order. IDs are assigned from
// slice position before any sorting, so they stay stable even when the export
// is not perfectly time-ordered.
func New(thread models.Thread, messages []models.Message) *Archive {
	byTime := make([]models.Message, len(messages))
	for i := range messages {
		messages[i].ID = i
		byTime[i] = messages[i]
	}
	sort.SliceStable(byTime, func(i, j int) bool {
		return byTime[i].Timestamp < byTime[j].Timestamp
	})

	return &Archive{
		thread: thread,
		byTime: byTime,
		days:   buildDaySummaries(byTime),
	}
}

// Thread returns the export header.
func (a *Archive) Thread() models.Thread {
	return a.thread
}

// Size returns the number of messages in the corpus.
func (a *Archive) Size() int {
	return len(a.byTime)
}

// MessagesByTime returns the corpus ordered ascending by timestamp.
func (a *Archive) MessagesByTime() []models.Message {
	return a.byTime
}

// DaySummaries returns one summary per calendar day present in the corpus,
// ascending by date. The counts always add up to Size.
func (a *Archive) DaySummaries() []models.DaySummary {
	return a.days
}

// DayKey returns the UTC calendar day of a millisecond timestamp as
// YYYY-MM-DD. Bucketing works off the raw UTC instant, so the result does not
// depend on the process time zone.
func DayKey(ts int64) string {
	return time.UnixMilli(ts).UTC().Format("2006-01-02")
}

// dayLabel renders a day key like "Thursday, March 28, 2024". Go formats
// month and weekday names in English regardless of locale, which keeps the
// labels deterministic.
func dayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

func buildDaySummaries(byTime []models.Message) []models.DaySummary {
	var days []models.DaySummary
	for _, m := range byTime {
		key := DayKey(m.Timestamp)
		if n := len(days); n > 0 && days[n-1].Date == key {
			days[n-1].Count++
			continue
		}
		days = append(days, models.DaySummary{
			Date:  key,
			Label: dayLabel(key),
			Count: 1,
		})
	}
	return days
}
