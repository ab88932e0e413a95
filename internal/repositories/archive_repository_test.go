package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archive-service/internal/archive"
	"archive-service/internal/models"
)

func fixtureRepo(t *testing.T) *ArchiveRepo {
	t.Helper()
	msgs := []models.Message{
		{SenderName: "Maria", Text: "hello there", Timestamp: ts(2024, 3, 28, 10), Type: models.TypeText},
		{SenderName: "José", Text: "HELLO back", Timestamp: ts(2024, 3, 28, 22), Type: models.TypeText},
		{SenderName: "Maria", Text: "", Timestamp: ts(2024, 3, 29, 8), Type: models.TypeMedia, Media: []models.MediaRef{{URI: "./media/a.jpeg"}}},
		{SenderName: "José", Text: "see you at hello fest", Timestamp: ts(2024, 3, 29, 9), Type: models.TypeText},
		{SenderName: "Maria", Text: "bye", Timestamp: ts(2024, 4, 2, 12), Type: models.TypeText},
	}
	arch := archive.New(models.Thread{Participants: []string{"Maria", "José"}}, msgs)
	return NewArchiveRepo(arch)
}

func ts(year int, month time.Month, day, hour int) int64 {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC).UnixMilli()
}

func TestPaginateSlicesAndTotals(t *testing.T) {
	repo := fixtureRepo(t)
	ctx := context.Background()

	page0, err := repo.Paginate(ctx, 0, 2, "", "")
	require.NoError(t, err)
	assert.Equal(t, 5, page0.Total)
	require.Len(t, page0.Messages, 2)
	assert.Equal(t, "hello there", page0.Messages[0].Text)

	page2, err := repo.Paginate(ctx, 2, 2, "", "")
	require.NoError(t, err)
	require.Len(t, page2.Messages, 1)
	assert.Equal(t, "bye", page2.Messages[0].Text)

	beyond, err := repo.Paginate(ctx, 9, 2, "", "")
	require.NoError(t, err)
	assert.Empty(t, beyond.Messages)
	assert.Equal(t, 5, beyond.Total)
}

func TestPaginatePagesReassembleSequence(t *testing.T) {
	repo := fixtureRepo(t)
	ctx := context.Background()

	var combined []models.Message
	for page := 0; ; page++ {
		result, err := repo.Paginate(ctx, page, 2, "", "")
		require.NoError(t, err)
		if len(result.Messages) == 0 {
			break
		}
		combined = append(combined, result.Messages...)
	}

	all, err := repo.Paginate(ctx, 0, 100, "", "")
	require.NoError(t, err)
	assert.Equal(t, all.Messages, combined)
}

func TestPaginateDateFilter(t *testing.T) {
	repo := fixtureRepo(t)
	ctx := context.Background()

	result, err := repo.Paginate(ctx, 0, 50, "2024-03-29", "2024-03-29")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	for _, m := range result.Messages {
		assert.Equal(t, "2024-03-29", archive.DayKey(m.Timestamp))
	}

	// to is inclusive through the end of its day.
	result, err = repo.Paginate(ctx, 0, 50, "", "2024-03-28")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}

func TestPaginateInvertedRangeYieldsNothing(t *testing.T) {
	repo := fixtureRepo(t)

	result, err := repo.Paginate(context.Background(), 0, 50, "2024-04-01", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Messages)
}

func TestPaginateRejectsMalformedDate(t *testing.T) {
	repo := fixtureRepo(t)

	_, err := repo.Paginate(context.Background(), 0, 50, "not-a-date", "")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = repo.Paginate(context.Background(), 0, 50, "", "2024-13-41")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestPaginateRejectsBadPageParams(t *testing.T) {
	repo := fixtureRepo(t)

	_, err := repo.Paginate(context.Background(), -1, 10, "", "")
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = repo.Paginate(context.Background(), 0, 0, "", "")
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestSearchCaseInsensitiveTextOnly(t *testing.T) {
	repo := fixtureRepo(t)

	results, total, err := repo.Search(context.Background(), "hello", "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, results, 3)
	// Ascending by timestamp, unranked.
	assert.Equal(t, "hello there", results[0].Text)
	assert.Equal(t, "HELLO back", results[1].Text)
	assert.Equal(t, "see you at hello fest", results[2].Text)

	// Sender names are not searched.
	_, total, err = repo.Search(context.Background(), "José", "", "")
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestSearchHonorsDateFilter(t *testing.T) {
	repo := fixtureRepo(t)

	results, total, err := repo.Search(context.Background(), "hello", "2024-03-29", "")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "see you at hello fest", results[0].Text)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	repo := fixtureRepo(t)

	_, _, err := repo.Search(context.Background(), "", "", "")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, _, err = repo.Search(context.Background(), "   ", "", "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchTruncatesAtLimit(t *testing.T) {
	msgs := make([]models.Message, 0, SearchLimit+40)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < SearchLimit+40; i++ {
		msgs = append(msgs, models.Message{
			Text:      fmt.Sprintf("ping %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute).UnixMilli(),
			Type:      models.TypeText,
		})
	}
	repo := NewArchiveRepo(archive.New(models.Thread{}, msgs))

	results, total, err := repo.Search(context.Background(), "ping", "", "")
	require.NoError(t, err)
	assert.Equal(t, SearchLimit+40, total)
	assert.Len(t, results, SearchLimit)
}

func TestByDate(t *testing.T) {
	repo := fixtureRepo(t)

	msgs, err := repo.ByDate(context.Background(), "2024-03-28")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.True(t, msgs[0].Timestamp <= msgs[1].Timestamp)

	empty, err := repo.ByDate(context.Background(), "2024-03-30")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = repo.ByDate(context.Background(), "soon")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDaySummariesMatchCorpus(t *testing.T) {
	repo := fixtureRepo(t)

	days, err := repo.DaySummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, "2024-03-28", days[0].Date)
	assert.Equal(t, 2, days[0].Count)

	total := 0
	for _, d := range days {
		total += d.Count
	}
	assert.Equal(t, 5, total)
}

func TestThread(t *testing.T) {
	repo := fixtureRepo(t)

	thread, err := repo.Thread(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Maria", "José"}, thread.Participants)
}
