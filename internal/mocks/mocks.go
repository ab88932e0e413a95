package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"archive-service/internal/models"
)

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Paginate(ctx context.Context, page, pageSize int, from, to string) (models.Page, error) {
	args := m.Called(ctx, page, pageSize, from, to)
	var result models.Page
	if val := args.Get(0); val != nil {
		result = val.(models.Page)
	}
	return result, args.Error(1)
}

func (m *MessageRepositoryMock) Search(ctx context.Context, query, from, to string) ([]models.Message, int, error) {
	args := m.Called(ctx, query, from, to)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Int(1), args.Error(2)
}

func (m *MessageRepositoryMock) ByDate(ctx context.Context, date string) ([]models.Message, error) {
	args := m.Called(ctx, date)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) DaySummaries(ctx context.Context) ([]models.DaySummary, error) {
	args := m.Called(ctx)
	var days []models.DaySummary
	if val := args.Get(0); val != nil {
		days = val.([]models.DaySummary)
	}
	return days, args.Error(1)
}

func (m *MessageRepositoryMock) Thread(ctx context.Context) (models.Thread, error) {
	args := m.Called(ctx)
	var thread models.Thread
	if val := args.Get(0); val != nil {
		thread = val.(models.Thread)
	}
	return thread, args.Error(1)
}

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Resolve(ctx context.Context, uri string) (string, error) {
	args := m.Called(ctx, uri)
	return args.String(0), args.Error(1)
}
