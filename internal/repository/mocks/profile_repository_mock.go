package mocks

import (
	"context"

	"gin-event-calendar/internal/model"

	"github.com/stretchr/testify/mock"
)

type ProfileRepositoryMock struct {
	mock.Mock
}

func NewProfileRepositoryMock() *ProfileRepositoryMock {
	return &ProfileRepositoryMock{}
}

func (m *ProfileRepositoryMock) Insert(ctx context.Context, fields model.ProfileFields) (string, error) {
	args := m.Called(ctx, fields)
	return args.String(0), args.Error(1)
}

func (m *ProfileRepositoryMock) FindByEventID(ctx context.Context, eventID string) ([]*model.Profile, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}

func (m *ProfileRepositoryMock) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}
