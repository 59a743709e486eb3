package mocks

import (
	"context"

	"gin-event-calendar/internal/model"

	"github.com/stretchr/testify/mock"
)

type EventServiceMock struct {
	mock.Mock
}

func NewEventServiceMock() *EventServiceMock {
	return &EventServiceMock{}
}

func (m *EventServiceMock) RenderableEventsList(ctx context.Context, year, month int) (*model.CalendarGrid, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CalendarGrid), args.Error(1)
}

func (m *EventServiceMock) MonthEvents(ctx context.Context, year, month int) ([]*model.Event, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventServiceMock) RenderableEventDetail(ctx context.Context, eventID string) (*model.EventDetail, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventDetail), args.Error(1)
}

func (m *EventServiceMock) PrefillDate(ctx context.Context, dayToken string) (string, error) {
	args := m.Called(ctx, dayToken)
	return args.String(0), args.Error(1)
}

func (m *EventServiceMock) CreateEvent(ctx context.Context, form model.EventForm) (string, error) {
	args := m.Called(ctx, form)
	return args.String(0), args.Error(1)
}

func (m *EventServiceMock) EditEvent(ctx context.Context, eventID string, form model.EventForm) error {
	args := m.Called(ctx, eventID, form)
	return args.Error(0)
}

func (m *EventServiceMock) DeleteEvent(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *EventServiceMock) AddProfile(ctx context.Context, eventID string, form model.ProfileForm) (string, error) {
	args := m.Called(ctx, eventID, form)
	return args.String(0), args.Error(1)
}

func (m *EventServiceMock) ListProfilesForEvent(ctx context.Context, eventID string) ([]*model.Profile, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}
