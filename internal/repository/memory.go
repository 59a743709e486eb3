package repository

import (
	"context"
	"sync"

	"gin-event-calendar/internal/model"
	apperrors "gin-event-calendar/pkg/app_errors"

	"github.com/google/uuid"
)

// MemoryEventRepository 行程內的 EventRepository，單元測試與本機試跑用
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events []*model.Event
}

func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{}
}

func (r *MemoryEventRepository) Insert(ctx context.Context, fields model.EventFields) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event := &model.Event{ID: uuid.New().String()}
	applyEventFields(event, fields)
	r.events = append(r.events, event)
	return event.ID, nil
}

func (r *MemoryEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.events {
		if e.ID == id {
			clone := *e
			return &clone, nil
		}
	}
	return nil, apperrors.ErrEventNotFound
}

func (r *MemoryEventRepository) FindAll(ctx context.Context) ([]*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*model.Event, 0, len(r.events))
	for _, e := range r.events {
		clone := *e
		events = append(events, &clone)
	}
	return events, nil
}

func (r *MemoryEventRepository) Replace(ctx context.Context, id string, fields model.EventFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.events {
		if e.ID == id {
			applyEventFields(e, fields)
			return nil
		}
	}
	return nil
}

func (r *MemoryEventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.events {
		if e.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return nil
}

func applyEventFields(e *model.Event, fields model.EventFields) {
	e.EventName = fields.EventName
	e.PhotoURL = fields.PhotoURL
	e.Location = fields.Location
	e.Description = fields.Description
	e.DateCreated = fields.DateCreated
	e.DayChosen = fields.DayChosen
}

// MemoryProfileRepository 行程內的 ProfileRepository
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles []*model.Profile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{}
}

func (r *MemoryProfileRepository) Insert(ctx context.Context, fields model.ProfileFields) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile := &model.Profile{
		ID:              uuid.New().String(),
		EventID:         fields.EventID,
		ProfileName:     fields.ProfileName,
		NumberAttending: fields.NumberAttending,
		DateCreated:     fields.DateCreated,
		Time:            fields.Time,
	}
	r.profiles = append(r.profiles, profile)
	return profile.ID, nil
}

func (r *MemoryProfileRepository) FindByEventID(ctx context.Context, eventID string) ([]*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*model.Profile, 0)
	for _, p := range r.profiles {
		if p.EventID == eventID {
			clone := *p
			profiles = append(profiles, &clone)
		}
	}
	return profiles, nil
}

func (r *MemoryProfileRepository) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.profiles[:0]
	var removed int64
	for _, p := range r.profiles {
		if p.EventID == eventID {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	r.profiles = kept
	return removed, nil
}

// Count 目前 profile 總數，含參照已刪除活動的孤兒資料
func (r *MemoryProfileRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}
