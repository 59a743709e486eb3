package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gin-event-calendar/internal/cache"
	"gin-event-calendar/internal/calendar"
	"gin-event-calendar/internal/datekey"
	"gin-event-calendar/internal/model"
	"gin-event-calendar/internal/repository"
	apperrors "gin-event-calendar/pkg/app_errors"
	"gin-event-calendar/pkg/logger"

	"go.uber.org/zap"
)

type EventService interface {
	// RenderableEventsList 單月月曆，只含 date_created 落在該月的活動
	RenderableEventsList(ctx context.Context, year, month int) (*model.CalendarGrid, error)
	// MonthEvents 該月活動，依寫入順序
	MonthEvents(ctx context.Context, year, month int) ([]*model.Event, error)
	RenderableEventDetail(ctx context.Context, eventID string) (*model.EventDetail, error)
	// PrefillDate 建立表單用：以當月加上路由上的日組出預設日期
	PrefillDate(ctx context.Context, dayToken string) (string, error)
	CreateEvent(ctx context.Context, form model.EventForm) (string, error)
	EditEvent(ctx context.Context, eventID string, form model.EventForm) error
	// DeleteEvent 先刪 profiles 再刪 event；event 不存在時不報錯
	DeleteEvent(ctx context.Context, eventID string) error
	AddProfile(ctx context.Context, eventID string, form model.ProfileForm) (string, error)
	ListProfilesForEvent(ctx context.Context, eventID string) ([]*model.Profile, error)
}

type EventServiceImpl struct {
	eventRepo   repository.EventRepository
	profileRepo repository.ProfileRepository
	listCache   cache.EventListCache
	now         func() time.Time
}

// NewEventService listCache 與 now 可為 nil，分別代表不使用快取與使用 time.Now
func NewEventService(
	eventRepo repository.EventRepository,
	profileRepo repository.ProfileRepository,
	listCache cache.EventListCache,
	now func() time.Time,
) EventService {
	if listCache == nil {
		listCache = cache.NopEventListCache{}
	}
	if now == nil {
		now = time.Now
	}
	return &EventServiceImpl{
		eventRepo:   eventRepo,
		profileRepo: profileRepo,
		listCache:   listCache,
		now:         now,
	}
}

func (s *EventServiceImpl) RenderableEventsList(ctx context.Context, year, month int) (*model.CalendarGrid, error) {
	events, err := s.MonthEvents(ctx, year, month)
	if err != nil {
		return nil, err
	}

	grid := calendar.Build(year, time.Month(month), events)
	if grid.OrphanedDayBucket > 0 {
		logger.WithComponent("service").Warn("events skipped by calendar grid",
			zap.Int("year", year),
			zap.Int("month", month),
			zap.Int("orphaned", grid.OrphanedDayBucket),
		)
	}
	return grid, nil
}

func (s *EventServiceImpl) MonthEvents(ctx context.Context, year, month int) ([]*model.Event, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}

	all, err := s.allEvents(ctx)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	events := make([]*model.Event, 0)
	for _, e := range all {
		if strings.HasPrefix(e.DateCreated, prefix) {
			events = append(events, e)
		}
	}
	return events, nil
}

// allEvents 先讀快取，沒命中再讀 store 並回填。
// 世代要在 FindAll 之前取得，期間有寫入時回填會被快取略過。
func (s *EventServiceImpl) allEvents(ctx context.Context) ([]*model.Event, error) {
	log := logger.WithComponent("service")

	events, ok, err := s.listCache.Get(ctx)
	if err != nil {
		log.Warn("event list cache read failed", zap.Error(err))
	}
	if ok {
		return events, nil
	}

	gen, genErr := s.listCache.Generation(ctx)
	if genErr != nil {
		log.Warn("event list cache generation read failed", zap.Error(genErr))
	}

	events, err = s.eventRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.StoreUnavailable("find all events", err)
	}
	if genErr == nil {
		if err := s.listCache.Set(ctx, gen, events); err != nil {
			log.Warn("event list cache write failed", zap.Error(err))
		}
	}
	return events, nil
}

func (s *EventServiceImpl) RenderableEventDetail(ctx context.Context, eventID string) (*model.EventDetail, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	profiles, err := s.ListProfilesForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &model.EventDetail{Event: event, Profiles: profiles}, nil
}

func (s *EventServiceImpl) PrefillDate(ctx context.Context, dayToken string) (string, error) {
	today := s.now()
	date, err := datekey.DayFromRouteParam(dayToken, today.Month(), today.Year())
	if err != nil {
		verr := apperrors.NewValidationError()
		verr.Add("day", err.Error(), apperrors.ErrInvalidDay)
		return "", verr
	}
	return date, nil
}

func (s *EventServiceImpl) CreateEvent(ctx context.Context, form model.EventForm) (string, error) {
	fields, err := validateEventForm(form)
	if err != nil {
		return "", err
	}

	id, err := s.eventRepo.Insert(ctx, fields)
	if err != nil {
		return "", apperrors.StoreUnavailable("insert event", err)
	}
	s.invalidateList(ctx)

	logger.WithComponent("service").Info("event created",
		zap.String("event_id", id),
		zap.String("date_created", fields.DateCreated),
	)
	return id, nil
}

func (s *EventServiceImpl) EditEvent(ctx context.Context, eventID string, form model.EventForm) error {
	if _, err := s.findEvent(ctx, eventID); err != nil {
		return err
	}

	fields, err := validateEventForm(form)
	if err != nil {
		return err
	}

	if err := s.eventRepo.Replace(ctx, eventID, fields); err != nil {
		return apperrors.StoreUnavailable("replace event", err)
	}
	s.invalidateList(ctx)

	logger.WithComponent("service").Info("event replaced", zap.String("event_id", eventID))
	return nil
}

func (s *EventServiceImpl) DeleteEvent(ctx context.Context, eventID string) error {
	log := logger.WithComponent("service").With(zap.String("event_id", eventID))

	// 1. 先刪 profiles：失敗時 event 仍完整存在
	removed, err := s.profileRepo.DeleteByEventID(ctx, eventID)
	if err != nil {
		return apperrors.StoreUnavailable("delete profiles", err)
	}

	// 2. 再刪 event：失敗時只會留下「event 在、profiles 已刪」的狀態
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		log.Error("event delete failed after profiles were removed",
			zap.Int64("profiles_removed", removed),
			zap.Error(err),
		)
		return apperrors.StoreUnavailable("delete event", err)
	}
	s.invalidateList(ctx)

	log.Info("event deleted", zap.Int64("profiles_removed", removed))
	return nil
}

func (s *EventServiceImpl) AddProfile(ctx context.Context, eventID string, form model.ProfileForm) (string, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return "", err
	}

	fields, err := s.validateProfileForm(form)
	if err != nil {
		return "", err
	}
	// event_id 一律取自已存在的 event
	fields.EventID = event.ID

	id, err := s.profileRepo.Insert(ctx, fields)
	if err != nil {
		return "", apperrors.StoreUnavailable("insert profile", err)
	}

	logger.WithComponent("service").Info("profile added",
		zap.String("event_id", event.ID),
		zap.String("profile_id", id),
	)
	return id, nil
}

func (s *EventServiceImpl) ListProfilesForEvent(ctx context.Context, eventID string) ([]*model.Profile, error) {
	profiles, err := s.profileRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, apperrors.StoreUnavailable("find profiles", err)
	}
	if profiles == nil {
		profiles = []*model.Profile{}
	}
	return profiles, nil
}

func (s *EventServiceImpl) findEvent(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.StoreUnavailable("find event", err)
	}
	return event, nil
}

func (s *EventServiceImpl) invalidateList(ctx context.Context) {
	// 寫入已成功，快取清除失敗只記錄，等 TTL 到期
	if err := s.listCache.Invalidate(ctx); err != nil {
		logger.WithComponent("service").Warn("event list cache invalidate failed", zap.Error(err))
	}
}

func validateYearMonth(year, month int) error {
	verr := apperrors.NewValidationError()
	if year < 1 || year > 9999 {
		verr.Add("year", "must be between 1 and 9999", nil)
	}
	if month < 1 || month > 12 {
		verr.Add("month", "must be between 1 and 12", nil)
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

func validateEventForm(form model.EventForm) (model.EventFields, error) {
	verr := apperrors.NewValidationError()

	name := strings.TrimSpace(form.EventName)
	if name == "" {
		verr.Add("event_name", "is required", nil)
	}

	key, err := datekey.Normalize(strings.TrimSpace(form.DateCreated))
	if err != nil {
		verr.Add("date_created", "must be a valid YYYY-MM-DD date", apperrors.ErrInvalidDateFormat)
	}

	if verr.HasErrors() {
		return model.EventFields{}, verr
	}
	return model.EventFields{
		EventName:   name,
		PhotoURL:    strings.TrimSpace(form.PhotoURL),
		Location:    strings.TrimSpace(form.Location),
		Description: form.Description,
		DateCreated: key.ISODate,
		DayChosen:   key.DayOfMonth,
	}, nil
}

func (s *EventServiceImpl) validateProfileForm(form model.ProfileForm) (model.ProfileFields, error) {
	verr := apperrors.NewValidationError()
	now := s.now()

	name := strings.TrimSpace(form.ProfileName)
	if name == "" {
		verr.Add("profile_name", "is required", nil)
	}

	// number_attending 欄位是 INTEGER，超過 int32 交給 store 會變成 500
	attending, err := strconv.ParseInt(strings.TrimSpace(form.NumberAttending), 10, 32)
	if err != nil || attending < 0 {
		verr.Add("number_attending", "must be an integer between 0 and 2147483647", nil)
	}

	date := now.Format(datekey.Layout)
	if raw := strings.TrimSpace(form.DateCreated); raw != "" {
		key, err := datekey.Normalize(raw)
		if err != nil {
			verr.Add("date_created", "must be a valid YYYY-MM-DD date", apperrors.ErrInvalidDateFormat)
		}
		date = key.ISODate
	}

	clock := strings.TrimSpace(form.Time)
	if clock == "" {
		clock = now.Format("15:04")
	}

	if verr.HasErrors() {
		return model.ProfileFields{}, verr
	}
	return model.ProfileFields{
		ProfileName:     name,
		NumberAttending: int(attending),
		DateCreated:     date,
		Time:            clock,
	}, nil
}
