package handler

import (
	"errors"
	"net/http"
	"time"

	"gin-event-calendar/internal/export"
	"gin-event-calendar/internal/model"
	"gin-event-calendar/internal/service"
	apperrors "gin-event-calendar/pkg/app_errors"
	"gin-event-calendar/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
	now     func() time.Time
}

func NewEventHandler(service service.EventService, now func() time.Time) *EventHandler {
	if now == nil {
		now = time.Now
	}
	return &EventHandler{service: service, now: now}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("calendar", h.Calendar)
		router.GET("calendar.ics", h.CalendarICS)
		router.GET("events/new/:day", h.NewEventForm)
		router.POST("events", h.Create)
		router.GET("events/:id", h.Detail)
		router.PUT("events/:id", h.Edit)
		router.DELETE("events/:id", h.Delete)
		router.POST("events/:id/profiles", h.AddProfile)
		router.GET("events/:id/profiles", h.ListProfiles)
	}
}

// CalendarQuery 未指定年月時使用今天
type CalendarQuery struct {
	Year  *int `form:"year"`
	Month *int `form:"month"`
}

func (h *EventHandler) yearMonth(c *gin.Context) (int, int, bool) {
	var q CalendarQuery
	if err := BindQuery(c, &q); err != nil {
		return 0, 0, false
	}
	today := h.now()
	year, month := today.Year(), int(today.Month())
	if q.Year != nil {
		year = *q.Year
	}
	if q.Month != nil {
		month = *q.Month
	}
	return year, month, true
}

func (h *EventHandler) Calendar(c *gin.Context) {
	year, month, ok := h.yearMonth(c)
	if !ok {
		return
	}
	grid, err := h.service.RenderableEventsList(c, year, month)
	if err != nil {
		h.handleError(c, err, "Calendar")
		return
	}
	c.JSON(http.StatusOK, grid)
}

func (h *EventHandler) CalendarICS(c *gin.Context) {
	year, month, ok := h.yearMonth(c)
	if !ok {
		return
	}
	events, err := h.service.MonthEvents(c, year, month)
	if err != nil {
		h.handleError(c, err, "CalendarICS")
		return
	}
	body, skipped := export.MonthCalendar(year, month, events, h.now())
	if skipped > 0 {
		logger.WithComponent("handler").Warn("events skipped in ics export", zap.Int("skipped", skipped))
	}
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func (h *EventHandler) NewEventForm(c *gin.Context) {
	date, err := h.service.PrefillDate(c, c.Param("day"))
	if err != nil {
		h.handleError(c, err, "NewEventForm")
		return
	}
	c.JSON(http.StatusOK, model.EventForm{DateCreated: date})
}

func (h *EventHandler) Create(c *gin.Context) {
	var form model.EventForm
	if err := BindForm(c, &form); err != nil {
		return
	}
	id, err := h.service.CreateEvent(c, form)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *EventHandler) Detail(c *gin.Context) {
	detail, err := h.service.RenderableEventDetail(c, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "Detail")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *EventHandler) Edit(c *gin.Context) {
	var form model.EventForm
	if err := BindForm(c, &form); err != nil {
		return
	}
	if err := h.service.EditEvent(c, c.Param("id"), form); err != nil {
		h.handleError(c, err, "Edit")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteEvent(c, c.Param("id")); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EventHandler) AddProfile(c *gin.Context) {
	var form model.ProfileForm
	if err := BindForm(c, &form); err != nil {
		return
	}
	id, err := h.service.AddProfile(c, c.Param("id"), form)
	if err != nil {
		h.handleError(c, err, "AddProfile")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *EventHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.service.ListProfilesForEvent(c, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "ListProfiles")
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	if verr, ok := apperrors.AsValidationError(err); ok {
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": verr.FieldErrors})
		return
	}
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		log.Error("Store unavailable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
