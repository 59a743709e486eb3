package repository

import (
	"context"
	"errors"
	"time"

	"gin-event-calendar/internal/datekey"
	"gin-event-calendar/internal/model"
	apperrors "gin-event-calendar/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository 活動的儲存層。只保證單筆文件的原子性。
type EventRepository interface {
	Insert(ctx context.Context, fields model.EventFields) (string, error)
	// FindByID 找不到時回傳 ErrEventNotFound
	FindByID(ctx context.Context, id string) (*model.Event, error)
	// FindAll 依寫入順序回傳
	FindAll(ctx context.Context) ([]*model.Event, error)
	// Replace 整筆取代可變欄位；id 不存在時不做事
	Replace(ctx context.Context, id string, fields model.EventFields) error
	// Delete id 不存在時不做事
	Delete(ctx context.Context, id string) error
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, event_name, photo_url, location, description,
		to_char(date_created, 'YYYY-MM-DD'), day_chosen`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var (
		event model.Event
		id    uuid.UUID
	)
	err := row.Scan(
		&id,
		&event.EventName,
		&event.PhotoURL,
		&event.Location,
		&event.Description,
		&event.DateCreated,
		&event.DayChosen,
	)
	if err != nil {
		return nil, err
	}
	event.ID = id.String()
	return &event, nil
}

func (r *EventRepositoryImpl) Insert(ctx context.Context, fields model.EventFields) (string, error) {
	date, err := time.Parse(datekey.Layout, fields.DateCreated)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO events (id, event_name, photo_url, location, description, date_created, day_chosen)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	id := uuid.New()
	_, err = r.pool.Exec(ctx, query,
		id, fields.EventName, fields.PhotoURL, fields.Location, fields.Description, date, fields.DayChosen,
	)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id string) (*model.Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		// 不是合法 uuid 的 id 不可能存在
		return nil, apperrors.ErrEventNotFound
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	event, err := scanEvent(r.pool.QueryRow(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) FindAll(ctx context.Context) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY seq ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepositoryImpl) Replace(ctx context.Context, id string, fields model.EventFields) error {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	date, err := time.Parse(datekey.Layout, fields.DateCreated)
	if err != nil {
		return err
	}

	query := `
		UPDATE events
		SET event_name = $1, photo_url = $2, location = $3, description = $4,
			date_created = $5, day_chosen = $6, updated_at = $7
		WHERE id = $8
	`
	_, err = r.pool.Exec(ctx, query,
		fields.EventName, fields.PhotoURL, fields.Location, fields.Description,
		date, fields.DayChosen, time.Now().UTC(), eventID,
	)
	return err
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id string) error {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	_, err = r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	return err
}
