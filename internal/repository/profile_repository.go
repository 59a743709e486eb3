package repository

import (
	"context"
	"time"

	"gin-event-calendar/internal/datekey"
	"gin-event-calendar/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository RSVP 的儲存層
type ProfileRepository interface {
	Insert(ctx context.Context, fields model.ProfileFields) (string, error)
	// FindByEventID 依寫入順序回傳
	FindByEventID(ctx context.Context, eventID string) ([]*model.Profile, error)
	// DeleteByEventID 回傳刪除筆數
	DeleteByEventID(ctx context.Context, eventID string) (int64, error)
}

type ProfileRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &ProfileRepositoryImpl{
		pool: pool,
	}
}

func (r *ProfileRepositoryImpl) Insert(ctx context.Context, fields model.ProfileFields) (string, error) {
	eventID, err := uuid.Parse(fields.EventID)
	if err != nil {
		return "", err
	}
	date, err := time.Parse(datekey.Layout, fields.DateCreated)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO profiles (id, event_id, profile_name, number_attending, date_created, rsvp_time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	id := uuid.New()
	_, err = r.pool.Exec(ctx, query,
		id, eventID, fields.ProfileName, fields.NumberAttending, date, fields.Time,
	)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (r *ProfileRepositoryImpl) FindByEventID(ctx context.Context, eventID string) ([]*model.Profile, error) {
	profiles := make([]*model.Profile, 0)

	id, err := uuid.Parse(eventID)
	if err != nil {
		return profiles, nil
	}

	query := `
		SELECT id, event_id, profile_name, number_attending,
			to_char(date_created, 'YYYY-MM-DD'), rsvp_time
		FROM profiles
		WHERE event_id = $1
		ORDER BY seq ASC
	`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			profile          model.Profile
			profileID, evtID uuid.UUID
		)
		err := rows.Scan(
			&profileID,
			&evtID,
			&profile.ProfileName,
			&profile.NumberAttending,
			&profile.DateCreated,
			&profile.Time,
		)
		if err != nil {
			return nil, err
		}
		profile.ID = profileID.String()
		profile.EventID = evtID.String()
		profiles = append(profiles, &profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ProfileRepositoryImpl) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return 0, nil
	}
	result, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE event_id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
