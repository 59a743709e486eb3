package database

import (
	"context"
	"fmt"

	"gin-event-calendar/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// profiles.event_id 的外鍵不帶 ON DELETE CASCADE：
// 刪除順序由 service 控制（先 profiles 後 event）
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS events (
		seq          BIGSERIAL UNIQUE,
		id           UUID PRIMARY KEY,
		event_name   TEXT NOT NULL,
		photo_url    TEXT NOT NULL DEFAULT '',
		location     TEXT NOT NULL DEFAULT '',
		description  TEXT NOT NULL DEFAULT '',
		date_created DATE NOT NULL,
		day_chosen   SMALLINT NOT NULL CHECK (day_chosen BETWEEN 1 AND 31),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		seq              BIGSERIAL UNIQUE,
		id               UUID PRIMARY KEY,
		event_id         UUID NOT NULL REFERENCES events(id),
		profile_name     TEXT NOT NULL,
		number_attending INTEGER NOT NULL CHECK (number_attending >= 0),
		date_created     DATE NOT NULL,
		rsvp_time        TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_event_id ON profiles (event_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_date_created ON events (date_created)`,
}

// Migrate 建立 events / profiles 資料表，可重複執行
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	log := logger.WithComponent("database")
	for i, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	log.Info("schema up to date", zap.Int("statements", len(schemaStatements)))
	return nil
}
