// Package testutil 連線到本機測試用 Postgres / Redis（見 config.LoadTestConfig）
package testutil

import (
	"context"
	"fmt"
	"log"

	"gin-event-calendar/config"
	"gin-event-calendar/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Setup 連線並建立 schema，回傳的 cleanup 會關閉兩個連線
func Setup() (*pgxpool.Pool, *redis.Client, func(), error) {
	cfg := config.LoadTestConfig()
	ctx := context.Background()

	testDB, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	if err := database.Migrate(ctx, testDB); err != nil {
		testDB.Close()
		return nil, nil, nil, fmt.Errorf("failed to migrate test database: %w", err)
	}
	log.Println("Test database connected successfully")

	testRdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		testDB.Close()
		return nil, nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	log.Println("Test redis connected successfully")

	cleanup := func() {
		testDB.Close()
		testRdb.Close()
	}
	return testDB, testRdb, cleanup, nil
}

// Reset 清空所有資料表與目前的 Redis DB
func Reset(ctx context.Context, db *pgxpool.Pool, rdb *redis.Client) error {
	if _, err := db.Exec(ctx, "TRUNCATE profiles, events RESTART IDENTITY CASCADE"); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return rdb.FlushDB(ctx).Err()
}
