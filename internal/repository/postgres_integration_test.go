//go:build integration

package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"gin-event-calendar/internal/database"
	"gin-event-calendar/internal/model"
	"gin-event-calendar/internal/repository"
	apperrors "gin-event-calendar/pkg/app_errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Failed to get connection string: %v", err)
	}

	testDB, err = database.Connect(ctx, connStr)
	if err != nil {
		log.Fatalf("Failed to initialize test database: %v", err)
	}
	if err := database.Migrate(ctx, testDB); err != nil {
		log.Fatalf("Failed to migrate test database: %v", err)
	}
	log.Println("Test database connected successfully")

	code := m.Run()

	testDB.Close()
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate container: %v", err)
	}
	os.Exit(code)
}

func setupTestWithTruncate(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(context.Background(), "TRUNCATE profiles, events RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func TestEventRepository_Postgres(t *testing.T) {
	repo := repository.NewEventRepository(testDB)
	ctx := context.Background()

	t.Run("Insert and FindByID", func(t *testing.T) {
		setupTestWithTruncate(t)

		id, err := repo.Insert(ctx, model.EventFields{
			EventName: "Car Meet", PhotoURL: "car.png", Location: "Lot", Description: "Bring snacks",
			DateCreated: "2025-03-15", DayChosen: 15,
		})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, &model.Event{
			ID: id, EventName: "Car Meet", PhotoURL: "car.png", Location: "Lot", Description: "Bring snacks",
			DateCreated: "2025-03-15", DayChosen: 15,
		}, found)
	})

	t.Run("FindByID - NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)

		_, err := repo.FindByID(ctx, "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11")
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

		_, err = repo.FindByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})

	t.Run("FindAll keeps insertion order", func(t *testing.T) {
		setupTestWithTruncate(t)

		var ids []string
		for _, name := range []string{"A", "B", "C"} {
			id, err := repo.Insert(ctx, model.EventFields{EventName: name, DateCreated: "2025-01-01", DayChosen: 1})
			require.NoError(t, err)
			ids = append(ids, id)
		}

		events, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, events, 3)
		for i, e := range events {
			assert.Equal(t, ids[i], e.ID)
		}
	})

	t.Run("Replace", func(t *testing.T) {
		setupTestWithTruncate(t)

		id, err := repo.Insert(ctx, model.EventFields{EventName: "Old", Location: "Here", DateCreated: "2025-01-01", DayChosen: 1})
		require.NoError(t, err)

		require.NoError(t, repo.Replace(ctx, id, model.EventFields{EventName: "New", DateCreated: "2024-02-29", DayChosen: 29}))

		found, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "New", found.EventName)
		assert.Equal(t, "", found.Location)
		assert.Equal(t, "2024-02-29", found.DateCreated)
		assert.Equal(t, 29, found.DayChosen)

		assert.NoError(t, repo.Replace(ctx, "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11", model.EventFields{EventName: "x", DateCreated: "2025-01-01", DayChosen: 1}))
	})

	t.Run("Delete", func(t *testing.T) {
		setupTestWithTruncate(t)

		id, err := repo.Insert(ctx, model.EventFields{EventName: "Bye", DateCreated: "2025-01-01", DayChosen: 1})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, id))
		_, err = repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

		assert.NoError(t, repo.Delete(ctx, id))
	})
}

func TestProfileRepository_Postgres(t *testing.T) {
	events := repository.NewEventRepository(testDB)
	repo := repository.NewProfileRepository(testDB)
	ctx := context.Background()

	t.Run("Insert, FindByEventID, DeleteByEventID", func(t *testing.T) {
		setupTestWithTruncate(t)

		eventID, err := events.Insert(ctx, model.EventFields{EventName: "Car Meet", DateCreated: "2025-03-15", DayChosen: 15})
		require.NoError(t, err)

		first, err := repo.Insert(ctx, model.ProfileFields{EventID: eventID, ProfileName: "Ann", NumberAttending: 2, DateCreated: "2025-03-10", Time: "14:30"})
		require.NoError(t, err)
		second, err := repo.Insert(ctx, model.ProfileFields{EventID: eventID, ProfileName: "Bob", NumberAttending: 0, DateCreated: "2025-03-11", Time: "09:00"})
		require.NoError(t, err)

		profiles, err := repo.FindByEventID(ctx, eventID)
		require.NoError(t, err)
		require.Len(t, profiles, 2)
		assert.Equal(t, &model.Profile{ID: first, EventID: eventID, ProfileName: "Ann", NumberAttending: 2, DateCreated: "2025-03-10", Time: "14:30"}, profiles[0])
		assert.Equal(t, second, profiles[1].ID)

		// 有 profile 參照時不能先刪 event
		assert.Error(t, events.Delete(ctx, eventID))

		removed, err := repo.DeleteByEventID(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		profiles, err = repo.FindByEventID(ctx, eventID)
		require.NoError(t, err)
		assert.Empty(t, profiles)
		require.NoError(t, events.Delete(ctx, eventID))
	})

	t.Run("Insert - dangling event rejected", func(t *testing.T) {
		setupTestWithTruncate(t)

		_, err := repo.Insert(ctx, model.ProfileFields{EventID: "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11", ProfileName: "Ann", DateCreated: "2025-03-10"})
		assert.Error(t, err)
	})

	t.Run("Unknown ids", func(t *testing.T) {
		setupTestWithTruncate(t)

		profiles, err := repo.FindByEventID(ctx, "not-a-uuid")
		require.NoError(t, err)
		assert.Empty(t, profiles)

		removed, err := repo.DeleteByEventID(ctx, "not-a-uuid")
		require.NoError(t, err)
		assert.Zero(t, removed)
	})
}
