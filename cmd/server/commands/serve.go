package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gin-event-calendar/config"
	"gin-event-calendar/internal/cache"
	"gin-event-calendar/internal/database"
	"gin-event-calendar/internal/handler"
	"gin-event-calendar/internal/repository"
	"gin-event-calendar/internal/server"
	"gin-event-calendar/internal/service"
	"gin-event-calendar/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	storeBackend string
	autoMigrate  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().StringVar(&storeBackend, "store", "postgres", "Storage backend: postgres or memory")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Create tables before serving (postgres only)")
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.WithComponent("cli")
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		eventRepo   repository.EventRepository
		profileRepo repository.ProfileRepository
	)
	switch storeBackend {
	case "postgres":
		pool, err := database.InitDatabase(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()
		if autoMigrate {
			if err := database.Migrate(ctx, pool); err != nil {
				return err
			}
		}
		eventRepo = repository.NewEventRepository(pool)
		profileRepo = repository.NewProfileRepository(pool)
	case "memory":
		log.Warn("using in-memory store, data is lost on exit")
		eventRepo = repository.NewMemoryEventRepository()
		profileRepo = repository.NewMemoryProfileRepository()
	default:
		return fmt.Errorf("unknown store backend %q", storeBackend)
	}

	var listCache cache.EventListCache = cache.NopEventListCache{}
	if cfg.Cache.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			// 快取不是必要元件，Redis 連不上就直接讀 store
			log.Warn("redis unavailable, event list cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			listCache = cache.NewRedisEventListCache(rdb, cfg.Cache.TTL)
		}
	}

	eventService := service.NewEventService(eventRepo, profileRepo, listCache, nil)
	router := server.NewRouter(&cfg.Server, handler.NewEventHandler(eventService, nil))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("store", storeBackend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
