package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"pocket-classroom/internal/app"
	"pocket-classroom/internal/config"
	"pocket-classroom/internal/store"
	filestore "pocket-classroom/internal/store/file"
	memstore "pocket-classroom/internal/store/memory"
	pgstore "pocket-classroom/internal/store/postgres"
	redisstore "pocket-classroom/internal/store/redis"
	transport "pocket-classroom/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the classroom server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	st, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Seed() {
		seeded, err := app.EnsureSeeded(ctx, st)
		if err != nil {
			log.Printf("seeding skipped: %v", err)
		} else if seeded {
			log.Printf("seeded sample lessons")
		}
	}

	classroom, err := app.Load(ctx, st, app.Options{Sender: cfg.Classroom.Sender})
	if err != nil {
		return err
	}
	if warning := classroom.Warning(); warning != "" {
		log.Printf("warning: %s", warning)
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	handler := transport.NewHandler(classroom)
	wsHandler := transport.NewChatWSHandler(classroom)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	mux.HandleFunc("/ws/chat", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting pocket classroom on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildStore picks the persistence backend from config. The default is the
// file store, the closest analog to the browser's local key-value store.
func buildStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	noop := func() {}
	switch cfg.Storage.Backend {
	case "", "file":
		dir := cfg.Storage.Dir
		if dir == "" {
			dir = "data"
		}
		st, err := filestore.New(dir)
		if err != nil {
			return nil, noop, err
		}
		return st, noop, nil
	case "memory":
		return memstore.New(), noop, nil
	case "redis":
		if cfg.Redis.Addr == "" {
			return nil, noop, fmt.Errorf("redis backend selected but redis.addr not configured")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := config.TTLDuration(cfg.Redis.TTL, 0)
		return redisstore.New(client, ttl), func() { _ = client.Close() }, nil
	case "postgres":
		if cfg.Postgres.URL == "" {
			return nil, noop, fmt.Errorf("postgres backend selected but postgres.url not configured")
		}
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, noop, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, noop, err
		}
		return pgstore.New(pool), pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
