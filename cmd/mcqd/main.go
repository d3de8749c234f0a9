package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/mind-engage/mcq-reviewer/internal/api/http"
	auth "github.com/mind-engage/mcq-reviewer/internal/auth/middleware"
	"github.com/mind-engage/mcq-reviewer/internal/config"
	"github.com/mind-engage/mcq-reviewer/internal/db"
	"github.com/mind-engage/mcq-reviewer/internal/eventlog"
	"github.com/mind-engage/mcq-reviewer/internal/extract"
	"github.com/mind-engage/mcq-reviewer/internal/logger"
	"github.com/mind-engage/mcq-reviewer/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", "driver", cfg.DBDriver, "error", err)
	}
	defer dbh.Close()

	kv, closeKV, err := openStore(ctx, cfg, dbh)
	if err != nil {
		log.Fatal("session store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeKV()

	events := eventlog.NewEventRepo(dbh, "")
	sessions := api.NewSessionRegistry(cfg.SessionKeyPrefix, kv, events, log, cfg.AutoAdvanceDelay)
	defer sessions.Close()

	handler := api.NewRouter(api.Deps{
		Config:   cfg,
		Auth:     auth.NewAuthService(cfg.AuthHMACSecret, cfg.TokenTTL),
		Sessions: sessions,
		Events:   events,
		PDF:      extract.NewPDFSource(cfg.PdftotextBin, cfg.MaxPages, log),
		DB:       dbh,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "db", cfg.DBDriver, "store", cfg.StoreDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", "error", err)
	}
}

// openStore builds the session store named by cfg.StoreDriver.
func openStore(ctx context.Context, cfg config.Config, dbh *sql.DB) (storage.KV, func(), error) {
	noop := func() {}
	driver, err := storage.ParseDriver(cfg.StoreDriver)
	if err != nil {
		return nil, noop, err
	}
	switch driver {
	case storage.DriverSQL:
		return storage.NewSQLStore(dbh), noop, nil
	case storage.DriverRedis:
		client, err := storage.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, noop, err
		}
		return storage.NewRedisStore(client, cfg.SessionTTL), func() { client.Close() }, nil
	case storage.DriverMemory:
		return storage.NewMemoryStore(), noop, nil
	default:
		fs, err := storage.NewFSStore(cfg.StoreBasePath)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	}
}
