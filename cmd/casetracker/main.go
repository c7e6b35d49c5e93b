package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-case-tracker/internal/core/config"
	"go-case-tracker/internal/core/database"
	"go-case-tracker/internal/core/logger"
	"go-case-tracker/internal/core/server"
	"go-case-tracker/internal/storage"
	"go-case-tracker/internal/store"
	"go-case-tracker/internal/transport/http/router"
	"go-case-tracker/internal/view"
	"go-case-tracker/pkg/utils"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, flush := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		AddCaller:   true,
		Development: !cfg.Log.JSON,
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.Rotate.Enable,
			Filename:   cfg.Log.Rotate.Filename,
			MaxSizeMB:  cfg.Log.Rotate.MaxSizeMB,
			MaxBackups: cfg.Log.Rotate.MaxBackups,
			MaxAgeDays: cfg.Log.Rotate.MaxAgeDays,
			Compress:   cfg.Log.Rotate.Compress,
		},
	})
	defer flush()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	ctx := context.Background()
	blob, closeBlob, err := openBlob(ctx, cfg)
	if err != nil {
		log.Fatal("open blob store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeBlob()
	log.Info("blob store ready", zap.String("driver", cfg.Storage.Driver))

	clock := clockwork.NewRealClock()
	st := store.New(blob,
		store.WithLogger(log.Named("store")),
		store.WithClock(clock),
		store.WithKeyPrefix(cfg.Storage.KeyPrefix),
	)
	st.Load(ctx)
	if cfg.Storage.Reset {
		if err := st.Reset(ctx); err != nil {
			log.Error("reset to demo data", zap.Error(err))
		}
	} else if cfg.Storage.Seed {
		seeded, err := st.Seed(ctx)
		if err != nil {
			log.Error("seed demo data", zap.Error(err))
		} else if seeded {
			log.Info("seeded demo data")
		}
	}
	summarize(log, st, cfg.Views, clock.Now())

	if !cfg.Ops.Enable {
		log.Info("ops listener disabled")
		return
	}

	r := server.NewRouter(log.Named("ops"), server.Options{RPS: cfg.Ops.RPS, Burst: cfg.Ops.Burst})
	router.MountOps(r, st)

	addr := server.Addr(cfg.Ops.Host, cfg.Ops.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.Ops.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.Ops.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.Ops.IdleTimeoutSec)*time.Second,
	)
	base := "http://" + addr
	log.Info("ops listener starting",
		zap.String("addr", addr),
		zap.String("health", base+"/health"),
		zap.String("metrics", base+"/metrics"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ops listener failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("ops listener stopped")
}

func openBlob(ctx context.Context, cfg *config.Config) (storage.BlobStore, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		return storage.NewMemory(), func() {}, nil
	case "redis":
		rdb := storage.DialRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
		return storage.NewRedis(rdb, cfg.Storage.KeyPrefix), func() { _ = rdb.Close() }, nil
	case "gorm":
		db, err := database.NewGorm(database.Opts{
			Driver:             cfg.DB.Driver,
			DSN:                cfg.DB.DSN,
			MaxOpenConns:       cfg.DB.MaxOpenConns,
			MaxIdleConns:       cfg.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.DB.LogLevel,
		})
		if err != nil {
			return nil, nil, err
		}
		g := storage.NewGorm(db)
		if err := g.Migrate(ctx); err != nil {
			return nil, nil, fmt.Errorf("migrate blob table: %w", err)
		}
		closer := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return g, closer, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// summarize logs the dashboard of whoever is signed in, or just record
// counts when nobody is.
func summarize(log *zap.Logger, st *store.Store, vc config.Views, now time.Time) {
	stats := st.Stats()
	snap := st.Snapshot()
	p := snap.CurrentUser
	if p == nil {
		log.Info("store loaded", zap.Any("stats", stats))
		return
	}

	cases := view.Cases(snap, p, view.CaseFilter{})
	tasks := view.Tasks(snap, p, view.TaskFilter{}, now)
	dueSoon := view.Tasks(snap, p, view.TaskFilter{DueSoonOnly: true, DueSoonDays: vc.DueSoonDays}, now)
	totals := view.DashboardTotals(snap, p, now)
	log.Info("dashboard",
		zap.String("user", p.Email),
		zap.String("role", p.Role.Label()),
		zap.Int("open_cases", len(cases.Open)),
		zap.Int("pending_tasks", len(tasks.Pending)),
		zap.Int("overdue_tasks", len(tasks.Overdue)),
		zap.Int("due_soon_tasks", len(dueSoon.List)),
		zap.String("time_this_week", utils.FormatDuration(totals.ThisWeek)),
		zap.String("time_this_month", utils.FormatDuration(totals.ThisMonth)),
		zap.Int("unread_notifications", view.UnreadCount(snap, p)),
		zap.Int("recent_activities", len(view.RecentActivities(snap, p, vc.RecentLimit))),
	)
}
