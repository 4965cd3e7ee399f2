package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	mrand "math/rand"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/sandervrielink/millionaire-1/internal/config"
	"github.com/sandervrielink/millionaire-1/internal/game"
	"github.com/sandervrielink/millionaire-1/internal/httpapi"
	"github.com/sandervrielink/millionaire-1/internal/migrate"
	"github.com/sandervrielink/millionaire-1/internal/store"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	db  *pgxpool.Pool
	rdb *redis.Client

	srv *http.Server
}

type Options struct {
	Static http.Handler // optional; if nil, no frontend is served
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger, opts Options) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	// --- Postgres ---
	dbpool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})

	// Quick connectivity checks (fail fast).
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := dbpool.Ping(pingCtx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	pingErr := rdb.Ping(pingCtx).Err()
	if pingErr != nil {
		dbpool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping (%s db=%d): %w", cfg.Redis.Addr, cfg.Redis.DB, pingErr)
	}

	if cfg.Postgres.RunMigrations {
		if err := migrate.Up(cfg.Postgres.URL, cfg.Postgres.MigrationsDir, log); err != nil {
			dbpool.Close()
			_ = rdb.Close()
			return nil, err
		}
	}

	// --- Stores ---
	users := store.NewUserStore(dbpool)
	stats := store.NewStatsStore(dbpool)

	authH := &httpapi.AuthHandler{
		Users:     users,
		Stats:     stats,
		JWTSecret: []byte(cfg.Auth.Secret),
		TokenTTL:  cfg.Auth.TokenTTL,
	}

	// --- Game ---
	gameCfg := game.Config{
		HostActionDelay:      cfg.Game.HostActionDelay,
		ThreeStrikesDelay:    cfg.Game.ThreeStrikesDelay,
		FastestFingerWindow:  cfg.Game.FastestFingerWindow,
		AskTheAudienceWindow: cfg.Game.AskTheAudienceWindow,
		AIThinkDelay:         cfg.Game.AIThinkDelay,
		CelebrationDelay:     cfg.Game.CelebrationDelay,
	}
	questions := game.NewFallbackQuestionSource(
		store.NewQuestionStore(dbpool),
		game.NewBuiltinQuestionSource(mrand.New(mrand.NewSource(time.Now().UnixNano()))),
	)
	directory := game.NewRedisRoomDirectory(rdb, cfg.Redis.RoomTTL)
	pool := game.NewRoomPool(gameCfg, log, questions, directory)
	pool.SetPayoutHook(func(userID string, amount int) {
		if userID == "" {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stats.AddWinnings(ctx, userID, amount); err != nil {
			log.Error("record winnings", "user_id", userID, "err", err)
		}
	})
	pool.SetStatsHooks(func(userID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stats.RecordGamePlayed(ctx, userID); err != nil {
			log.Error("record game played", "user_id", userID, "err", err)
		}
	}, func(userID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stats.RecordHotSeatWin(ctx, userID); err != nil {
			log.Error("record hot seat win", "user_id", userID, "err", err)
		}
	})
	gameSrv := game.NewServer(pool, []byte(cfg.Auth.Secret))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	gameSrv.RegisterRoutes(mux)

	// --- auth routes ---
	mux.HandleFunc("/api/auth/register", authH.Register)
	mux.HandleFunc("/api/auth/login", authH.Login)
	mux.HandleFunc("/api/leaderboard", authH.Leaderboard)
	mux.Handle("/api/me", httpapi.AuthMiddleware([]byte(cfg.Auth.Secret))(http.HandlerFunc(authH.Me)))

	if opts.Static != nil {
		mux.Handle("/", opts.Static)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	return &App{cfg: cfg, log: log, db: dbpool, rdb: rdb, srv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	a.log.Info("http server starting", "addr", a.cfg.HTTP.Addr)

	g.Go(func() error {
		err := a.srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.log.Info("http server shutting down")
		_ = a.srv.Shutdown(shutdownCtx)
		return nil
	})

	err := g.Wait()
	_ = a.Close(context.Background())
	return err
}

func (a *App) Close(ctx context.Context) error {
	// best-effort
	if a.db != nil {
		a.db.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	return nil
}
