package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/DhavalSuthar-24/crease/config"
	_ "github.com/DhavalSuthar-24/crease/docs"
	"github.com/DhavalSuthar-24/crease/internal/livesync"
	"github.com/DhavalSuthar-24/crease/internal/match"
	mw "github.com/DhavalSuthar-24/crease/internal/middleware"
	"github.com/DhavalSuthar-24/crease/pkg/logger"
	"github.com/DhavalSuthar-24/crease/routes"
)

// @title Crease scoring API
// @version 1.0
// @description Ball-by-ball scoring for limited-overs cricket.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey ScorerToken
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		logger.NewDefault().WithError(err).Fatal("failed to initialize application")
	}
	cfg := config.GetConfig()
	log := logger.New(cfg.App.LogLevel, cfg.App.Env)

	if err := config.DB.AutoMigrate(&match.Match{}); err != nil {
		log.WithError(err).Fatal("AutoMigrate failed")
	}
	log.Info("AutoMigrate successful")

	rules, err := config.LoadScoringRules(cfg.ScoringRulesPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load scoring rules")
	}

	syncOpts := []livesync.Option{
		livesync.WithWriteTimeout(cfg.PersistTimeout()),
		livesync.WithTransferTTL(cfg.TransferTTL()),
	}
	// A nil *RedisFeed must not reach the LiveFeed interface.
	var feed match.LiveFeed
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		rf := livesync.NewRedisFeed(client, log)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rf.Ping(ctx); err != nil {
			log.WithError(err).WithField("addr", cfg.Redis.Addr).Warn("redis unreachable, live feed will retry per publish")
		}
		cancel()
		syncOpts = append(syncOpts, livesync.WithFeed(rf))
		feed = rf
	} else {
		log.Info("REDIS_ADDR empty, live feed disabled")
	}

	repo := match.NewGormMatchRepository(config.DB)
	sessions := match.NewSessionManager(repo, rules.Rules, log, syncOpts...)
	controller := match.NewMatchController(repo, sessions, feed, match.ControllerConfig{
		TokenSecret: cfg.ScorerToken.Secret,
		TokenExpiry: cfg.TokenExpiry(),
		Weights:     rules.Weights,
	}, log)

	janitor := match.NewJanitor(repo, sessions, log)
	if err := janitor.Start(cfg.Transfer.JanitorSchedule); err != nil {
		log.WithError(err).Fatal("invalid TRANSFER_JANITOR_SCHEDULE")
	}
	defer janitor.Stop()

	stop := make(chan struct{})
	defer close(stop)
	limiter := mw.NewRateLimiter(cfg.Transfer.ClaimRPS, cfg.Transfer.ClaimBurst, log)
	limiter.StartCleanup(10*time.Minute, stop)

	r := routes.SetupRoutes(routes.Dependencies{
		FrontendURL:     cfg.App.FrontendURL,
		TokenSecret:     cfg.ScorerToken.Secret,
		MatchController: controller,
		ClaimLimiter:    limiter,
	})

	srv := &http.Server{Addr: ":" + cfg.App.Port, Handler: r}
	go func() {
		log.WithField("port", cfg.App.Port).WithField("env", cfg.App.Env).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to run server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	if err := sessions.FlushAll(ctx); err != nil {
		log.WithError(err).Warn("pending snapshots not written before exit")
	}
	log.Info("server stopped")
}
