package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"cakeries-backend/internal/api"
	"cakeries-backend/internal/auth"
	"cakeries-backend/internal/cache"
	"cakeries-backend/internal/config"
	"cakeries-backend/internal/events"
	"cakeries-backend/internal/logger"
	"cakeries-backend/internal/payment"
	"cakeries-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Common.ServiceName, cfg.Common.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	// MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := store.Connect(ctx, cfg.Mongo.URL, cfg.Mongo.Database)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("db connected")

	deps := api.Deps{
		Store:       db,
		Roles:       db,
		Ready:       db,
		Tokens:      auth.NewTokens(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL),
		Log:         log,
		ServiceName: cfg.Common.ServiceName,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}

	// Role cache
	if cfg.Redis.Addr != "" {
		rdb := cache.NewRedis(cfg.Redis.Addr)
		defer rdb.Close()
		roles := &cache.Roles{Source: db, Redis: rdb, TTL: cfg.Redis.RoleCacheTTL, Log: log}
		deps.Roles = roles
		deps.RoleCache = roles
		log.Info().Str("addr", cfg.Redis.Addr).Msg("role cache enabled")
	}

	// Events
	var publisher payment.Publisher = events.Nop{}
	if cfg.Rabbit.URL != "" {
		rabbit, err := events.DialRabbit(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbit connect failed")
		}
		defer rabbit.Close()
		publisher = rabbit
	}

	if cfg.Payment.StripeKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY not set, payment intents will fail")
	}
	deps.Payments = payment.NewOrchestrator(
		payment.NewStripeGateway(cfg.Payment.StripeKey),
		db,
		publisher,
		cfg.Payment.Currency,
		log,
	)

	// Sentry
	if cfg.Common.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Common.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Common.Environment,
		}); err != nil {
			log.Error().Err(err).Msg("sentry init failed")
		} else {
			defer sentry.Flush(2 * time.Second)
			deps.Middleware = append(deps.Middleware, sentrygin.New(sentrygin.Options{Repanic: true}))
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Listening to Cakeries server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(log, srv, db)
}

func waitForShutdown(log zerolog.Logger, srv *http.Server, db *store.Mongo) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := db.Close(ctx); err != nil {
		log.Error().Err(err).Msg("db close failed")
	}
}
