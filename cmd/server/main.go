package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/myconference/api/internal/auth"
	"github.com/myconference/api/internal/cache"
	"github.com/myconference/api/internal/config"
	"github.com/myconference/api/internal/database"
	"github.com/myconference/api/internal/handler"
	"github.com/myconference/api/internal/middleware"
	"github.com/myconference/api/internal/queue"
	"github.com/myconference/api/internal/repository"
	"github.com/myconference/api/internal/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := newLogger(cfg)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Error("database connect failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, rate limiting and caching disabled")
	}

	clock := clockwork.NewRealClock()

	apps := repository.NewApplicationRepo(db)
	users := repository.NewUserRepo(db)
	logins := repository.NewLoginMethodRepo(db)
	tokens := repository.NewTokenRepo(db)
	confs := repository.NewConferenceRepo(db)
	confCache := cache.New(rdb, cfg.CacheTTL)

	verifier := &auth.Verifier{Apps: apps, LoginMethods: logins, Tokens: tokens, Clock: clock}
	issuer := &auth.Issuer{
		Tokens:     tokens,
		Clock:      clock,
		AccessTTL:  cfg.AccessTTL(),
		RefreshTTL: cfg.RefreshTTL(),
	}

	publisher := queue.NewPublisher(cfg.AMQPURL, log)
	if cfg.AMQPURL != "" {
		go queue.StartInviteMailer(cfg.AMQPURL, log)
	}

	deps := router.Deps{
		Auth: &handler.AuthHandler{
			Apps:         apps,
			Users:        users,
			LoginMethods: logins,
			Tokens:       tokens,
			Verifier:     verifier,
			Issuer:       issuer,
			BcryptCost:   cfg.BcryptCost,
		},
		Users:       &handler.UserHandler{Users: users},
		Conferences: &handler.ConferenceHandler{Conferences: confs, Cache: confCache},
		Documents: &handler.DocumentHandler{
			Documents: repository.NewDocumentRepo(db), Conferences: confs, Cache: confCache,
		},
		Venues: &handler.VenueHandler{
			Venues: repository.NewVenueRepo(db), Conferences: confs, Cache: confCache,
		},
		Speakers: &handler.SpeakerHandler{
			Speakers: repository.NewSpeakerRepo(db), Conferences: confs, Cache: confCache,
		},
		Organizers: &handler.OrganizerHandler{
			Organizers: repository.NewOrganizerRepo(db), Conferences: confs, Cache: confCache,
		},
		Announcements: &handler.AnnouncementHandler{
			Announcements: repository.NewAnnouncementRepo(db), Conferences: confs, Cache: confCache,
		},
		AgendaEvents: &handler.AgendaEventHandler{
			Events: repository.NewAgendaEventRepo(db), Conferences: confs, Cache: confCache,
		},
		InviteCodes: &handler.InviteCodeHandler{
			Invites:     repository.NewInviteCodeRepo(db),
			Conferences: confs,
			Publisher:   publisher,
			Clock:       clock,
		},
		Tokens:          tokens,
		Clock:           clock,
		RDB:             rdb,
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLog(log))
	router.RegisterRoutes(e, deps)

	go func() {
		addr := ":" + cfg.Port
		log.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// In-flight requests get 15 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "err", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
