// Package router wires the HTTP endpoints to their handlers and attaches
// the token-resolution and rate-limit middleware per route group.
package router

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/myconference/api/internal/handler"
	"github.com/myconference/api/internal/middleware"
	"github.com/myconference/api/internal/repository"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Conferences   *handler.ConferenceHandler
	Documents     *handler.DocumentHandler
	Venues        *handler.VenueHandler
	Speakers      *handler.SpeakerHandler
	Organizers    *handler.OrganizerHandler
	Announcements *handler.AnnouncementHandler
	AgendaEvents  *handler.AgendaEventHandler
	InviteCodes   *handler.InviteCodeHandler

	Tokens repository.TokenStore
	Clock  clockwork.Clock

	RDB             *redis.Client
	RateLimit       int
	RateLimitWindow time.Duration
}

// RegisterRoutes attaches every endpoint to the Echo instance. Routes
// come in three flavours: open (signup/login/health), token-with-
// anonymous-allowed, and token-with-user-required.
func RegisterRoutes(e *echo.Echo, d Deps) {
	anyToken := middleware.TokenCheck(d.Tokens, d.Clock, false)
	userToken := middleware.TokenCheck(d.Tokens, d.Clock, true)

	e.GET("/healthz", handler.Health)

	// Credential endpoints get the rate limiter; everything else is
	// already gated by token possession.
	authGroup := e.Group("/auth")
	if d.RateLimit > 0 {
		authGroup.Use(middleware.RateLimit(d.RDB, d.RateLimit, d.RateLimitWindow))
	}
	authGroup.POST("/signup", d.Auth.Signup)
	authGroup.POST("", d.Auth.Login)

	e.POST("/auth/logout", d.Auth.Logout, anyToken)
	e.POST("/auth/check-user", d.Auth.CheckUser, userToken)
	e.POST("/auth/check-anon", d.Auth.CheckAnon, anyToken)

	e.GET("/users/:id", d.Users.Get, anyToken)

	e.GET("/conferences/:id", d.Conferences.Get, anyToken)
	e.POST("/conferences", d.Conferences.Create, userToken)
	e.PATCH("/conferences/:id", d.Conferences.Update, userToken)
	e.DELETE("/conferences/:id", d.Conferences.Delete, userToken)

	e.GET("/documents/:id", d.Documents.Get, anyToken)
	e.POST("/documents", d.Documents.Create, userToken)
	e.PATCH("/documents/:id", d.Documents.Update, userToken)
	e.DELETE("/documents/:id", d.Documents.Delete, userToken)

	e.GET("/venues/:id", d.Venues.Get, anyToken)
	e.POST("/venues", d.Venues.Create, userToken)
	e.PATCH("/venues/:id", d.Venues.Update, userToken)
	e.DELETE("/venues/:id", d.Venues.Delete, userToken)

	e.GET("/speakers/:id", d.Speakers.Get, anyToken)
	e.POST("/speakers", d.Speakers.Create, userToken)
	e.PATCH("/speakers/:id", d.Speakers.Update, userToken)
	e.DELETE("/speakers/:id", d.Speakers.Delete, userToken)

	e.GET("/organizers/:id", d.Organizers.Get, anyToken)
	e.POST("/organizers", d.Organizers.Create, userToken)
	e.PATCH("/organizers/:id", d.Organizers.Update, userToken)
	e.DELETE("/organizers/:id", d.Organizers.Delete, userToken)

	e.GET("/announcements/:id", d.Announcements.Get, anyToken)
	e.POST("/announcements", d.Announcements.Create, userToken)
	e.PATCH("/announcements/:id", d.Announcements.Update, userToken)
	e.DELETE("/announcements/:id", d.Announcements.Delete, userToken)

	e.GET("/agenda-events/:id", d.AgendaEvents.Get, anyToken)
	e.POST("/agenda-events", d.AgendaEvents.Create, userToken)
	e.PATCH("/agenda-events/:id", d.AgendaEvents.Update, userToken)
	e.DELETE("/agenda-events/:id", d.AgendaEvents.Delete, userToken)

	e.GET("/invite-codes/:id", d.InviteCodes.Get, userToken)
	e.POST("/invite-codes", d.InviteCodes.Create, userToken)
	e.POST("/invite-codes/:id/redeem", d.InviteCodes.Redeem, userToken)
}
