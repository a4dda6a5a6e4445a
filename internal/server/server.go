// Package server собирает HTTP-сервер: маршруты, цепочку middleware
// и настройки таймаутов.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"domovenok.ru/chores-backend/internal/config"
	"domovenok.ru/chores-backend/internal/features/activities"
	"domovenok.ru/chores-backend/internal/features/badges"
	"domovenok.ru/chores-backend/internal/features/earnings"
	"domovenok.ru/chores-backend/internal/features/families"
	"domovenok.ru/chores-backend/internal/features/gamification"
	"domovenok.ru/chores-backend/internal/features/logs"
	"domovenok.ru/chores-backend/internal/features/users"
	"domovenok.ru/chores-backend/internal/server/middleware"
)

// Handlers — обработчики всех фич, которые вешаются на маршруты.
type Handlers struct {
	Users      *users.Handler
	Families   *families.Handler
	Activities *activities.Handler
	Logs       *logs.Handler
	Earnings   *earnings.Handler
	Badges     *badges.Handler
	Stats      *gamification.Handler
}

// New собирает HTTP-сервер со всеми маршрутами.
func New(cfg *config.Config, h Handlers, limiter *middleware.RateLimiter) *http.Server {
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger(), limiter.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Публичные маршруты
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Users.HandleRegister)
		auth.POST("/login", h.Users.HandleLogin)
	}

	// Всё остальное — только с токеном
	private := api.Group("")
	private.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		private.GET("/users/me", h.Users.HandleMe)
		private.POST("/users/me/telegram", h.Users.HandleLinkTelegram)

		private.POST("/families", middleware.RequireParent(), h.Families.HandleCreate)
		private.POST("/families/join", h.Families.HandleJoin)
		private.GET("/families/me", h.Families.HandleDetails)

		private.GET("/activities", h.Activities.HandleList)
		private.GET("/activities/:id", h.Activities.HandleGet)
		private.POST("/activities", middleware.RequireParent(), h.Activities.HandleCreate)
		private.DELETE("/activities/:id", middleware.RequireParent(), h.Activities.HandleDelete)

		private.POST("/logs", middleware.RequireChild(), h.Logs.HandleCreate)
		private.GET("/logs/me", h.Logs.HandleListMine)
		private.GET("/logs/pending", middleware.RequireParent(), h.Logs.HandlePending)
		private.POST("/logs/:id/verify", middleware.RequireParent(), h.Logs.HandleVerify)

		private.GET("/earnings/me", h.Earnings.HandleMyEarnings)
		private.GET("/earnings/user/:userId", h.Earnings.HandleUserEarnings)

		private.GET("/badges", h.Badges.HandleCatalog)
		private.GET("/badges/me", h.Badges.HandleMyBadges)
		private.GET("/badges/user/:userId", h.Badges.HandleUserBadges)
		private.POST("/badges/check", h.Badges.HandleCheck)

		private.GET("/stats/me", h.Stats.HandleMyStats)
		private.GET("/stats/user/:userId", h.Stats.HandleUserStats)
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      r,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}
}
