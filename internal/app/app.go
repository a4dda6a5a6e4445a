// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, хранилище, репозитории,
// сервисы, обработчики и собирает всё в HTTP-сервер.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/config"
	"domovenok.ru/chores-backend/internal/db/postgres"
	"domovenok.ru/chores-backend/internal/features/activities"
	"domovenok.ru/chores-backend/internal/features/badges"
	"domovenok.ru/chores-backend/internal/features/earnings"
	"domovenok.ru/chores-backend/internal/features/families"
	"domovenok.ru/chores-backend/internal/features/gamification"
	"domovenok.ru/chores-backend/internal/features/logs"
	"domovenok.ru/chores-backend/internal/features/users"
	"domovenok.ru/chores-backend/internal/jobs"
	"domovenok.ru/chores-backend/internal/notify"
	"domovenok.ru/chores-backend/internal/server"
	"domovenok.ru/chores-backend/internal/server/middleware"
	"domovenok.ru/chores-backend/internal/store"
)

// App содержит все компоненты приложения.
type App struct {
	Server      *http.Server
	Scheduler   *jobs.Scheduler
	DB          *pgxpool.Pool
	RateLimiter *middleware.RateLimiter
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных и документное хранилище ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}
	st := store.NewPostgres(pool)

	// === 2. Уведомления ===
	var notifier notify.Notifier
	if cfg.TelegramBotToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken)
		if err != nil {
			return nil, fmt.Errorf("ошибка инициализации Telegram: %w", err)
		}
		notifier = tg
		log.Info("Telegram-уведомления включены")
	} else {
		notifier = notify.Noop{}
		log.Info("Telegram-уведомления выключены (пустой TELEGRAM_BOT_TOKEN)")
	}

	// === 3. Репозитории ===
	userRepo := users.NewRepository(st)
	familyRepo := families.NewRepository(st)
	activityRepo := activities.NewRepository(st)
	logRepo := logs.NewRepository(st)
	statsRepo := gamification.NewRepository(st)
	badgeRepo := badges.NewRepository(st)

	// === 4. Сервисы ===
	userService := users.NewService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	familyService := families.NewService(familyRepo, userService)
	activityService := activities.NewService(activityRepo)
	badgeService := badges.NewService(badgeRepo, st)
	progressionService := gamification.NewService(statsRepo, badgeService, cfg.XPPerActivity)
	earningsService := earnings.NewService(st)
	events := notify.NewEvents(userService, notifier)
	logService := logs.NewService(logRepo, activityService, progressionService, events)

	// === 5. Обработчики ===
	handlers := server.Handlers{
		Users:      users.NewHandler(userService),
		Families:   families.NewHandler(familyService, userService),
		Activities: activities.NewHandler(activityService),
		Logs:       logs.NewHandler(logService),
		Earnings:   earnings.NewHandler(earningsService, userService),
		Badges:     badges.NewHandler(badgeService, userService),
		Stats:      gamification.NewHandler(progressionService, userService),
	}

	// === 6. HTTP-сервер ===
	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	srv := server.New(cfg, handlers, limiter)

	// === 7. Планировщик задач ===
	scheduler := jobs.NewScheduler(progressionService, events, cfg.StreakReminderThreshold)

	return &App{
		Server:      srv,
		Scheduler:   scheduler,
		DB:          pool,
		RateLimiter: limiter,
	}, nil
}
