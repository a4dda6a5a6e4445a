// Package gamification — handlers.go обрабатывает HTTP-запросы
// к статистике прогрессии.
package gamification

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/server/middleware"
	"domovenok.ru/chores-backend/internal/store"
)

// FamilyResolver возвращает семью пользователя.
type FamilyResolver interface {
	FamilyID(ctx context.Context, userID string) (string, error)
}

// Handler обрабатывает запросы к статистике.
type Handler struct {
	service *Service
	users   FamilyResolver
}

// NewHandler создаёт новый обработчик статистики.
func NewHandler(service *Service, users FamilyResolver) *Handler {
	return &Handler{service: service, users: users}
}

// HandleMyStats возвращает статистику текущего пользователя.
//
// GET /api/stats/me
func (h *Handler) HandleMyStats(c *gin.Context) {
	h.respondStats(c, middleware.UserID(c))
}

// HandleUserStats возвращает статистику указанного пользователя.
// Свою статистику видит каждый; чужую — родитель из той же семьи.
//
// GET /api/stats/user/:userId
func (h *Handler) HandleUserStats(c *gin.Context) {
	targetID := c.Param("userId")
	requesterID := middleware.UserID(c)

	if targetID != requesterID {
		if middleware.Role(c) != common.RoleParent {
			c.JSON(http.StatusForbidden, gin.H{"error": common.ErrWrongRole.Error()})
			return
		}
		targetFamily, err := h.users.FamilyID(c.Request.Context(), targetID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrUserNotFound.Error()})
			return
		}
		if targetFamily == "" || targetFamily != middleware.FamilyID(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": common.ErrNotFamilyMember.Error()})
			return
		}
	}

	h.respondStats(c, targetID)
}

func (h *Handler) respondStats(c *gin.Context, userID string) {
	stats, err := h.service.Stats(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Ни одной записи ещё не было — отдаём нулевую статистику,
			// не создавая документа
			c.JSON(http.StatusOK, statsResponse(defaultStats(userID)))
			return
		}
		log.WithError(err).WithField("user_id", userID).Error("Ошибка получения статистики")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
		return
	}

	c.JSON(http.StatusOK, statsResponse(stats))
}

func statsResponse(stats *UserStats) gin.H {
	return gin.H{
		"stats":            stats,
		"xp_to_next_level": XPToNextLevel(stats.Level),
	}
}
