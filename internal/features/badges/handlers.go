// Package badges — handlers.go обрабатывает HTTP-запросы к значкам.
package badges

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/server/middleware"
)

// FamilyResolver возвращает семью пользователя.
// Нужен для проверки, что родитель смотрит значки ребёнка из своей семьи.
type FamilyResolver interface {
	FamilyID(ctx context.Context, userID string) (string, error)
}

// Handler обрабатывает запросы к значкам.
type Handler struct {
	service *Service
	users   FamilyResolver
}

// NewHandler создаёт новый обработчик значков.
func NewHandler(service *Service, users FamilyResolver) *Handler {
	return &Handler{service: service, users: users}
}

// HandleCatalog возвращает полный каталог значков.
//
// GET /api/badges
func (h *Handler) HandleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"badges": Catalog()})
}

// HandleMyBadges возвращает значки текущего пользователя.
//
// GET /api/badges/me
func (h *Handler) HandleMyBadges(c *gin.Context) {
	h.respondUserBadges(c, middleware.UserID(c))
}

// HandleUserBadges возвращает значки указанного пользователя.
// Свои значки видит каждый; чужие — только родитель из той же семьи.
//
// GET /api/badges/user/:userId
func (h *Handler) HandleUserBadges(c *gin.Context) {
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

	h.respondUserBadges(c, targetID)
}

// HandleCheck внепланово проверяет значки текущего пользователя.
// Обычно проверка происходит сама при начислениях; ручной запуск
// полезен клиенту после миграций или при расхождении кэша.
//
// POST /api/badges/check
func (h *Handler) HandleCheck(c *gin.Context) {
	userID := middleware.UserID(c)

	newBadges, err := h.service.CheckAndAward(c.Request.Context(), userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка проверки значков")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
		return
	}

	if newBadges == nil {
		newBadges = []Badge{}
	}
	c.JSON(http.StatusOK, gin.H{"new_badges": newBadges})
}

func (h *Handler) respondUserBadges(c *gin.Context, userID string) {
	earned, available, err := h.service.UserBadges(c.Request.Context(), userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка получения значков")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
		return
	}

	if earned == nil {
		earned = []UserBadge{}
	}
	if available == nil {
		available = []UserBadge{}
	}
	c.JSON(http.StatusOK, gin.H{
		"earned":    earned,
		"available": available,
	})
}
