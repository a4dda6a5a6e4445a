// Package earnings — handlers.go обрабатывает HTTP-запросы к заработку.
package earnings

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/server/middleware"
)

// FamilyResolver возвращает семью пользователя.
type FamilyResolver interface {
	FamilyID(ctx context.Context, userID string) (string, error)
}

// Handler обрабатывает запросы к заработку.
type Handler struct {
	service *Service
	users   FamilyResolver
}

// NewHandler создаёт новый обработчик заработка.
func NewHandler(service *Service, users FamilyResolver) *Handler {
	return &Handler{service: service, users: users}
}

// HandleMyEarnings возвращает заработок текущего пользователя.
//
// GET /api/earnings/me?period=today|week
// GET /api/earnings/me?start=RFC3339&end=RFC3339
func (h *Handler) HandleMyEarnings(c *gin.Context) {
	h.respondEarnings(c, middleware.UserID(c), middleware.FamilyID(c))
}

// HandleUserEarnings возвращает заработок указанного пользователя.
// Свой заработок видит каждый; чужой — родитель из той же семьи.
//
// GET /api/earnings/user/:userId
func (h *Handler) HandleUserEarnings(c *gin.Context) {
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

	h.respondEarnings(c, targetID, middleware.FamilyID(c))
}

func (h *Handler) respondEarnings(c *gin.Context, userID, familyID string) {
	ctx := c.Request.Context()

	var (
		summary *Summary
		err     error
	)

	startRaw, endRaw := c.Query("start"), c.Query("end")
	switch {
	case startRaw != "" || endRaw != "":
		var start, end time.Time
		if start, err = time.Parse(time.RFC3339, startRaw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат параметра start"})
			return
		}
		if end, err = time.Parse(time.RFC3339, endRaw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат параметра end"})
			return
		}
		if end.Before(start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "конец периода раньше начала"})
			return
		}
		summary, err = h.service.CalculateForWindow(ctx, userID, familyID, start, end)
	case c.DefaultQuery("period", "today") == "week":
		summary, err = h.service.CalculateWeekly(ctx, userID, familyID)
	default:
		summary, err = h.service.CalculateToday(ctx, userID, familyID)
	}

	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка расчёта заработка")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
