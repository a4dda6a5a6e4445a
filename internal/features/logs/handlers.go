// Package logs — handlers.go обрабатывает HTTP-запросы к записям активности.
package logs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/server/middleware"
)

// Handler обрабатывает запросы к записям активности.
type Handler struct {
	service *Service
}

// NewHandler создаёт новый обработчик записей.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createLogRequest struct {
	ActivityID string `json:"activity_id" binding:"required"`
	Units      int    `json:"units" binding:"required"`
}

// HandleCreate создаёт запись активности. Только для детей.
//
// POST /api/logs
func (h *Handler) HandleCreate(c *gin.Context) {
	var req createLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверное тело запроса"})
		return
	}

	familyID := middleware.FamilyID(c)
	if familyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrFamilyNotFound.Error()})
		return
	}

	l, err := h.service.Create(c.Request.Context(), middleware.UserID(c), familyID, req.ActivityID, req.Units)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

type verifyLogRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleVerify подтверждает или отклоняет запись. Только для родителей.
//
// POST /api/logs/:id/verify
func (h *Handler) HandleVerify(c *gin.Context) {
	var req verifyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверное тело запроса"})
		return
	}

	l, err := h.service.Verify(c.Request.Context(), middleware.UserID(c), middleware.FamilyID(c), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// HandleListMine возвращает записи текущего пользователя.
//
// GET /api/logs/me
func (h *Handler) HandleListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": list})
}

// HandlePending возвращает очередь непроверенных записей семьи.
// Только для родителей.
//
// GET /api/logs/pending
func (h *Handler) HandlePending(c *gin.Context) {
	list, err := h.service.PendingForFamily(c.Request.Context(), middleware.FamilyID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": list})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrLogNotFound), errors.Is(err, common.ErrActivityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNotFamilyMember):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrAlreadyVerified):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrInvalidUnits), errors.Is(err, common.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Ошибка обработки записи активности")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
	}
}
