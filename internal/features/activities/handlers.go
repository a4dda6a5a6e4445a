// Package activities — handlers.go обрабатывает HTTP-запросы к заданиям.
package activities

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/server/middleware"
)

// Handler обрабатывает запросы к заданиям.
type Handler struct {
	service *Service
}

// NewHandler создаёт новый обработчик заданий.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createActivityRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Rate        float64 `json:"rate" binding:"required"`
}

// HandleCreate создаёт новое задание. Только для родителей.
//
// POST /api/activities
func (h *Handler) HandleCreate(c *gin.Context) {
	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверное тело запроса"})
		return
	}

	familyID := middleware.FamilyID(c)
	if familyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrFamilyNotFound.Error()})
		return
	}

	a, err := h.service.Create(c.Request.Context(), familyID, middleware.UserID(c), req.Name, req.Description, req.Unit, req.Rate)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// HandleList возвращает все задания семьи.
//
// GET /api/activities
func (h *Handler) HandleList(c *gin.Context) {
	familyID := middleware.FamilyID(c)
	if familyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrFamilyNotFound.Error()})
		return
	}

	list, err := h.service.ListByFamily(c.Request.Context(), familyID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": list})
}

// HandleGet возвращает одно задание семьи.
//
// GET /api/activities/:id
func (h *Handler) HandleGet(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), middleware.FamilyID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// HandleDelete удаляет задание вместе с его записями. Только для родителей.
//
// DELETE /api/activities/:id
func (h *Handler) HandleDelete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), middleware.FamilyID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "задание удалено"})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrActivityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNotFamilyMember):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrInvalidRate), errors.Is(err, common.ErrEmptyName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Ошибка обработки задания")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
	}
}
