// Package families — handlers.go обрабатывает HTTP-запросы семей.
package families

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/features/users"
	"domovenok.ru/chores-backend/internal/server/middleware"
)

// TokenIssuer выпускает свежий токен после смены семьи.
// Реализуется сервисом пользователей.
type TokenIssuer interface {
	Token(u *users.User) (string, error)
}

// Handler обрабатывает запросы семей.
type Handler struct {
	service *Service
	tokens  TokenIssuer
}

// NewHandler создаёт новый обработчик семей.
func NewHandler(service *Service, tokens TokenIssuer) *Handler {
	return &Handler{service: service, tokens: tokens}
}

type createFamilyRequest struct {
	Name string `json:"name" binding:"required"`
}

// HandleCreate создаёт семью. Только для родителей.
// В ответе — свежий токен с заполненным familyId.
//
// POST /api/families
func (h *Handler) HandleCreate(c *gin.Context) {
	var req createFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверное тело запроса"})
		return
	}

	userID := middleware.UserID(c)
	f, err := h.service.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Token(&users.User{ID: userID, Role: middleware.Role(c), FamilyID: f.ID})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"family": f, "token": token})
}

type joinFamilyRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// HandleJoin записывает пользователя в семью по коду приглашения.
// В ответе — свежий токен с заполненным familyId.
//
// POST /api/families/join
func (h *Handler) HandleJoin(c *gin.Context) {
	var req joinFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверное тело запроса"})
		return
	}

	f, u, err := h.service.Join(c.Request.Context(), middleware.UserID(c), req.InviteCode)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Token(u)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"family": f, "token": token})
}

// HandleDetails возвращает семью текущего пользователя и её состав.
//
// GET /api/families/me
func (h *Handler) HandleDetails(c *gin.Context) {
	f, members, err := h.service.Details(c.Request.Context(), middleware.FamilyID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"family": f, "members": members})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrFamilyNotFound), errors.Is(err, common.ErrInviteCodeNotFound), errors.Is(err, common.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrAlreadyInFamily), errors.Is(err, common.ErrEmptyName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Ошибка обработки семьи")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
	}
}
