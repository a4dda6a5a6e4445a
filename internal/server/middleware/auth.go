// Package middleware содержит промежуточные обработчики HTTP-сервера:
// аутентификацию, ограничение частоты запросов и логирование.
package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"domovenok.ru/chores-backend/internal/common"
)

// Ключи контекста gin, заполняемые после проверки токена.
const (
	ContextUserIDKey   = "uid"
	ContextRoleKey     = "role"
	ContextFamilyIDKey = "familyId"
)

// Claims — полезная нагрузка JWT-токена.
type Claims struct {
	UserID   string `json:"uid"`
	Role     string `json:"role"`
	FamilyID string `json:"familyId"`
	jwt.RegisteredClaims
}

// GenerateToken выпускает подписанный HS256-токен.
func GenerateToken(secret, userID, role, familyID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Role:     role,
		FamilyID: familyID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена.
func ParseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора токена: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}
	return claims, nil
}

// AuthRequired проверяет заголовок Authorization и кладёт данные
// пользователя в контекст запроса.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "отсутствует заголовок Authorization"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "неверный формат заголовка Authorization"})
			return
		}

		claims, err := ParseToken(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "недействительный токен"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Set(ContextFamilyIDKey, claims.FamilyID)
		c.Next()
	}
}

// RequireRole пропускает только пользователей с указанной ролью.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRoleKey) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "операция недоступна для вашей роли"})
			return
		}
		c.Next()
	}
}

// RequireParent пропускает только родителей.
func RequireParent() gin.HandlerFunc { return RequireRole(common.RoleParent) }

// RequireChild пропускает только детей.
func RequireChild() gin.HandlerFunc { return RequireRole(common.RoleChild) }

// UserID возвращает идентификатор аутентифицированного пользователя.
func UserID(c *gin.Context) string { return c.GetString(ContextUserIDKey) }

// Role возвращает роль аутентифицированного пользователя.
func Role(c *gin.Context) string { return c.GetString(ContextRoleKey) }

// FamilyID возвращает семью аутентифицированного пользователя
// (пустая строка, если пользователь ещё не в семье).
func FamilyID(c *gin.Context) string { return c.GetString(ContextFamilyIDKey) }
