package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestLogger логирует каждый запрос.
// Записывает: метод, путь, статус, длительность и user_id (если есть).
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := log.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"ip":       c.ClientIP(),
		}
		if uid := c.GetString(ContextUserIDKey); uid != "" {
			fields["user_id"] = uid
		}

		entry := log.WithFields(fields)
		if c.Writer.Status() >= 500 {
			entry.Error("Запрос завершился ошибкой сервера")
		} else {
			entry.Debug("Запрос обработан")
		}
	}
}

// Recovery перехватывает панику в обработчике и возвращает 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField("panic", recovered).Error("Паника в обработчике запроса")
		c.AbortWithStatusJSON(500, gin.H{"error": "внутренняя ошибка сервера"})
	})
}
