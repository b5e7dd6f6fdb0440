package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health godoc
// @Summary Проверка состояния сервиса
// @Description Проверяет соединение с БД и, если настроен, с Redis.
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "db error"})
			return
		}
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "db down"})
			return
		}
		if rdb != nil {
			if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "redis down"})
				return
			}
		}
		c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
	}
}
