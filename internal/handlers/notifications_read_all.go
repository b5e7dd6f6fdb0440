package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mutual/internal/models"
)

// NotificationsReadAllResponse ответ на массовое чтение уведомлений.
type NotificationsReadAllResponse struct {
	Count int `json:"count"`
}

// ReadAllNotifications godoc
// @Summary Отметить все уведомления прочитанными
// @Tags notifications
// @Security Signature
// @Produce json
// @Success 200 {object} handlers.NotificationsReadAllResponse
// @Router /notifications/read-all [post]
func ReadAllNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		party, ok := requireSigner(c)
		if !ok {
			return
		}
		res := db.Model(&models.Notification{}).
			Where("party = ? AND read_at IS NULL", party).
			Update("read_at", time.Now())
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "db error"})
			return
		}
		c.JSON(http.StatusOK, NotificationsReadAllResponse{Count: int(res.RowsAffected)})
	}
}
