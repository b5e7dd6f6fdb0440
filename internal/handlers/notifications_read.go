package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mutual/internal/models"
)

// ReadNotification godoc
// @Summary Отметить уведомление прочитанным
// @Tags notifications
// @Security Signature
// @Produce json
// @Param id path string true "ID уведомления"
// @Success 200 {object} models.Notification
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{id}/read [post]
func ReadNotification(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		party, ok := requireSigner(c)
		if !ok {
			return
		}
		var n models.Notification
		if err := db.Where("id = ? AND party = ?", c.Param("id"), party).First(&n).Error; err != nil {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "invalid notification"})
			return
		}
		if n.ReadAt == nil {
			now := time.Now()
			if err := db.Model(&n).Update("read_at", now).Error; err != nil {
				c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "db error"})
				return
			}
			n.ReadAt = &now
		}
		c.JSON(http.StatusOK, n)
	}
}
