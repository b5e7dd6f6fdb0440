package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mutual/internal/models"
)

// ListNotifications godoc
// @Summary Список уведомлений подписанта
// @Tags notifications
// @Security Signature
// @Produce json
// @Param unread query bool false "только непрочитанные"
// @Param limit query int false "лимит"
// @Param offset query int false "смещение"
// @Success 200 {array} models.Notification
// @Router /notifications [get]
func ListNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		party, ok := requireSigner(c)
		if !ok {
			return
		}
		limit, offset := parsePagination(c)
		q := db.Where("party = ?", party)
		if c.Query("unread") == "true" {
			q = q.Where("read_at IS NULL")
		}
		var ns []models.Notification
		if err := q.Order("created_at desc").
			Limit(limit).Offset(offset).Find(&ns).Error; err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "db error"})
			return
		}
		c.JSON(http.StatusOK, ns)
	}
}
