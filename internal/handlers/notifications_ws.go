package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mutual/internal/models"
	"mutual/internal/notifications"
)

// NotificationsWS godoc
// @Summary Websocket уведомлений
// @Description Подключает подписанта к потоку уведомлений. После подключения сервер отправляет неотправленные непрочитанные уведомления.
// @Tags notifications
// @Security Signature
// @Success 101 {object} models.Notification "Switching Protocols"
// @Failure 401 {object} ErrorResponse
// @Router /ws/notifications [get]
func NotificationsWS(db *gorm.DB) gin.HandlerFunc {
	notifications.SetDB(db)
	return func(c *gin.Context) {
		party, ok := requireSigner(c)
		if !ok {
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		notifications.AddClient(party, conn)
		defer func() {
			notifications.RemoveClient(party, conn)
			conn.Close()
		}()

		var list []models.Notification
		if err := db.Where("party = ? AND read_at IS NULL AND sent_at IS NULL", party).Order("created_at").Find(&list).Error; err == nil {
			for _, n := range list {
				if err := notifications.Send(conn, n); err != nil {
					return
				}
			}
		}

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
