package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mutual/internal/escrow"
	"mutual/internal/models"
	"mutual/internal/services"
)

// GetDealEvents godoc
// @Summary История событий сделки
// @Description Последние события из Redis, при пустом кэше читается журнал в БД. Порядок от старых к новым.
// @Tags deals
// @Security Signature
// @Produce json
// @Param id path string true "ID сделки"
// @Param limit query int false "лимит для журнала в БД"
// @Param offset query int false "смещение для журнала в БД"
// @Success 200 {array} services.CachedEvent
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /deals/{id}/events [get]
func GetDealEvents(db *gorm.DB, engine *escrow.Engine, cache *services.EventCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ok := loadViewableDeal(c, engine)
		if !ok {
			return
		}
		if cache != nil {
			history, err := cache.History(c.Request.Context(), d.ID)
			if err != nil {
				log.Warnf("event cache for deal %s: %s", d.ID, err)
			} else if len(history) > 0 {
				c.JSON(http.StatusOK, history)
				return
			}
		}
		limit, offset := parsePagination(c)
		var rows []models.DealEvent
		if err := db.Where("deal_id = ?", d.ID).Order("created_at asc").
			Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "db error"})
			return
		}
		res := make([]services.CachedEvent, 0, len(rows))
		for _, r := range rows {
			ev := services.CachedEvent{Type: r.Type, DealID: d.ID, At: r.CreatedAt}
			if err := json.Unmarshal(r.Payload, &ev.Attributes); err == nil {
				ev.Status = models.DealStatus(ev.Attributes["status"])
			}
			res = append(res, ev)
		}
		c.JSON(http.StatusOK, res)
	}
}
