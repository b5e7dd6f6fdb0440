package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mutual/internal/models"
)

// GetCurrencies godoc
// @Summary Список активных валют
// @Tags reference
// @Produce json
// @Success 200 {array} models.Currency
// @Router /currencies [get]
func GetCurrencies(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var currencies []models.Currency
		if err := db.Where("is_active = ?", true).Order("symbol").Find(&currencies).Error; err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "db error"})
			return
		}
		c.JSON(http.StatusOK, currencies)
	}
}
