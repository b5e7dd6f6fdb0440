package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mutual/internal/escrow"
)

// InitializeEscrowRequest параметры инициализации эскроу.
type InitializeEscrowRequest struct {
	Admin                          string `json:"admin" binding:"required"`
	MaxClaimableAfterObligationPct *int   `json:"maxClaimableAfterObligationPct" binding:"required"`
}

// UpdatePercentageRequest новый процент выплаты после выполнения обязательств.
type UpdatePercentageRequest struct {
	Percentage *int `json:"percentage" binding:"required"`
}

// InitializeEscrow godoc
// @Summary Инициализация эскроу
// @Description Создаёт глобальную конфигурацию. Подписант должен совпадать с admin. Повторный вызов возвращает 409.
// @Tags escrow
// @Security Signature
// @Accept json
// @Produce json
// @Param input body handlers.InitializeEscrowRequest true "админ и процент"
// @Success 201 {object} models.EscrowConfig
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /escrow/initialize [post]
func InitializeEscrow(engine *escrow.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		signer, ok := requireSigner(c)
		if !ok {
			return
		}
		var r InitializeEscrowRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
			return
		}
		cfg, err := engine.Initialize(c.Request.Context(), signer, r.Admin, *r.MaxClaimableAfterObligationPct)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cfg)
	}
}

// GetEscrowConfig godoc
// @Summary Конфигурация эскроу
// @Tags escrow
// @Produce json
// @Success 200 {object} models.EscrowConfig
// @Failure 409 {object} ErrorResponse
// @Router /escrow/config [get]
func GetEscrowConfig(engine *escrow.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := engine.Config(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cfg)
	}
}

// UpdateMaxClaimablePercentage godoc
// @Summary Изменить процент выплаты
// @Description Только админ. Требует X-OTP, если настроен секрет.
// @Tags escrow
// @Security Signature
// @Accept json
// @Produce json
// @Param input body handlers.UpdatePercentageRequest true "процент 0..100"
// @Success 200 {object} models.EscrowConfig
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /escrow/config/percentage [put]
func UpdateMaxClaimablePercentage(engine *escrow.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		signer, ok := requireSigner(c)
		if !ok {
			return
		}
		var r UpdatePercentageRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
			return
		}
		cfg, err := engine.UpdateMaxClaimablePercentage(c.Request.Context(), signer, *r.Percentage)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cfg)
	}
}
