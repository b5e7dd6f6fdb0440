package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mutual/internal/escrow"
	"mutual/internal/models"
)

// DealActionsResponse ответ со списком доступных действий
// @Description Список действий, доступных подписанту по сделке сейчас.
type DealActionsResponse struct {
	Actions []models.DealAction `json:"actions" swaggertype:"array,string" enums:"accept,reject,claim,dispute,resolve,setEligibility"`
}

// GetDealActions godoc
// @Summary Доступные действия по сделке
// @Description Учитывает роль подписанта и статус сделки. claim попадает в список только при ненулевой доступной сумме.
// @Tags deals
// @Security Signature
// @Produce json
// @Param id path string true "ID сделки"
// @Success 200 {object} DealActionsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /deals/{id}/actions [get]
func GetDealActions(engine *escrow.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		signer, ok := requireSigner(c)
		if !ok {
			return
		}
		actions, err := engine.Actions(c.Request.Context(), c.Param("id"), signer)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, DealActionsResponse{Actions: actions})
	}
}
