package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mutual/internal/custody"
	"mutual/internal/models"
)

// BalanceResponse баланс участника с суммами в токенах.
type BalanceResponse struct {
	models.Balance
	Currency       models.Currency `json:"currency"`
	AmountUI       decimal.Decimal `json:"amountUi"`
	AmountEscrowUI decimal.Decimal `json:"amountEscrowUi"`
}

// ListBalances godoc
// @Summary Балансы подписанта
// @Description amountEscrow заблокировано в сделках, где подписант владелец проекта.
// @Tags balances
// @Security Signature
// @Produce json
// @Success 200 {array} handlers.BalanceResponse
// @Router /balances [get]
func ListBalances(db *gorm.DB, ledger *custody.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		signer, ok := requireSigner(c)
		if !ok {
			return
		}
		balances, err := ledger.Balances(db.WithContext(c.Request.Context()), signer)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "db error"})
			return
		}
		resp := make([]BalanceResponse, 0, len(balances))
		for _, b := range balances {
			resp = append(resp, BalanceResponse{
				Balance:        b,
				Currency:       b.Currency,
				AmountUI:       b.Currency.UIAmount(b.Amount),
				AmountEscrowUI: b.Currency.UIAmount(b.AmountEscrow),
			})
		}
		c.JSON(http.StatusOK, resp)
	}
}
