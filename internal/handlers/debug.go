package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mutual/internal/custody"
	"mutual/internal/models"
)

// DebugDepositor зачисляет тестовые средства на баланс.
type DebugDepositor interface {
	Deposit(tx *gorm.DB, party, currencyID string, amount uint64) error
}

type DebugDepositRequest struct {
	Party    string `json:"party" binding:"required"`
	Currency string `json:"currency" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
}

// DebugDeposit godoc
// @Summary      Тестовый депозит
// @Description  Зачисляет сумму в токенах на баланс участника. Доступно только вне prod.
// @Tags         debug
// @Accept       json
// @Produce      json
// @Param        request body DebugDepositRequest true "Запрос"
// @Success      200 {object} handlers.BalanceResponse
// @Failure      400 {object} ErrorResponse
// @Router       /debug/deposit [post]
func DebugDeposit(db *gorm.DB, depositor DebugDepositor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DebugDepositRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if _, err := custody.ParsePublicKey(req.Party); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid party"})
			return
		}
		var cur models.Currency
		if err := db.Where("id = ? OR symbol = ?", req.Currency, req.Currency).First(&cur).Error; err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown currency", Code: "UnknownCurrency"})
			return
		}
		amt, err := decimal.NewFromString(req.Amount)
		if err != nil || !amt.IsPositive() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid amount"})
			return
		}
		units := cur.Units(amt)
		if !units.IsUint64() || units.Sign() == 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid amount"})
			return
		}
		var bal models.Balance
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := depositor.Deposit(tx, req.Party, cur.ID, units.Uint64()); err != nil {
				return err
			}
			return tx.Where("party = ? AND currency_id = ?", req.Party, cur.ID).First(&bal).Error
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, BalanceResponse{
			Balance:        bal,
			Currency:       cur,
			AmountUI:       cur.UIAmount(bal.Amount),
			AmountEscrowUI: cur.UIAmount(bal.AmountEscrow),
		})
	}
}
