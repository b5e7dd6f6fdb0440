package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mutual/internal/escrow"
	"mutual/internal/models"
)

// CreateDealRequest тело запроса на создание сделки.
// Сумма задаётся либо в минимальных единицах (amount), либо в токенах (uiAmount).
type CreateDealRequest struct {
	OrderID             string  `json:"orderId"`
	Kol                 string  `json:"kol" binding:"required"`
	Currency            string  `json:"currency" binding:"required"`
	Amount              *uint64 `json:"amount"`
	UIAmount            string  `json:"uiAmount"`
	VestingType         string  `json:"vestingType" binding:"required" enums:"NONE,TIME,MARKETCAP"`
	VestingDuration     int64   `json:"vestingDuration"`
	MarketcapAuthorizer *string `json:"marketcapAuthorizer"`
}

// DealResponse сделка с валютой и суммами в токенах.
type DealResponse struct {
	models.Deal
	Currency         models.Currency `json:"currency"`
	AmountUI         decimal.Decimal `json:"amountUi"`
	ReleasedAmountUI decimal.Decimal `json:"releasedAmountUi"`
}

func newDealResponse(db *gorm.DB, d *models.Deal) DealResponse {
	resp := DealResponse{Deal: *d, Currency: d.Currency}
	if resp.Currency.ID == "" {
		db.Where("id = ?", d.CurrencyID).First(&resp.Currency)
	}
	resp.AmountUI = resp.Currency.UIAmount(d.Amount)
	resp.ReleasedAmountUI = resp.Currency.UIAmount(d.ReleasedAmount)
	return resp
}

func canViewDeal(engine *escrow.Engine, cfg *models.EscrowConfig, caller string, d *models.Deal) bool {
	authz := engine.Authorizer()
	return authz.IsAuthorized(caller, escrow.RoleOwnerOrKol, d, cfg) ||
		authz.IsAuthorized(caller, escrow.RoleAdmin, d, cfg)
}

// CreateDeal godoc
// @Summary Создать сделку
// @Description Владелец проекта (подписант) создаёт сделку и блокирует сумму на своём балансе. Статус CREATED.
// @Tags deals
// @Security Signature
// @Accept json
// @Produce json
// @Param input body handlers.CreateDealRequest true "параметры сделки"
// @Success 201 {object} handlers.DealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /deals [post]
func CreateDeal(db *gorm.DB, engine *escrow.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		signer, ok := requireSigner(c)
		if !ok {
			return
		}
		var r CreateDealRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
			return
		}
		amount, err := requestAmount(db, r.Currency, r.Amount, r.UIAmount)
		if err != nil {
			writeError(c, err)
			return
		}
		d, err := engine.CreateDeal(c.Request.Context(), signer, escrow.CreateDealParams{
			OrderID:             r.OrderID,
			ProjectOwner:        signer,
			Kol:                 r.Kol,
			Currency:            r.Currency,
			Amount:              amount,
			VestingType:         models.VestingType(r.VestingType),
			VestingDuration:     r.VestingDuration,
			MarketcapAuthorizer: r.MarketcapAuthorizer,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newDealResponse(db, d))
	}
}

// requestAmount переводит сумму запроса в минимальные единицы валюты.
func requestAmount(db *gorm.DB, currency string, units *uint64, ui string) (uint64, error) {
	if units != nil {
		if ui != "" {
			return 0, escrow.ErrInvalidAmount
		}
		return *units, nil
	}
	if ui == "" {
		return 0, escrow.ErrInvalidAmount
	}
	var cur models.Currency
	if err := db.Where("id = ? OR symbol = ?", currency, currency).First(&cur).Error; err != nil {
		return 0, escrow.ErrUnknownCurrency
	}
	amt, err := decimal.NewFromString(ui)
	if err != nil || !amt.IsPositive() {
		return 0, escrow.ErrInvalidAmount
	}
	n := cur.Units(amt)
	if !n.IsUint64() {
		return 0, escrow.ErrInvalidAmount
	}
	return n.Uint64(), nil
}

// ListDeals godoc
// @Summary Список сделок подписанта
// @Tags deals
// @Security Signature
// @Produce json
// @Param role query string false "owner, kol или пусто для обеих ролей"
// @Param status query string false "фильтр по статусу"
// @Param limit query int false "лимит"
// @Param offset query int false "смещение"
// @Success 200 {array} handlers.DealResponse
// @Router /deals [get]
func ListDeals(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		signer, ok := requireSigner(c)
		if !ok {
			return
		}
		limit, offset := parsePagination(c)
		q := db.Preload("Currency")
		switch c.Query("role") {
		case "owner":
			q = q.Where("project_owner = ?", signer)
		case "kol":
			q = q.Where("kol = ?", signer)
		case "":
			q = q.Where("project_owner = ? OR kol = ?", signer, signer)
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid role"})
			return
		}
		if s := c.Query("status"); s != "" {
			q = q.Where("status = ?", s)
		}
		var deals []models.Deal
		if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&deals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "db error"})
			return
		}
		resp := make([]DealResponse, 0, len(deals))
		for i := range deals {
			resp = append(resp, newDealResponse(db, &deals[i]))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetDeal godoc
// @Summary Просмотр сделки
// @Tags deals
// @Security Signature
// @Produce json
// @Param id path string true "ID сделки"
// @Success 200 {object} handlers.DealResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /deals/{id} [get]
func GetDeal(db *gorm.DB, engine *escrow.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ok := loadViewableDeal(c, engine)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, newDealResponse(db, d))
	}
}

// loadViewableDeal загружает сделку, доступную подписанту, или пишет ошибку.
func loadViewableDeal(c *gin.Context, engine *escrow.Engine) (*models.Deal, bool) {
	signer, ok := requireSigner(c)
	if !ok {
		return nil, false
	}
	ctx := c.Request.Context()
	cfg, err := engine.Config(ctx)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	d, err := engine.Deal(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if !canViewDeal(engine, cfg, signer, d) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden", Code: "UnauthorizedSigner"})
		return nil, false
	}
	return d, true
}

// ClaimableResponse доступная к выплате сумма.
type ClaimableResponse struct {
	DealID         string          `json:"dealId"`
	Claimable      uint64          `json:"claimable"`
	ClaimableUI    decimal.Decimal `json:"claimableUi"`
	ReleasedAmount uint64          `json:"releasedAmount"`
	Amount         uint64          `json:"amount"`
	At             time.Time       `json:"at"`
}

// GetClaimable godoc
// @Summary Доступная к выплате сумма
// @Description Только чтение, не изменяет сделку. Аттестация маркеткапа не требуется.
// @Tags deals
// @Security Signature
// @Produce json
// @Param id path string true "ID сделки"
// @Success 200 {object} handlers.ClaimableResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /deals/{id}/claimable [get]
func GetClaimable(db *gorm.DB, engine *escrow.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ok := loadViewableDeal(c, engine)
		if !ok {
			return
		}
		amount, err := engine.CheckClaimableAmount(c.Request.Context(), d.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		var cur models.Currency
		db.Where("id = ?", d.CurrencyID).First(&cur)
		c.JSON(http.StatusOK, ClaimableResponse{
			DealID:         d.ID,
			Claimable:      amount,
			ClaimableUI:    cur.UIAmount(amount),
			ReleasedAmount: d.ReleasedAmount,
			Amount:         d.Amount,
			At:             time.Now().UTC(),
		})
	}
}
