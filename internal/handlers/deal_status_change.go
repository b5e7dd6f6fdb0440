package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mutual/internal/auth"
	"mutual/internal/escrow"
	"mutual/internal/models"
)

// DisputeRequest тело запроса для открытия спора
type DisputeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ResolveDisputeRequest тело запроса для решения спора
type ResolveDisputeRequest struct {
	Mode      string `json:"mode" binding:"required" enums:"RELEASE_TO_KOL,REFUND_TO_PROJECT_OWNER,CUSTOM"`
	KolAmount uint64 `json:"kolAmount"`
}

// EligibilityRequest новый статус выполнения обязательств
type EligibilityRequest struct {
	Status string `json:"status" binding:"required" enums:"NOT_ELIGIBLE,PARTIALLY_ELIGIBLE,FULLY_ELIGIBLE"`
}

// ClaimResponse результат выплаты KOL
type ClaimResponse struct {
	Deal      DealResponse    `json:"deal"`
	Claimed   uint64          `json:"claimed"`
	ClaimedUI decimal.Decimal `json:"claimedUi"`
}

type dealMutation func(c *gin.Context, signer, dealID string) (*models.Deal, error)

// dealStatusHandler общий каркас обработчиков смены состояния сделки.
func dealStatusHandler(db *gorm.DB, fn dealMutation) gin.HandlerFunc {
	return func(c *gin.Context) {
		signer, ok := requireSigner(c)
		if !ok {
			return
		}
		d, err := fn(c, signer, c.Param("id"))
		if err != nil {
			if err != errBadRequestWritten {
				writeError(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, newDealResponse(db, d))
	}
}

// AcceptDeal godoc
// @Summary Принять сделку
// @Description CREATED -> ACCEPTED. KOL или админ. Фиксирует время принятия.
// @Tags deals
// @Security Signature
// @Produce json
// @Param id path string true "ID сделки"
// @Success 200 {object} handlers.DealResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /deals/{id}/accept [post]
func AcceptDeal(db *gorm.DB, engine *escrow.Engine) gin.HandlerFunc {
	return dealStatusHandler(db, func(c *gin.Context, signer, id string) (*models.Deal, error) {
		return engine.AcceptDeal(c.Request.Context(), signer, id)
	})
}

// RejectDeal godoc
// @Summary Отклонить сделку
// @Description CREATED -> REJECTED. KOL или админ. Сумма возвращается владельцу проекта.
// @Tags deals
// @Security Signature
// @Produce json
// @Param id path string true "ID сделки"
// @Success 200 {object} handlers.DealResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /deals/{id}/reject [post]
func RejectDeal(db *gorm.DB, engine *escrow.Engine) gin.HandlerFunc {
	return dealStatusHandler(db, func(c *gin.Context, signer, id string) (*models.Deal, error) {
		return engine.RejectDeal(c.Request.Context(), signer, id)
	})
}

// ClaimDeal godoc
// @Summary Получить выплату
// @Description KOL или админ, средства получает KOL. Для MARKETCAP сделок нужна аттестация в заголовках X-Attestor и X-Attestation
// @Description (подпись сообщения attest:<dealId>:<releasedAmount>).
// @Tags deals
// @Security Signature
// @Produce json
// @Param id path string true "ID сделки"
// @Param X-Attestor header string false "адрес marketcap authorizer"
// @Param X-Attestation header string false "подпись аттестации"
// @Success 200 {object} handlers.ClaimResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /deals/{id}/claim [post]
func ClaimDeal(db *gorm.DB, engine *escrow.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		signer, ok := requireSigner(c)
		if !ok {
			return
		}
		var att *escrow.Attestation
		if a := c.GetHeader(auth.HeaderAttestor); a != "" {
			att = &escrow.Attestation{Attestor: a, Signature: c.GetHeader(auth.HeaderAttestation)}
		}
		d, claimed, err := engine.ResolveDeal(c.Request.Context(), signer, c.Param("id"), att)
		if err != nil {
			writeError(c, err)
			return
		}
		resp := newDealResponse(db, d)
		c.JSON(http.StatusOK, ClaimResponse{
			Deal:      resp,
			Claimed:   claimed,
			ClaimedUI: resp.Currency.UIAmount(claimed),
		})
	}
}

// OpenDispute godoc
// @Summary Открыть спор
// @Description ACCEPTED -> DISPUTED. Владелец проекта или KOL. Причина до 64 символов.
// @Tags deals
// @Security Signature
// @Accept json
// @Produce json
// @Param id path string true "ID сделки"
// @Param input body handlers.DisputeRequest true "причина"
// @Success 200 {object} handlers.DealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /deals/{id}/dispute [post]
func OpenDispute(db *gorm.DB, engine *escrow.Engine) gin.HandlerFunc {
	return dealStatusHandler(db, func(c *gin.Context, signer, id string) (*models.Deal, error) {
		var r DisputeRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
			return nil, errBadRequestWritten
		}
		return engine.DisputeDeal(c.Request.Context(), signer, id, r.Reason)
	})
}

// ResolveDispute godoc
// @Summary Решить спор
// @Description DISPUTED -> RESOLVED. Только админ, требует X-OTP если настроен секрет. Остаток делится по режиму.
// @Tags deals
// @Security Signature
// @Accept json
// @Produce json
// @Param id path string true "ID сделки"
// @Param input body handlers.ResolveDisputeRequest true "режим и сумма KOL для CUSTOM"
// @Success 200 {object} handlers.DealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /deals/{id}/dispute/resolve [post]
func ResolveDispute(db *gorm.DB, engine *escrow.Engine) gin.HandlerFunc {
	return dealStatusHandler(db, func(c *gin.Context, signer, id string) (*models.Deal, error) {
		var r ResolveDisputeRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
			return nil, errBadRequestWritten
		}
		return engine.ResolveDispute(c.Request.Context(), signer, id, escrow.Resolution{
			Mode:      escrow.ResolutionMode(r.Mode),
			KolAmount: r.KolAmount,
		})
	})
}

// SetEligibility godoc
// @Summary Изменить статус обязательств
// @Description Только админ, требует X-OTP если настроен секрет. Допустим в любом статусе сделки.
// @Tags deals
// @Security Signature
// @Accept json
// @Produce json
// @Param id path string true "ID сделки"
// @Param input body handlers.EligibilityRequest true "новый статус"
// @Success 200 {object} handlers.DealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /deals/{id}/eligibility [put]
func SetEligibility(db *gorm.DB, engine *escrow.Engine) gin.HandlerFunc {
	return dealStatusHandler(db, func(c *gin.Context, signer, id string) (*models.Deal, error) {
		var r EligibilityRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
			return nil, errBadRequestWritten
		}
		return engine.SetEligibilityStatus(c.Request.Context(), signer, id, models.EligibilityStatus(r.Status))
	})
}
