package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"mutual/internal/auth"
	"mutual/internal/custody"
	"mutual/internal/escrow"
)

var log = logging.Logger("handlers")

type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse ошибка API. Code: стабильное имя вида ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var errorTable = []struct {
	err    error
	status int
	code   string
}{
	{escrow.ErrInvalidDealStatus, http.StatusConflict, "InvalidDealStatus"},
	{escrow.ErrUnauthorizedSigner, http.StatusForbidden, "UnauthorizedSigner"},
	{escrow.ErrExceedsVestedAmount, http.StatusUnprocessableEntity, "ExceedsVestedAmount"},
	{escrow.ErrMissingMarketcapAuthorizer, http.StatusBadRequest, "MissingMarketcapAuthorizer"},
	{escrow.ErrUnexpectedMarketcapAuthorizer, http.StatusBadRequest, "UnexpectedMarketcapAuthorizer"},
	{escrow.ErrInvalidMarketcapAuthorizer, http.StatusForbidden, "InvalidMarketcapAuthorizer"},
	{escrow.ErrInvalidPercentage, http.StatusBadRequest, "InvalidPercentage"},
	{escrow.ErrInvalidCustomAmount, http.StatusBadRequest, "InvalidCustomAmount"},
	{escrow.ErrDealNotFound, http.StatusNotFound, "DealNotFound"},
	{escrow.ErrNotInitialized, http.StatusConflict, "NotInitialized"},
	{escrow.ErrAlreadyInitialized, http.StatusConflict, "AlreadyInitialized"},
	{escrow.ErrInvalidAmount, http.StatusBadRequest, "InvalidAmount"},
	{escrow.ErrInvalidVestingType, http.StatusBadRequest, "InvalidVestingType"},
	{escrow.ErrInvalidVestingDuration, http.StatusBadRequest, "InvalidVestingDuration"},
	{escrow.ErrInvalidEligibility, http.StatusBadRequest, "InvalidEligibility"},
	{escrow.ErrInvalidResolution, http.StatusBadRequest, "InvalidResolution"},
	{escrow.ErrInvalidDisputeReason, http.StatusBadRequest, "InvalidDisputeReason"},
	{escrow.ErrInvalidParty, http.StatusBadRequest, "InvalidParty"},
	{escrow.ErrInvalidOrderID, http.StatusBadRequest, "InvalidOrderID"},
	{escrow.ErrUnknownCurrency, http.StatusBadRequest, "UnknownCurrency"},
	{escrow.ErrConcurrentUpdate, http.StatusConflict, "ConcurrentUpdate"},
	{escrow.ErrDuplicateDeal, http.StatusConflict, "DuplicateDeal"},
	{custody.ErrInsufficientFunds, http.StatusUnprocessableEntity, "InsufficientFunds"},
}

// writeError переводит ошибку движка в HTTP-ответ.
func writeError(c *gin.Context, err error) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			c.JSON(e.status, ErrorResponse{Error: e.err.Error(), Code: e.code})
			return
		}
	}
	log.Errorf("%s %s: %s", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// requireSigner возвращает подписанта запроса или отвечает 401.
func requireSigner(c *gin.Context) (string, bool) {
	s, ok := auth.Signer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no signer"})
	}
	return s, ok
}

// errBadRequestWritten означает, что ответ уже записан обработчиком.
var errBadRequestWritten = errors.New("response written")
