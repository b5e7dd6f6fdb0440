package escrow

import "github.com/pkg/errors"

// Ошибки движка эскроу. Ни одна ошибка не изменяет состояние сделки.
var (
	ErrInvalidDealStatus             = errors.New("invalid deal status")
	ErrUnauthorizedSigner            = errors.New("unauthorized signer")
	ErrExceedsVestedAmount           = errors.New("exceeds vested amount")
	ErrMissingMarketcapAuthorizer    = errors.New("missing marketcap authorizer")
	ErrUnexpectedMarketcapAuthorizer = errors.New("unexpected marketcap authorizer")
	ErrInvalidMarketcapAuthorizer    = errors.New("invalid marketcap authorizer")
	ErrInvalidPercentage             = errors.New("invalid percentage")
	ErrInvalidCustomAmount           = errors.New("invalid custom amount")

	ErrDealNotFound           = errors.New("deal not found")
	ErrNotInitialized         = errors.New("escrow not initialized")
	ErrAlreadyInitialized     = errors.New("escrow already initialized")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidVestingType     = errors.New("invalid vesting type")
	ErrInvalidVestingDuration = errors.New("invalid vesting duration")
	ErrInvalidEligibility     = errors.New("invalid eligibility status")
	ErrInvalidResolution      = errors.New("invalid dispute resolution")
	ErrInvalidDisputeReason   = errors.New("invalid dispute reason")
	ErrInvalidParty           = errors.New("invalid party")
	ErrInvalidOrderID         = errors.New("invalid order id")
	ErrUnknownCurrency        = errors.New("unknown currency")
	ErrConcurrentUpdate       = errors.New("concurrent deal update")
	ErrDuplicateDeal          = errors.New("deal already exists")
)
