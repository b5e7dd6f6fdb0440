package escrow

import (
	"time"

	"mutual/internal/models"
)

type transition struct {
	from []models.DealStatus
	role Role
}

// transitions разрешённые исходные статусы и роль для каждого действия.
// Пустой from означает любой статус.
var transitions = map[models.DealAction]transition{
	models.DealActionAccept:         {from: []models.DealStatus{models.DealStatusCreated}, role: RoleKolOrAdmin},
	models.DealActionReject:         {from: []models.DealStatus{models.DealStatusCreated}, role: RoleKolOrAdmin},
	models.DealActionClaim:          {from: []models.DealStatus{models.DealStatusAccepted, models.DealStatusPartialCompleted}, role: RoleKolOrAdmin},
	models.DealActionDispute:        {from: []models.DealStatus{models.DealStatusAccepted}, role: RoleOwnerOrKol},
	models.DealActionResolve:        {from: []models.DealStatus{models.DealStatusDisputed}, role: RoleAdmin},
	models.DealActionSetEligibility: {role: RoleAdmin},
}

var actionOrder = []models.DealAction{
	models.DealActionAccept,
	models.DealActionReject,
	models.DealActionClaim,
	models.DealActionDispute,
	models.DealActionResolve,
	models.DealActionSetEligibility,
}

// CanTransition сообщает, допустимо ли действие из статуса.
func CanTransition(action models.DealAction, status models.DealStatus) bool {
	t, ok := transitions[action]
	if !ok {
		return false
	}
	if len(t.from) == 0 {
		return true
	}
	for _, s := range t.from {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal true для статусов, из которых нет переходов.
func IsTerminal(status models.DealStatus) bool {
	switch status {
	case models.DealStatusRejected, models.DealStatusCompleted, models.DealStatusResolved:
		return true
	}
	return false
}

func checkTransition(authz Authorizer, action models.DealAction, caller string, deal *models.Deal, cfg *models.EscrowConfig) error {
	t, ok := transitions[action]
	if !ok {
		return ErrInvalidDealStatus
	}
	if !authz.IsAuthorized(caller, t.role, deal, cfg) {
		return ErrUnauthorizedSigner
	}
	if !CanTransition(action, deal.Status) {
		return ErrInvalidDealStatus
	}
	return nil
}

// AvailableActions действия, которые caller может выполнить над сделкой сейчас.
// Получение средств включается только при ненулевой доступной сумме.
func AvailableActions(authz Authorizer, deal *models.Deal, cfg *models.EscrowConfig, caller string, now time.Time) []models.DealAction {
	actions := []models.DealAction{}
	for _, a := range actionOrder {
		if checkTransition(authz, a, caller, deal, cfg) != nil {
			continue
		}
		if a == models.DealActionClaim && Claimable(deal, now, cfg.MaxClaimableAfterObligationPct) == 0 {
			continue
		}
		actions = append(actions, a)
	}
	return actions
}
