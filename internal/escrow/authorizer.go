package escrow

import "mutual/internal/models"

// Role требуемая роль вызывающего для операции.
type Role int

const (
	RoleOwner Role = iota
	RoleKolOrAdmin
	RoleOwnerOrKol
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleKolOrAdmin:
		return "kol-or-admin"
	case RoleOwnerOrKol:
		return "owner-or-kol"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}

// Authorizer проверяет, что подписант запроса обладает ролью в сделке.
// Подлинность подписи проверяется раньше, на уровне транспорта.
type Authorizer interface {
	IsAuthorized(caller string, role Role, deal *models.Deal, cfg *models.EscrowConfig) bool
}

// PartyAuthorizer сравнивает подписанта с участниками сделки и админом.
type PartyAuthorizer struct{}

func (PartyAuthorizer) IsAuthorized(caller string, role Role, deal *models.Deal, cfg *models.EscrowConfig) bool {
	if caller == "" {
		return false
	}
	isAdmin := cfg != nil && cfg.Admin == caller
	switch role {
	case RoleAdmin:
		return isAdmin
	case RoleOwner:
		return deal != nil && deal.ProjectOwner == caller
	case RoleKolOrAdmin:
		return isAdmin || (deal != nil && deal.Kol == caller)
	case RoleOwnerOrKol:
		return deal != nil && (deal.ProjectOwner == caller || deal.Kol == caller)
	}
	return false
}
