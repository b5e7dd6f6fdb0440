package escrow

type ResolutionMode string

const (
	ResolutionReleaseToKol         ResolutionMode = "RELEASE_TO_KOL"
	ResolutionRefundToProjectOwner ResolutionMode = "REFUND_TO_PROJECT_OWNER"
	ResolutionCustom               ResolutionMode = "CUSTOM"
)

// Resolution решение администратора по спору. KolAmount используется только в режиме CUSTOM.
type Resolution struct {
	Mode      ResolutionMode `json:"mode"`
	KolAmount uint64         `json:"kolAmount"`
}

// Split делит остаток сделки между KOL и владельцем проекта.
func (r Resolution) Split(remaining uint64) (toKol, toOwner uint64, err error) {
	switch r.Mode {
	case ResolutionReleaseToKol:
		return remaining, 0, nil
	case ResolutionRefundToProjectOwner:
		return 0, remaining, nil
	case ResolutionCustom:
		if r.KolAmount > remaining {
			return 0, 0, ErrInvalidCustomAmount
		}
		return r.KolAmount, remaining - r.KolAmount, nil
	}
	return 0, 0, ErrInvalidResolution
}
