package escrow

import (
	"time"

	"github.com/holiman/uint256"

	"mutual/internal/models"
)

// Claimable возвращает сумму, которую KOL может получить в момент now.
// Результат никогда не превышает amount - released_amount.
func Claimable(d *models.Deal, now time.Time, pct uint8) uint64 {
	if d == nil || d.ReleasedAmount >= d.Amount {
		return 0
	}
	if d.EligibilityStatus != models.EligibilityPartiallyEligible &&
		d.EligibilityStatus != models.EligibilityFullyEligible {
		return 0
	}
	full := d.EligibilityStatus == models.EligibilityFullyEligible

	amount := uint256.NewInt(d.Amount)
	released := uint256.NewInt(d.ReleasedAmount)
	remaining := new(uint256.Int).Sub(amount, released)

	var out *uint256.Int
	switch d.VestingType {
	case models.VestingTypeNone:
		if !full {
			return 0
		}
		out = remaining
	case models.VestingTypeMarketcap:
		if full {
			out = remaining
			break
		}
		out = satSub(minInt(amount, maxClaimable(amount, pct)), released)
	case models.VestingTypeTime:
		capped := maxClaimable(amount, pct)
		unclaimed := satSub(capped, released)
		if !full {
			out = unclaimed
			break
		}
		linear := linearUnlock(satSub(amount, capped), elapsedSeconds(d.DoneObligationTime, now), d.VestingDuration)
		extra := satSub(linear, satSub(released, capped))
		out = new(uint256.Int).Add(unclaimed, extra)
	default:
		return 0
	}
	return minInt(out, remaining).Uint64()
}

// VestedTotal сумма, разблокированная к моменту now с учётом уже выплаченного.
func VestedTotal(d *models.Deal, now time.Time, pct uint8) uint64 {
	return d.ReleasedAmount + Claimable(d, now, pct)
}

func maxClaimable(amount *uint256.Int, pct uint8) *uint256.Int {
	if pct > 100 {
		pct = 100
	}
	out := new(uint256.Int).Mul(amount, uint256.NewInt(uint64(pct)))
	return out.Div(out, uint256.NewInt(100))
}

func linearUnlock(base *uint256.Int, elapsed, duration int64) *uint256.Int {
	if duration <= 0 || elapsed >= duration {
		return new(uint256.Int).Set(base)
	}
	if elapsed <= 0 {
		return new(uint256.Int)
	}
	out := new(uint256.Int).Mul(base, uint256.NewInt(uint64(elapsed)))
	return out.Div(out, uint256.NewInt(uint64(duration)))
}

func elapsedSeconds(anchor *time.Time, now time.Time) int64 {
	if anchor == nil {
		return 0
	}
	secs := int64(now.Sub(*anchor) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

func satSub(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(a, b)
}

func minInt(a, b *uint256.Int) *uint256.Int {
	if a.Gt(b) {
		return b
	}
	return a
}
