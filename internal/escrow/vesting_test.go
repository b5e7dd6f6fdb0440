package escrow

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mutual/internal/models"
)

func vestingDeal(vt models.VestingType, amount, released uint64, el models.EligibilityStatus) *models.Deal {
	return &models.Deal{
		Amount:            amount,
		ReleasedAmount:    released,
		VestingType:       vt,
		EligibilityStatus: el,
	}
}

func TestClaimable(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(d *models.Deal, duration int64) *models.Deal {
		d.VestingDuration = duration
		d.DoneObligationTime = &t0
		return d
	}
	noAnchor := func(d *models.Deal, duration int64) *models.Deal {
		d.VestingDuration = duration
		return d
	}
	sec := func(n int) time.Time { return t0.Add(time.Duration(n) * time.Second) }

	cases := []struct {
		name string
		deal *models.Deal
		now  time.Time
		pct  uint8
		want uint64
	}{
		{"none not eligible", vestingDeal(models.VestingTypeNone, 1000, 0, models.EligibilityNotEligible), t0, 20, 0},
		{"none partial", vestingDeal(models.VestingTypeNone, 1000, 0, models.EligibilityPartiallyEligible), t0, 20, 0},
		{"none full", vestingDeal(models.VestingTypeNone, 1000, 0, models.EligibilityFullyEligible), t0, 20, 1000},
		{"none full after release", vestingDeal(models.VestingTypeNone, 1000, 250, models.EligibilityFullyEligible), t0, 20, 750},

		{"marketcap not eligible", vestingDeal(models.VestingTypeMarketcap, 500, 0, models.EligibilityNotEligible), t0, 20, 0},
		{"marketcap partial", vestingDeal(models.VestingTypeMarketcap, 500, 0, models.EligibilityPartiallyEligible), t0, 20, 100},
		{"marketcap partial already claimed", vestingDeal(models.VestingTypeMarketcap, 500, 100, models.EligibilityPartiallyEligible), t0, 20, 0},
		{"marketcap partial over claimed", vestingDeal(models.VestingTypeMarketcap, 500, 300, models.EligibilityPartiallyEligible), t0, 20, 0},
		{"marketcap full", vestingDeal(models.VestingTypeMarketcap, 500, 100, models.EligibilityFullyEligible), t0, 20, 400},

		{"time not eligible", at(vestingDeal(models.VestingTypeTime, 1000, 0, models.EligibilityNotEligible), 100), sec(100), 20, 0},
		{"time partial at anchor", at(vestingDeal(models.VestingTypeTime, 1000, 0, models.EligibilityPartiallyEligible), 100), t0, 20, 200},
		{"time partial ignores elapsed", at(vestingDeal(models.VestingTypeTime, 1000, 0, models.EligibilityPartiallyEligible), 100), sec(90), 20, 200},
		{"time full half way", at(vestingDeal(models.VestingTypeTime, 1000, 0, models.EligibilityFullyEligible), 100), sec(50), 20, 600},
		{"time full half way partial claimed", at(vestingDeal(models.VestingTypeTime, 1000, 200, models.EligibilityFullyEligible), 100), sec(50), 20, 400},
		{"time full end", at(vestingDeal(models.VestingTypeTime, 1000, 600, models.EligibilityFullyEligible), 100), sec(100), 20, 400},
		{"time full past end", at(vestingDeal(models.VestingTypeTime, 1000, 0, models.EligibilityFullyEligible), 100), sec(1000), 20, 1000},
		{"time full before anchor", at(vestingDeal(models.VestingTypeTime, 1000, 0, models.EligibilityFullyEligible), 100), sec(-30), 20, 200},
		{"time full no anchor", noAnchor(vestingDeal(models.VestingTypeTime, 1000, 0, models.EligibilityFullyEligible), 100), sec(50), 20, 200},
		{"time full zero duration", at(vestingDeal(models.VestingTypeTime, 1000, 0, models.EligibilityFullyEligible), 0), t0, 20, 1000},
		{"time full zero pct", at(vestingDeal(models.VestingTypeTime, 1000, 0, models.EligibilityFullyEligible), 100), sec(25), 0, 250},
		{"time full hundred pct", at(vestingDeal(models.VestingTypeTime, 1000, 0, models.EligibilityFullyEligible), 100), sec(0), 100, 1000},

		{"fully released", vestingDeal(models.VestingTypeNone, 1000, 1000, models.EligibilityFullyEligible), t0, 20, 0},
		{"unknown type", vestingDeal("OTHER", 1000, 0, models.EligibilityFullyEligible), t0, 20, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Claimable(tc.deal, tc.now, tc.pct))
		})
	}
}

func TestClaimableWideAmounts(t *testing.T) {
	t0 := time.Unix(0, 0)
	d := vestingDeal(models.VestingTypeTime, math.MaxUint64, 0, models.EligibilityFullyEligible)
	d.VestingDuration = math.MaxInt64
	d.DoneObligationTime = &t0
	// произведение amount*pct превышает 64 бита
	got := Claimable(d, t0, 99)
	require.Equal(t, uint64(math.MaxUint64/100*99+math.MaxUint64%100*99/100), got)

	d.EligibilityStatus = models.EligibilityPartiallyEligible
	require.Equal(t, got, Claimable(d, t0.Add(time.Hour), 99))
}

func TestClaimableNeverExceedsRemaining(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	for released := uint64(0); released <= 1000; released += 37 {
		for _, el := range []models.EligibilityStatus{models.EligibilityPartiallyEligible, models.EligibilityFullyEligible} {
			for _, vt := range []models.VestingType{models.VestingTypeNone, models.VestingTypeTime, models.VestingTypeMarketcap} {
				d := vestingDeal(vt, 1000, released, el)
				d.VestingDuration = 60
				d.DoneObligationTime = &t0
				for _, pct := range []uint8{0, 20, 55, 100} {
					got := Claimable(d, t0.Add(30*time.Second), pct)
					require.LessOrEqual(t, released+got, uint64(1000))
				}
			}
		}
	}
}

func TestResolutionSplit(t *testing.T) {
	toKol, toOwner, err := Resolution{Mode: ResolutionCustom, KolAmount: 300}.Split(400)
	require.NoError(t, err)
	require.Equal(t, uint64(300), toKol)
	require.Equal(t, uint64(100), toOwner)

	_, _, err = Resolution{Mode: ResolutionCustom, KolAmount: 401}.Split(400)
	require.ErrorIs(t, err, ErrInvalidCustomAmount)

	toKol, toOwner, err = Resolution{Mode: ResolutionReleaseToKol}.Split(400)
	require.NoError(t, err)
	require.Equal(t, []uint64{400, 0}, []uint64{toKol, toOwner})

	toKol, toOwner, err = Resolution{Mode: ResolutionRefundToProjectOwner}.Split(400)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 400}, []uint64{toKol, toOwner})

	_, _, err = Resolution{Mode: "SPLIT"}.Split(400)
	require.ErrorIs(t, err, ErrInvalidResolution)
}

func TestCanTransition(t *testing.T) {
	require.True(t, CanTransition(models.DealActionAccept, models.DealStatusCreated))
	require.False(t, CanTransition(models.DealActionAccept, models.DealStatusAccepted))
	require.True(t, CanTransition(models.DealActionClaim, models.DealStatusPartialCompleted))
	require.False(t, CanTransition(models.DealActionClaim, models.DealStatusCompleted))
	require.False(t, CanTransition(models.DealActionDispute, models.DealStatusPartialCompleted))
	require.True(t, CanTransition(models.DealActionSetEligibility, models.DealStatusResolved))
	require.False(t, CanTransition("close", models.DealStatusCreated))
	require.True(t, IsTerminal(models.DealStatusRejected))
	require.False(t, IsTerminal(models.DealStatusPartialCompleted))
}
