package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"mutual/internal/auth"
	"mutual/internal/escrow"
	"mutual/internal/models"
)

func TestCreateDealUIAmount(t *testing.T) {
	env := setupTest(t)
	d := env.createDeal(t, CreateDealRequest{OrderID: "promo-1", UIAmount: "12.5", VestingType: "NONE"})
	if d.Amount != 12_500_000 {
		t.Fatalf("amount %d", d.Amount)
	}
	if !d.AmountUI.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("amountUi %s", d.AmountUI)
	}
	if d.Status != models.DealStatusCreated || d.Currency.Symbol != "USDC" {
		t.Fatalf("unexpected deal %+v", d)
	}
	owner := env.balance(t, env.owner.PublicKey().String())
	if owner.Amount != 10_000_000_000-12_500_000 || owner.AmountEscrow != 12_500_000 {
		t.Fatalf("owner balance %+v", owner)
	}

	// та же сделка повторно
	w := env.do(t, env.owner, http.MethodPost, "/deals", CreateDealRequest{
		OrderID: "promo-1", Kol: env.kol.PublicKey().String(), Currency: "USDC", UIAmount: "12.5", VestingType: "NONE",
	}, nil)
	if w.Code != http.StatusConflict || decode[ErrorResponse](t, w).Code != "DuplicateDeal" {
		t.Fatalf("duplicate status %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateDealValidation(t *testing.T) {
	env := setupTest(t)
	kol := env.kol.PublicKey().String()
	cases := []struct {
		name string
		req  CreateDealRequest
		code string
	}{
		{"no amount", CreateDealRequest{Kol: kol, Currency: "USDC", VestingType: "NONE"}, "InvalidAmount"},
		{"both amounts", CreateDealRequest{Kol: kol, Currency: "USDC", Amount: u64(1), UIAmount: "1", VestingType: "NONE"}, "InvalidAmount"},
		{"unknown currency", CreateDealRequest{Kol: kol, Currency: "DOGE", Amount: u64(1), VestingType: "NONE"}, "UnknownCurrency"},
		{"bad vesting", CreateDealRequest{Kol: kol, Currency: "USDC", Amount: u64(1), VestingType: "WEEKLY"}, "InvalidVestingType"},
		{"time without duration", CreateDealRequest{Kol: kol, Currency: "USDC", Amount: u64(1), VestingType: "TIME"}, "InvalidVestingDuration"},
		{"marketcap without authorizer", CreateDealRequest{Kol: kol, Currency: "USDC", Amount: u64(1), VestingType: "MARKETCAP"}, "MissingMarketcapAuthorizer"},
		{"kol is owner", CreateDealRequest{Kol: env.owner.PublicKey().String(), Currency: "USDC", Amount: u64(1), VestingType: "NONE"}, "InvalidParty"},
		{"bad order id", CreateDealRequest{OrderID: "a/b", Kol: kol, Currency: "USDC", Amount: u64(1), VestingType: "NONE"}, "InvalidOrderID"},
	}
	for _, tc := range cases {
		w := env.do(t, env.owner, http.MethodPost, "/deals", tc.req, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d: %s", tc.name, w.Code, w.Body.String())
		}
		if got := decode[ErrorResponse](t, w).Code; got != tc.code {
			t.Fatalf("%s: code %s, want %s", tc.name, got, tc.code)
		}
	}

	w := env.do(t, env.owner, http.MethodPost, "/deals", CreateDealRequest{Kol: kol, Currency: "USDC", Amount: u64(20_000_000_000), VestingType: "NONE"}, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("insufficient funds status %d", w.Code)
	}
}

func TestDealRequiresSignature(t *testing.T) {
	env := setupTest(t)
	w := env.do(t, nil, http.MethodGet, "/deals", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", w.Code)
	}
}

func TestDealNoneVestingFlow(t *testing.T) {
	env := setupTest(t)
	d := env.createDeal(t, CreateDealRequest{Amount: u64(1000), VestingType: "NONE"})
	path := "/deals/" + d.ID

	// владелец не может принять сделку
	if w := env.do(t, env.owner, http.MethodPost, path+"/accept", nil, nil); w.Code != http.StatusForbidden {
		t.Fatalf("owner accept status %d", w.Code)
	}
	w := env.do(t, env.kol, http.MethodPost, path+"/accept", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("accept status %d: %s", w.Code, w.Body.String())
	}
	if got := decode[DealResponse](t, w); got.Status != models.DealStatusAccepted || got.AcceptTime == nil {
		t.Fatalf("accepted deal %+v", got)
	}

	w = env.do(t, env.kol, http.MethodPost, path+"/claim", nil, nil)
	if w.Code != http.StatusUnprocessableEntity || decode[ErrorResponse](t, w).Code != "ExceedsVestedAmount" {
		t.Fatalf("early claim status %d: %s", w.Code, w.Body.String())
	}

	// только админ меняет статус обязательств
	if w := env.do(t, env.kol, http.MethodPut, path+"/eligibility", EligibilityRequest{Status: "FULLY_ELIGIBLE"}, nil); w.Code != http.StatusForbidden {
		t.Fatalf("kol eligibility status %d", w.Code)
	}
	w = env.do(t, env.admin, http.MethodPut, path+"/eligibility", EligibilityRequest{Status: "FULLY_ELIGIBLE"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("eligibility status %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, env.kol, http.MethodGet, path+"/claimable", nil, nil)
	if w.Code != http.StatusOK || decode[ClaimableResponse](t, w).Claimable != 1000 {
		t.Fatalf("claimable %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, env.kol, http.MethodPost, path+"/claim", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("claim status %d: %s", w.Code, w.Body.String())
	}
	claim := decode[ClaimResponse](t, w)
	if claim.Claimed != 1000 || claim.Deal.Status != models.DealStatusCompleted {
		t.Fatalf("claim %+v", claim)
	}
	if !claim.ClaimedUI.Equal(decimal.RequireFromString("0.001")) {
		t.Fatalf("claimedUi %s", claim.ClaimedUI)
	}
	if kol := env.balance(t, env.kol.PublicKey().String()); kol.Amount != 1000 {
		t.Fatalf("kol balance %+v", kol)
	}

	w = env.do(t, env.kol, http.MethodPost, path+"/claim", nil, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("claim after completion status %d", w.Code)
	}
}

func TestDealMarketcapClaim(t *testing.T) {
	env := setupTest(t)
	oracle := newKey()
	authorizer := oracle.PublicKey().String()
	d := env.createDeal(t, CreateDealRequest{Amount: u64(1000), VestingType: "MARKETCAP", MarketcapAuthorizer: &authorizer})
	path := "/deals/" + d.ID
	if w := env.do(t, env.kol, http.MethodPost, path+"/accept", nil, nil); w.Code != http.StatusOK {
		t.Fatalf("accept status %d", w.Code)
	}
	if w := env.do(t, env.admin, http.MethodPut, path+"/eligibility", EligibilityRequest{Status: "PARTIALLY_ELIGIBLE"}, nil); w.Code != http.StatusOK {
		t.Fatalf("eligibility status %d", w.Code)
	}

	w := env.do(t, env.kol, http.MethodPost, path+"/claim", nil, nil)
	if w.Code != http.StatusBadRequest || decode[ErrorResponse](t, w).Code != "MissingMarketcapAuthorizer" {
		t.Fatalf("claim without attestation %d: %s", w.Code, w.Body.String())
	}

	sig, err := auth.Sign(oracle, auth.AttestationMessage(d.ID, 0))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	att := map[string]string{auth.HeaderAttestor: authorizer, auth.HeaderAttestation: sig}
	w = env.do(t, env.kol, http.MethodPost, path+"/claim", nil, att)
	if w.Code != http.StatusOK {
		t.Fatalf("claim status %d: %s", w.Code, w.Body.String())
	}
	if claim := decode[ClaimResponse](t, w); claim.Claimed != 200 || claim.Deal.Status != models.DealStatusPartialCompleted {
		t.Fatalf("claim %+v", claim)
	}

	// аттестация привязана к released_amount
	w = env.do(t, env.kol, http.MethodPost, path+"/claim", nil, att)
	if w.Code != http.StatusForbidden {
		t.Fatalf("replayed attestation status %d", w.Code)
	}
}

func TestDealDisputeFlow(t *testing.T) {
	env := setupTest(t)
	d := env.createDeal(t, CreateDealRequest{Amount: u64(1000), VestingType: "TIME", VestingDuration: 1000})
	path := "/deals/" + d.ID
	if w := env.do(t, env.kol, http.MethodPost, path+"/accept", nil, nil); w.Code != http.StatusOK {
		t.Fatalf("accept status %d", w.Code)
	}

	if w := env.do(t, env.owner, http.MethodPost, path+"/dispute", DisputeRequest{Reason: ""}, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("empty reason status %d", w.Code)
	}
	w := env.do(t, env.owner, http.MethodPost, path+"/dispute", DisputeRequest{Reason: "no posts published"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dispute status %d: %s", w.Code, w.Body.String())
	}
	if got := decode[DealResponse](t, w); got.Status != models.DealStatusDisputed || got.DisputeReason == nil {
		t.Fatalf("disputed deal %+v", got)
	}

	if w := env.do(t, env.owner, http.MethodPost, path+"/dispute/resolve", ResolveDisputeRequest{Mode: "CUSTOM", KolAmount: 300}, nil); w.Code != http.StatusForbidden {
		t.Fatalf("owner resolve status %d", w.Code)
	}
	if w := env.do(t, env.admin, http.MethodPost, path+"/dispute/resolve", ResolveDisputeRequest{Mode: "CUSTOM", KolAmount: 1001}, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("oversized custom status %d", w.Code)
	}
	w = env.do(t, env.admin, http.MethodPost, path+"/dispute/resolve", ResolveDisputeRequest{Mode: "CUSTOM", KolAmount: 300}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("resolve status %d: %s", w.Code, w.Body.String())
	}
	got := decode[DealResponse](t, w)
	if got.Status != models.DealStatusResolved || got.ReleasedAmount != 300 {
		t.Fatalf("resolved deal %+v", got)
	}
	owner := env.balance(t, env.owner.PublicKey().String())
	if owner.AmountEscrow != 0 || owner.Amount != 10_000_000_000-300 {
		t.Fatalf("owner balance %+v", owner)
	}
	if kol := env.balance(t, env.kol.PublicKey().String()); kol.Amount != 300 {
		t.Fatalf("kol balance %+v", kol)
	}
}

func TestRejectAndExpire(t *testing.T) {
	env := setupTest(t)
	d := env.createDeal(t, CreateDealRequest{Amount: u64(500), VestingType: "NONE"})
	w := env.do(t, env.kol, http.MethodPost, "/deals/"+d.ID+"/reject", nil, nil)
	if w.Code != http.StatusOK || decode[DealResponse](t, w).Status != models.DealStatusRejected {
		t.Fatalf("reject status %d: %s", w.Code, w.Body.String())
	}
	if owner := env.balance(t, env.owner.PublicKey().String()); owner.Amount != 10_000_000_000 || owner.AmountEscrow != 0 {
		t.Fatalf("owner balance %+v", owner)
	}

	stale := env.createDeal(t, CreateDealRequest{Amount: u64(500), VestingType: "NONE"})
	env.now = env.now.Add(2 * time.Hour)
	fresh := env.createDeal(t, CreateDealRequest{Amount: u64(500), VestingType: "NONE"})

	exp := NewDealExpirer(env.engine, time.Hour, time.Minute)
	if n := exp.expireOnce(t.Context()); n != 1 {
		t.Fatalf("expired %d", n)
	}
	var gotStale, gotFresh models.Deal
	env.db.Where("id = ?", stale.ID).First(&gotStale)
	if gotStale.Status != models.DealStatusRejected {
		t.Fatalf("stale deal status %s", gotStale.Status)
	}
	env.db.Where("id = ?", fresh.ID).First(&gotFresh)
	if gotFresh.Status != models.DealStatusCreated {
		t.Fatalf("fresh deal status %s", gotFresh.Status)
	}
}

func TestListAndGetDeals(t *testing.T) {
	env := setupTest(t)
	d1 := env.createDeal(t, CreateDealRequest{Amount: u64(100), VestingType: "NONE"})
	env.createDeal(t, CreateDealRequest{Amount: u64(200), VestingType: "NONE"})

	w := env.do(t, env.kol, http.MethodGet, "/deals?role=kol", nil, nil)
	if w.Code != http.StatusOK || len(decode[[]DealResponse](t, w)) != 2 {
		t.Fatalf("kol list %d: %s", w.Code, w.Body.String())
	}
	w = env.do(t, env.kol, http.MethodGet, "/deals?role=owner", nil, nil)
	if w.Code != http.StatusOK || len(decode[[]DealResponse](t, w)) != 0 {
		t.Fatalf("kol as owner list %d: %s", w.Code, w.Body.String())
	}
	w = env.do(t, env.owner, http.MethodGet, "/deals?status=CREATED&limit=1", nil, nil)
	if w.Code != http.StatusOK || len(decode[[]DealResponse](t, w)) != 1 {
		t.Fatalf("owner list %d: %s", w.Code, w.Body.String())
	}
	if w := env.do(t, env.owner, http.MethodGet, "/deals?role=viewer", nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad role status %d", w.Code)
	}

	if w := env.do(t, env.admin, http.MethodGet, "/deals/"+d1.ID, nil, nil); w.Code != http.StatusOK {
		t.Fatalf("admin get status %d", w.Code)
	}
	if w := env.do(t, newKey(), http.MethodGet, "/deals/"+d1.ID, nil, nil); w.Code != http.StatusForbidden {
		t.Fatalf("stranger get status %d", w.Code)
	}
	if w := env.do(t, env.owner, http.MethodGet, "/deals/missing", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing status %d", w.Code)
	}
}

func TestDealActionsAndEvents(t *testing.T) {
	env := setupTest(t)
	d := env.createDeal(t, CreateDealRequest{Amount: u64(100), VestingType: "NONE"})
	path := "/deals/" + d.ID

	w := env.do(t, env.kol, http.MethodGet, path+"/actions", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("actions status %d", w.Code)
	}
	actions := decode[DealActionsResponse](t, w).Actions
	if len(actions) != 2 || actions[0] != models.DealActionAccept || actions[1] != models.DealActionReject {
		t.Fatalf("kol actions %v", actions)
	}
	w = env.do(t, env.owner, http.MethodGet, path+"/actions", nil, nil)
	if got := decode[DealActionsResponse](t, w).Actions; len(got) != 0 {
		t.Fatalf("owner actions %v", got)
	}

	env.now = env.now.Add(time.Second)
	env.do(t, env.kol, http.MethodPost, path+"/accept", nil, nil)
	w = env.do(t, env.owner, http.MethodGet, path+"/events", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("events status %d", w.Code)
	}
	events := decode[[]struct {
		Type   string            `json:"type"`
		Status models.DealStatus `json:"status"`
	}](t, w)
	if len(events) != 2 || events[0].Type != escrow.EventTypeDealCreated || events[1].Status != models.DealStatusAccepted {
		t.Fatalf("events %+v", events)
	}
}

func TestEscrowConfigEndpoints(t *testing.T) {
	env := setupTest(t)
	w := env.do(t, nil, http.MethodGet, "/escrow/config", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("config status %d", w.Code)
	}
	if cfg := decode[models.EscrowConfig](t, w); cfg.MaxClaimableAfterObligationPct != 20 {
		t.Fatalf("config %+v", cfg)
	}

	pct := 50
	w = env.do(t, env.admin, http.MethodPost, "/escrow/initialize", InitializeEscrowRequest{Admin: env.admin.PublicKey().String(), MaxClaimableAfterObligationPct: &pct}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("second initialize status %d", w.Code)
	}

	if w := env.do(t, env.owner, http.MethodPut, "/escrow/config/percentage", UpdatePercentageRequest{Percentage: &pct}, nil); w.Code != http.StatusForbidden {
		t.Fatalf("owner update status %d", w.Code)
	}
	over := 101
	if w := env.do(t, env.admin, http.MethodPut, "/escrow/config/percentage", UpdatePercentageRequest{Percentage: &over}, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("over 100 status %d", w.Code)
	}
	w = env.do(t, env.admin, http.MethodPut, "/escrow/config/percentage", UpdatePercentageRequest{Percentage: &pct}, nil)
	if w.Code != http.StatusOK || decode[models.EscrowConfig](t, w).MaxClaimableAfterObligationPct != 50 {
		t.Fatalf("update status %d: %s", w.Code, w.Body.String())
	}
}
