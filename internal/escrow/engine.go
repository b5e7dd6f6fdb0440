package escrow

import (
	"context"
	"math"
	"time"

	"github.com/gagliardetto/solana-go"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mutual/internal/auth"
	"mutual/internal/custody"
	"mutual/internal/models"
	"mutual/internal/utils"
)

var log = logging.Logger("escrow")

const (
	maxOrderIDLength       = 16
	maxDisputeReasonLength = 64
)

// Custody перемещает средства внутри транзакции движка.
type Custody interface {
	Transfer(tx *gorm.DB, m custody.Movement) error
}

// Attestation подпись аттестатора маркеткапа над AttestationMessage.
type Attestation struct {
	Attestor  string
	Signature string
}

// CreateDealParams параметры новой сделки. Currency принимает id или символ валюты.
type CreateDealParams struct {
	OrderID             string
	ProjectOwner        string
	Kol                 string
	Currency            string
	Amount              uint64
	VestingType         models.VestingType
	VestingDuration     int64
	MarketcapAuthorizer *string
}

// Engine применяет переходы сделок атомарно: блокировка сделки,
// транзакция БД с блокировкой строки и условное обновление по версии.
type Engine struct {
	db        *gorm.DB
	custody   Custody
	authz     Authorizer
	locker    Locker
	emitter   Emitter
	programID solana.PublicKey
	nowFn     func() time.Time
}

func NewEngine(db *gorm.DB, c Custody, programID solana.PublicKey) *Engine {
	return &Engine{
		db:        db,
		custody:   c,
		authz:     PartyAuthorizer{},
		locker:    NewLocalLocker(),
		emitter:   NoopEmitter{},
		programID: programID,
		nowFn:     time.Now,
	}
}

// SetNowFunc подменяет источник времени. nil возвращает time.Now.
func (e *Engine) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	e.nowFn = now
}

func (e *Engine) SetEmitter(emitter Emitter) {
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	e.emitter = emitter
}

func (e *Engine) SetLocker(l Locker) {
	if l == nil {
		l = NewLocalLocker()
	}
	e.locker = l
}

func (e *Engine) SetAuthorizer(a Authorizer) {
	if a == nil {
		a = PartyAuthorizer{}
	}
	e.authz = a
}

func (e *Engine) Authorizer() Authorizer { return e.authz }

func (e *Engine) now() time.Time { return e.nowFn().UTC() }

func (e *Engine) emit(events []Event) {
	for _, ev := range events {
		e.emitter.Emit(ev)
	}
}

func loadConfig(tx *gorm.DB) (*models.EscrowConfig, error) {
	var cfg models.EscrowConfig
	res := tx.Where("id = ?", models.EscrowConfigID).Limit(1).Find(&cfg)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "loading escrow config")
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotInitialized
	}
	return &cfg, nil
}

// Config возвращает текущую конфигурацию эскроу.
func (e *Engine) Config(ctx context.Context) (*models.EscrowConfig, error) {
	return loadConfig(e.db.WithContext(ctx))
}

// Initialize создаёт конфигурацию. Вызывающий должен быть самим админом.
func (e *Engine) Initialize(ctx context.Context, caller, admin string, pct int) (*models.EscrowConfig, error) {
	if pct < 0 || pct > 100 {
		return nil, ErrInvalidPercentage
	}
	if _, err := custody.ParsePublicKey(admin); err != nil {
		return nil, ErrInvalidParty
	}
	if caller != admin {
		return nil, ErrUnauthorizedSigner
	}
	unlock, err := e.locker.Lock(ctx, "escrow-config")
	if err != nil {
		return nil, err
	}
	defer unlock()

	cfg := models.EscrowConfig{ID: models.EscrowConfigID, Admin: admin, MaxClaimableAfterObligationPct: uint8(pct)}
	var events []Event
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadConfig(tx); err == nil {
			return ErrAlreadyInitialized
		} else if !errors.Is(err, ErrNotInitialized) {
			return err
		}
		if err := tx.Create(&cfg).Error; err != nil {
			return errors.Wrap(err, "creating escrow config")
		}
		events = []Event{newInitializedEvent(&cfg, e.now())}
		return persistEvents(tx, events)
	})
	if err != nil {
		return nil, err
	}
	log.Infow("escrow initialized", "admin", admin, "percentage", pct)
	e.emit(events)
	return &cfg, nil
}

// UpdateMaxClaimablePercentage меняет потолок частичной выплаты. Только админ.
func (e *Engine) UpdateMaxClaimablePercentage(ctx context.Context, caller string, pct int) (*models.EscrowConfig, error) {
	if pct < 0 || pct > 100 {
		return nil, ErrInvalidPercentage
	}
	unlock, err := e.locker.Lock(ctx, "escrow-config")
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		out    *models.EscrowConfig
		events []Event
	)
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cfg, err := loadConfig(tx)
		if err != nil {
			return err
		}
		if !e.authz.IsAuthorized(caller, RoleAdmin, nil, cfg) {
			return ErrUnauthorizedSigner
		}
		old := cfg.MaxClaimableAfterObligationPct
		if err := tx.Model(&models.EscrowConfig{}).Where("id = ?", cfg.ID).
			Update("max_claimable_after_obligation_pct", uint8(pct)).Error; err != nil {
			return errors.Wrap(err, "updating escrow config")
		}
		cfg.MaxClaimableAfterObligationPct = uint8(pct)
		out = cfg
		events = []Event{newPercentageUpdatedEvent(old, uint8(pct), e.now())}
		return persistEvents(tx, events)
	})
	if err != nil {
		return nil, err
	}
	e.emit(events)
	return out, nil
}

// CreateDeal создаёт сделку и блокирует сумму на балансе владельца.
func (e *Engine) CreateDeal(ctx context.Context, caller string, p CreateDealParams) (*models.Deal, error) {
	owner, err := custody.ParsePublicKey(p.ProjectOwner)
	if err != nil {
		return nil, ErrInvalidParty
	}
	kol, err := custody.ParsePublicKey(p.Kol)
	if err != nil || owner.Equals(kol) {
		return nil, ErrInvalidParty
	}
	if caller != p.ProjectOwner {
		return nil, ErrUnauthorizedSigner
	}
	if p.Amount == 0 || p.Amount > math.MaxInt64 {
		return nil, ErrInvalidAmount
	}
	if !p.VestingType.Valid() {
		return nil, ErrInvalidVestingType
	}
	duration := int64(0)
	if p.VestingType == models.VestingTypeTime {
		if p.VestingDuration <= 0 {
			return nil, ErrInvalidVestingDuration
		}
		duration = p.VestingDuration
	}
	if err := validateAuthorizer(p.VestingType, p.MarketcapAuthorizer); err != nil {
		return nil, err
	}
	orderID := p.OrderID
	if orderID == "" {
		if orderID, err = utils.GenerateOrderID(); err != nil {
			return nil, err
		}
	}
	if !validOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	var (
		deal   models.Deal
		events []Event
	)
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadConfig(tx); err != nil {
			return err
		}
		var cur models.Currency
		if err := tx.Where("(id = ? OR symbol = ?) AND is_active = ?", p.Currency, p.Currency, true).First(&cur).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownCurrency
			}
			return errors.Wrap(err, "loading currency")
		}
		mint, err := custody.ParsePublicKey(cur.Mint)
		if err != nil {
			return errors.Wrap(err, "currency mint")
		}
		addr, _, err := custody.DeriveDealAddress(e.programID, orderID, owner, kol, mint)
		if err != nil {
			return err
		}
		var existing int64
		if err := tx.Model(&models.Deal{}).Where("address = ?", addr.String()).Count(&existing).Error; err != nil {
			return errors.Wrap(err, "checking deal address")
		}
		if existing > 0 {
			return ErrDuplicateDeal
		}
		now := e.now()
		deal = models.Deal{
			Address:             addr.String(),
			OrderID:             orderID,
			ProjectOwner:        p.ProjectOwner,
			Kol:                 p.Kol,
			CurrencyID:          cur.ID,
			Amount:              p.Amount,
			VestingType:         p.VestingType,
			VestingDuration:     duration,
			StartTime:           now,
			Status:              models.DealStatusCreated,
			EligibilityStatus:   models.EligibilityNotEligible,
			MarketcapAuthorizer: p.MarketcapAuthorizer,
		}
		if err := tx.Create(&deal).Error; err != nil {
			return errors.Wrap(err, "creating deal")
		}
		if err := e.custody.Transfer(tx, custody.Movement{
			Kind:       models.TransferKindFund,
			DealID:     deal.ID,
			CurrencyID: cur.ID,
			From:       deal.ProjectOwner,
			To:         deal.Address,
			Amount:     deal.Amount,
		}); err != nil {
			return err
		}
		events = []Event{newDealCreatedEvent(&deal, now)}
		return persistEvents(tx, events)
	})
	if err != nil {
		return nil, err
	}
	log.Infow("deal created", "deal", deal.ID, "order", deal.OrderID, "amount", deal.Amount)
	e.emit(events)
	return &deal, nil
}

// AcceptDeal KOL или админ принимает сделку.
func (e *Engine) AcceptDeal(ctx context.Context, caller, dealID string) (*models.Deal, error) {
	return e.mutate(ctx, dealID, func(tx *gorm.DB, d *models.Deal, cfg *models.EscrowConfig, now time.Time) ([]Event, error) {
		if err := checkTransition(e.authz, models.DealActionAccept, caller, d, cfg); err != nil {
			return nil, err
		}
		d.Status = models.DealStatusAccepted
		d.AcceptTime = &now
		return []Event{newStatusChangedEvent(d, now)}, nil
	})
}

// RejectDeal отклоняет сделку и возвращает всю сумму владельцу.
func (e *Engine) RejectDeal(ctx context.Context, caller, dealID string) (*models.Deal, error) {
	return e.mutate(ctx, dealID, func(tx *gorm.DB, d *models.Deal, cfg *models.EscrowConfig, now time.Time) ([]Event, error) {
		if err := checkTransition(e.authz, models.DealActionReject, caller, d, cfg); err != nil {
			return nil, err
		}
		if err := e.custody.Transfer(tx, custody.Movement{
			Kind:       models.TransferKindRefund,
			DealID:     d.ID,
			CurrencyID: d.CurrencyID,
			From:       d.ProjectOwner,
			To:         d.ProjectOwner,
			Amount:     d.Remaining(),
		}); err != nil {
			return nil, err
		}
		d.Status = models.DealStatusRejected
		return []Event{newStatusChangedEvent(d, now)}, nil
	})
}

// ResolveDeal выплачивает KOL всю доступную на текущий момент сумму.
// Возвращает обновлённую сделку и выплаченную сумму.
func (e *Engine) ResolveDeal(ctx context.Context, caller, dealID string, att *Attestation) (*models.Deal, uint64, error) {
	var claimed uint64
	deal, err := e.mutate(ctx, dealID, func(tx *gorm.DB, d *models.Deal, cfg *models.EscrowConfig, now time.Time) ([]Event, error) {
		if err := checkTransition(e.authz, models.DealActionClaim, caller, d, cfg); err != nil {
			return nil, err
		}
		if err := checkAttestation(d, att); err != nil {
			return nil, err
		}
		amount := Claimable(d, now, cfg.MaxClaimableAfterObligationPct)
		if amount == 0 {
			return nil, ErrExceedsVestedAmount
		}
		if err := e.custody.Transfer(tx, custody.Movement{
			Kind:       models.TransferKindRelease,
			DealID:     d.ID,
			CurrencyID: d.CurrencyID,
			From:       d.ProjectOwner,
			To:         d.Kol,
			Amount:     amount,
		}); err != nil {
			return nil, err
		}
		d.ReleasedAmount += amount
		if d.ReleasedAmount >= d.Amount {
			d.Status = models.DealStatusCompleted
		} else {
			d.Status = models.DealStatusPartialCompleted
		}
		claimed = amount
		return []Event{newClaimedEvent(d, amount, now), newStatusChangedEvent(d, now)}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return deal, claimed, nil
}

// DisputeDeal открывает спор по принятой сделке.
func (e *Engine) DisputeDeal(ctx context.Context, caller, dealID, reason string) (*models.Deal, error) {
	if reason == "" || len(reason) > maxDisputeReasonLength {
		return nil, ErrInvalidDisputeReason
	}
	return e.mutate(ctx, dealID, func(tx *gorm.DB, d *models.Deal, cfg *models.EscrowConfig, now time.Time) ([]Event, error) {
		if err := checkTransition(e.authz, models.DealActionDispute, caller, d, cfg); err != nil {
			return nil, err
		}
		d.Status = models.DealStatusDisputed
		d.DisputeReason = &reason
		ev := newStatusChangedEvent(d, now)
		ev.Attributes["reason"] = reason
		return []Event{ev}, nil
	})
}

// ResolveDispute применяет решение админа к остатку сделки.
func (e *Engine) ResolveDispute(ctx context.Context, caller, dealID string, r Resolution) (*models.Deal, error) {
	return e.mutate(ctx, dealID, func(tx *gorm.DB, d *models.Deal, cfg *models.EscrowConfig, now time.Time) ([]Event, error) {
		if err := checkTransition(e.authz, models.DealActionResolve, caller, d, cfg); err != nil {
			return nil, err
		}
		toKol, toOwner, err := r.Split(d.Remaining())
		if err != nil {
			return nil, err
		}
		moves := []custody.Movement{
			{Kind: models.TransferKindRelease, To: d.Kol, Amount: toKol},
			{Kind: models.TransferKindRefund, To: d.ProjectOwner, Amount: toOwner},
		}
		for _, m := range moves {
			m.DealID, m.CurrencyID, m.From = d.ID, d.CurrencyID, d.ProjectOwner
			m.Data = map[string]string{"resolution": string(r.Mode)}
			if err := e.custody.Transfer(tx, m); err != nil {
				return nil, err
			}
		}
		d.ReleasedAmount += toKol
		d.Status = models.DealStatusResolved
		return []Event{newDisputeResolvedEvent(d, r, toKol, toOwner, now), newStatusChangedEvent(d, now)}, nil
	})
}

// SetEligibilityStatus админ меняет статус выполнения обязательств в любом статусе сделки.
// Переход NotEligible -> PartiallyEligible фиксирует done_obligation_time.
func (e *Engine) SetEligibilityStatus(ctx context.Context, caller, dealID string, status models.EligibilityStatus) (*models.Deal, error) {
	if !status.Valid() {
		return nil, ErrInvalidEligibility
	}
	return e.mutate(ctx, dealID, func(tx *gorm.DB, d *models.Deal, cfg *models.EscrowConfig, now time.Time) ([]Event, error) {
		if err := checkTransition(e.authz, models.DealActionSetEligibility, caller, d, cfg); err != nil {
			return nil, err
		}
		old := d.EligibilityStatus
		d.EligibilityStatus = status
		if status == models.EligibilityPartiallyEligible && old == models.EligibilityNotEligible && d.DoneObligationTime == nil {
			d.DoneObligationTime = &now
		}
		return []Event{newEligibilityEvent(d, old, now)}, nil
	})
}

// CheckClaimableAmount сумма, доступная к выплате сейчас. Не изменяет состояние.
func (e *Engine) CheckClaimableAmount(ctx context.Context, dealID string) (uint64, error) {
	db := e.db.WithContext(ctx)
	cfg, err := loadConfig(db)
	if err != nil {
		return 0, err
	}
	d, err := findDeal(db, dealID)
	if err != nil {
		return 0, err
	}
	if !CanTransition(models.DealActionClaim, d.Status) {
		return 0, nil
	}
	return Claimable(d, e.now(), cfg.MaxClaimableAfterObligationPct), nil
}

// Deal загружает сделку по id.
func (e *Engine) Deal(ctx context.Context, dealID string) (*models.Deal, error) {
	return findDeal(e.db.WithContext(ctx), dealID)
}

// Actions действия, доступные caller по сделке.
func (e *Engine) Actions(ctx context.Context, dealID, caller string) ([]models.DealAction, error) {
	db := e.db.WithContext(ctx)
	cfg, err := loadConfig(db)
	if err != nil {
		return nil, err
	}
	d, err := findDeal(db, dealID)
	if err != nil {
		return nil, err
	}
	return AvailableActions(e.authz, d, cfg, caller, e.now()), nil
}

// ExpireCreated отклоняет от имени админа сделки, не принятые за maxAge.
func (e *Engine) ExpireCreated(ctx context.Context, maxAge time.Duration, limit int) (int, error) {
	cfg, err := e.Config(ctx)
	if err != nil {
		return 0, err
	}
	var ids []string
	if err := e.db.WithContext(ctx).Model(&models.Deal{}).
		Where("status = ? AND start_time <= ?", models.DealStatusCreated, e.now().Add(-maxAge)).
		Order("start_time").Limit(limit).Pluck("id", &ids).Error; err != nil {
		return 0, errors.Wrap(err, "listing stale deals")
	}
	expired := 0
	for _, id := range ids {
		if _, err := e.RejectDeal(ctx, cfg.Admin, id); err != nil {
			if !errors.Is(err, ErrInvalidDealStatus) {
				log.Warnf("expiring deal %s: %s", id, err)
			}
			continue
		}
		expired++
	}
	return expired, nil
}

type mutation func(tx *gorm.DB, d *models.Deal, cfg *models.EscrowConfig, now time.Time) ([]Event, error)

func (e *Engine) mutate(ctx context.Context, dealID string, fn mutation) (*models.Deal, error) {
	unlock, err := e.locker.Lock(ctx, "deal:"+dealID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		out    models.Deal
		events []Event
	)
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cfg, err := loadConfig(tx)
		if err != nil {
			return err
		}
		var d models.Deal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", dealID).First(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDealNotFound
			}
			return errors.Wrap(err, "loading deal")
		}
		version := d.Version
		now := e.now()
		evs, err := fn(tx, &d, cfg, now)
		if err != nil {
			return err
		}
		d.Version = version + 1
		d.UpdatedAt = now
		res := tx.Model(&models.Deal{}).
			Where("id = ? AND version = ?", d.ID, version).
			Updates(map[string]any{
				"released_amount":      d.ReleasedAmount,
				"status":               d.Status,
				"eligibility_status":   d.EligibilityStatus,
				"accept_time":          d.AcceptTime,
				"done_obligation_time": d.DoneObligationTime,
				"dispute_reason":       d.DisputeReason,
				"version":              d.Version,
				"updated_at":           d.UpdatedAt,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "updating deal")
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentUpdate
		}
		if err := persistEvents(tx, evs); err != nil {
			return errors.Wrap(err, "writing deal events")
		}
		out, events = d, evs
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.emit(events)
	return &out, nil
}

func findDeal(db *gorm.DB, dealID string) (*models.Deal, error) {
	var d models.Deal
	if err := db.Where("id = ?", dealID).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, errors.Wrap(err, "loading deal")
	}
	return &d, nil
}

func validateAuthorizer(vt models.VestingType, authorizer *string) error {
	if vt != models.VestingTypeMarketcap {
		if authorizer != nil {
			return ErrUnexpectedMarketcapAuthorizer
		}
		return nil
	}
	if authorizer == nil || *authorizer == "" {
		return ErrMissingMarketcapAuthorizer
	}
	if _, err := custody.ParsePublicKey(*authorizer); err != nil {
		return ErrInvalidMarketcapAuthorizer
	}
	return nil
}

// checkAttestation сверяет аттестацию с авторизатором сделки и текущим released_amount.
func checkAttestation(d *models.Deal, att *Attestation) error {
	if d.VestingType != models.VestingTypeMarketcap {
		if att != nil {
			return ErrUnexpectedMarketcapAuthorizer
		}
		return nil
	}
	if att == nil || att.Attestor == "" {
		return ErrMissingMarketcapAuthorizer
	}
	if d.MarketcapAuthorizer == nil || att.Attestor != *d.MarketcapAuthorizer {
		return ErrInvalidMarketcapAuthorizer
	}
	if err := auth.Verify(att.Attestor, att.Signature, auth.AttestationMessage(d.ID, d.ReleasedAmount)); err != nil {
		return ErrInvalidMarketcapAuthorizer
	}
	return nil
}

func validOrderID(id string) bool {
	if id == "" || len(id) > maxOrderIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
