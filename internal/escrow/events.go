package escrow

import (
	"encoding/json"
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mutual/internal/models"
)

const (
	EventTypeEscrowInitialized             = "EscrowInitialized"
	EventTypeMaxClaimablePercentageUpdated = "MaxClaimablePercentageUpdated"
	EventTypeDealCreated                   = "DealCreated"
	EventTypeDealStatusChanged             = "DealStatusChanged"
	EventTypeDealClaimed                   = "DealClaimed"
	EventTypeEligibilityUpdated            = "EligibilityUpdated"
	EventTypeDisputeResolved               = "DisputeResolved"
)

// Event событие движка. Deal пуст для событий конфигурации.
type Event struct {
	Type       string            `json:"type"`
	Deal       *models.Deal      `json:"deal,omitempty"`
	Attributes map[string]string `json:"attributes"`
	At         time.Time         `json:"at"`
}

// Emitter получает события после фиксации транзакции.
type Emitter interface {
	Emit(Event)
}

// NoopEmitter отбрасывает события.
type NoopEmitter struct{}

func (NoopEmitter) Emit(Event) {}

// Emitters рассылает событие каждому получателю по порядку.
type Emitters []Emitter

func (es Emitters) Emit(ev Event) {
	for _, e := range es {
		if e != nil {
			e.Emit(ev)
		}
	}
}

// EmitterFunc адаптер функции к Emitter.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(ev Event) { f(ev) }

func dealAttributes(d *models.Deal) map[string]string {
	return map[string]string{
		"orderId": d.OrderID,
		"deal":    d.Address,
		"owner":   d.ProjectOwner,
		"kol":     d.Kol,
		"amount":  strconv.FormatUint(d.Amount, 10),
	}
}

func newDealCreatedEvent(d *models.Deal, at time.Time) Event {
	return Event{Type: EventTypeDealCreated, Deal: d, Attributes: dealAttributes(d), At: at}
}

func newStatusChangedEvent(d *models.Deal, at time.Time) Event {
	attrs := dealAttributes(d)
	attrs["status"] = string(d.Status)
	return Event{Type: EventTypeDealStatusChanged, Deal: d, Attributes: attrs, At: at}
}

func newClaimedEvent(d *models.Deal, claimed uint64, at time.Time) Event {
	attrs := dealAttributes(d)
	attrs["claimed"] = strconv.FormatUint(claimed, 10)
	attrs["releasedAmount"] = strconv.FormatUint(d.ReleasedAmount, 10)
	return Event{Type: EventTypeDealClaimed, Deal: d, Attributes: attrs, At: at}
}

func newEligibilityEvent(d *models.Deal, old models.EligibilityStatus, at time.Time) Event {
	attrs := dealAttributes(d)
	attrs["old"] = string(old)
	attrs["new"] = string(d.EligibilityStatus)
	return Event{Type: EventTypeEligibilityUpdated, Deal: d, Attributes: attrs, At: at}
}

func newDisputeResolvedEvent(d *models.Deal, r Resolution, toKol, toOwner uint64, at time.Time) Event {
	attrs := dealAttributes(d)
	attrs["mode"] = string(r.Mode)
	attrs["kolAmount"] = strconv.FormatUint(toKol, 10)
	attrs["ownerAmount"] = strconv.FormatUint(toOwner, 10)
	return Event{Type: EventTypeDisputeResolved, Deal: d, Attributes: attrs, At: at}
}

func newPercentageUpdatedEvent(old, updated uint8, at time.Time) Event {
	return Event{
		Type: EventTypeMaxClaimablePercentageUpdated,
		Attributes: map[string]string{
			"old": strconv.Itoa(int(old)),
			"new": strconv.Itoa(int(updated)),
		},
		At: at,
	}
}

func newInitializedEvent(cfg *models.EscrowConfig, at time.Time) Event {
	return Event{
		Type: EventTypeEscrowInitialized,
		Attributes: map[string]string{
			"admin":      cfg.Admin,
			"percentage": strconv.Itoa(int(cfg.MaxClaimableAfterObligationPct)),
		},
		At: at,
	}
}

// persistEvents пишет журнал событий в рамках транзакции операции.
func persistEvents(tx *gorm.DB, events []Event) error {
	for _, ev := range events {
		payload, err := json.Marshal(ev.Attributes)
		if err != nil {
			return err
		}
		row := models.DealEvent{Type: ev.Type, Payload: datatypes.JSON(payload), CreatedAt: ev.At}
		if ev.Deal != nil {
			id := ev.Deal.ID
			row.DealID = &id
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
