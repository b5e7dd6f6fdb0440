package custody

import (
	"encoding/json"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mutual/internal/models"
)

var log = logging.Logger("custody")

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownTransfer   = errors.New("unknown transfer kind")
)

// Movement одно перемещение средств по книге.
// fund: From.amount -> From.amount_escrow;
// release и refund: From.amount_escrow -> To.amount;
// deposit: внешнее пополнение To.amount.
type Movement struct {
	Kind       models.TransferKind
	DealID     string
	CurrencyID string
	From       string
	To         string
	Amount     uint64
	// Reference уникальный внешний идентификатор, например подпись транзакции.
	Reference string
	Data      map[string]string
}

// Ledger учёт балансов участников. Все изменения выполняются внутри транзакции вызывающего.
type Ledger struct{}

func NewLedger() *Ledger { return &Ledger{} }

// Transfer применяет перемещение целиком или возвращает ошибку без изменений.
func (l *Ledger) Transfer(tx *gorm.DB, m Movement) error {
	if m.Amount == 0 {
		return nil
	}
	switch m.Kind {
	case models.TransferKindDeposit:
		if err := credit(tx, m.To, m.CurrencyID, "amount", m.Amount); err != nil {
			return err
		}
	case models.TransferKindFund:
		if err := debit(tx, m.From, m.CurrencyID, "amount", m.Amount); err != nil {
			return err
		}
		if err := credit(tx, m.From, m.CurrencyID, "amount_escrow", m.Amount); err != nil {
			return err
		}
	case models.TransferKindRelease, models.TransferKindRefund:
		if err := debit(tx, m.From, m.CurrencyID, "amount_escrow", m.Amount); err != nil {
			return err
		}
		if err := credit(tx, m.To, m.CurrencyID, "amount", m.Amount); err != nil {
			return err
		}
	default:
		return errors.Wrapf(ErrUnknownTransfer, "kind %q", m.Kind)
	}
	row := models.Transfer{
		CurrencyID:  m.CurrencyID,
		FromAddress: m.From,
		ToAddress:   m.To,
		Amount:      m.Amount,
		Kind:        m.Kind,
	}
	if m.DealID != "" {
		id := m.DealID
		row.DealID = &id
	}
	if m.Reference != "" {
		ref := m.Reference
		row.Reference = &ref
	}
	if len(m.Data) > 0 {
		b, err := json.Marshal(m.Data)
		if err != nil {
			return err
		}
		row.Data = datatypes.JSON(b)
	}
	if err := tx.Create(&row).Error; err != nil {
		return errors.Wrap(err, "writing transfer journal")
	}
	log.Debugf("%s %d of %s from %q to %q", m.Kind, m.Amount, m.CurrencyID, m.From, m.To)
	return nil
}

// Deposit зачисляет внешнее пополнение на баланс участника.
func (l *Ledger) Deposit(tx *gorm.DB, party, currencyID string, amount uint64) error {
	return l.Transfer(tx, Movement{Kind: models.TransferKindDeposit, CurrencyID: currencyID, To: party, Amount: amount})
}

// Balances возвращает все балансы участника.
func (l *Ledger) Balances(db *gorm.DB, party string) ([]models.Balance, error) {
	var out []models.Balance
	if err := db.Preload("Currency").Where("party = ?", party).Order("currency_id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func debit(tx *gorm.DB, party, currencyID, column string, amount uint64) error {
	res := tx.Model(&models.Balance{}).
		Where("party = ? AND currency_id = ? AND "+column+" >= ?", party, currencyID, amount).
		Update(column, gorm.Expr(column+" - ?", amount))
	if res.Error != nil {
		return errors.Wrap(res.Error, "debiting balance")
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

func credit(tx *gorm.DB, party, currencyID, column string, amount uint64) error {
	bal := models.Balance{Party: party, CurrencyID: currencyID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&bal).Error; err != nil {
		return errors.Wrap(err, "opening balance")
	}
	res := tx.Model(&models.Balance{}).
		Where("party = ? AND currency_id = ?", party, currencyID).
		Update(column, gorm.Expr(column+" + ?", amount))
	if res.Error != nil {
		return errors.Wrap(res.Error, "crediting balance")
	}
	return nil
}
