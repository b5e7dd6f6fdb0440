package custody

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mutual/internal/models"
)

func setupLedger(t *testing.T) (*gorm.DB, *Ledger, models.Currency) {
	t.Helper()
	dsn := fmt.Sprintf("file:custody_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Currency{}, &models.Balance{}, &models.Transfer{}))

	cur := models.Currency{Symbol: "USDC", Mint: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", Decimals: 6, IsActive: true}
	require.NoError(t, db.Create(&cur).Error)
	return db, NewLedger(), cur
}

func balanceOf(t *testing.T, db *gorm.DB, party, currencyID string) models.Balance {
	t.Helper()
	var b models.Balance
	err := db.Where("party = ? AND currency_id = ?", party, currencyID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Balance{}
	}
	require.NoError(t, err)
	return b
}

func TestLedgerFundAndRelease(t *testing.T) {
	db, l, cur := setupLedger(t)
	owner, kol := "owner", "kol"

	require.NoError(t, l.Deposit(db, owner, cur.ID, 1000))
	require.NoError(t, l.Transfer(db, Movement{Kind: models.TransferKindFund, DealID: "d1", CurrencyID: cur.ID, From: owner, To: "deal", Amount: 600}))

	b := balanceOf(t, db, owner, cur.ID)
	require.Equal(t, uint64(400), b.Amount)
	require.Equal(t, uint64(600), b.AmountEscrow)

	require.NoError(t, l.Transfer(db, Movement{Kind: models.TransferKindRelease, DealID: "d1", CurrencyID: cur.ID, From: owner, To: kol, Amount: 250}))
	require.NoError(t, l.Transfer(db, Movement{Kind: models.TransferKindRefund, DealID: "d1", CurrencyID: cur.ID, From: owner, To: owner, Amount: 350}))

	b = balanceOf(t, db, owner, cur.ID)
	require.Equal(t, uint64(750), b.Amount)
	require.Zero(t, b.AmountEscrow)
	require.Equal(t, uint64(250), balanceOf(t, db, kol, cur.ID).Amount)

	var rows []models.Transfer
	require.NoError(t, db.Where("deal_id = ?", "d1").Order("created_at, id").Find(&rows).Error)
	require.Len(t, rows, 3)
}

func TestLedgerInsufficientFunds(t *testing.T) {
	db, l, cur := setupLedger(t)
	require.NoError(t, l.Deposit(db, "owner", cur.ID, 100))

	err := l.Transfer(db, Movement{Kind: models.TransferKindFund, CurrencyID: cur.ID, From: "owner", Amount: 101})
	require.ErrorIs(t, err, ErrInsufficientFunds)

	err = l.Transfer(db, Movement{Kind: models.TransferKindRelease, CurrencyID: cur.ID, From: "owner", To: "kol", Amount: 1})
	require.ErrorIs(t, err, ErrInsufficientFunds)

	b := balanceOf(t, db, "owner", cur.ID)
	require.Equal(t, uint64(100), b.Amount)
	require.Zero(t, b.AmountEscrow)
}

func TestLedgerTransferRollsBackWithTx(t *testing.T) {
	db, l, cur := setupLedger(t)
	require.NoError(t, l.Deposit(db, "owner", cur.ID, 100))

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := l.Transfer(tx, Movement{Kind: models.TransferKindFund, CurrencyID: cur.ID, From: "owner", Amount: 60}); err != nil {
			return err
		}
		return l.Transfer(tx, Movement{Kind: models.TransferKindFund, CurrencyID: cur.ID, From: "owner", Amount: 60})
	})
	require.ErrorIs(t, err, ErrInsufficientFunds)

	b := balanceOf(t, db, "owner", cur.ID)
	require.Equal(t, uint64(100), b.Amount)
	require.Zero(t, b.AmountEscrow)
}

func TestLedgerZeroAndUnknown(t *testing.T) {
	db, l, cur := setupLedger(t)

	require.NoError(t, l.Transfer(db, Movement{Kind: models.TransferKindFund, CurrencyID: cur.ID, From: "owner"}))
	var n int64
	require.NoError(t, db.Model(&models.Transfer{}).Count(&n).Error)
	require.Zero(t, n)

	err := l.Transfer(db, Movement{Kind: "burn", CurrencyID: cur.ID, To: "owner", Amount: 1})
	require.ErrorIs(t, err, ErrUnknownTransfer)
}

func TestLedgerReferenceUnique(t *testing.T) {
	db, l, cur := setupLedger(t)
	m := Movement{Kind: models.TransferKindDeposit, CurrencyID: cur.ID, To: "owner", Amount: 5, Reference: "sig#0", Data: map[string]string{"signature": "sig"}}

	require.NoError(t, l.Transfer(db, m))
	err := db.Transaction(func(tx *gorm.DB) error { return l.Transfer(tx, m) })
	require.Error(t, err)
	require.Equal(t, uint64(5), balanceOf(t, db, "owner", cur.ID).Amount)
}

func TestLedgerBalances(t *testing.T) {
	db, l, cur := setupLedger(t)
	sol := models.Currency{Symbol: "SOL", Mint: "So11111111111111111111111111111111111111112", Decimals: 9, IsActive: true}
	require.NoError(t, db.Create(&sol).Error)

	require.NoError(t, l.Deposit(db, "owner", cur.ID, 1))
	require.NoError(t, l.Deposit(db, "owner", sol.ID, 2))
	require.NoError(t, l.Deposit(db, "other", sol.ID, 3))

	list, err := l.Balances(db, "owner")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, b := range list {
		require.NotEmpty(t, b.Currency.Symbol)
	}
}

func TestDeriveDealAddress(t *testing.T) {
	program := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	kol := solana.NewWallet().PublicKey()
	mint := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

	a1, b1, err := DeriveDealAddress(program, "ORDER0001", owner, kol, mint)
	require.NoError(t, err)
	a2, b2, err := DeriveDealAddress(program, "ORDER0001", owner, kol, mint)
	require.NoError(t, err)
	require.Equal(t, a1, a2)
	require.Equal(t, b1, b2)

	other, _, err := DeriveDealAddress(program, "ORDER0002", owner, kol, mint)
	require.NoError(t, err)
	require.NotEqual(t, a1, other)

	swapped, _, err := DeriveDealAddress(program, "ORDER0001", kol, owner, mint)
	require.NoError(t, err)
	require.NotEqual(t, a1, swapped)

	_, _, err = DeriveDealAddress(program, "", owner, kol, mint)
	require.Error(t, err)
	_, _, err = DeriveDealAddress(program, strings.Repeat("x", solana.MaxSeedLength+1), owner, kol, mint)
	require.Error(t, err)
}

func TestVaultAuthorityAndParse(t *testing.T) {
	program := solana.NewWallet().PublicKey()
	v1, err := VaultAuthority(program)
	require.NoError(t, err)
	v2, err := VaultAuthority(program)
	require.NoError(t, err)
	require.Equal(t, v1, v2)

	pk, err := ParsePublicKey(program.String())
	require.NoError(t, err)
	require.Equal(t, program, pk)

	_, err = ParsePublicKey("not-a-key")
	require.Error(t, err)
}
