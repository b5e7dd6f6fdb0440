package solwatcher

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mutual/internal/custody"
	"mutual/internal/models"
)

const usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

func TestParseTransfer(t *testing.T) {
	raw := []byte(`{"type":"transferChecked","info":{"authority":"owner1","destination":"vault1","mint":"` + usdcMint + `","source":"src","tokenAmount":{"amount":"2500000","decimals":6,"uiAmountString":"2.5"}}}`)
	dep, ok := ParseTransfer(raw)
	if !ok {
		t.Fatalf("transfer not parsed")
	}
	if dep.Party != "owner1" || dep.Destination != "vault1" || dep.Mint != usdcMint || dep.Amount != 2_500_000 {
		t.Fatalf("unexpected deposit %+v", dep)
	}

	for name, raw := range map[string]string{
		"plain transfer": `{"type":"transfer","info":{"authority":"a","destination":"d","amount":"10"}}`,
		"zero amount":    `{"type":"transferChecked","info":{"authority":"a","destination":"d","mint":"m","tokenAmount":{"amount":"0"}}}`,
		"no authority":   `{"type":"transferChecked","info":{"destination":"d","mint":"m","tokenAmount":{"amount":"5"}}}`,
		"garbage":        `[1,2]`,
	} {
		if _, ok := ParseTransfer([]byte(raw)); ok {
			t.Fatalf("%s: expected rejection", name)
		}
	}
}

func TestWatcherCreditOnce(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:sol_credit?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.Currency{}, &models.Balance{}, &models.Transfer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cur := models.Currency{Symbol: "USDC", Mint: usdcMint, Decimals: 6, IsActive: true}
	db.Create(&cur)

	vault := solana.NewWallet().PublicKey().String()
	party := solana.NewWallet().PublicKey().String()
	w, err := New(db, custody.NewLedger(), "", []string{vault})
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	dep := Deposit{Party: party, Mint: usdcMint, Destination: vault, Amount: 2_000_000}

	ok, err := w.Credit("sig1", 0, dep)
	if err != nil || !ok {
		t.Fatalf("first credit: %v %v", ok, err)
	}
	ok, err = w.Credit("sig1", 0, dep)
	if err != nil || ok {
		t.Fatalf("replayed credit: %v %v", ok, err)
	}
	other := dep
	other.Destination = solana.NewWallet().PublicKey().String()
	if ok, _ := w.Credit("sig2", 0, other); ok {
		t.Fatalf("credited transfer to foreign account")
	}
	unknown := dep
	unknown.Mint = "So11111111111111111111111111111111111111112"
	if ok, _ := w.Credit("sig3", 0, unknown); ok {
		t.Fatalf("credited unknown mint")
	}

	var bal models.Balance
	if err := db.Where("party = ?", party).First(&bal).Error; err != nil {
		t.Fatalf("balance: %v", err)
	}
	if bal.Amount != 2_000_000 {
		t.Fatalf("balance amount %d", bal.Amount)
	}
	if err := w.Start(); err == nil {
		t.Fatalf("start without rpc should fail")
	}
}

func TestWatcherRequiresDepositAccounts(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:sol_no_accounts?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	if _, err := New(db, custody.NewLedger(), "", nil); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := New(db, custody.NewLedger(), "", []string{"not-a-key"}); err == nil {
		t.Fatalf("expected error for bad account")
	}
}
