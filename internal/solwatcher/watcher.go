package solwatcher

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	ws "github.com/gagliardetto/solana-go/rpc/ws"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"mutual/internal/custody"
	"mutual/internal/models"
)

var log = logging.Logger("custody")

// Watcher отслеживает SPL-переводы на депозитные счета хранилища и зачисляет их на баланс отправителя.
type Watcher struct {
	wsClient     *ws.Client
	rpcClient    *rpc.Client
	db           *gorm.DB
	ledger       *custody.Ledger
	destinations map[string]bool
}

// Deposit входящий перевод, распознанный в транзакции.
type Deposit struct {
	Party       string
	Mint        string
	Destination string
	Amount      uint64
}

// New создаёт наблюдателя. destinations: token-счета хранилища для депозитов.
func New(db *gorm.DB, ledger *custody.Ledger, rpcURL string, destinations []string) (*Watcher, error) {
	if len(destinations) == 0 {
		return nil, errors.New("deposit accounts required")
	}
	w := &Watcher{db: db, ledger: ledger, destinations: map[string]bool{}}
	for _, d := range destinations {
		pk, err := custody.ParsePublicKey(strings.TrimSpace(d))
		if err != nil {
			return nil, errors.Wrapf(err, "deposit account %q", d)
		}
		w.destinations[pk.String()] = true
	}
	if rpcURL == "" {
		return w, nil
	}
	wsClient, err := ws.Connect(context.Background(), rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "connecting solana ws")
	}
	w.wsClient = wsClient
	httpURL := rpcURL
	if strings.HasPrefix(httpURL, "wss://") {
		httpURL = "https://" + strings.TrimPrefix(httpURL, "wss://")
	} else if strings.HasPrefix(httpURL, "ws://") {
		httpURL = "http://" + strings.TrimPrefix(httpURL, "ws://")
	}
	w.rpcClient = rpc.New(httpURL)
	return w, nil
}

// Start запускает подписку на финализированные логи.
func (w *Watcher) Start() error {
	if w.wsClient == nil {
		return errors.New("solana rpc url required")
	}
	sub, err := w.wsClient.LogsSubscribe(ws.LogsSubscribeFilterAll, rpc.CommitmentFinalized)
	if err != nil {
		return errors.Wrap(err, "subscribing to logs")
	}
	go w.handleLogs(sub)
	return nil
}

func (w *Watcher) handleLogs(sub *ws.LogSubscription) {
	ctx := context.Background()
	for {
		res, err := sub.Recv(ctx)
		if err != nil {
			log.Errorf("sol logs recv: %s", err)
			return
		}
		if res.Value.Err != nil {
			continue
		}
		w.processSignature(ctx, res.Value.Signature)
	}
}

func (w *Watcher) processSignature(ctx context.Context, sig solana.Signature) {
	tx, err := w.rpcClient.GetParsedTransaction(ctx, sig, nil)
	if err != nil || tx == nil || tx.Transaction == nil {
		return
	}
	for i, inst := range tx.Transaction.Message.Instructions {
		if inst.Program != "spl-token" || inst.Parsed == nil {
			continue
		}
		raw, err := json.Marshal(inst.Parsed)
		if err != nil {
			continue
		}
		dep, ok := ParseTransfer(raw)
		if !ok {
			continue
		}
		if _, err := w.Credit(sig.String(), i, dep); err != nil {
			log.Warnf("deposit %s#%d: %s", sig, i, err)
		}
	}
}

// ParseTransfer разбирает инструкцию transferChecked. Обычный transfer без mint не принимается.
func ParseTransfer(parsed []byte) (Deposit, bool) {
	var info rpc.InstructionInfo
	if err := json.Unmarshal(parsed, &info); err != nil || info.InstructionType != "transferChecked" {
		return Deposit{}, false
	}
	dep := Deposit{}
	dep.Mint, _ = info.Info["mint"].(string)
	dep.Destination, _ = info.Info["destination"].(string)
	dep.Party, _ = info.Info["authority"].(string)
	if dep.Party == "" {
		dep.Party, _ = info.Info["multisigAuthority"].(string)
	}
	ta, _ := info.Info["tokenAmount"].(map[string]interface{})
	amountStr, _ := ta["amount"].(string)
	amount, err := strconv.ParseUint(amountStr, 10, 64)
	if err != nil || amount == 0 || amount > math.MaxInt64 {
		return Deposit{}, false
	}
	dep.Amount = amount
	if dep.Mint == "" || dep.Destination == "" || dep.Party == "" {
		return Deposit{}, false
	}
	return dep, true
}

// Credit зачисляет депозит один раз на пару (подпись, номер инструкции).
// Возвращает false, если перевод не на депозитный счёт, валюта неизвестна или уже учтён.
func (w *Watcher) Credit(signature string, index int, dep Deposit) (bool, error) {
	if !w.destinations[dep.Destination] {
		return false, nil
	}
	var cur models.Currency
	if err := w.db.Where("mint = ? AND is_active = ?", dep.Mint, true).First(&cur).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "loading currency")
	}
	ref := signature + "#" + strconv.Itoa(index)
	credited := false
	err := w.db.Transaction(func(tx *gorm.DB) error {
		var seen int64
		if err := tx.Model(&models.Transfer{}).
			Where("kind = ? AND reference = ?", models.TransferKindDeposit, ref).
			Count(&seen).Error; err != nil {
			return errors.Wrap(err, "checking deposit")
		}
		if seen > 0 {
			return nil
		}
		if err := w.ledger.Transfer(tx, custody.Movement{
			Kind:       models.TransferKindDeposit,
			CurrencyID: cur.ID,
			To:         dep.Party,
			Amount:     dep.Amount,
			Reference:  ref,
			Data:       map[string]string{"signature": signature, "destination": dep.Destination},
		}); err != nil {
			return err
		}
		credited = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if credited {
		log.Infow("deposit credited", "party", dep.Party, "currency", cur.Symbol, "amount", dep.Amount, "ref", ref)
	}
	return credited, nil
}
