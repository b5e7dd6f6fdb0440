package handlers

import (
	"context"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"mutual/internal/escrow"
)

var expirerLog = logging.Logger("expirer")

// DealExpirer периодически отклоняет сделки, не принятые KOL за отведённое время.
type DealExpirer struct {
	engine   *escrow.Engine
	maxAge   time.Duration
	interval time.Duration
	stopCh   chan struct{}
}

func NewDealExpirer(engine *escrow.Engine, maxAge, interval time.Duration) *DealExpirer {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &DealExpirer{engine: engine, maxAge: maxAge, interval: interval, stopCh: make(chan struct{})}
}

// Start запускает периодическую проверку в отдельной горутине
func (e *DealExpirer) Start() {
	if e.maxAge <= 0 {
		expirerLog.Info("deal expiry disabled")
		return
	}
	ticker := time.NewTicker(e.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.expireOnce(context.Background())
			case <-e.stopCh:
				return
			}
		}
	}()
}

// Stop останавливает проверку
func (e *DealExpirer) Stop() { close(e.stopCh) }

func (e *DealExpirer) expireOnce(ctx context.Context) int {
	n, err := e.engine.ExpireCreated(ctx, e.maxAge, 100)
	if err != nil {
		if !errors.Is(err, escrow.ErrNotInitialized) {
			expirerLog.Warnf("expiring deals: %s", err)
		}
		return 0
	}
	if n > 0 {
		expirerLog.Infof("expired %d deals", n)
	}
	return n
}
