package services

import (
	"context"
	"encoding/json"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/redis/go-redis/v9"

	"mutual/internal/escrow"
	"mutual/internal/models"
)

var log = logging.Logger("event-cache")

// CachedEvent событие сделки в кэше последних событий.
type CachedEvent struct {
	Type       string            `json:"type"`
	DealID     string            `json:"dealId"`
	Status     models.DealStatus `json:"status"`
	Attributes map[string]string `json:"attributes"`
	At         time.Time         `json:"at"`
}

// EventCache хранит в Redis последние limit событий каждой сделки.
type EventCache struct {
	client *redis.Client
	limit  int64
}

func NewEventCache(client *redis.Client, limit int64) *EventCache {
	if limit <= 0 {
		limit = 100
	}
	return &EventCache{client: client, limit: limit}
}

func eventsKey(dealID string) string { return "deal:" + dealID + ":events" }

func (c *EventCache) Add(ctx context.Context, ev CachedEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	key := eventsKey(ev.DealID)
	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, key, b)
	pipe.LTrim(ctx, key, 0, c.limit-1)
	_, err = pipe.Exec(ctx)
	return err
}

// History возвращает события сделки от старых к новым.
func (c *EventCache) History(ctx context.Context, dealID string) ([]CachedEvent, error) {
	vals, err := c.client.LRange(ctx, eventsKey(dealID), 0, c.limit-1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	res := make([]CachedEvent, 0, len(vals))
	for i := len(vals) - 1; i >= 0; i-- {
		var ev CachedEvent
		if e := json.Unmarshal([]byte(vals[i]), &ev); e == nil {
			res = append(res, ev)
		}
	}
	return res, nil
}

// Emit кладёт событие движка в кэш. События конфигурации не кэшируются.
func (c *EventCache) Emit(ev escrow.Event) {
	if ev.Deal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := c.Add(ctx, CachedEvent{
		Type:       ev.Type,
		DealID:     ev.Deal.ID,
		Status:     ev.Deal.Status,
		Attributes: ev.Attributes,
		At:         ev.At,
	})
	if err != nil {
		log.Warnf("caching %s for deal %s: %s", ev.Type, ev.Deal.ID, err)
	}
}

var _ escrow.Emitter = (*EventCache)(nil)
