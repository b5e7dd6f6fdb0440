package escrow

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"mutual/internal/utils"
)

// Locker обеспечивает не более одной изменяющей операции над сделкой одновременно.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// LocalLocker блокировки в памяти процесса.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*localLock
}

type localLock struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: map[string]*localLock{}}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	ll, ok := l.locks[key]
	if !ok {
		ll = &localLock{ch: make(chan struct{}, 1)}
		l.locks[key] = ll
	}
	ll.refs++
	l.mu.Unlock()

	select {
	case ll.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-ll.ch
				l.release(key, ll)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, ll)
		return nil, ctx.Err()
	}
}

func (l *LocalLocker) release(key string, ll *localLock) {
	l.mu.Lock()
	ll.refs--
	if ll.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()
}

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker распределённая блокировка на SET NX PX для нескольких экземпляров API.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if wait <= 0 {
		wait = 5 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl, wait: wait, retry: 20 * time.Millisecond}
}

// Lock ждёт освобождения ключа не дольше wait, затем возвращает ErrConcurrentUpdate.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token, err := utils.GenerateNanoID()
	if err != nil {
		return nil, err
	}
	k := "lock:" + key
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			return nil, errors.Wrap(err, "acquiring lock")
		}
		if ok {
			return func() {
				if err := unlockScript.Run(context.Background(), l.client, []string{k}, token).Err(); err != nil {
					log.Warnf("releasing lock %s: %s", k, err)
				}
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrConcurrentUpdate
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}
