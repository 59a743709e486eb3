package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gin-event-calendar/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	EventListKey           = "calendar:events"
	EventListGenerationKey = "calendar:events:gen"
)

var errStaleGeneration = errors.New("event list generation changed")

// EventListCache 月曆頁面用的活動列表快取。
// 任何活動寫入後都必須 Invalidate；單筆查詢不經過快取。
//
// 讀取端要在查 store 之前取得 Generation，回填時帶回同一個值：
// 期間若有人 Invalidate，Set 會略過，舊列表不會被寫回。
type EventListCache interface {
	// Get 命中時 ok=true
	Get(ctx context.Context) (events []*model.Event, ok bool, err error)
	Generation(ctx context.Context) (int64, error)
	// Set 只在目前世代仍為 gen 時寫入，否則不做事也不回錯
	Set(ctx context.Context, gen int64, events []*model.Event) error
	// Invalidate 遞增世代並刪除列表
	Invalidate(ctx context.Context) error
}

type RedisEventListCacheImpl struct {
	client *redis.Client
	key    string
	genKey string
	ttl    time.Duration
}

func NewRedisEventListCache(client *redis.Client, ttl time.Duration) EventListCache {
	return &RedisEventListCacheImpl{
		client: client,
		key:    EventListKey,
		genKey: EventListGenerationKey,
		ttl:    ttl,
	}
}

func (c *RedisEventListCacheImpl) Get(ctx context.Context) ([]*model.Event, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var events []*model.Event
	if err := json.Unmarshal(data, &events); err != nil {
		// 內容壞掉就當作沒命中，順便清掉
		_ = c.client.Del(ctx, c.key).Err()
		return nil, false, fmt.Errorf("decode cached events: %w", err)
	}
	return events, true, nil
}

func (c *RedisEventListCacheImpl) Generation(ctx context.Context) (int64, error) {
	return generation(ctx, c.client, c.genKey)
}

func (c *RedisEventListCacheImpl) Set(ctx context.Context, gen int64, events []*model.Event) error {
	if events == nil {
		events = []*model.Event{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}

	// WATCH 世代：比對後到 EXEC 之間若被 Invalidate，交易會失敗
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx, c.genKey)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, data, c.ttl)
			return nil
		})
		return err
	}, c.genKey)

	if errors.Is(err, errStaleGeneration) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisEventListCacheImpl) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey)
		pipe.Del(ctx, c.key)
		return nil
	})
	return err
}

// *redis.Client 與 *redis.Tx 都可用
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, r stringGetter, key string) (int64, error) {
	gen, err := r.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// NopEventListCache 快取關閉時使用，永遠不命中
type NopEventListCache struct{}

func (NopEventListCache) Get(ctx context.Context) ([]*model.Event, bool, error) {
	return nil, false, nil
}

func (NopEventListCache) Generation(ctx context.Context) (int64, error) {
	return 0, nil
}

func (NopEventListCache) Set(ctx context.Context, gen int64, events []*model.Event) error {
	return nil
}

func (NopEventListCache) Invalidate(ctx context.Context) error {
	return nil
}
