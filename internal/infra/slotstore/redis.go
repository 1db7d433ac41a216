package slotstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RedisStore реализация SlotStore поверх Redis
// Блокировка - SET NX EX, холд - SET EX с JSON-значением,
// перечисление холдов - SCAN по префиксу даты
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создает SlotStore поверх переданного Redis клиента
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// AcquireLock пытается захватить блокировку слота через SET NX EX
func (s *RedisStore) AcquireLock(ctx context.Context, tenantID int64, date string, startTime types.TimeString, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, lockKey(tenantID, date, startTime), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: AcquireLock: %v", ErrStoreUnavailable, err)
	}
	return ok, nil
}

// ReleaseLock освобождает блокировку слота
func (s *RedisStore) ReleaseLock(ctx context.Context, tenantID int64, date string, startTime types.TimeString) error {
	if err := s.client.Del(ctx, lockKey(tenantID, date, startTime)).Err(); err != nil {
		return fmt.Errorf("%w: ReleaseLock: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// SetHold создает или перезаписывает холд слота с TTL
func (s *RedisStore) SetHold(ctx context.Context, hold *domain.Hold, ttl time.Duration) error {
	payload, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeHold, err)
	}

	key := holdKey(hold.TenantID, hold.Date, hold.StartTime)
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetHold: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// GetHold возвращает холд слота или nil, если холда нет
func (s *RedisStore) GetHold(ctx context.Context, tenantID int64, date string, startTime types.TimeString) (*domain.Hold, error) {
	raw, err := s.client.Get(ctx, holdKey(tenantID, date, startTime)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetHold: %v", ErrStoreUnavailable, err)
	}

	var hold domain.Hold
	if err := json.Unmarshal(raw, &hold); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeHold, err)
	}
	return &hold, nil
}

// ClearHold удаляет холд слота
func (s *RedisStore) ClearHold(ctx context.Context, tenantID int64, date string, startTime types.TimeString) error {
	if err := s.client.Del(ctx, holdKey(tenantID, date, startTime)).Err(); err != nil {
		return fmt.Errorf("%w: ClearHold: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// ListHolds возвращает все холды тенанта на дату
// Redis сам вычищает истёкшие ключи по TTL, дополнительная фильтрация не нужна
func (s *RedisStore) ListHolds(ctx context.Context, tenantID int64, date string) ([]*domain.Hold, error) {
	pattern := holdPrefix(tenantID, date) + "*"

	keys := make([]string, 0)
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHolds - scan: %v", ErrStoreUnavailable, err)
	}

	if len(keys) == 0 {
		return []*domain.Hold{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolds - mget: %v", ErrStoreUnavailable, err)
	}

	holds := make([]*domain.Hold, 0, len(values))
	for _, v := range values {
		// Ключ мог истечь между SCAN и MGET
		if v == nil {
			continue
		}
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var hold domain.Hold
		if err := json.Unmarshal([]byte(raw), &hold); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeHold, err)
		}
		holds = append(holds, &hold)
	}

	return holds, nil
}
