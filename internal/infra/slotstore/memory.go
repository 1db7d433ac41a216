package slotstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// MemoryStore in-memory реализация SlotStore для single-instance разработки
// НЕ пригодна для горизонтального масштабирования: блокировки и холды
// видны только внутри одного процесса. В production обязателен RedisStore
type MemoryStore struct {
	mu    sync.Mutex
	locks map[string]time.Time    // key -> истечение блокировки
	holds map[string]*domain.Hold // key -> холд

	// now подменяется в тестах
	now func() time.Time
}

// NewMemoryStore создает in-memory SlotStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		locks: make(map[string]time.Time),
		holds: make(map[string]*domain.Hold),
		now:   time.Now,
	}
}

// AcquireLock пытается захватить блокировку слота
func (s *MemoryStore) AcquireLock(_ context.Context, tenantID int64, date string, startTime types.TimeString, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := lockKey(tenantID, date, startTime)
	now := s.now()

	if expiry, ok := s.locks[key]; ok && expiry.After(now) {
		return false, nil
	}

	s.locks[key] = now.Add(ttl)
	return true, nil
}

// ReleaseLock освобождает блокировку слота
func (s *MemoryStore) ReleaseLock(_ context.Context, tenantID int64, date string, startTime types.TimeString) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, lockKey(tenantID, date, startTime))
	return nil
}

// SetHold создает или перезаписывает холд слота
func (s *MemoryStore) SetHold(_ context.Context, hold *domain.Hold, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *hold
	copied.ExpiresAt = s.now().Add(ttl)
	s.holds[holdKey(hold.TenantID, hold.Date, hold.StartTime)] = &copied
	return nil
}

// GetHold возвращает холд слота или nil
func (s *MemoryStore) GetHold(_ context.Context, tenantID int64, date string, startTime types.TimeString) (*domain.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hold, ok := s.holds[holdKey(tenantID, date, startTime)]
	if !ok || hold.IsExpired(s.now()) {
		return nil, nil
	}

	copied := *hold
	return &copied, nil
}

// ClearHold удаляет холд слота
func (s *MemoryStore) ClearHold(_ context.Context, tenantID int64, date string, startTime types.TimeString) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.holds, holdKey(tenantID, date, startTime))
	return nil
}

// ListHolds возвращает неистёкшие холды тенанта на дату
// Заодно вычищает истёкшие записи, раз уж TTL здесь никто не обслуживает
func (s *MemoryStore) ListHolds(_ context.Context, tenantID int64, date string) ([]*domain.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := holdPrefix(tenantID, date)
	now := s.now()

	holds := make([]*domain.Hold, 0)
	for key, hold := range s.holds {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if hold.IsExpired(now) {
			delete(s.holds, key)
			continue
		}
		copied := *hold
		holds = append(holds, &copied)
	}

	return holds, nil
}
