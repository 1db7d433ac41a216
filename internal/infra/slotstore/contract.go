package slotstore

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SlotStore быстрое KV-хранилище блокировок и холдов слотов
//
// Блокировка сериализует попытки резервирования одного слота: захват
// неблокирующий, при занятой блокировке вызывающий код не ждёт, а сразу
// отдаёт клиенту "попробуйте ещё раз". TTL блокировки - страховка от
// падения процесса, основной путь освобождения - явный ReleaseLock.
//
// Холд - видимая резервация на время оформления: скрывает слот от других
// клиентов, истекает сам по TTL.
//
// Для multi-instance развертывания реализация обязана быть распределённой
// (Redis); in-memory вариант существует только как single-instance stub
// для разработки за тем же интерфейсом.
type SlotStore interface {
	// AcquireLock пытается захватить блокировку слота
	// Возвращает false без ошибки, если блокировка уже занята
	AcquireLock(ctx context.Context, tenantID int64, date string, startTime types.TimeString, ttl time.Duration) (bool, error)

	// ReleaseLock освобождает блокировку слота
	// Идемпотентен: освобождение отсутствующей блокировки не ошибка
	ReleaseLock(ctx context.Context, tenantID int64, date string, startTime types.TimeString) error

	// SetHold создает или перезаписывает холд слота с TTL
	SetHold(ctx context.Context, hold *domain.Hold, ttl time.Duration) error

	// GetHold возвращает холд слота или nil, если холда нет
	GetHold(ctx context.Context, tenantID int64, date string, startTime types.TimeString) (*domain.Hold, error)

	// ClearHold удаляет холд слота
	// Идемпотентен: удаление отсутствующего холда не ошибка
	ClearHold(ctx context.Context, tenantID int64, date string, startTime types.TimeString) error

	// ListHolds возвращает все неистёкшие холды тенанта на дату
	ListHolds(ctx context.Context, tenantID int64, date string) ([]*domain.Hold, error)
}
