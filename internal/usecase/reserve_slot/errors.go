package reserve_slot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInvalidDateTime возвращается при некорректном синтаксисе даты или времени
	ErrInvalidDateTime = errors.New("reserve_slot: invalid date or time")

	// ErrSlotProcessing возвращается, когда блокировка слота занята другой
	// попыткой резервирования. Транзиентная ошибка: клиент должен повторить
	// запрос, автоматических ретраев на сервере нет
	ErrSlotProcessing = errors.New("reserve_slot: slot is being processed")

	// ErrSlotTaken возвращается, когда запрошенное время недоступно
	ErrSlotTaken = errors.New("reserve_slot: slot is taken")

	// ErrBlockedDay возвращается, когда дата попала в диапазон блокировки тенанта
	ErrBlockedDay = errors.New("reserve_slot: day is blocked")

	// ErrClosedDay возвращается, когда день не рабочий по расписанию
	ErrClosedDay = errors.New("reserve_slot: day is closed")

	// ErrNoSchedule возвращается, когда у тенанта нет настроек расписания
	ErrNoSchedule = errors.New("reserve_slot: tenant has no schedule configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	// Инфраструктурные отказы не маскируются под отказ в бронировании
	ErrInternal = errors.New("reserve_slot: internal error")
)

// SlotTakenError отказ с предложением альтернативного времени
// Всегда сопоставляется с ErrSlotTaken через errors.Is
type SlotTakenError struct {
	// SuggestedTime ближайшее свободное время строго после запрошенного,
	// с переходом к самому раннему свободному, если после ничего нет;
	// nil, если свободных слотов не осталось вовсе
	SuggestedTime *types.TimeString
}

// Error реализует интерфейс error
func (e *SlotTakenError) Error() string {
	if e.SuggestedTime != nil {
		return fmt.Sprintf("reserve_slot: slot is taken, suggested %s", *e.SuggestedTime)
	}
	return "reserve_slot: slot is taken, no alternatives"
}

// Is сопоставляет ошибку с сентинелом ErrSlotTaken
func (e *SlotTakenError) Is(target error) bool {
	return target == ErrSlotTaken
}
