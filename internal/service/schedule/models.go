package schedule

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// DayResolution эффективное рабочее окно тенанта на конкретную дату
// вместе с параметрами, нужными для расчёта сетки слотов
type DayResolution struct {
	Date time.Time

	// Blocked - дата попала в диапазон блокировки, тенант полностью закрыт
	Blocked     bool
	BlockReason *string

	// Closed - день не рабочий по расписанию (но блокировки нет)
	Closed bool

	// Рабочее окно, заполнено только если !Blocked && !Closed
	OpenTime  types.TimeString
	CloseTime types.TimeString

	// Параметры тенанта для арифметики слотов
	GranularityMinutes int
	MinLeadMinutes     *int // переопределение тенанта, nil = дефолт сервиса
	Location           *time.Location
}

// IsBookable возвращает true, если в этот день вообще можно бронировать
func (d *DayResolution) IsBookable() bool {
	return !d.Blocked && !d.Closed
}
