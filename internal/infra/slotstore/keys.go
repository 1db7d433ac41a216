package slotstore

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Схема ключей в быстром хранилище:
//   lock:slot:{tenant}:{date}:{time} - блокировка слота
//   hold:slot:{tenant}:{date}:{time} - холд слота (JSON)
// Холды на дату перечисляются сканом по префиксу hold:slot:{tenant}:{date}:*

func lockKey(tenantID int64, date string, startTime types.TimeString) string {
	return fmt.Sprintf("lock:slot:%d:%s:%s", tenantID, date, startTime)
}

func holdKey(tenantID int64, date string, startTime types.TimeString) string {
	return fmt.Sprintf("hold:slot:%d:%s:%s", tenantID, date, startTime)
}

func holdPrefix(tenantID int64, date string) string {
	return fmt.Sprintf("hold:slot:%d:%s:", tenantID, date)
}
