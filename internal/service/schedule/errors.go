package schedule

import "errors"

var (
	// ErrNoSchedule возвращается, когда у тенанта вообще нет настроек расписания
	ErrNoSchedule = errors.New("schedule: tenant has no schedule configured")

	// ErrInvalidTimezone возвращается при некорректной таймзоне тенанта
	ErrInvalidTimezone = errors.New("schedule: invalid tenant timezone")

	// ErrInternal возвращается при внутренних ошибках резолвера
	ErrInternal = errors.New("schedule: internal error")
)
