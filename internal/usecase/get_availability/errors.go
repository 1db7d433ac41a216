package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrNoSchedule возвращается, когда у тенанта нет настроек расписания
	ErrNoSchedule = errors.New("get_availability: tenant has no schedule configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
