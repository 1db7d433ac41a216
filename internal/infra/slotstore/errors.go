package slotstore

import "errors"

var (
	// ErrStoreUnavailable возвращается при недоступности хранилища
	// Не маскируется под отказ в бронировании: инфраструктурная ошибка
	// должна дойти до вызывающего кода как есть
	ErrStoreUnavailable = errors.New("slotstore: store unavailable")

	// ErrEncodeHold возвращается при ошибке сериализации холда
	ErrEncodeHold = errors.New("slotstore: failed to encode hold")

	// ErrDecodeHold возвращается при ошибке десериализации холда
	ErrDecodeHold = errors.New("slotstore: failed to decode hold")
)
