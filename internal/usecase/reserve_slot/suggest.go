package reserve_slot

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// suggestAlternative выбирает альтернативу занятому времени из актуального
// списка свободных слотов: ближайшее время строго после запрошенного,
// с переходом к самому раннему свободному, если после ничего не осталось
// Возвращает nil, если свободных слотов нет вовсе
func suggestAlternative(available []types.TimeString, requested types.TimeString) *types.TimeString {
	for _, t := range available {
		if t.IsAfter(requested) {
			suggestion := t
			return &suggestion
		}
	}

	if len(available) > 0 {
		suggestion := available[0]
		return &suggestion
	}

	return nil
}
