package get_available_slots

import (
	"sort"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	"github.com/m04kA/DPL-BookingService/pkg/types"
)

// generateSlots генерирует доступные слоты для всех окон дня
// Кандидаты идут с шагом domain.SlotStepMinutes от начала каждого окна
// Слот должен целиком помещаться в окно, точное совпадение конца слота
// с концом окна допустимо
func generateSlots(
	windows []domain.TimeWindow,
	durationMinutes int,
	occupying []*domain.Appointment,
) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0)
	seen := make(map[types.TimeString]bool)

	for _, window := range windows {
		// Некорректно настроенные окна (start >= end) пропускаем, а не считаем ошибкой
		if !window.IsUsable() {
			continue
		}

		current := window.Start
		for current.IsBefore(window.End) {
			slotEnd, err := current.AddMinutes(durationMinutes)
			if err != nil {
				// Конец слота вышел за пределы суток, дальше в этом окне слотов нет
				break
			}
			if slotEnd.IsAfter(window.End) {
				break
			}

			if !seen[current] && !overlapsAny(current, slotEnd, occupying) {
				seen[current] = true
				slots = append(slots, domain.Slot{
					Start: current,
					End:   slotEnd,
				})
			}

			current, err = current.AddMinutes(domain.SlotStepMinutes)
			if err != nil {
				break
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.IsBefore(slots[j].Start)
	})

	return slots, nil
}

// overlapsAny проверяет пересечение кандидата [start, end) с занятыми записями
// Интервалы полуоткрытые: запись, заканчивающаяся ровно в начале кандидата
// (или начинающаяся ровно в его конце), пересечением НЕ считается
//
// Примеры:
// - Кандидат 11:30-12:00, запись 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Кандидат 11:30-12:00, запись 11:00-11:30 → НЕТ пересечения (граничат)
// - Кандидат 11:30-12:00, запись 12:00-12:30 → НЕТ пересечения (граничат)
func overlapsAny(start, end types.TimeString, occupying []*domain.Appointment) bool {
	for _, apt := range occupying {
		if apt.StartTime.IsBefore(end) && apt.EndTime.IsAfter(start) {
			return true
		}
	}
	return false
}
