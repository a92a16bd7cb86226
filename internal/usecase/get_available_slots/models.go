package get_available_slots

import (
	"time"

	"github.com/m04kA/DPL-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date            string // Дата в формате "2025-10-15"
	DurationMinutes int    // Суммарная длительность выбранных услуг в минутах
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time     // Нормализованная дата, на которую запрашивались слоты
	DurationMinutes int           // Запрошенная длительность
	Slots           []domain.Slot // Список доступных слотов, отсортированный по времени начала
}
