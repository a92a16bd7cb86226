package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/DPL-BookingService/pkg/types"
)

// dateLayout формат календарной даты
const dateLayout = "2006-01-02"

// minYear нижняя граница допустимого года
// Защита от ошибок парсинга, дающих даты около эпохи (1969/1970)
const minYear = 2020

var (
	// ErrInvalidDate возвращается при некорректной или подозрительной дате
	ErrInvalidDate = errors.New("dateutil: invalid date")
)

// NormalizeString приводит строковую дату к каноническому виду:
// полночь UTC соответствующего календарного дня.
// Принимает "YYYY-MM-DD" и ISO-строки с временной частью ("2025-06-25T14:30:00Z").
// Две строки, указывающие на один календарный день, нормализуются в одно значение
// независимо от часового пояса отправителя.
func NormalizeString(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidDate)
	}

	// Если есть временная часть - используем только календарную дату
	datePart := s
	if idx := strings.IndexByte(s, 'T'); idx >= 0 {
		datePart = s[:idx]
	}

	parsed, err := time.Parse(dateLayout, datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
	}

	return normalize(parsed)
}

// Normalize приводит time.Time к полуночи UTC того же календарного дня
func Normalize(t time.Time) (time.Time, error) {
	if t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: zero time", ErrInvalidDate)
	}
	return normalize(t.UTC())
}

// MustNormalize вариант Normalize для тестов и констант, паникует при ошибке
func MustNormalize(t time.Time) time.Time {
	normalized, err := Normalize(t)
	if err != nil {
		panic(err)
	}
	return normalized
}

func normalize(t time.Time) (time.Time, error) {
	if t.Year() < minYear {
		return time.Time{}, fmt.Errorf("%w: year %d is before %d", ErrInvalidDate, t.Year(), minYear)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// At комбинирует нормализованный день и время HH:MM в момент времени UTC
// Используется для вычисления времени начала записи при проверке правила отмены
func At(day time.Time, clock types.TimeString) (time.Time, error) {
	minutes, err := clock.Minutes()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	normalized, err := Normalize(day)
	if err != nil {
		return time.Time{}, err
	}

	return normalized.Add(time.Duration(minutes) * time.Minute), nil
}

// HoursUntil возвращает целое число полных часов от from до target
// Отрицательное значение означает, что target уже в прошлом
func HoursUntil(from, target time.Time) int {
	return int(target.Sub(from).Hours())
}

// Format возвращает дату в формате YYYY-MM-DD
func Format(t time.Time) string {
	return t.Format(dateLayout)
}
