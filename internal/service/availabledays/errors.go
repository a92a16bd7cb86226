package availabledays

import "errors"

var (
	// ErrDayNotFound возвращается, когда день не найден
	ErrDayNotFound = errors.New("available day not found")

	// ErrDayAlreadyExists возвращается при попытке создать дублирующий день
	ErrDayAlreadyExists = errors.New("available day already exists for this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
