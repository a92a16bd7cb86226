package create_appointment

import "errors"

var (
	// ErrDayNotAvailable возвращается, когда на дату нет включенного дня
	ErrDayNotAvailable = errors.New("create_appointment: day is not available for booking")

	// ErrOutsideWorkingHours возвращается, когда слот не помещается ни в одно окно дня
	ErrOutsideWorkingHours = errors.New("create_appointment: slot is outside working hours")

	// ErrSlotConflict возвращается, когда слот пересекается с существующей записью
	ErrSlotConflict = errors.New("create_appointment: slot conflicts with an existing appointment")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrPaymentProvider возвращается при ошибке создания платёжной преференции
	ErrPaymentProvider = errors.New("create_appointment: failed to create payment preference")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
