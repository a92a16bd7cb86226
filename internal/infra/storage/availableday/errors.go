package availableday

import "errors"

var (
	// ErrDayNotFound возвращается, когда день не найден
	ErrDayNotFound = errors.New("availableday.repository: available day not found")

	// ErrDuplicateDay возвращается при попытке создать второй день на ту же дату
	ErrDuplicateDay = errors.New("availableday.repository: day already exists for this date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availableday.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availableday.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availableday.repository: failed to scan row")
)
