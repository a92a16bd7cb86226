package availableday

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	"github.com/m04kA/DPL-BookingService/pkg/dbmetrics"
	"github.com/m04kA/DPL-BookingService/pkg/psqlbuilder"
)

// uniqueViolationCode код ошибки PostgreSQL при нарушении уникальности
const uniqueViolationCode = "23505"

// Repository репозиторий для работы с доступными днями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступных дней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает день вместе с окнами и зонами.
// Вызывать внутри транзакции - вставка идёт в три таблицы.
// Уникальный индекс по day_date транслируется в ErrDuplicateDay.
func (r *Repository) Create(ctx context.Context, day *domain.AvailableDay) (*domain.AvailableDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("available_days").
		Columns("day_date", "is_enabled").
		Values(day.Date, day.IsEnabled).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &createdAt, &updatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateDay
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	if err := r.insertWindows(ctx, executor, day.ID, day.Windows); err != nil {
		return nil, err
	}
	if err := r.insertZones(ctx, executor, day.ID, day.Zones); err != nil {
		return nil, err
	}

	return day, nil
}

// Update обновляет флаг is_enabled и полностью заменяет окна и зоны.
// Вызывать внутри транзакции.
func (r *Repository) Update(ctx context.Context, id int64, day *domain.AvailableDay) (*domain.AvailableDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("available_days").
		Set("is_enabled", day.IsEnabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING day_date, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.Date, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	day.ID = id
	day.Date = day.Date.UTC()
	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	// Полная замена окон и зон
	if err := r.deleteChildren(ctx, executor, "available_day_windows", id); err != nil {
		return nil, err
	}
	if err := r.deleteChildren(ctx, executor, "available_day_zones", id); err != nil {
		return nil, err
	}
	if err := r.insertWindows(ctx, executor, id, day.Windows); err != nil {
		return nil, err
	}
	if err := r.insertZones(ctx, executor, id, day.Zones); err != nil {
		return nil, err
	}

	return day, nil
}

// GetByID получает день по ID вместе с окнами и зонами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailableDay, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByDate получает день по нормализованной дате вне зависимости от is_enabled
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.AvailableDay, error) {
	return r.getOne(ctx, squirrel.Eq{"day_date": date})
}

// GetEnabledByDate получает включённый день по нормализованной дате.
// Выключенный или отсутствующий день - ErrDayNotFound: для выдачи слотов
// это одно и то же состояние "день недоступен".
func (r *Repository) GetEnabledByDate(ctx context.Context, date time.Time) (*domain.AvailableDay, error) {
	return r.getOne(ctx, squirrel.And{
		squirrel.Eq{"day_date": date},
		squirrel.Eq{"is_enabled": true},
	})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Sqlizer) (*domain.AvailableDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "day_date", "is_enabled", "created_at", "updated_at").
		From("available_days").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var (
		day                  domain.AvailableDay
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.ID,
		&day.Date,
		&day.IsEnabled,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan day: %v", ErrScanRow, err)
	}

	day.Date = day.Date.UTC()
	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	if err := r.loadChildren(ctx, executor, []*domain.AvailableDay{&day}); err != nil {
		return nil, err
	}

	return &day, nil
}

// List получает все дни, отсортированные по дате, вместе с окнами и зонами
func (r *Repository) List(ctx context.Context) ([]*domain.AvailableDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "day_date", "is_enabled", "created_at", "updated_at").
		From("available_days").
		OrderBy("day_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.AvailableDay, 0)

	for rows.Next() {
		var (
			day                  domain.AvailableDay
			createdAt, updatedAt sql.NullTime
		)

		if err := rows.Scan(&day.ID, &day.Date, &day.IsEnabled, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		day.Date = day.Date.UTC()
		day.CreatedAt = createdAt.Time
		day.UpdatedAt = updatedAt.Time
		days = append(days, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if err := r.loadChildren(ctx, executor, days); err != nil {
		return nil, err
	}

	return days, nil
}

// Вспомогательные методы

func (r *Repository) insertWindows(ctx context.Context, executor DBExecutor, dayID int64, windows []domain.TimeWindow) error {
	if len(windows) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("available_day_windows").
		Columns("day_id", "start_time", "end_time", "is_available", "position")

	for i, w := range windows {
		insertBuilder = insertBuilder.Values(dayID, w.Start, w.End, w.IsAvailable, i)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertWindows - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertWindows - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) insertZones(ctx context.Context, executor DBExecutor, dayID int64, zones []domain.Zone) error {
	if len(zones) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("available_day_zones").
		Columns("day_id", "name", "price", "duration_minutes", "position")

	for i, z := range zones {
		insertBuilder = insertBuilder.Values(dayID, z.Name, z.Price, z.DurationMinutes, i)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertZones - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertZones - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) deleteChildren(ctx context.Context, executor DBExecutor, table string, dayID int64) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"day_id": dayID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: deleteChildren - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteChildren - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// loadChildren подгружает окна и зоны для набора дней batch-запросами
func (r *Repository) loadChildren(ctx context.Context, executor DBExecutor, days []*domain.AvailableDay) error {
	if len(days) == 0 {
		return nil
	}

	ids := make([]int64, len(days))
	byID := make(map[int64]*domain.AvailableDay, len(days))
	for i, day := range days {
		ids[i] = day.ID
		byID[day.ID] = day
	}

	// Окна
	query, args, err := psqlbuilder.Select("day_id", "start_time", "end_time", "is_available").
		From("available_day_windows").
		Where(squirrel.Eq{"day_id": ids}).
		OrderBy("day_id ASC, position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadChildren - build windows query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadChildren - execute windows query: %v", ErrExecQuery, err)
	}

	for rows.Next() {
		var (
			dayID  int64
			window domain.TimeWindow
		)
		if err := rows.Scan(&dayID, &window.Start, &window.End, &window.IsAvailable); err != nil {
			rows.Close()
			return fmt.Errorf("%w: loadChildren - scan window: %v", ErrScanRow, err)
		}
		if day, ok := byID[dayID]; ok {
			day.Windows = append(day.Windows, window)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("%w: loadChildren - windows rows error: %v", ErrScanRow, err)
	}
	rows.Close()

	// Зоны
	query, args, err = psqlbuilder.Select("day_id", "name", "price", "duration_minutes").
		From("available_day_zones").
		Where(squirrel.Eq{"day_id": ids}).
		OrderBy("day_id ASC, position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadChildren - build zones query: %v", ErrBuildQuery, err)
	}

	rows, err = executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadChildren - execute zones query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			dayID int64
			zone  domain.Zone
		)
		if err := rows.Scan(&dayID, &zone.Name, &zone.Price, &zone.DurationMinutes); err != nil {
			return fmt.Errorf("%w: loadChildren - scan zone: %v", ErrScanRow, err)
		}
		if day, ok := byID[dayID]; ok {
			day.Zones = append(day.Zones, zone)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadChildren - zones rows error: %v", ErrScanRow, err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
