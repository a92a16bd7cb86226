package appointment

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

// appointmentColumns полный набор колонок таблицы appointments
var appointmentColumns = []string{
	"id",
	"client_name",
	"client_last_name",
	"client_phone",
	"appointment_date",
	"start_time",
	"end_time",
	"total_price",
	"total_duration_minutes",
	"deposit_amount",
	"status",
	"payment_id",
	"payment_status",
	"cancellation_reason",
	"cancelled_at",
	"hours_in_advance",
	"refund_eligible",
	"whatsapp_sent",
	"whatsapp_sent_at",
	"whatsapp_method",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на процедуры
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись в статусе pending вместе со снапшотом выбранных зон.
// Если в контексте передана активная транзакция, использует её - при создании
// бронирования обязательно выполнять Create внутри сериализуемой транзакции
// вместе с повторной проверкой конфликтов.
//
// Частичный уникальный индекс по (appointment_date, start_time) для статусов
// pending/confirmed транслируется в ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"client_name",
			"client_last_name",
			"client_phone",
			"appointment_date",
			"start_time",
			"end_time",
			"total_price",
			"total_duration_minutes",
			"deposit_amount",
			"status",
			"payment_status",
		).
		Values(
			apt.ClientName,
			apt.ClientLastName,
			apt.ClientPhone,
			apt.AppointmentDate,
			apt.StartTime,
			apt.EndTime,
			apt.TotalPrice,
			apt.TotalDurationMinutes,
			apt.DepositAmount,
			apt.Status,
			apt.PaymentStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&apt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time

	// Снапшот зон в отдельной таблице
	if err := r.insertZones(ctx, executor, apt.ID, apt.SelectedZones); err != nil {
		return nil, err
	}

	return apt, nil
}

func (r *Repository) insertZones(ctx context.Context, executor DBExecutor, appointmentID int64, zones []domain.ZoneSelection) error {
	if len(zones) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("appointment_zones").
		Columns("appointment_id", "name", "price", "duration_minutes", "position")

	for i, zone := range zones {
		insertBuilder = insertBuilder.Values(appointmentID, zone.Name, zone.Price, zone.DurationMinutes, i)
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

// GetByID получает запись по ID вместе с выбранными зонами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	apt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	if err := r.loadZones(ctx, executor, []*domain.Appointment{apt}); err != nil {
		return nil, err
	}

	return apt, nil
}

// GetOccupyingByDate получает записи, занимающие слоты на указанный день:
// confirmed, либо pending с created_at не старше freshCutoff.
// Сортировка по времени начала.
//
// Внутри транзакции добавляет FOR UPDATE - выборка используется при повторной
// проверке конфликтов в usecase создания записи.
func (r *Repository) GetOccupyingByDate(ctx context.Context, date time.Time, freshCutoff time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"appointment_date": date}).
		Where(squirrel.Or{
			squirrel.Eq{"status": domain.StatusConfirmed},
			squirrel.And{
				squirrel.Eq{"status": domain.StatusPending},
				squirrel.GtOrEq{"created_at": freshCutoff},
			},
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupyingByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupyingByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListWithFilter получает записи с фильтрацией по дню и статусу для админки
// Зоны подгружаются одним batch-запросом
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_date": *filter.Date})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("appointment_date DESC, start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadZones(ctx, executor, appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// DeleteExpiredPending удаляет все pending-записи старше cutoff и возвращает их количество.
// Это единственный механизм истечения soft-lock: вызывается перед каждым чтением занятости
// (выдача слотов, создание записи) и из админского cleanup-эндпоинта.
// Подтверждённые записи не затрагивает по условию на статус.
func (r *Repository) DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredPending - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredPending - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredPending - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// SetConfirmed переводит запись в confirmed и сохраняет данные платежа.
// Идемпотентна: повторное подтверждение уже подтверждённой записи - no-op успех.
func (r *Repository) SetConfirmed(ctx context.Context, id int64, paymentID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusConfirmed).
		Set("payment_status", domain.PaymentPaid).
		Set("payment_id", paymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.OccupyingStatuses}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetConfirmed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetConfirmed - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// SetPaymentStatus обновляет только платёжные поля, не меняя статус записи
// Используется для промежуточных состояний платежа (pending)
func (r *Repository) SetPaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus, paymentID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("payment_status", status).
		Set("payment_id", paymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// DeleteIfPending удаляет запись, только если она всё ещё pending.
// Возвращает true, если запись была удалена. Подтверждённую запись не трогает,
// даже при опоздавшем или дублирующем сигнале об ошибке платежа.
func (r *Repository) DeleteIfPending(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: DeleteIfPending - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: DeleteIfPending - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: DeleteIfPending - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// Cancel отменяет подтверждённую запись условным UPDATE (только из confirmed).
// Если запись уже не в confirmed, возвращает ErrNotCancellable.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, hoursInAdvance int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("hours_in_advance", hoursInAdvance).
		Set("refund_eligible", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotCancellable
	}

	return nil
}

// MarkWhatsAppSent отмечает, что подтверждение отправлено клиенту
func (r *Repository) MarkWhatsAppSent(ctx context.Context, id int64, method string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("whatsapp_sent", true).
		Set("whatsapp_sent_at", squirrel.Expr("NOW()")).
		Set("whatsapp_method", method).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkWhatsAppSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkWhatsAppSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkWhatsAppSent - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// loadZones подгружает зоны для набора записей одним запросом
func (r *Repository) loadZones(ctx context.Context, executor DBExecutor, appointments []*domain.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}

	ids := make([]int64, len(appointments))
	byID := make(map[int64]*domain.Appointment, len(appointments))
	for i, apt := range appointments {
		ids[i] = apt.ID
		byID[apt.ID] = apt
	}

	query, args, err := psqlbuilder.Select("appointment_id", "name", "price", "duration_minutes").
		From("appointment_zones").
		Where(squirrel.Eq{"appointment_id": ids}).
		OrderBy("appointment_id ASC, position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadZones - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadZones - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			appointmentID int64
			zone          domain.ZoneSelection
		)
		if err := rows.Scan(&appointmentID, &zone.Name, &zone.Price, &zone.DurationMinutes); err != nil {
			return fmt.Errorf("%w: loadZones - scan row: %v", ErrScanRow, err)
		}
		if apt, ok := byID[appointmentID]; ok {
			apt.SelectedZones = append(apt.SelectedZones, zone)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadZones - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		apt                        domain.Appointment
		createdAt, updatedAt       sql.NullTime
		cancelledAt, whatsappAt    sql.NullTime
		paymentID, reason, waMeth  sql.NullString
		hoursInAdvance             sql.NullInt64
		paymentStatus              sql.NullString
	)

	err := row.Scan(
		&apt.ID,
		&apt.ClientName,
		&apt.ClientLastName,
		&apt.ClientPhone,
		&apt.AppointmentDate,
		&apt.StartTime,
		&apt.EndTime,
		&apt.TotalPrice,
		&apt.TotalDurationMinutes,
		&apt.DepositAmount,
		&apt.Status,
		&paymentID,
		&paymentStatus,
		&reason,
		&cancelledAt,
		&hoursInAdvance,
		&apt.RefundEligible,
		&apt.WhatsAppSent,
		&whatsappAt,
		&waMeth,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
	}

	apt.AppointmentDate = apt.AppointmentDate.UTC()
	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time

	if paymentID.Valid {
		apt.PaymentID = &paymentID.String
	}
	if paymentStatus.Valid {
		apt.PaymentStatus = domain.PaymentStatus(paymentStatus.String)
	}
	if reason.Valid {
		apt.CancellationReason = &reason.String
	}
	if cancelledAt.Valid {
		apt.CancelledAt = &cancelledAt.Time
	}
	if hoursInAdvance.Valid {
		hours := int(hoursInAdvance.Int64)
		apt.HoursInAdvance = &hours
	}
	if whatsappAt.Valid {
		apt.WhatsAppSentAt = &whatsappAt.Time
	}
	if waMeth.Valid {
		apt.WhatsAppMethod = &waMeth.String
	}

	return &apt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanAppointments: %w", err)
		}
		appointments = append(appointments, apt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
