package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DPL-BookingService/internal/infra/storage/appointment"
	dayRepo "github.com/m04kA/DPL-BookingService/internal/infra/storage/availableday"
	"github.com/m04kA/DPL-BookingService/internal/integrations/mercadopago"
	"github.com/m04kA/DPL-BookingService/pkg/dateutil"
)

// UseCase use case для создания записи с платёжной преференцией
type UseCase struct {
	appointmentRepo AppointmentRepository
	dayRepo         AvailableDayRepository
	paymentClient   PaymentClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	dayRepo AvailableDayRepository,
	paymentClient PaymentClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		dayRepo:         dayRepo,
		paymentClient:   paymentClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Запись создается в статусе pending и занимает слот до оплаты
// в течение domain.PendingGracePeriod
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%s %s, date=%s, time=%s, zones=%d",
		req.ClientName, req.ClientLastName, req.Date, req.StartTime, len(req.SelectedZones))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем дату к полуночи UTC
	date, err := dateutil.NormalizeString(req.Date)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	now := uc.timeProvider.Now()
	if err := validateDateNotPast(date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date=%s is in the past", req.Date)
		return nil, err
	}

	// 3. Считаем стоимость и длительность по выбранным зонам
	var totalPrice float64
	var totalDuration int
	for _, z := range req.SelectedZones {
		totalPrice += z.Price
		totalDuration += z.DurationMinutes
	}
	depositAmount := totalPrice * domain.DepositRate

	endTime, err := req.StartTime.AddMinutes(totalDuration)
	if err != nil {
		uc.logger.Warn("CreateAppointment: slot end is out of day range: %v", err)
		return nil, fmt.Errorf("%w: slot end exceeds end of day", ErrInvalidInput)
	}

	freshCutoff := now.Add(-domain.PendingGracePeriod)

	var result *domain.Appointment

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Чистим просроченные pending-записи, чтобы они не блокировали слот
		if _, err := uc.appointmentRepo.DeleteExpiredPending(txCtx, freshCutoff); err != nil {
			uc.logger.Error("CreateAppointment: failed to sweep expired pending: %v", err)
			return fmt.Errorf("%w: failed to sweep expired pending: %v", ErrInternal, err)
		}

		// 4.2. Получаем конфигурацию дня
		day, err := uc.dayRepo.GetEnabledByDate(txCtx, date)
		if err != nil {
			if errors.Is(err, dayRepo.ErrDayNotFound) {
				uc.logger.Warn("CreateAppointment: no enabled day for date=%s", req.Date)
				return ErrDayNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to get day for date=%s: %v", req.Date, err)
			return fmt.Errorf("%w: failed to get available day: %v", ErrInternal, err)
		}

		// 4.3. Проверяем, что слот помещается в рабочие окна дня
		if !slotFitsWindows(req.StartTime, endTime, day.Windows) {
			uc.logger.Warn("CreateAppointment: slot %s-%s does not fit working windows",
				req.StartTime, endTime)
			return ErrOutsideWorkingHours
		}

		// 4.4. Получаем занятые записи с блокировкой (FOR UPDATE)
		occupying, err := uc.appointmentRepo.GetOccupyingByDate(txCtx, date, freshCutoff)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get occupying appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 4.5. Проверяем пересечение с существующими записями
		if hasConflict(req.StartTime, endTime, occupying) {
			uc.logger.Warn("CreateAppointment: slot %s-%s conflicts with existing appointment",
				req.StartTime, endTime)
			return ErrSlotConflict
		}

		// 4.6. Создаем pending-запись
		apt := &domain.Appointment{
			ClientName:           req.ClientName,
			ClientLastName:       req.ClientLastName,
			ClientPhone:          req.ClientPhone,
			AppointmentDate:      date,
			StartTime:            req.StartTime,
			EndTime:              endTime,
			SelectedZones:        toDomainZones(req.SelectedZones),
			TotalPrice:           totalPrice,
			TotalDurationMinutes: totalDuration,
			DepositAmount:        depositAmount,
			Status:               domain.StatusPending,
			PaymentStatus:        domain.PaymentPending,
		}

		created, err := uc.appointmentRepo.Create(txCtx, apt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot %s taken concurrently", req.StartTime)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created pending appointment id=%d", result.ID)

	// 5. Создаем платёжную преференцию (вне транзакции)
	items := []mercadopago.PreferenceItem{
		{
			Title:     depositTitle(result),
			UnitPrice: result.DepositAmount,
			Quantity:  1,
		},
	}
	metadata := mercadopago.PreferenceMetadata{
		AppointmentID: strconv.FormatInt(result.ID, 10),
	}

	preference, err := uc.paymentClient.CreatePreference(ctx, items, metadata)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to create preference for appointment id=%d: %v",
			result.ID, err)
		// Запись без платёжной ссылки бесполезна, освобождаем слот
		if _, delErr := uc.appointmentRepo.DeleteIfPending(ctx, result.ID); delErr != nil {
			uc.logger.Error("CreateAppointment: failed to release appointment id=%d: %v",
				result.ID, delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	uc.logger.Info("CreateAppointment: created preference id=%s for appointment id=%d",
		preference.ID, result.ID)

	return &Response{
		AppointmentID:        result.ID,
		Status:               string(result.Status),
		AppointmentDate:      result.AppointmentDate,
		StartTime:            result.StartTime,
		EndTime:              result.EndTime,
		TotalPrice:           result.TotalPrice,
		TotalDurationMinutes: result.TotalDurationMinutes,
		DepositAmount:        result.DepositAmount,
		PreferenceID:         preference.ID,
		InitPoint:            preference.InitPoint,
	}, nil
}

// depositTitle формирует название платёжной позиции
func depositTitle(apt *domain.Appointment) string {
	return fmt.Sprintf("Seña - Depilación (%s %s, %s)",
		apt.ClientName, apt.ClientLastName, dateutil.Format(apt.AppointmentDate))
}
