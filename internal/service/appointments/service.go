package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DPL-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/DPL-BookingService/internal/integrations/whatsapp"
	"github.com/m04kA/DPL-BookingService/internal/service/appointments/models"
	"github.com/m04kA/DPL-BookingService/pkg/dateutil"
	"github.com/m04kA/DPL-BookingService/pkg/ptr"
)

// Service сервис для работы с записями клиентов
type Service struct {
	appointmentRepo AppointmentRepository
	whatsappSender  WhatsAppSender
	logger          Logger

	now func() time.Time
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	whatsappSender WhatsAppSender,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		whatsappSender:  whatsappSender,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(apt), nil
}

// List получает записи с опциональной фильтрацией по дате и статусу
//
// Примеры использования:
// - Все записи: List(ctx, &ListAppointmentsRequest{})
// - Записи на дату: указать Date = "2025-10-15"
// - Только подтвержденные: указать Status = "confirmed"
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments, date=%v, status=%v", req.Date, req.Status)

	filter := domain.AppointmentsFilter{}

	if req.Date != nil {
		date, err := dateutil.NormalizeString(*req.Date)
		if err != nil {
			s.logger.Warn("List: invalid date=%s", *req.Date)
			return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
		}
		filter.Date = &date
	}

	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет подтвержденную запись
// Отмена разрешена не позднее чем за domain.CancellationNoticeHours часов до начала
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !apt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, apt.Status)
		return nil, ErrCannotCancel
	}

	hours, err := s.hoursBeforeStart(apt)
	if err != nil {
		s.logger.Error("Cancel: failed to compute start time for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - invalid start time: %v", ErrInternal, err)
	}

	if hours < domain.CancellationNoticeHours {
		s.logger.Warn("Cancel: appointment id=%d too close to start, hours=%d", id, hours)
		return nil, &CancellationWindowError{
			HoursRemaining:  hours,
			MinimumRequired: domain.CancellationNoticeHours,
		}
	}

	reason := domain.DefaultCancellationReason
	if req != nil {
		if r := ptr.Deref(req.Reason); r != "" {
			reason = r
		}
	}

	if err := s.appointmentRepo.Cancel(ctx, id, reason, hours); err != nil {
		if errors.Is(err, appointmentRepo.ErrNotCancellable) {
			s.logger.Warn("Cancel: appointment id=%d changed status concurrently", id)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to reload appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d, hours=%d", id, hours)
	return models.FromDomainAppointment(cancelled), nil
}

// CheckCancellation проверяет возможность отмены без изменения записи
func (s *Service) CheckCancellation(ctx context.Context, id int64) (*models.CancellationCheckResponse, error) {
	s.logger.Info("CheckCancellation: checking appointment id=%d", id)

	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("CheckCancellation: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("CheckCancellation: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: CheckCancellation - repository error: %v", ErrInternal, err)
	}

	hours, err := s.hoursBeforeStart(apt)
	if err != nil {
		s.logger.Error("CheckCancellation: failed to compute start time for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: CheckCancellation - invalid start time: %v", ErrInternal, err)
	}

	canCancel := apt.CanBeCancelled() && hours >= domain.CancellationNoticeHours

	return &models.CancellationCheckResponse{
		CanCancel:      canCancel,
		HoursInAdvance: hours,
		RequiredHours:  domain.CancellationNoticeHours,
		RefundEligible: canCancel,
	}, nil
}

// SweepExpired удаляет pending-записи старше допустимого периода ожидания оплаты
func (s *Service) SweepExpired(ctx context.Context) (*models.CleanupResponse, error) {
	cutoff := s.now().Add(-domain.PendingGracePeriod)

	deleted, err := s.appointmentRepo.DeleteExpiredPending(ctx, cutoff)
	if err != nil {
		s.logger.Error("SweepExpired: repository error: %v", err)
		return nil, fmt.Errorf("%w: SweepExpired - repository error: %v", ErrInternal, err)
	}

	if deleted > 0 {
		s.logger.Info("SweepExpired: deleted %d expired pending appointments", deleted)
	}
	return &models.CleanupResponse{Deleted: deleted}, nil
}

// SendConfirmation отправляет WhatsApp-подтверждение клиенту и помечает запись
func (s *Service) SendConfirmation(ctx context.Context, id int64) error {
	s.logger.Info("SendConfirmation: sending confirmation for appointment id=%d", id)

	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("SendConfirmation: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("SendConfirmation: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: SendConfirmation - repository error: %v", ErrInternal, err)
	}

	message := whatsapp.ConfirmationMessage(apt)

	if err := s.whatsappSender.Send(ctx, apt.ClientPhone, message); err != nil {
		if errors.Is(err, whatsapp.ErrDisabled) {
			s.logger.Warn("SendConfirmation: whatsapp disabled, appointment id=%d", id)
			return ErrWhatsAppDisabled
		}
		s.logger.Error("SendConfirmation: failed to send for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: %v", ErrWhatsAppFailed, err)
	}

	if err := s.appointmentRepo.MarkWhatsAppSent(ctx, id, whatsapp.Method); err != nil {
		// Сообщение уже отправлено, ошибку пометки не считаем фатальной
		s.logger.Error("SendConfirmation: failed to mark appointment id=%d as notified: %v", id, err)
	}

	s.logger.Info("SendConfirmation: confirmation sent for appointment id=%d", id)
	return nil
}

// hoursBeforeStart возвращает количество полных часов до начала записи
func (s *Service) hoursBeforeStart(apt *domain.Appointment) (int, error) {
	startAt, err := apt.StartAt()
	if err != nil {
		return 0, err
	}
	return dateutil.HoursUntil(s.now(), startAt), nil
}
