package availabledays

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	dayRepo "github.com/m04kA/DPL-BookingService/internal/infra/storage/availableday"
	"github.com/m04kA/DPL-BookingService/internal/service/availabledays/models"
	"github.com/m04kA/DPL-BookingService/pkg/dateutil"
	"github.com/m04kA/DPL-BookingService/pkg/types"
)

// Service сервис для управления доступными днями (административный)
type Service struct {
	dayRepo AvailableDayRepository
	txMgr   TransactionManager
	logger  Logger
}

// NewService создает новый экземпляр сервиса доступных дней
func NewService(
	dayRepo AvailableDayRepository,
	txMgr TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		dayRepo: dayRepo,
		txMgr:   txMgr,
		logger:  logger,
	}
}

// Create создает новый доступный день с окнами и зонами
func (s *Service) Create(ctx context.Context, req *models.CreateDayRequest) (*models.DayResponse, error) {
	s.logger.Info("Create: creating available day for date=%s", req.Date)

	date, err := dateutil.NormalizeString(req.Date)
	if err != nil {
		s.logger.Warn("Create: invalid date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}

	if err := s.validateDayData(req.Windows, req.Zones); err != nil {
		s.logger.Warn("Create: validation failed for date=%s: %v", req.Date, err)
		return nil, err
	}

	var created *domain.AvailableDay
	// День, окна и зоны пишутся в три таблицы, объединяем в одну транзакцию
	err = s.txMgr.Do(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.dayRepo.Create(ctx, req.ToDomainDay(date))
		return txErr
	})
	if err != nil {
		if errors.Is(err, dayRepo.ErrDuplicateDay) {
			s.logger.Warn("Create: day already exists for date=%s", req.Date)
			return nil, ErrDayAlreadyExists
		}
		s.logger.Error("Create: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created available day id=%d for date=%s", created.ID, req.Date)
	return models.FromDomainDay(created), nil
}

// Update обновляет доступный день
// Переданные окна и зоны полностью заменяют существующие
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateDayRequest) (*models.DayResponse, error) {
	s.logger.Info("Update: updating available day id=%d", id)

	day, err := s.dayRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dayRepo.ErrDayNotFound) {
			s.logger.Warn("Update: available day id=%d not found", id)
			return nil, ErrDayNotFound
		}
		s.logger.Error("Update: repository error for day id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	req.ApplyToDay(day)

	if err := s.validateDomainDay(day); err != nil {
		s.logger.Warn("Update: validation failed for day id=%d: %v", id, err)
		return nil, err
	}

	var updated *domain.AvailableDay
	err = s.txMgr.Do(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = s.dayRepo.Update(ctx, id, day)
		return txErr
	})
	if err != nil {
		if errors.Is(err, dayRepo.ErrDayNotFound) {
			s.logger.Warn("Update: available day id=%d not found during update", id)
			return nil, ErrDayNotFound
		}
		s.logger.Error("Update: repository error for day id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated available day id=%d", id)
	return models.FromDomainDay(updated), nil
}

// List возвращает все доступные дни, отсортированные по дате
func (s *Service) List(ctx context.Context) (*models.DayListResponse, error) {
	s.logger.Info("List: fetching available days")

	days, err := s.dayRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d available days", len(days))
	return models.FromDomainDayList(days), nil
}

// GetZonesForDate возвращает услуги (зоны), доступные на указанную дату
// Публичный метод: учитывает только включенные дни
func (s *Service) GetZonesForDate(ctx context.Context, dateStr string) (*models.DayZonesResponse, error) {
	s.logger.Info("GetZonesForDate: fetching zones for date=%s", dateStr)

	date, err := dateutil.NormalizeString(dateStr)
	if err != nil {
		s.logger.Warn("GetZonesForDate: invalid date=%s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}

	day, err := s.dayRepo.GetEnabledByDate(ctx, date)
	if err != nil {
		if errors.Is(err, dayRepo.ErrDayNotFound) {
			s.logger.Warn("GetZonesForDate: no enabled day for date=%s", dateStr)
			return nil, ErrDayNotFound
		}
		s.logger.Error("GetZonesForDate: repository error for date=%s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: GetZonesForDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetZonesForDate: successfully fetched %d zones for date=%s", len(day.Zones), dateStr)
	return &models.DayZonesResponse{
		Date:  dateutil.Format(date),
		Zones: models.FromDomainZones(day.Zones),
	}, nil
}

// Вспомогательные методы

// validateDayData валидирует окна и зоны из запроса
func (s *Service) validateDayData(windows []models.WindowPayload, zones []models.ZonePayload) error {
	for _, w := range windows {
		if err := types.TimeString(w.Start).Validate(); err != nil {
			return fmt.Errorf("%w: invalid window start time %q", ErrInvalidInput, w.Start)
		}
		if err := types.TimeString(w.End).Validate(); err != nil {
			return fmt.Errorf("%w: invalid window end time %q", ErrInvalidInput, w.End)
		}
	}

	for _, z := range zones {
		if err := s.validateZone(z.Name, z.Price, z.DurationMinutes); err != nil {
			return err
		}
	}

	return nil
}

// validateDomainDay валидирует domain модель после применения обновлений
func (s *Service) validateDomainDay(day *domain.AvailableDay) error {
	for _, w := range day.Windows {
		if err := w.Start.Validate(); err != nil {
			return fmt.Errorf("%w: invalid window start time %q", ErrInvalidInput, w.Start)
		}
		if err := w.End.Validate(); err != nil {
			return fmt.Errorf("%w: invalid window end time %q", ErrInvalidInput, w.End)
		}
	}

	for _, z := range day.Zones {
		if err := s.validateZone(z.Name, z.Price, z.DurationMinutes); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) validateZone(name string, price float64, durationMinutes int) error {
	if name == "" || len(name) > domain.MaxZoneNameLength {
		return fmt.Errorf("%w: zone name must be between 1 and %d characters",
			ErrInvalidInput, domain.MaxZoneNameLength)
	}
	if price <= 0 {
		return fmt.Errorf("%w: zone price must be positive", ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: zone durationMinutes must be positive", ErrInvalidInput)
	}
	return nil
}
