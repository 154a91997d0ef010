package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	catalogRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/catalog"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/catalog/models"
)

// Максимальная длительность одного бронирования (весь рабочий день)
const maxDurationMinutes = 24 * 60

// Service справочники офиса: типы бронирований и документов
type Service struct {
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(catalogRepo CatalogRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Get публичный справочник; неактивные типы видит только администратор
func (s *Service) Get(ctx context.Context, caller domain.Caller) (*models.CatalogResponse, error) {
	activeOnly := !caller.IsAdmin()

	bookingTypes, err := s.catalogRepo.ListBookingTypes(ctx, activeOnly)
	if err != nil {
		s.logger.Error("Get: failed to list booking types: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	documentTypes, err := s.catalogRepo.ListDocumentTypes(ctx, activeOnly)
	if err != nil {
		s.logger.Error("Get: failed to list document types: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCatalog(bookingTypes, documentTypes), nil
}

// UpdateBookingType изменяет тип бронирования; доступно только администратору
// Существующие бронирования сохраняют снимок стоимости на момент создания
func (s *Service) UpdateBookingType(ctx context.Context, caller domain.Caller, id int64, req *models.UpdateBookingTypeRequest) (*models.BookingTypeResponse, error) {
	s.logger.Info("UpdateBookingType: updating booking type id=%d by user=%d", id, caller.UserID)

	if !caller.IsAdmin() {
		s.logger.Warn("UpdateBookingType: user=%d is not an admin", caller.UserID)
		return nil, fmt.Errorf("%w: admin role required", domain.ErrAccessDenied)
	}

	var updated domain.BookingType

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// строка блокируется до конца транзакции, конкурирующие бронирования ждут
		bt, err := s.catalogRepo.GetBookingType(txCtx, id)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrBookingTypeNotFound) {
				s.logger.Warn("UpdateBookingType: booking type id=%d not found", id)
				return fmt.Errorf("%w: booking type %d", domain.ErrNotFound, id)
			}
			return fmt.Errorf("%w: UpdateBookingType - repository error: %w", ErrInternal, err)
		}

		updated = *bt
		req.ApplyTo(&updated)
		updated.Name = strings.TrimSpace(updated.Name)

		if err := validateBookingType(&updated); err != nil {
			s.logger.Warn("UpdateBookingType: validation failed for id=%d: %v", id, err)
			return err
		}

		if err := s.catalogRepo.UpdateBookingType(txCtx, &updated); err != nil {
			return fmt.Errorf("%w: UpdateBookingType - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateBookingType: booking type id=%d updated", id)
	return models.FromDomainBookingType(&updated), nil
}

// validateBookingType валидирует параметры типа бронирования
func validateBookingType(bt *domain.BookingType) error {
	if bt.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if bt.Fee.IsNegative() {
		return fmt.Errorf("%w: fee must not be negative", domain.ErrValidation)
	}
	if bt.DurationMinutes <= 0 || bt.DurationMinutes > maxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between 1 and %d", domain.ErrValidation, maxDurationMinutes)
	}
	if bt.MaxBookingsPerDay < 1 {
		return fmt.Errorf("%w: maxBookingsPerDay must be at least 1", domain.ErrValidation)
	}
	return nil
}
