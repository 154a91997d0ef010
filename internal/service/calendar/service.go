package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	blockedRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/blockeddate"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// Максимальный интервал выборки блокировок
const maxRangeDays = 366

// BlockRequest запрос на блокировку даты
// Без StartTime/EndTime блокируется весь день
type BlockRequest struct {
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    string
}

// Service календарь офиса: праздники, выезды, закрытые интервалы
type Service struct {
	blockedRepo BlockedDateRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(blockedRepo BlockedDateRepository, logger Logger) *Service {
	return &Service{
		blockedRepo: blockedRepo,
		logger:      logger,
	}
}

// Block закрывает дату или интервал для новых бронирований; доступно только администратору
// Уже существующие бронирования не затрагиваются
func (s *Service) Block(ctx context.Context, caller domain.Caller, req *BlockRequest) (*domain.BlockedDate, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", domain.ErrAccessDenied)
	}

	if err := validateBlock(req); err != nil {
		s.logger.Warn("Block: validation failed: %v", err)
		return nil, err
	}

	created, err := s.blockedRepo.Create(ctx, &domain.BlockedDate{
		Date:      domain.DateOnly(req.Date),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    strings.TrimSpace(req.Reason),
		CreatedBy: caller.UserID,
	})
	if err != nil {
		s.logger.Error("Block: repository error: %v", err)
		return nil, fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Block: %s blocked by user=%d (id=%d, full day=%t)",
		created.Date.Format(domain.DateFormat), caller.UserID, created.ID, created.IsFullDay())
	return created, nil
}

// Unblock снимает блокировку; доступно только администратору
func (s *Service) Unblock(ctx context.Context, caller domain.Caller, id int64) error {
	if !caller.IsAdmin() {
		return fmt.Errorf("%w: admin role required", domain.ErrAccessDenied)
	}

	if err := s.blockedRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedDateNotFound) {
			return fmt.Errorf("%w: blocked date %d", domain.ErrNotFound, id)
		}
		s.logger.Error("Unblock: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unblock: blocked date id=%d removed by user=%d", id, caller.UserID)
	return nil
}

// List блокировки в интервале дат включительно; публичный метод
func (s *Service) List(ctx context.Context, from, to time.Time) ([]*domain.BlockedDate, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", domain.ErrValidation)
	}
	if domain.CalendarBefore(to, from) {
		return nil, fmt.Errorf("%w: from must not be after to", domain.ErrValidation)
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range must not exceed %d days", domain.ErrValidation, maxRangeDays)
	}

	list, err := s.blockedRepo.ListRange(ctx, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

func validateBlock(req *BlockRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}
	if len(reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", domain.ErrValidation, domain.MaxReasonLength)
	}

	if (req.StartTime == nil) != (req.EndTime == nil) {
		return fmt.Errorf("%w: startTime and endTime must be given together", domain.ErrValidation)
	}
	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", domain.ErrValidation, err)
		}
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", domain.ErrValidation, err)
		}
		if !req.StartTime.IsBefore(*req.EndTime) {
			return fmt.Errorf("%w: startTime must be before endTime", domain.ErrValidation)
		}
	}
	return nil
}
