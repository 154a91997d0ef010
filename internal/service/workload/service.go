package workload

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	absenceRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/absence"
	userRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/user"
)

// Service отсутствия сотрудников и их текущая нагрузка
type Service struct {
	absenceRepo  AbsenceRepository
	userRepo     UserRepository
	documents    PendingCounter
	bookings     PendingCounter
	payments     PendingCounter
	office       domain.OfficeHours
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса нагрузки
func NewService(
	absenceRepo AbsenceRepository,
	userRepo UserRepository,
	documents PendingCounter,
	bookings PendingCounter,
	payments PendingCounter,
	office domain.OfficeHours,
	logger Logger,
) *Service {
	return &Service{
		absenceRepo:  absenceRepo,
		userRepo:     userRepo,
		documents:    documents,
		bookings:     bookings,
		payments:     payments,
		office:       office,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// IsAbsent отсутствует ли сотрудник в дату (границы периода включительно)
func (s *Service) IsAbsent(ctx context.Context, staffID int64, date time.Time) (bool, *domain.StaffAbsence, error) {
	list, err := s.absenceRepo.ListByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("IsAbsent: failed to list absences of staff=%d: %v", staffID, err)
		return false, nil, fmt.Errorf("%w: IsAbsent - repository error: %v", ErrInternal, err)
	}
	for _, a := range list {
		if a.CoversDate(date) {
			return true, a, nil
		}
	}
	return false, nil, nil
}

// PendingWorkload ожидающие заявки, бронирования и платежи, закреплённые за сотрудником
func (s *Service) PendingWorkload(ctx context.Context, staffID int64) (domain.Workload, error) {
	var w domain.Workload

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		w.Documents, err = s.documents.CountPendingByStaff(gctx, staffID)
		return err
	})
	g.Go(func() (err error) {
		w.Bookings, err = s.bookings.CountPendingByStaff(gctx, staffID)
		return err
	})
	g.Go(func() (err error) {
		w.Payments, err = s.payments.CountPendingByStaff(gctx, staffID)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("PendingWorkload: failed to count workload of staff=%d: %v", staffID, err)
		return domain.Workload{}, fmt.Errorf("%w: PendingWorkload - repository error: %v", ErrInternal, err)
	}
	return w, nil
}

// Overview нагрузка и доступность каждого сотрудника на дату
// Нулевая дата означает сегодня по часовому поясу офиса
func (s *Service) Overview(ctx context.Context, caller domain.Caller, date time.Time) ([]domain.StaffWorkload, error) {
	if !caller.IsStaff() {
		return nil, fmt.Errorf("%w: staff role required", domain.ErrAccessDenied)
	}
	if date.IsZero() {
		// календарная дата офиса в том же виде, что и дата из запроса
		today := s.office.Today(s.timeProvider.Now())
		date = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	}
	date = domain.DateOnly(date)

	staff, err := s.userRepo.ListStaff(ctx)
	if err != nil {
		s.logger.Error("Overview: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: Overview - repository error: %v", ErrInternal, err)
	}

	active, err := s.absenceRepo.ListActiveOn(ctx, date)
	if err != nil {
		s.logger.Error("Overview: failed to list absences on %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Overview - repository error: %v", ErrInternal, err)
	}
	absentBy := make(map[int64]*domain.StaffAbsence, len(active))
	for _, a := range active {
		if _, seen := absentBy[a.StaffID]; !seen {
			absentBy[a.StaffID] = a
		}
	}

	result := make([]domain.StaffWorkload, len(staff))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range staff {
		i, u := i, u
		g.Go(func() error {
			w, err := s.PendingWorkload(gctx, u.ID)
			if err != nil {
				return err
			}
			row := domain.StaffWorkload{Staff: *u, Date: date, Pending: w}
			if a, ok := absentBy[u.ID]; ok {
				row.Absent = true
				row.Absence = a
				row.ReassignTo = a.ReassignTo
			}
			result[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateAbsence добавляет период отсутствия; доступно только администратору
// ReassignTo только подсказка: ожидающие элементы не переназначаются
func (s *Service) CreateAbsence(ctx context.Context, caller domain.Caller, req *CreateAbsenceRequest) (*domain.StaffAbsence, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", domain.ErrAccessDenied)
	}

	req.Reason = strings.TrimSpace(req.Reason)
	if err := s.validateAbsence(ctx, req); err != nil {
		s.logger.Warn("CreateAbsence: validation failed: %v", err)
		return nil, err
	}

	created, err := s.absenceRepo.Create(ctx, req.toDomain(caller.UserID))
	if err != nil {
		s.logger.Error("CreateAbsence: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateAbsence - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAbsence: staff=%d absent %s..%s (id=%d)", created.StaffID,
		created.StartDate.Format(domain.DateFormat), created.EndDate.Format(domain.DateFormat), created.ID)
	return created, nil
}

// DeleteAbsence удаляет период отсутствия; доступно только администратору
func (s *Service) DeleteAbsence(ctx context.Context, caller domain.Caller, id int64) error {
	if !caller.IsAdmin() {
		return fmt.Errorf("%w: admin role required", domain.ErrAccessDenied)
	}

	if err := s.absenceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
			return fmt.Errorf("%w: absence %d", domain.ErrNotFound, id)
		}
		s.logger.Error("DeleteAbsence: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteAbsence - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteAbsence: absence id=%d deleted by user=%d", id, caller.UserID)
	return nil
}

// ListAbsences отсутствия сотрудника или все отсутствия в интервале дат
func (s *Service) ListAbsences(ctx context.Context, caller domain.Caller, req ListAbsencesRequest) ([]*domain.StaffAbsence, error) {
	if !caller.IsStaff() {
		return nil, fmt.Errorf("%w: staff role required", domain.ErrAccessDenied)
	}

	var (
		list []*domain.StaffAbsence
		err  error
	)
	if req.StaffID != nil {
		list, err = s.absenceRepo.ListByStaff(ctx, *req.StaffID)
	} else {
		if domain.CalendarBefore(req.To, req.From) {
			return nil, fmt.Errorf("%w: from must not be after to", domain.ErrValidation)
		}
		list, err = s.absenceRepo.ListRange(ctx, req.From, req.To)
	}
	if err != nil {
		s.logger.Error("ListAbsences: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAbsences - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

func (s *Service) validateAbsence(ctx context.Context, req *CreateAbsenceRequest) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffId is required", domain.ErrValidation)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", domain.ErrValidation)
	}
	if domain.CalendarBefore(req.EndDate, req.StartDate) {
		return fmt.Errorf("%w: startDate must not be after endDate", domain.ErrValidation)
	}
	if req.Reason == "" {
		return fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", domain.ErrValidation, domain.MaxReasonLength)
	}

	if err := s.requireStaffUser(ctx, req.StaffID); err != nil {
		return err
	}
	if req.ReassignTo != nil {
		if *req.ReassignTo == req.StaffID {
			return fmt.Errorf("%w: reassignTo must differ from staffId", domain.ErrValidation)
		}
		if err := s.requireStaffUser(ctx, *req.ReassignTo); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) requireStaffUser(ctx context.Context, id int64) error {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
		}
		return fmt.Errorf("%w: requireStaffUser - repository error: %v", ErrInternal, err)
	}
	if u.Role != domain.RoleStaff && u.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: user %d is not staff", domain.ErrValidation, id)
	}
	return nil
}
