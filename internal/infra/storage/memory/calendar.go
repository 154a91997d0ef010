package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/absence"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/blockeddate"
)

// BlockedDateRepository заблокированные даты в памяти
type BlockedDateRepository struct {
	s *Store
}

// BlockedDates репозиторий заблокированных дат хранилища
func (s *Store) BlockedDates() *BlockedDateRepository {
	return &BlockedDateRepository{s: s}
}

func (r *BlockedDateRepository) Create(ctx context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error) {
	defer r.s.lock(ctx)()

	b.ID = r.s.nextID()
	b.CreatedAt = r.s.clock()
	r.s.data.blocked[b.ID] = *b

	out := *b
	return &out, nil
}

func (r *BlockedDateRepository) Delete(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.data.blocked[id]; !ok {
		return blockeddate.ErrBlockedDateNotFound
	}
	delete(r.s.data.blocked, id)
	return nil
}

func (r *BlockedDateRepository) ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedDate, error) {
	return r.ListRange(ctx, date, date)
}

func (r *BlockedDateRepository) ListRange(ctx context.Context, from, to time.Time) ([]*domain.BlockedDate, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.BlockedDate, 0)
	for _, b := range r.s.data.blocked {
		if domain.CalendarBefore(b.Date, from) || domain.CalendarBefore(to, b.Date) {
			continue
		}
		b := b
		result = append(result, &b)
	}
	sort.Slice(result, func(i, j int) bool {
		if !domain.SameCalendarDate(result[i].Date, result[j].Date) {
			return domain.CalendarBefore(result[i].Date, result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// AbsenceRepository отсутствия сотрудников в памяти
type AbsenceRepository struct {
	s *Store
}

// Absences репозиторий отсутствий хранилища
func (s *Store) Absences() *AbsenceRepository {
	return &AbsenceRepository{s: s}
}

func (r *AbsenceRepository) Create(ctx context.Context, a *domain.StaffAbsence) (*domain.StaffAbsence, error) {
	defer r.s.lock(ctx)()

	a.ID = r.s.nextID()
	a.CreatedAt = r.s.clock()
	r.s.data.absences[a.ID] = *a

	out := *a
	return &out, nil
}

func (r *AbsenceRepository) Delete(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.data.absences[id]; !ok {
		return absence.ErrAbsenceNotFound
	}
	delete(r.s.data.absences, id)
	return nil
}

func (r *AbsenceRepository) ListActiveOn(ctx context.Context, date time.Time) ([]*domain.StaffAbsence, error) {
	return r.filter(ctx, func(a *domain.StaffAbsence) bool { return a.CoversDate(date) })
}

func (r *AbsenceRepository) ListByStaff(ctx context.Context, staffID int64) ([]*domain.StaffAbsence, error) {
	return r.filter(ctx, func(a *domain.StaffAbsence) bool { return a.StaffID == staffID })
}

func (r *AbsenceRepository) ListRange(ctx context.Context, from, to time.Time) ([]*domain.StaffAbsence, error) {
	return r.filter(ctx, func(a *domain.StaffAbsence) bool {
		return !domain.CalendarBefore(to, a.StartDate) && !domain.CalendarBefore(a.EndDate, from)
	})
}

func (r *AbsenceRepository) filter(ctx context.Context, keep func(a *domain.StaffAbsence) bool) ([]*domain.StaffAbsence, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.StaffAbsence, 0)
	for _, a := range r.s.data.absences {
		a := a
		if keep(&a) {
			result = append(result, &a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !domain.SameCalendarDate(result[i].StartDate, result[j].StartDate) {
			return domain.CalendarBefore(result[i].StartDate, result[j].StartDate)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
