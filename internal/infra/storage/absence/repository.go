package absence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/dbmetrics"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/psqlbuilder"
)

var absenceColumns = []string{
	"id",
	"staff_id",
	"start_date",
	"end_date",
	"reason",
	"reassign_to",
	"created_by",
	"created_at",
}

// Repository репозиторий отсутствий сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отсутствий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет период отсутствия
func (r *Repository) Create(ctx context.Context, a *domain.StaffAbsence) (*domain.StaffAbsence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_absences").
		Columns("staff_id", "start_date", "end_date", "reason", "reassign_to", "created_by").
		Values(a.StaffID, a.StartDate, a.EndDate, a.Reason, a.ReassignTo, a.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	a.CreatedAt = createdAt.Time

	return a, nil
}

// Delete удаляет период отсутствия
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_absences").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAbsenceNotFound
	}

	return nil
}

// ListActiveOn отсутствия, покрывающие дату (start_date <= date <= end_date)
func (r *Repository) ListActiveOn(ctx context.Context, date time.Time) ([]*domain.StaffAbsence, error) {
	return r.list(ctx, "ListActiveOn", squirrel.And{
		squirrel.LtOrEq{"start_date": date},
		squirrel.GtOrEq{"end_date": date},
	})
}

// ListByStaff все отсутствия сотрудника
func (r *Repository) ListByStaff(ctx context.Context, staffID int64) ([]*domain.StaffAbsence, error) {
	return r.list(ctx, "ListByStaff", squirrel.Eq{"staff_id": staffID})
}

// ListRange отсутствия, пересекающиеся с интервалом дат
func (r *Repository) ListRange(ctx context.Context, from, to time.Time) ([]*domain.StaffAbsence, error) {
	return r.list(ctx, "ListRange", squirrel.And{
		squirrel.LtOrEq{"start_date": to},
		squirrel.GtOrEq{"end_date": from},
	})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.StaffAbsence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(absenceColumns...).
		From("staff_absences").
		Where(where).
		OrderBy("start_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.StaffAbsence, 0)
	for rows.Next() {
		var a domain.StaffAbsence
		if err := rows.Scan(
			&a.ID,
			&a.StaffID,
			&a.StartDate,
			&a.EndDate,
			&a.Reason,
			&a.ReassignTo,
			&a.CreatedBy,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return result, nil
}
