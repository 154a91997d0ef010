package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/dbmetrics"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/pgerrors"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/psqlbuilder"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

var bookingColumns = []string{
	"b.id",
	"b.user_id",
	"b.booking_type_id",
	"b.fee",
	"b.booking_date",
	"b.booking_time",
	"b.end_time",
	"b.status",
	"b.payment_status",
	"b.approved_by",
	"b.notes",
	"b.rejection_reason",
	"b.cancellation_reason",
	"b.previous_date",
	"b.previous_time",
	"b.reschedule_reason",
	"b.rescheduled_at",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Нарушение индекса bookings_active_slot_uq возвращается как ErrSlotConflict:
// это последний рубеж против двойного бронирования, если проверка в usecase проиграла гонку
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"booking_type_id",
			"fee",
			"booking_date",
			"booking_time",
			"end_time",
			"status",
			"payment_status",
			"notes",
		).
		Values(
			booking.UserID,
			booking.BookingTypeID,
			booking.Fee,
			booking.BookingDate,
			booking.BookingTime,
			booking.EndTime,
			booking.Status,
			booking.PaymentStatus,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if pgerrors.IsUniqueViolation(err, ActiveSlotConstraint) {
		return nil, ErrSlotConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца перехода статуса
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования вместе с названием типа
// По умолчанию отменённые и отклонённые не возвращаются (IncludeInactive)
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.BookingWithType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append(append([]string{}, bookingColumns...), "bt.name")
	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings b").
		Join("booking_types bt ON bt.id = b.booking_type_id")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.user_id": *filter.UserID})
	}
	if filter.BookingTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.booking_type_id": *filter.BookingTypeID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"b.booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"b.booking_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.status": inactiveStatuses()})
	}

	query, args, err := selectBuilder.
		OrderBy("b.booking_date DESC", "b.booking_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingWithType, 0)
	for rows.Next() {
		var item domain.BookingWithType
		if err := rows.Scan(append(bookingDest(&item.Booking), &item.TypeName)...); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ListActiveByDate активные бронирования всех типов на дату, по времени начала
func (r *Repository) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.booking_date": date}).
		Where(squirrel.NotEq{"b.status": inactiveStatuses()}).
		OrderBy("b.booking_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(bookingDest(&b)...); err != nil {
			return nil, fmt.Errorf("%w: ListActiveByDate - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// CountActiveByTypeAndDate считает активные бронирования типа на дату (для лимита в день)
// excludeID исключает само бронирование при переносе
func (r *Repository) CountActiveByTypeAndDate(ctx context.Context, bookingTypeID int64, date time.Time, excludeID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"booking_type_id": bookingTypeID, "booking_date": date}).
		Where(squirrel.NotEq{"status": inactiveStatuses()})
	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByTypeAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByTypeAndDate - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// ExistsActiveAtSlot проверяет, занят ли слот (дата, время) активным бронированием любого типа
func (r *Repository) ExistsActiveAtSlot(ctx context.Context, date time.Time, at types.TimeString, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inner := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"booking_date": date, "booking_time": at}).
		Where(squirrel.NotEq{"status": inactiveStatuses()})
	if excludeID != nil {
		inner = inner.Where(squirrel.NotEq{"id": *excludeID})
	}

	innerSQL, args, err := inner.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveAtSlot - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	query := "SELECT EXISTS(" + innerSQL + ")"
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsActiveAtSlot - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

// CountPendingByStaff считает ожидающие бронирования, закреплённые за сотрудником
func (r *Repository) CountPendingByStaff(ctx context.Context, staffID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"approved_by": staffID, "status": domain.BookingPending}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountPendingByStaff - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountPendingByStaff - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{
		"status": status,
	})
}

// Approve переводит бронирование в approved и запоминает сотрудника
func (r *Repository) Approve(ctx context.Context, id int64, approvedBy *int64) error {
	return r.update(ctx, "Approve", id, map[string]interface{}{
		"status":      domain.BookingApproved,
		"approved_by": approvedBy,
	})
}

// Reject отклоняет бронирование с указанием причины
func (r *Repository) Reject(ctx context.Context, id int64, reason string) error {
	return r.update(ctx, "Reject", id, map[string]interface{}{
		"status":           domain.BookingRejected,
		"rejection_reason": reason,
	})
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	return r.update(ctx, "Cancel", id, map[string]interface{}{
		"status":              domain.BookingCancelled,
		"cancellation_reason": reason,
	})
}

// Reschedule переносит бронирование, сохраняя прежние дату и время
// Нарушение уникальности слота так же возвращается как ErrSlotConflict
func (r *Repository) Reschedule(ctx context.Context, id int64, previous *domain.Booking, change domain.RescheduleChange) error {
	err := r.update(ctx, "Reschedule", id, map[string]interface{}{
		"booking_date":      change.Date,
		"booking_time":      change.Time,
		"end_time":          change.EndTime,
		"previous_date":     previous.BookingDate,
		"previous_time":     previous.BookingTime,
		"reschedule_reason": change.Reason,
		"rescheduled_at":    squirrel.Expr("NOW()"),
	})
	if pgerrors.IsUniqueViolation(err, ActiveSlotConstraint) {
		return ErrSlotConflict
	}
	return err
}

// UpdatePaymentStatus меняет статус оплаты бронирования
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.update(ctx, "UpdatePaymentStatus", id, map[string]interface{}{
		"payment_status": status,
	})
}

// Assign закрепляет ожидающее бронирование за сотрудником
func (r *Repository) Assign(ctx context.Context, id int64, staffID int64) error {
	return r.update(ctx, "Assign", id, map[string]interface{}{
		"approved_by": staffID,
	})
}

func (r *Repository) update(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values["updated_at"] = squirrel.Expr("NOW()")
	query, args, err := psqlbuilder.Update("bookings").
		SetMap(values).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(bookingDest(&b)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func bookingDest(b *domain.Booking) []interface{} {
	return []interface{}{
		&b.ID,
		&b.UserID,
		&b.BookingTypeID,
		&b.Fee,
		&b.BookingDate,
		&b.BookingTime,
		&b.EndTime,
		&b.Status,
		&b.PaymentStatus,
		&b.ApprovedBy,
		&b.Notes,
		&b.RejectionReason,
		&b.CancellationReason,
		&b.PreviousDate,
		&b.PreviousTime,
		&b.RescheduleReason,
		&b.RescheduledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

func inactiveStatuses() []string {
	statuses := make([]string, len(domain.InactiveBookingStatuses))
	for i, s := range domain.InactiveBookingStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
