package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/dbmetrics"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/psqlbuilder"
)

// Repository репозиторий справочников: типы бронирований и типы документов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBookingType получает тип бронирования по ID
// Внутри транзакции строка блокируется (FOR UPDATE): так сериализуются все
// бронирования одного типа, конкурирующие за дневной лимит
func (r *Repository) GetBookingType(ctx context.Context, id int64) (*domain.BookingType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"fee",
		"duration_minutes",
		"max_bookings_per_day",
		"is_active",
	).
		From("booking_types").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingType - build select query: %v", ErrBuildQuery, err)
	}

	var bt domain.BookingType
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&bt.ID,
		&bt.Name,
		&bt.Fee,
		&bt.DurationMinutes,
		&bt.MaxBookingsPerDay,
		&bt.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingType - scan booking type: %w", ErrScanRow, err)
	}

	return &bt, nil
}

// ListBookingTypes получает типы бронирований, отсортированные по названию
func (r *Repository) ListBookingTypes(ctx context.Context, activeOnly bool) ([]*domain.BookingType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"fee",
		"duration_minutes",
		"max_bookings_per_day",
		"is_active",
	).
		From("booking_types")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookingTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookingTypes - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingType, 0)
	for rows.Next() {
		var bt domain.BookingType
		if err := rows.Scan(
			&bt.ID,
			&bt.Name,
			&bt.Fee,
			&bt.DurationMinutes,
			&bt.MaxBookingsPerDay,
			&bt.IsActive,
		); err != nil {
			return nil, fmt.Errorf("%w: ListBookingTypes - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &bt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookingTypes - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpdateBookingType обновляет параметры типа бронирования
// Уже созданные бронирования сохраняют свой снимок стоимости
func (r *Repository) UpdateBookingType(ctx context.Context, bt *domain.BookingType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_types").
		Set("name", bt.Name).
		Set("fee", bt.Fee).
		Set("duration_minutes", bt.DurationMinutes).
		Set("max_bookings_per_day", bt.MaxBookingsPerDay).
		Set("is_active", bt.IsActive).
		Where(squirrel.Eq{"id": bt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateBookingType - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateBookingType - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateBookingType - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingTypeNotFound
	}

	return nil
}

// GetDocumentType получает тип документа по ID
func (r *Repository) GetDocumentType(ctx context.Context, id int64) (*domain.DocumentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"fee",
		"processing_days",
		"is_active",
	).
		From("document_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDocumentType - build select query: %v", ErrBuildQuery, err)
	}

	var dt domain.DocumentType
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&dt.ID,
		&dt.Name,
		&dt.Fee,
		&dt.ProcessingDays,
		&dt.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDocumentType - scan document type: %w", ErrScanRow, err)
	}

	return &dt, nil
}

// ListDocumentTypes получает типы документов, отсортированные по названию
func (r *Repository) ListDocumentTypes(ctx context.Context, activeOnly bool) ([]*domain.DocumentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"fee",
		"processing_days",
		"is_active",
	).
		From("document_types")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDocumentTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDocumentTypes - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.DocumentType, 0)
	for rows.Next() {
		var dt domain.DocumentType
		if err := rows.Scan(&dt.ID, &dt.Name, &dt.Fee, &dt.ProcessingDays, &dt.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListDocumentTypes - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &dt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDocumentTypes - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
