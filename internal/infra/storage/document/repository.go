package document

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

var documentColumns = []string{
	"d.id",
	"d.user_id",
	"d.document_type_id",
	"d.fee",
	"d.purpose",
	"d.status",
	"d.payment_status",
	"d.processed_by",
	"d.rejection_reason",
	"d.cancellation_reason",
	"d.created_at",
	"d.updated_at",
}

// Repository репозиторий заявок на документы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок на документы
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку
func (r *Repository) Create(ctx context.Context, req *domain.DocumentRequest) (*domain.DocumentRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("document_requests").
		Columns(
			"user_id",
			"document_type_id",
			"fee",
			"purpose",
			"status",
			"payment_status",
		).
		Values(
			req.UserID,
			req.DocumentTypeID,
			req.Fee,
			req.Purpose,
			req.Status,
			req.PaymentStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID; в транзакции строка блокируется
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.DocumentRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(documentColumns...).
		From("document_requests d").
		Where(squirrel.Eq{"d.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var d domain.DocumentRequest
	err = executor.QueryRowContext(ctx, query, args...).Scan(documentDest(&d)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan document request: %w", ErrScanRow, err)
	}

	return &d, nil
}

// List получает заявки вместе с названием типа документа, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.DocumentRequestWithType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append(append([]string{}, documentColumns...), "dt.name")
	selectBuilder := psqlbuilder.Select(columns...).
		From("document_requests d").
		Join("document_types dt ON dt.id = d.document_type_id")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"d.user_id": *filter.UserID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"d.status": *filter.Status})
	}

	query, args, err := selectBuilder.OrderBy("d.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.DocumentRequestWithType, 0)
	for rows.Next() {
		var item domain.DocumentRequestWithType
		if err := rows.Scan(append(documentDest(&item.DocumentRequest), &item.TypeName)...); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// CountPendingByStaff считает ожидающие заявки, закреплённые за сотрудником
func (r *Repository) CountPendingByStaff(ctx context.Context, staffID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("document_requests").
		Where(squirrel.Eq{"processed_by": staffID, "status": domain.DocumentPending}).
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

// Approve переводит заявку в processing и запоминает сотрудника
func (r *Repository) Approve(ctx context.Context, id int64, processedBy *int64) error {
	return r.update(ctx, "Approve", id, map[string]interface{}{
		"status":       domain.DocumentProcessing,
		"processed_by": processedBy,
	})
}

// UpdateStatus обновляет статус заявки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.DocumentStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{
		"status": status,
	})
}

// Reject отклоняет заявку с указанием причины
func (r *Repository) Reject(ctx context.Context, id int64, processedBy *int64, reason string) error {
	return r.update(ctx, "Reject", id, map[string]interface{}{
		"status":           domain.DocumentRejected,
		"processed_by":     processedBy,
		"rejection_reason": reason,
	})
}

// Cancel отменяет заявку
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	return r.update(ctx, "Cancel", id, map[string]interface{}{
		"status":              domain.DocumentCancelled,
		"cancellation_reason": reason,
	})
}

// UpdatePaymentStatus меняет статус оплаты заявки
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.update(ctx, "UpdatePaymentStatus", id, map[string]interface{}{
		"payment_status": status,
	})
}

// Assign закрепляет заявку за сотрудником
func (r *Repository) Assign(ctx context.Context, id int64, staffID int64) error {
	return r.update(ctx, "Assign", id, map[string]interface{}{
		"processed_by": staffID,
	})
}

func (r *Repository) update(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values["updated_at"] = squirrel.Expr("NOW()")
	query, args, err := psqlbuilder.Update("document_requests").
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
		return ErrDocumentRequestNotFound
	}

	return nil
}

func documentDest(d *domain.DocumentRequest) []interface{} {
	return []interface{}{
		&d.ID,
		&d.UserID,
		&d.DocumentTypeID,
		&d.Fee,
		&d.Purpose,
		&d.Status,
		&d.PaymentStatus,
		&d.ProcessedBy,
		&d.RejectionReason,
		&d.CancellationReason,
		&d.CreatedAt,
		&d.UpdatedAt,
	}
}
