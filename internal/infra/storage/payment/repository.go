package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/dbmetrics"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/pgerrors"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"user_id",
	"reference_type",
	"reference_id",
	"amount",
	"payment_method",
	"proof_path",
	"status",
	"verified_by",
	"rejection_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий платежей
// На каждую заявку или бронирование приходится не больше одной строки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платёж в статусе pending
func (r *Repository) Create(ctx context.Context, s domain.Submission) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"user_id",
			"reference_type",
			"reference_id",
			"amount",
			"payment_method",
			"proof_path",
			"status",
		).
		Values(
			s.UserID,
			s.ReferenceType,
			s.ReferenceID,
			s.Amount,
			s.Method,
			s.ProofPath,
			domain.PaymentRecordPending,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	p := &domain.Payment{
		UserID:        s.UserID,
		ReferenceType: s.ReferenceType,
		ReferenceID:   s.ReferenceID,
		Amount:        s.Amount,
		Method:        s.Method,
		ProofPath:     s.ProofPath,
		Status:        domain.PaymentRecordPending,
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if pgerrors.IsUniqueViolation(err, ReferenceConstraint) {
		return nil, ErrPaymentExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает платёж по ID; в транзакции строка блокируется
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByReference получает платёж по заявке или бронированию
func (r *Repository) GetByReference(ctx context.Context, refType domain.ReferenceType, refID int64) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByReference", squirrel.Eq{"reference_type": refType, "reference_id": refID})
}

// ListByStatus получает платежи в статусе, старые первыми
func (r *Repository) ListByStatus(ctx context.Context, status domain.PaymentRecordStatus) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"status": status}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(paymentDest(&p)...); err != nil {
			return nil, fmt.Errorf("%w: ListByStatus - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// CountPendingByStaff считает ожидающие платежи, закреплённые за сотрудником
func (r *Repository) CountPendingByStaff(ctx context.Context, staffID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("payments").
		Where(squirrel.Eq{"verified_by": staffID, "status": domain.PaymentRecordPending}).
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

// Resubmit возвращает отклонённый платёж в pending с новыми данными
func (r *Repository) Resubmit(ctx context.Context, id int64, s domain.Submission) error {
	return r.update(ctx, "Resubmit", id, map[string]interface{}{
		"amount":           s.Amount,
		"payment_method":   s.Method,
		"proof_path":       s.ProofPath,
		"status":           domain.PaymentRecordPending,
		"verified_by":      nil,
		"rejection_reason": nil,
	})
}

// Verify подтверждает платёж
func (r *Repository) Verify(ctx context.Context, id int64, verifiedBy *int64) error {
	return r.update(ctx, "Verify", id, map[string]interface{}{
		"status":      domain.PaymentRecordVerified,
		"verified_by": verifiedBy,
	})
}

// Reject отклоняет платёж с указанием причины
func (r *Repository) Reject(ctx context.Context, id int64, verifiedBy *int64, reason string) error {
	return r.update(ctx, "Reject", id, map[string]interface{}{
		"status":           domain.PaymentRecordRejected,
		"verified_by":      verifiedBy,
		"rejection_reason": reason,
	})
}

// Assign закрепляет платёж за сотрудником для проверки
func (r *Repository) Assign(ctx context.Context, id int64, staffID int64) error {
	return r.update(ctx, "Assign", id, map[string]interface{}{
		"verified_by": staffID,
	})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var p domain.Payment
	err = executor.QueryRowContext(ctx, query, args...).Scan(paymentDest(&p)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %w", ErrScanRow, op, err)
	}

	return &p, nil
}

func (r *Repository) update(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values["updated_at"] = squirrel.Expr("NOW()")
	query, args, err := psqlbuilder.Update("payments").
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
		return ErrPaymentNotFound
	}

	return nil
}

func paymentDest(p *domain.Payment) []interface{} {
	return []interface{}{
		&p.ID,
		&p.UserID,
		&p.ReferenceType,
		&p.ReferenceID,
		&p.Amount,
		&p.Method,
		&p.ProofPath,
		&p.Status,
		&p.VerifiedBy,
		&p.RejectionReason,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}
