package memory

import (
	"context"
	"sort"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/payment"
)

// PaymentRepository платежи в памяти
type PaymentRepository struct {
	s *Store
}

// Payments репозиторий платежей хранилища
func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{s: s}
}

func (r *PaymentRepository) Create(ctx context.Context, sub domain.Submission) (*domain.Payment, error) {
	defer r.s.lock(ctx)()

	for _, p := range r.s.data.payments {
		if p.ReferenceType == sub.ReferenceType && p.ReferenceID == sub.ReferenceID {
			return nil, payment.ErrPaymentExists
		}
	}

	now := r.s.clock()
	p := domain.Payment{
		ID:            r.s.nextID(),
		UserID:        sub.UserID,
		ReferenceType: sub.ReferenceType,
		ReferenceID:   sub.ReferenceID,
		Amount:        sub.Amount,
		Method:        sub.Method,
		ProofPath:     sub.ProofPath,
		Status:        domain.PaymentRecordPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.s.data.payments[p.ID] = p

	return &p, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.data.payments[id]
	if !ok {
		return nil, payment.ErrPaymentNotFound
	}
	return &p, nil
}

func (r *PaymentRepository) GetByReference(ctx context.Context, refType domain.ReferenceType, refID int64) (*domain.Payment, error) {
	defer r.s.lock(ctx)()

	for _, p := range r.s.data.payments {
		if p.ReferenceType == refType && p.ReferenceID == refID {
			return &p, nil
		}
	}
	return nil, payment.ErrPaymentNotFound
}

func (r *PaymentRepository) ListByStatus(ctx context.Context, status domain.PaymentRecordStatus) ([]*domain.Payment, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.Payment, 0)
	for _, p := range r.s.data.payments {
		if p.Status == status {
			p := p
			result = append(result, &p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *PaymentRepository) CountPendingByStaff(ctx context.Context, staffID int64) (int, error) {
	defer r.s.lock(ctx)()

	count := 0
	for _, p := range r.s.data.payments {
		if p.Status == domain.PaymentRecordPending && p.VerifiedBy != nil && *p.VerifiedBy == staffID {
			count++
		}
	}
	return count, nil
}

func (r *PaymentRepository) Resubmit(ctx context.Context, id int64, sub domain.Submission) error {
	return r.mutate(ctx, id, func(p *domain.Payment) {
		p.Amount = sub.Amount
		p.Method = sub.Method
		p.ProofPath = sub.ProofPath
		p.Status = domain.PaymentRecordPending
		p.VerifiedBy = nil
		p.RejectionReason = nil
	})
}

func (r *PaymentRepository) Verify(ctx context.Context, id int64, verifiedBy *int64) error {
	return r.mutate(ctx, id, func(p *domain.Payment) {
		p.Status = domain.PaymentRecordVerified
		p.VerifiedBy = verifiedBy
	})
}

func (r *PaymentRepository) Reject(ctx context.Context, id int64, verifiedBy *int64, reason string) error {
	return r.mutate(ctx, id, func(p *domain.Payment) {
		p.Status = domain.PaymentRecordRejected
		p.VerifiedBy = verifiedBy
		p.RejectionReason = &reason
	})
}

func (r *PaymentRepository) Assign(ctx context.Context, id int64, staffID int64) error {
	return r.mutate(ctx, id, func(p *domain.Payment) {
		p.VerifiedBy = &staffID
	})
}

func (r *PaymentRepository) mutate(ctx context.Context, id int64, fn func(p *domain.Payment)) error {
	defer r.s.lock(ctx)()

	p, ok := r.s.data.payments[id]
	if !ok {
		return payment.ErrPaymentNotFound
	}
	fn(&p)
	p.UpdatedAt = r.s.clock()
	r.s.data.payments[id] = p
	return nil
}
