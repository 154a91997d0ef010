package memory

import (
	"context"
	"sort"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/document"
)

// DocumentRepository заявки на документы в памяти
type DocumentRepository struct {
	s *Store
}

// Documents репозиторий заявок хранилища
func (s *Store) Documents() *DocumentRepository {
	return &DocumentRepository{s: s}
}

func (r *DocumentRepository) Create(ctx context.Context, d *domain.DocumentRequest) (*domain.DocumentRequest, error) {
	defer r.s.lock(ctx)()

	now := r.s.clock()
	d.ID = r.s.nextID()
	d.CreatedAt = now
	d.UpdatedAt = now
	r.s.data.documents[d.ID] = *d

	out := *d
	return &out, nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*domain.DocumentRequest, error) {
	defer r.s.lock(ctx)()

	d, ok := r.s.data.documents[id]
	if !ok {
		return nil, document.ErrDocumentRequestNotFound
	}
	return &d, nil
}

func (r *DocumentRepository) List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.DocumentRequestWithType, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.DocumentRequestWithType, 0)
	for _, d := range r.s.data.documents {
		if filter.UserID != nil && d.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && d.Status != *filter.Status {
			continue
		}
		result = append(result, &domain.DocumentRequestWithType{
			DocumentRequest: d,
			TypeName:        r.s.data.documentTypes[d.DocumentTypeID].Name,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *DocumentRepository) CountPendingByStaff(ctx context.Context, staffID int64) (int, error) {
	defer r.s.lock(ctx)()

	count := 0
	for _, d := range r.s.data.documents {
		if d.Status == domain.DocumentPending && d.ProcessedBy != nil && *d.ProcessedBy == staffID {
			count++
		}
	}
	return count, nil
}

func (r *DocumentRepository) Approve(ctx context.Context, id int64, processedBy *int64) error {
	return r.mutate(ctx, id, func(d *domain.DocumentRequest) {
		d.Status = domain.DocumentProcessing
		d.ProcessedBy = processedBy
	})
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id int64, status domain.DocumentStatus) error {
	return r.mutate(ctx, id, func(d *domain.DocumentRequest) {
		d.Status = status
	})
}

func (r *DocumentRepository) Reject(ctx context.Context, id int64, processedBy *int64, reason string) error {
	return r.mutate(ctx, id, func(d *domain.DocumentRequest) {
		d.Status = domain.DocumentRejected
		d.ProcessedBy = processedBy
		d.RejectionReason = &reason
	})
}

func (r *DocumentRepository) Cancel(ctx context.Context, id int64, reason *string) error {
	return r.mutate(ctx, id, func(d *domain.DocumentRequest) {
		d.Status = domain.DocumentCancelled
		d.CancellationReason = reason
	})
}

func (r *DocumentRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.mutate(ctx, id, func(d *domain.DocumentRequest) {
		d.PaymentStatus = status
	})
}

func (r *DocumentRepository) Assign(ctx context.Context, id int64, staffID int64) error {
	return r.mutate(ctx, id, func(d *domain.DocumentRequest) {
		d.ProcessedBy = &staffID
	})
}

func (r *DocumentRepository) mutate(ctx context.Context, id int64, fn func(d *domain.DocumentRequest)) error {
	defer r.s.lock(ctx)()

	d, ok := r.s.data.documents[id]
	if !ok {
		return document.ErrDocumentRequestNotFound
	}
	fn(&d)
	d.UpdatedAt = r.s.clock()
	r.s.data.documents[id] = d
	return nil
}
