package memory

import (
	"context"
	"sort"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/catalog"
)

// CatalogRepository справочники в памяти
type CatalogRepository struct {
	s *Store
}

// Catalog репозиторий справочников хранилища
func (s *Store) Catalog() *CatalogRepository {
	return &CatalogRepository{s: s}
}

// AddBookingType добавляет тип бронирования; ID назначается, если не задан
func (s *Store) AddBookingType(bt domain.BookingType) domain.BookingType {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bt.ID == 0 {
		bt.ID = s.nextID()
	} else if bt.ID > s.data.seq {
		s.data.seq = bt.ID
	}
	s.data.bookingTypes[bt.ID] = bt
	return bt
}

// AddDocumentType добавляет тип документа; ID назначается, если не задан
func (s *Store) AddDocumentType(dt domain.DocumentType) domain.DocumentType {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dt.ID == 0 {
		dt.ID = s.nextID()
	} else if dt.ID > s.data.seq {
		s.data.seq = dt.ID
	}
	s.data.documentTypes[dt.ID] = dt
	return dt
}

func (r *CatalogRepository) GetBookingType(ctx context.Context, id int64) (*domain.BookingType, error) {
	defer r.s.lock(ctx)()

	bt, ok := r.s.data.bookingTypes[id]
	if !ok {
		return nil, catalog.ErrBookingTypeNotFound
	}
	return &bt, nil
}

func (r *CatalogRepository) ListBookingTypes(ctx context.Context, activeOnly bool) ([]*domain.BookingType, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.BookingType, 0)
	for _, bt := range r.s.data.bookingTypes {
		if activeOnly && !bt.IsActive {
			continue
		}
		bt := bt
		result = append(result, &bt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *CatalogRepository) UpdateBookingType(ctx context.Context, bt *domain.BookingType) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.data.bookingTypes[bt.ID]; !ok {
		return catalog.ErrBookingTypeNotFound
	}
	r.s.data.bookingTypes[bt.ID] = *bt
	return nil
}

func (r *CatalogRepository) GetDocumentType(ctx context.Context, id int64) (*domain.DocumentType, error) {
	defer r.s.lock(ctx)()

	dt, ok := r.s.data.documentTypes[id]
	if !ok {
		return nil, catalog.ErrDocumentTypeNotFound
	}
	return &dt, nil
}

func (r *CatalogRepository) ListDocumentTypes(ctx context.Context, activeOnly bool) ([]*domain.DocumentType, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.DocumentType, 0)
	for _, dt := range r.s.data.documentTypes {
		if activeOnly && !dt.IsActive {
			continue
		}
		dt := dt
		result = append(result, &dt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
