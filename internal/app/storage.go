package app

import (
	"context"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	absenceRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/absence"
	blockedRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/blockeddate"
	bookingRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/booking"
	catalogRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/catalog"
	documentRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/document"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/memory"
	notificationRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/notification"
	paymentRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/payment"
	userRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/user"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/dbmetrics"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/txmanager"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// BookingStore полный набор операций над бронированиями
type BookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.BookingWithType, error)
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	CountActiveByTypeAndDate(ctx context.Context, bookingTypeID int64, date time.Time, excludeID *int64) (int, error)
	ExistsActiveAtSlot(ctx context.Context, date time.Time, at types.TimeString, excludeID *int64) (bool, error)
	CountPendingByStaff(ctx context.Context, staffID int64) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Approve(ctx context.Context, id int64, approvedBy *int64) error
	Reject(ctx context.Context, id int64, reason string) error
	Cancel(ctx context.Context, id int64, reason *string) error
	Reschedule(ctx context.Context, id int64, previous *domain.Booking, change domain.RescheduleChange) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	Assign(ctx context.Context, id int64, staffID int64) error
}

// DocumentStore полный набор операций над заявками на документы
type DocumentStore interface {
	Create(ctx context.Context, req *domain.DocumentRequest) (*domain.DocumentRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.DocumentRequest, error)
	List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.DocumentRequestWithType, error)
	CountPendingByStaff(ctx context.Context, staffID int64) (int, error)
	Approve(ctx context.Context, id int64, processedBy *int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.DocumentStatus) error
	Reject(ctx context.Context, id int64, processedBy *int64, reason string) error
	Cancel(ctx context.Context, id int64, reason *string) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	Assign(ctx context.Context, id int64, staffID int64) error
}

// PaymentStore полный набор операций над платежами
type PaymentStore interface {
	Create(ctx context.Context, s domain.Submission) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByReference(ctx context.Context, refType domain.ReferenceType, refID int64) (*domain.Payment, error)
	ListByStatus(ctx context.Context, status domain.PaymentRecordStatus) ([]*domain.Payment, error)
	CountPendingByStaff(ctx context.Context, staffID int64) (int, error)
	Resubmit(ctx context.Context, id int64, s domain.Submission) error
	Verify(ctx context.Context, id int64, verifiedBy *int64) error
	Reject(ctx context.Context, id int64, verifiedBy *int64, reason string) error
	Assign(ctx context.Context, id int64, staffID int64) error
}

// CatalogStore справочники типов
type CatalogStore interface {
	GetBookingType(ctx context.Context, id int64) (*domain.BookingType, error)
	ListBookingTypes(ctx context.Context, activeOnly bool) ([]*domain.BookingType, error)
	UpdateBookingType(ctx context.Context, bt *domain.BookingType) error
	GetDocumentType(ctx context.Context, id int64) (*domain.DocumentType, error)
	ListDocumentTypes(ctx context.Context, activeOnly bool) ([]*domain.DocumentType, error)
}

// BlockedDateStore блокировки календаря
type BlockedDateStore interface {
	Create(ctx context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error)
	Delete(ctx context.Context, id int64) error
	ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedDate, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.BlockedDate, error)
}

// AbsenceStore отсутствия персонала
type AbsenceStore interface {
	Create(ctx context.Context, a *domain.StaffAbsence) (*domain.StaffAbsence, error)
	Delete(ctx context.Context, id int64) error
	ListActiveOn(ctx context.Context, date time.Time) ([]*domain.StaffAbsence, error)
	ListByStaff(ctx context.Context, staffID int64) ([]*domain.StaffAbsence, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.StaffAbsence, error)
}

// UserStore пользователи портала
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListStaff(ctx context.Context) ([]*domain.User, error)
}

// NotificationStore уведомления в портале
type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64, limit uint64) ([]*domain.Notification, error)
}

// TxManager транзакции хранилища
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Storage репозитории и транзакции одного хранилища
type Storage struct {
	Bookings      BookingStore
	Documents     DocumentStore
	Payments      PaymentStore
	Catalog       CatalogStore
	BlockedDates  BlockedDateStore
	Absences      AbsenceStore
	Users         UserStore
	Notifications NotificationStore
	Tx            TxManager
}

// NewPostgresStorage репозитории PostgreSQL поверх обёрнутого соединения
func NewPostgresStorage(db *dbmetrics.DB) Storage {
	return Storage{
		Bookings:      bookingRepo.NewRepository(db),
		Documents:     documentRepo.NewRepository(db),
		Payments:      paymentRepo.NewRepository(db),
		Catalog:       catalogRepo.NewRepository(db),
		BlockedDates:  blockedRepo.NewRepository(db),
		Absences:      absenceRepo.NewRepository(db),
		Users:         userRepo.NewRepository(db),
		Notifications: notificationRepo.NewRepository(db),
		Tx:            txmanager.NewTransactionManager(db),
	}
}

// NewMemoryStorage хранилище в памяти процесса
func NewMemoryStorage(store *memory.Store) Storage {
	return Storage{
		Bookings:      store.Bookings(),
		Documents:     store.Documents(),
		Payments:      store.Payments(),
		Catalog:       store.Catalog(),
		BlockedDates:  store.BlockedDates(),
		Absences:      store.Absences(),
		Users:         store.Users(),
		Notifications: store.Notifications(),
		Tx:            memory.NewTxManager(store),
	}
}
