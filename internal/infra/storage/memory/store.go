// Package memory хранилище в памяти с теми же контрактами, что у PostgreSQL-репозиториев.
// Транзакции сериализуются мьютексом и откатываются восстановлением снимка.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

type tables struct {
	bookings      map[int64]domain.Booking
	documents     map[int64]domain.DocumentRequest
	payments      map[int64]domain.Payment
	bookingTypes  map[int64]domain.BookingType
	documentTypes map[int64]domain.DocumentType
	blocked       map[int64]domain.BlockedDate
	absences      map[int64]domain.StaffAbsence
	notifications map[int64]domain.Notification
	users         map[int64]domain.User
	seq           int64
}

func newTables() tables {
	return tables{
		bookings:      make(map[int64]domain.Booking),
		documents:     make(map[int64]domain.DocumentRequest),
		payments:      make(map[int64]domain.Payment),
		bookingTypes:  make(map[int64]domain.BookingType),
		documentTypes: make(map[int64]domain.DocumentType),
		blocked:       make(map[int64]domain.BlockedDate),
		absences:      make(map[int64]domain.StaffAbsence),
		notifications: make(map[int64]domain.Notification),
		users:         make(map[int64]domain.User),
	}
}

func (t tables) clone() tables {
	return tables{
		bookings:      cloneMap(t.bookings),
		documents:     cloneMap(t.documents),
		payments:      cloneMap(t.payments),
		bookingTypes:  cloneMap(t.bookingTypes),
		documentTypes: cloneMap(t.documentTypes),
		blocked:       cloneMap(t.blocked),
		absences:      cloneMap(t.absences),
		notifications: cloneMap(t.notifications),
		users:         cloneMap(t.users),
		seq:           t.seq,
	}
}

func cloneMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store общее состояние всех таблиц
type Store struct {
	mu    sync.Mutex
	data  tables
	clock func() time.Time
}

// NewStore создаёт пустое хранилище
func NewStore() *Store {
	return &Store{
		data:  newTables(),
		clock: time.Now,
	}
}

// SetClock подменяет источник времени для created_at/updated_at
func (s *Store) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock берёт мьютекс, если вызов не внутри транзакции этого хранилища
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) nextID() int64 {
	s.data.seq++
	return s.data.seq
}

// TxManager транзакции над Store
type TxManager struct {
	store *Store
}

// NewTxManager создаёт менеджер транзакций хранилища
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Do выполняет fn атомарно
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn атомарно; все транзакции и так идут по одной
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn под тем же мьютексом
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s := m.store
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.data = snapshot
		return err
	}

	return nil
}
