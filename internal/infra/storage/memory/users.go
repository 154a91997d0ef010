package memory

import (
	"context"
	"sort"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/user"
)

// UserRepository пользователи в памяти
type UserRepository struct {
	s *Store
}

// Users репозиторий пользователей хранилища
func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

// AddUser добавляет пользователя с заданным ID
func (s *Store) AddUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID > s.data.seq {
		s.data.seq = u.ID
	}
	s.data.users[u.ID] = u
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	defer r.s.lock(ctx)()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) ListStaff(ctx context.Context) ([]*domain.User, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.User, 0)
	for _, u := range r.s.data.users {
		if u.Role == domain.RoleStaff || u.Role == domain.RoleAdmin {
			u := u
			result = append(result, &u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

// NotificationRepository уведомления в памяти
type NotificationRepository struct {
	s *Store
}

// Notifications репозиторий уведомлений хранилища
func (s *Store) Notifications() *NotificationRepository {
	return &NotificationRepository{s: s}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	defer r.s.lock(ctx)()

	n.ID = r.s.nextID()
	n.IsRead = false
	n.CreatedAt = r.s.clock()
	r.s.data.notifications[n.ID] = *n

	out := *n
	return &out, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, limit uint64) ([]*domain.Notification, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.Notification, 0)
	for _, n := range r.s.data.notifications {
		if n.UserID == userID {
			n := n
			result = append(result, &n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if limit > 0 && uint64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}
