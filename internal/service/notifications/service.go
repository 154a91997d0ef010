package notifications

import (
	"context"
	"fmt"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/integrations/notifier"
)

const defaultListLimit = 50

// Service уведомления клиентов: запись в портале и исходящая доставка
type Service struct {
	repo         NotificationRepository
	sender       Sender
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(repo NotificationRepository, sender Sender, logger Logger) *Service {
	return &Service{
		repo:         repo,
		sender:       sender,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Emit вызывается после фиксации транзакции
// Ошибки только логируются: переход статуса уже состоялся и не откатывается
func (s *Service) Emit(ctx context.Context, ev Event) {
	if ev.UserID == 0 {
		return
	}

	_, err := s.repo.Create(ctx, &domain.Notification{
		UserID:   ev.UserID,
		Title:    ev.Title,
		Message:  ev.Message,
		Severity: ev.Severity,
	})
	if err != nil {
		s.logger.Error("Emit: failed to store notification topic=%s user=%d: %v", ev.Topic, ev.UserID, err)
	}

	if !ev.Outbound || s.sender == nil {
		return
	}

	msg := notifier.Message{
		Topic:         ev.Topic,
		UserID:        ev.UserID,
		Title:         ev.Title,
		Body:          ev.Message,
		Severity:      string(ev.Severity),
		ReferenceType: string(ev.ReferenceType),
		ReferenceID:   ev.ReferenceID,
		OccurredAt:    s.timeProvider.Now().UTC(),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Error("Emit: failed to send topic=%s user=%d: %v", ev.Topic, ev.UserID, err)
	}
}

// ListForUser уведомления пользователя; чужие видит только персонал
func (s *Service) ListForUser(ctx context.Context, caller domain.Caller, userID int64, limit uint64) ([]*domain.Notification, error) {
	if !caller.Owns(userID) && !caller.IsStaff() {
		s.logger.Warn("ListForUser: user=%d denied access to notifications of user=%d", caller.UserID, userID)
		return nil, domain.ErrAccessDenied
	}

	if limit == 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error("ListForUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForUser - repository error: %v", ErrInternal, err)
	}

	return list, nil
}
