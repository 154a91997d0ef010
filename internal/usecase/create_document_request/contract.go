package create_document_request

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
)

// DocumentRepository интерфейс репозитория заявок на документы
type DocumentRepository interface {
	Create(ctx context.Context, d *domain.DocumentRequest) (*domain.DocumentRequest, error)
}

// CatalogRepository интерфейс репозитория типов документов
type CatalogRepository interface {
	GetDocumentType(ctx context.Context, id int64) (*domain.DocumentType, error)
}

// Notifier уведомления после фиксации
type Notifier interface {
	Emit(ctx context.Context, ev notifications.Event)
}

// Metrics счётчик переходов
type Metrics interface {
	Transition(entity, event string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
