package document_action

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/documents/models"
)

type DocumentService interface {
	Approve(ctx context.Context, caller domain.Caller, id int64) (*models.DocumentResponse, error)
	MarkReady(ctx context.Context, caller domain.Caller, id int64) (*models.DocumentResponse, error)
	Complete(ctx context.Context, caller domain.Caller, id int64) (*models.DocumentResponse, error)
	Reject(ctx context.Context, caller domain.Caller, id int64, reason string) (*models.DocumentResponse, error)
	Cancel(ctx context.Context, caller domain.Caller, id int64, reason *string) (*models.DocumentResponse, error)
	Assign(ctx context.Context, caller domain.Caller, id int64, staffID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
