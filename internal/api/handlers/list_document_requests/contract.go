package list_document_requests

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/documents/models"
)

type DocumentService interface {
	List(ctx context.Context, caller domain.Caller, userID *int64, status *string) (*models.DocumentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
