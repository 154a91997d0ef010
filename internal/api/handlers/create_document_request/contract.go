package create_document_request

import (
	"context"

	createDocumentRequest "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/create_document_request"
)

type CreateDocumentRequestUseCase interface {
	Execute(ctx context.Context, req *createDocumentRequest.Request) (*createDocumentRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
