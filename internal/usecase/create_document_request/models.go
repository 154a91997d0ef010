package create_document_request

import "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"

// Request модель запроса на документ
type Request struct {
	Caller         domain.Caller
	DocumentTypeID int64
	Purpose        *string
}

// Response созданная заявка с названием типа
type Response struct {
	Request  domain.DocumentRequest
	TypeName string
}
