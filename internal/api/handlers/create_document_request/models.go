package create_document_request

// CreateDocumentRequest HTTP request model
type CreateDocumentRequest struct {
	DocumentTypeID int64   `json:"documentTypeId" validate:"required,gt=0"`
	Purpose        *string `json:"purpose,omitempty" validate:"omitempty,max=255"`
}
