package document_action

// ActionRequest тело запроса действия над заявкой на документ
type ActionRequest struct {
	Reason  *string `json:"reason,omitempty" validate:"omitempty,max=500"`
	StaffID *int64  `json:"staffId,omitempty" validate:"omitempty,gt=0"`
}

// Действия из пути запроса
const (
	ActionApprove  = "approve"
	ActionReady    = "ready"
	ActionComplete = "complete"
	ActionReject   = "reject"
	ActionCancel   = "cancel"
	ActionAssign   = "assign"
)
