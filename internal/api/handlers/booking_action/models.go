package booking_action

// ActionRequest тело запроса действия над бронированием
// Reason обязателен для reject, StaffID для assign
type ActionRequest struct {
	Reason  *string `json:"reason,omitempty" validate:"omitempty,max=500"`
	StaffID *int64  `json:"staffId,omitempty" validate:"omitempty,gt=0"`
}

// Действия из пути запроса
const (
	ActionApprove  = "approve"
	ActionReject   = "reject"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
	ActionAssign   = "assign"
)
