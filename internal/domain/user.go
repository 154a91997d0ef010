package domain

// Role of the caller or a stored user
type Role string

const (
	RoleClient Role = "client"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
	RoleSystem Role = "system"
)

// User a portal account; only the fields this service reads
type User struct {
	ID       int64
	FullName string
	Role     Role
}

// Caller identity and role of whoever invokes an operation
type Caller struct {
	UserID int64
	Role   Role
}

// SystemCaller used for gateway callbacks; it has no user row
var SystemCaller = Caller{Role: RoleSystem}

// IsStaff reports whether the caller may drive back-office transitions
func (c Caller) IsStaff() bool {
	return c.Role == RoleStaff || c.Role == RoleAdmin || c.Role == RoleSystem
}

// IsAdmin reports whether the caller may manage absences and blocked dates
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Owns reports whether the caller is the owning client of a row
func (c Caller) Owns(ownerID int64) bool {
	return c.UserID != 0 && c.UserID == ownerID
}

// StaffID returns the caller id to record as processed_by/approved_by/verified_by; nil for the system
func (c Caller) StaffID() *int64 {
	if c.Role == RoleSystem || c.UserID == 0 {
		return nil
	}
	id := c.UserID
	return &id
}

// ParseRole validates a role string
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleStaff, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}
