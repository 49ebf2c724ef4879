package domain

import "time"

type AuditAction string

const (
	// Login and logout rows are written by the auth layer in front of this
	// service; the constants are here so the action vocabulary for the shared
	// audit_log table lives in one place.
	AuditLogin        AuditAction = "login"
	AuditLogout       AuditAction = "logout"
	AuditFlightSearch AuditAction = "flight_search"
	AuditBooking      AuditAction = "booking"
	AuditCancel       AuditAction = "cancel"
	AuditPayment      AuditAction = "payment"
	AuditRefund       AuditAction = "refund"
)

// AuditEntry is a write-only action record. UserID is nil for entries that
// have no acting user (system actions, entries outliving a deleted account).
type AuditEntry struct {
	ID        int64
	UserID    *int64
	Action    AuditAction
	Details   string
	SourceIP  string
	CreatedAt time.Time
}
