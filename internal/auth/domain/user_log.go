package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserLog records authentication events for compliance and security monitoring.
// UserID is nil for events that could not be attributed to an account, such as
// a sign-in attempt with an unknown email. Signature holds the HMAC-SHA256
// signature of the entry, or nil when log signing is disabled.
type UserLog struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Type      LogType
	Message   string
	Signature []byte
	CreatedAt time.Time
}

// UserLogFilter narrows a user log listing. Nil fields are ignored.
// CreatedAtFrom and CreatedAtTo are inclusive boundaries in UTC.
type UserLogFilter struct {
	UserID        *uuid.UUID
	Type          *LogType
	CreatedAtFrom *time.Time
	CreatedAtTo   *time.Time
}
