package model

import (
	"time"

	"github.com/google/uuid"
)

// Client is an onboarded brokerage client. ClientLostDate is derived from
// IsLost by the rules package and is never written directly by callers.
type Client struct {
	ID               int64
	Name             string
	AccountManagerID uuid.UUID
	Originator       *string
	ClientOnboarded  *time.Time
	LOA              *time.Time
	ContractTerm     *string
	IsLost           bool
	ClientLostDate   *time.Time
	ExportConfirmed  bool
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
