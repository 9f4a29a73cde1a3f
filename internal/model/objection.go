package model

import "time"

type ObjectionStatus string

const (
	ObjectionStatusOutstanding ObjectionStatus = "OUTSTANDING"
	ObjectionStatusPending     ObjectionStatus = "PENDING"
	ObjectionStatusResolved    ObjectionStatus = "RESOLVED"
)

func (s ObjectionStatus) Valid() bool {
	return s == ObjectionStatusOutstanding || s == ObjectionStatusPending || s == ObjectionStatusResolved
}

// Objection records a supplier-switch dispute for a client's meter point.
type Objection struct {
	ID                  int64
	ClientID            int64
	AccountNumber       *string
	BusinessName        string
	SiteAddress         string
	MpanMpr             string
	NewSupplierID       int64
	ObjectingSupplierID int64
	RegistrationDate    *time.Time
	ObjectionDate       *time.Time
	DeadlineDate        *string
	PotentialStartDate  *string
	EAC                 *int64
	IsDirectorsApproval bool
	ObjectionStatus     ObjectionStatus
	Notes               *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ObjectionDetail carries the joined client and supplier names.
type ObjectionDetail struct {
	Objection
	ClientName            string
	NewSupplierName       string
	ObjectingSupplierName string
}
