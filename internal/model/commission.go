package model

import "github.com/shopspring/decimal"

// CommissionTier is one EAC band of a client's commission schedule. The
// same shape backs both the electricity and gas tables; Utility selects
// which table a tier lives in.
type CommissionTier struct {
	ID                 int64
	ClientID           int64
	EACFrom            decimal.Decimal
	EACTo              decimal.Decimal
	CommissionPerAnnum decimal.Decimal
	CommissionPerUnit  decimal.Decimal
}

// Contains reports whether eac falls inside the band, inclusive both ends.
func (t CommissionTier) Contains(eac decimal.Decimal) bool {
	return t.EACFrom.LessThanOrEqual(eac) && t.EACTo.GreaterThanOrEqual(eac)
}
