package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BulkQuoteRow is one line of the bulk quote template export. Columns are
// fixed; dates are rendered in UK format by the generator.
type BulkQuoteRow struct {
	ID                  int64
	ClientName          string
	BillingAddress      *string
	CompanyRegNumber    *string
	BusinessName        string
	SiteAddress         *string
	TopLine             *string
	MpanMpr             string
	SupplierName        string
	ContractType        ContractType
	ContractStatus      ContractStatus
	ContractTerm        *string
	ContractEndDate     *time.Time
	EAC                 *decimal.Decimal
	IsDirectorsApproval YesNo
	CommissionPerAnnum  *decimal.Decimal
	CommissionPerUnit   *decimal.Decimal
	VatRate             VatRate
}

// CommissionRollupRow is one aggregated line of the commission export,
// grouped by client, status, type, supplier, utility and meter point.
type CommissionRollupRow struct {
	ClientName            string
	ContractStatus        ContractStatus
	ContractType          ContractType
	Originator            *string
	ClientOnboarded       *time.Time
	SupplierName          string
	UtilityName           string
	MpanMpr               string
	CommissionPerUnit     *decimal.Decimal
	CommissionPerAnnum    *decimal.Decimal
	TotalEAC              decimal.Decimal
	ContractCount         int64
	TotalValuePerContract decimal.Decimal
}

// DuplicateRow is one member of a duplicate-contract group. RowNumber is
// assigned by ascending contract id within the group; DuplicatesCount is
// the group size.
type DuplicateRow struct {
	ID                int64
	ClientName        string
	BusinessName      string
	MpanMpr           string
	ContractStartDate *time.Time
	ContractEndDate   *time.Time
	SupplierName      string
	RowNumber         int
	DuplicatesCount   int
}

// ExpiredRow is one line of the expired-contracts-no-follow-on export.
type ExpiredRow struct {
	ID              int64
	ClientName      string
	MpanMpr         string
	ContractStatus  ContractStatus
	ContractEndDate *time.Time
	IsOOC           YesNo
}

// StatusCount is one line of the combined status report.
type StatusCount struct {
	Label string
	Count int64
}

// StatusReport is the combined status / directors-approval / OOC rollup.
type StatusReport struct {
	GeneratedAt      time.Time
	StatusCounts     []StatusCount
	ApprovalCounts   []StatusCount
	OOCCounts        []StatusCount
	TotalContracts   int64
	TotalLiveClients int64
	TotalLostClients int64
}
