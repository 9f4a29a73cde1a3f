package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ContractStatus string

const (
	ContractStatusLive              ContractStatus = "LIVE"
	ContractStatusRemoved           ContractStatus = "REMOVED"
	ContractStatusLocked            ContractStatus = "LOCKED"
	ContractStatusPricing           ContractStatus = "PRICING"
	ContractStatusObjection         ContractStatus = "OBJECTION"
	ContractStatusNew               ContractStatus = "NEW"
	ContractStatusLost              ContractStatus = "LOST"
	ContractStatusExpired           ContractStatus = "EXPIRED"
	ContractStatusFuture            ContractStatus = "FUTURE"
	ContractStatusRequested         ContractStatus = "CONTRACT_REQUESTED"
	ContractStatusAwaitingDA        ContractStatus = "AWAITING_DA"
	ContractStatusDuplicate         ContractStatus = "DUPLICATE"
	ContractStatusInSupplierBacklog ContractStatus = "IN_SUPPLIER_BACKLOG"
	ContractStatusDataCleanse       ContractStatus = "DATA_CLEANSE"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractStatusLive, ContractStatusRemoved, ContractStatusLocked,
		ContractStatusPricing, ContractStatusObjection, ContractStatusNew,
		ContractStatusLost, ContractStatusExpired, ContractStatusFuture,
		ContractStatusRequested, ContractStatusAwaitingDA, ContractStatusDuplicate,
		ContractStatusInSupplierBacklog, ContractStatusDataCleanse:
		return true
	}
	return false
}

type ContractType string

const (
	ContractTypeSeamless    ContractType = "SEAMLESS"
	ContractTypeNonSeamless ContractType = "NON_SEAMLESS"
)

type YesNo string

const (
	Yes YesNo = "YES"
	No  YesNo = "NO"
)

type VatRate string

const (
	VatRateFivePercent   VatRate = "5%"
	VatRateTwentyPercent VatRate = "20%"
	VatRateUnknown       VatRate = "UNKNOWN"
)

func (v VatRate) Valid() bool {
	return v == VatRateFivePercent || v == VatRateTwentyPercent || v == VatRateUnknown
}

type MeterStatus string

const (
	MeterStatusActive      MeterStatus = "ACTIVE"
	MeterStatusDeEnergised MeterStatus = "DE_ENERGISED"
	MeterStatusRemoved     MeterStatus = "REMOVED"
)

// Contract is a per-site/meter-point supply agreement. CommissionPerAnnum,
// CommissionPerUnit, DirectorsApprovalDate, PreviousSupplierID,
// SupplierChangedDate and VatDeclarationExpires are derived on save by the
// rules package and are not writable through the API.
type Contract struct {
	ID                    int64
	ClientID              int64
	ClientManagerID       *uuid.UUID
	ClientGroup           *string
	ContractType          ContractType
	SeamlessUpdated       YesNo
	ContractStatus        ContractStatus
	IsDirectorsApproval   YesNo
	DirectorsApprovalDate *time.Time
	BusinessName          string
	CompanyRegNumber      *string
	UtilityID             int64
	TopLine               *string
	MpanMpr               string
	MeterSerialNumber     *string
	MeterOnboarded        *time.Time
	MeterStatus           MeterStatus
	BuildingName          *string
	SiteAddress           *string
	BillingAddress        *string
	SupplierID            int64
	PreviousSupplierID    *int64
	SupplierChangedDate   *time.Time
	SupplierCoding        *string
	ContractStartDate     *time.Time
	ContractEndDate       *time.Time
	LockInDate            *time.Time
	SupplierStartDate     *time.Time
	AccountNumber         *string
	EAC                   *decimal.Decimal
	DayConsumption        *float64
	NightConsumption      *float64
	KVA                   *string
	VatRate               VatRate
	ContractValue         *decimal.Decimal
	StandingCharge        *decimal.Decimal
	SCFrequency           *string
	UnitRate1             *decimal.Decimal
	UnitRate2             *decimal.Decimal
	UnitRate3             *decimal.Decimal
	FeedInTariff          *decimal.Decimal
	SeamlessStatus        *string
	Profile               *string
	IsOOC                 YesNo
	ServiceType           *string
	PencePerKilowatt      *decimal.Decimal
	DayKilowattHourRate   *decimal.Decimal
	NightRate             *decimal.Decimal
	AnnualisedBudget      *decimal.Decimal
	CommissionPerAnnum    *decimal.Decimal
	CommissionPerUnit     *decimal.Decimal
	CommissionPerContract *decimal.Decimal
	PartnerCommission     *decimal.Decimal
	SmartMeter            *string
	VatDeclarationSent    YesNo
	VatDeclarationDate    *time.Time
	VatDeclarationExpires *time.Time
	Notes                 *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ContractDetail is a Contract flattened with the names of its related
// rows, as returned by the list and detail queries.
type ContractDetail struct {
	Contract
	ClientName      string
	Originator      *string
	ClientOnboarded *time.Time
	ContractTerm    *string
	SupplierName    string
	UtilityName     string
}
