package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/energyportfolio/crm-service/internal/model"
	"github.com/energyportfolio/crm-service/internal/service"
)

type clientRequest struct {
	Name             string  `json:"name" binding:"required"`
	AccountManagerID *string `json:"account_manager_id"`
	Originator       *string `json:"originator"`
	ClientOnboarded  *string `json:"client_onboarded"`
	LOA              *string `json:"loa"`
	ContractTerm     *string `json:"contract_term"`
	IsLost           bool    `json:"is_lost"`
	ExportConfirmed  bool    `json:"export_confirmed"`
	Notes            *string `json:"notes"`
}

func (r clientRequest) toModel() (model.Client, error) {
	client := model.Client{
		Name:            r.Name,
		Originator:      r.Originator,
		ContractTerm:    r.ContractTerm,
		IsLost:          r.IsLost,
		ExportConfirmed: r.ExportConfirmed,
		Notes:           r.Notes,
	}
	if r.AccountManagerID != nil {
		id, err := uuid.Parse(*r.AccountManagerID)
		if err != nil {
			return client, fmt.Errorf("%w: invalid account_manager_id", service.ErrInvalidInput)
		}
		client.AccountManagerID = id
	}
	var err error
	if client.ClientOnboarded, err = parseDatePtr(r.ClientOnboarded, "client_onboarded"); err != nil {
		return client, err
	}
	if client.LOA, err = parseDatePtr(r.LOA, "loa"); err != nil {
		return client, err
	}
	return client, nil
}

// contractRequest covers the writable contract fields. Derived columns
// (directors approval date, previous supplier, supplier changed date, VAT
// declaration expiry, resolved commissions) are never accepted from the
// caller.
type contractRequest struct {
	ClientID              int64            `json:"client_id" binding:"required"`
	ClientManagerID       *string          `json:"client_manager_id"`
	ClientGroup           *string          `json:"client_group"`
	ContractType          string           `json:"contract_type"`
	SeamlessUpdated       string           `json:"seamless_updated"`
	ContractStatus        string           `json:"contract_status"`
	IsDirectorsApproval   string           `json:"is_directors_approval"`
	BusinessName          string           `json:"business_name" binding:"required"`
	CompanyRegNumber      *string          `json:"company_reg_number"`
	UtilityID             int64            `json:"utility_id" binding:"required"`
	TopLine               *string          `json:"top_line"`
	MpanMpr               string           `json:"mpan_mpr" binding:"required"`
	MeterSerialNumber     *string          `json:"meter_serial_number"`
	MeterOnboarded        *string          `json:"meter_onboarded"`
	MeterStatus           string           `json:"meter_status"`
	BuildingName          *string          `json:"building_name"`
	SiteAddress           *string          `json:"site_address"`
	BillingAddress        *string          `json:"billing_address"`
	SupplierID            int64            `json:"supplier_id" binding:"required"`
	SupplierCoding        *string          `json:"supplier_coding"`
	ContractStartDate     *string          `json:"contract_start_date"`
	ContractEndDate       *string          `json:"contract_end_date"`
	LockInDate            *string          `json:"lock_in_date"`
	SupplierStartDate     *string          `json:"supplier_start_date"`
	AccountNumber         *string          `json:"account_number"`
	EAC                   *decimal.Decimal `json:"eac"`
	DayConsumption        *float64         `json:"day_consumption"`
	NightConsumption      *float64         `json:"night_consumption"`
	KVA                   *string          `json:"kva"`
	VatRate               string           `json:"vat_rate"`
	ContractValue         *decimal.Decimal `json:"contract_value"`
	StandingCharge        *decimal.Decimal `json:"standing_charge"`
	SCFrequency           *string          `json:"sc_frequency"`
	UnitRate1             *decimal.Decimal `json:"unit_rate_1"`
	UnitRate2             *decimal.Decimal `json:"unit_rate_2"`
	UnitRate3             *decimal.Decimal `json:"unit_rate_3"`
	FeedInTariff          *decimal.Decimal `json:"feed_in_tariff"`
	SeamlessStatus        *string          `json:"seamless_status"`
	Profile               *string          `json:"profile"`
	IsOOC                 string           `json:"is_ooc"`
	ServiceType           *string          `json:"service_type"`
	PencePerKilowatt      *decimal.Decimal `json:"pence_per_kilowatt"`
	DayKilowattHourRate   *decimal.Decimal `json:"day_kilowatt_hour_rate"`
	NightRate             *decimal.Decimal `json:"night_rate"`
	AnnualisedBudget      *decimal.Decimal `json:"annualised_budget"`
	CommissionPerContract *decimal.Decimal `json:"commission_per_contract"`
	PartnerCommission     *decimal.Decimal `json:"partner_commission"`
	SmartMeter            *string          `json:"smart_meter"`
	VatDeclarationSent    string           `json:"vat_declaration_sent"`
	VatDeclarationDate    *string          `json:"vat_declaration_date"`
	Notes                 *string          `json:"notes"`
}

func (r contractRequest) toModel() (model.Contract, error) {
	contract := model.Contract{
		ClientID:              r.ClientID,
		ClientGroup:           r.ClientGroup,
		ContractType:          model.ContractType(defaultEnum(r.ContractType, string(model.ContractTypeSeamless))),
		SeamlessUpdated:       parseYesNo(r.SeamlessUpdated),
		ContractStatus:        model.ContractStatus(defaultEnum(r.ContractStatus, string(model.ContractStatusLive))),
		IsDirectorsApproval:   parseYesNo(r.IsDirectorsApproval),
		BusinessName:          r.BusinessName,
		CompanyRegNumber:      r.CompanyRegNumber,
		UtilityID:             r.UtilityID,
		TopLine:               r.TopLine,
		MpanMpr:               r.MpanMpr,
		MeterSerialNumber:     r.MeterSerialNumber,
		MeterStatus:           model.MeterStatus(defaultEnum(r.MeterStatus, string(model.MeterStatusActive))),
		BuildingName:          r.BuildingName,
		SiteAddress:           r.SiteAddress,
		BillingAddress:        r.BillingAddress,
		SupplierID:            r.SupplierID,
		SupplierCoding:        r.SupplierCoding,
		AccountNumber:         r.AccountNumber,
		EAC:                   r.EAC,
		DayConsumption:        r.DayConsumption,
		NightConsumption:      r.NightConsumption,
		KVA:                   r.KVA,
		VatRate:               model.VatRate(defaultEnum(r.VatRate, string(model.VatRateUnknown))),
		ContractValue:         r.ContractValue,
		StandingCharge:        r.StandingCharge,
		SCFrequency:           r.SCFrequency,
		UnitRate1:             r.UnitRate1,
		UnitRate2:             r.UnitRate2,
		UnitRate3:             r.UnitRate3,
		FeedInTariff:          r.FeedInTariff,
		SeamlessStatus:        r.SeamlessStatus,
		Profile:               r.Profile,
		IsOOC:                 parseYesNo(r.IsOOC),
		ServiceType:           r.ServiceType,
		PencePerKilowatt:      r.PencePerKilowatt,
		DayKilowattHourRate:   r.DayKilowattHourRate,
		NightRate:             r.NightRate,
		AnnualisedBudget:      r.AnnualisedBudget,
		CommissionPerContract: r.CommissionPerContract,
		PartnerCommission:     r.PartnerCommission,
		SmartMeter:            r.SmartMeter,
		VatDeclarationSent:    parseYesNo(r.VatDeclarationSent),
		Notes:                 r.Notes,
	}

	if r.ClientManagerID != nil {
		id, err := uuid.Parse(*r.ClientManagerID)
		if err != nil {
			return contract, fmt.Errorf("%w: invalid client_manager_id", service.ErrInvalidInput)
		}
		contract.ClientManagerID = &id
	}

	var err error
	if contract.MeterOnboarded, err = parseDatePtr(r.MeterOnboarded, "meter_onboarded"); err != nil {
		return contract, err
	}
	if contract.ContractStartDate, err = parseDatePtr(r.ContractStartDate, "contract_start_date"); err != nil {
		return contract, err
	}
	if contract.ContractEndDate, err = parseDatePtr(r.ContractEndDate, "contract_end_date"); err != nil {
		return contract, err
	}
	if contract.LockInDate, err = parseDatePtr(r.LockInDate, "lock_in_date"); err != nil {
		return contract, err
	}
	if contract.SupplierStartDate, err = parseDatePtr(r.SupplierStartDate, "supplier_start_date"); err != nil {
		return contract, err
	}
	if contract.VatDeclarationDate, err = parseDatePtr(r.VatDeclarationDate, "vat_declaration_date"); err != nil {
		return contract, err
	}
	return contract, nil
}

type commissionRequest struct {
	ClientID           int64           `json:"client_id" binding:"required"`
	Utility            string          `json:"utility" binding:"required"`
	EACFrom            decimal.Decimal `json:"eac_from"`
	EACTo              decimal.Decimal `json:"eac_to"`
	CommissionPerAnnum decimal.Decimal `json:"commission_per_annum"`
	CommissionPerUnit  decimal.Decimal `json:"commission_per_unit"`
}

func (r commissionRequest) toModel() model.CommissionTier {
	return model.CommissionTier{
		ClientID:           r.ClientID,
		EACFrom:            r.EACFrom,
		EACTo:              r.EACTo,
		CommissionPerAnnum: r.CommissionPerAnnum,
		CommissionPerUnit:  r.CommissionPerUnit,
	}
}

type objectionRequest struct {
	ClientID            int64   `json:"client_id" binding:"required"`
	AccountNumber       *string `json:"account_number"`
	BusinessName        string  `json:"business_name" binding:"required"`
	SiteAddress         string  `json:"site_address"`
	MpanMpr             string  `json:"mpan_mpr" binding:"required"`
	NewSupplierID       int64   `json:"new_supplier_id" binding:"required"`
	ObjectingSupplierID int64   `json:"objecting_supplier_id" binding:"required"`
	RegistrationDate    *string `json:"registration_date"`
	ObjectionDate       *string `json:"objection_date"`
	DeadlineDate        *string `json:"deadline_date"`
	PotentialStartDate  *string `json:"potential_start_date"`
	EAC                 *int64  `json:"eac"`
	IsDirectorsApproval bool    `json:"is_directors_approval"`
	ObjectionStatus     string  `json:"objection_status"`
	Notes               *string `json:"notes"`
}

func (r objectionRequest) toModel() (model.Objection, error) {
	objection := model.Objection{
		ClientID:            r.ClientID,
		AccountNumber:       r.AccountNumber,
		BusinessName:        r.BusinessName,
		SiteAddress:         r.SiteAddress,
		MpanMpr:             r.MpanMpr,
		NewSupplierID:       r.NewSupplierID,
		ObjectingSupplierID: r.ObjectingSupplierID,
		DeadlineDate:        r.DeadlineDate,
		PotentialStartDate:  r.PotentialStartDate,
		EAC:                 r.EAC,
		IsDirectorsApproval: r.IsDirectorsApproval,
		ObjectionStatus:     model.ObjectionStatus(r.ObjectionStatus),
		Notes:               r.Notes,
	}
	var err error
	if objection.RegistrationDate, err = parseDatePtr(r.RegistrationDate, "registration_date"); err != nil {
		return objection, err
	}
	if objection.ObjectionDate, err = parseDatePtr(r.ObjectionDate, "objection_date"); err != nil {
		return objection, err
	}
	return objection, nil
}

type contactRequest struct {
	ClientID    int64   `json:"client_id" binding:"required"`
	JobTitleID  *int64  `json:"job_title_id"`
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

func (r contactRequest) toModel() model.Contact {
	return model.Contact{
		ClientID:    r.ClientID,
		JobTitleID:  r.JobTitleID,
		Name:        r.Name,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
	}
}

func parseDatePtr(raw *string, field string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, strings.TrimSpace(*raw)); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid %s", service.ErrInvalidInput, field)
}

func parseYesNo(raw string) model.YesNo {
	if strings.EqualFold(strings.TrimSpace(raw), "YES") {
		return model.Yes
	}
	return model.No
}

func defaultEnum(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	return raw
}
