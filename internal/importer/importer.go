package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/model"
	"github.com/energyportfolio/crm-service/internal/repository"
)

// importOrder is the fixed positional column list of the legacy contract
// workbook. Columns with no counterpart in the data model are consumed
// positionally and ignored.
var importOrder = []string{
	"id",
	"contract_type",
	"seamless_updated",
	"contract_status",
	"dwellent_id",
	"bid_id",
	"portal_status",
	"client",
	"client_group",
	"seed_stock",
	"client_manager",
	"is_directors_approval",
	"directors_approval_date",
	"business_name",
	"company_reg_number",
	"utility",
	"top_line",
	"mpan_mpr",
	"meter_serial_number",
	"meter_onboarded",
	"meter_status",
	"building_name",
	"site_address",
	"billing_address",
	"supplier",
	"supplier_coding",
	"contract_start_date",
	"contract_end_date",
	"lock_in_date",
	"supplier_start_date",
	"account_number",
	"eac",
	"day_consumption",
	"night_consumption",
	"vat_rate",
	"contract_value",
	"standing_charge",
	"sc_frequency",
	"unit_rate_1",
	"unit_rate_2",
	"unit_rate_3",
	"feed_in_tariff",
	"seamless_status",
	"profile",
	"is_ooc",
	"service_type",
	"pence_per_kilowatt",
	"day_kilowatt_hour_rate",
	"night_rate",
	"annualised_budget",
	"commission_per_annum",
	"commission_per_unit",
	"commission_per_contract",
	"partner_commission",
	"smart_meter",
	"vat_declaration_sent",
	"vat_declaration_date",
	"vat_declaration_expires",
	"notes",
	"kva",
	"future_supplier",
	"future_contract_start_date",
	"future_contract_end_date",
	"future_unit_rate_1",
	"future_unit_rate_2",
	"future_unit_rate_3",
	"future_standing_charge",
}

// quantizedFields maps decimal columns to the scale they are rounded to,
// half-up.
var quantizedFields = map[string]int32{
	"eac":                    2,
	"contract_value":         2,
	"standing_charge":        4,
	"unit_rate_1":            6,
	"unit_rate_2":            6,
	"unit_rate_3":            6,
	"feed_in_tariff":         4,
	"commission_per_unit":    3,
	"future_unit_rate_1":     6,
	"future_unit_rate_2":     6,
	"future_unit_rate_3":     6,
	"future_standing_charge": 4,
}

type Summary struct {
	Created   int
	Updated   int
	Failed    int
	ErrorFile string
}

type rowError struct {
	row int
	err string
	raw []string
}

type Importer struct {
	contracts *repository.ContractRepository
	clients   *repository.ClientRepository
	utilities *repository.UtilityRepository
	users     *repository.UserRepository
	log       zerolog.Logger
}

func New(
	contracts *repository.ContractRepository,
	clients *repository.ClientRepository,
	utilities *repository.UtilityRepository,
	users *repository.UserRepository,
	log zerolog.Logger,
) *Importer {
	return &Importer{
		contracts: contracts,
		clients:   clients,
		utilities: utilities,
		users:     users,
		log:       log,
	}
}

// Run imports the workbook at filePath. Rows that fail are written to
// import_errors.csv next to the working directory and the run continues;
// the returned Summary reports the split. Clients created on the fly are
// assigned to the account manager identified by accountManagerEmail.
func (im *Importer) Run(ctx context.Context, filePath, accountManagerEmail string) (*Summary, error) {
	manager, err := im.users.GetByEmail(ctx, accountManagerEmail)
	if err != nil {
		return nil, fmt.Errorf("resolve account manager %q: %w", accountManagerEmail, err)
	}

	file, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	maxID, err := im.contracts.MaxID(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	var failures []rowError

	for i, raw := range rows {
		if i == 0 {
			continue // header
		}
		rowNum := i + 1

		contract, refs, err := ParseRow(raw)
		if err == nil && contract.ID == 0 {
			maxID++
			contract.ID = maxID
		}
		if err == nil {
			err = im.resolveRefs(ctx, &contract, refs, manager.ID)
		}
		if err == nil {
			var existed bool
			existed, err = im.upsert(ctx, &contract)
			if err == nil {
				if existed {
					summary.Updated++
					im.log.Info().Int64("id", contract.ID).Msg("updated contract")
				} else {
					summary.Created++
					im.log.Info().Int64("id", contract.ID).Msg("created contract")
				}
				continue
			}
		}

		summary.Failed++
		im.log.Error().Int("row", rowNum).Err(err).Msg("row import failed")
		failures = append(failures, rowError{row: rowNum, err: err.Error(), raw: raw})
	}

	if len(failures) > 0 {
		path := "import_errors.csv"
		if err := writeErrorFile(path, failures); err != nil {
			return nil, fmt.Errorf("write error file: %w", err)
		}
		summary.ErrorFile = path
	}
	return summary, nil
}

type rowRefs struct {
	clientName   string
	supplierName string
	utilityName  string
}

// ParseRow coerces one workbook row into a contract plus the names of its
// referenced rows. Unknown trailing columns are ignored; missing trailing
// columns read as blank.
func ParseRow(raw []string) (model.Contract, rowRefs, error) {
	data := make(map[string]string, len(importOrder))
	for i, name := range importOrder {
		if i < len(raw) {
			data[name] = strings.TrimSpace(raw[i])
		} else {
			data[name] = ""
		}
	}

	var contract model.Contract
	refs := rowRefs{
		clientName:   data["client"],
		supplierName: data["supplier"],
		utilityName:  data["utility"],
	}

	if refs.clientName == "" || refs.supplierName == "" || refs.utilityName == "" {
		return contract, refs, fmt.Errorf("client, supplier and utility are required")
	}
	if data["business_name"] == "" {
		return contract, refs, fmt.Errorf("business_name is required")
	}
	if data["mpan_mpr"] == "" {
		return contract, refs, fmt.Errorf("mpan_mpr is required")
	}

	if data["id"] != "" {
		id, err := strconv.ParseInt(data["id"], 10, 64)
		if err != nil {
			return contract, refs, fmt.Errorf("invalid id %q", data["id"])
		}
		contract.ID = id
	}

	contract.ContractType = model.ContractType(defaultString(data["contract_type"], string(model.ContractTypeSeamless)))
	contract.SeamlessUpdated = yesNo(data["seamless_updated"])
	contract.ContractStatus = model.ContractStatus(defaultString(data["contract_status"], string(model.ContractStatusLive)))
	if !contract.ContractStatus.Valid() {
		return contract, refs, fmt.Errorf("invalid contract_status %q", data["contract_status"])
	}
	contract.ClientGroup = strPtr(data["client_group"])
	contract.IsDirectorsApproval = yesNo(data["is_directors_approval"])
	contract.BusinessName = data["business_name"]
	contract.CompanyRegNumber = strPtr(data["company_reg_number"])
	contract.TopLine = strPtr(data["top_line"])
	contract.MpanMpr = data["mpan_mpr"]
	contract.MeterSerialNumber = strPtr(data["meter_serial_number"])
	contract.MeterStatus = model.MeterStatus(defaultString(data["meter_status"], string(model.MeterStatusActive)))
	contract.BuildingName = strPtr(data["building_name"])
	contract.SiteAddress = strPtr(data["site_address"])
	contract.BillingAddress = strPtr(data["billing_address"])
	contract.SupplierCoding = strPtr(data["supplier_coding"])
	contract.AccountNumber = strPtr(data["account_number"])
	contract.KVA = strPtr(data["kva"])
	contract.SCFrequency = strPtr(data["sc_frequency"])
	contract.SeamlessStatus = strPtr(data["seamless_status"])
	contract.Profile = strPtr(data["profile"])
	contract.IsOOC = yesNo(data["is_ooc"])
	contract.ServiceType = strPtr(data["service_type"])
	contract.SmartMeter = strPtr(data["smart_meter"])
	contract.VatDeclarationSent = yesNo(data["vat_declaration_sent"])
	contract.Notes = strPtr(data["notes"])

	contract.VatRate = model.VatRate(defaultString(data["vat_rate"], string(model.VatRateUnknown)))
	if !contract.VatRate.Valid() {
		return contract, refs, fmt.Errorf("invalid vat_rate %q", data["vat_rate"])
	}

	dates := []struct {
		name string
		dst  **time.Time
	}{
		{"directors_approval_date", &contract.DirectorsApprovalDate},
		{"meter_onboarded", &contract.MeterOnboarded},
		{"contract_start_date", &contract.ContractStartDate},
		{"contract_end_date", &contract.ContractEndDate},
		{"lock_in_date", &contract.LockInDate},
		{"supplier_start_date", &contract.SupplierStartDate},
		{"vat_declaration_date", &contract.VatDeclarationDate},
		{"vat_declaration_expires", &contract.VatDeclarationExpires},
	}
	for _, d := range dates {
		value, err := ConvertDate(data[d.name])
		if err != nil {
			return contract, refs, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = value
	}

	decimals := []struct {
		name string
		dst  **decimal.Decimal
	}{
		{"eac", &contract.EAC},
		{"contract_value", &contract.ContractValue},
		{"standing_charge", &contract.StandingCharge},
		{"unit_rate_1", &contract.UnitRate1},
		{"unit_rate_2", &contract.UnitRate2},
		{"unit_rate_3", &contract.UnitRate3},
		{"feed_in_tariff", &contract.FeedInTariff},
		{"pence_per_kilowatt", &contract.PencePerKilowatt},
		{"day_kilowatt_hour_rate", &contract.DayKilowattHourRate},
		{"night_rate", &contract.NightRate},
		{"annualised_budget", &contract.AnnualisedBudget},
		{"commission_per_annum", &contract.CommissionPerAnnum},
		{"commission_per_unit", &contract.CommissionPerUnit},
		{"commission_per_contract", &contract.CommissionPerContract},
		{"partner_commission", &contract.PartnerCommission},
	}
	for _, d := range decimals {
		places, quantize := quantizedFields[d.name]
		value, err := ConvertDecimal(data[d.name], places, quantize)
		if err != nil {
			return contract, refs, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = value
	}

	floats := []struct {
		name string
		dst  **float64
	}{
		{"day_consumption", &contract.DayConsumption},
		{"night_consumption", &contract.NightConsumption},
	}
	for _, f := range floats {
		if data[f.name] == "" {
			continue
		}
		value, err := strconv.ParseFloat(data[f.name], 64)
		if err != nil {
			return contract, refs, fmt.Errorf("%s: invalid number %q", f.name, data[f.name])
		}
		*f.dst = &value
	}

	return contract, refs, nil
}

func (im *Importer) resolveRefs(ctx context.Context, contract *model.Contract, refs rowRefs, accountManagerID uuid.UUID) error {
	client, err := im.clients.GetOrCreateByName(ctx, refs.clientName, accountManagerID)
	if err != nil {
		return fmt.Errorf("client %q: %w", refs.clientName, err)
	}
	contract.ClientID = client.ID

	supplier, err := im.utilities.GetOrCreateSupplier(ctx, refs.supplierName)
	if err != nil {
		return fmt.Errorf("supplier %q: %w", refs.supplierName, err)
	}
	contract.SupplierID = supplier.ID

	utility, err := im.utilities.GetOrCreateUtility(ctx, refs.utilityName)
	if err != nil {
		return fmt.Errorf("utility %q: %w", refs.utilityName, err)
	}
	contract.UtilityID = utility.ID
	return nil
}

func (im *Importer) upsert(ctx context.Context, contract *model.Contract) (bool, error) {
	_, err := im.contracts.Get(ctx, contract.ID)
	switch {
	case err == nil:
		return true, im.contracts.Update(ctx, contract)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, im.contracts.Create(ctx, contract)
	default:
		return false, err
	}
}

// ConvertDate parses the two accepted workbook date formats, DD/MM/YYYY
// then DD-MM-YYYY, plus ISO dates as written back by a previous export.
func ConvertDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"02/01/2006", "02-01-2006", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date format %q", value)
}

// ConvertDecimal parses a decimal column, quantizing half-up to places
// when quantize is set.
func ConvertDecimal(value string, places int32, quantize bool) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal value %q", value)
	}
	if quantize {
		d = d.Round(places)
	}
	return &d, nil
}

func writeErrorFile(path string, failures []rowError) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"row", "error", "data"}); err != nil {
		return err
	}
	for _, failure := range failures {
		record := []string{
			strconv.Itoa(failure.row),
			failure.err,
			strings.Join(failure.raw, "|"),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func yesNo(s string) model.YesNo {
	if strings.EqualFold(s, "YES") {
		return model.Yes
	}
	return model.No
}
