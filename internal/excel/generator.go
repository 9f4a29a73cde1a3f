package excel

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/energyportfolio/crm-service/internal/model"
)

// Generator renders the spreadsheet exports. Dates are written in UK
// format throughout.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// BulkQuote writes the bulk quote template: one row per contract with the
// fixed column list the pricing desk expects.
func (g *Generator) BulkQuote(rows []model.BulkQuoteRow) ([]byte, error) {
	file := excelize.NewFile()
	sheet := "Bulk Quote Template"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"ID",
		"Client",
		"Billing Address",
		"Company Reg Number",
		"Business Name",
		"Site Address",
		"Top Line",
		"MPAN/MPR",
		"Supplier",
		"Contract Type",
		"Contract Status",
		"Contract Term",
		"Contract End Date",
		"EAC",
		"Directors Approval",
		"Commission per Annum",
		"Commission per Unit",
		"VAT Rate",
	}
	writeHeaderRow(file, sheet, headers)

	for i, row := range rows {
		r := i + 2
		set(fmt.Sprintf("A%d", r), row.ID)
		set(fmt.Sprintf("B%d", r), row.ClientName)
		set(fmt.Sprintf("C%d", r), formatString(row.BillingAddress))
		set(fmt.Sprintf("D%d", r), formatString(row.CompanyRegNumber))
		set(fmt.Sprintf("E%d", r), row.BusinessName)
		set(fmt.Sprintf("F%d", r), formatString(row.SiteAddress))
		set(fmt.Sprintf("G%d", r), formatString(row.TopLine))
		set(fmt.Sprintf("H%d", r), row.MpanMpr)
		set(fmt.Sprintf("I%d", r), row.SupplierName)
		set(fmt.Sprintf("J%d", r), string(row.ContractType))
		set(fmt.Sprintf("K%d", r), string(row.ContractStatus))
		set(fmt.Sprintf("L%d", r), formatString(row.ContractTerm))
		set(fmt.Sprintf("M%d", r), formatUKDate(row.ContractEndDate))
		set(fmt.Sprintf("N%d", r), formatDecimal(row.EAC))
		set(fmt.Sprintf("O%d", r), string(row.IsDirectorsApproval))
		set(fmt.Sprintf("P%d", r), formatDecimal(row.CommissionPerAnnum))
		set(fmt.Sprintf("Q%d", r), ConvertPerUnitRate(row.CommissionPerUnit))
		set(fmt.Sprintf("R%d", r), string(row.VatRate))
	}

	_ = file.SetColWidth(sheet, "B", "B", 28)
	_ = file.SetColWidth(sheet, "C", "F", 36)
	_ = file.SetColWidth(sheet, "H", "I", 18)
	return writeToBytes(file)
}

// Commissions writes the grouped commission rollup.
func (g *Generator) Commissions(rows []model.CommissionRollupRow) ([]byte, error) {
	file := excelize.NewFile()
	sheet := "Commissions by Client Contracts"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Client",
		"Contract Status",
		"Contract Type",
		"Originator",
		"Client Onboarded",
		"Supplier",
		"Utility",
		"MPAN/MPR",
		"Commission per Unit Rate",
		"Commission per Annum Rate",
		"Total EAC",
		"Number of Contracts",
		"Total Value per Contract",
	}
	writeHeaderRow(file, sheet, headers)

	for i, row := range rows {
		r := i + 2
		set(fmt.Sprintf("A%d", r), row.ClientName)
		set(fmt.Sprintf("B%d", r), string(row.ContractStatus))
		set(fmt.Sprintf("C%d", r), string(row.ContractType))
		set(fmt.Sprintf("D%d", r), formatString(row.Originator))
		set(fmt.Sprintf("E%d", r), formatUKDate(row.ClientOnboarded))
		set(fmt.Sprintf("F%d", r), row.SupplierName)
		set(fmt.Sprintf("G%d", r), row.UtilityName)
		set(fmt.Sprintf("H%d", r), row.MpanMpr)
		set(fmt.Sprintf("I%d", r), formatDecimal(row.CommissionPerUnit))
		set(fmt.Sprintf("J%d", r), formatDecimal(row.CommissionPerAnnum))
		set(fmt.Sprintf("K%d", r), row.TotalEAC.String())
		set(fmt.Sprintf("L%d", r), row.ContractCount)
		set(fmt.Sprintf("M%d", r), row.TotalValuePerContract.String())
	}

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "F", "H", 18)
	return writeToBytes(file)
}

// Duplicates writes the duplicate-contract report; rows arrive already
// grouped and numbered.
func (g *Generator) Duplicates(rows []model.DuplicateRow) ([]byte, error) {
	file := excelize.NewFile()
	sheet := "Duplicate Contracts"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"ID",
		"Client",
		"Business Name",
		"MPAN",
		"Supplier",
		"Contract Start Date",
		"Contract End Date",
		"Row Number",
		"Duplicates Count",
	}
	writeHeaderRow(file, sheet, headers)

	for i, row := range rows {
		r := i + 2
		set(fmt.Sprintf("A%d", r), row.ID)
		set(fmt.Sprintf("B%d", r), row.ClientName)
		set(fmt.Sprintf("C%d", r), row.BusinessName)
		set(fmt.Sprintf("D%d", r), row.MpanMpr)
		set(fmt.Sprintf("E%d", r), row.SupplierName)
		set(fmt.Sprintf("F%d", r), formatUKDate(row.ContractStartDate))
		set(fmt.Sprintf("G%d", r), formatUKDate(row.ContractEndDate))
		set(fmt.Sprintf("H%d", r), row.RowNumber)
		set(fmt.Sprintf("I%d", r), row.DuplicatesCount)
	}

	_ = file.SetColWidth(sheet, "B", "C", 28)
	return writeToBytes(file)
}

// Expired writes the out-of-contract report.
func (g *Generator) Expired(rows []model.ExpiredRow) ([]byte, error) {
	file := excelize.NewFile()
	sheet := "Expired Contracts"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"ID", "Client", "MPAN/MPR", "Contract Status", "Contract End Date", "OOC"}
	writeHeaderRow(file, sheet, headers)

	for i, row := range rows {
		r := i + 2
		set(fmt.Sprintf("A%d", r), row.ID)
		set(fmt.Sprintf("B%d", r), row.ClientName)
		set(fmt.Sprintf("C%d", r), row.MpanMpr)
		set(fmt.Sprintf("D%d", r), string(row.ContractStatus))
		set(fmt.Sprintf("E%d", r), formatUKDate(row.ContractEndDate))
		set(fmt.Sprintf("F%d", r), string(row.IsOOC))
	}

	_ = file.SetColWidth(sheet, "B", "B", 28)
	return writeToBytes(file)
}

// StatusReport writes the combined rollup across three sheets plus a
// summary, mirroring the status / approval / OOC counts.
func (g *Generator) StatusReport(report *model.StatusReport) ([]byte, error) {
	file := excelize.NewFile()

	summary := "Summary"
	file.SetSheetName("Sheet1", summary)
	set := func(sheet, cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}
	set(summary, "A1", "Generated")
	set(summary, "B1", report.GeneratedAt.Format("02/01/2006 15:04"))
	set(summary, "A2", "Total Contracts")
	set(summary, "B2", report.TotalContracts)
	set(summary, "A3", "Live Clients")
	set(summary, "B3", report.TotalLiveClients)
	set(summary, "A4", "Lost Clients")
	set(summary, "B4", report.TotalLostClients)
	_ = file.SetColWidth(summary, "A", "A", 22)

	writeCountSheet(file, "Contract Status Count", "Contract Status", report.StatusCounts)
	writeCountSheet(file, "DA Approval Status", "Approval Status", report.ApprovalCounts)
	writeCountSheet(file, "OOC Status Count", "OOC Status", report.OOCCounts)

	file.SetActiveSheet(0)
	return writeToBytes(file)
}

func writeCountSheet(file *excelize.File, sheet, label string, counts []model.StatusCount) {
	file.NewSheet(sheet)
	writeHeaderRow(file, sheet, []string{label, "Total"})

	total := int64(0)
	for i, count := range counts {
		r := i + 2
		_ = file.SetCellValue(sheet, fmt.Sprintf("A%d", r), count.Label)
		_ = file.SetCellValue(sheet, fmt.Sprintf("B%d", r), count.Count)
		total += count.Count
	}
	r := len(counts) + 2
	_ = file.SetCellValue(sheet, fmt.Sprintf("A%d", r), "Total")
	_ = file.SetCellValue(sheet, fmt.Sprintf("B%d", r), total)
	_ = file.SetColWidth(sheet, "A", "A", 24)
}

func writeHeaderRow(file *excelize.File, sheet string, headers []string) {
	style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = file.SetCellValue(sheet, cell, header)
		if err == nil {
			_ = file.SetCellStyle(sheet, cell, cell, style)
		}
	}
}

func writeToBytes(file *excelize.File) ([]byte, error) {
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertPerUnitRate preserves a long-standing quirk of the bulk quote
// template: the standard pence rates 0.01, 0.02 and 0.03 are written as
// stored, anything else is treated as a fraction and written as a
// percentage rounded to two places.
func ConvertPerUnitRate(rate *decimal.Decimal) string {
	if rate == nil {
		return ""
	}
	for _, keep := range []string{"0.01", "0.02", "0.03"} {
		if rate.Equal(decimal.RequireFromString(keep)) {
			return rate.String()
		}
	}
	return rate.Mul(decimal.NewFromInt(100)).Round(2).String()
}

func formatUKDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

func formatString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatDecimal(value *decimal.Decimal) string {
	if value == nil {
		return ""
	}
	return value.String()
}
