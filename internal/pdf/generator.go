package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/energyportfolio/crm-service/internal/model"
)

// Generator renders the fixed-layout contract summary document.
type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// ContractSummary writes a one-page key/value table of the contract and
// its related names.
func (g *Generator) ContractSummary(detail model.ContractDetail) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Contract Summary", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Contract #%d — %s", detail.ID, detail.BusinessName), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	g.section(pdf, "Client")
	g.rows(pdf, [][2]string{
		{"Client", detail.ClientName},
		{"Originator", formatString(detail.Originator)},
		{"Client Onboarded", formatDate(detail.ClientOnboarded)},
		{"Contract Term", formatString(detail.ContractTerm)},
	})

	g.section(pdf, "Supply")
	g.rows(pdf, [][2]string{
		{"Utility", detail.UtilityName},
		{"Supplier", detail.SupplierName},
		{"MPAN/MPR", detail.MpanMpr},
		{"Meter Serial Number", formatString(detail.MeterSerialNumber)},
		{"Site Address", formatString(detail.SiteAddress)},
		{"Billing Address", formatString(detail.BillingAddress)},
		{"Account Number", formatString(detail.AccountNumber)},
	})

	g.section(pdf, "Contract")
	g.rows(pdf, [][2]string{
		{"Status", string(detail.ContractStatus)},
		{"Type", string(detail.ContractType)},
		{"Start Date", formatDate(detail.ContractStartDate)},
		{"End Date", formatDate(detail.ContractEndDate)},
		{"Lock-in Date", formatDate(detail.LockInDate)},
		{"Out of Contract", string(detail.IsOOC)},
		{"Directors Approval", string(detail.IsDirectorsApproval)},
		{"Directors Approval Date", formatDate(detail.DirectorsApprovalDate)},
	})

	g.section(pdf, "Consumption & Rates")
	g.rows(pdf, [][2]string{
		{"EAC", formatDecimal(detail.EAC)},
		{"Unit Rate 1", formatDecimal(detail.UnitRate1)},
		{"Unit Rate 2", formatDecimal(detail.UnitRate2)},
		{"Unit Rate 3", formatDecimal(detail.UnitRate3)},
		{"Standing Charge", formatDecimal(detail.StandingCharge)},
		{"Contract Value", formatDecimal(detail.ContractValue)},
		{"Commission per Annum", formatDecimal(detail.CommissionPerAnnum)},
		{"Commission per Unit", formatDecimal(detail.CommissionPerUnit)},
		{"VAT Rate", string(detail.VatRate)},
		{"VAT Declaration Sent", string(detail.VatDeclarationSent)},
		{"VAT Declaration Date", formatDate(detail.VatDeclarationDate)},
		{"VAT Declaration Expires", formatDate(detail.VatDeclarationExpires)},
	})

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "I", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", time.Now().UTC().Format("02/01/2006 15:04")), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
}

func (g *Generator) rows(pdf *gofpdf.Fpdf, pairs [][2]string) {
	for _, pair := range pairs {
		if pair[1] == "" {
			continue
		}
		pdf.CellFormat(60, 6, pair[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(120, 6, pair[1], "1", 1, "L", false, 0, "")
	}
}

func formatDate(t *time.Time) string {
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
