package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/energyportfolio/crm-service/internal/model"
)

func openBook(t *testing.T, content []byte) *excelize.File {
	t.Helper()
	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return file
}

func cell(t *testing.T, file *excelize.File, sheet, ref string) string {
	t.Helper()
	value, err := file.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return value
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestBulkQuoteWritesUKDatesAndConvertedRates(t *testing.T) {
	end := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.BulkQuoteRow{
		{
			ID:                10,
			ClientName:        "Acme",
			BusinessName:      "Acme HQ",
			MpanMpr:           "12345",
			SupplierName:      "British Gas",
			ContractStatus:    model.ContractStatusLive,
			ContractEndDate:   &end,
			EAC:               decPtr("1500"),
			CommissionPerUnit: decPtr("0.015"),
		},
	}

	content, err := NewGenerator().BulkQuote(rows)
	require.NoError(t, err)
	file := openBook(t, content)

	sheet := "Bulk Quote Template"
	assert.Equal(t, "ID", cell(t, file, sheet, "A1"))
	assert.Equal(t, "Commission per Unit", cell(t, file, sheet, "Q1"))
	assert.Equal(t, "10", cell(t, file, sheet, "A2"))
	assert.Equal(t, "Acme", cell(t, file, sheet, "B2"))
	assert.Equal(t, "01/06/2024", cell(t, file, sheet, "M2"))
	assert.Equal(t, "1.5", cell(t, file, sheet, "Q2"))
}

func TestConvertPerUnitRate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"one pence kept", "0.01", "0.01"},
		{"two pence kept", "0.02", "0.02"},
		{"three pence kept", "0.03", "0.03"},
		{"fraction converted to percent", "0.015", "1.5"},
		{"rounded to two places", "0.01234", "1.23"},
		{"zero converted", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertPerUnitRate(decPtr(tt.in)))
		})
	}

	assert.Equal(t, "", ConvertPerUnitRate(nil))
}

func TestDuplicatesSheetCarriesGroupColumns(t *testing.T) {
	end := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.DuplicateRow{
		{ID: 1, ClientName: "Acme", BusinessName: "Acme HQ", MpanMpr: "12345", ContractEndDate: &end, RowNumber: 1, DuplicatesCount: 2},
		{ID: 2, ClientName: "Acme", BusinessName: "Acme HQ", MpanMpr: "12345", ContractEndDate: &end, RowNumber: 2, DuplicatesCount: 2},
	}

	content, err := NewGenerator().Duplicates(rows)
	require.NoError(t, err)
	file := openBook(t, content)

	sheet := "Duplicate Contracts"
	assert.Equal(t, "Duplicates Count", cell(t, file, sheet, "I1"))
	assert.Equal(t, "1", cell(t, file, sheet, "H2"))
	assert.Equal(t, "2", cell(t, file, sheet, "I2"))
	assert.Equal(t, "2", cell(t, file, sheet, "H3"))
	assert.Equal(t, "01/06/2024", cell(t, file, sheet, "G3"))
}

func TestStatusReportWritesCountSheetsWithTotals(t *testing.T) {
	report := &model.StatusReport{
		GeneratedAt: time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC),
		StatusCounts: []model.StatusCount{
			{Label: "LIVE", Count: 12},
			{Label: "LOST", Count: 3},
		},
		ApprovalCounts: []model.StatusCount{
			{Label: "NO", Count: 5},
			{Label: "YES", Count: 10},
		},
		OOCCounts: []model.StatusCount{
			{Label: "NO", Count: 14},
			{Label: "YES", Count: 1},
		},
		TotalContracts:   15,
		TotalLiveClients: 4,
		TotalLostClients: 1,
	}

	content, err := NewGenerator().StatusReport(report)
	require.NoError(t, err)
	file := openBook(t, content)

	assert.Equal(t, "15", cell(t, file, "Summary", "B2"))
	assert.Equal(t, "LIVE", cell(t, file, "Contract Status Count", "A2"))
	assert.Equal(t, "12", cell(t, file, "Contract Status Count", "B2"))
	assert.Equal(t, "Total", cell(t, file, "Contract Status Count", "A4"))
	assert.Equal(t, "15", cell(t, file, "Contract Status Count", "B4"))
	assert.Equal(t, "Total", cell(t, file, "DA Approval Status", "A4"))
	assert.Equal(t, "15", cell(t, file, "DA Approval Status", "B4"))
}

func TestExpiredSheet(t *testing.T) {
	end := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	rows := []model.ExpiredRow{
		{ID: 7, ClientName: "Acme", MpanMpr: "12345", ContractStatus: model.ContractStatusExpired, ContractEndDate: &end, IsOOC: model.Yes},
	}

	content, err := NewGenerator().Expired(rows)
	require.NoError(t, err)
	file := openBook(t, content)

	sheet := "Expired Contracts"
	assert.Equal(t, "7", cell(t, file, sheet, "A2"))
	assert.Equal(t, "31/01/2024", cell(t, file, sheet, "E2"))
	assert.Equal(t, "YES", cell(t, file, sheet, "F2"))
}
