package importer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energyportfolio/crm-service/internal/model"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestConvertDateAcceptsBothWorkbookFormats(t *testing.T) {
	want := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	got, err := ConvertDate("01/06/2024")
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	got, err = ConvertDate("01-06-2024")
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	got, err = ConvertDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestConvertDateRejectsGarbage(t *testing.T) {
	_, err := ConvertDate("June 1st 2024")
	assert.Error(t, err)

	got, err := ConvertDate("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConvertDecimalQuantizesHalfUp(t *testing.T) {
	tests := []struct {
		in     string
		places int32
		want   string
	}{
		{"1500.005", 2, "1500.01"},
		{"1500.004", 2, "1500"},
		{"0.1234565", 6, "0.123457"},
		{"0.0015", 3, "0.002"},
	}
	for _, tt := range tests {
		got, err := ConvertDecimal(tt.in, tt.places, true)
		require.NoError(t, err)
		assert.True(t, got.Equal(mustDecimal(t, tt.want)), "%s @ %d places: got %s want %s", tt.in, tt.places, got, tt.want)
	}
}

func TestConvertDecimalPassThrough(t *testing.T) {
	got, err := ConvertDecimal("12.3456789", 0, false)
	require.NoError(t, err)
	assert.Equal(t, "12.3456789", got.String())

	got, err = ConvertDecimal("", 2, true)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ConvertDecimal("not-a-number", 2, true)
	assert.Error(t, err)
}

func TestParseRowMapsPositionalColumns(t *testing.T) {
	row := make([]string, len(importOrder))
	set := func(name, value string) {
		for i, col := range importOrder {
			if col == name {
				row[i] = value
				return
			}
		}
		t.Fatalf("unknown column %s", name)
	}

	set("id", "42")
	set("contract_type", "NON_SEAMLESS")
	set("contract_status", "LIVE")
	set("client", "Acme")
	set("business_name", "Acme HQ")
	set("utility", "Electricity")
	set("mpan_mpr", "12345")
	set("supplier", "British Gas")
	set("contract_end_date", "01/06/2024")
	set("eac", "1500.005")
	set("vat_rate", "20%")
	set("is_ooc", "YES")
	set("commission_per_unit", "0.0154")

	contract, refs, err := ParseRow(row)
	require.NoError(t, err)

	assert.Equal(t, int64(42), contract.ID)
	assert.Equal(t, model.ContractTypeNonSeamless, contract.ContractType)
	assert.Equal(t, model.ContractStatusLive, contract.ContractStatus)
	assert.Equal(t, "Acme HQ", contract.BusinessName)
	assert.Equal(t, "12345", contract.MpanMpr)
	assert.Equal(t, model.Yes, contract.IsOOC)
	assert.Equal(t, model.VatRateTwentyPercent, contract.VatRate)
	require.NotNil(t, contract.ContractEndDate)
	assert.Equal(t, "2024-06-01", contract.ContractEndDate.Format("2006-01-02"))
	require.NotNil(t, contract.EAC)
	assert.Equal(t, "1500.01", contract.EAC.String())
	require.NotNil(t, contract.CommissionPerUnit)
	assert.Equal(t, "0.015", contract.CommissionPerUnit.String())

	assert.Equal(t, "Acme", refs.clientName)
	assert.Equal(t, "British Gas", refs.supplierName)
	assert.Equal(t, "Electricity", refs.utilityName)
}

func TestParseRowBlankIDLeftForAssignment(t *testing.T) {
	row := make([]string, len(importOrder))
	row[7] = "Acme"           // client
	row[13] = "Acme HQ"       // business_name
	row[15] = "Gas"           // utility
	row[17] = "67890"         // mpan_mpr
	row[24] = "British Gas"   // supplier

	contract, _, err := ParseRow(row)
	require.NoError(t, err)
	assert.Zero(t, contract.ID)
	assert.Equal(t, model.ContractStatusLive, contract.ContractStatus, "blank status defaults to LIVE")
	assert.Equal(t, model.VatRateUnknown, contract.VatRate)
}

func TestParseRowShortRowReadsBlanks(t *testing.T) {
	// Trailing columns are often truncated by spreadsheet tools.
	row := make([]string, 25)
	row[7] = "Acme"
	row[13] = "Acme HQ"
	row[15] = "Electricity"
	row[17] = "12345"
	row[24] = "EDF"

	contract, _, err := ParseRow(row)
	require.NoError(t, err)
	assert.Nil(t, contract.EAC)
	assert.Nil(t, contract.Notes)
}

func TestParseRowMissingRequiredColumns(t *testing.T) {
	row := make([]string, len(importOrder))
	row[13] = "Acme HQ"

	_, _, err := ParseRow(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client, supplier and utility are required")
}

func TestParseRowRejectsBadStatus(t *testing.T) {
	row := make([]string, len(importOrder))
	row[3] = "SORT_OF_LIVE"
	row[7] = "Acme"
	row[13] = "Acme HQ"
	row[15] = "Electricity"
	row[17] = "12345"
	row[24] = "EDF"

	_, _, err := ParseRow(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid contract_status")
}
