package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energyportfolio/crm-service/internal/model"
)

func TestContractSummaryProducesPDF(t *testing.T) {
	end := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	eac := decimal.RequireFromString("1500")

	detail := model.ContractDetail{
		Contract: model.Contract{
			ID:              10,
			BusinessName:    "Acme HQ",
			MpanMpr:         "12345",
			ContractStatus:  model.ContractStatusLive,
			ContractEndDate: &end,
			EAC:             &eac,
			VatRate:         model.VatRateTwentyPercent,
			IsOOC:           model.No,
		},
		ClientName:   "Acme",
		SupplierName: "British Gas",
		UtilityName:  "Electricity",
	}

	content, err := NewGenerator().ContractSummary(detail)
	require.NoError(t, err)
	require.NotEmpty(t, content)
	assert.Equal(t, "%PDF", string(content[:4]))
}
