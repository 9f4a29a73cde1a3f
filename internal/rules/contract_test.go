package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energyportfolio/crm-service/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func baseContract() model.Contract {
	return model.Contract{
		ID:                  1,
		ClientID:            1,
		SupplierID:          10,
		UtilityID:           1,
		BusinessName:        "Acme Site 1",
		MpanMpr:             "12345",
		ContractType:        model.ContractTypeSeamless,
		ContractStatus:      model.ContractStatusLive,
		SeamlessUpdated:     model.No,
		IsDirectorsApproval: model.No,
		IsOOC:               model.No,
		MeterStatus:         model.MeterStatusActive,
		VatRate:             model.VatRateUnknown,
		VatDeclarationSent:  model.No,
	}
}

func TestDeriveDirectorsApproval(t *testing.T) {
	t.Run("new contract without approval", func(t *testing.T) {
		next, err := DeriveContract(nil, baseContract(), nil, testNow)
		require.NoError(t, err)
		assert.Nil(t, next.DirectorsApprovalDate)
	})

	t.Run("new contract created approved", func(t *testing.T) {
		c := baseContract()
		c.IsDirectorsApproval = model.Yes
		next, err := DeriveContract(nil, c, nil, testNow)
		require.NoError(t, err)
		require.NotNil(t, next.DirectorsApprovalDate)
		assert.Equal(t, testNow, *next.DirectorsApprovalDate)
	})

	t.Run("any transition stamps", func(t *testing.T) {
		stamped := testNow.AddDate(0, -2, 0)
		old := baseContract()
		old.IsDirectorsApproval = model.Yes
		old.DirectorsApprovalDate = &stamped

		c := baseContract()
		c.IsDirectorsApproval = model.No
		next, err := DeriveContract(&old, c, nil, testNow)
		require.NoError(t, err)
		require.NotNil(t, next.DirectorsApprovalDate)
		assert.Equal(t, testNow, *next.DirectorsApprovalDate)
	})

	t.Run("no transition keeps the stamp", func(t *testing.T) {
		stamped := testNow.AddDate(0, -2, 0)
		old := baseContract()
		old.IsDirectorsApproval = model.Yes
		old.DirectorsApprovalDate = &stamped

		c := baseContract()
		c.IsDirectorsApproval = model.Yes
		next, err := DeriveContract(&old, c, nil, testNow)
		require.NoError(t, err)
		require.NotNil(t, next.DirectorsApprovalDate)
		assert.Equal(t, stamped, *next.DirectorsApprovalDate)
	})
}

func TestDerivePreviousSupplier(t *testing.T) {
	t.Run("supplier change records previous and stamps date", func(t *testing.T) {
		old := baseContract()
		c := baseContract()
		c.SupplierID = 20
		next, err := DeriveContract(&old, c, nil, testNow)
		require.NoError(t, err)
		require.NotNil(t, next.PreviousSupplierID)
		assert.Equal(t, int64(10), *next.PreviousSupplierID)
		require.NotNil(t, next.SupplierChangedDate)
		assert.Equal(t, dateOnly(testNow), *next.SupplierChangedDate)
	})

	t.Run("caller-supplied change date wins", func(t *testing.T) {
		supplied := dateOnly(testNow.AddDate(0, 0, -3))
		old := baseContract()
		c := baseContract()
		c.SupplierID = 20
		c.SupplierChangedDate = &supplied
		next, err := DeriveContract(&old, c, nil, testNow)
		require.NoError(t, err)
		require.NotNil(t, next.SupplierChangedDate)
		assert.Equal(t, supplied, *next.SupplierChangedDate)
	})

	t.Run("no change carries history through", func(t *testing.T) {
		prev := int64(5)
		changed := dateOnly(testNow.AddDate(-1, 0, 0))
		old := baseContract()
		old.PreviousSupplierID = &prev
		old.SupplierChangedDate = &changed
		next, err := DeriveContract(&old, baseContract(), nil, testNow)
		require.NoError(t, err)
		require.NotNil(t, next.PreviousSupplierID)
		assert.Equal(t, prev, *next.PreviousSupplierID)
		assert.Equal(t, changed, *next.SupplierChangedDate)
	})

	t.Run("missing old row leaves tracking untouched", func(t *testing.T) {
		c := baseContract()
		c.SupplierID = 20
		next, err := DeriveContract(nil, c, nil, testNow)
		require.NoError(t, err)
		assert.Nil(t, next.PreviousSupplierID)
		assert.Nil(t, next.SupplierChangedDate)
	})
}

func TestDeriveVatDeclaration(t *testing.T) {
	end := dateOnly(testNow.AddDate(1, 0, 0))

	t.Run("sent without date is rejected", func(t *testing.T) {
		c := baseContract()
		c.VatDeclarationSent = model.Yes
		_, err := DeriveContract(nil, c, nil, testNow)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vat_declaration_date cannot be null")
	})

	t.Run("sent sets expiry to contract end date", func(t *testing.T) {
		sent := dateOnly(testNow)
		c := baseContract()
		c.VatDeclarationSent = model.Yes
		c.VatDeclarationDate = &sent
		c.ContractEndDate = &end
		next, err := DeriveContract(nil, c, nil, testNow)
		require.NoError(t, err)
		require.NotNil(t, next.VatDeclarationExpires)
		assert.Equal(t, end, *next.VatDeclarationExpires)
	})

	t.Run("not sent clears expiry", func(t *testing.T) {
		old := baseContract()
		old.VatDeclarationExpires = &end
		c := baseContract()
		c.VatDeclarationExpires = &end
		next, err := DeriveContract(&old, c, nil, testNow)
		require.NoError(t, err)
		assert.Nil(t, next.VatDeclarationExpires)
	})

	t.Run("invalid vat rate is rejected", func(t *testing.T) {
		c := baseContract()
		c.VatRate = "12%"
		_, err := DeriveContract(nil, c, nil, testNow)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid VAT rate")
	})
}

func TestResolveCommission(t *testing.T) {
	tiers := []model.CommissionTier{
		{ID: 1, ClientID: 1, EACFrom: dec("1000"), EACTo: dec("2000"), CommissionPerAnnum: dec("150.00"), CommissionPerUnit: dec("0.015")},
		{ID: 2, ClientID: 1, EACFrom: dec("2000.01"), EACTo: dec("5000"), CommissionPerAnnum: dec("300.00"), CommissionPerUnit: dec("0.02")},
	}

	t.Run("band match copies tier rates", func(t *testing.T) {
		c := baseContract()
		c.EAC = decPtr("1500")
		next, err := DeriveContract(nil, c, tiers, testNow)
		require.NoError(t, err)
		require.NotNil(t, next.CommissionPerAnnum)
		assert.True(t, next.CommissionPerAnnum.Equal(dec("150.00")))
		assert.True(t, next.CommissionPerUnit.Equal(dec("0.015")))
	})

	t.Run("band edges are inclusive", func(t *testing.T) {
		for _, eac := range []string{"1000", "2000"} {
			c := baseContract()
			c.EAC = decPtr(eac)
			next, err := DeriveContract(nil, c, tiers, testNow)
			require.NoError(t, err)
			require.NotNil(t, next.CommissionPerAnnum, eac)
			assert.True(t, next.CommissionPerAnnum.Equal(dec("150.00")), eac)
		}
	})

	t.Run("no match retains prior values", func(t *testing.T) {
		old := baseContract()
		old.CommissionPerAnnum = decPtr("99.99")
		old.CommissionPerUnit = decPtr("0.01")
		c := baseContract()
		c.EAC = decPtr("9000")
		next, err := DeriveContract(&old, c, tiers, testNow)
		require.NoError(t, err)
		require.NotNil(t, next.CommissionPerAnnum)
		assert.True(t, next.CommissionPerAnnum.Equal(dec("99.99")))
		assert.True(t, next.CommissionPerUnit.Equal(dec("0.01")))
	})

	t.Run("overlapping bands take the first by id", func(t *testing.T) {
		overlapping := []model.CommissionTier{
			{ID: 1, EACFrom: dec("0"), EACTo: dec("3000"), CommissionPerAnnum: dec("100"), CommissionPerUnit: dec("0.01")},
			{ID: 2, EACFrom: dec("1000"), EACTo: dec("2000"), CommissionPerAnnum: dec("200"), CommissionPerUnit: dec("0.02")},
		}
		c := baseContract()
		c.EAC = decPtr("1500")
		next, err := DeriveContract(nil, c, overlapping, testNow)
		require.NoError(t, err)
		assert.True(t, next.CommissionPerAnnum.Equal(dec("100")))
	})

	t.Run("nil EAC skips the lookup", func(t *testing.T) {
		next, err := DeriveContract(nil, baseContract(), tiers, testNow)
		require.NoError(t, err)
		assert.Nil(t, next.CommissionPerAnnum)
	})
}
