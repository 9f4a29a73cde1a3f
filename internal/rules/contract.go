package rules

import (
	"fmt"
	"time"

	"github.com/energyportfolio/crm-service/internal/model"
)

// DeriveContract resolves the derived contract fields before persistence:
// directors-approval stamping, previous-supplier tracking, VAT declaration
// validation and expiry, and commission resolution against the client's
// tiers for the contract's utility. old is nil for new records, or when
// the persisted row could not be found, in which case the supplier and
// approval history fields stay untouched.
//
// tiers must already be filtered to the contract's client and utility,
// ordered by id; the first band containing the EAC wins.
func DeriveContract(old *model.Contract, next model.Contract, tiers []model.CommissionTier, now time.Time) (model.Contract, error) {
	next = deriveDirectorsApproval(old, next, now)
	next = derivePreviousSupplier(old, next, now)

	var err error
	next, err = deriveVatDeclaration(next)
	if err != nil {
		return next, err
	}

	next = resolveCommission(old, next, tiers)
	return next, nil
}

func deriveDirectorsApproval(old *model.Contract, next model.Contract, now time.Time) model.Contract {
	if old == nil {
		if next.IsDirectorsApproval == model.Yes {
			next.DirectorsApprovalDate = &now
		}
		return next
	}

	if old.IsDirectorsApproval != next.IsDirectorsApproval {
		// Any transition is stamped, not only NO -> YES.
		next.DirectorsApprovalDate = &now
	} else {
		next.DirectorsApprovalDate = old.DirectorsApprovalDate
	}
	return next
}

func derivePreviousSupplier(old *model.Contract, next model.Contract, now time.Time) model.Contract {
	if old == nil {
		return next
	}

	if old.SupplierID != next.SupplierID {
		previous := old.SupplierID
		next.PreviousSupplierID = &previous
		if next.SupplierChangedDate == nil {
			day := dateOnly(now)
			next.SupplierChangedDate = &day
		}
	} else {
		next.PreviousSupplierID = old.PreviousSupplierID
		next.SupplierChangedDate = old.SupplierChangedDate
	}
	return next
}

func deriveVatDeclaration(next model.Contract) (model.Contract, error) {
	if next.VatDeclarationSent == model.Yes {
		if next.VatDeclarationDate == nil {
			return next, fmt.Errorf("vat_declaration_date cannot be null when vat_declaration_sent is YES")
		}
		next.VatDeclarationExpires = next.ContractEndDate
	} else {
		next.VatDeclarationExpires = nil
	}

	// Unreachable through normal enum assignment; kept as a guard for
	// the import path which coerces raw strings.
	if !next.VatRate.Valid() {
		return next, fmt.Errorf("invalid VAT rate %q", next.VatRate)
	}
	return next, nil
}

// resolveCommission copies the rates of the first tier whose band contains
// the contract's EAC. Without a match the contract keeps its prior values;
// they are never reset to null.
func resolveCommission(old *model.Contract, next model.Contract, tiers []model.CommissionTier) model.Contract {
	if old != nil {
		next.CommissionPerAnnum = old.CommissionPerAnnum
		next.CommissionPerUnit = old.CommissionPerUnit
	}
	if next.EAC == nil {
		return next
	}
	for _, tier := range tiers {
		if tier.Contains(*next.EAC) {
			annum := tier.CommissionPerAnnum
			unit := tier.CommissionPerUnit
			next.CommissionPerAnnum = &annum
			next.CommissionPerUnit = &unit
			break
		}
	}
	return next
}
