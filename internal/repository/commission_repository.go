package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/model"
)

type CommissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

// tierTable maps a utility name to its commission table. Utilities other
// than electricity and gas carry no commission schedule.
func tierTable(utilityName string) (string, bool) {
	switch utilityName {
	case model.UtilityElectricity:
		return "electricity_commissions", true
	case model.UtilityGas:
		return "gas_commissions", true
	default:
		return "", false
	}
}

// TiersFor returns the client's commission tiers for the given utility,
// ordered by id so that overlapping bands resolve deterministically to the
// oldest row. An empty slice is returned for utilities without a schedule.
func (r *CommissionRepository) TiersFor(ctx context.Context, clientID int64, utilityName string) ([]model.CommissionTier, error) {
	table, ok := tierTable(utilityName)
	if !ok {
		return nil, nil
	}

	var tiers []model.CommissionTier
	err := r.db.WithContext(ctx).
		Table(table).
		Where("client_id = ?", clientID).
		Order("id ASC").
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *CommissionRepository) List(ctx context.Context, clientID int64, utilityName string) ([]model.CommissionTier, error) {
	return r.TiersFor(ctx, clientID, utilityName)
}

func (r *CommissionRepository) Create(ctx context.Context, utilityName string, tier *model.CommissionTier) error {
	table, ok := tierTable(utilityName)
	if !ok {
		return fmt.Errorf("no commission schedule for utility %q", utilityName)
	}
	return r.db.WithContext(ctx).Table(table).Create(tier).Error
}

func (r *CommissionRepository) Update(ctx context.Context, utilityName string, tier *model.CommissionTier) error {
	table, ok := tierTable(utilityName)
	if !ok {
		return fmt.Errorf("no commission schedule for utility %q", utilityName)
	}
	return r.db.WithContext(ctx).Table(table).Where("id = ?", tier.ID).Updates(map[string]interface{}{
		"eac_from":             tier.EACFrom,
		"eac_to":               tier.EACTo,
		"commission_per_annum": tier.CommissionPerAnnum,
		"commission_per_unit":  tier.CommissionPerUnit,
	}).Error
}

func (r *CommissionRepository) Delete(ctx context.Context, utilityName string, id int64) error {
	table, ok := tierTable(utilityName)
	if !ok {
		return fmt.Errorf("no commission schedule for utility %q", utilityName)
	}
	return r.db.WithContext(ctx).Table(table).Where("id = ?", id).Delete(&model.CommissionTier{}).Error
}
