package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/model"
)

// UtilityRepository covers the supplier and utility reference tables.
type UtilityRepository struct {
	db *gorm.DB
}

func NewUtilityRepository(db *gorm.DB) *UtilityRepository {
	return &UtilityRepository{db: db}
}

func (r *UtilityRepository) GetUtility(ctx context.Context, id int64) (*model.Utility, error) {
	var utility model.Utility
	if err := r.db.WithContext(ctx).First(&utility, id).Error; err != nil {
		return nil, err
	}
	return &utility, nil
}

func (r *UtilityRepository) GetSupplier(ctx context.Context, id int64) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *UtilityRepository) ListUtilities(ctx context.Context) ([]model.Utility, error) {
	var utilities []model.Utility
	if err := r.db.WithContext(ctx).Order("utility ASC").Find(&utilities).Error; err != nil {
		return nil, err
	}
	return utilities, nil
}

func (r *UtilityRepository) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	if err := r.db.WithContext(ctx).Order("supplier ASC").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *UtilityRepository) GetOrCreateSupplier(ctx context.Context, name string) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.WithContext(ctx).Where("supplier = ?", name).First(&supplier).Error
	if err == nil {
		return &supplier, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	supplier = model.Supplier{Supplier: name}
	if err := r.db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *UtilityRepository) GetOrCreateUtility(ctx context.Context, name string) (*model.Utility, error) {
	var utility model.Utility
	err := r.db.WithContext(ctx).Where("utility = ?", name).First(&utility).Error
	if err == nil {
		return &utility, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	utility = model.Utility{Utility: name}
	if err := r.db.WithContext(ctx).Create(&utility).Error; err != nil {
		return nil, err
	}
	return &utility, nil
}
