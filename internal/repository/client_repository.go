package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/model"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Get(ctx context.Context, id int64) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) GetByName(ctx context.Context, name string) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// GetOrCreateByName resolves a client name to a row, creating a stub
// assigned to the given account manager when missing. Used by the bulk
// importer.
func (r *ClientRepository) GetOrCreateByName(ctx context.Context, name string, accountManagerID uuid.UUID) (*model.Client, error) {
	client, err := r.GetByName(ctx, name)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	created := model.Client{Name: name, AccountManagerID: accountManagerID}
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientRepository) Update(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// List returns clients ordered by name, scoped to an account manager when
// one is given.
func (r *ClientRepository) List(ctx context.Context, accountManagerID *uuid.UUID) ([]model.Client, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if accountManagerID != nil {
		query = query.Where("account_manager_id = ?", *accountManagerID)
	}
	var clients []model.Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// SetContractsLost bulk-sets every contract of the client to LOST. Prior
// statuses are overwritten unconditionally.
func (r *ClientRepository) SetContractsLost(ctx context.Context, clientID int64) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE client_contracts
		SET contract_status = 'LOST', updated_at = NOW()
		WHERE client_id = ?
	`, clientID)
	return result.RowsAffected, result.Error
}
