package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Get(ctx context.Context, id int64) (*model.Contract, error) {
	var contract model.Contract
	if err := r.db.WithContext(ctx).First(&contract, id).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) Create(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *ContractRepository) Update(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

// UpdateNotes changes only the notes column; the account-manager ownership
// check happens in the service.
func (r *ContractRepository) UpdateNotes(ctx context.Context, id int64, notes *string) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE client_contracts SET notes = ?, updated_at = NOW() WHERE id = ?
	`, notes, id).Error
}

// ContractFilter narrows List. Zero values mean "no filter".
type ContractFilter struct {
	ClientID       int64
	Status         model.ContractStatus
	ContractType   model.ContractType
	UtilityName    string
	SupplierName   string
	IsOOC          model.YesNo
	ClientManager  *uuid.UUID
	AccountManager *uuid.UUID
}

func (r *ContractRepository) List(ctx context.Context, filter ContractFilter) ([]model.Contract, error) {
	query := r.db.WithContext(ctx).Table("client_contracts").Order("contract_end_date ASC, id ASC")
	if filter.ClientID != 0 {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		query = query.Where("contract_status = ?", filter.Status)
	}
	if filter.ContractType != "" {
		query = query.Where("contract_type = ?", filter.ContractType)
	}
	if filter.UtilityName != "" {
		query = query.Where("utility_id IN (SELECT id FROM utilities WHERE utility = ?)", filter.UtilityName)
	}
	if filter.SupplierName != "" {
		query = query.Where("supplier_id IN (SELECT id FROM suppliers WHERE supplier = ?)", filter.SupplierName)
	}
	if filter.IsOOC != "" {
		query = query.Where("is_ooc = ?", filter.IsOOC)
	}
	if filter.ClientManager != nil {
		query = query.Where("client_manager_id = ?", *filter.ClientManager)
	}
	if filter.AccountManager != nil {
		query = query.Where("client_id IN (SELECT id FROM clients WHERE account_manager_id = ?)", *filter.AccountManager)
	}

	var contracts []model.Contract
	if err := query.Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// GetDetail returns the contract with its related names resolved.
func (r *ContractRepository) GetDetail(ctx context.Context, id int64) (*model.ContractDetail, error) {
	contract, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := r.expand(ctx, []model.Contract{*contract})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListDetails is List with related names resolved in bulk.
func (r *ContractRepository) ListDetails(ctx context.Context, filter ContractFilter) ([]model.ContractDetail, error) {
	contracts, err := r.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return r.expand(ctx, contracts)
}

func (r *ContractRepository) expand(ctx context.Context, contracts []model.Contract) ([]model.ContractDetail, error) {
	clientIDs := make([]int64, 0, len(contracts))
	supplierIDs := make([]int64, 0, len(contracts))
	utilityIDs := make([]int64, 0, len(contracts))
	for _, c := range contracts {
		clientIDs = append(clientIDs, c.ClientID)
		supplierIDs = append(supplierIDs, c.SupplierID)
		utilityIDs = append(utilityIDs, c.UtilityID)
	}

	clients := map[int64]model.Client{}
	if len(clientIDs) > 0 {
		var rows []model.Client
		if err := r.db.WithContext(ctx).Where("id IN ?", clientIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			clients[row.ID] = row
		}
	}

	suppliers := map[int64]string{}
	if len(supplierIDs) > 0 {
		var rows []model.Supplier
		if err := r.db.WithContext(ctx).Where("id IN ?", supplierIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			suppliers[row.ID] = row.Supplier
		}
	}

	utilities := map[int64]string{}
	if len(utilityIDs) > 0 {
		var rows []model.Utility
		if err := r.db.WithContext(ctx).Where("id IN ?", utilityIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			utilities[row.ID] = row.Utility
		}
	}

	details := make([]model.ContractDetail, 0, len(contracts))
	for _, c := range contracts {
		detail := model.ContractDetail{
			Contract:     c,
			SupplierName: suppliers[c.SupplierID],
			UtilityName:  utilities[c.UtilityID],
		}
		if client, ok := clients[c.ClientID]; ok {
			detail.ClientName = client.Name
			detail.Originator = client.Originator
			detail.ClientOnboarded = client.ClientOnboarded
			detail.ContractTerm = client.ContractTerm
		}
		details = append(details, detail)
	}
	return details, nil
}

// MaxID returns the highest contract id, 0 when the table is empty. The
// importer assigns ids above it for rows arriving without one.
func (r *ContractRepository) MaxID(ctx context.Context) (int64, error) {
	var maxID *int64
	if err := r.db.WithContext(ctx).Raw(`
		SELECT MAX(id) FROM client_contracts
	`).Scan(&maxID).Error; err != nil {
		return 0, err
	}
	if maxID == nil {
		return 0, nil
	}
	return *maxID, nil
}
