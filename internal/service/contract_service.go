package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/model"
	"github.com/energyportfolio/crm-service/internal/repository"
	"github.com/energyportfolio/crm-service/internal/rules"
)

type ContractService struct {
	contracts   *repository.ContractRepository
	clients     *repository.ClientRepository
	commissions *repository.CommissionRepository
	utilities   *repository.UtilityRepository
	log         zerolog.Logger
}

func NewContractService(
	contracts *repository.ContractRepository,
	clients *repository.ClientRepository,
	commissions *repository.CommissionRepository,
	utilities *repository.UtilityRepository,
	log zerolog.Logger,
) *ContractService {
	return &ContractService{
		contracts:   contracts,
		clients:     clients,
		commissions: commissions,
		utilities:   utilities,
		log:         log,
	}
}

func (s *ContractService) Create(ctx context.Context, principal model.Principal, contract model.Contract) (*model.Contract, error) {
	if principal.IsClientManager() {
		return nil, ErrPermissionDenied
	}
	if err := s.validateRefs(contract); err != nil {
		return nil, err
	}

	derived, err := s.deriveWithOld(ctx, nil, contract)
	if err != nil {
		return nil, err
	}
	if err := s.contracts.Create(ctx, derived); err != nil {
		return nil, err
	}
	return derived, nil
}

// Update persists the contract after running the full derivation chain:
// directors approval, previous supplier, VAT declaration and commission
// resolution.
func (s *ContractService) Update(ctx context.Context, principal model.Principal, contract model.Contract) (*model.Contract, error) {
	if principal.IsClientManager() {
		return nil, ErrPermissionDenied
	}
	if contract.ID == 0 {
		return nil, fmt.Errorf("%w: contract id is required", ErrInvalidInput)
	}
	if err := s.validateRefs(contract); err != nil {
		return nil, err
	}

	old, err := s.contracts.Get(ctx, contract.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// Missing persisted row is non-fatal for the derivation rules.
		old = nil
	}

	derived, err := s.deriveWithOld(ctx, old, contract)
	if err != nil {
		return nil, err
	}
	if err := s.contracts.Update(ctx, derived); err != nil {
		return nil, err
	}
	return derived, nil
}

func (s *ContractService) deriveWithOld(ctx context.Context, old *model.Contract, contract model.Contract) (*model.Contract, error) {
	utility, err := s.utilities.GetUtility(ctx, contract.UtilityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown utility", ErrInvalidInput)
		}
		return nil, err
	}

	tiers, err := s.commissions.TiersFor(ctx, contract.ClientID, utility.Utility)
	if err != nil {
		return nil, err
	}

	derived, err := rules.DeriveContract(old, contract, tiers, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return &derived, nil
}

func (s *ContractService) validateRefs(contract model.Contract) error {
	if contract.ClientID == 0 {
		return fmt.Errorf("%w: client is required", ErrInvalidInput)
	}
	if contract.SupplierID == 0 {
		return fmt.Errorf("%w: supplier is required", ErrInvalidInput)
	}
	if contract.UtilityID == 0 {
		return fmt.Errorf("%w: utility is required", ErrInvalidInput)
	}
	if contract.BusinessName == "" {
		return fmt.Errorf("%w: business name is required", ErrInvalidInput)
	}
	if contract.MpanMpr == "" {
		return fmt.Errorf("%w: mpan_mpr is required", ErrInvalidInput)
	}
	if contract.ContractStatus != "" && !contract.ContractStatus.Valid() {
		return fmt.Errorf("%w: invalid contract status %q", ErrInvalidInput, contract.ContractStatus)
	}
	return nil
}

// UpdateNotes lets an account manager edit the notes of a contract that
// belongs to one of their clients; admins may edit any.
func (s *ContractService) UpdateNotes(ctx context.Context, principal model.Principal, id int64, notes *string) error {
	contract, err := s.contracts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !principal.IsAdmin() {
		client, err := s.clients.Get(ctx, contract.ClientID)
		if err != nil {
			return err
		}
		if client.AccountManagerID != principal.UserID {
			return ErrPermissionDenied
		}
	}
	return s.contracts.UpdateNotes(ctx, id, notes)
}

func (s *ContractService) Get(ctx context.Context, principal model.Principal, id int64) (*model.ContractDetail, error) {
	detail, err := s.contracts.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if principal.IsClientManager() {
		if detail.ClientManagerID == nil || *detail.ClientManagerID != principal.UserID {
			return nil, ErrPermissionDenied
		}
	}
	if principal.IsAccountManager() {
		client, err := s.clients.Get(ctx, detail.ClientID)
		if err != nil {
			return nil, err
		}
		if client.AccountManagerID != principal.UserID {
			return nil, ErrPermissionDenied
		}
	}
	return detail, nil
}

// List scopes contracts by role: admins see everything, account managers
// their client book, client managers only contracts assigned to them.
func (s *ContractService) List(ctx context.Context, principal model.Principal, filter repository.ContractFilter) ([]model.ContractDetail, error) {
	switch {
	case principal.IsAccountManager():
		managerID := principal.UserID
		filter.AccountManager = &managerID
	case principal.IsClientManager():
		managerID := principal.UserID
		filter.ClientManager = &managerID
	}
	return s.contracts.ListDetails(ctx, filter)
}

// Suppliers and Utilities back the pick-lists on the contract forms.
func (s *ContractService) Suppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.utilities.ListSuppliers(ctx)
}

func (s *ContractService) Utilities(ctx context.Context) ([]model.Utility, error) {
	return s.utilities.ListUtilities(ctx)
}
