package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/energyportfolio/crm-service/internal/model"
	"github.com/energyportfolio/crm-service/internal/repository"
)

// CommissionService manages the per-client commission bands kept
// separately for electricity and gas.
type CommissionService struct {
	commissions *repository.CommissionRepository
	clients     *repository.ClientRepository
	log         zerolog.Logger
}

func NewCommissionService(commissions *repository.CommissionRepository, clients *repository.ClientRepository, log zerolog.Logger) *CommissionService {
	return &CommissionService{commissions: commissions, clients: clients, log: log}
}

func (s *CommissionService) List(ctx context.Context, principal model.Principal, clientID int64, utilityName string) ([]model.CommissionTier, error) {
	if err := s.authorize(ctx, principal, clientID); err != nil {
		return nil, err
	}
	return s.commissions.List(ctx, clientID, utilityName)
}

func (s *CommissionService) Create(ctx context.Context, principal model.Principal, utilityName string, tier model.CommissionTier) (*model.CommissionTier, error) {
	if err := s.authorize(ctx, principal, tier.ClientID); err != nil {
		return nil, err
	}
	if err := validateTier(tier); err != nil {
		return nil, err
	}
	if err := s.commissions.Create(ctx, utilityName, &tier); err != nil {
		return nil, err
	}
	return &tier, nil
}

func (s *CommissionService) Update(ctx context.Context, principal model.Principal, utilityName string, tier model.CommissionTier) error {
	if err := s.authorize(ctx, principal, tier.ClientID); err != nil {
		return err
	}
	if tier.ID == 0 {
		return fmt.Errorf("%w: tier id is required", ErrInvalidInput)
	}
	if err := validateTier(tier); err != nil {
		return err
	}
	return s.commissions.Update(ctx, utilityName, &tier)
}

func (s *CommissionService) Delete(ctx context.Context, principal model.Principal, clientID int64, utilityName string, id int64) error {
	if err := s.authorize(ctx, principal, clientID); err != nil {
		return err
	}
	return s.commissions.Delete(ctx, utilityName, id)
}

// authorize reuses the client visibility rules: admins always pass,
// account managers only for their own clients.
func (s *CommissionService) authorize(ctx context.Context, principal model.Principal, clientID int64) error {
	if principal.IsClientManager() {
		return ErrPermissionDenied
	}
	if principal.IsAdmin() {
		return nil
	}
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return err
	}
	if client.AccountManagerID != principal.UserID {
		return ErrPermissionDenied
	}
	return nil
}

func validateTier(tier model.CommissionTier) error {
	if tier.ClientID == 0 {
		return fmt.Errorf("%w: client is required", ErrInvalidInput)
	}
	if tier.EACTo.LessThan(tier.EACFrom) {
		return fmt.Errorf("%w: eac_to must not be below eac_from", ErrValidation)
	}
	return nil
}
