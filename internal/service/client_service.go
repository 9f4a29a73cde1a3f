package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/model"
	"github.com/energyportfolio/crm-service/internal/repository"
	"github.com/energyportfolio/crm-service/internal/rules"
)

type ClientService struct {
	clients *repository.ClientRepository
	log     zerolog.Logger
}

func NewClientService(clients *repository.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, log: log}
}

func (s *ClientService) Create(ctx context.Context, principal model.Principal, client model.Client) (*model.Client, error) {
	if principal.IsClientManager() {
		return nil, ErrPermissionDenied
	}
	if client.Name == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if client.AccountManagerID == uuid.Nil {
		client.AccountManagerID = principal.UserID
	}

	client = rules.DeriveClient(nil, client, time.Now().UTC())
	// Decide the cascade before the insert assigns an id, while the rule
	// can still see the client as newly created.
	cascade := rules.CascadeToLost(nil, client)
	if err := s.clients.Create(ctx, &client); err != nil {
		return nil, err
	}

	if cascade {
		if err := s.cascade(ctx, client.ID); err != nil {
			return nil, err
		}
	}
	return &client, nil
}

// Update persists the client after running the lost-date derivation and,
// when the client flips to lost, cascades every contract to LOST.
func (s *ClientService) Update(ctx context.Context, principal model.Principal, client model.Client) (*model.Client, error) {
	if principal.IsClientManager() {
		return nil, ErrPermissionDenied
	}
	if client.ID == 0 {
		return nil, fmt.Errorf("%w: client id is required", ErrInvalidInput)
	}

	old, err := s.clients.Get(ctx, client.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// Row vanished under us; the derivation leaves the lost date
		// untouched and the subsequent UPDATE matches zero rows.
		old = nil
	}

	client = rules.DeriveClient(old, client, time.Now().UTC())
	if err := s.clients.Update(ctx, &client); err != nil {
		return nil, err
	}

	if rules.CascadeToLost(old, client) {
		if err := s.cascade(ctx, client.ID); err != nil {
			return nil, err
		}
	}
	return &client, nil
}

func (s *ClientService) cascade(ctx context.Context, clientID int64) error {
	affected, err := s.clients.SetContractsLost(ctx, clientID)
	if err != nil {
		return err
	}
	s.log.Info().Int64("client_id", clientID).Int64("contracts", affected).Msg("client lost, contracts cascaded to LOST")
	return nil
}

func (s *ClientService) Get(ctx context.Context, principal model.Principal, id int64) (*model.Client, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if principal.IsAccountManager() && client.AccountManagerID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	return client, nil
}

// List returns the clients visible to the principal: admins see all,
// account managers see their own book.
func (s *ClientService) List(ctx context.Context, principal model.Principal) ([]model.Client, error) {
	if principal.IsClientManager() {
		return nil, ErrPermissionDenied
	}
	if principal.IsAccountManager() {
		managerID := principal.UserID
		return s.clients.List(ctx, &managerID)
	}
	return s.clients.List(ctx, nil)
}
