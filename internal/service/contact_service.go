package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/model"
	"github.com/energyportfolio/crm-service/internal/repository"
)

type ContactService struct {
	contacts *repository.ContactRepository
	log      zerolog.Logger
}

func NewContactService(contacts *repository.ContactRepository, log zerolog.Logger) *ContactService {
	return &ContactService{contacts: contacts, log: log}
}

func (s *ContactService) Get(ctx context.Context, id int64) (*model.Contact, error) {
	contact, err := s.contacts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) Create(ctx context.Context, principal model.Principal, contact model.Contact) (*model.Contact, error) {
	if principal.IsClientManager() {
		return nil, ErrPermissionDenied
	}
	if err := s.validate(ctx, contact); err != nil {
		return nil, err
	}
	if err := s.contacts.Create(ctx, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactService) Update(ctx context.Context, principal model.Principal, contact model.Contact) (*model.Contact, error) {
	if principal.IsClientManager() {
		return nil, ErrPermissionDenied
	}
	if contact.ID == 0 {
		return nil, fmt.Errorf("%w: contact id is required", ErrInvalidInput)
	}
	if err := s.validate(ctx, contact); err != nil {
		return nil, err
	}
	if err := s.contacts.Update(ctx, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactService) Delete(ctx context.Context, principal model.Principal, id int64) error {
	if principal.IsClientManager() {
		return ErrPermissionDenied
	}
	return s.contacts.Delete(ctx, id)
}

func (s *ContactService) ListByClient(ctx context.Context, clientID int64) ([]model.ContactDetail, error) {
	return s.contacts.ListByClient(ctx, clientID)
}

func (s *ContactService) CreateJobTitle(ctx context.Context, principal model.Principal, title string) (*model.JobTitle, error) {
	if principal.IsClientManager() {
		return nil, ErrPermissionDenied
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	jobTitle := model.JobTitle{Title: title}
	if err := s.contacts.CreateJobTitle(ctx, &jobTitle); err != nil {
		return nil, err
	}
	return &jobTitle, nil
}

func (s *ContactService) ListJobTitles(ctx context.Context) ([]model.JobTitle, error) {
	return s.contacts.ListJobTitles(ctx)
}

// validate enforces the one-job-title-per-name rule: the same contact name
// must not appear elsewhere with a different job title.
func (s *ContactService) validate(ctx context.Context, contact model.Contact) error {
	if contact.ClientID == 0 {
		return fmt.Errorf("%w: client is required", ErrInvalidInput)
	}
	if contact.Name == "" {
		return fmt.Errorf("%w: contact name is required", ErrInvalidInput)
	}
	if contact.Email != "" {
		if _, err := mail.ParseAddress(contact.Email); err != nil {
			return fmt.Errorf("%w: invalid email address", ErrValidation)
		}
	}

	conflict, err := s.contacts.NameHasOtherJobTitle(ctx, contact.Name, contact.JobTitleID, contact.ID)
	if err != nil {
		return err
	}
	if conflict {
		return fmt.Errorf("%w: contact %q already exists with a different job title", ErrValidation, contact.Name)
	}
	return nil
}
