package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/model"
	"github.com/energyportfolio/crm-service/internal/repository"
)

type ObjectionService struct {
	objections *repository.ObjectionRepository
	log        zerolog.Logger
}

func NewObjectionService(objections *repository.ObjectionRepository, log zerolog.Logger) *ObjectionService {
	return &ObjectionService{objections: objections, log: log}
}

func (s *ObjectionService) Get(ctx context.Context, principal model.Principal, id int64) (*model.Objection, error) {
	if principal.IsClientManager() {
		return nil, ErrPermissionDenied
	}
	objection, err := s.objections.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return objection, nil
}

func (s *ObjectionService) Create(ctx context.Context, principal model.Principal, objection model.Objection) (*model.Objection, error) {
	if principal.IsClientManager() {
		return nil, ErrPermissionDenied
	}
	if err := validateObjection(objection); err != nil {
		return nil, err
	}
	if objection.ObjectionStatus == "" {
		objection.ObjectionStatus = model.ObjectionStatusOutstanding
	}
	if err := s.objections.Create(ctx, &objection); err != nil {
		return nil, err
	}
	return &objection, nil
}

func (s *ObjectionService) Update(ctx context.Context, principal model.Principal, objection model.Objection) (*model.Objection, error) {
	if principal.IsClientManager() {
		return nil, ErrPermissionDenied
	}
	if objection.ID == 0 {
		return nil, fmt.Errorf("%w: objection id is required", ErrInvalidInput)
	}
	if err := validateObjection(objection); err != nil {
		return nil, err
	}
	if err := s.objections.Update(ctx, &objection); err != nil {
		return nil, err
	}
	return &objection, nil
}

// List returns objections with joined names, optionally narrowed to one
// status (the board views filter on OUTSTANDING).
func (s *ObjectionService) List(ctx context.Context, principal model.Principal, status model.ObjectionStatus) ([]model.ObjectionDetail, error) {
	if principal.IsClientManager() {
		return nil, ErrPermissionDenied
	}
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: invalid objection status %q", ErrInvalidInput, status)
	}
	return s.objections.List(ctx, status)
}

func validateObjection(objection model.Objection) error {
	if objection.ClientID == 0 {
		return fmt.Errorf("%w: client is required", ErrInvalidInput)
	}
	if objection.BusinessName == "" {
		return fmt.Errorf("%w: business name is required", ErrInvalidInput)
	}
	if objection.MpanMpr == "" {
		return fmt.Errorf("%w: mpan_mpr is required", ErrInvalidInput)
	}
	if objection.NewSupplierID == 0 || objection.ObjectingSupplierID == 0 {
		return fmt.Errorf("%w: both suppliers are required", ErrInvalidInput)
	}
	if objection.ObjectionStatus != "" && !objection.ObjectionStatus.Valid() {
		return fmt.Errorf("%w: invalid objection status %q", ErrInvalidInput, objection.ObjectionStatus)
	}
	return nil
}
