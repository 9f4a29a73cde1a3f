package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/mail"
	"github.com/energyportfolio/crm-service/internal/model"
	"github.com/energyportfolio/crm-service/internal/repository"
)

// MeterReadingMailer forwards a submitted reading. Satisfied by
// mail.Mailer.
type MeterReadingMailer interface {
	SendMeterReading(reading mail.MeterReading, supplierMeterEmail *string, attachment *mail.Attachment) error
}

// MeterReadingInput is what the client manager submits for one of their
// contracts.
type MeterReadingInput struct {
	ContractID  int64
	Readings    []mail.ReadingValue
	ReadingDate string
	Attachment  *mail.Attachment
}

type MeterReadingService struct {
	contracts *repository.ContractRepository
	utilities *repository.UtilityRepository
	mailer    MeterReadingMailer
	log       zerolog.Logger
}

func NewMeterReadingService(
	contracts *repository.ContractRepository,
	utilities *repository.UtilityRepository,
	mailer MeterReadingMailer,
	log zerolog.Logger,
) *MeterReadingService {
	return &MeterReadingService{contracts: contracts, utilities: utilities, mailer: mailer, log: log}
}

// Submit emails the reading to the meter-reads inbox. Only the client
// manager assigned to the contract may submit.
func (s *MeterReadingService) Submit(ctx context.Context, principal model.Principal, input MeterReadingInput) error {
	if !principal.IsClientManager() {
		return ErrPermissionDenied
	}
	if len(input.Readings) == 0 {
		return fmt.Errorf("%w: at least one reading is required", ErrInvalidInput)
	}
	if input.ReadingDate == "" {
		return fmt.Errorf("%w: reading date is required", ErrInvalidInput)
	}

	detail, err := s.contracts.GetDetail(ctx, input.ContractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if detail.ClientManagerID == nil || *detail.ClientManagerID != principal.UserID {
		return ErrPermissionDenied
	}

	supplier, err := s.utilities.GetSupplier(ctx, detail.SupplierID)
	if err != nil {
		return err
	}

	reading := mail.MeterReading{
		FromEmail:         principal.Email,
		ClientName:        detail.ClientName,
		SiteAddress:       deref(detail.SiteAddress),
		MpanMpr:           detail.MpanMpr,
		MeterSerialNumber: deref(detail.MeterSerialNumber),
		UtilityName:       detail.UtilityName,
		SupplierName:      detail.SupplierName,
		Readings:          input.Readings,
		ReadingDate:       input.ReadingDate,
	}
	return s.mailer.SendMeterReading(reading, supplier.MeterEmail, input.Attachment)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
