package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/energyportfolio/crm-service/internal/model"
	"github.com/energyportfolio/crm-service/internal/repository"
)

// ReportExcelGenerator renders the spreadsheet exports.
type ReportExcelGenerator interface {
	BulkQuote(rows []model.BulkQuoteRow) ([]byte, error)
	Commissions(rows []model.CommissionRollupRow) ([]byte, error)
	Duplicates(rows []model.DuplicateRow) ([]byte, error)
	Expired(rows []model.ExpiredRow) ([]byte, error)
	StatusReport(report *model.StatusReport) ([]byte, error)
}

// ContractPDFGenerator renders the contract summary document.
type ContractPDFGenerator interface {
	ContractSummary(detail model.ContractDetail) ([]byte, error)
}

type ExportResult struct {
	FileName string
	Content  []byte
}

type ExportService struct {
	reports *repository.ReportRepository
	excel   ReportExcelGenerator
	pdf     ContractPDFGenerator
	log     zerolog.Logger
}

func NewExportService(
	reports *repository.ReportRepository,
	excel ReportExcelGenerator,
	pdf ContractPDFGenerator,
	log zerolog.Logger,
) *ExportService {
	return &ExportService{
		reports: reports,
		excel:   excel,
		pdf:     pdf,
		log:     log,
	}
}

// BulkQuote builds the bulk quote template, optionally narrowed to one
// client. The per-unit percentage conversion happens in the generator.
func (s *ExportService) BulkQuote(ctx context.Context, principal model.Principal, clientID int64) (*ExportResult, error) {
	if !principal.CanExport() {
		return nil, ErrPermissionDenied
	}
	rows, err := s.reports.BulkQuoteRows(ctx, clientID)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.BulkQuote(rows)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: "bulk_quote_template.xlsx", Content: content}, nil
}

func (s *ExportService) Commissions(ctx context.Context, principal model.Principal) (*ExportResult, error) {
	if !principal.CanExport() {
		return nil, ErrPermissionDenied
	}
	rows, err := s.reports.CommissionRollups(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Commissions(rows)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: "commissions_by_client.xlsx", Content: content}, nil
}

// Duplicates lists every LIVE contract of the supplier that shares its
// meter point and end date with at least one other.
func (s *ExportService) Duplicates(ctx context.Context, principal model.Principal, supplierName string) (*ExportResult, error) {
	if !principal.CanExport() {
		return nil, ErrPermissionDenied
	}
	if supplierName == "" {
		return nil, fmt.Errorf("%w: supplier is required", ErrInvalidInput)
	}

	candidates, err := s.reports.DuplicateCandidates(ctx, supplierName)
	if err != nil {
		return nil, err
	}
	rows := GroupDuplicates(candidates)

	content, err := s.excel.Duplicates(rows)
	if err != nil {
		return nil, err
	}
	fileName := fmt.Sprintf("duplicate_contracts_%s.xlsx", sanitizeFileName(supplierName))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

func (s *ExportService) Expired(ctx context.Context, principal model.Principal) (*ExportResult, error) {
	if !principal.CanExport() {
		return nil, ErrPermissionDenied
	}
	rows, err := s.reports.ExpiredRows(ctx, dateOnly(time.Now().UTC()))
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Expired(rows)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: "expired_contracts.xlsx", Content: content}, nil
}

func (s *ExportService) StatusReport(ctx context.Context, principal model.Principal) (*ExportResult, error) {
	if !principal.CanExport() {
		return nil, ErrPermissionDenied
	}
	report, err := s.reports.StatusCounts(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	content, err := s.excel.StatusReport(report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: "all_reports.xlsx", Content: content}, nil
}

// ContractPDF renders the contract summary for any contract visible to
// the principal; visibility is checked the same way as the detail view.
func (s *ExportService) ContractPDF(ctx context.Context, principal model.Principal, detail model.ContractDetail) (*ExportResult, error) {
	content, err := s.pdf.ContractSummary(detail)
	if err != nil {
		return nil, err
	}
	fileName := fmt.Sprintf("contract_%d_%s.pdf", detail.ID, sanitizeFileName(detail.BusinessName))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

type duplicateKey struct {
	mpan    string
	endDate string
}

// GroupDuplicates keeps only the rows whose (mpan, contract end date)
// pair occurs more than once, stamps each member with the group size and
// its 1-based position by ascending id, and orders the result by client
// name then id.
func GroupDuplicates(candidates []model.DuplicateRow) []model.DuplicateRow {
	groups := make(map[duplicateKey][]model.DuplicateRow)
	for _, row := range candidates {
		key := duplicateKey{mpan: row.MpanMpr, endDate: formatDateKey(row.ContractEndDate)}
		groups[key] = append(groups[key], row)
	}

	result := make([]model.DuplicateRow, 0)
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
		for i := range members {
			members[i].RowNumber = i + 1
			members[i].DuplicatesCount = len(members)
		}
		result = append(result, members...)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ClientName != result[j].ClientName {
			return result[i].ClientName < result[j].ClientName
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func formatDateKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
