package repository

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/model"
)

// ReportRepository serves the read side of the export generators. Every
// query is a plain filter/aggregate over the contract table.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// BulkQuoteRows returns the bulk quote template rows, optionally narrowed
// to one client.
func (r *ReportRepository) BulkQuoteRows(ctx context.Context, clientID int64) ([]model.BulkQuoteRow, error) {
	baseQuery := `
		SELECT
			ct.id,
			c.name AS client_name,
			ct.billing_address,
			ct.company_reg_number,
			ct.business_name,
			ct.site_address,
			ct.top_line,
			ct.mpan_mpr,
			s.supplier AS supplier_name,
			ct.contract_type,
			ct.contract_status,
			c.contract_term,
			ct.contract_end_date,
			ct.eac,
			ct.is_directors_approval,
			ct.commission_per_annum,
			ct.commission_per_unit,
			ct.vat_rate
		FROM client_contracts ct
		JOIN clients c ON c.id = ct.client_id
		JOIN suppliers s ON s.id = ct.supplier_id
	`
	args := []interface{}{}
	if clientID != 0 {
		baseQuery += " WHERE ct.client_id = ?"
		args = append(args, clientID)
	}
	baseQuery += " ORDER BY ct.id ASC"

	var rows []model.BulkQuoteRow
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CommissionRollups aggregates contracts per client, status, type,
// supplier, utility and meter point. Total value is total EAC times the
// per-unit commission rate.
func (r *ReportRepository) CommissionRollups(ctx context.Context) ([]model.CommissionRollupRow, error) {
	var rows []model.CommissionRollupRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.name AS client_name,
			ct.contract_status,
			ct.contract_type,
			c.originator,
			c.client_onboarded,
			s.supplier AS supplier_name,
			u.utility AS utility_name,
			ct.mpan_mpr,
			ct.commission_per_unit,
			ct.commission_per_annum,
			COALESCE(SUM(ct.eac), 0) AS total_eac,
			COUNT(ct.id) AS contract_count,
			COALESCE(SUM(ct.eac), 0) * COALESCE(ct.commission_per_unit, 0) AS total_value_per_contract
		FROM client_contracts ct
		JOIN clients c ON c.id = ct.client_id
		JOIN suppliers s ON s.id = ct.supplier_id
		JOIN utilities u ON u.id = ct.utility_id
		GROUP BY
			c.name, ct.contract_status, ct.contract_type, c.originator,
			c.client_onboarded, s.supplier, u.utility, ct.mpan_mpr,
			ct.commission_per_unit, ct.commission_per_annum
		ORDER BY c.name ASC, u.utility ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DuplicateCandidates returns LIVE contracts for the supplier, joined with
// names, ordered for stable grouping. The placeholder MPAN "11111" is a
// known data artefact and is excluded.
func (r *ReportRepository) DuplicateCandidates(ctx context.Context, supplierName string) ([]model.DuplicateRow, error) {
	var rows []model.DuplicateRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			ct.id,
			c.name AS client_name,
			ct.business_name,
			ct.mpan_mpr,
			ct.contract_start_date,
			ct.contract_end_date,
			s.supplier AS supplier_name
		FROM client_contracts ct
		JOIN clients c ON c.id = ct.client_id
		JOIN suppliers s ON s.id = ct.supplier_id
		WHERE ct.contract_status = 'LIVE'
			AND s.supplier = ?
			AND ct.mpan_mpr <> '11111'
		ORDER BY c.name ASC, ct.mpan_mpr ASC, ct.id ASC
	`, supplierName).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExpiredRows returns out-of-contract rows that expired before today and
// have no follow-on contract on the same meter point.
func (r *ReportRepository) ExpiredRows(ctx context.Context, today time.Time) ([]model.ExpiredRow, error) {
	var rows []model.ExpiredRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			ct.id,
			c.name AS client_name,
			ct.mpan_mpr,
			ct.contract_status,
			ct.contract_end_date,
			ct.is_ooc
		FROM client_contracts ct
		JOIN clients c ON c.id = ct.client_id
		WHERE ct.contract_end_date < ?
			AND ct.is_ooc = 'YES'
			AND ct.mpan_mpr NOT IN (
				SELECT mpan_mpr FROM client_contracts WHERE contract_end_date >= ?
			)
		ORDER BY c.name ASC, ct.id ASC
	`, today, today).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// statusFlagRow carries the three pivot flags of one contract.
type statusFlagRow struct {
	ContractStatus      model.ContractStatus
	IsDirectorsApproval model.YesNo
	IsOOC               model.YesNo
}

// StatusCounts builds the combined status / approval / OOC rollup. Lost
// and removed contracts are excluded from every count in the report.
func (r *ReportRepository) StatusCounts(ctx context.Context, now time.Time) (*model.StatusReport, error) {
	var rows []statusFlagRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT contract_status, is_directors_approval, is_ooc
		FROM client_contracts
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	report := buildStatusReport(rows, now)

	if err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM clients WHERE is_lost = FALSE
	`).Scan(&report.TotalLiveClients).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM clients WHERE is_lost = TRUE
	`).Scan(&report.TotalLostClients).Error; err != nil {
		return nil, err
	}

	return report, nil
}

// buildStatusReport pivots the flag rows into per-label counts. Contracts
// with status LOST or REMOVED do not count towards any label or the total.
func buildStatusReport(rows []statusFlagRow, now time.Time) *model.StatusReport {
	report := &model.StatusReport{GeneratedAt: now}
	status := map[string]int64{}
	approval := map[string]int64{}
	ooc := map[string]int64{}
	for _, row := range rows {
		if row.ContractStatus == model.ContractStatusLost || row.ContractStatus == model.ContractStatusRemoved {
			continue
		}
		status[string(row.ContractStatus)]++
		approval[string(row.IsDirectorsApproval)]++
		ooc[string(row.IsOOC)]++
		report.TotalContracts++
	}
	report.StatusCounts = sortedCounts(status)
	report.ApprovalCounts = sortedCounts(approval)
	report.OOCCounts = sortedCounts(ooc)
	return report
}

func sortedCounts(counts map[string]int64) []model.StatusCount {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	out := make([]model.StatusCount, 0, len(labels))
	for _, label := range labels {
		out = append(out, model.StatusCount{Label: label, Count: counts[label]})
	}
	return out
}
