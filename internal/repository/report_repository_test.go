package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energyportfolio/crm-service/internal/model"
)

func TestBuildStatusReportExcludesLostAndRemoved(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	rows := []statusFlagRow{
		{ContractStatus: model.ContractStatusLive, IsDirectorsApproval: model.No, IsOOC: model.No},
		{ContractStatus: model.ContractStatusLive, IsDirectorsApproval: model.Yes, IsOOC: model.Yes},
		{ContractStatus: model.ContractStatusNew, IsDirectorsApproval: model.No, IsOOC: model.No},
		{ContractStatus: model.ContractStatusLost, IsDirectorsApproval: model.Yes, IsOOC: model.Yes},
		{ContractStatus: model.ContractStatusRemoved, IsDirectorsApproval: model.No, IsOOC: model.Yes},
	}

	report := buildStatusReport(rows, now)

	assert.Equal(t, int64(3), report.TotalContracts)
	require.Len(t, report.StatusCounts, 2)
	assert.Equal(t, model.StatusCount{Label: "LIVE", Count: 2}, report.StatusCounts[0])
	assert.Equal(t, model.StatusCount{Label: "NEW", Count: 1}, report.StatusCounts[1])

	for _, row := range report.StatusCounts {
		assert.NotEqual(t, "LOST", row.Label)
		assert.NotEqual(t, "REMOVED", row.Label)
	}

	// The lost contract was approved and OOC; neither flag may leak into
	// the approval or OOC sheets.
	require.Len(t, report.ApprovalCounts, 2)
	assert.Equal(t, model.StatusCount{Label: "NO", Count: 2}, report.ApprovalCounts[0])
	assert.Equal(t, model.StatusCount{Label: "YES", Count: 1}, report.ApprovalCounts[1])

	require.Len(t, report.OOCCounts, 2)
	assert.Equal(t, model.StatusCount{Label: "NO", Count: 2}, report.OOCCounts[0])
	assert.Equal(t, model.StatusCount{Label: "YES", Count: 1}, report.OOCCounts[1])

	assert.Equal(t, now, report.GeneratedAt)
}

func TestBuildStatusReportEmpty(t *testing.T) {
	report := buildStatusReport(nil, time.Now().UTC())

	assert.Zero(t, report.TotalContracts)
	assert.Empty(t, report.StatusCounts)
	assert.Empty(t, report.ApprovalCounts)
	assert.Empty(t, report.OOCCounts)
}
