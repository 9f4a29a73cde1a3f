package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energyportfolio/crm-service/internal/model"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestGroupDuplicatesListsAllGroupMembers(t *testing.T) {
	end := datePtr(2024, time.June, 1)
	candidates := []model.DuplicateRow{
		{ID: 10, ClientName: "Acme", BusinessName: "Acme HQ", MpanMpr: "12345", ContractEndDate: end},
		{ID: 12, ClientName: "Acme", BusinessName: "Acme HQ", MpanMpr: "12345", ContractEndDate: end},
		{ID: 11, ClientName: "Acme", BusinessName: "Acme Depot", MpanMpr: "99999", ContractEndDate: end},
	}

	rows := GroupDuplicates(candidates)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(10), rows[0].ID)
	assert.Equal(t, 1, rows[0].RowNumber)
	assert.Equal(t, 2, rows[0].DuplicatesCount)
	assert.Equal(t, int64(12), rows[1].ID)
	assert.Equal(t, 2, rows[1].RowNumber)
	assert.Equal(t, 2, rows[1].DuplicatesCount)
}

func TestGroupDuplicatesSplitsOnEndDate(t *testing.T) {
	candidates := []model.DuplicateRow{
		{ID: 1, ClientName: "Acme", MpanMpr: "12345", ContractEndDate: datePtr(2024, time.June, 1)},
		{ID: 2, ClientName: "Acme", MpanMpr: "12345", ContractEndDate: datePtr(2025, time.June, 1)},
	}

	rows := GroupDuplicates(candidates)

	assert.Empty(t, rows, "same mpan with different end dates is not a duplicate")
}

func TestGroupDuplicatesOrdersByClientThenID(t *testing.T) {
	endA := datePtr(2024, time.June, 1)
	endB := datePtr(2024, time.July, 1)
	candidates := []model.DuplicateRow{
		{ID: 30, ClientName: "Zenith", MpanMpr: "222", ContractEndDate: endB},
		{ID: 31, ClientName: "Zenith", MpanMpr: "222", ContractEndDate: endB},
		{ID: 20, ClientName: "Acme", MpanMpr: "111", ContractEndDate: endA},
		{ID: 21, ClientName: "Acme", MpanMpr: "111", ContractEndDate: endA},
	}

	rows := GroupDuplicates(candidates)

	require.Len(t, rows, 4)
	assert.Equal(t, []int64{20, 21, 30, 31}, []int64{rows[0].ID, rows[1].ID, rows[2].ID, rows[3].ID})
}

func TestGroupDuplicatesNilEndDatesGroupTogether(t *testing.T) {
	candidates := []model.DuplicateRow{
		{ID: 1, ClientName: "Acme", MpanMpr: "555"},
		{ID: 2, ClientName: "Acme", MpanMpr: "555"},
	}

	rows := GroupDuplicates(candidates)

	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].DuplicatesCount)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "British-Gas", sanitizeFileName("British Gas"))
	assert.Equal(t, "EDF_Energy", sanitizeFileName("EDF_Energy"))
	assert.Equal(t, "npower", sanitizeFileName(" npower "))
}
