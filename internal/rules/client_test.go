package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energyportfolio/crm-service/internal/model"
)

var testNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func TestDeriveClientLostDate(t *testing.T) {
	today := dateOnly(testNow)

	t.Run("new client not lost", func(t *testing.T) {
		next := DeriveClient(nil, model.Client{Name: "Acme"}, testNow)
		assert.Nil(t, next.ClientLostDate)
	})

	t.Run("new client already lost", func(t *testing.T) {
		next := DeriveClient(nil, model.Client{Name: "Acme", IsLost: true}, testNow)
		require.NotNil(t, next.ClientLostDate)
		assert.Equal(t, today, *next.ClientLostDate)
	})

	t.Run("flip to lost stamps today", func(t *testing.T) {
		old := model.Client{ID: 7, Name: "Acme"}
		next := DeriveClient(&old, model.Client{ID: 7, Name: "Acme", IsLost: true}, testNow)
		require.NotNil(t, next.ClientLostDate)
		assert.Equal(t, today, *next.ClientLostDate)
	})

	t.Run("flip back clears the date", func(t *testing.T) {
		lost := dateOnly(testNow.AddDate(0, -1, 0))
		old := model.Client{ID: 7, IsLost: true, ClientLostDate: &lost}
		next := DeriveClient(&old, model.Client{ID: 7, IsLost: false}, testNow)
		assert.Nil(t, next.ClientLostDate)
	})

	t.Run("no change keeps the persisted date", func(t *testing.T) {
		lost := dateOnly(testNow.AddDate(0, -1, 0))
		old := model.Client{ID: 7, IsLost: true, ClientLostDate: &lost}
		next := DeriveClient(&old, model.Client{ID: 7, IsLost: true}, testNow)
		require.NotNil(t, next.ClientLostDate)
		assert.Equal(t, lost, *next.ClientLostDate)
	})

	t.Run("persisted row missing leaves date untouched", func(t *testing.T) {
		// Existing id but nil old models the concurrent-deletion edge.
		next := DeriveClient(nil, model.Client{ID: 99, IsLost: true}, testNow)
		assert.Nil(t, next.ClientLostDate)
	})
}

func TestDeriveClientRoundTrip(t *testing.T) {
	client := DeriveClient(nil, model.Client{Name: "Acme"}, testNow)
	assert.Nil(t, client.ClientLostDate)

	client.ID = 1
	old := client
	client.IsLost = true
	client = DeriveClient(&old, client, testNow)
	require.NotNil(t, client.ClientLostDate)
	assert.Equal(t, dateOnly(testNow), *client.ClientLostDate)

	old = client
	client.IsLost = false
	client = DeriveClient(&old, client, testNow)
	assert.Nil(t, client.ClientLostDate)
}

func TestCascadeToLost(t *testing.T) {
	tests := []struct {
		name string
		old  *model.Client
		next model.Client
		want bool
	}{
		{"not lost", nil, model.Client{}, false},
		{"created lost", nil, model.Client{IsLost: true}, true},
		{"flip to lost", &model.Client{ID: 1}, model.Client{ID: 1, IsLost: true}, true},
		{"already lost resave", &model.Client{ID: 1, IsLost: true}, model.Client{ID: 1, IsLost: true}, false},
		{"flip back", &model.Client{ID: 1, IsLost: true}, model.Client{ID: 1}, false},
		{"missing old row with existing id", nil, model.Client{ID: 1, IsLost: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CascadeToLost(tt.old, tt.next))
		})
	}
}
