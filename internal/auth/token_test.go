package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energyportfolio/crm-service/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewManager("test-secret-key-for-jwt-signing", 12*time.Hour)
	user := model.User{
		ID:    uuid.New(),
		Email: "am@energyportfolio.co.uk",
		Role:  model.RoleAccountManager,
	}

	raw, err := manager.Issue(user, time.Now())
	require.NoError(t, err)

	principal, err := manager.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, user.Email, principal.Email)
	assert.Equal(t, model.RoleAccountManager, principal.Role)
	assert.True(t, principal.CanExport())
	assert.False(t, principal.IsClientManager())
}

func TestTokenExpired(t *testing.T) {
	manager := NewManager("test-secret-key-for-jwt-signing", time.Minute)
	raw, err := manager.Issue(model.User{ID: uuid.New(), Role: model.RoleAdmin}, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = manager.Parse(raw)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewManager("secret-one", time.Hour)
	parser := NewManager("secret-two", time.Hour)

	raw, err := issuer.Issue(model.User{ID: uuid.New(), Role: model.RoleAdmin}, time.Now())
	require.NoError(t, err)

	_, err = parser.Parse(raw)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
