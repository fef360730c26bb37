package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:   "test-secret",
		Issuer:   "tryout-admin",
		Audience: "tryout-admins",
		TTL:      time.Hour,
	})
	require.NoError(t, err)
	return m
}

func TestGenerateAndVerify(t *testing.T) {
	m := testManager(t)

	signed, jti, expiresAt, err := m.Generate(42, "super_admin")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.NotEmpty(t, jti)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AdminID)
	assert.Equal(t, "super_admin", claims.Role)
	assert.Equal(t, jti, claims.ID)
	assert.True(t, claims.IsSuperAdmin())
	assert.True(t, claims.IsAdmin())
}

func TestVerify_RejectsTamperedToken(t *testing.T) {
	m := testManager(t)

	signed, _, _, err := m.Generate(42, "admin")
	require.NoError(t, err)

	_, err = m.Verify(signed + "x")
	assert.Error(t, err)
}

func TestVerify_RejectsForeignSecret(t *testing.T) {
	m := testManager(t)

	other, err := NewManager(Config{Secret: "different-secret", Issuer: "tryout-admin", Audience: "tryout-admins", TTL: time.Hour})
	require.NoError(t, err)

	signed, _, _, err := other.Generate(42, "admin")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.Error(t, err)
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager(Config{})
	assert.Error(t, err)
}

func TestClaims_Roles(t *testing.T) {
	admin := &Claims{Role: "admin"}
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsSuperAdmin())

	unknown := &Claims{Role: "agent"}
	assert.False(t, unknown.IsAdmin())
}
