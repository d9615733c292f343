package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	h := NewPasswordHasher(4)

	hash, err := h.Hash("hunter2!")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2!", hash)

	assert.NoError(t, h.Compare(hash, "hunter2!"))
	assert.Error(t, h.Compare(hash, "hunter3!"))
}

func TestPasswordHasherClampsCost(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default instead of failing.
	h := NewPasswordHasher(99)
	hash, err := h.Hash("pw")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "pw"))
}

func TestTokenManagerRoundTrip(t *testing.T) {
	m := NewTokenManager("secret")

	token, err := m.Generate("user-42")
	require.NoError(t, err)

	sub, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)
}

func TestTokenManagerRejectsForeignTokens(t *testing.T) {
	m := NewTokenManager("secret")
	other := NewTokenManager("other-secret")

	token, err := other.Generate("user-42")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)

	_, err = m.Validate("not.a.token")
	assert.Error(t, err)
}
