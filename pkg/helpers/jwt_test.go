package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueVerify(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("test-secret")

	token, err := m.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", uid)
}

func TestTokenManager_Verify_Errors(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("test-secret")
	good, err := m.Issue("user-123")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty token", token: "", wantErr: ErrTokenMissing},
		{name: "garbage token", token: "not.a.jwt", wantErr: ErrTokenInvalid},
		{name: "tampered token", token: good + "x", wantErr: ErrTokenInvalid},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := m.Verify(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTokenManager_Verify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenManager("secret-a").Issue("user-123")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
