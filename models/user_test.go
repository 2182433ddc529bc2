package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr string
	}{
		{
			name: "valid request",
			req:  RegisterRequest{Username: "beatmaker_01", Email: "artist@example.com", Password: "supersecret"},
		},
		{
			name:    "username too short",
			req:     RegisterRequest{Username: "ab", Email: "a@b.co", Password: "supersecret"},
			wantErr: "username must be between 3 and 32 characters",
		},
		{
			name:    "username with invalid characters",
			req:     RegisterRequest{Username: "beat maker!", Email: "a@b.co", Password: "supersecret"},
			wantErr: "username can only contain letters, numbers, and underscores",
		},
		{
			name:    "invalid email",
			req:     RegisterRequest{Username: "beatmaker", Email: "not-an-email", Password: "supersecret"},
			wantErr: "invalid email format",
		},
		{
			name:    "password too short",
			req:     RegisterRequest{Username: "beatmaker", Email: "a@b.co", Password: "short"},
			wantErr: "password must be at least 8 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegisterRequestNormalizesEmail(t *testing.T) {
	req := RegisterRequest{Username: "beatmaker", Email: "  Artist@Example.COM ", Password: "supersecret"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "artist@example.com", req.Email)
}

func TestLoginRequestValidate(t *testing.T) {
	req := LoginRequest{Email: "", Password: "x"}
	assert.EqualError(t, req.Validate(), "email is required")

	req = LoginRequest{Email: "a@b.co", Password: ""}
	assert.EqualError(t, req.Validate(), "password is required")

	req = LoginRequest{Email: "A@B.co", Password: "pass"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "a@b.co", req.Email)
}

func TestUserIsAdminDerivedFromRole(t *testing.T) {
	admin := User{Role: RoleAdmin}
	user := User{Role: RoleUser}

	assert.True(t, admin.IsAdmin())
	assert.False(t, user.IsAdmin())

	// Public görünümde is_admin her zaman role'den türer
	assert.True(t, admin.Public().IsAdmin)
	assert.False(t, user.Public().IsAdmin)
}

func TestIdentityIsAdmin(t *testing.T) {
	assert.True(t, (&Identity{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Identity{Role: RoleUser}).IsAdmin())
}
