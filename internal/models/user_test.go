package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name: "valid user",
			user: User{Username: "alice", PasswordHash: "hash"},
		},
		{
			name: "valid user with dots and dashes",
			user: User{Username: "alice.b-c_d", PasswordHash: "hash"},
		},
		{
			name:    "missing username",
			user:    User{PasswordHash: "hash"},
			wantErr: true,
		},
		{
			name:    "username too short",
			user:    User{Username: "ab", PasswordHash: "hash"},
			wantErr: true,
		},
		{
			name:    "username too long",
			user:    User{Username: strings.Repeat("a", 81), PasswordHash: "hash"},
			wantErr: true,
		},
		{
			name:    "username with spaces",
			user:    User{Username: "alice smith", PasswordHash: "hash"},
			wantErr: true,
		},
		{
			name:    "missing password hash",
			user:    User{Username: "alice"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidUsername(t *testing.T) {
	assert.True(t, ValidUsername("alice"))
	assert.True(t, ValidUsername("a.b-c_9"))
	assert.False(t, ValidUsername("ab"))
	assert.False(t, ValidUsername(strings.Repeat("x", 81)))
	assert.False(t, ValidUsername("has space"))
	assert.False(t, ValidUsername("bad!char"))
}

func TestUser_DisplayName(t *testing.T) {
	named := User{Username: "alice", FullName: "Alice Example"}
	assert.Equal(t, "Alice Example", named.DisplayName())

	unnamed := User{Username: "alice"}
	assert.Equal(t, "alice", unnamed.DisplayName())
}
