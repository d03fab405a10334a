package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration_Validate(t *testing.T) {
	tests := []struct {
		name    string
		reg     Registration
		wantErr bool
	}{
		{
			name: "valid without last name",
			reg:  Registration{Identity: "a@x.com", Name: DisplayName{First: "Ann"}, Secret: "secret1"},
		},
		{
			name: "valid with last name",
			reg:  Registration{Identity: "ann@example.com", Name: DisplayName{First: "Ann", Last: "Lee"}, Secret: "secret1"},
		},
		{
			name:    "short identity",
			reg:     Registration{Identity: "a@x", Name: DisplayName{First: "Ann"}, Secret: "secret1"},
			wantErr: true,
		},
		{
			name:    "identity with display name",
			reg:     Registration{Identity: "Ann <a@x.com>", Name: DisplayName{First: "Ann"}, Secret: "secret1"},
			wantErr: true,
		},
		{
			name:    "short first name",
			reg:     Registration{Identity: "a@x.com", Name: DisplayName{First: "An"}, Secret: "secret1"},
			wantErr: true,
		},
		{
			name:    "short last name",
			reg:     Registration{Identity: "a@x.com", Name: DisplayName{First: "Ann", Last: "L"}, Secret: "secret1"},
			wantErr: true,
		},
		{
			name:    "short secret",
			reg:     Registration{Identity: "a@x.com", Name: DisplayName{First: "Ann"}, Secret: "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAccount_Summary_OmitsSecrets(t *testing.T) {
	acc := Account{
		Identity:    "a@x.com",
		Name:        DisplayName{First: "Ann"},
		SecretHash:  []byte("hash"),
		PendingCode: &PendingCode{Code: "123456"},
	}

	s := acc.Summary()
	assert.Equal(t, "a@x.com", s.Identity)
	assert.Equal(t, "Ann", s.Name.First)
	assert.False(t, s.Verified)
}

func TestPendingCode_Expired(t *testing.T) {
	now := time.Now()
	c := PendingCode{Code: "123456", ExpiresAt: now}

	assert.False(t, c.Expired(now.Add(-time.Millisecond)))
	assert.True(t, c.Expired(now))
	assert.True(t, c.Expired(now.Add(time.Millisecond)))
}
