package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     int
		wantCost int
		wantErr  bool
	}{
		{name: "default cost", cost: 0, wantCost: 12},
		{name: "valid cost", cost: 10, wantCost: 10},
		{name: "cost too low", cost: 9, wantErr: true},
		{name: "cost too high", cost: 15, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewPasswordConfig(AuthConfig{BcryptCost: tt.cost})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg, err := NewPasswordConfig(AuthConfig{BcryptCost: 10})
	require.NoError(t, err)

	hash, err := cfg.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, cfg.VerifyPassword("correct horse", hash))
	assert.False(t, cfg.VerifyPassword("wrong", hash))
}

func TestVerifyPassword_Pepper(t *testing.T) {
	peppered, err := NewPasswordConfig(AuthConfig{BcryptCost: 10, Pepper: "spice"})
	require.NoError(t, err)
	plain, err := NewPasswordConfig(AuthConfig{BcryptCost: 10})
	require.NoError(t, err)

	hash, err := peppered.HashPassword("secret")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("secret", hash))
	assert.False(t, plain.VerifyPassword("secret", hash))
}
