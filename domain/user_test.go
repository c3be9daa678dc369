package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "purple-Otter-climbs-87-hills"

func TestNewUser(t *testing.T) {
	id := uuid.New()
	user, err := NewUser(UserConfig{ID: id, Username: "naeun_mom", PlainPassword: strongPassword})
	require.NoError(t, err)

	assert.Equal(t, id, user.ID)
	assert.Equal(t, "naeun_mom", user.Username)
	assert.NotEqual(t, strongPassword, user.PasswordHash)
	assert.True(t, user.VerifyPassword(strongPassword))
	assert.False(t, user.VerifyPassword("wrong"))
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"short username", "ab", strongPassword, ErrUsernameTooShort},
		{"long username", "abcdefghijklmnopqrstu", strongPassword, ErrUsernameTooLong},
		{"bad characters", "doha dad", strongPassword, ErrInvalidUsername},
		{"weak password", "doha_dad", "password", ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(UserConfig{ID: uuid.New(), Username: tt.username, PlainPassword: tt.password})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewUserStartsWithEmptyStats(t *testing.T) {
	user, err := NewUser(UserConfig{ID: uuid.New(), Username: "doha_dad", PlainPassword: strongPassword})
	require.NoError(t, err)

	assert.Zero(t, user.Stats.RoundsPlayed)
	assert.NotNil(t, user.Stats.Best)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestRecordRound(t *testing.T) {
	user := &User{ID: uuid.New(), Username: "naeun_mom"}

	assert.False(t, user.RecordRound(&RoundResult{Difficulty: "easy", Character: "doha", Status: "lost", ElapsedSeconds: 5, Steps: 4}))
	assert.Equal(t, "doha", user.Character)
	assert.Equal(t, 1, user.Stats.RoundsPlayed)
	assert.Zero(t, user.Stats.RoundsWon)

	tests := []struct {
		name    string
		elapsed int64
		steps   int
		best    bool
	}{
		{"first win", 40, 20, true},
		{"slower", 45, 10, false},
		{"same time fewer steps", 40, 18, true},
		{"same time more steps", 40, 19, false},
		{"faster", 30, 30, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := user.RecordRound(&RoundResult{Difficulty: "easy", Character: "naeun", Status: "won", ElapsedSeconds: tt.elapsed, Steps: tt.steps})
			assert.Equal(t, tt.best, got)
		})
	}

	assert.Equal(t, "naeun", user.Character)
	assert.Equal(t, 6, user.Stats.RoundsPlayed)
	assert.Equal(t, 5, user.Stats.RoundsWon)
	assert.Equal(t, BestRun{ElapsedSeconds: 30, Steps: 30}, user.Stats.Best["easy"])
	_, ok := user.Stats.Best["hard"]
	assert.False(t, ok)
}
