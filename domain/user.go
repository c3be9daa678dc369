package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3

	usernamePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minUsernameLength = 3
	maxUsernameLength = 20

	passwordHashCost = 12
)

var (
	usernameRegex = regexp.MustCompile(usernamePattern)

	ErrUsernameTooShort   = errors.New("username too short")
	ErrUsernameTooLong    = errors.New("username too long")
	ErrInvalidUsername    = errors.New("invalid username format")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// BestRun is a player's fastest win on one difficulty.
type BestRun struct {
	ElapsedSeconds int64 `bson:"elapsedSeconds"`
	Steps          int   `bson:"steps"`
}

// beats reports whether b is faster than o, fewer steps breaking ties.
func (b BestRun) beats(o BestRun) bool {
	if b.ElapsedSeconds != o.ElapsedSeconds {
		return b.ElapsedSeconds < o.ElapsedSeconds
	}
	return b.Steps < o.Steps
}

// PlayerStats summarises every finished round of a player.
type PlayerStats struct {
	RoundsPlayed int                `bson:"roundsPlayed"`
	RoundsWon    int                `bson:"roundsWon"`
	Best         map[string]BestRun `bson:"best"` // Keyed by difficulty
}

// User is a registered player.
type User struct {
	ID           uuid.UUID   `bson:"_id"`
	Username     string      `bson:"username"`
	PasswordHash string      `bson:"passwordHash"`
	Character    string      `bson:"character"` // Character of the last finished round
	Stats        PlayerStats `bson:"stats"`
	CreatedAt    time.Time   `bson:"createdAt"`
}

// UserConfig holds parameters for creating a User.
type UserConfig struct {
	ID            uuid.UUID
	Username      string
	PlainPassword string
}

// NewUser validates the credentials and returns a user with a hashed password
// and empty stats.
func NewUser(config UserConfig) (*User, error) {
	if err := validateUsername(config.Username); err != nil {
		return nil, err
	}
	if err := validatePassword(config.PlainPassword, config.Username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(config.PlainPassword), passwordHashCost)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           config.ID,
		Username:     config.Username,
		PasswordHash: string(hash),
		Stats:        PlayerStats{Best: map[string]BestRun{}},
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// VerifyPassword verifies if the given password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordRound folds a finished round into the player's stats and reports
// whether it set a new best for its difficulty.
func (u *User) RecordRound(r *RoundResult) bool {
	u.Character = r.Character
	u.Stats.RoundsPlayed++
	if r.Status != game.StatusWon.String() {
		return false
	}
	u.Stats.RoundsWon++

	if u.Stats.Best == nil {
		u.Stats.Best = map[string]BestRun{}
	}
	run := BestRun{ElapsedSeconds: r.ElapsedSeconds, Steps: r.Steps}
	if prev, ok := u.Stats.Best[r.Difficulty]; ok && !run.beats(prev) {
		return false
	}
	u.Stats.Best[r.Difficulty] = run
	return true
}

func validateUsername(username string) error {
	switch {
	case len(username) < minUsernameLength:
		return ErrUsernameTooShort
	case len(username) > maxUsernameLength:
		return ErrUsernameTooLong
	case !usernameRegex.MatchString(username):
		return ErrInvalidUsername
	}
	return nil
}

// validatePassword scores the password with the username as a known input,
// so passwords built around the username rate lower.
func validatePassword(password, username string) error {
	if zxcvbn.PasswordStrength(password, []string{username}).Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}
