package logger

import (
	"bytes"
	"testing"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("ROUNDS", config.ColorCyan, &buf)
	require.NoError(t, err)

	l.Info("round started")
	l.Warning("leaderboard slow")
	l.Error("mongo down")

	out := buf.String()
	assert.Contains(t, out, "[ROUNDS]")
	assert.Contains(t, out, "[INFO]"+config.LogColorReset+" round started")
	assert.Contains(t, out, "[WARNING]"+config.LogColorReset+" leaderboard slow")
	assert.Contains(t, out, "[ERROR]"+config.LogColorReset+" mongo down")
}

func TestNewRequiresWriter(t *testing.T) {
	_, err := New("APP", config.ColorGreen, nil)
	assert.ErrorIs(t, err, ErrNilWriter)
}
