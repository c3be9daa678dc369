package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifficultyByName(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"easy", 5, 5},
		{"Medium", 10, 10},
		{" hard ", 15, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := DifficultyByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.rows, d.Rows)
			assert.Equal(t, tt.cols, d.Cols)
		})
	}

	_, err := DifficultyByName("nightmare")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestDifficultiesAreOrdered(t *testing.T) {
	list := Difficulties()
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.Greater(t, list[i].Rows*list[i].Cols, list[i-1].Rows*list[i-1].Cols)
		assert.Greater(t, list[i].Level, list[i-1].Level)
	}
}

func TestCharacterByID(t *testing.T) {
	c, err := CharacterByID("doha")
	require.NoError(t, err)
	assert.Equal(t, "베베핀", c.Target)

	_, err = CharacterByID("pikachu")
	assert.ErrorIs(t, err, ErrUnknownCharacter)
}

func TestGetEnvDefaults(t *testing.T) {
	t.Setenv("VINOM_TEST_INT", "12")
	assert.Equal(t, 12, getEnvAsIntWithDefault("VINOM_TEST_INT", 3))

	t.Setenv("VINOM_TEST_INT", "twelve")
	assert.Equal(t, 3, getEnvAsIntWithDefault("VINOM_TEST_INT", 3))

	assert.Equal(t, 7, getEnvAsIntWithDefault("VINOM_TEST_UNSET", 7))
	assert.Equal(t, "fallback", getEnvWithDefault("VINOM_TEST_UNSET", "fallback"))
}
