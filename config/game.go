package config

import (
	"errors"
	"strings"
)

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownCharacter  = errors.New("unknown character")
)

// Difficulty is one of the fixed grid-size presets.
type Difficulty struct {
	Name  string
	Rows  int
	Cols  int
	Level int // Quiz level, 1 (easiest) to 3
}

// Character is a selectable player avatar together with the goal it chases.
type Character struct {
	ID     string
	Name   string
	Target string
}

var (
	difficulties = map[string]Difficulty{
		"easy":   {Name: "easy", Rows: 5, Cols: 5, Level: 1},
		"medium": {Name: "medium", Rows: 10, Cols: 10, Level: 2},
		"hard":   {Name: "hard", Rows: 15, Cols: 15, Level: 3},
	}

	characters = map[string]Character{
		"naeun": {ID: "naeun", Name: "나은", Target: "빛나핑"},
		"doha":  {ID: "doha", Name: "도하", Target: "베베핀"},
	}
)

// DifficultyByName looks up a preset by its name (easy, medium, hard).
func DifficultyByName(name string) (Difficulty, error) {
	d, ok := difficulties[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Difficulty{}, ErrUnknownDifficulty
	}
	return d, nil
}

// Difficulties lists every preset from smallest to largest grid.
func Difficulties() []Difficulty {
	return []Difficulty{difficulties["easy"], difficulties["medium"], difficulties["hard"]}
}

// CharacterByID looks up a selectable character.
func CharacterByID(id string) (Character, error) {
	c, ok := characters[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Character{}, ErrUnknownCharacter
	}
	return c, nil
}
