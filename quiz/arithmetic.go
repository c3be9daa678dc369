// Package quiz generates the short arithmetic challenges shown on quiz cells.
package quiz

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
)

const (
	defaultOptionCount = 3

	LevelEasy   = 1
	LevelMedium = 2
	LevelHard   = 3
)

var _ game.QuizBank = &Arithmetic{}

// Arithmetic hands out addition and subtraction questions whose operand range
// grows with the level. Results are never negative.
type Arithmetic struct {
	level   int
	options int
	rng     *rand.Rand
	sync.Mutex
}

// NewArithmetic creates a question source for the given level. A nil rng is
// seeded from the clock.
func NewArithmetic(level int, rng *rand.Rand) *Arithmetic {
	if level < LevelEasy {
		level = LevelEasy
	}
	if level > LevelHard {
		level = LevelHard
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Arithmetic{
		level:   level,
		options: defaultOptionCount,
		rng:     rng,
	}
}

// Next implements game.QuizBank.
func (a *Arithmetic) Next() game.Question {
	a.Lock()
	defer a.Unlock()

	x, y, op, answer := a.operands()
	options, correct := a.shuffleOptions(answer)
	return game.Question{
		Prompt:  fmt.Sprintf("%d %s %d = ?", x, op, y),
		Options: options,
		Answer:  correct,
	}
}

// operands picks an operation and operands for the current level.
func (a *Arithmetic) operands() (int, int, string, int) {
	var limit int
	switch a.level {
	case LevelEasy:
		limit = 5
	case LevelMedium:
		limit = 10
	default:
		limit = 20
	}

	x := 1 + a.rng.Intn(limit)
	y := 1 + a.rng.Intn(limit)
	if a.level == LevelEasy || a.rng.Intn(2) == 0 {
		return x, y, "+", x + y
	}
	if x < y {
		x, y = y, x
	}
	return x, y, "-", x - y
}

// shuffleOptions builds distinct, non-negative options around answer and
// returns them with the index of the correct one.
func (a *Arithmetic) shuffleOptions(answer int) ([]string, int) {
	values := []int{answer}
	seen := map[int]bool{answer: true}
	for spread := 1; len(values) < a.options; spread++ {
		for _, candidate := range []int{answer + spread, answer - spread} {
			if candidate >= 0 && !seen[candidate] && len(values) < a.options {
				seen[candidate] = true
				values = append(values, candidate)
			}
		}
	}

	a.rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	options := make([]string, len(values))
	correct := 0
	for i, v := range values {
		options[i] = fmt.Sprint(v)
		if v == answer {
			correct = i
		}
	}
	return options, correct
}
