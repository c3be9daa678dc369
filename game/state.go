package game

// Status is the lifecycle state of a round.
type Status int

const (
	// StatusStart means no maze is active yet.
	StatusStart Status = iota
	// StatusPlaying means the maze is active and accepts moves.
	StatusPlaying
	// StatusWon is terminal: the player reached the exit.
	StatusWon
	// StatusLost is terminal: the pursuer caught the player.
	StatusLost
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusStart:
		return "start"
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the round is over.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// OutcomeKind tags the result of a single move attempt.
type OutcomeKind int

const (
	OutcomeRejected OutcomeKind = iota
	OutcomeMoved
	OutcomeCaught
	OutcomeQuizOpened
	OutcomeWon
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRejected:
		return "rejected"
	case OutcomeMoved:
		return "moved"
	case OutcomeCaught:
		return "caught"
	case OutcomeQuizOpened:
		return "quiz"
	case OutcomeWon:
		return "won"
	default:
		return "unknown"
	}
}
