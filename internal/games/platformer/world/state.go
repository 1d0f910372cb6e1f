package world

// GameState holds the session counters. Only the World mutates it, and only
// through AddScore and LoseLife.
type GameState struct {
	score int
	lives int
}

// NewGameState starts a session with the given lives and no score.
func NewGameState(lives int) GameState {
	return GameState{lives: lives}
}

// Score returns the current score.
func (s GameState) Score() int { return s.score }

// Lives returns the remaining lives.
func (s GameState) Lives() int { return s.lives }

// AddScore grants points. Non-positive grants are ignored, so the score
// never decreases.
func (s *GameState) AddScore(points int) {
	if points > 0 {
		s.score += points
	}
}

// LoseLife takes one life and returns how many remain. Lives never go
// below zero.
func (s *GameState) LoseLife() int {
	if s.lives > 0 {
		s.lives--
	}
	return s.lives
}
