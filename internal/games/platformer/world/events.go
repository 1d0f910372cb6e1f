package world

// EventKind identifies something that happened during a step.
type EventKind int

const (
	EventCoin EventKind = iota
	EventStomp
	EventDamage
	EventPitFall
	EventRespawn
	EventBrickBreak
	EventBlockBump
	EventItemSpawn
	EventPowerUp
	EventGrow
	EventGameOver
	EventLevelClear
)

func (k EventKind) String() string {
	switch k {
	case EventCoin:
		return "coin"
	case EventStomp:
		return "stomp"
	case EventDamage:
		return "damage"
	case EventPitFall:
		return "pit_fall"
	case EventRespawn:
		return "respawn"
	case EventBrickBreak:
		return "brick_break"
	case EventBlockBump:
		return "block_bump"
	case EventItemSpawn:
		return "item_spawn"
	case EventPowerUp:
		return "power_up"
	case EventGrow:
		return "grow"
	case EventGameOver:
		return "game_over"
	case EventLevelClear:
		return "level_clear"
	default:
		return "unknown"
	}
}

// Event is one step outcome. X and Y locate it in world pixels. Index is
// the block, enemy or item involved, or -1. Points is the score granted.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Index  int
	Points int
}

// StepReport summarizes one Step. Events is reused by the next Step.
type StepReport struct {
	Tick     uint64
	Events   []Event
	GameOver bool
	Cleared  bool
}

// Has reports whether the step produced an event of the given kind.
func (r StepReport) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Count returns how many events of the given kind the step produced.
func (r StepReport) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
