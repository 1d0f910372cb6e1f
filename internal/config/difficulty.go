package config

// Progression types accepted in difficulty.progression.type.
const (
	ProgressionScore = "score"
	ProgressionTime  = "time"
	ProgressionNone  = "none"
)

// DifficultyManager scales enemy patrol speed as a run goes on.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a manager, clamping InitialLevel to [0, 1].
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = min(max(cfg.InitialLevel, 0), 1)
	return &DifficultyManager{cfg: cfg}
}

// Progressive reports whether the level moves past InitialLevel at all.
func (d *DifficultyManager) Progressive() bool {
	if !d.cfg.Enabled {
		return false
	}
	return d.cfg.Progression.Type == ProgressionScore || d.cfg.Progression.Type == ProgressionTime
}

// Level returns the difficulty in [InitialLevel, 1]. It reaches 1 once the
// score (or the tick count, for time progression) hits Progression.MaxAt.
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	if !d.Progressive() {
		return d.cfg.InitialLevel
	}

	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))
	progress := float64(score) / maxAt
	if d.cfg.Progression.Type == ProgressionTime {
		progress = float64(ticks) / maxAt
	}
	progress = min(max(progress, 0), 1)

	return d.cfg.InitialLevel + progress*(1-d.cfg.InitialLevel)
}

// EnemySpeed returns base scaled up to base*(1+SpeedMultiplier) at level 1.
func (d *DifficultyManager) EnemySpeed(base float64, score int, ticks uint64) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}
