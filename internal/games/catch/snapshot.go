package catch

import "github.com/vovakirdan/avocash/internal/entity"

// Snapshot is a read-only copy of the session for drawing and transport.
type Snapshot struct {
	Phase           string        `json:"phase"`
	Score           int           `json:"score"`
	MaxScore        int           `json:"maxScore"`
	HighScore       int           `json:"highScore"`
	DisplayHigh     int           `json:"displayHigh"` // max(MaxScore, HighScore)
	Combo           int           `json:"combo"`
	ComboTimer      float64       `json:"comboTimer"`
	Multiplier      float64       `json:"multiplier"`
	SpawnIntervalMs float64       `json:"spawnIntervalMs"`
	SpawnTimerMs    float64       `json:"spawnTimerMs"`
	DifficultyTimer float64       `json:"difficultyTimer"`
	BoostApplied    bool          `json:"boostApplied"`
	WorldW          float64       `json:"worldW"`
	WorldH          float64       `json:"worldH"`
	Player          entity.View   `json:"player"`
	Items           []entity.View `json:"items"`
	Markers         []entity.View `json:"markers"`
}

// Snapshot copies the current state. The returned slices are owned by the caller.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:           e.phase.String(),
		Score:           e.score,
		MaxScore:        e.maxScore,
		HighScore:       e.highScore,
		DisplayHigh:     max(e.maxScore, e.highScore),
		Combo:           e.combo,
		ComboTimer:      e.comboTimer,
		Multiplier:      e.multiplier,
		SpawnIntervalMs: e.interval,
		SpawnTimerMs:    e.spawnTimer,
		DifficultyTimer: e.ramp.Timer(),
		BoostApplied:    e.boostApplied,
		WorldW:          e.worldW,
		WorldH:          e.worldH,
		Player:          e.player.View(),
		Items:           make([]entity.View, len(e.items)),
		Markers:         make([]entity.View, len(e.markers)),
	}
	for i, it := range e.items {
		s.Items[i] = it.View()
	}
	for i, m := range e.markers {
		s.Markers[i] = m.View()
	}
	return s
}
