// Package catch implements the falling-item catch game: a player sprite
// follows the pointer along the bottom edge and catches items spawned from
// a band at the top. Score, combo and a time-based difficulty ramp drive
// the session until the score drops to zero.
package catch

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/avocash/internal/config"
	"github.com/vovakirdan/avocash/internal/core"
	"github.com/vovakirdan/avocash/internal/entity"
)

// Phase is the session state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

// String returns the snapshot name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Feedback marker placement relative to the player and the bottom edge.
const (
	catchMarkerLift  = 50.0
	dropMarkerHeight = 100.0
)

// Engine owns one catch session. It is not safe for concurrent use;
// the host drives it from a single loop.
type Engine struct {
	cfg      config.CatchConfig
	rng      *rand.Rand
	reporter core.ScoreReporter
	ramp     *config.DifficultyRamp

	worldW, worldH float64
	bandX, bandW   float64
	hasBand        bool

	phase   Phase
	player  entity.Entity
	items   []entity.Entity
	markers []entity.Entity

	score        int
	maxScore     int
	highScore    int
	combo        int
	comboTimer   float64 // Seconds since the last regular catch
	spawnTimer   float64 // Milliseconds since the last spawn
	interval     float64 // Milliseconds between spawns
	multiplier   float64
	boostApplied bool

	events []core.Event
}

// New creates an idle engine. reporter may be nil.
func New(cfg config.CatchConfig, seed int64, reporter core.ScoreReporter) *Engine {
	e := &Engine{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		reporter: reporter,
		ramp:     config.NewDifficultyRamp(cfg.Difficulty),
		worldW:   cfg.World.Width,
		worldH:   cfg.World.Height,
	}
	if e.worldW <= 0 || e.worldH <= 0 {
		def := config.DefaultCatchConfig()
		e.worldW, e.worldH = def.World.Width, def.World.Height
	}
	e.reset()
	if reporter != nil {
		e.highScore = reporter.HighScore()
	}
	return e
}

// reset restores session defaults without changing phase.
func (e *Engine) reset() {
	e.player = entity.NewPlayer(e.worldW, e.worldH)
	e.items = nil
	e.markers = nil
	e.score = e.cfg.Scoring.Initial
	e.maxScore = e.score
	e.combo = 0
	e.comboTimer = 0
	e.spawnTimer = 0
	e.interval = e.cfg.Spawn.IntervalMs
	e.multiplier = e.cfg.Difficulty.InitialMultiplier
	e.boostApplied = false
	e.ramp.Reset()
}

// InitSession resets all session state and starts running.
func (e *Engine) InitSession() {
	e.reset()
	if e.reporter != nil {
		e.highScore = max(e.highScore, e.reporter.HighScore())
	}
	e.phase = PhaseRunning
	e.emit(core.EventStart)
}

// Restart starts a fresh session from any phase.
func (e *Engine) Restart() {
	e.InitSession()
}

// Tick advances the simulation by dt seconds. It does nothing unless running.
func (e *Engine) Tick(dt float64) {
	if e.phase != PhaseRunning || dt <= 0 {
		return
	}

	e.player.Update(dt)

	if e.combo > 0 {
		e.comboTimer += dt
		if e.comboTimer > e.cfg.Combo.DecaySeconds {
			e.combo = 0
		}
	}

	e.sweepItems(dt)
	if e.phase != PhaseRunning {
		return
	}

	// At most one spawn per tick, after the sweep, so a new item is not
	// tested for collision until the next tick.
	e.spawnTimer += dt * 1000
	if e.spawnTimer >= e.interval {
		e.spawnTimer = 0
		e.items = append(e.items, entity.NewFallingItem(e.spawnX(), e.multiplier, e.rng))
	}

	if steps := e.ramp.Advance(dt); steps > 0 {
		e.multiplier, e.interval = e.ramp.Apply(e.multiplier, e.interval, steps)
	}

	kept := e.markers[:0]
	for i := range e.markers {
		e.markers[i].Update(dt)
		if !e.markers[i].Removed {
			kept = append(kept, e.markers[i])
		}
	}
	e.markers = kept
}

// sweepItems moves every live item and resolves at most one outcome per item.
// Once the session ends mid-sweep the remaining items stay untouched.
func (e *Engine) sweepItems(dt float64) {
	playerBox := e.player.Rect().Inset(e.cfg.Collision.Padding)
	kept := e.items[:0]
	for i := range e.items {
		it := e.items[i]
		if e.phase != PhaseRunning {
			kept = append(kept, it)
			continue
		}
		it.Update(dt)
		switch {
		case playerBox.Intersects(it.Rect().Inset(e.cfg.Collision.Padding)):
			e.handleCatch(it)
		case it.Y > e.worldH:
			e.handleDrop(it)
		default:
			kept = append(kept, it)
		}
	}
	e.items = kept
}

func (e *Engine) handleCatch(it entity.Entity) {
	mx, my := e.player.X, e.player.Y-catchMarkerLift
	if it.Item.Bonus {
		e.score += e.cfg.Scoring.CatchBonus
		e.markers = append(e.markers, entity.NewMarker(mx, my, entity.PositiveLarge))
		e.emit(core.EventCatchBonus)
		e.trackMax()
		return
	}

	e.score += e.cfg.Scoring.Catch
	e.markers = append(e.markers, entity.NewMarker(mx, my, entity.PositiveSmall))
	e.emit(core.EventCatch)

	e.combo++
	e.comboTimer = 0
	if e.combo >= e.cfg.Combo.Threshold {
		e.emit(core.EventCombo)
	}

	if !e.boostApplied && e.score >= e.cfg.Difficulty.BoostScore {
		e.multiplier *= e.cfg.Difficulty.BoostFactor
		e.boostApplied = true
	}
	e.trackMax()
}

func (e *Engine) handleDrop(it entity.Entity) {
	my := e.worldH - dropMarkerHeight
	if it.Item.Bonus {
		e.score -= e.cfg.Scoring.DropBonus
		e.markers = append(e.markers, entity.NewMarker(it.X, my, entity.NegativeLargeB))
	} else {
		e.score -= e.cfg.Scoring.Drop
		e.markers = append(e.markers, entity.NewMarker(it.X, my, entity.NegativeLargeA))
	}
	e.combo = 0
	e.emit(core.EventDrop)

	if e.score <= 0 {
		e.gameOver()
	}
}

func (e *Engine) gameOver() {
	e.phase = PhaseGameOver
	if e.maxScore > e.highScore {
		e.highScore = e.maxScore
	}
	if e.reporter != nil {
		e.reporter.GameOver(e.maxScore)
	}
	e.emit(core.EventGameOver)
}

func (e *Engine) trackMax() {
	if e.score > e.maxScore {
		e.maxScore = e.score
	}
}

// spawnX picks a spawn position inside the band, or across the width
// minus the configured margin when no band is set.
func (e *Engine) spawnX() float64 {
	if e.hasBand {
		return e.bandX + e.rng.Float64()*e.bandW
	}
	return e.rng.Float64() * math.Max(0, e.worldW-e.cfg.Spawn.BandMargin)
}

func (e *Engine) emit(ev core.Event) {
	e.events = append(e.events, ev)
}

// SetPointerX aims the player at pointer x. Ignored unless running.
func (e *Engine) SetPointerX(x float64) {
	if e.phase != PhaseRunning {
		return
	}
	e.player.SetPointer(x)
}

// PointerX returns the x the player is steering toward, as a pointer position.
func (e *Engine) PointerX() float64 {
	return e.player.Player.TargetX + e.player.W/2
}

// Pause freezes a running session.
func (e *Engine) Pause() {
	if e.phase != PhaseRunning {
		return
	}
	e.phase = PhasePaused
	e.emit(core.EventPause)
}

// Resume continues a paused session from the frozen timers.
func (e *Engine) Resume() {
	if e.phase != PhasePaused {
		return
	}
	e.phase = PhaseRunning
	e.emit(core.EventResume)
}

// TogglePause flips between running and paused.
func (e *Engine) TogglePause() {
	switch e.phase {
	case PhaseRunning:
		e.Pause()
	case PhasePaused:
		e.Resume()
	}
}

// SetSpawnBand restricts spawning to [x, x+w). A non-positive width clears it.
func (e *Engine) SetSpawnBand(x, w float64) {
	if w <= 0 {
		e.hasBand = false
		return
	}
	x = core.ClampF(x, 0, e.worldW)
	e.bandX = x
	e.bandW = math.Min(w, e.worldW-x)
	e.hasBand = true
}

// SetWorldSize changes the playfield, keeping the player on the bottom edge.
func (e *Engine) SetWorldSize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	e.worldW, e.worldH = w, h
	e.player.Player.WorldW = w
	e.player.Y = h - e.player.H - entity.PlayerBottomGap
	e.player.X = core.ClampF(e.player.X, 0, math.Max(0, w-e.player.W))
	if e.hasBand {
		e.SetSpawnBand(e.bandX, e.bandW)
	}
}

// SetHighScore sets the persisted high score shown alongside the session.
func (e *Engine) SetHighScore(n int) {
	e.highScore = n
}

// DrainEvents returns the events emitted since the last call.
func (e *Engine) DrainEvents() []core.Event {
	if len(e.events) == 0 {
		return nil
	}
	out := e.events
	e.events = nil
	return out
}

// Phase returns the current session phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// MaxScore returns the best score reached this session.
func (e *Engine) MaxScore() int {
	return e.maxScore
}
