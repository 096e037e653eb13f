package config

import "math"

// DifficultyRamp counts play time and reports when difficulty steps are due.
// It holds no wall clock: callers feed it the same dt as the simulation,
// so a paused game that stops calling Advance is frozen.
type DifficultyRamp struct {
	cfg   DifficultyConfig
	timer float64
}

// NewDifficultyRamp creates a ramp from config.
func NewDifficultyRamp(cfg DifficultyConfig) *DifficultyRamp {
	return &DifficultyRamp{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (r *DifficultyRamp) IsEnabled() bool {
	return r.cfg.Enabled && r.cfg.StepSeconds > 0
}

// Advance adds dt seconds of play and returns how many steps became due.
// Leftover time carries into the next step.
func (r *DifficultyRamp) Advance(dt float64) int {
	if !r.IsEnabled() || dt <= 0 {
		return 0
	}
	r.timer += dt
	steps := 0
	for r.timer >= r.cfg.StepSeconds {
		r.timer -= r.cfg.StepSeconds
		steps++
	}
	return steps
}

// Apply returns the multiplier and spawn interval after the given steps.
func (r *DifficultyRamp) Apply(multiplier, intervalMs float64, steps int) (float64, float64) {
	for i := 0; i < steps; i++ {
		multiplier += r.cfg.SpeedStep
		intervalMs = math.Max(r.cfg.MinIntervalMs, intervalMs-r.cfg.SpawnStepMs)
	}
	return multiplier, intervalMs
}

// Timer returns the play time accumulated toward the next step.
func (r *DifficultyRamp) Timer() float64 {
	return r.timer
}

// Reset clears accumulated time.
func (r *DifficultyRamp) Reset() {
	r.timer = 0
}
