package core

// DefaultTickRate is used when a host leaves TickRate unset.
const DefaultTickRate = 60

// RuntimeConfig is what a host tells a game at Reset: the screen it draws
// into, the simulation rate and the RNG seed.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells
	ScreenH  int   // Screen height in cells
	TickRate int   // Simulation ticks per second
	Seed     int64 // 0 lets the game seed from the clock
}

// TickSeconds returns the duration of one tick in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / DefaultTickRate
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the summary a game reports to its host after each tick.
type GameState struct {
	Score    int // Catch score, or the current level for the puzzle
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step: the state after the tick and the
// events it produced, in order.
type StepResult struct {
	State  GameState
	Events []Event
}
