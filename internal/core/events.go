package core

// Event is a discrete, named game moment that collaborators (audio, HUD
// effects) react to. Engines only emit events; they never query listeners.
type Event string

const (
	EventCatch      Event = "catch"
	EventCatchBonus Event = "catch-bonus"
	EventDrop       Event = "drop"
	EventGameOver   Event = "game-over"
	EventCombo      Event = "combo"
	EventTick       Event = "tick"
	EventStart      Event = "start"
	EventWin        Event = "win"
	EventTimeout    Event = "timeout"
	EventPause      Event = "pause"
	EventResume     Event = "resume"
)

// AllEvents lists every event an engine may emit.
func AllEvents() []Event {
	return []Event{
		EventCatch, EventCatchBonus, EventDrop, EventGameOver, EventCombo,
		EventTick, EventStart, EventWin, EventTimeout, EventPause, EventResume,
	}
}
