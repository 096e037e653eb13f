package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/avocash/internal/core"
)

const ms = time.Millisecond

// Sound returns a fresh streamer for an event, or nil when the event is
// silent. Streamers are single use.
func Sound(e core.Event) beep.Streamer {
	switch e {
	case core.EventCatch:
		// short rising ding
		return newLayer(
			Tone(800, 1200, 100*ms, Sine, 1),
			delayed(50*ms, Tone(1200, 0, 100*ms, Sine, 1)),
		)
	case core.EventCatchBonus:
		return newLayer(
			Tone(600, 1200, 300*ms, Triangle, 1),
			delayed(100*ms, Tone(900, 1500, 300*ms, Sine, 1)),
			delayed(200*ms, Tone(1200, 2000, 300*ms, Square, 1)),
		)
	case core.EventDrop:
		return Tone(200, 50, 300*ms, Saw, 1)
	case core.EventGameOver, core.EventTimeout:
		return newLayer(
			Tone(400, 300, 400*ms, Triangle, 1),
			delayed(400*ms, Tone(300, 200, 400*ms, Triangle, 1)),
			delayed(800*ms, Tone(200, 100, 800*ms, Triangle, 1)),
		)
	case core.EventCombo, core.EventWin:
		// A4 C#5 E5 arpeggio
		return newLayer(
			Tone(440, 0, 100*ms, Sine, 1),
			delayed(50*ms, Tone(554, 0, 100*ms, Sine, 1)),
			delayed(100*ms, Tone(659, 0, 100*ms, Sine, 1)),
		)
	case core.EventTick:
		return Tone(800, 800, 50*ms, Square, 1)
	case core.EventStart:
		return newLayer(
			Tone(600, 800, 100*ms, Sine, 1),
			delayed(100*ms, Tone(1000, 1200, 300*ms, Sine, 1)),
		)
	}
	return nil
}

// Note is one step of the background melody.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Melody is the looping background theme.
var Melody = []Note{
	{392, 500 * ms},  // G4
	{440, 500 * ms},  // A4
	{494, 500 * ms},  // B4
	{523, 500 * ms},  // C5
	{494, 500 * ms},  // B4
	{440, 500 * ms},  // A4
	{392, 1000 * ms}, // G4
	{330, 500 * ms},  // E4
	{392, 500 * ms},  // G4
	{440, 1000 * ms}, // A4
}

// musicGain keeps the theme well under the effects.
const musicGain = 0.15

// Music loops notes forever.
func Music(notes []Note) beep.Streamer {
	if len(notes) == 0 {
		return beep.Silence(0)
	}
	i := 0
	return beep.Iterate(func() beep.Streamer {
		n := notes[i%len(notes)]
		i++
		return Tone(n.Freq, 0, n.Duration, Triangle, musicGain)
	})
}
