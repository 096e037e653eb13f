// Package audio turns engine events into short synthesized sounds and plays
// the background melody. Everything is generated with beep streamers; there
// are no sample files.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// SampleRate used for all synthesized audio.
const SampleRate = beep.SampleRate(44100)

// Wave selects the oscillator shape.
type Wave int

const (
	Sine Wave = iota
	Square
	Saw
	Triangle
)

// floorGain is where the exponential fade ends, matching a -40dB tail.
const floorGain = 0.01

// tone is an oscillator with an exponential pitch slide and an exponential
// gain fade from gain to gain*floorGain over its lifetime.
type tone struct {
	wave  Wave
	from  float64
	to    float64
	gain  float64
	total int
	pos   int
	phase float64
}

// Tone returns a streamer of the given length. slideTo <= 0 keeps the pitch
// constant.
func Tone(freq, slideTo float64, d time.Duration, wave Wave, gain float64) beep.Streamer {
	if slideTo <= 0 {
		slideTo = freq
	}
	return &tone{
		wave:  wave,
		from:  freq,
		to:    slideTo,
		gain:  gain,
		total: SampleRate.N(d),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		p := float64(t.pos) / float64(t.total)
		freq := t.from * math.Pow(t.to/t.from, p)
		amp := t.gain * math.Pow(floorGain, p)

		v := amp * shape(t.wave, t.phase)
		samples[i][0] = v
		samples[i][1] = v

		t.phase += freq / float64(SampleRate)
		if t.phase >= 1 {
			t.phase -= math.Floor(t.phase)
		}
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func shape(w Wave, phase float64) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Saw:
		return 2 * (phase - 0.5)
	case Triangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// delayed starts s after d of silence.
func delayed(d time.Duration, s beep.Streamer) beep.Streamer {
	if d <= 0 {
		return s
	}
	return beep.Seq(beep.Silence(SampleRate.N(d)), s)
}

// layer sums streamers and ends when the longest one ends.
type layer struct {
	parts []beep.Streamer
	buf   [][2]float64
}

func newLayer(parts ...beep.Streamer) beep.Streamer {
	return &layer{parts: parts}
}

func (l *layer) Stream(samples [][2]float64) (n int, ok bool) {
	if len(l.parts) == 0 {
		return 0, false
	}
	if cap(l.buf) < len(samples) {
		l.buf = make([][2]float64, len(samples))
	}
	buf := l.buf[:len(samples)]
	for i := range samples {
		samples[i] = [2]float64{}
	}

	live := l.parts[:0]
	for _, p := range l.parts {
		got, more := fill(p, buf)
		for i := 0; i < got; i++ {
			samples[i][0] += buf[i][0]
			samples[i][1] += buf[i][1]
		}
		if got > n {
			n = got
		}
		if more {
			live = append(live, p)
		}
	}
	l.parts = live
	if n == 0 {
		return 0, false
	}
	return n, true
}

func (l *layer) Err() error { return nil }

// fill streams into buf until it is full or s is drained.
func fill(s beep.Streamer, buf [][2]float64) (n int, more bool) {
	for n < len(buf) {
		got, ok := s.Stream(buf[n:])
		n += got
		if !ok {
			return n, false
		}
		if got == 0 {
			break
		}
	}
	return n, true
}
