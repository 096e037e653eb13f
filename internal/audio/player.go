package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/avocash/internal/core"
)

// Player reacts to engine events. It is safe to use without a sound device:
// until Init succeeds every call is a no-op.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	master *effects.Volume
	music  *beep.Ctrl
	muted  bool
	ready  bool

	// lock/unlock guard the mixer against the speaker goroutine.
	lock   func()
	unlock func()
}

// NewPlayer creates a player. A muted player never opens the device.
func NewPlayer(muted bool) *Player {
	mixer := &beep.Mixer{}
	return &Player{
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2, Volume: math.Log2(0.5)},
		muted:  muted,
		lock:   func() {},
		unlock: func() {},
	}
}

// Init opens the speaker. Safe to call more than once.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready || p.muted {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	p.lock, p.unlock = speaker.Lock, speaker.Unlock
	speaker.Play(p.master)
	p.ready = true
	return nil
}

// Handle plays the sound for each event and starts or stops the music on
// session transitions.
func (p *Player) Handle(events []core.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	for _, e := range events {
		switch e {
		case core.EventStart, core.EventResume:
			p.startMusic()
		case core.EventPause, core.EventGameOver:
			p.stopMusic()
		}
		if s := Sound(e); s != nil {
			p.lock()
			p.mixer.Add(s)
			p.unlock()
		}
	}
}

func (p *Player) startMusic() {
	p.lock()
	defer p.unlock()
	if p.music != nil {
		p.music.Paused = false
		return
	}
	p.music = &beep.Ctrl{Streamer: Music(Melody)}
	p.mixer.Add(p.music)
}

func (p *Player) stopMusic() {
	p.lock()
	defer p.unlock()
	if p.music != nil {
		p.music.Paused = true
	}
}

// SetMuted silences everything without closing the device.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	p.lock()
	p.master.Silent = muted
	p.unlock()
}

// Muted reports the mute flag.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close stops all sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	p.lock()
	p.mixer.Clear()
	p.music = nil
	p.unlock()
	p.ready = false
}
