// Package chime plays a short tone when the pomodoro changes phase.
package chime

import (
	"log"
	"sync"
	"time"

	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	beepLength = 180 * time.Millisecond
	beepGap    = 90 * time.Millisecond

	workPitch  = 880.0
	breakPitch = 587.33
)

// Notifier announces that the timer entered phase.
type Notifier interface {
	Notify(phase pomodoro.Phase)
}

// Nop ignores every notification.
type Nop struct{}

func (Nop) Notify(pomodoro.Phase) {}

// Func adapts a plain function to Notifier.
type Func func(pomodoro.Phase)

func (f Func) Notify(p pomodoro.Phase) { f(p) }

var (
	initOnce sync.Once
	initErr  error
)

// Speaker plays tones through the default audio device.
type Speaker struct {
	mu sync.Mutex
}

// NewSpeaker initialises the audio device once per process.
func NewSpeaker() (*Speaker, error) {
	initOnce.Do(func() {
		initErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})
	if initErr != nil {
		return nil, initErr
	}
	return &Speaker{}, nil
}

// Notify queues the tone and returns immediately.
func (s *Speaker) Notify(p pomodoro.Phase) {
	tone, err := phaseTone(p)
	if err != nil {
		log.Printf("chime: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	speaker.Play(tone)
}

// New returns a speaker-backed notifier when enabled, falling back to Nop
// when audio is disabled or unavailable.
func New(enabled bool) Notifier {
	if !enabled {
		return Nop{}
	}
	s, err := NewSpeaker()
	if err != nil {
		log.Printf("chime: audio disabled: %v", err)
		return Nop{}
	}
	return s
}

// phaseTone is two short beeps: high when work starts, lower for a break.
func phaseTone(p pomodoro.Phase) (beep.Streamer, error) {
	pitch := workPitch
	if p == pomodoro.OnBreak {
		pitch = breakPitch
	}
	first, err := generators.SineTone(sampleRate, pitch)
	if err != nil {
		return nil, err
	}
	second, err := generators.SineTone(sampleRate, pitch)
	if err != nil {
		return nil, err
	}
	n := sampleRate.N(beepLength)
	seq := beep.Seq(
		beep.Take(n, first),
		beep.Silence(sampleRate.N(beepGap)),
		beep.Take(n, second),
	)
	return &effects.Volume{Streamer: seq, Base: 2, Volume: -2}, nil
}
