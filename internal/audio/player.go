// Package audio plays the game's sound cues through the system speaker.
// Every method is safe to call when the speaker could not be opened;
// playback then silently does nothing.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

const defaultSampleRate = beep.SampleRate(44100)

// speakerOnce guards speaker.Init, which may only run once per process.
var (
	speakerOnce sync.Once
	speakerErr  error
)

// Player mixes sound cues into the speaker.
type Player struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	rate        beep.SampleRate
	mixer       *beep.Mixer
	cues        map[core.Sound]*beep.Buffer
	initialized bool
}

// NewPlayer prepares the cue buffers. WAV overrides that fail to load
// fall back to the synthesized cue and are reported in the returned error;
// the player is usable either way.
func NewPlayer(cfg config.AudioConfig) (*Player, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = defaultSampleRate
	}
	p := &Player{
		cfg:   cfg,
		rate:  rate,
		mixer: &beep.Mixer{},
		cues:  make(map[core.Sound]*beep.Buffer),
	}

	var errs []error
	for _, cue := range core.Sounds() {
		if path, ok := cfg.Files[cue.String()]; ok && path != "" {
			buf, err := loadWAV(config.ExpandHome(path), rate)
			if err == nil {
				p.cues[cue] = buf
				continue
			}
			errs = append(errs, err)
		}
		p.cues[cue] = render(synthesize(cue, rate), rate)
	}
	return p, errors.Join(errs...)
}

func render(s beep.Streamer, rate beep.SampleRate) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	if s != nil {
		buf.Append(s)
	}
	return buf
}

// Initialize opens the speaker and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	speakerOnce.Do(func() {
		speakerErr = speaker.Init(p.rate, p.rate.N(100*time.Millisecond))
	})
	if speakerErr != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", speakerErr)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues a cue. Unknown cues and calls before Initialize are ignored.
func (p *Player) Play(cue core.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	buf, ok := p.cues[cue]
	if !ok || buf.Len() == 0 {
		return
	}

	s := &effects.Volume{Streamer: buf.Streamer(0, buf.Len()), Base: 2, Volume: p.cfg.Volume}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Duration returns the length of a cue.
func (p *Player) Duration(cue core.Sound) time.Duration {
	buf, ok := p.cues[cue]
	if !ok {
		return 0
	}
	return p.rate.D(buf.Len())
}

// Close stops playback. The speaker stays open for a later Initialize.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	p.initialized = false
}
