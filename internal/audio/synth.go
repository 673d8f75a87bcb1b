package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// waveType selects the oscillator shape.
type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveTriangle
)

// sweep is an oscillator whose frequency glides linearly from start to end.
type sweep struct {
	start, end float64
	wave       waveType
	rate       beep.SampleRate
	total      int
	pos        int
	phase      float64
}

func newSweep(start, end float64, d time.Duration, wave waveType, rate beep.SampleRate) *sweep {
	return &sweep{start: start, end: end, wave: wave, rate: rate, total: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		var val float64
		switch s.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case waveSquare:
			val = 1.0
			if s.phase >= 0.5 {
				val = -1.0
			}
		case waveTriangle:
			val = 4*math.Abs(s.phase-0.5) - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(s.pos) / float64(s.total)
		freq := s.start + (s.end-s.start)*t
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// fade applies a linear attack and release to a finite streamer.
type fade struct {
	streamer beep.Streamer
	total    int
	attack   int
	release  int
	pos      int
}

func newFade(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *fade {
	return &fade{streamer: s, total: rate.N(d), attack: rate.N(attack), release: rate.N(release)}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if f.attack > 0 && f.pos < f.attack {
			vol = float64(f.pos) / float64(f.attack)
		}
		if left := f.total - f.pos; f.release > 0 && left < f.release {
			vol = max(float64(left)/float64(f.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

func tone(start, end float64, d time.Duration, wave waveType, rate beep.SampleRate) beep.Streamer {
	return newFade(newSweep(start, end, d, wave, rate), d, 5*time.Millisecond, d/3, rate)
}

func gain(s beep.Streamer, vol float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: vol}
}

// synthesize builds the built-in streamer for a cue.
func synthesize(cue core.Sound, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case core.SoundJump:
		// Short upward chirp
		return gain(tone(320, 760, 120*time.Millisecond, waveSquare, rate), -2)
	case core.SoundCollect:
		// Two-note coin chime (B5, E6)
		return gain(beep.Seq(
			tone(987.77, 987.77, 70*time.Millisecond, waveSquare, rate),
			tone(1318.51, 1318.51, 160*time.Millisecond, waveSquare, rate),
		), -2)
	case core.SoundGameOver:
		// Slow falling wail
		return beep.Seq(
			tone(523.25, 392.00, 180*time.Millisecond, waveTriangle, rate),
			tone(392.00, 261.63, 180*time.Millisecond, waveTriangle, rate),
			tone(261.63, 130.81, 360*time.Millisecond, waveTriangle, rate),
		)
	default:
		return nil
	}
}
