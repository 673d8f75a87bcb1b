package core

// Sound identifies a named audio cue emitted by a game.
// The platform decides how (and whether) to play it.
type Sound int

const (
	SoundJump Sound = iota
	SoundCollect
	SoundGameOver
)

// String returns the cue name used in config files and logs.
func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundCollect:
		return "collect"
	case SoundGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Sounds returns every known cue.
func Sounds() []Sound {
	return []Sound{SoundJump, SoundCollect, SoundGameOver}
}
