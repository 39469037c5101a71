package kitten

import "errors"

// Common errors for the audio feedback system.
var (
	ErrUnknownPersonality = errors.New("unknown personality")
	ErrUnknownTone        = errors.New("unknown tone")
	ErrUnknownVoice       = errors.New("unknown voice")
)
