// Package engine defines the synthesis engine contract and its
// implementations. Engines turn text into WAV audio; playback is the audio
// package's concern.
package engine

import "context"

// Engine converts text to WAV audio data.
type Engine interface {
	// Synthesize generates WAV audio for text in the given voice. The
	// context bounds the external synthesis process.
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)

	// Info returns engine capabilities and configuration.
	Info() Info

	// Validate checks that the engine is usable on this machine.
	Validate() error
}

// Info describes an engine's output and limits.
type Info struct {
	Name        string
	SampleRate  int
	Channels    int
	BitDepth    int
	MaxTextSize int
	Offline     bool
}
