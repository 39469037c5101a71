// Package mock provides a synthesis engine for testing.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/audio"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/engine"
)

// Call records one synthesis request.
type Call struct {
	Text  string
	Voice string
}

// Engine implements the engine interface with canned output and test
// controls. Safe for concurrent use.
type Engine struct {
	mu    sync.Mutex
	calls []Call

	delay        time.Duration
	failErr      error
	validateErr  error
	sampleRate   int
	bytesPerChar int
}

// New creates a mock engine producing silent 22050Hz WAV clips.
func New() *Engine {
	return &Engine{
		sampleRate:   22050,
		bytesPerChar: 32,
	}
}

// Synthesize records the call and returns a valid silent WAV whose length
// scales with the text.
func (e *Engine) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	e.mu.Lock()
	e.calls = append(e.calls, Call{Text: text, Voice: voice})
	failErr := e.failErr
	delay := e.delay
	e.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if failErr != nil {
		return nil, failErr
	}

	n := len(text) * e.bytesPerChar
	if n < 2 {
		n = 2
	}
	if n%2 == 1 {
		n++
	}
	return audio.Encode(make([]byte, n), e.sampleRate, 1), nil
}

// Info returns mock capabilities.
func (e *Engine) Info() engine.Info {
	return engine.Info{
		Name:        "mock",
		SampleRate:  e.sampleRate,
		Channels:    1,
		BitDepth:    16,
		MaxTextSize: 10000,
		Offline:     true,
	}
}

// Validate returns the configured validation error, nil by default.
func (e *Engine) Validate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.validateErr
}

// Test controls

// SetFailure makes every Synthesize call fail with err; nil restores normal
// operation.
func (e *Engine) SetFailure(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failErr = err
}

// SetValidateError makes Validate fail with err.
func (e *Engine) SetValidateError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.validateErr = err
}

// SetDelay adds a simulated generation delay.
func (e *Engine) SetDelay(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.delay = d
}

// Calls returns a copy of all recorded synthesis requests.
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// CallCount returns the number of Synthesize calls.
func (e *Engine) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}
