// Package dispatch turns finalized messages into played audio. It owns the
// personality and tone application, message chunking, and the serialization
// of playback so chunks from different messages never interleave.
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/audio"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/cache"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/chunk"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/engine"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/kitten"
)

// Dispatcher synthesizes and plays messages one at a time.
type Dispatcher struct {
	engine engine.Engine
	player audio.Player

	defaultVoice string
	maxChunk     int
	audioCache   *cache.AudioCache

	// mu serializes whole utterances: all chunks of one message play before
	// any chunk of the next.
	mu sync.Mutex
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithCache reuses cached audio for repeated utterances instead of
// re-synthesizing them.
func WithCache(c *cache.AudioCache) Option {
	return func(d *Dispatcher) {
		d.audioCache = c
	}
}

// New creates a dispatcher using the config's default voice and chunk size.
func New(e engine.Engine, p audio.Player, cfg kitten.Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		engine:       e,
		player:       p,
		defaultVoice: cfg.Voice,
		maxChunk:     cfg.MaxChunk,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Speak applies the personality to text, splits it into bounded chunks, and
// for each chunk synthesizes then plays before starting the next. It returns
// a short human-readable status for the tool-call result.
func (d *Dispatcher) Speak(ctx context.Context, text, voice string, personality kitten.Personality) (string, error) {
	if text == "" {
		return "No text provided to speak", nil
	}

	text = kitten.ApplyPersonality(text, personality)
	voice = d.resolveVoice(voice)

	d.mu.Lock()
	defer d.mu.Unlock()

	for c := range chunk.Chunks(text, d.maxChunk) {
		if err := d.synthesizeAndPlay(ctx, c, voice); err != nil {
			return "", err
		}
	}

	if runes := []rune(text); len(runes) > 50 {
		return fmt.Sprintf("Spoke: '%s...'", string(runes[:50])), nil
	}
	return fmt.Sprintf("Spoke: '%s'", text), nil
}

// Announce speaks a message with the tone's prefix and voice. Announcements
// are short by construction and bypass chunking.
func (d *Dispatcher) Announce(ctx context.Context, message string, tone kitten.Tone) (string, error) {
	full := kitten.AnnouncementText(message, tone)
	voice := kitten.ToneVoice(tone, d.defaultVoice)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.synthesizeAndPlay(ctx, full, voice); err != nil {
		return "", err
	}
	return "Announced: " + message, nil
}

// CodeReview speaks review feedback in the grizzled engineer voice.
func (d *Dispatcher) CodeReview(ctx context.Context, feedback string) (string, error) {
	return d.Speak(ctx, feedback, "expr-voice-2-m", kitten.PersonalityGrizzled)
}

func (d *Dispatcher) synthesizeAndPlay(ctx context.Context, text, voice string) error {
	wav, err := d.synthesize(ctx, text, voice)
	if err != nil {
		return fmt.Errorf("synthesizing: %w", err)
	}
	if err := d.player.Play(ctx, wav); err != nil {
		return fmt.Errorf("playing: %w", err)
	}
	return nil
}

func (d *Dispatcher) synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if d.audioCache == nil {
		return d.engine.Synthesize(ctx, text, voice)
	}

	key := cache.Key(d.engine.Info().Name, voice, text)
	if wav, ok := d.audioCache.Get(key); ok {
		log.Debug("synthesis cache hit", "chars", len(text))
		return wav, nil
	}

	wav, err := d.engine.Synthesize(ctx, text, voice)
	if err != nil {
		return nil, err
	}
	if err := d.audioCache.Put(key, wav); err != nil {
		log.Debug("not caching audio", "err", err)
	}
	return wav, nil
}

func (d *Dispatcher) resolveVoice(voice string) string {
	if voice == "" {
		return d.defaultVoice
	}
	if !kitten.IsValidVoice(voice) {
		log.Warn("unknown voice, using default", "voice", voice, "default", d.defaultVoice)
		return d.defaultVoice
	}
	return voice
}
