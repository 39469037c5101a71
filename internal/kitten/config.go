package kitten

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config contains all audio feedback configuration. It is loaded once at
// process start and passed down to components; nothing reads the environment
// after loading.
type Config struct {
	// Synthesis settings
	Model      string `yaml:"model" env:"TTS_MODEL" envDefault:"KittenML/kitten-tts-nano-0.2"`
	Voice      string `yaml:"voice" env:"TTS_VOICE" envDefault:"expr-voice-2-m"`
	SampleRate int    `yaml:"sample_rate" env:"TTS_SAMPLE_RATE" envDefault:"24000"`
	Engine     string `yaml:"engine" env:"TTS_ENGINE" envDefault:"kitten"`
	VenvDir    string `yaml:"venv_dir" env:"TTS_VENV" envDefault:"tts_venv"`

	// Batching settings
	BatchWait time.Duration `yaml:"batch_wait" env:"BATCH_WAIT_TIME" envDefault:"3s"`
	QueuePath string        `yaml:"queue_path" env:"KITTEN_QUEUE_PATH"`

	// Chunking
	MaxChunk int `yaml:"max_chunk" env:"TTS_MAX_CHUNK" envDefault:"380"`

	// Playback
	AudioPlayer string `yaml:"audio_player" env:"AUDIO_PLAYER" envDefault:"paplay"`

	// CacheMB bounds the in-memory audio cache; 0 disables caching.
	CacheMB int `yaml:"cache_mb" env:"TTS_CACHE_MB" envDefault:"8"`

	// Hook behavior
	HookTimeout time.Duration `yaml:"hook_timeout" env:"HOOK_TIMEOUT" envDefault:"5s"`

	// Logging
	EnableLogging bool `yaml:"enable_logging" env:"ENABLE_LOGGING" envDefault:"false"`
}

// DefaultConfig returns a Config with documented defaults.
func DefaultConfig() Config {
	return Config{
		Model:         "KittenML/kitten-tts-nano-0.2",
		Voice:         "expr-voice-2-m",
		SampleRate:    24000,
		Engine:        "kitten",
		VenvDir:       "tts_venv",
		BatchWait:     3 * time.Second,
		MaxChunk:      380,
		AudioPlayer:   "paplay",
		CacheMB:       8,
		HookTimeout:   5 * time.Second,
		EnableLogging: false,
	}
}

// validSampleRates matches what the synthesis model and players accept.
var validSampleRates = []int{8000, 16000, 22050, 24000, 44100, 48000}

// Validate checks the configuration, normalizing recoverable problems back to
// defaults rather than failing. Malformed configuration degrades to defaults;
// nothing here is fatal to the hosting assistant.
func (c *Config) Validate() []error {
	var warnings []error
	def := DefaultConfig()

	if !IsValidVoice(c.Voice) {
		warnings = append(warnings, fmt.Errorf("%w: %q, using %q", ErrUnknownVoice, c.Voice, def.Voice))
		c.Voice = def.Voice
	}

	rateOK := false
	for _, r := range validSampleRates {
		if c.SampleRate == r {
			rateOK = true
			break
		}
	}
	if !rateOK {
		warnings = append(warnings, fmt.Errorf("invalid sample rate %d, using %d", c.SampleRate, def.SampleRate))
		c.SampleRate = def.SampleRate
	}

	if c.BatchWait < 100*time.Millisecond || c.BatchWait > 5*time.Minute {
		warnings = append(warnings, fmt.Errorf("batch wait %v out of range, using %v", c.BatchWait, def.BatchWait))
		c.BatchWait = def.BatchWait
	}

	if c.MaxChunk < 1 || c.MaxChunk > 5000 {
		warnings = append(warnings, fmt.Errorf("max chunk %d out of range, using %d", c.MaxChunk, def.MaxChunk))
		c.MaxChunk = def.MaxChunk
	}

	if c.CacheMB < 0 || c.CacheMB > 1024 {
		warnings = append(warnings, fmt.Errorf("cache size %dMB out of range, using %dMB", c.CacheMB, def.CacheMB))
		c.CacheMB = def.CacheMB
	}

	if c.HookTimeout < time.Second {
		warnings = append(warnings, fmt.Errorf("hook timeout %v too short, using %v", c.HookTimeout, def.HookTimeout))
		c.HookTimeout = def.HookTimeout
	}

	if c.QueuePath == "" {
		c.QueuePath = DefaultQueuePath()
	}

	return warnings
}

// DefaultQueuePath returns the well-known location of the tip queue file.
// The runtime dir is preferred so the queue does not outlive a login session.
func DefaultQueuePath() string {
	base := os.Getenv("XDG_RUNTIME_DIR")
	if base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "kitten-tts", "tips.jsonl")
}
