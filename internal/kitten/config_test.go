package kitten

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Voice != "expr-voice-2-m" {
		t.Errorf("Voice = %q", cfg.Voice)
	}
	if cfg.SampleRate != 24000 {
		t.Errorf("SampleRate = %d", cfg.SampleRate)
	}
	if cfg.BatchWait != 3*time.Second {
		t.Errorf("BatchWait = %v", cfg.BatchWait)
	}
	if cfg.MaxChunk != 380 {
		t.Errorf("MaxChunk = %d", cfg.MaxChunk)
	}
	if cfg.Engine != "kitten" {
		t.Errorf("Engine = %q", cfg.Engine)
	}
	if warnings := cfg.Validate(); len(warnings) != 0 {
		t.Errorf("defaults produced warnings: %v", warnings)
	}
}

func TestConfigValidate_NormalizesBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Voice = "robot-9000"
	cfg.SampleRate = 12345
	cfg.BatchWait = time.Millisecond
	cfg.MaxChunk = -1
	cfg.HookTimeout = 0

	warnings := cfg.Validate()
	if len(warnings) != 5 {
		t.Fatalf("Validate() = %d warnings %v, want 5", len(warnings), warnings)
	}

	def := DefaultConfig()
	if cfg.Voice != def.Voice {
		t.Errorf("Voice = %q, want default", cfg.Voice)
	}
	if cfg.SampleRate != def.SampleRate {
		t.Errorf("SampleRate = %d, want default", cfg.SampleRate)
	}
	if cfg.BatchWait != def.BatchWait {
		t.Errorf("BatchWait = %v, want default", cfg.BatchWait)
	}
	if cfg.MaxChunk != def.MaxChunk {
		t.Errorf("MaxChunk = %d, want default", cfg.MaxChunk)
	}
	if cfg.HookTimeout != def.HookTimeout {
		t.Errorf("HookTimeout = %v, want default", cfg.HookTimeout)
	}
}

func TestConfigValidate_FillsQueuePath(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.QueuePath != "" {
		t.Fatalf("QueuePath preset to %q", cfg.QueuePath)
	}
	cfg.Validate()
	if cfg.QueuePath == "" {
		t.Fatal("Validate() left QueuePath empty")
	}
	if !strings.HasSuffix(cfg.QueuePath, "tips.jsonl") {
		t.Errorf("QueuePath = %q, want a tips.jsonl path", cfg.QueuePath)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TTS_VOICE", "expr-voice-4-f")
	t.Setenv("BATCH_WAIT_TIME", "5")
	t.Setenv("TTS_MAX_CHUNK", "200")

	cfg, warnings := LoadConfig()
	if len(warnings) != 0 {
		t.Errorf("LoadConfig() warnings = %v", warnings)
	}
	if cfg.Voice != "expr-voice-4-f" {
		t.Errorf("Voice = %q, want env override", cfg.Voice)
	}
	if cfg.BatchWait != 5*time.Second {
		t.Errorf("BatchWait = %v, want 5s from bare-seconds form", cfg.BatchWait)
	}
	if cfg.MaxChunk != 200 {
		t.Errorf("MaxChunk = %d, want 200", cfg.MaxChunk)
	}
}

func TestLoadConfig_DurationString(t *testing.T) {
	t.Setenv("BATCH_WAIT_TIME", "1500ms")

	cfg, _ := LoadConfig()
	if cfg.BatchWait != 1500*time.Millisecond {
		t.Errorf("BatchWait = %v, want 1.5s", cfg.BatchWait)
	}
}

func TestLoadConfig_MalformedEnvFallsBack(t *testing.T) {
	t.Setenv("TTS_VOICE", "not-a-voice")
	t.Setenv("TTS_SAMPLE_RATE", "999")

	cfg, warnings := LoadConfig()
	if len(warnings) != 2 {
		t.Errorf("LoadConfig() warnings = %v, want 2", warnings)
	}
	def := DefaultConfig()
	if cfg.Voice != def.Voice || cfg.SampleRate != def.SampleRate {
		t.Errorf("bad values not normalized: voice=%q rate=%d", cfg.Voice, cfg.SampleRate)
	}
}

func TestLoadConfig_UnparseableEnvDegradesToDefaults(t *testing.T) {
	t.Setenv("TTS_SAMPLE_RATE", "not-a-number")
	t.Setenv("BATCH_WAIT_TIME", "abc")
	t.Setenv("TTS_VOICE", "expr-voice-3-m")

	cfg, warnings := LoadConfig()

	if len(warnings) == 0 {
		t.Fatal("LoadConfig() reported no warnings for unparseable values")
	}
	def := DefaultConfig()
	if cfg.SampleRate != def.SampleRate {
		t.Errorf("SampleRate = %d, want default %d", cfg.SampleRate, def.SampleRate)
	}
	if cfg.BatchWait != def.BatchWait {
		t.Errorf("BatchWait = %v, want default %v", cfg.BatchWait, def.BatchWait)
	}
	// The parseable variable still applies.
	if cfg.Voice != "expr-voice-3-m" {
		t.Errorf("Voice = %q, want the valid override to survive", cfg.Voice)
	}
}
