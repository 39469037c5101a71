package engine_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/engine"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/engine/mock"
)

func TestNewChain_RequiresEngine(t *testing.T) {
	if _, err := engine.NewChain(); err == nil {
		t.Error("NewChain() accepted an empty chain")
	}
}

func TestChain_UsesPrimaryWhenHealthy(t *testing.T) {
	primary := mock.New()
	secondary := mock.New()
	chain, err := engine.NewChain(primary, secondary)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := chain.Synthesize(context.Background(), "hello", "expr-voice-2-m"); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if primary.CallCount() != 1 {
		t.Errorf("primary saw %d calls, want 1", primary.CallCount())
	}
	if secondary.CallCount() != 0 {
		t.Errorf("secondary saw %d calls, want 0", secondary.CallCount())
	}
}

func TestChain_FallsThroughOnFailure(t *testing.T) {
	primary := mock.New()
	primary.SetFailure(errors.New("model not installed"))
	secondary := mock.New()
	chain, err := engine.NewChain(primary, secondary)
	if err != nil {
		t.Fatal(err)
	}

	audio, err := chain.Synthesize(context.Background(), "hello", "expr-voice-2-m")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if len(audio) == 0 {
		t.Error("no audio from fallback engine")
	}
	if secondary.CallCount() != 1 {
		t.Errorf("secondary saw %d calls, want 1", secondary.CallCount())
	}
}

func TestChain_AllEnginesFail(t *testing.T) {
	first := mock.New()
	first.SetFailure(errors.New("first broke"))
	second := mock.New()
	second.SetFailure(errors.New("second broke"))
	chain, err := engine.NewChain(first, second)
	if err != nil {
		t.Fatal(err)
	}

	_, err = chain.Synthesize(context.Background(), "hello", "expr-voice-2-m")
	if err == nil {
		t.Fatal("Synthesize() succeeded with all engines broken")
	}
	for _, want := range []string{"first broke", "second broke"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestChain_StopsOnDeadContext(t *testing.T) {
	first := mock.New()
	first.SetFailure(errors.New("boom"))
	second := mock.New()
	second.SetFailure(errors.New("boom"))
	chain, err := engine.NewChain(first, second)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := chain.Synthesize(ctx, "hello", ""); err == nil {
		t.Fatal("Synthesize() succeeded with cancelled context")
	}
	if second.CallCount() != 0 {
		t.Errorf("secondary tried %d times after context death", second.CallCount())
	}
}

func TestChain_Validate(t *testing.T) {
	healthy := mock.New()
	broken := mock.New()
	broken.SetValidateError(errors.New("missing venv"))

	chain, err := engine.NewChain(broken, healthy)
	if err != nil {
		t.Fatal(err)
	}
	if err := chain.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil with one healthy engine", err)
	}
	if got := chain.Info().Name; got != healthy.Info().Name {
		t.Errorf("Info().Name = %q, want the validating engine's", got)
	}

	chain, err = engine.NewChain(broken)
	if err != nil {
		t.Fatal(err)
	}
	if err := chain.Validate(); err == nil {
		t.Error("Validate() = nil with no healthy engines")
	}
}
