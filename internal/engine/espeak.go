package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// espeakBinaries in preference order.
var espeakBinaries = []string{"espeak-ng", "espeak"}

// Espeak is an offline fallback engine using espeak-ng. Output quality is
// well below the model's, but it keeps audio feedback alive on machines
// where the virtualenv is missing or broken.
type Espeak struct {
	binary  string
	timeout time.Duration
}

// NewEspeak creates an espeak engine, locating the first available binary.
func NewEspeak() *Espeak {
	e := &Espeak{timeout: 10 * time.Second}
	for _, bin := range espeakBinaries {
		if path, err := exec.LookPath(bin); err == nil {
			e.binary = path
			break
		}
	}
	return e
}

// Synthesize renders text to WAV via espeak's --stdout. The voice argument
// names a model voice, which espeak cannot honor; it is ignored.
func (e *Espeak) Synthesize(ctx context.Context, text, _ string) ([]byte, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}
	if e.binary == "" {
		return nil, errors.New("espeak not installed")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.binary, "--stdout", "--", text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("synthesis timeout: %w", ctx.Err())
		}
		return nil, fmt.Errorf("espeak failed: %w, stderr: %s", err, stderr.String())
	}

	audio := stdout.Bytes()
	if len(audio) == 0 {
		return nil, errors.New("espeak produced no audio")
	}
	return audio, nil
}

// Info returns engine capabilities.
func (e *Espeak) Info() Info {
	return Info{
		Name:        "espeak",
		SampleRate:  22050,
		Channels:    1,
		BitDepth:    16,
		MaxTextSize: 10000,
		Offline:     true,
	}
}

// Validate checks an espeak binary is installed.
func (e *Espeak) Validate() error {
	if e.binary == "" {
		return fmt.Errorf("none of %v found in PATH", espeakBinaries)
	}
	return nil
}
