// Package audio plays synthesized WAV audio, either through an external
// player process or through the builtin PCM output.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Player plays one complete WAV clip and returns when playback finishes.
type Player interface {
	Play(ctx context.Context, wav []byte) error
}

// fallbackPlayers are tried when the configured binary is missing.
var fallbackPlayers = [][]string{
	{"paplay"},
	{"aplay", "-q"},
	{"afplay"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
}

// ExecPlayer plays audio through an external player process. The clip is
// written to a temporary file which is removed on every exit path.
type ExecPlayer struct {
	binary  string
	timeout time.Duration
}

// NewExecPlayer creates a player preferring the given binary (e.g. paplay).
func NewExecPlayer(binary string) *ExecPlayer {
	return &ExecPlayer{binary: binary, timeout: 2 * time.Minute}
}

// Play writes the WAV to a temp file and runs the player on it.
func (p *ExecPlayer) Play(ctx context.Context, wav []byte) error {
	if len(wav) == 0 {
		return errors.New("no audio to play")
	}

	argv, err := p.resolve()
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "kitten-play-*.wav")
	if err != nil {
		return fmt.Errorf("creating playback file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(wav); err != nil {
		f.Close()
		return fmt.Errorf("writing playback file: %w", err)
	}
	f.Close()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], f.Name())...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("playback timeout: %w", ctx.Err())
		}
		return fmt.Errorf("%s failed: %w, stderr: %s", argv[0], err, stderr.String())
	}
	return nil
}

// resolve picks the player command: the configured binary if installed,
// otherwise the first known fallback.
func (p *ExecPlayer) resolve() ([]string, error) {
	if p.binary != "" {
		if path, err := exec.LookPath(p.binary); err == nil {
			return []string{path}, nil
		}
	}
	for _, argv := range fallbackPlayers {
		if argv[0] == p.binary {
			continue
		}
		if path, err := exec.LookPath(argv[0]); err == nil {
			return append([]string{path}, argv[1:]...), nil
		}
	}
	return nil, fmt.Errorf("no audio player found (tried %q and fallbacks)", p.binary)
}

// Validate checks that some player binary is available.
func (p *ExecPlayer) Validate() error {
	_, err := p.resolve()
	return err
}
