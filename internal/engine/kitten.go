package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// generateScript runs inside the project virtualenv. Parameters arrive as
// JSON on stdin so no text ever touches a shell; the output WAV path is the
// sole argument. The short fade and padding keep players from clicking at
// clip edges.
const generateScript = `
import sys
import json
from kittentts import KittenTTS
import soundfile as sf
import numpy as np

params = json.loads(sys.stdin.read())

m = KittenTTS(params["model"])
audio = m.generate(params["text"], voice=params["voice"])

rate = params["sample_rate"]
padding = np.zeros(int(rate * 0.05))
fade = int(rate * 0.01)

if len(audio) > fade * 2:
    audio[:fade] *= np.linspace(0, 1, fade)
    audio[-fade:] *= np.linspace(1, 0, fade)

audio = np.concatenate([audio, padding])
sf.write(sys.argv[1], audio, rate)
`

// Kitten drives the KittenTTS model through the project virtualenv's python,
// one fresh process per synthesis.
type Kitten struct {
	model      string
	python     string
	workDir    string
	sampleRate int
	timeout    time.Duration
}

// KittenConfig holds configuration for the Kitten engine.
type KittenConfig struct {
	// Model identifier passed to KittenTTS (required).
	Model string

	// VenvDir is the virtualenv directory containing bin/python. Relative
	// paths resolve against WorkDir.
	VenvDir string

	// WorkDir is the directory the synthesis process runs in (defaults to
	// the current directory).
	WorkDir string

	// SampleRate of the generated audio (defaults to 24000).
	SampleRate int

	// Timeout for one synthesis call (defaults to 30s).
	Timeout time.Duration
}

// NewKitten creates a Kitten engine.
func NewKitten(config KittenConfig) (*Kitten, error) {
	if config.Model == "" {
		return nil, errors.New("model is required")
	}
	if config.VenvDir == "" {
		config.VenvDir = "tts_venv"
	}
	if config.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		config.WorkDir = wd
	}
	if config.SampleRate == 0 {
		config.SampleRate = 24000
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	venv := config.VenvDir
	if !filepath.IsAbs(venv) {
		venv = filepath.Join(config.WorkDir, venv)
	}

	return &Kitten{
		model:      config.Model,
		python:     filepath.Join(venv, "bin", "python"),
		workDir:    config.WorkDir,
		sampleRate: config.SampleRate,
		timeout:    config.Timeout,
	}, nil
}

// Synthesize generates WAV audio for text.
func (e *Kitten) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}

	params, err := json.Marshal(map[string]any{
		"model":       e.model,
		"text":        text,
		"voice":       voice,
		"sample_rate": e.sampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding synthesis params: %w", err)
	}

	script, err := os.CreateTemp("", "kitten-gen-*.py")
	if err != nil {
		return nil, fmt.Errorf("creating script file: %w", err)
	}
	defer os.Remove(script.Name())
	if _, err := script.WriteString(generateScript); err != nil {
		script.Close()
		return nil, fmt.Errorf("writing script file: %w", err)
	}
	script.Close()

	wav, err := os.CreateTemp("", "kitten-audio-*.wav")
	if err != nil {
		return nil, fmt.Errorf("creating audio file: %w", err)
	}
	wav.Close()
	defer os.Remove(wav.Name())

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.python, script.Name(), wav.Name())
	cmd.Dir = e.workDir

	// Pre-configured stdin avoids the race where the child reads before the
	// parent writes.
	cmd.Stdin = bytes.NewReader(params)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("synthesis timeout: %w", ctx.Err())
		}
		return nil, fmt.Errorf("synthesis failed: %w, stderr: %s", err, stderr.String())
	}

	audio, err := os.ReadFile(wav.Name())
	if err != nil {
		return nil, fmt.Errorf("reading generated audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesis produced no audio, stderr: %s", stderr.String())
	}
	return audio, nil
}

// Info returns engine capabilities.
func (e *Kitten) Info() Info {
	return Info{
		Name:        "kitten",
		SampleRate:  e.sampleRate,
		Channels:    1,
		BitDepth:    16,
		MaxTextSize: 5000,
		Offline:     true,
	}
}

// Validate checks the virtualenv python is present and executable.
func (e *Kitten) Validate() error {
	info, err := os.Stat(e.python)
	if err != nil {
		return fmt.Errorf("venv python not found at %s: %w", e.python, err)
	}
	if info.Mode()&0o111 == 0 {
		return fmt.Errorf("venv python at %s is not executable", e.python)
	}
	return nil
}
