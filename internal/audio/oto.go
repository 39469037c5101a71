package audio

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

// The oto context can only be created once per process, at a fixed sample
// rate. The first clip decides the rate; later clips at other rates are
// played anyway (slightly re-pitched) rather than dropped.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
)

func sharedContext(sampleRate, channels int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoErr = fmt.Errorf("initializing audio output: %w", err)
			return
		}
		<-ready
		otoCtx = ctx
		otoRate = sampleRate
	})
	if otoErr != nil {
		return nil, otoErr
	}
	if sampleRate != otoRate {
		log.Warn("sample rate mismatch for builtin playback", "clip", sampleRate, "output", otoRate)
	}
	return otoCtx, nil
}

// OtoPlayer plays WAV clips in-process, without an external player binary.
// Selected with AUDIO_PLAYER=builtin.
type OtoPlayer struct{}

// NewOtoPlayer creates the builtin player.
func NewOtoPlayer() *OtoPlayer {
	return &OtoPlayer{}
}

// Play decodes the WAV and streams its samples to the audio device,
// returning when the clip finishes or ctx is cancelled.
func (p *OtoPlayer) Play(ctx context.Context, wav []byte) error {
	pcm, sampleRate, channels, err := Decode(wav)
	if err != nil {
		return fmt.Errorf("decoding audio: %w", err)
	}

	octx, err := sharedContext(sampleRate, channels)
	if err != nil {
		return err
	}

	player := octx.NewPlayer(bytes.NewReader(pcm))
	defer player.Close()
	player.Play()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
