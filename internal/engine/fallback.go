package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Chain tries engines in order, falling through on synthesis failure. A
// broken primary engine degrades speech quality instead of silencing it.
type Chain struct {
	engines []Engine
}

// NewChain creates a fallback chain. At least one engine is required.
func NewChain(engines ...Engine) (*Chain, error) {
	if len(engines) == 0 {
		return nil, errors.New("chain needs at least one engine")
	}
	return &Chain{engines: engines}, nil
}

// Synthesize tries each engine until one succeeds.
func (c *Chain) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	var errs []error
	for _, e := range c.engines {
		audio, err := e.Synthesize(ctx, text, voice)
		if err == nil {
			return audio, nil
		}
		log.Warn("engine failed, trying next", "engine", e.Info().Name, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", e.Info().Name, err))

		// A dead context will fail every remaining engine the same way.
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("all engines failed: %w", errors.Join(errs...))
}

// Info returns the first validating engine's capabilities, or the first
// engine's when none validate.
func (c *Chain) Info() Info {
	for _, e := range c.engines {
		if e.Validate() == nil {
			return e.Info()
		}
	}
	return c.engines[0].Info()
}

// Validate passes when any engine in the chain validates.
func (c *Chain) Validate() error {
	var errs []error
	for _, e := range c.engines {
		if err := e.Validate(); err == nil {
			return nil
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", e.Info().Name, err))
		}
	}
	return errors.Join(errs...)
}
