// Package batch owns the batching window between tip arrival and speech.
// A single long-lived daemon runs one Scheduler; hook processes only ever
// append to the queue file, and the scheduler notices those appends through
// a filesystem watch.
package batch

import (
	"context"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/kitten"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/queue"
)

// Speaker speaks one combined batch message. Implemented by the dispatcher.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// SpeakerFunc adapts a plain function to the Speaker interface.
type SpeakerFunc func(ctx context.Context, text string) error

func (f SpeakerFunc) Speak(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Scheduler debounces queue appends into single utterances. Each new append
// resets the full batch window rather than extending a partial one: two tips
// arriving at t=0 and t=1 with a 3s window are spoken together at t=4. This
// keeps a burst of rapid edits quiet until the burst actually ends.
type Scheduler struct {
	queue   *queue.TipQueue
	speaker Speaker
	wait    time.Duration

	// fire carries debounce expirations into the Run loop so all speech
	// happens on one goroutine, serializing batches.
	fire chan struct{}
}

// New creates a scheduler flushing the given queue after wait of quiet.
func New(q *queue.TipQueue, speaker Speaker, wait time.Duration) *Scheduler {
	return &Scheduler{
		queue:   q,
		speaker: speaker,
		wait:    wait,
		fire:    make(chan struct{}, 1),
	}
}

// Run watches the queue file and flushes batches until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: the queue file itself may not exist yet, and
	// watching the parent survives truncation during drains.
	if err := watcher.Add(filepath.Dir(s.queue.Path())); err != nil {
		return err
	}

	// Anything left over from a previous run is spoken immediately.
	s.Flush(ctx)

	debounced := debounce.New(s.wait)
	trigger := func() {
		select {
		case s.fire <- struct{}{}:
		default:
		}
	}

	log.Debug("batch scheduler started", "queue", s.queue.Path(), "wait", s.wait)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != s.queue.Path() {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				debounced(trigger)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("queue watch error", "err", err)

		case <-s.fire:
			s.Flush(ctx)
		}
	}
}

// Flush drains the queue and speaks all pending tips as one utterance. An
// empty queue is a no-op, so a flush racing another flush stays silent.
// Failures are logged and swallowed; background speech is never critical.
func (s *Scheduler) Flush(ctx context.Context) {
	tips, err := s.queue.Drain(ctx)
	if err != nil {
		log.Warn("draining tip queue", "err", err)
		return
	}
	if len(tips) == 0 {
		return
	}

	message := Combine(tips)
	log.Debug("flushing batch", "tips", len(tips), "chars", len(message))

	if err := s.speaker.Speak(ctx, message); err != nil {
		log.Warn("speaking batch", "err", err)
	}
}

// Combine joins batched tips into one message, terminating each tip so the
// engine pauses between them.
func Combine(tips []kitten.Tip) string {
	parts := make([]string, 0, len(tips))
	for _, tip := range tips {
		text := strings.TrimSpace(tip.Text)
		if text == "" {
			continue
		}
		if last, _ := utf8.DecodeLastRuneInString(text); !strings.ContainsRune(".!?", last) {
			text += "."
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
