// Package queue implements the disk-persisted tip queue shared between
// short-lived hook processes and the batch daemon. The queue file is the only
// shared mutable resource in the system; every access goes through a
// file-level exclusive lock with a bounded acquisition budget.
package queue

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/kitten"
)

// ErrLockBusy is returned when the queue lock cannot be acquired within the
// retry budget. Callers are expected to drop the operation rather than block;
// a missed tip is preferable to a stalled hook.
var ErrLockBusy = errors.New("queue lock busy")

const (
	defaultLockWait  = 500 * time.Millisecond
	defaultLockRetry = 25 * time.Millisecond
)

// TipQueue is a FIFO of tips persisted as JSON lines in a single shared
// file. Safe for concurrent use from independent processes.
type TipQueue struct {
	path      string
	lock      *flock.Flock
	lockWait  time.Duration
	lockRetry time.Duration
}

// Option configures a TipQueue.
type Option func(*TipQueue)

// WithLockBudget sets the total time Append and Drain spend trying to
// acquire the file lock before giving up.
func WithLockBudget(wait, retry time.Duration) Option {
	return func(q *TipQueue) {
		q.lockWait = wait
		q.lockRetry = retry
	}
}

// New creates a queue backed by the file at path, creating the parent
// directory if needed.
func New(path string, opts ...Option) (*TipQueue, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating queue directory: %w", err)
	}

	q := &TipQueue{
		path:      path,
		lock:      flock.New(path + ".lock"),
		lockWait:  defaultLockWait,
		lockRetry: defaultLockRetry,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q, nil
}

// Path returns the queue file location.
func (q *TipQueue) Path() string {
	return q.path
}

// Append persists one tip at the end of the queue. If the lock cannot be
// acquired within the budget the tip is dropped and ErrLockBusy returned.
func (q *TipQueue) Append(ctx context.Context, tip kitten.Tip) error {
	unlock, err := q.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	line, err := json.Marshal(tip)
	if err != nil {
		return fmt.Errorf("encoding tip: %w", err)
	}
	line = append(line, '\n')

	f, err := os.OpenFile(q.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening queue file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("appending tip: %w", err)
	}
	return nil
}

// Drain reads and removes all queued tips, returning them in append order.
// An empty or missing queue file yields an empty slice and no error, so a
// flush racing another flush is harmless.
func (q *TipQueue) Drain(ctx context.Context) ([]kitten.Tip, error) {
	unlock, err := q.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := os.ReadFile(q.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading queue file: %w", err)
	}

	tips := decodeTips(data)

	if err := os.Truncate(q.path, 0); err != nil {
		return nil, fmt.Errorf("clearing queue file: %w", err)
	}
	return tips, nil
}

// Len reports the number of queued tips without consuming them.
func (q *TipQueue) Len(ctx context.Context) (int, error) {
	unlock, err := q.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	data, err := os.ReadFile(q.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading queue file: %w", err)
	}
	return len(decodeTips(data)), nil
}

// decodeTips parses JSON lines, skipping anything malformed. A half-written
// line from a crashed writer must not wedge the whole queue.
func decodeTips(data []byte) []kitten.Tip {
	var tips []kitten.Tip
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var tip kitten.Tip
		if err := json.Unmarshal(line, &tip); err != nil {
			log.Warn("skipping malformed queue entry", "err", err)
			continue
		}
		tips = append(tips, tip)
	}
	return tips
}

// acquire takes the exclusive file lock, retrying until the budget runs out.
func (q *TipQueue) acquire(ctx context.Context) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, q.lockWait)

	locked, err := q.lock.TryLockContext(ctx, q.lockRetry)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		cancel()
		return nil, fmt.Errorf("acquiring queue lock: %w", err)
	}
	if !locked {
		cancel()
		return nil, ErrLockBusy
	}

	return func() {
		_ = q.lock.Unlock()
		cancel()
	}, nil
}
