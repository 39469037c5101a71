// Package hook decodes assistant lifecycle events into tips. Hook processes
// are short-lived: read one event from stdin, maybe append one tip, exit 0.
package hook

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/kitten"
)

// Event is the JSON payload the assistant runtime writes to a hook's stdin.
// Only the fields this tool cares about are decoded.
type Event struct {
	HookEventName string    `json:"hook_event_name"`
	ToolName      string    `json:"tool_name"`
	ToolInput     ToolInput `json:"tool_input"`
	Message       string    `json:"message"`
}

// ToolInput carries the edited file path for PostToolUse events.
type ToolInput struct {
	FilePath string `json:"file_path"`
}

// ReadEvent decodes a single event from r. Trailing input is ignored.
func ReadEvent(r io.Reader) (Event, error) {
	var ev Event
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// ReadEventContext decodes one event from r, giving up when ctx expires. A
// runtime that never writes or closes the hook's stdin must not pin the hook
// process past its deadline. The reading goroutine may outlive the call; the
// process is about to exit anyway.
func ReadEventContext(ctx context.Context, r io.Reader) (Event, error) {
	type result struct {
		ev  Event
		err error
	}
	ch := make(chan result, 1)
	go func() {
		ev, err := ReadEvent(r)
		ch <- result{ev, err}
	}()

	select {
	case res := <-ch:
		return res.ev, res.err
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// editTools are the tool names whose PostToolUse events describe file edits.
var editTools = map[string]bool{
	"Edit":      true,
	"Write":     true,
	"MultiEdit": true,
}

// TipFromEvent maps an event to the tip it should enqueue. The second return
// is false for events that produce no speech.
func TipFromEvent(ev Event) (kitten.Tip, bool) {
	switch ev.HookEventName {
	case "PostToolUse":
		if !editTools[ev.ToolName] {
			return kitten.Tip{}, false
		}
		text := "Reviewed " + baseName(ev.ToolInput.FilePath)
		if msg := strings.TrimSpace(ev.Message); msg != "" {
			text += ". " + msg
		}
		return kitten.NewTip(text, kitten.SourceEditAnalysis), true

	case "Stop", "SubagentStop":
		text := strings.TrimSpace(ev.Message)
		if text == "" {
			text = "Task complete"
		}
		return kitten.NewTip(text, kitten.SourceTaskCompletion), true

	default:
		return kitten.Tip{}, false
	}
}

func baseName(path string) string {
	if path == "" {
		return "a file"
	}
	return filepath.Base(path)
}
