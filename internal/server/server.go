// Package server exposes the dispatcher over MCP stdio so the assistant can
// call speak, announce, and code_review as tools.
package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/dispatch"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/kitten"
)

// New builds the MCP server with the three speech tools registered against
// the given dispatcher.
func New(d *dispatch.Dispatcher) *server.MCPServer {
	s := server.NewMCPServer("kitten-tts", "1.0.0",
		server.WithToolCapabilities(false),
	)

	voices := make([]string, len(kitten.Voices))
	copy(voices, kitten.Voices)

	s.AddTool(
		mcp.NewTool("speak",
			mcp.WithDescription("Convert text to speech and play it aloud"),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("The text to speak"),
			),
			mcp.WithString("voice",
				mcp.Description("Voice to use"),
				mcp.Enum(voices...),
			),
			mcp.WithString("personality",
				mcp.Description("Speaking personality"),
				mcp.Enum("grizzled", "friendly", "professional", "zen"),
			),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			text, err := req.RequireString("text")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			personality, err := kitten.ParsePersonality(req.GetString("personality", ""))
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			status, err := d.Speak(ctx, text, req.GetString("voice", ""), personality)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(status), nil
		},
	)

	s.AddTool(
		mcp.NewTool("announce",
			mcp.WithDescription("Make a short spoken announcement with a tone-matched voice"),
			mcp.WithString("message",
				mcp.Required(),
				mcp.Description("The announcement message"),
			),
			mcp.WithString("tone",
				mcp.Description("Announcement tone"),
				mcp.Enum("success", "warning", "info", "error"),
			),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			message, err := req.RequireString("message")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			tone, err := kitten.ParseTone(req.GetString("tone", ""))
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			status, err := d.Announce(ctx, message, tone)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(status), nil
		},
	)

	s.AddTool(
		mcp.NewTool("code_review",
			mcp.WithDescription("Speak code review feedback as a grizzled senior engineer"),
			mcp.WithString("feedback",
				mcp.Required(),
				mcp.Description("The review feedback to speak"),
			),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			feedback, err := req.RequireString("feedback")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			status, err := d.CodeReview(ctx, feedback)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(status), nil
		},
	)

	return s
}

// ServeStdio runs the server over stdin/stdout until EOF.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
