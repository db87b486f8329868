package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerBoardTools() {
	// ── get_board ──────────────────────────────────────
	s.addTool(mcp.NewTool("get_board",
		mcp.WithDescription("Get the whole board: viewport, notes in creation order, and image palettes"),
	), s.handleGetBoard)

	// ── arrange_notes ──────────────────────────────────
	s.addTool(mcp.NewTool("arrange_notes",
		mcp.WithDescription("Auto-arrange all notes in a grid layout, in creation order"),
		mcp.WithNumber("startX", mcp.Description("Starting X position (default 0)")),
		mcp.WithNumber("startY", mcp.Description("Starting Y position (default 0)")),
	), s.handleArrangeNotes)

	// ── get_palette ────────────────────────────────────
	s.addTool(mcp.NewTool("get_palette",
		mcp.WithDescription("Get the extracted color palette of an image note. Empty until extraction finishes."),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
	), s.handleGetPalette)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleGetBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	board, err := s.notes.Board()
	if err != nil {
		return nil, err
	}
	return jsonResult(board)
}

func (s *Server) handleArrangeNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	notes, err := s.notes.ListNotes()
	if err != nil {
		return nil, err
	}

	startX := getFloat(args, "startX", 0)
	startY := getFloat(args, "startY", 0)

	arranged := s.layout.ArrangeGroup(notes, startX, startY)
	for _, n := range arranged {
		if err := s.notes.UpdatePosition(ctx, n.ID, n.X, n.Y); err != nil {
			return nil, fmt.Errorf("update position %s: %w", n.ID, err)
		}
	}

	return textResult(fmt.Sprintf("Arranged %d notes", len(arranged))), nil
}

func (s *Server) handleGetPalette(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.getNoteForTool(req.GetArguments())
	if err != nil {
		return nil, err
	}
	if s.palettes == nil {
		return jsonResult([]any{})
	}
	return jsonResult(s.palettes.Palette(n.ID))
}
