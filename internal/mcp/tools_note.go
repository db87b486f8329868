package mcpserver

import (
	"context"
	"fmt"

	"noteboard/internal/canvas"
	"noteboard/internal/domain"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerNoteTools() {
	// ── add_text_note ──────────────────────────────────
	s.addTool(mcp.NewTool("add_text_note",
		mcp.WithDescription("Add a text note. Position is auto-calculated if x or y is omitted."),
		mcp.WithString("content", mcp.Description("Note text (optional, defaults to the configured text)")),
		mcp.WithNumber("x", mcp.Description("X position in world coordinates (optional)")),
		mcp.WithNumber("y", mcp.Description("Y position in world coordinates (optional)")),
	), s.handleAddTextNote)

	// ── add_image_note ─────────────────────────────────
	s.addTool(mcp.NewTool("add_image_note",
		mcp.WithDescription("Add an image note from an image file on disk (png, jpeg, gif, webp, bmp)"),
		mcp.WithString("path", mcp.Description("Absolute path to the image file"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("X position in world coordinates (optional)")),
		mcp.WithNumber("y", mcp.Description("Y position in world coordinates (optional)")),
	), s.handleAddImageNote)

	// ── move_note ──────────────────────────────────────
	s.addTool(mcp.NewTool("move_note",
		mcp.WithDescription("Move a note to a new position on the canvas"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("New X position"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("New Y position"), mcp.Required()),
	), s.handleMoveNote)

	// ── update_note_content ────────────────────────────
	s.addTool(mcp.NewTool("update_note_content",
		mcp.WithDescription("Replace the text of a text note"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
		mcp.WithString("content", mcp.Description("New content"), mcp.Required()),
	), s.handleUpdateNoteContent)

	// ── remove_note ────────────────────────────────────
	s.addTool(mcp.NewTool("remove_note",
		mcp.WithDescription("Remove a note from the board. Image notes release their image."),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleRemoveNote)
}

func boolPtr(v bool) *bool { return &v }

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleAddTextNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	x, y, err := s.placement(args)
	if err != nil {
		return nil, err
	}

	n, err := s.notes.AddNote(ctx, domain.NoteTypeText, canvas.Point{X: x, Y: y}, getString(args, "content"))
	if err != nil {
		return nil, err
	}
	return jsonResult(n)
}

func (s *Server) handleAddImageNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path := getString(args, "path")
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	x, y, err := s.placement(args)
	if err != nil {
		return nil, err
	}

	n, err := s.imports.ImportFileAt(ctx, path, canvas.Point{X: x, Y: y})
	if err != nil {
		return nil, err
	}
	return jsonResult(n)
}

func (s *Server) handleMoveNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	n, err := s.getNoteForTool(args)
	if err != nil {
		return nil, err
	}

	x := getFloat(args, "x", n.X)
	y := getFloat(args, "y", n.Y)
	if err := s.notes.UpdatePosition(ctx, n.ID, x, y); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Moved note %s to (%.0f, %.0f)", n.ID, x, y)), nil
}

func (s *Server) handleUpdateNoteContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	n, err := s.getNoteForTool(args)
	if err != nil {
		return nil, err
	}
	if n.Type != domain.NoteTypeText {
		return nil, fmt.Errorf("note %s is an %s note; only text notes have content", n.ID, n.Type)
	}

	content, ok := args["content"].(string)
	if !ok {
		return nil, fmt.Errorf("content is required")
	}
	if err := s.notes.UpdateContent(ctx, n.ID, content); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Updated note %s", n.ID)), nil
}

func (s *Server) handleRemoveNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.getNoteForTool(req.GetArguments())
	if err != nil {
		return nil, err
	}
	if err := s.notes.RemoveNote(ctx, n.ID); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Removed note %s", n.ID)), nil
}
