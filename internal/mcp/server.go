package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"noteboard/internal/domain"
	"noteboard/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for the note board.
// It exposes the board's operations as tools so AI agents can read and
// arrange the canvas.
type Server struct {
	mcp      *server.MCPServer
	layout   *LayoutEngine
	handlers map[string]server.ToolHandlerFunc

	// Services (injected from app layer)
	notes    *service.NoteService
	viewport *service.ViewportService
	palettes *service.PaletteService
	imports  *service.ImportService
}

// Deps holds all dependencies passed from the App layer to the MCP server.
// Events reach the frontend through the services' own emitter.
type Deps struct {
	Notes      *service.NoteService
	Viewport   *service.ViewportService
	Palettes   *service.PaletteService
	Imports    *service.ImportService
	NoteWidth  float64
	NoteHeight float64
}

// New creates and configures a new MCP server with all tools.
func New(deps Deps) *Server {
	s := &Server{
		layout:   NewLayoutEngine(deps.NoteWidth, deps.NoteHeight),
		handlers: make(map[string]server.ToolHandlerFunc),
		notes:    deps.Notes,
		viewport: deps.Viewport,
		palettes: deps.Palettes,
		imports:  deps.Imports,
	}

	s.mcp = server.NewMCPServer(
		"noteboard-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerBoardTools()
	s.registerNoteTools()
	s.registerViewportTools()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// getNoteForTool retrieves a note and validates it exists.
func (s *Server) getNoteForTool(args map[string]any) (*domain.Note, error) {
	noteID, ok := args["noteId"].(string)
	if !ok || noteID == "" {
		return nil, fmt.Errorf("noteId is required")
	}
	n, err := s.notes.GetNote(noteID)
	if err != nil {
		return nil, fmt.Errorf("get note %s: %w", noteID, err)
	}
	return n, nil
}

// placement returns (x, y) from args, or the next free layout slot when
// either coordinate is missing.
func (s *Server) placement(args map[string]any) (float64, float64, error) {
	x, hasX := args["x"].(float64)
	y, hasY := args["y"].(float64)
	if hasX && hasY {
		return x, y, nil
	}
	notes, err := s.notes.ListNotes()
	if err != nil {
		return 0, 0, err
	}
	x, y = s.layout.NextPosition(notes)
	return x, y, nil
}

// addTool registers a tool with the MCP server and keeps its handler by name.
func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.handlers[tool.Name] = handler
	s.mcp.AddTool(tool, handler)
}

// CallTool invokes a registered tool handler directly, bypassing the transport.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	handler, ok := s.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return handler(ctx, req)
}

// Tools returns the names of all registered tools.
func (s *Server) Tools() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
