package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerViewportTools() {
	// ── pan_viewport ───────────────────────────────────
	s.addTool(mcp.NewTool("pan_viewport",
		mcp.WithDescription("Pan the viewport by (dx, dy) screen pixels"),
		mcp.WithNumber("dx", mcp.Description("Horizontal offset"), mcp.Required()),
		mcp.WithNumber("dy", mcp.Description("Vertical offset"), mcp.Required()),
	), s.handlePanViewport)

	// ── zoom_viewport ──────────────────────────────────
	s.addTool(mcp.NewTool("zoom_viewport",
		mcp.WithDescription("Set the viewport scale. Values outside the zoom limits are clamped."),
		mcp.WithNumber("scale", mcp.Description("Scale factor, 1 is 100%"), mcp.Required()),
	), s.handleZoomViewport)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handlePanViewport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	vp := s.viewport.Pan(ctx, getFloat(args, "dx", 0), getFloat(args, "dy", 0))
	return jsonResult(vp)
}

func (s *Server) handleZoomViewport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	scale, ok := args["scale"].(float64)
	if !ok {
		return nil, fmt.Errorf("scale is required")
	}
	return jsonResult(s.viewport.SetScale(ctx, scale))
}
