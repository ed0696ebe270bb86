package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the simtree MCP tool set with s.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("detect_duplicates",
		mcp.WithDescription("Detect near-duplicate methods using APTED tree edit distance over normalized ASTs"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to source code (file or directory) to analyze")),
		mcp.WithNumber("threshold",
			mcp.Description("Minimum similarity threshold 0.0-1.0 (default: 0.87)")),
		mcp.WithNumber("min_lines",
			mcp.Description("Minimum method line count to consider (default: 5)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively scan directories (default: true)")),
	), HandleDetectDuplicates)
}
