package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewPageforgeMCPServer creates a new MCP server with all pageforge tools and
// resources registered. The sitePath is the root directory of the generated
// site to process.
func NewPageforgeMCPServer(sitePath string) *server.MCPServer {
	s := server.NewMCPServer(
		"pageforge",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, sitePath)
	registerResources(s, sitePath)

	return s
}
