package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/docforge/docforge/internal/application"
)

// Services are the application services exposed over MCP.
type Services struct {
	Diagrams *application.DiagramService
	Javadocs *application.JavadocService
}

// NewDocforgeMCPServer creates an MCP server with all docforge tools and
// resources registered. projectPath is the default source root; tool calls
// may name a different directory relative to it.
func NewDocforgeMCPServer(projectPath, version string, svc Services) *server.MCPServer {
	s := server.NewMCPServer(
		"docforge",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, svc)
	registerResources(s, projectPath, svc)

	return s
}
