package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docforge/docforge/internal/domain"
)

// registerResources registers all docforge MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, svc Services) {
	s.AddResource(
		mcplib.NewResource(
			"docforge://diagram",
			"Class Diagram",
			mcplib.WithResourceDescription("PlantUML class diagram of the project"),
			mcplib.WithMIMEType("text/plain"),
		),
		handleDiagramResource(projectPath, svc),
	)

	s.AddResource(
		mcplib.NewResource(
			"docforge://summary",
			"Diagram Summary",
			mcplib.WithResourceDescription("Type and relationship counts for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleSummaryResource(projectPath, svc),
	)

	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"docforge://namespaces/{name}",
			"Namespace Types",
			mcplib.WithTemplateDescription("Classes and interfaces declared in one package"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleNamespaceResource(projectPath, svc),
	)
}

func handleDiagramResource(projectPath string, svc Services) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		res, err := svc.Diagrams.Generate(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("diagram generation failed: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "docforge://diagram",
				MIMEType: "text/plain",
				Text:     res.PlantUML(),
			},
		}, nil
	}
}

func handleSummaryResource(projectPath string, svc Services) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		res, err := svc.Diagrams.Generate(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("diagram generation failed: %w", err)
		}
		data, err := json.MarshalIndent(diagramSummary(res), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling summary: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "docforge://summary",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleNamespaceResource(projectPath string, svc Services) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		name, ok := request.Params.Arguments["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("namespace name is required")
		}

		registry, _, err := svc.Diagrams.ScanDeclarations(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		data, err := json.MarshalIndent(inNamespace(registry.Entries(), name), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling types: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

// inNamespace keeps entries declared directly in ns, not in sub-packages.
func inNamespace(entries []domain.RegistryEntry, ns string) []domain.RegistryEntry {
	out := []domain.RegistryEntry{}
	for _, e := range entries {
		idx := strings.LastIndex(e.QualifiedName, ".")
		if idx >= 0 && e.QualifiedName[:idx] == ns {
			out = append(out, e)
		}
	}
	return out
}
