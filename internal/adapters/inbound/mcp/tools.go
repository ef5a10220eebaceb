package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docforge/docforge/internal/domain"
	"github.com/docforge/docforge/internal/domain/diagram"
)

// registerTools registers all docforge MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, svc Services) {
	s.AddTool(
		mcplib.NewTool("docforge_generate_diagram",
			mcplib.WithDescription("Generate a PlantUML class diagram for a Java source tree"),
			mcplib.WithString("path", mcplib.Description("Source directory, relative to the project root (default: project root)")),
			mcplib.WithBoolean("summary", mcplib.Description("Return type and relationship counts as JSON instead of the diagram text")),
		),
		handleGenerateDiagram(projectPath, svc),
	)

	s.AddTool(
		mcplib.NewTool("docforge_list_types",
			mcplib.WithDescription("List every class and interface declared in a Java source tree, with the file declaring it"),
			mcplib.WithString("path", mcplib.Description("Source directory, relative to the project root (default: project root)")),
		),
		handleListTypes(projectPath, svc),
	)

	s.AddTool(
		mcplib.NewTool("docforge_generate_javadoc",
			mcplib.WithDescription("Run javadoc over a Java source tree and return where the HTML was written"),
			mcplib.WithString("path", mcplib.Description("Source directory, relative to the project root (default: project root)")),
			mcplib.WithString("classpath", mcplib.Description("Extra classpath entries, separated by the OS path list separator")),
		),
		handleGenerateJavadoc(projectPath, svc),
	)
}

func handleGenerateDiagram(projectPath string, svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		root := resolvePath(projectPath, args)

		res, err := svc.Diagrams.Generate(ctx, root)
		if err != nil {
			return errorResult(fmt.Sprintf("diagram generation failed: %v", err)), nil
		}

		if summary, _ := args["summary"].(bool); summary {
			return jsonResult(diagramSummary(res))
		}
		return textResult(res.PlantUML()), nil
	}
}

func handleListTypes(projectPath string, svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		root := resolvePath(projectPath, request.GetArguments())

		registry, warnings, err := svc.Diagrams.ScanDeclarations(ctx, root)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}

		return jsonResult(map[string]any{
			"types":    registry.Entries(),
			"warnings": warningMessages(warnings),
		})
	}
}

func handleGenerateJavadoc(projectPath string, svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		root := resolvePath(projectPath, args)
		classpath, _ := args["classpath"].(string)

		res, err := svc.Javadocs.GenerateDocs(ctx, root, classpath)
		if err != nil {
			return errorResult(fmt.Sprintf("javadoc failed: %v", err)), nil
		}
		return jsonResult(res)
	}
}

// resolvePath reads the optional "path" argument relative to projectPath.
func resolvePath(projectPath string, args map[string]any) string {
	p, _ := args["path"].(string)
	switch {
	case p == "":
		return projectPath
	case filepath.IsAbs(p):
		return p
	default:
		return filepath.Join(projectPath, p)
	}
}

type summaryView struct {
	Root       string          `json:"root"`
	Files      int             `json:"files"`
	Counts     diagram.Summary `json:"counts"`
	Namespaces []string        `json:"namespaces"`
	Warnings   []string        `json:"warnings,omitempty"`
}

func diagramSummary(res *domain.DiagramResult) summaryView {
	return summaryView{
		Root:       res.RootPath,
		Files:      res.Files,
		Counts:     diagram.Summarize(res.Document),
		Namespaces: diagram.Namespaces(res.Document),
		Warnings:   warningMessages(res.Warnings),
	}
}

func warningMessages(ws []domain.FileParseWarning) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Error())
	}
	return out
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return textResult(string(data)), nil
}

func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
