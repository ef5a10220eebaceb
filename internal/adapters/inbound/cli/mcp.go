package cli

import (
	"fmt"
	"os"

	mcpadapter "github.com/docforge/docforge/internal/adapters/inbound/mcp"
	"github.com/docforge/docforge/internal/domain"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the docforge MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(flags))
	return cmd
}

func newMCPServeCmd(flags *globalFlags) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start docforge MCP server (stdio)",
		Long:  "Start the docforge MCP server using stdio transport. This lets AI coding assistants request class diagrams, type listings and javadoc for a Java project.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := pathArg([]string{projectPath})
			if err != nil {
				return err
			}
			if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
				return fmt.Errorf("project path %s is not a directory", absPath)
			}
			// stdout carries the protocol, so logs must stay off it.
			a, err := newApp(flags, func(s *domain.Settings) {
				if s.Logging.Output == "stdout" {
					s.Logging.Output = "stderr"
				}
			})
			if err != nil {
				return err
			}
			defer a.close()

			s := mcpadapter.NewDocforgeMCPServer(absPath, version, mcpadapter.Services{
				Diagrams: a.diagrams,
				Javadocs: a.javadocs,
			})
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project path (defaults to current working directory)")

	return cmd
}
