package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docforge/docforge/internal/adapters/outbound/config"
	"github.com/docforge/docforge/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var keyComments = map[string]string{
	"exclude_paths":     "Directory names or root-relative paths skipped while scanning.",
	"respect_gitignore": "Skip files matched by the root .gitignore. Off when omitted.",
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a " + config.FileName + " configuration file",
		Long:  "Create a " + config.FileName + " with sensible defaults for a Java project.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := pathArg(args)
			if err != nil {
				return err
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			content, err := generateConfig()
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, content, 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing "+config.FileName)

	return cmd
}

func generateConfig() ([]byte, error) {
	respect := true
	cfg := domain.ProjectConfig{
		ExcludePaths:     []string{"target", "build"},
		RespectGitignore: &respect,
	}

	var node yaml.Node
	if err := node.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	node.HeadComment = "docforge project configuration"
	for i := 0; i+1 < len(node.Content); i += 2 {
		if c, ok := keyComments[node.Content[i].Value]; ok {
			node.Content[i].HeadComment = c
		}
	}

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	out = append(out, `
# Files parsed concurrently per pass (default: number of CPUs, at most 64).
# parallelism: 8

# Follow imports from other packages when they name a scanned type.
# resolve_imports: true
`...)
	return out, nil
}
