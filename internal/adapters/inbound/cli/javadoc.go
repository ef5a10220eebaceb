package cli

import (
	"encoding/json"
	"fmt"

	"github.com/docforge/docforge/internal/adapters/outbound/tui"
	"github.com/docforge/docforge/internal/domain"
	"github.com/spf13/cobra"
)

func newJavadocCmd(flags *globalFlags) *cobra.Command {
	var (
		classpath  string
		repo       string
		branch     string
		outputDir  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "javadoc [path]",
		Short: "Generate javadoc HTML",
		Long: "Run javadoc over a Java source tree. Maven projects get their compile classpath resolved " +
			"automatically. With --repo the sources are cloned from a Git repository first.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, func(s *domain.Settings) {
				if outputDir != "" {
					s.Javadoc.OutputBaseDir = outputDir
				}
			})
			if err != nil {
				return err
			}
			defer a.close()

			var res *domain.JavadocResult
			if repo != "" {
				res, err = a.javadocs.GenerateFromRepository(cmd.Context(), domain.RepositoryRequest{
					RepoURL:   repo,
					Branch:    branch,
					Classpath: classpath,
				})
			} else {
				var absPath string
				if absPath, err = pathArg(args); err != nil {
					return err
				}
				res, err = a.javadocs.GenerateDocs(cmd.Context(), absPath, classpath)
			}
			if err != nil {
				return fmt.Errorf("javadoc generation failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderJavadocResult(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&classpath, "classpath", "", "Extra classpath entries (OS path list separator)")
	cmd.Flags().StringVar(&repo, "repo", "", "Git repository URL to clone and document")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch to clone with --repo (default: remote HEAD)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Base directory for generated docs (overrides javadoc.output_base_dir)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")

	return cmd
}
