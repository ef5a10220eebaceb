package cli

import (
	"encoding/json"
	"fmt"

	"github.com/docforge/docforge/internal/adapters/outbound/tui"
	"github.com/spf13/cobra"
)

func newTypesCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "types [path]",
		Short: "List declared classes and interfaces",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := pathArg(args)
			if err != nil {
				return err
			}

			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			registry, _, err := a.diagrams.ScanDeclarations(cmd.Context(), absPath)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(registry.Entries())
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderTypes(registry.Entries()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output types as JSON")
	return cmd
}
