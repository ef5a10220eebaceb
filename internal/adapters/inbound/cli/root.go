package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "docforge",
		Short: "Class diagrams and javadoc for Java source trees",
		Long: "docforge reads a Java source tree and produces a PlantUML class diagram of its " +
			"classes, interfaces and relationships. It can also drive javadoc, locally or for a Git repository.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Settings file (default: ./docforge.yaml if present)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDiagramCmd(flags))
	cmd.AddCommand(newTypesCmd(flags))
	cmd.AddCommand(newJavadocCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newMCPCmd(flags))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newHistoryCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
