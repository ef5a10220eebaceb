package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/docforge/docforge/internal/adapters/outbound/gitinfo"
	"github.com/docforge/docforge/internal/adapters/outbound/history"
	"github.com/docforge/docforge/internal/adapters/outbound/tui"
	"github.com/docforge/docforge/internal/domain"
	"github.com/spf13/cobra"
)

func newDiagramCmd(flags *globalFlags) *cobra.Command {
	var (
		jsonOutput bool
		summary    bool
		render     string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "diagram [path]",
		Short: "Generate a PlantUML class diagram",
		Long:  "Scan a Java source tree and print a PlantUML class diagram of its classes and interfaces.",
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

			res, err := a.diagrams.Generate(cmd.Context(), absPath)
			if err != nil {
				return fmt.Errorf("diagram generation failed: %w", err)
			}

			entry := domain.RunEntry{
				Timestamp: time.Now().Format(time.RFC3339),
				Types:     len(res.Document.Types),
				Edges:     len(res.Document.Edges),
				Warnings:  len(res.Warnings),
			}
			if hash, err := gitinfo.New().CommitHash(absPath); err == nil {
				entry.CommitHash = hash
			}
			_ = history.New().Save(absPath, entry) // best-effort

			if render != "" {
				format, err := domain.ParseImageFormat(render)
				if err != nil {
					return err
				}
				img, err := a.diagrams.RenderDiagram(cmd.Context(), res.Document, format)
				if err != nil {
					return err
				}
				return writeOutput(cmd, outPath, img)
			}

			switch {
			case jsonOutput:
				data, err := json.MarshalIndent(newDiagramView(res), "", "  ")
				if err != nil {
					return err
				}
				return writeOutput(cmd, outPath, append(data, '\n'))
			case summary:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderDiagramSummary(res))
				return nil
			default:
				return writeOutput(cmd, outPath, []byte(res.PlantUML()))
			}
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the diagram and its model as JSON")
	cmd.Flags().BoolVar(&summary, "summary", false, "Show a summary table instead of the diagram")
	cmd.Flags().StringVar(&render, "render", "", "Render the diagram to an image: png or svg")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write output to a file instead of stdout")

	return cmd
}

type warningView struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

type diagramView struct {
	RootPath string                  `json:"root_path"`
	Files    int                     `json:"files"`
	PlantUML string                  `json:"plantuml"`
	Document *domain.DiagramDocument `json:"document"`
	Warnings []warningView           `json:"warnings"`
}

func newDiagramView(res *domain.DiagramResult) diagramView {
	v := diagramView{
		RootPath: res.RootPath,
		Files:    res.Files,
		PlantUML: res.PlantUML(),
		Document: res.Document,
		Warnings: []warningView{},
	}
	for _, w := range res.Warnings {
		v.Warnings = append(v.Warnings, warningView{File: w.File, Message: w.Message()})
	}
	return v
}

func writeOutput(cmd *cobra.Command, outPath string, data []byte) error {
	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}
	_, err := w.Write(data)
	return err
}
