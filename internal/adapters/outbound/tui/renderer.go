package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/docforge/docforge/internal/domain"
	"github.com/docforge/docforge/internal/domain/diagram"
	"github.com/mattn/go-runewidth"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	ifaceTint = lipgloss.Color("#A3E635") // lime
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	classStyle    = lipgloss.NewStyle().Foreground(accent)
	ifaceStyle    = lipgloss.NewStyle().Foreground(ifaceTint)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderDiagramSummary formats the outcome of a diagram run for the terminal.
func RenderDiagramSummary(res *domain.DiagramResult) string {
	var b strings.Builder

	doc := res.Document
	if doc == nil {
		doc = &domain.DiagramDocument{}
	}
	s := diagram.Summarize(doc)

	// ── Header ──
	title := headerStyle.Render("docforge")
	subtitle := dimStyle.Render("Class Diagram")
	counts := titleStyle.Render(fmt.Sprintf("%d classes  %d interfaces  %d edges",
		s.Classes, s.Interfaces, len(doc.Edges)))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + counts))
	b.WriteString("\n\n")

	// ── Relationships ──
	b.WriteString("  " + titleStyle.Render("Relationships") + "\n")
	renderCount(&b, "association", "-->", s.Associations)
	renderCount(&b, "dependency", "..>", s.Dependencies)
	renderCount(&b, "inheritance", "<|..", s.Inheritance)
	renderCount(&b, "realization", "<|..", s.Realizations)
	b.WriteString("\n")

	// ── Namespaces ──
	if ns := diagram.Namespaces(doc); len(ns) > 0 {
		b.WriteString("  " + titleStyle.Render("Namespaces") + "\n")
		for _, n := range ns {
			b.WriteString("    " + dimStyle.Render(n) + "\n")
		}
		b.WriteString("\n")
	}

	// ── Roles ──
	if roles := diagram.Roles(doc); len(roles) > 0 {
		b.WriteString("  " + titleStyle.Render("Roles") + "\n")
		for _, r := range roles {
			fmt.Fprintf(&b, "    %s %s\n", padRight(r.Role, 24), dimStyle.Render(fmt.Sprintf("%d", r.Count)))
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine + "\n\n")

	// ── Warnings ──
	if len(res.Warnings) > 0 {
		b.WriteString("  " + titleStyle.Render("Skipped files") + "  ")
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", len(res.Warnings))))
		b.WriteString("\n\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "    %s %s\n", warnTagStyle.Render("warn "), fileStyle.Render(shortenPath(w.File)))
			fmt.Fprintf(&b, "         %s\n", dimStyle.Render(w.Message()))
		}
	} else {
		fmt.Fprintf(&b, "  %s\n", passStyle.Render(fmt.Sprintf("All %d files parsed.", res.Files)))
	}

	b.WriteString("\n")
	return b.String()
}

func renderCount(b *strings.Builder, name, glyph string, n int) {
	label := padRight(name, 14)
	fmt.Fprintf(b, "    %s %s  %s\n", label, faintStyle.Render(padRight(glyph, 5)), infoTagStyle.Render(fmt.Sprintf("%d", n)))
}

// RenderTypes lists registry entries as a table of kind, qualified name and file.
func RenderTypes(entries []domain.RegistryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No classes or interfaces found.") + "\n"
	}

	width := 0
	for _, e := range entries {
		width = max(width, runewidth.StringWidth(e.QualifiedName))
	}
	width = min(width, 60)

	var b strings.Builder
	b.WriteString("\n")
	for _, e := range entries {
		kind := classStyle.Render(padRight(string(e.Kind), 10))
		if e.Kind == domain.KindInterface {
			kind = ifaceStyle.Render(padRight(string(e.Kind), 10))
		}
		fmt.Fprintf(&b, "  %s %s  %s\n", kind, truncateOrPad(e.QualifiedName, width), fileStyle.Render(shortenPath(e.File)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf("%d types", len(entries))))
	return b.String()
}

// RenderJavadocResult formats a javadoc generation for the terminal.
func RenderJavadocResult(res *domain.JavadocResult) string {
	var b strings.Builder
	b.WriteString("\n")
	status := passStyle.Render("✓")
	if !res.IndexFound {
		status = failStyle.Render("✗")
	}
	fmt.Fprintf(&b, "  %s %s\n", status, titleStyle.Render(res.Message))
	fmt.Fprintf(&b, "    %s %s\n", padRight("sources", 10), dimStyle.Render(res.SourceDir))
	fmt.Fprintf(&b, "    %s %s\n", padRight("files", 10), dimStyle.Render(fmt.Sprintf("%d", res.Files)))
	if res.OutputDir != "" {
		fmt.Fprintf(&b, "    %s %s\n", padRight("output", 10), dimStyle.Render(res.OutputDir))
	}
	if res.CommitHash != "" {
		fmt.Fprintf(&b, "    %s %s\n", padRight("commit", 10), faintStyle.Render(shortHash(res.CommitHash)))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No diagram history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Diagram History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := shortHash(e.CommitHash)
		if hash == "" {
			hash = "·······"
		}

		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			titleStyle.Render(fmt.Sprintf("%d types", e.Types)),
			dimStyle.Render(fmt.Sprintf("%d edges", e.Edges)),
		)
		if e.Warnings > 0 {
			line += "  " + warnTagStyle.Render(fmt.Sprintf("%d skipped", e.Warnings))
		}

		if i > 0 {
			diff := e.Types - entries[i-1].Types
			if diff > 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func shortenPath(path string) string {
	if idx := strings.Index(path, "src/main/java/"); idx >= 0 {
		return path[idx+len("src/main/java/"):]
	}
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

// padRight pads by display width so wide identifiers stay aligned.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func truncateOrPad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
