package diagram

import (
	"strings"

	"github.com/docforge/docforge/internal/domain"
)

// Assemble renders a document as PlantUML text.
func Assemble(doc *domain.DiagramDocument) string {
	if doc == nil {
		doc = &domain.DiagramDocument{}
	}
	return doc.String()
}

// Summary counts what a document contains.
type Summary struct {
	Classes      int `json:"classes"`
	Interfaces   int `json:"interfaces"`
	Associations int `json:"associations"`
	Dependencies int `json:"dependencies"`
	Inheritance  int `json:"inheritance"`
	Realizations int `json:"realizations"`
}

// Summarize counts declarations by kind and edges by kind.
func Summarize(doc *domain.DiagramDocument) Summary {
	var s Summary
	if doc == nil {
		return s
	}
	for _, t := range doc.Types {
		if t.Kind == domain.KindInterface {
			s.Interfaces++
		} else {
			s.Classes++
		}
	}
	for _, e := range doc.Edges {
		switch e.Kind {
		case domain.EdgeAssociation:
			s.Associations++
		case domain.EdgeDependency:
			s.Dependencies++
		case domain.EdgeInheritance:
			s.Inheritance++
		case domain.EdgeRealization:
			s.Realizations++
		}
	}
	return s
}

// Namespaces returns the distinct namespaces of the document's types, in
// first-seen order. The empty namespace is reported as "(default)".
func Namespaces(doc *domain.DiagramDocument) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range doc.Types {
		ns := "(default)"
		if idx := strings.LastIndex(t.QualifiedName, "."); idx >= 0 {
			ns = t.QualifiedName[:idx]
		}
		if !seen[ns] {
			seen[ns] = true
			out = append(out, ns)
		}
	}
	return out
}
