package domain

import (
	"fmt"
	"strings"
)

// EdgeKind is the kind of relationship between two declared types.
type EdgeKind string

const (
	EdgeAssociation EdgeKind = "association"
	EdgeDependency  EdgeKind = "dependency"
	EdgeInheritance EdgeKind = "inheritance"
	EdgeRealization EdgeKind = "realization"
)

// Diagram markers wrapping every document.
const (
	DiagramStart = "@startuml"
	DiagramEnd   = "@enduml"
)

// RelationshipEdge connects two qualified names that are both in the registry.
type RelationshipEdge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   EdgeKind `json:"kind"`
	Label  string   `json:"label,omitempty"`
}

// String renders the edge in PlantUML notation. Inheritance and realization
// share a glyph.
func (e RelationshipEdge) String() string {
	switch e.Kind {
	case EdgeAssociation:
		if e.Label == "" {
			return e.Source + " --> " + e.Target
		}
		return e.Source + " --> " + e.Target + " : " + e.Label
	case EdgeDependency:
		return e.Source + " ..> " + e.Target
	default:
		return e.Source + " <|.. " + e.Target
	}
}

// DiagramDocument is the ordered set of type blocks and edges for one tree.
type DiagramDocument struct {
	Types []TypeDeclaration  `json:"types"`
	Edges []RelationshipEdge `json:"edges"`
}

// String renders the document in PlantUML class-diagram notation.
func (d *DiagramDocument) String() string {
	var b strings.Builder
	b.WriteString(DiagramStart + "\n")
	for _, t := range d.Types {
		writeTypeBlock(&b, t)
	}
	for _, e := range d.Edges {
		b.WriteString(e.String())
		b.WriteString("\n")
	}
	b.WriteString(DiagramEnd + "\n")
	return b.String()
}

func writeTypeBlock(b *strings.Builder, t TypeDeclaration) {
	fmt.Fprintf(b, "%s %s {\n", t.Kind, t.QualifiedName)
	for _, f := range t.Fields {
		fmt.Fprintf(b, "  %s\n", FormatField(f))
	}
	for _, m := range t.Methods {
		fmt.Fprintf(b, "  %s\n", FormatMethod(m))
	}
	b.WriteString("}\n")
}

// FormatField renders a field as "<glyph> <name> : <type>".
func FormatField(f FieldMember) string {
	return f.Visibility.Glyph() + " " + f.Name + " : " + f.Type.Text
}

// FormatMethod renders a method as "<glyph> <name>(<p>: <t>, ...) : <return>".
func FormatMethod(m MethodMember) string {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = p.Name + ": " + p.Type.Text
	}
	return m.Visibility.Glyph() + " " + m.Name + "(" + strings.Join(params, ", ") + ") : " + m.ReturnType.Text
}
