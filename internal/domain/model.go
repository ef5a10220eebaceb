package domain

import "strings"

// TypeKind distinguishes classes from interfaces.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindInterface TypeKind = "interface"
)

// Visibility is the access level declared on a member.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityPackage   Visibility = "package"
)

// Glyph returns the diagram marker for the visibility level.
// Anything that is not public, private or protected is package-private.
func (v Visibility) Glyph() string {
	switch v {
	case VisibilityPublic:
		return "+"
	case VisibilityPrivate:
		return "-"
	case VisibilityProtected:
		return "#"
	default:
		return "~"
	}
}

// TypeRef is a type as it appears in source. Name is the simple
// class-or-interface name used for resolution; it is empty for primitives,
// arrays and void, which never produce relationships.
type TypeRef struct {
	Text string `json:"text"`
	Name string `json:"name,omitempty"`
}

// IsClassOrInterface reports whether the reference names a class or interface type.
func (r TypeRef) IsClassOrInterface() bool { return r.Name != "" }

func (r TypeRef) String() string { return r.Text }

// Import is a single import declaration.
type Import struct {
	QualifiedName string `json:"qualified_name"`
	Static        bool   `json:"static,omitempty"`
	Wildcard      bool   `json:"wildcard,omitempty"`
}

// SimpleName returns the last segment of the imported name.
func (i Import) SimpleName() string {
	if idx := strings.LastIndex(i.QualifiedName, "."); idx >= 0 {
		return i.QualifiedName[idx+1:]
	}
	return i.QualifiedName
}

// Qualifier returns everything before the last segment, or "" for an unqualified import.
func (i Import) Qualifier() string {
	if idx := strings.LastIndex(i.QualifiedName, "."); idx >= 0 {
		return i.QualifiedName[:idx]
	}
	return ""
}

// SourceUnit is one parsed source file.
type SourceUnit struct {
	Path      string            `json:"path"`
	Namespace string            `json:"namespace,omitempty"`
	Imports   []Import          `json:"imports,omitempty"`
	Types     []TypeDeclaration `json:"types,omitempty"`
}

// FieldMember is one declared field variable.
type FieldMember struct {
	Visibility Visibility `json:"visibility"`
	Type       TypeRef    `json:"type"`
	Name       string     `json:"name"`
}

// Parameter is one formal method parameter.
type Parameter struct {
	Name string  `json:"name"`
	Type TypeRef `json:"type"`
}

// MethodMember is one declared method. Constructors are not members.
type MethodMember struct {
	Visibility Visibility  `json:"visibility"`
	ReturnType TypeRef     `json:"return_type"`
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

// TypeDeclaration is a class or interface found in a SourceUnit.
// For interfaces, extended interfaces are recorded in SuperTypes.
type TypeDeclaration struct {
	SimpleName    string         `json:"simple_name"`
	QualifiedName string         `json:"qualified_name"`
	Kind          TypeKind       `json:"kind"`
	Fields        []FieldMember  `json:"fields,omitempty"`
	Methods       []MethodMember `json:"methods,omitempty"`
	SuperTypes    []TypeRef      `json:"super_types,omitempty"`
	Interfaces    []TypeRef      `json:"interfaces,omitempty"`
}

// QualifiedName joins a namespace and a simple name, omitting an empty namespace.
func QualifiedName(namespace, simple string) string {
	if namespace == "" {
		return simple
	}
	return namespace + "." + simple
}
