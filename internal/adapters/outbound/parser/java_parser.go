package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/docforge/docforge/internal/domain"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// declarationQuery matches every class and interface in a file, nested and
// local ones included. Enums, records and annotation types are not matched.
const declarationQuery = `
	(class_declaration name: (identifier) @name) @decl
	(interface_declaration name: (identifier) @name) @decl
`

// ErrSyntax is returned for files the grammar cannot parse cleanly.
var ErrSyntax = errors.New("syntax error")

// JavaParser implements domain.SourceParser using tree-sitter.
// It is safe for concurrent use; each call gets its own parser and cursor.
type JavaParser struct {
	lang  *sitter.Language
	query *sitter.Query
}

func New() (*JavaParser, error) {
	lang := sitter.NewLanguage(tree_sitter_java.Language())
	q, qerr := sitter.NewQuery(lang, declarationQuery)
	if qerr != nil {
		return nil, fmt.Errorf("compiling declaration query: %s", qerr.Message)
	}
	return &JavaParser{lang: lang, query: q}, nil
}

// Close releases the compiled query.
func (p *JavaParser) Close() {
	if p.query != nil {
		p.query.Close()
	}
}

func (p *JavaParser) ParseFile(filePath string) (*domain.SourceUnit, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filePath, err)
	}
	unit, err := p.ParseSource(filePath, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	return unit, nil
}

// ParseSource parses src as the contents of filePath.
func (p *JavaParser) ParseSource(filePath string, src []byte) (*domain.SourceUnit, error) {
	tsParser := sitter.NewParser()
	defer tsParser.Close()
	if err := tsParser.SetLanguage(p.lang); err != nil {
		return nil, err
	}

	tree := tsParser.Parse(src, nil)
	if tree == nil {
		return nil, ErrSyntax
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, ErrSyntax
	}

	unit := &domain.SourceUnit{Path: filePath}
	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		switch child.Kind() {
		case "package_declaration":
			unit.Namespace = packageName(child, src)
		case "import_declaration":
			unit.Imports = append(unit.Imports, importOf(child, src))
		}
	}

	unit.Types = p.declarations(root, src)
	return unit, nil
}

func (p *JavaParser) declarations(root *sitter.Node, src []byte) []domain.TypeDeclaration {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	names := p.query.CaptureNames()
	var decls []domain.TypeDeclaration

	matches := cursor.Matches(p.query, root, src)
	for m := matches.Next(); m != nil; m = matches.Next() {
		var declNode *sitter.Node
		var name string
		for _, c := range m.Captures {
			node := c.Node
			switch names[c.Index] {
			case "decl":
				declNode = &node
			case "name":
				name = node.Utf8Text(src)
			}
		}
		if declNode == nil || name == "" {
			continue
		}
		decls = append(decls, declaration(declNode, name, src))
	}
	return decls
}

func declaration(node *sitter.Node, name string, src []byte) domain.TypeDeclaration {
	decl := domain.TypeDeclaration{SimpleName: name, Kind: domain.KindClass}

	if node.Kind() == "interface_declaration" {
		decl.Kind = domain.KindInterface
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child.Kind() == "extends_interfaces" {
				decl.SuperTypes = append(decl.SuperTypes, typeList(child, src)...)
			}
		}
	} else {
		if sc := node.ChildByFieldName("superclass"); sc != nil {
			decl.SuperTypes = append(decl.SuperTypes, typeList(sc, src)...)
		}
		if ifaces := node.ChildByFieldName("interfaces"); ifaces != nil {
			decl.Interfaces = append(decl.Interfaces, typeList(ifaces, src)...)
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return decl
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(i)
		switch member.Kind() {
		case "field_declaration", "constant_declaration":
			decl.Fields = append(decl.Fields, fields(member, src)...)
		case "method_declaration":
			decl.Methods = append(decl.Methods, method(member, src))
		}
	}
	return decl
}

func fields(node *sitter.Node, src []byte) []domain.FieldMember {
	vis := visibility(node)
	typ := typeRef(node.ChildByFieldName("type"), src)

	var out []domain.FieldMember
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "variable_declarator" {
			continue
		}
		out = append(out, domain.FieldMember{
			Visibility: vis,
			Type:       withDimensions(typ, child, src),
			Name:       fieldText(child, "name", src),
		})
	}
	return out
}

func method(node *sitter.Node, src []byte) domain.MethodMember {
	m := domain.MethodMember{
		Visibility: visibility(node),
		ReturnType: typeRef(node.ChildByFieldName("type"), src),
		Name:       fieldText(node, "name", src),
	}

	params := node.ChildByFieldName("parameters")
	if params == nil {
		return m
	}
	for i := uint(0); i < params.NamedChildCount(); i++ {
		param := params.NamedChild(i)
		switch param.Kind() {
		case "formal_parameter":
			m.Parameters = append(m.Parameters, domain.Parameter{
				Name: fieldText(param, "name", src),
				Type: withDimensions(typeRef(param.ChildByFieldName("type"), src), param, src),
			})
		case "spread_parameter":
			m.Parameters = append(m.Parameters, spreadParameter(param, src))
		}
	}
	return m
}

// spreadParameter handles "T... name". The recorded type is the element type.
func spreadParameter(node *sitter.Node, src []byte) domain.Parameter {
	var p domain.Parameter
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch {
		case child.Kind() == "variable_declarator":
			p.Name = fieldText(child, "name", src)
		case child.Kind() == "modifiers":
		case isTypeNode(child.Kind()) && p.Type.Text == "":
			p.Type = typeRef(child, src)
		}
	}
	return p
}

// visibility reads the access modifier of a member declaration.
// Annotations and other modifiers are ignored.
func visibility(node *sitter.Node) domain.Visibility {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		mods := node.NamedChild(i)
		if mods.Kind() != "modifiers" {
			continue
		}
		for j := uint(0); j < mods.ChildCount(); j++ {
			switch mods.Child(j).Kind() {
			case "public":
				return domain.VisibilityPublic
			case "private":
				return domain.VisibilityPrivate
			case "protected":
				return domain.VisibilityProtected
			}
		}
	}
	return domain.VisibilityPackage
}

func isTypeNode(kind string) bool {
	switch kind {
	case "type_identifier", "scoped_type_identifier", "generic_type", "array_type",
		"integral_type", "floating_point_type", "boolean_type", "void_type", "annotated_type":
		return true
	}
	return false
}

// typeRef converts a type node. Only class and interface types get a Name.
func typeRef(node *sitter.Node, src []byte) domain.TypeRef {
	if node == nil {
		return domain.TypeRef{}
	}
	ref := domain.TypeRef{Text: normalize(node.Utf8Text(src))}
	ref.Name = className(node, src)
	return ref
}

// withDimensions appends C-style declarator dimensions, as in "int c[]",
// to ref. The result is an array type and never names a class.
func withDimensions(ref domain.TypeRef, declarator *sitter.Node, src []byte) domain.TypeRef {
	dims := declarator.ChildByFieldName("dimensions")
	if dims == nil {
		return ref
	}
	return domain.TypeRef{Text: normalize(ref.Text + dims.Utf8Text(src))}
}

// className returns the simple name of a class or interface type node:
// "List" for List<Order>, "Entry" for Map.Entry. Anything else yields "".
func className(node *sitter.Node, src []byte) string {
	switch node.Kind() {
	case "type_identifier":
		return node.Utf8Text(src)
	case "scoped_type_identifier":
		for i := node.NamedChildCount(); i > 0; i-- {
			child := node.NamedChild(i - 1)
			if child.Kind() == "type_identifier" {
				return child.Utf8Text(src)
			}
		}
	case "generic_type":
		if node.NamedChildCount() > 0 {
			return className(node.NamedChild(0), src)
		}
	case "annotated_type":
		if n := node.NamedChildCount(); n > 0 {
			return className(node.NamedChild(n-1), src)
		}
	}
	return ""
}

// typeList collects the types under an extends/implements clause.
func typeList(node *sitter.Node, src []byte) []domain.TypeRef {
	var refs []domain.TypeRef
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() == "type_list" {
			refs = append(refs, typeList(child, src)...)
			continue
		}
		if isTypeNode(child.Kind()) {
			refs = append(refs, typeRef(child, src))
		}
	}
	return refs
}

func packageName(node *sitter.Node, src []byte) string {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "identifier", "scoped_identifier":
			return child.Utf8Text(src)
		}
	}
	return ""
}

func importOf(node *sitter.Node, src []byte) domain.Import {
	var imp domain.Import
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "static":
			imp.Static = true
		case "asterisk":
			imp.Wildcard = true
		case "identifier", "scoped_identifier":
			imp.QualifiedName = child.Utf8Text(src)
		}
	}
	return imp
}

func fieldText(node *sitter.Node, field string, src []byte) string {
	if child := node.ChildByFieldName(field); child != nil {
		return child.Utf8Text(src)
	}
	return ""
}

// normalize puts type text in canonical form: one line, no blanks inside
// angle or square brackets, and ", " between type arguments.
// "Map< String ,Integer >" becomes "Map<String, Integer>".
func normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ',':
			b.WriteString(", ")
			if i+1 < len(s) && s[i+1] == ' ' {
				i++
			}
		case c == ' ' && (strings.IndexByte("<[", s[i-1]) >= 0 || strings.IndexByte("<>[],", s[i+1]) >= 0):
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
