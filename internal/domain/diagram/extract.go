package diagram

import "github.com/docforge/docforge/internal/domain"

// ExtractOptions tunes relationship extraction.
type ExtractOptions struct {
	// ResolveImports lets imports from other packages resolve to declared types.
	ResolveImports bool
}

// Extract builds the diagram document for units against registry. Type blocks
// follow unit order then source order; edges follow extraction order. Edges
// are only emitted towards names in the registry.
func Extract(units []*domain.SourceUnit, registry *domain.TypeRegistry, opts ExtractOptions) *domain.DiagramDocument {
	doc := &domain.DiagramDocument{
		Types: []domain.TypeDeclaration{},
		Edges: []domain.RelationshipEdge{},
	}

	for _, u := range units {
		if u == nil {
			continue
		}
		resolver := NewResolver(u, registry, opts.ResolveImports)
		for _, t := range u.Types {
			t.QualifiedName = domain.QualifiedName(u.Namespace, t.SimpleName)
			doc.Types = append(doc.Types, t)
			doc.Edges = append(doc.Edges, typeEdges(t, resolver)...)
		}
	}

	return doc
}

// typeEdges returns the edges of one declaration: field associations, then
// parameter and return dependencies per method, then super types and interfaces.
func typeEdges(t domain.TypeDeclaration, r *Resolver) []domain.RelationshipEdge {
	var edges []domain.RelationshipEdge
	add := func(ref domain.TypeRef, kind domain.EdgeKind, label string) {
		if target, ok := r.Target(ref); ok {
			edges = append(edges, domain.RelationshipEdge{
				Source: t.QualifiedName,
				Target: target,
				Kind:   kind,
				Label:  label,
			})
		}
	}

	for _, f := range t.Fields {
		add(f.Type, domain.EdgeAssociation, f.Name)
	}

	for _, m := range t.Methods {
		for _, p := range m.Parameters {
			add(p.Type, domain.EdgeDependency, "")
		}
		add(m.ReturnType, domain.EdgeDependency, "")
	}

	for _, s := range t.SuperTypes {
		add(s, domain.EdgeInheritance, "")
	}
	for _, i := range t.Interfaces {
		add(i, domain.EdgeRealization, "")
	}

	return edges
}
