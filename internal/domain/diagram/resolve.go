// Package diagram builds class diagrams from parsed source units: a known-type
// registry from a first pass, members and relationship edges from a second.
package diagram

import "github.com/docforge/docforge/internal/domain"

// Resolver maps type names as written in one source unit to qualified names.
type Resolver struct {
	namespace      string
	imports        []domain.Import
	registry       *domain.TypeRegistry
	resolveImports bool
}

// NewResolver returns a resolver for names appearing in unit.
// When resolveImports is set, a matching import of any package resolves to its
// qualified name if that name is in the registry.
func NewResolver(unit *domain.SourceUnit, registry *domain.TypeRegistry, resolveImports bool) *Resolver {
	return &Resolver{
		namespace:      unit.Namespace,
		imports:        unit.Imports,
		registry:       registry,
		resolveImports: resolveImports,
	}
}

// Resolve returns the qualified name for a simple type name, or the simple
// name unchanged when nothing matches.
func (r *Resolver) Resolve(simple string) string {
	// An import of a type from the current namespace.
	for _, imp := range r.imports {
		if imp.Static || imp.Wildcard {
			continue
		}
		if imp.SimpleName() == simple && imp.Qualifier() == r.namespace {
			return imp.QualifiedName
		}
	}

	if r.resolveImports {
		for _, imp := range r.imports {
			if imp.Static || imp.Wildcard {
				continue
			}
			if imp.SimpleName() == simple && r.registry.Contains(imp.QualifiedName) {
				return imp.QualifiedName
			}
		}
	}

	samePackage := domain.QualifiedName(r.namespace, simple)
	if r.registry.Contains(samePackage) {
		return samePackage
	}
	return simple
}

// Target resolves ref and reports whether the result is a declared type.
// Primitive, array and void references never resolve.
func (r *Resolver) Target(ref domain.TypeRef) (string, bool) {
	if !ref.IsClassOrInterface() {
		return "", false
	}
	name := r.Resolve(ref.Name)
	return name, r.registry.Contains(name)
}
