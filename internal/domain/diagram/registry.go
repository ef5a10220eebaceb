package diagram

import "github.com/docforge/docforge/internal/domain"

// Declarations lists every type declared in units, in unit order then source order.
func Declarations(units []*domain.SourceUnit) []domain.RegistryEntry {
	var entries []domain.RegistryEntry
	for _, u := range units {
		if u == nil {
			continue
		}
		for _, t := range u.Types {
			entries = append(entries, domain.RegistryEntry{
				QualifiedName: domain.QualifiedName(u.Namespace, t.SimpleName),
				Kind:          t.Kind,
				File:          u.Path,
			})
		}
	}
	return entries
}

// BuildRegistry collects the qualified names declared in units.
// Duplicate names are absorbed.
func BuildRegistry(units []*domain.SourceUnit) *domain.TypeRegistry {
	return domain.NewTypeRegistry(Declarations(units)...)
}
