package domain

import "github.com/elliotchance/orderedmap/v2"

// RegistryEntry records where a qualified type name was first declared.
type RegistryEntry struct {
	QualifiedName string   `json:"qualified_name"`
	Kind          TypeKind `json:"kind"`
	File          string   `json:"file"`
}

// TypeRegistry is the set of qualified type names declared in a scanned tree.
// It keeps discovery order and cannot be modified once built.
type TypeRegistry struct {
	entries *orderedmap.OrderedMap[string, RegistryEntry]
}

// NewTypeRegistry builds a registry from entries in discovery order.
// A repeated qualified name keeps its first entry.
func NewTypeRegistry(entries ...RegistryEntry) *TypeRegistry {
	m := orderedmap.NewOrderedMap[string, RegistryEntry]()
	for _, e := range entries {
		if _, exists := m.Get(e.QualifiedName); exists {
			continue
		}
		m.Set(e.QualifiedName, e)
	}
	return &TypeRegistry{entries: m}
}

// Contains reports whether name is a declared qualified type name.
func (r *TypeRegistry) Contains(name string) bool {
	if r == nil || r.entries == nil {
		return false
	}
	_, ok := r.entries.Get(name)
	return ok
}

// Lookup returns the entry for a qualified name.
func (r *TypeRegistry) Lookup(name string) (RegistryEntry, bool) {
	if r == nil || r.entries == nil {
		return RegistryEntry{}, false
	}
	return r.entries.Get(name)
}

// Len returns the number of distinct qualified names.
func (r *TypeRegistry) Len() int {
	if r == nil || r.entries == nil {
		return 0
	}
	return r.entries.Len()
}

// Names returns the qualified names in discovery order.
func (r *TypeRegistry) Names() []string {
	if r == nil || r.entries == nil {
		return []string{}
	}
	return r.entries.Keys()
}

// Entries returns a copy of all entries in discovery order.
func (r *TypeRegistry) Entries() []RegistryEntry {
	out := make([]RegistryEntry, 0, r.Len())
	if r == nil || r.entries == nil {
		return out
	}
	for el := r.entries.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}
