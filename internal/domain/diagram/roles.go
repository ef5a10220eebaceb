package diagram

import (
	"sort"

	"github.com/docforge/docforge/internal/domain"
	"github.com/fatih/camelcase"
)

// RoleCount is the number of declarations sharing a trailing name word.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// Roles groups declarations by the last CamelCase word of their simple name,
// so OrderService and UserService both count towards "Service". Single-word
// names are not counted. Results are sorted by count, then role.
func Roles(doc *domain.DiagramDocument) []RoleCount {
	counts := make(map[string]int)
	for _, t := range doc.Types {
		words := camelcase.Split(t.SimpleName)
		if len(words) < 2 {
			continue
		}
		counts[words[len(words)-1]]++
	}

	out := make([]RoleCount, 0, len(counts))
	for role, n := range counts {
		out = append(out, RoleCount{Role: role, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Role < out[j].Role
	})
	return out
}
