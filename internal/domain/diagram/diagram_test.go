package diagram_test

import (
	"testing"

	"github.com/docforge/docforge/internal/domain"
	"github.com/docforge/docforge/internal/domain/diagram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classRef(name string) domain.TypeRef {
	return domain.TypeRef{Text: name, Name: name}
}

func primitive(text string) domain.TypeRef {
	return domain.TypeRef{Text: text}
}

func shopUnits() []*domain.SourceUnit {
	return []*domain.SourceUnit{
		{
			Path:      "shop/Customer.java",
			Namespace: "shop",
			Types: []domain.TypeDeclaration{
				{SimpleName: "Customer", Kind: domain.KindClass},
			},
		},
		{
			Path:      "shop/Order.java",
			Namespace: "shop",
			Types: []domain.TypeDeclaration{
				{
					SimpleName: "Order",
					Kind:       domain.KindClass,
					Fields: []domain.FieldMember{
						{Visibility: domain.VisibilityPrivate, Type: classRef("Customer"), Name: "customer"},
					},
					Methods: []domain.MethodMember{
						{Visibility: domain.VisibilityPublic, ReturnType: classRef("String"), Name: "getId"},
					},
				},
			},
		},
	}
}

// --- BuildRegistry tests ---

func TestBuildRegistry_QualifiesWithNamespace(t *testing.T) {
	reg := diagram.BuildRegistry(shopUnits())
	assert.Equal(t, []string{"shop.Customer", "shop.Order"}, reg.Names())
	assert.True(t, reg.Contains("shop.Order"))
	assert.False(t, reg.Contains("Order"))
}

func TestBuildRegistry_EmptyNamespaceUsesSimpleName(t *testing.T) {
	units := []*domain.SourceUnit{
		{Path: "Main.java", Types: []domain.TypeDeclaration{{SimpleName: "Main", Kind: domain.KindClass}}},
	}
	reg := diagram.BuildRegistry(units)
	assert.Equal(t, []string{"Main"}, reg.Names())
}

func TestBuildRegistry_DuplicatesAbsorbed(t *testing.T) {
	units := []*domain.SourceUnit{
		{Path: "a/Dup.java", Namespace: "a", Types: []domain.TypeDeclaration{{SimpleName: "Dup", Kind: domain.KindClass}}},
		{Path: "b/Dup.java", Namespace: "a", Types: []domain.TypeDeclaration{{SimpleName: "Dup", Kind: domain.KindInterface}}},
	}
	reg := diagram.BuildRegistry(units)
	assert.Equal(t, 1, reg.Len())

	entry, ok := reg.Lookup("a.Dup")
	require.True(t, ok)
	assert.Equal(t, "a/Dup.java", entry.File, "first declaration wins")
}

func TestBuildRegistry_NoUnits(t *testing.T) {
	reg := diagram.BuildRegistry(nil)
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Names())
}

// --- Extract tests ---

func TestExtract_ShopScenario(t *testing.T) {
	units := shopUnits()
	reg := diagram.BuildRegistry(units)
	doc := diagram.Extract(units, reg, diagram.ExtractOptions{})

	require.Len(t, doc.Types, 2)
	assert.Equal(t, "shop.Customer", doc.Types[0].QualifiedName)
	assert.Equal(t, "shop.Order", doc.Types[1].QualifiedName)

	require.Len(t, doc.Edges, 1, "String is not declared in the tree")
	assert.Equal(t, "shop.Order --> shop.Customer : customer", doc.Edges[0].String())

	text := diagram.Assemble(doc)
	assert.Equal(t, `@startuml
class shop.Customer {
}
class shop.Order {
  - customer : Customer
  + getId() : String
}
shop.Order --> shop.Customer : customer
@enduml
`, text)
}

func TestExtract_EmptyInputStillWrapped(t *testing.T) {
	doc := diagram.Extract(nil, diagram.BuildRegistry(nil), diagram.ExtractOptions{})
	assert.Empty(t, doc.Types)
	assert.Empty(t, doc.Edges)
	assert.Equal(t, "@startuml\n@enduml\n", diagram.Assemble(doc))
}

func TestExtract_ExternalFieldTypeProducesNoEdge(t *testing.T) {
	units := []*domain.SourceUnit{
		{
			Path:      "app/Clock.java",
			Namespace: "app",
			Types: []domain.TypeDeclaration{{
				SimpleName: "Clock",
				Kind:       domain.KindClass,
				Fields: []domain.FieldMember{
					{Visibility: domain.VisibilityPrivate, Type: classRef("Instant"), Name: "now"},
					{Visibility: domain.VisibilityPrivate, Type: primitive("int"), Name: "ticks"},
				},
			}},
		},
	}
	doc := diagram.Extract(units, diagram.BuildRegistry(units), diagram.ExtractOptions{})
	assert.Empty(t, doc.Edges)
	assert.NotContains(t, doc.String(), "-->")
}

func TestExtract_InheritanceOnlyForDeclaredBase(t *testing.T) {
	sub := domain.TypeDeclaration{
		SimpleName: "Sub",
		Kind:       domain.KindClass,
		SuperTypes: []domain.TypeRef{classRef("Base")},
	}
	base := domain.TypeDeclaration{SimpleName: "Base", Kind: domain.KindClass}

	withBase := []*domain.SourceUnit{
		{Path: "Sub.java", Types: []domain.TypeDeclaration{sub}},
		{Path: "Base.java", Types: []domain.TypeDeclaration{base}},
	}
	doc := diagram.Extract(withBase, diagram.BuildRegistry(withBase), diagram.ExtractOptions{})
	require.Len(t, doc.Edges, 1)
	assert.Equal(t, domain.EdgeInheritance, doc.Edges[0].Kind)
	assert.Equal(t, "Sub <|.. Base", doc.Edges[0].String())

	withoutBase := []*domain.SourceUnit{
		{Path: "Sub.java", Types: []domain.TypeDeclaration{sub}},
	}
	doc = diagram.Extract(withoutBase, diagram.BuildRegistry(withoutBase), diagram.ExtractOptions{})
	assert.Empty(t, doc.Edges)
}

func TestExtract_RealizationSharesInheritanceGlyph(t *testing.T) {
	units := []*domain.SourceUnit{
		{Path: "p/Repo.java", Namespace: "p", Types: []domain.TypeDeclaration{{SimpleName: "Repo", Kind: domain.KindInterface}}},
		{Path: "p/SqlRepo.java", Namespace: "p", Types: []domain.TypeDeclaration{{
			SimpleName: "SqlRepo",
			Kind:       domain.KindClass,
			Interfaces: []domain.TypeRef{classRef("Repo")},
		}}},
	}
	doc := diagram.Extract(units, diagram.BuildRegistry(units), diagram.ExtractOptions{})
	require.Len(t, doc.Edges, 1)
	assert.Equal(t, domain.EdgeRealization, doc.Edges[0].Kind)
	assert.Equal(t, "p.SqlRepo <|.. p.Repo", doc.Edges[0].String())
}

func TestExtract_MethodDependencies(t *testing.T) {
	units := []*domain.SourceUnit{
		{Path: "p/Order.java", Namespace: "p", Types: []domain.TypeDeclaration{{SimpleName: "Order", Kind: domain.KindClass}}},
		{Path: "p/Invoice.java", Namespace: "p", Types: []domain.TypeDeclaration{{SimpleName: "Invoice", Kind: domain.KindClass}}},
		{Path: "p/Billing.java", Namespace: "p", Types: []domain.TypeDeclaration{{
			SimpleName: "Billing",
			Kind:       domain.KindClass,
			Methods: []domain.MethodMember{{
				Visibility: domain.VisibilityPublic,
				Name:       "bill",
				ReturnType: classRef("Invoice"),
				Parameters: []domain.Parameter{
					{Name: "order", Type: classRef("Order")},
					{Name: "count", Type: primitive("int")},
				},
			}},
		}}},
	}
	doc := diagram.Extract(units, diagram.BuildRegistry(units), diagram.ExtractOptions{})

	var rendered []string
	for _, e := range doc.Edges {
		rendered = append(rendered, e.String())
	}
	assert.Equal(t, []string{"p.Billing ..> p.Order", "p.Billing ..> p.Invoice"}, rendered,
		"parameters come before the return type")
}

func TestExtract_EdgeOrderPerDeclaration(t *testing.T) {
	units := []*domain.SourceUnit{
		{Path: "p/A.java", Namespace: "p", Types: []domain.TypeDeclaration{{
			SimpleName: "A",
			Kind:       domain.KindClass,
			Fields:     []domain.FieldMember{{Visibility: domain.VisibilityPackage, Type: classRef("B"), Name: "b"}},
			Methods: []domain.MethodMember{{
				Visibility: domain.VisibilityPublic, Name: "make", ReturnType: classRef("B"),
			}},
			SuperTypes: []domain.TypeRef{classRef("Base")},
			Interfaces: []domain.TypeRef{classRef("Api")},
		}}},
		{Path: "p/B.java", Namespace: "p", Types: []domain.TypeDeclaration{
			{SimpleName: "B", Kind: domain.KindClass},
			{SimpleName: "Base", Kind: domain.KindClass},
			{SimpleName: "Api", Kind: domain.KindInterface},
		}},
	}
	doc := diagram.Extract(units, diagram.BuildRegistry(units), diagram.ExtractOptions{})

	kinds := make([]domain.EdgeKind, len(doc.Edges))
	for i, e := range doc.Edges {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []domain.EdgeKind{
		domain.EdgeAssociation, domain.EdgeDependency, domain.EdgeInheritance, domain.EdgeRealization,
	}, kinds)
}

func TestExtract_TypeBlocksInDiscoveryOrder(t *testing.T) {
	units := []*domain.SourceUnit{
		{Path: "z/Zeta.java", Namespace: "z", Types: []domain.TypeDeclaration{{SimpleName: "Zeta", Kind: domain.KindClass}}},
		{Path: "a/Alpha.java", Namespace: "a", Types: []domain.TypeDeclaration{{SimpleName: "Alpha", Kind: domain.KindInterface}}},
	}
	doc := diagram.Extract(units, diagram.BuildRegistry(units), diagram.ExtractOptions{})
	require.Len(t, doc.Types, 2)
	assert.Equal(t, "z.Zeta", doc.Types[0].QualifiedName)
	assert.Equal(t, "a.Alpha", doc.Types[1].QualifiedName)
	assert.Contains(t, doc.String(), "interface a.Alpha {")
}

func TestExtract_Idempotent(t *testing.T) {
	units := shopUnits()
	reg := diagram.BuildRegistry(units)
	first := diagram.Assemble(diagram.Extract(units, reg, diagram.ExtractOptions{}))
	second := diagram.Assemble(diagram.Extract(units, reg, diagram.ExtractOptions{}))
	assert.Equal(t, first, second)
}

func TestExtract_MultipleAssociationsKeptPerField(t *testing.T) {
	units := []*domain.SourceUnit{
		{Path: "p/Route.java", Namespace: "p", Types: []domain.TypeDeclaration{{
			SimpleName: "Route",
			Kind:       domain.KindClass,
			Fields: []domain.FieldMember{
				{Visibility: domain.VisibilityPrivate, Type: classRef("Stop"), Name: "from"},
				{Visibility: domain.VisibilityPrivate, Type: classRef("Stop"), Name: "to"},
			},
		}}},
		{Path: "p/Stop.java", Namespace: "p", Types: []domain.TypeDeclaration{{SimpleName: "Stop", Kind: domain.KindClass}}},
	}
	doc := diagram.Extract(units, diagram.BuildRegistry(units), diagram.ExtractOptions{})
	require.Len(t, doc.Edges, 2)
	assert.Equal(t, "p.Route --> p.Stop : from", doc.Edges[0].String())
	assert.Equal(t, "p.Route --> p.Stop : to", doc.Edges[1].String())
}

func TestSummarize(t *testing.T) {
	units := shopUnits()
	doc := diagram.Extract(units, diagram.BuildRegistry(units), diagram.ExtractOptions{})
	s := diagram.Summarize(doc)
	assert.Equal(t, 2, s.Classes)
	assert.Equal(t, 0, s.Interfaces)
	assert.Equal(t, 1, s.Associations)
	assert.Equal(t, []string{"shop"}, diagram.Namespaces(doc))
}

func TestRoles(t *testing.T) {
	doc := &domain.DiagramDocument{Types: []domain.TypeDeclaration{
		{SimpleName: "OrderService"},
		{SimpleName: "UserService"},
		{SimpleName: "OrderRepository"},
		{SimpleName: "Order"},
	}}
	assert.Equal(t, []diagram.RoleCount{
		{Role: "Service", Count: 2},
		{Role: "Repository", Count: 1},
	}, diagram.Roles(doc))
}
