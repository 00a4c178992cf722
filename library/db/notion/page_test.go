package notion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func float64Ptr(n float64) *float64 { return &n }

// TestPropertyValue verifies the type-tag dispatch for every supported
// property type, plus the unknown-tag default arm.
func TestPropertyValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		prop   Property
		expect any
	}{
		{"title runs concatenated", Property{
			Type:  TypeTitle,
			Title: []RichText{{PlainText: "Hello, "}, {PlainText: "world"}},
		}, "Hello, world"},
		{"empty title", Property{Type: TypeTitle}, ""},
		{"rich text runs concatenated", Property{
			Type:     TypeRichText,
			RichText: []RichText{{PlainText: "a"}, {PlainText: "b"}},
		}, "ab"},
		{"date start", Property{
			Type: TypeDate,
			Date: &DateValue{Start: "2025-01-01"},
		}, "2025-01-01"},
		{"date unset", Property{Type: TypeDate}, nil},
		{"multi select names in order", Property{
			Type:        TypeMultiSelect,
			MultiSelect: []SelectOption{{Name: "x"}, {Name: "z"}},
		}, []string{"x", "z"}},
		{"checkbox verbatim", Property{
			Type:     TypeCheckbox,
			Checkbox: boolPtr(false),
		}, false},
		{"select name", Property{
			Type:   TypeSelect,
			Select: &SelectOption{Name: "Draft"},
		}, "Draft"},
		{"select unset", Property{Type: TypeSelect}, nil},
		{"number", Property{
			Type:   TypeNumber,
			Number: float64Ptr(42),
		}, float64(42)},
		{"number null defaults to zero", Property{Type: TypeNumber}, float64(0)},
		{"relation first id", Property{
			Type:     TypeRelation,
			Relation: []Relation{{ID: "page-1"}, {ID: "page-2"}},
		}, "page-1"},
		{"relation empty", Property{Type: TypeRelation}, nil},
		{"unknown tag", Property{Type: "formula"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expect, tc.prop.Value())
		})
	}
}

// TestPageAccessors verifies the typed accessors never fail for missing
// property names.
func TestPageAccessors(t *testing.T) {
	t.Parallel()

	page := &Page{
		Object:      "page",
		ID:          "id-1",
		CreatedTime: "2024-06-01T08:00:00.000Z",
		Properties: map[string]Property{
			"Title": {Type: TypeTitle, Title: []RichText{{PlainText: "A post"}}},
			"Tags": {Type: TypeMultiSelect,
				MultiSelect: []SelectOption{{Name: "go"}, {Name: "web"}}},
			"Published": {Type: TypeCheckbox, Checkbox: boolPtr(true)},
			"Progress":  {Type: TypeNumber, Number: float64Ptr(30)},
			"Status":    {Type: TypeSelect, Select: &SelectOption{Name: "Edit"}},
			"Due Date":  {Type: TypeDate, Date: &DateValue{Start: "2025-02-03"}},
			"Blog Post": {Type: TypeRelation, Relation: []Relation{{ID: "post-9"}}},
		},
	}

	title, ok := page.Text("Title")
	require.True(t, ok)
	require.Equal(t, "A post", title)

	_, ok = page.Text("Nope")
	require.False(t, ok)

	require.Equal(t, []string{"go", "web"}, page.Strings("Tags"))
	require.Nil(t, page.Strings("Nope"))

	published, ok := page.Checkbox("Published")
	require.True(t, ok)
	require.True(t, published)

	_, ok = page.Checkbox("Nope")
	require.False(t, ok)

	require.Equal(t, float64(30), page.Number("Progress"))
	require.Equal(t, float64(0), page.Number("Nope"))
	require.Equal(t, "Edit", page.SelectName("Status"))
	require.Equal(t, "", page.SelectName("Nope"))
	require.Equal(t, "2025-02-03", page.DateStart("Due Date"))
	require.Equal(t, "", page.DateStart("Nope"))
	require.Equal(t, "post-9", page.RelationID("Blog Post"))
	require.Equal(t, "", page.RelationID("Nope"))
	require.Equal(t, "2024-06-01", page.CreatedDate())
}

func TestPageFull(t *testing.T) {
	t.Parallel()

	require.True(t, (&Page{Object: "page", Properties: map[string]Property{}}).Full())
	require.False(t, (&Page{Object: "page"}).Full())
	require.False(t, (&Page{Object: "partial_page", Properties: map[string]Property{}}).Full())

	var nilPage *Page
	require.False(t, nilPage.Full())
}
