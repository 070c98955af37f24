package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tayloree/fabric-chat/internal/catalog"
	"github.com/tayloree/fabric-chat/internal/filter"
)

func ptr(s string) *string { return &s }

func sampleFabrics() []catalog.Fabric {
	return []catalog.Fabric{
		{
			PatternName:  ptr("Tweed Multi"),
			Manufacturer: ptr("Acme"),
			Colorway:     ptr("Multicolour"),
			FabricType:   ptr("Wool"),
		},
		{
			PatternName:  ptr("Orange Grove"),
			Manufacturer: ptr("Sunny Mills"),
			Colorway:     ptr("Burnt Orange"),
			FabricType:   ptr("Cotton Canvas"),
		},
		{
			PatternName:  ptr("Herringbone"),
			Manufacturer: ptr("Acme"),
			Colorway:     ptr("Charcoal Grey"),
			FabricType:   ptr("Wool Blend"),
		},
		{
			PatternName:  ptr("Smith &amp; Co Plaid"),
			Manufacturer: ptr("Loomworks"),
		},
		{},
	}
}

func TestApply_NoFilters(t *testing.T) {
	result := filter.Apply(sampleFabrics(), filter.Options{})
	assert.Len(t, result, 5)
}

func TestApply_Manufacturer(t *testing.T) {
	result := filter.Apply(sampleFabrics(), filter.Options{Manufacturer: "acme"})
	assert.Len(t, result, 2)
	assert.Equal(t, "Tweed Multi", result[0].Pattern())
	assert.Equal(t, "Herringbone", result[1].Pattern())
}

func TestApply_ManufacturerPartialMatch(t *testing.T) {
	result := filter.Apply(sampleFabrics(), filter.Options{Manufacturer: "SUNNY"})
	assert.Len(t, result, 1)
	assert.Equal(t, "Orange Grove", result[0].Pattern())
}

func TestApply_ColorwaySynonyms(t *testing.T) {
	gray := filter.Apply(sampleFabrics(), filter.Options{Colorway: "gray"})
	assert.Len(t, gray, 1)
	assert.Equal(t, "Herringbone", gray[0].Pattern())

	multi := filter.Apply(sampleFabrics(), filter.Options{Colorway: "multicolor"})
	assert.Len(t, multi, 1)
	assert.Equal(t, "Tweed Multi", multi[0].Pattern())

	rust := filter.Apply(sampleFabrics(), filter.Options{Colorway: "rust"})
	assert.Len(t, rust, 1)
	assert.Equal(t, "Orange Grove", rust[0].Pattern())
}

func TestApply_FabricType(t *testing.T) {
	result := filter.Apply(sampleFabrics(), filter.Options{FabricType: "wool"})
	assert.Len(t, result, 2)
}

func TestApply_QuerySearchesAllFields(t *testing.T) {
	assert.Len(t, filter.Apply(sampleFabrics(), filter.Options{Query: "canvas"}), 1)
	assert.Len(t, filter.Apply(sampleFabrics(), filter.Options{Query: "loomworks"}), 1)
	assert.Len(t, filter.Apply(sampleFabrics(), filter.Options{Query: "grove"}), 1)
}

func TestApply_QueryMatchesUnescapedText(t *testing.T) {
	result := filter.Apply(sampleFabrics(), filter.Options{Query: "smith & co"})
	assert.Len(t, result, 1)
}

func TestApply_QueryNoMatch(t *testing.T) {
	result := filter.Apply(sampleFabrics(), filter.Options{Query: "xyz123"})
	assert.Empty(t, result)
}

func TestApply_Limit(t *testing.T) {
	result := filter.Apply(sampleFabrics(), filter.Options{Limit: 2})
	assert.Len(t, result, 2)
}

func TestApply_SortByName(t *testing.T) {
	result := filter.Apply(sampleFabrics(), filter.Options{Sort: "name"})

	assert.Len(t, result, 5)
	assert.Equal(t, "Herringbone", result[0].Pattern())
	assert.Equal(t, "Orange Grove", result[1].Pattern())
	assert.Equal(t, "", result[4].Pattern(), "fabrics without a name sort last")
}

func TestApply_SortByManufacturerIsStable(t *testing.T) {
	result := filter.Apply(sampleFabrics(), filter.Options{Sort: "maker"})

	assert.Equal(t, "Tweed Multi", result[0].Pattern())
	assert.Equal(t, "Herringbone", result[1].Pattern())
	assert.Equal(t, "Loomworks", result[2].Maker())
}

func TestApply_SortDoesNotReorderInput(t *testing.T) {
	items := sampleFabrics()
	filter.Apply(items, filter.Options{Sort: "name"})
	assert.Equal(t, "Tweed Multi", items[0].Pattern())
}

func TestApply_CombinedFilters(t *testing.T) {
	result := filter.Apply(sampleFabrics(), filter.Options{
		Manufacturer: "acme",
		FabricType:   "blend",
	})
	assert.Len(t, result, 1)
	assert.Equal(t, "Herringbone", result[0].Pattern())
}

func TestApply_NilFields(t *testing.T) {
	// The last fabric has no fields at all; it should not panic or match.
	result := filter.Apply(sampleFabrics(), filter.Options{Colorway: "anything"})
	assert.Empty(t, result)
}

func TestManufacturers(t *testing.T) {
	makers := filter.Manufacturers(sampleFabrics())

	assert.Equal(t, 2, makers["Acme"])
	assert.Equal(t, 1, makers["Sunny Mills"])
	assert.Equal(t, 1, makers["Loomworks"])
	assert.Len(t, makers, 3)
}

func TestNormalizeSortMode(t *testing.T) {
	assert.Equal(t, "name", filter.NormalizeSortMode("Pattern"))
	assert.Equal(t, "manufacturer", filter.NormalizeSortMode(" brand "))
	assert.Equal(t, "", filter.NormalizeSortMode(""))
	assert.Equal(t, "", filter.NormalizeSortMode("price"))
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello &amp; World", "Hello & World"},
		{"Line1\r\nLine2", "Line1 Line2"},
		{"  spaces  ", "spaces"},
		{"Eight O&#39;Clock", "Eight O'Clock"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, filter.CleanText(tt.input), "CleanText(%q)", tt.input)
	}
}
