package bestseller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationDefaults(t *testing.T) {
	cfg := NewConfiguration(nil)

	assert.Equal(t, DefaultProductsCount, cfg.ProductsCount())
	assert.Equal(t, "Bestsellers", cfg.Title())
	assert.Equal(t, "", cfg.Subtitle())
	assert.Empty(t, cfg.DummyProductIDs())
	assert.False(t, cfg.UseCarousel())
	assert.Equal(t, "p", cfg.PageVarName())
}

func TestConfigurationReturnsConfiguredValues(t *testing.T) {
	cfg := NewConfiguration(map[string]any{
		OptionProductsCount: 4,
		OptionTitle:         "Top picks",
		OptionSubtitle:      "This week",
	})

	assert.Equal(t, 4, cfg.ProductsCount())
	assert.Equal(t, "Top picks", cfg.Title())
	assert.Equal(t, "This week", cfg.Subtitle())
}

func TestConfigurationNilValuesUseDefaults(t *testing.T) {
	cfg := NewConfiguration(map[string]any{
		OptionProductsCount: nil,
		OptionTitle:         nil,
	})

	assert.Equal(t, DefaultProductsCount, cfg.ProductsCount())
	assert.Equal(t, DefaultTitle, cfg.Title())
}

func TestConfigurationProductsCountFromStringAndJSONNumber(t *testing.T) {
	assert.Equal(t, 6, NewConfiguration(map[string]any{OptionProductsCount: "6"}).ProductsCount())
	assert.Equal(t, 3, NewConfiguration(map[string]any{OptionProductsCount: float64(3)}).ProductsCount())
	assert.Equal(t, DefaultProductsCount, NewConfiguration(map[string]any{OptionProductsCount: "many"}).ProductsCount())
}

func TestConfigurationSetDataReplacesWholeMapping(t *testing.T) {
	cfg := NewConfiguration(map[string]any{OptionTitle: "First", OptionSubtitle: "Sub"})
	cfg.SetData(map[string]any{OptionTitle: "Second"})

	assert.Equal(t, "Second", cfg.Title())
	assert.Equal(t, DefaultSubtitle, cfg.Subtitle())
}

func TestConfigurationCopiesInput(t *testing.T) {
	data := map[string]any{OptionTitle: "Original"}
	cfg := NewConfiguration(data)
	data[OptionTitle] = "Mutated"

	assert.Equal(t, "Original", cfg.Title())
}

func TestConfigurationDummyProductIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{name: "ordered list", raw: "3,5,9", want: []string{"3", "5", "9"}},
		{name: "whitespace trimmed", raw: " 3 , 5 ", want: []string{"3", "5"}},
		{name: "single", raw: "10", want: []string{"10"}},
		{name: "empty", raw: "", want: []string{}},
		{name: "blank", raw: "   ", want: []string{}},
		{name: "nil", raw: nil, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfiguration(map[string]any{OptionDummyProductsIDs: tt.raw})
			assert.Equal(t, tt.want, cfg.DummyProductIDs())
		})
	}
}

func TestConfigurationUseCarousel(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want bool
	}{
		{name: "int one", raw: 1, want: true},
		{name: "float one", raw: float64(1), want: true},
		{name: "string one", raw: "1", want: true},
		{name: "bool true", raw: true, want: true},
		{name: "zero", raw: 0, want: false},
		{name: "two", raw: 2, want: false},
		{name: "string yes", raw: "yes", want: false},
		{name: "bool false", raw: false, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfiguration(map[string]any{OptionUseCarousel: tt.raw})
			assert.Equal(t, tt.want, cfg.UseCarousel())
		})
	}
	assert.False(t, NewConfiguration(map[string]any{}).UseCarousel())
}
