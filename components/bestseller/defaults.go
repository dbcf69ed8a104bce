package bestseller

// DefinitionCode identifies the bestseller widget definition.
const DefinitionCode = "storefront.widget.bestseller"

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code:        DefinitionCode,
		Name:        "Bestseller Products",
		Description: "Best selling products from the sales report, or a fixed placeholder list.",
		Category:    "catalog",
		Template:    "bestseller",
		Schema:      bestsellerSchema(),
	},
}

func bestsellerSchema() map[string]any {
	flag := map[string]any{
		"oneOf": []map[string]any{
			{"type": "integer", "enum": []int{0, 1}},
			{"type": "boolean"},
			{"type": "string", "enum": []string{"0", "1"}},
		},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			OptionProductsCount: map[string]any{
				"oneOf": []map[string]any{
					{"type": "integer", "minimum": 1},
					{"type": "string", "pattern": "^[1-9][0-9]*$"},
				},
				"default": DefaultProductsCount,
			},
			OptionTitle: map[string]any{
				"type":    "string",
				"default": DefaultTitle,
			},
			OptionSubtitle: map[string]any{
				"type":    "string",
				"default": DefaultSubtitle,
			},
			OptionDummyProductsIDs: map[string]any{
				"type":    "string",
				"pattern": `^\s*([^,\s]+\s*(,\s*[^,\s]+\s*)*)?$`,
			},
			OptionUseCarousel:    flag,
			OptionShowSalesChart: flag,
			OptionPageVarName: map[string]any{
				"type":      "string",
				"minLength": 1,
				"default":   DefaultPageVarName,
			},
		},
	}
}

// DefaultWidgetDefinitions returns copies of built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	out := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	copy(out, defaultWidgetDefinitions)
	return out
}
