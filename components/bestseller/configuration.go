package bestseller

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Widget option keys.
const (
	OptionProductsCount    = "products_count"
	OptionTitle            = "title"
	OptionSubtitle         = "subtitle"
	OptionDummyProductsIDs = "dummy_products_ids"
	OptionUseCarousel      = "use_carousel"
	OptionShowSalesChart   = "show_sales_chart"
	OptionPageVarName      = "page_var_name"
)

// Default option values.
const (
	DefaultProductsCount = 10
	DefaultTitle         = "Bestsellers"
	DefaultSubtitle      = ""
	DefaultPageVarName   = "p"
)

var optionDefaults = map[string]any{
	OptionProductsCount: DefaultProductsCount,
	OptionTitle:         DefaultTitle,
	OptionSubtitle:      DefaultSubtitle,
	OptionPageVarName:   DefaultPageVarName,
}

// Configuration resolves widget option values against fixed defaults.
// It is scoped to a single render; nothing is shared across widgets.
type Configuration struct {
	data map[string]any
}

// NewConfiguration builds a configuration backed by the given option data.
func NewConfiguration(data map[string]any) *Configuration {
	c := &Configuration{}
	c.SetData(data)
	return c
}

// SetData replaces the whole option mapping.
func (c *Configuration) SetData(data map[string]any) {
	copied := make(map[string]any, len(data))
	for key, value := range data {
		copied[key] = value
	}
	c.data = copied
}

// Data returns a copy of the option mapping.
func (c *Configuration) Data() map[string]any {
	out := make(map[string]any, len(c.data))
	for key, value := range c.data {
		out[key] = value
	}
	return out
}

// ProductsCount is the maximum number of report products to display.
// Values that cannot be read as an integer resolve to the default.
func (c *Configuration) ProductsCount() int {
	if count, ok := intValue(c.value(OptionProductsCount)); ok {
		return count
	}
	return DefaultProductsCount
}

// Title returns the widget heading.
func (c *Configuration) Title() string {
	return stringValue(c.value(OptionTitle), DefaultTitle)
}

// Subtitle returns the widget subheading.
func (c *Configuration) Subtitle() string {
	return stringValue(c.value(OptionSubtitle), DefaultSubtitle)
}

// PageVarName is the request parameter carrying the current page.
func (c *Configuration) PageVarName() string {
	name := strings.TrimSpace(stringValue(c.value(OptionPageVarName), DefaultPageVarName))
	if name == "" {
		return DefaultPageVarName
	}
	return name
}

// DummyProductIDs parses the placeholder id list in configured order.
func (c *Configuration) DummyProductIDs() []string {
	raw, ok := c.data[OptionDummyProductsIDs]
	if !ok || raw == nil {
		return []string{}
	}
	list := strings.TrimSpace(stringValue(raw, ""))
	if list == "" {
		return []string{}
	}
	parts := strings.Split(list, ",")
	ids := make([]string, len(parts))
	for i, part := range parts {
		ids[i] = strings.TrimSpace(part)
	}
	return ids
}

// UseCarousel reports whether products render in a carousel.
func (c *Configuration) UseCarousel() bool {
	return flagValue(c.data[OptionUseCarousel])
}

// ShowSalesChart reports whether a sales volume chart accompanies report mode.
func (c *Configuration) ShowSalesChart() bool {
	return flagValue(c.data[OptionShowSalesChart])
}

// value returns the configured value or the fixed default for the key.
func (c *Configuration) value(key string) any {
	if v, ok := c.data[key]; ok && v != nil {
		return v
	}
	return optionDefaults[key]
}

// flagValue is true only when the value equals 1.
func flagValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v == 1
	case int64:
		return v == 1
	case float64:
		return v == 1
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil && f == 1
	default:
		return false
	}
}

func intValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func stringValue(value any, fallback string) string {
	switch v := value.(type) {
	case nil:
		return fallback
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
