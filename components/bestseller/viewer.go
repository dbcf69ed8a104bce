package bestseller

import (
	"context"
	"errors"
	"strings"
)

// Request headers carrying the storefront viewer context.
const (
	HeaderStoreID       = "X-Store-Id"
	HeaderThemeID       = "X-Theme-Id"
	HeaderCustomerGroup = "X-Customer-Group"
	HeaderLocale        = "Accept-Language"
)

// InstanceParam is the request parameter selecting a widget instance.
const InstanceParam = "instance"

// DefaultInstanceID is used when a request names no instance.
const DefaultInstanceID = "default"

// ErrInstanceNotFound is returned when a request names an unknown widget instance.
var ErrInstanceNotFound = errors.New("bestseller: widget instance not found")

// Store and customer group used when a request does not name one. DefaultStoreID
// also selects every store in bestseller aggregates.
const (
	DefaultStoreID     = "0"
	GuestCustomerGroup = "0"
)

// ViewerFromHeaders builds a viewer context from a header lookup function.
// Missing store and customer group values fall back to "0", the default store view
// and the guest group.
func ViewerFromHeaders(get func(string) string) ViewerContext {
	viewer := ViewerContext{
		StoreID:       strings.TrimSpace(get(HeaderStoreID)),
		ThemeID:       strings.TrimSpace(get(HeaderThemeID)),
		CustomerGroup: strings.TrimSpace(get(HeaderCustomerGroup)),
		Locale:        strings.TrimSpace(get(HeaderLocale)),
	}
	if viewer.StoreID == "" {
		viewer.StoreID = DefaultStoreID
	}
	if viewer.CustomerGroup == "" {
		viewer.CustomerGroup = GuestCustomerGroup
	}
	if idx := strings.IndexAny(viewer.Locale, ",;"); idx >= 0 {
		viewer.Locale = viewer.Locale[:idx]
	}
	return viewer
}

// InstanceSource looks up configured widget instances.
type InstanceSource interface {
	Instance(ctx context.Context, id string) (WidgetInstance, error)
}

// StaticInstances serves widget instances from a fixed map keyed by instance id.
type StaticInstances map[string]WidgetInstance

// Instance implements InstanceSource.
func (s StaticInstances) Instance(_ context.Context, id string) (WidgetInstance, error) {
	if id == "" {
		id = DefaultInstanceID
	}
	instance, ok := s[id]
	if !ok {
		return WidgetInstance{}, ErrInstanceNotFound
	}
	if instance.ID == "" {
		instance.ID = id
	}
	if instance.DefinitionID == "" {
		instance.DefinitionID = DefinitionCode
	}
	return instance, nil
}
