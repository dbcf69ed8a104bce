package bestseller

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
)

// CacheKeyNamespace prefixes every bestseller widget cache key.
const CacheKeyNamespace = "BESTSELLER_WIDGET"

// CacheKeyPolicy controls which request details feed the cache key.
// The zero value includes the full request parameter set.
type CacheKeyPolicy struct {
	OmitRequestParams bool
}

// CacheKeyInfo returns the values identifying this widget's rendered output.
func (w *Widget) CacheKeyInfo() ([]string, error) {
	cfg, err := w.Configuration()
	if err != nil {
		return nil, err
	}
	info := []string{
		CacheKeyNamespace,
		w.opts.Viewer.StoreID,
		w.opts.Viewer.ThemeID,
		w.opts.Viewer.CustomerGroup,
		strconv.Itoa(w.currentPage(cfg)),
		strconv.Itoa(cfg.ProductsCount()),
	}
	if !w.opts.CacheKeys.OmitRequestParams {
		info = append(info, serializeParams(w.opts.Params))
	}
	return info, nil
}

// CacheKey hashes CacheKeyInfo into a single cache identifier.
func (w *Widget) CacheKey() (string, error) {
	info, err := w.CacheKeyInfo()
	if err != nil {
		return "", err
	}
	sum := sha1.Sum([]byte(strings.Join(info, "\x1f")))
	return hex.EncodeToString(sum[:]), nil
}

// currentPage reads the page parameter; absent means 1 and non-numeric means 0.
func (w *Widget) currentPage(cfg *Configuration) int {
	values, ok := w.opts.Params[cfg.PageVarName()]
	if !ok || len(values) == 0 {
		return 1
	}
	page, err := strconv.Atoi(strings.TrimSpace(values[0]))
	if err != nil {
		return 0
	}
	return page
}

func serializeParams(params map[string][]string) string {
	if len(params) == 0 {
		return "{}"
	}
	b, err := json.Marshal(params)
	if err != nil {
		return "invalid"
	}
	return string(b)
}
