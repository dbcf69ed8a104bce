package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-bestseller/components/bestseller"
	"github.com/goliatone/go-bestseller/components/bestseller/commands"
)

// Handlers exposes storefront widget endpoints backed by shared commands and queries.
type Handlers struct {
	Instances  bestseller.InstanceSource
	Render     gocommand.Querier[bestseller.RenderRequest, bestseller.RenderedWidget]
	Payload    gocommand.Querier[bestseller.RenderRequest, map[string]any]
	Invalidate gocommand.Commander[commands.InvalidateIdentitiesInput]
}

// HandleRenderWidget writes the rendered widget HTML.
func (h *Handlers) HandleRenderWidget(w http.ResponseWriter, r *http.Request) {
	req, ok := h.renderRequest(w, r)
	if !ok {
		return
	}
	rendered, err := h.Render.Query(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if rendered.Cached {
		w.Header().Set("X-Widget-Cache", "HIT")
	} else {
		w.Header().Set("X-Widget-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rendered.HTML))
}

// HandleWidgetPayload writes the widget payload as JSON.
func (h *Handlers) HandleWidgetPayload(w http.ResponseWriter, r *http.Request) {
	req, ok := h.renderRequest(w, r)
	if !ok {
		return
	}
	payload, err := h.Payload.Query(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// HandleInvalidate drops cached widget output for the posted identities.
func (h *Handlers) HandleInvalidate(w http.ResponseWriter, r *http.Request) {
	var payload commands.InvalidateIdentitiesInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Invalidate.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) renderRequest(w http.ResponseWriter, r *http.Request) (bestseller.RenderRequest, bool) {
	if h.Instances == nil {
		http.Error(w, "widget instances not configured", http.StatusInternalServerError)
		return bestseller.RenderRequest{}, false
	}
	params := r.URL.Query()
	instance, err := h.Instances.Instance(r.Context(), params.Get(bestseller.InstanceParam))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, bestseller.ErrInstanceNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return bestseller.RenderRequest{}, false
	}
	return bestseller.RenderRequest{
		Instance: instance,
		Viewer:   bestseller.ViewerFromHeaders(r.Header.Get),
		Params:   params,
	}, true
}
