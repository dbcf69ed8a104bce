package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	bestseller "github.com/goliatone/go-bestseller/components/bestseller"
)

type renderService interface {
	Render(ctx context.Context, req bestseller.RenderRequest) (bestseller.RenderedWidget, error)
}

// RenderWidgetQuery renders a widget instance for the requesting storefront viewer.
type RenderWidgetQuery struct {
	service renderService
}

// NewRenderWidgetQuery builds the query.
func NewRenderWidgetQuery(service renderService) *RenderWidgetQuery {
	return &RenderWidgetQuery{service: service}
}

var _ gocommand.Querier[bestseller.RenderRequest, bestseller.RenderedWidget] = (*RenderWidgetQuery)(nil)

// Query renders the widget HTML.
func (q *RenderWidgetQuery) Query(ctx context.Context, req bestseller.RenderRequest) (bestseller.RenderedWidget, error) {
	if q.service == nil {
		return bestseller.RenderedWidget{}, errors.New("render query requires service")
	}
	return q.service.Render(ctx, req)
}
