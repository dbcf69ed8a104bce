package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	bestseller "github.com/goliatone/go-bestseller/components/bestseller"
)

type payloadService interface {
	Payload(ctx context.Context, req bestseller.RenderRequest) (map[string]any, error)
}

// WidgetPayloadQuery returns the JSON payload behind a widget render.
type WidgetPayloadQuery struct {
	service payloadService
}

// NewWidgetPayloadQuery builds the query around a controller.
func NewWidgetPayloadQuery(service payloadService) *WidgetPayloadQuery {
	return &WidgetPayloadQuery{service: service}
}

var _ gocommand.Querier[bestseller.RenderRequest, map[string]any] = (*WidgetPayloadQuery)(nil)

// Query resolves the payload.
func (q *WidgetPayloadQuery) Query(ctx context.Context, req bestseller.RenderRequest) (map[string]any, error) {
	if q.service == nil {
		return nil, errors.New("payload query requires service")
	}
	return q.service.Payload(ctx, req)
}
