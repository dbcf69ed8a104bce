package bestseller

import (
	"context"
	"errors"
	"io"
)

// Controller orchestrates HTTP-facing rendering for storefront widgets.
type Controller struct {
	service widgetRenderer
}

type widgetRenderer interface {
	Render(ctx context.Context, req RenderRequest) (RenderedWidget, error)
	Data(ctx context.Context, req RenderRequest) (WidgetData, error)
}

// NewController wires the service into a controller.
func NewController(service widgetRenderer) *Controller {
	return &Controller{service: service}
}

// Render returns the rendered widget without writing it.
func (c *Controller) Render(ctx context.Context, req RenderRequest) (RenderedWidget, error) {
	if c.service == nil {
		return RenderedWidget{}, errors.New("bestseller: controller requires service")
	}
	return c.service.Render(ctx, req)
}

// RenderTemplate writes the widget HTML to out.
func (c *Controller) RenderTemplate(ctx context.Context, req RenderRequest, out io.Writer) (RenderedWidget, error) {
	if c.service == nil {
		return RenderedWidget{}, errors.New("bestseller: controller requires service")
	}
	rendered, err := c.service.Render(ctx, req)
	if err != nil {
		return RenderedWidget{}, err
	}
	if _, err := io.WriteString(out, rendered.HTML); err != nil {
		return RenderedWidget{}, err
	}
	return rendered, nil
}

// Payload returns the JSON-friendly widget payload without markup fragments.
func (c *Controller) Payload(ctx context.Context, req RenderRequest) (map[string]any, error) {
	if c.service == nil {
		return nil, errors.New("bestseller: controller requires service")
	}
	data, err := c.service.Data(ctx, req)
	if err != nil {
		return nil, err
	}
	payload := make(map[string]any, len(data))
	for key, value := range data {
		if key == "sales_chart_html" {
			continue
		}
		payload[key] = value
	}
	return payload, nil
}
