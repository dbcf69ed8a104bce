package bestseller

import (
	"errors"
	"io"
)

var errMissingRenderer = errors.New("bestseller: template renderer not configured")

// Renderer describes the template renderer contract needed by the service.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}
