package ports

import (
	"context"

	"serovis/domain/titer"
)

// Chart is an opaque renderable chart object produced by a Renderer
// and consumed by a Layout. Its concrete type belongs to the adapter.
type Chart interface{}

// Renderer turns a chart spec into a renderable chart object.
type Renderer interface {
	Render(ctx context.Context, spec titer.ChartSpec) (Chart, error)
}

// Layout arranges rendered charts in a grid of the given column count
// and writes the composed figure to path.
type Layout interface {
	Compose(ctx context.Context, charts []Chart, cols int, path string) error
}
