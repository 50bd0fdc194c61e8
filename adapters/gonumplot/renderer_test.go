package gonumplot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"serovis/domain/titer"
	"serovis/ports"
)

func sampleSpecs(t *testing.T) *titer.SpecSet {
	t.Helper()
	tables := titer.StrainTables{
		"A": {
			Columns: []string{"SubjectID", "Pre", "Post", "FC"},
			Rows: []titer.Row{
				{"SubjectID": "S1", "Pre": 3.0, "Post": 6.0, "FC": 3.0},
				{"SubjectID": "S2", "Pre": 4.0, "Post": 5.0, "FC": 1.0},
			},
		},
	}
	set, err := titer.BuildCharts(tables, titer.Options{})
	require.NoError(t, err)
	return set
}

func TestRendererProducesPlot(t *testing.T) {
	set := sampleSpecs(t)
	r := NewRenderer()

	chart, err := r.Render(context.Background(), set.Specs[titer.UngroupedKey])
	require.NoError(t, err)

	p, ok := chart.(*plot.Plot)
	require.True(t, ok)
	spec := set.Specs[titer.UngroupedKey]
	assert.Equal(t, spec.YMin, p.Y.Min)
	assert.Equal(t, spec.YMax, p.Y.Max)
	assert.Equal(t, "SubjectID", p.X.Label.Text)
}

// Adding bar plotters grows the axis range toward 0; the clipped
// shared y range must survive that and stay identical across panels.
func TestRendererKeepsSharedYRange(t *testing.T) {
	tables := titer.StrainTables{
		"A": {
			Columns: []string{"SubjectID", "Pre", "Post", "FC", "Site"},
			Rows: []titer.Row{
				{"SubjectID": "S1", "Pre": 3.0, "Post": 6.0, "FC": 3.0, "Site": "north"},
				{"SubjectID": "S2", "Pre": 4.0, "Post": 5.0, "FC": 1.0, "Site": "south"},
			},
		},
	}
	set, err := titer.BuildCharts(tables, titer.Options{GroupVar: "Site"})
	require.NoError(t, err)
	require.Len(t, set.Keys, 2)

	r := NewRenderer()
	for _, key := range set.Keys {
		spec := set.Specs[key]
		chart, err := r.Render(context.Background(), spec)
		require.NoError(t, err)

		p, ok := chart.(*plot.Plot)
		require.True(t, ok)
		assert.Equal(t, 3.0, p.Y.Min, "panel %q lost its y clipping", key)
		assert.Equal(t, 6.0, p.Y.Max, "panel %q lost its y clipping", key)
	}
}

func TestRendererBlankSpec(t *testing.T) {
	set := sampleSpecs(t)
	spec := set.Specs[titer.UngroupedKey]
	spec.Blank = true
	spec.Rows = nil
	spec.FacetVar = "Site"
	spec.Key = "south"

	chart, err := NewRenderer().Render(context.Background(), spec)
	require.NoError(t, err)

	p, ok := chart.(*plot.Plot)
	require.True(t, ok)
	assert.Equal(t, "Site: south", p.Title.Text)
	// Placeholder panels share the run's y clipping too.
	assert.Equal(t, spec.YMin, p.Y.Min)
	assert.Equal(t, spec.YMax, p.Y.Max)
}

func TestRendererBadColor(t *testing.T) {
	set := sampleSpecs(t)
	spec := set.Specs[titer.UngroupedKey]
	spec.FillColors = []string{"red", "green"}

	_, err := NewRenderer().Render(context.Background(), spec)
	assert.Error(t, err)
}

func TestGridLayoutWritesPNG(t *testing.T) {
	set := sampleSpecs(t)
	r := NewRenderer()

	chart, err := r.Render(context.Background(), set.Specs[titer.UngroupedKey])
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "fig.png")
	err = NewGridLayout().Compose(context.Background(), []ports.Chart{chart}, 1, out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestGridLayoutRejectsEmpty(t *testing.T) {
	err := NewGridLayout().Compose(context.Background(), nil, 1, "unused.png")
	assert.Error(t, err)
}
