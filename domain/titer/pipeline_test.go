package titer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serovis/domain/core"
)

// Two strains, two subjects each, no grouping: one chart covering
// 2 strains x 2 subjects x 2 conditions = 8 bars.
func TestBuildChartsScenario(t *testing.T) {
	set, err := BuildCharts(twoStrainInput(), Options{})
	require.NoError(t, err)

	require.Len(t, set.Keys, 1)
	spec := set.Specs[set.Keys[0]]
	assert.Len(t, spec.Rows, 8)
	assert.Len(t, spec.Fills, 4)
	assert.Equal(t, []string{"S1", "S2"}, spec.Subjects)
}

func TestRunFailsFast(t *testing.T) {
	// Configuration failure produces no partial result.
	res, err := Run(twoStrainInput(), Options{SubjectCol: "Nope"})
	assert.Nil(t, res)
	assert.True(t, core.IsConfigurationError(err))

	res, err = Run(twoStrainInput(), Options{Colors: []string{"#000000"}})
	assert.Nil(t, res)
	assert.True(t, core.IsInsufficientColorsError(err))
}

func TestRunExposesIntermediates(t *testing.T) {
	res, err := Run(twoStrainInput(), Options{})
	require.NoError(t, err)

	assert.Len(t, res.Long.Rows, 12)
	assert.Len(t, res.Flags, 4)
	assert.Len(t, res.Plot.Rows, 8)
	assert.Len(t, res.Specs.Keys, 1)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultSubjectColumn, o.SubjectCol)
	assert.Equal(t, 1, o.Cols)
	assert.Equal(t, DefaultPalette, o.Colors)
	assert.Empty(t, o.GroupVar)
}
