package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"serovis/domain/core"
	"serovis/domain/titer"
	"serovis/ports"
)

// Mock implementations for the collaborator ports
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, spec titer.ChartSpec) (ports.Chart, error) {
	args := m.Called(ctx, spec)
	return args.Get(0), args.Error(1)
}

type MockLayout struct {
	mock.Mock
}

func (m *MockLayout) Compose(ctx context.Context, charts []ports.Chart, cols int, path string) error {
	args := m.Called(ctx, charts, cols, path)
	return args.Error(0)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) SaveRun(ctx context.Context, rec *titer.RunRecord, specs *titer.SpecSet) error {
	args := m.Called(ctx, rec, specs)
	return args.Error(0)
}

func testTables() titer.StrainTables {
	return titer.StrainTables{
		"A": {
			Columns: []string{"SubjectID", "Pre", "Post", "FC"},
			Rows: []titer.Row{
				{"SubjectID": "S1", "Pre": 3.0, "Post": 6.0, "FC": 3.0},
				{"SubjectID": "S2", "Pre": 4.0, "Post": 5.0, "FC": 1.0},
			},
		},
	}
}

func TestPlotServiceRun(t *testing.T) {
	renderer := new(MockRenderer)
	layout := new(MockLayout)
	archive := new(MockArchive)

	renderer.On("Render", mock.Anything, mock.Anything).Return("chart", nil)
	layout.On("Compose", mock.Anything, mock.Anything, 1, "out.png").Return(nil)
	archive.On("SaveRun", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewPlotService(renderer, layout, archive, nil)
	res, err := svc.Run(context.Background(), testTables(), titer.Options{}, "out.png")
	require.NoError(t, err)
	require.NotNil(t, res)

	renderer.AssertNumberOfCalls(t, "Render", 1)
	layout.AssertExpectations(t)
	archive.AssertExpectations(t)
}

func TestPlotServiceFailsFastOnConfig(t *testing.T) {
	renderer := new(MockRenderer)
	layout := new(MockLayout)

	svc := NewPlotService(renderer, layout, nil, nil)
	res, err := svc.Run(context.Background(), testTables(), titer.Options{SubjectCol: "Nope"}, "out.png")

	assert.Nil(t, res)
	assert.True(t, core.IsConfigurationError(err))
	// No chart was rendered or composed.
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	layout.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPlotServiceRenderError(t *testing.T) {
	renderer := new(MockRenderer)
	layout := new(MockLayout)

	renderer.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	svc := NewPlotService(renderer, layout, nil, nil)
	_, err := svc.Run(context.Background(), testTables(), titer.Options{}, "out.png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	layout.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Archive failures degrade to a warning; the run still succeeds.
func TestPlotServiceArchiveBestEffort(t *testing.T) {
	renderer := new(MockRenderer)
	layout := new(MockLayout)
	archive := new(MockArchive)

	renderer.On("Render", mock.Anything, mock.Anything).Return("chart", nil)
	layout.On("Compose", mock.Anything, mock.Anything, 1, "out.png").Return(nil)
	archive.On("SaveRun", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))

	svc := NewPlotService(renderer, layout, archive, nil)
	res, err := svc.Run(context.Background(), testTables(), titer.Options{}, "out.png")

	require.NoError(t, err)
	assert.NotNil(t, res)
}

func TestPlotServiceRendersEveryPartition(t *testing.T) {
	tables := titer.StrainTables{
		"A": {
			Columns: []string{"SubjectID", "Pre", "Post", "FC", "Site"},
			Rows: []titer.Row{
				{"SubjectID": "S1", "Pre": 3.0, "Post": 6.0, "FC": 3.0, "Site": "north"},
				{"SubjectID": "S2", "Pre": 4.0, "Post": 5.0, "FC": 1.0, "Site": "south"},
			},
		},
	}

	renderer := new(MockRenderer)
	layout := new(MockLayout)
	renderer.On("Render", mock.Anything, mock.Anything).Return("chart", nil)
	layout.On("Compose", mock.Anything, mock.Anything, 2, "out.png").Return(nil)

	svc := NewPlotService(renderer, layout, nil, nil)
	_, err := svc.Run(context.Background(), tables, titer.Options{GroupVar: "Site", Cols: 2}, "out.png")
	require.NoError(t, err)

	renderer.AssertNumberOfCalls(t, "Render", 2)
}
