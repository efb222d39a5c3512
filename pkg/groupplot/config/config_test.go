package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/groupplot-go/pkg/groupplot"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/binning"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
)

const yamlConfig = `
title: Response times
x_label: ms
y_label: requests
intervals: [[0, 5], [5, 10.5]]
higher_vals: true
kind: barh
grid: true
bar_color: "#ff0000"
output: bytes
engine: gochart
policy: sturges
width: 600
source:
  sheet: Data
  column: B
`

const tomlConfig = `
title = "Response times"
intervals = "0:5, 5:10.5"
higher_vals = true
kind = "pie"
height = 300

[source]
chart = "Chart 1"
series = 2
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	f, err := Load(writeConfig(t, "groupplot.yaml", yamlConfig))
	require.NoError(t, err)

	opts := groupplot.DefaultOptions()
	require.NoError(t, f.Apply(&opts))

	assert.Equal(t, "Response times", opts.Title)
	assert.Equal(t, "ms", opts.XLabel)
	assert.Equal(t, "requests", opts.YLabel)
	assert.Equal(t, []models.Interval{{Low: 0, High: 5}, {Low: 5, High: 10.5}}, opts.Intervals)
	assert.True(t, opts.HigherVals)
	assert.Equal(t, groupplot.KindBarH, opts.Kind)
	assert.True(t, opts.Grid)
	assert.Equal(t, "#ff0000", opts.BarColor)
	assert.Equal(t, groupplot.OutputBytes, opts.Output)
	assert.Equal(t, groupplot.EngineGoChart, opts.Engine)
	assert.Equal(t, binning.SturgesPolicy{}, opts.Policy)
	assert.Equal(t, 600.0, opts.Width)
	assert.Equal(t, 0.0, opts.Height)
	assert.Equal(t, Source{Sheet: "Data", Column: "B"}, f.Source)
	assert.NoError(t, opts.Validate())
}

func TestLoadTOML(t *testing.T) {
	f, err := Load(writeConfig(t, "groupplot.toml", tomlConfig))
	require.NoError(t, err)

	opts := groupplot.DefaultOptions()
	require.NoError(t, f.Apply(&opts))

	assert.Equal(t, "Response times", opts.Title)
	assert.Equal(t, []models.Interval{{Low: 0, High: 5}, {Low: 5, High: 10.5}}, opts.Intervals)
	assert.True(t, opts.HigherVals)
	assert.Equal(t, groupplot.KindPie, opts.Kind)
	assert.Equal(t, 300.0, opts.Height)
	assert.Equal(t, groupplot.OutputFigure, opts.Output, "unset keys keep their defaults")
	assert.Equal(t, Source{Chart: "Chart 1", Series: 2}, f.Source)
}

func TestLoadTOMLPairs(t *testing.T) {
	f, err := ParseTOML([]byte("intervals = [[0, 5], [5, 10]]\n"))
	require.NoError(t, err)

	opts := groupplot.DefaultOptions()
	require.NoError(t, f.Apply(&opts))
	assert.Equal(t, []models.Interval{{Low: 0, High: 5}, {Low: 5, High: 10}}, opts.Intervals)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, "groupplot.json", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ParseYAML([]byte("colour: red\n"))
	assert.Error(t, err)

	_, err = ParseTOML([]byte("colour = \"red\"\n"))
	assert.Error(t, err)
}

func TestParseYAMLEmpty(t *testing.T) {
	f, err := ParseYAML(nil)
	require.NoError(t, err)

	opts := groupplot.DefaultOptions()
	require.NoError(t, f.Apply(&opts))
	assert.Equal(t, groupplot.DefaultOptions(), opts)
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{"overlap", "intervals: [[0, 5], [4, 10]]", binning.ErrOverlap},
		{"short pair", "intervals: [[0]]", binning.ErrMalformedPair},
		{"not a list", "intervals: [5]", binning.ErrMalformedPair},
		{"text bound", "intervals: [[a, 5]]", binning.ErrInvalidInterval},
		{"bad string", "intervals: \"0-5\"", binning.ErrMalformedPair},
		{"scalar", "intervals: 5", binning.ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseYAML([]byte(tt.yaml))
			require.NoError(t, err)

			opts := groupplot.DefaultOptions()
			assert.ErrorIs(t, f.Apply(&opts), tt.err)
		})
	}

	f, err := ParseYAML([]byte("policy: magic"))
	require.NoError(t, err)
	opts := groupplot.DefaultOptions()
	var ce *groupplot.ConfigError
	require.ErrorAs(t, f.Apply(&opts), &ce)
	assert.Equal(t, "policy", ce.Option)
}
