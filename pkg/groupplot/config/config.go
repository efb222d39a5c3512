// Package config loads grouping and chart options from YAML or TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/groupplot-go/pkg/groupplot"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/binning"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/render"
)

// ErrUnsupportedFormat indicates a config file that is neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// File is the on-disk configuration. Unset keys leave options untouched.
type File struct {
	Title      *string  `yaml:"title" toml:"title"`
	XLabel     *string  `yaml:"x_label" toml:"x_label"`
	YLabel     *string  `yaml:"y_label" toml:"y_label"`
	Intervals  any      `yaml:"intervals" toml:"intervals"`
	HigherVals *bool    `yaml:"higher_vals" toml:"higher_vals"`
	Kind       *string  `yaml:"kind" toml:"kind"`
	Grid       *bool    `yaml:"grid" toml:"grid"`
	BarColor   *string  `yaml:"bar_color" toml:"bar_color"`
	Output     *string  `yaml:"output" toml:"output"`
	Engine     *string  `yaml:"engine" toml:"engine"`
	Policy     *string  `yaml:"policy" toml:"policy"`
	Width      *float64 `yaml:"width" toml:"width"`
	Height     *float64 `yaml:"height" toml:"height"`

	// Source selects the input series.
	Source Source `yaml:"source" toml:"source"`
}

// Source names the series to read from an input file.
type Source struct {
	Sheet  string `yaml:"sheet" toml:"sheet"`
	Column string `yaml:"column" toml:"column"`
	Range  string `yaml:"range" toml:"range"`
	Chart  string `yaml:"chart" toml:"chart"`
	Series int    `yaml:"series" toml:"series"`
}

// Load reads a config file, choosing the decoder by extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// ParseYAML decodes a YAML config. Unknown keys are rejected.
func ParseYAML(data []byte) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse yaml config: %w", err)
	}
	return f, nil
}

// ParseTOML decodes a TOML config. Unknown keys are rejected.
func ParseTOML(data []byte) (*File, error) {
	f := &File{}
	md, err := toml.Decode(string(data), f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse toml config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to parse toml config: unknown keys %v", undecoded)
	}
	return f, nil
}

// Apply overlays the keys set in f onto opts.
func (f *File) Apply(opts *groupplot.Options) error {
	if f.Title != nil {
		opts.Title = *f.Title
	}
	if f.XLabel != nil {
		opts.XLabel = *f.XLabel
	}
	if f.YLabel != nil {
		opts.YLabel = *f.YLabel
	}
	if f.Intervals != nil {
		intervals, err := decodeIntervals(f.Intervals)
		if err != nil {
			return err
		}
		opts.Intervals = intervals
	}
	if f.HigherVals != nil {
		opts.HigherVals = *f.HigherVals
	}
	if f.Kind != nil {
		opts.Kind = render.Kind(*f.Kind)
	}
	if f.Grid != nil {
		opts.Grid = *f.Grid
	}
	if f.BarColor != nil {
		opts.BarColor = *f.BarColor
	}
	if f.Output != nil {
		opts.Output = groupplot.Output(*f.Output)
	}
	if f.Engine != nil {
		opts.Engine = render.Engine(*f.Engine)
	}
	if f.Policy != nil {
		p, err := binning.PolicyByName(*f.Policy)
		if err != nil {
			return groupplot.NewConfigError("policy", *f.Policy, err)
		}
		opts.Policy = p
	}
	if f.Width != nil {
		opts.Width = *f.Width
	}
	if f.Height != nil {
		opts.Height = *f.Height
	}
	return nil
}

// decodeIntervals accepts either "low:high,..." or a list of [low, high] pairs.
func decodeIntervals(v any) ([]models.Interval, error) {
	switch t := v.(type) {
	case string:
		return binning.ParseIntervals(t)
	case []any:
		pairs := make([][]float64, len(t))
		for i, item := range t {
			raw, ok := item.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: interval %d is %T, want a list", binning.ErrMalformedPair, i, item)
			}
			pair := make([]float64, len(raw))
			for j, n := range raw {
				x, ok := toFloat(n)
				if !ok {
					return nil, fmt.Errorf("%w: interval %d bound %v is not a number", binning.ErrInvalidInterval, i, n)
				}
				pair[j] = x
			}
			pairs[i] = pair
		}
		return binning.FromPairs(pairs)
	}
	return nil, fmt.Errorf("%w: intervals must be a string or a list of pairs, got %T", binning.ErrInvalidInterval, v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
