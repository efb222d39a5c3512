// Package main provides the CLI entry point for groupplot.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/ukaji3/groupplot-go/pkg/groupplot"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/binning"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/config"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/output"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/render"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/source"
)

type flags struct {
	sheet      string
	column     string
	rangeRef   string
	chart      string
	series     int
	intervals  string
	higher     bool
	title      string
	xLabel     string
	yLabel     string
	kind       string
	grid       bool
	color      string
	output     string
	engine     string
	policy     string
	format     string
	width      float64
	height     float64
	configPath string
	outputPath string
	json       bool
	pretty     bool
	verbose    bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:   "groupplot [input.xlsx|input.csv]",
		Short: "Group a numeric series into intervals and chart the counts",
		Long: `groupplot reads a numeric series from a workbook column, range or chart,
or from a CSV column, counts the values per interval and writes a chart,
a workbook, an interactive page or the counts themselves.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0], stdout, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	fs := rootCmd.Flags()
	fs.StringVar(&f.sheet, "sheet", "", "Worksheet name (default: first sheet)")
	fs.StringVar(&f.column, "column", "", "Column header, letter, or 1-based CSV index (default: first data column)")
	fs.StringVar(&f.rangeRef, "range", "", "Range reference such as 'Data!B2:B40'")
	fs.StringVar(&f.chart, "chart", "", "Name or title of a chart to read the series from")
	fs.IntVar(&f.series, "series", 0, "Chart series index (0-based)")
	fs.StringVar(&f.intervals, "intervals", "", "Intervals as low:high pairs, e.g. 0:5,5:10 (default: derived)")
	fs.BoolVar(&f.higher, "higher", false, "Add a bucket for values at or above the last high")
	fs.StringVar(&f.title, "title", "", "Chart title")
	fs.StringVar(&f.xLabel, "x-label", "", "X axis label")
	fs.StringVar(&f.yLabel, "y-label", "", "Y axis label")
	fs.StringVar(&f.kind, "kind", string(groupplot.KindBar), "Chart kind: bar, barh, pie, fullpie")
	fs.BoolVar(&f.grid, "grid", false, "Show grid lines on bar charts")
	fs.StringVar(&f.color, "color", render.DefaultColor, "Bar color: hex, rgb(r,g,b), r,g,b or a color name")
	fs.StringVar(&f.output, "output", string(groupplot.OutputFigure), "Output: figure, interactive, image, bytes, mapping, workbook")
	fs.StringVar(&f.engine, "engine", string(groupplot.EngineGonum), "Figure engine: gonum, gochart, echarts, xlsx")
	fs.StringVar(&f.policy, "policy", "percentile", "Interval policy when --intervals is empty: percentile, sturges, fd")
	fs.StringVar(&f.format, "format", "", "Figure encoding: png, svg, pdf, jpg, tif, eps (default: from -o extension, else png)")
	fs.Float64Var(&f.width, "width", 0, "Figure width in points")
	fs.Float64Var(&f.height, "height", 0, "Figure height in points")
	fs.StringVar(&f.configPath, "config", "", "YAML or TOML config file; flags override its keys")
	fs.StringVarP(&f.outputPath, "out", "o", "", "Output file path (default: stdout)")
	fs.BoolVar(&f.json, "json", false, "Print the mapping as JSON instead of a table")
	fs.BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	fs.BoolVar(&f.verbose, "verbose", false, "Log debug output to stderr")

	return rootCmd
}

func run(cmd *cobra.Command, f *flags, inputPath string, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, f.verbose)

	opts := groupplot.DefaultOptions()
	opts.Logger = logger
	sel := source.Selector{}

	if f.configPath != "" {
		cfg, err := config.Load(f.configPath)
		if err != nil {
			return err
		}
		if err := cfg.Apply(&opts); err != nil {
			return fmt.Errorf("invalid config %s: %w", f.configPath, err)
		}
		sel = source.Selector{
			Sheet:       cfg.Source.Sheet,
			Column:      cfg.Source.Column,
			Range:       cfg.Source.Range,
			Chart:       cfg.Source.Chart,
			SeriesIndex: cfg.Source.Series,
		}
		level.Debug(logger).Log("msg", "loaded config", "path", f.configPath)
	}

	if err := applyFlags(cmd, f, &opts, &sel); err != nil {
		return err
	}

	series, err := source.Open(inputPath, sel)
	if err != nil {
		return fmt.Errorf("failed to read series: %w", err)
	}
	if series.Name == "" {
		series.Name = filepath.Base(inputPath)
	}

	res, err := groupplot.GroupAndPlot(series, opts)
	if err != nil {
		return err
	}
	g := res.Grouping
	level.Info(logger).Log("msg", "grouped series", "series", series.Name, "values", g.Total, "buckets", len(g.Buckets), "dropped", g.Dropped, "missing", g.Missing)

	data, err := encodeResult(res, f)
	if err != nil {
		return err
	}

	if f.outputPath != "" {
		if err := os.WriteFile(f.outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		level.Info(logger).Log("msg", "wrote output", "path", f.outputPath, "output", res.Output, "bytes", len(data))
		return nil
	}
	_, err = stdout.Write(data)
	return err
}

// applyFlags overlays the flags set on the command line.
func applyFlags(cmd *cobra.Command, f *flags, opts *groupplot.Options, sel *source.Selector) error {
	changed := cmd.Flags().Changed

	if changed("sheet") {
		sel.Sheet = f.sheet
	}
	if changed("column") {
		sel.Column = f.column
	}
	if changed("range") {
		sel.Range = f.rangeRef
	}
	if changed("chart") {
		sel.Chart = f.chart
	}
	if changed("series") {
		sel.SeriesIndex = f.series
	}

	if changed("intervals") {
		intervals, err := binning.ParseIntervals(f.intervals)
		if err != nil {
			return fmt.Errorf("invalid --intervals: %w", err)
		}
		opts.Intervals = intervals
	}
	if changed("policy") {
		p, err := binning.PolicyByName(f.policy)
		if err != nil {
			return groupplot.NewConfigError("policy", f.policy, err)
		}
		opts.Policy = p
	}
	if changed("higher") {
		opts.HigherVals = f.higher
	}
	if changed("title") {
		opts.Title = f.title
	}
	if changed("x-label") {
		opts.XLabel = f.xLabel
	}
	if changed("y-label") {
		opts.YLabel = f.yLabel
	}
	if changed("kind") {
		opts.Kind = groupplot.Kind(f.kind)
	}
	if changed("grid") {
		opts.Grid = f.grid
	}
	if changed("color") {
		opts.BarColor = f.color
	}
	if changed("output") {
		opts.Output = groupplot.Output(f.output)
	}
	if changed("engine") {
		opts.Engine = groupplot.Engine(f.engine)
	}
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	return nil
}

func encodeResult(res *groupplot.Result, f *flags) ([]byte, error) {
	switch res.Output {
	case groupplot.OutputMapping:
		if f.json || f.pretty {
			data, err := output.ToJSON(res.Grouping, f.pretty)
			if err != nil {
				return nil, fmt.Errorf("serialization failed: %w", err)
			}
			return append(data, '\n'), nil
		}
		return []byte(output.ToTable(res.Grouping) + "\n"), nil

	case groupplot.OutputFigure:
		format := figureFormat(f, res.Figure)
		var buf bytes.Buffer
		if err := res.Figure.Encode(&buf, format); err != nil {
			return nil, groupplot.NewConfigError("format", string(format), err)
		}
		return buf.Bytes(), nil
	}

	// Image, bytes, interactive and workbook outputs are already encoded.
	return res.Bytes, nil
}

// figureFormat returns --format, else the -o extension, else the figure's
// default encoding.
func figureFormat(f *flags, fig render.Figure) render.Format {
	if f.format != "" {
		return render.Format(strings.ToLower(f.format))
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(f.outputPath)), "."); ext != "" {
		if ext == "jpeg" {
			ext = "jpg"
		}
		return render.Format(ext)
	}
	return fig.Formats()[0]
}

func newLogger(w io.Writer, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}
