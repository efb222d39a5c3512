// Package output encodes groupings as JSON documents or text tables.
package output

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
)

// ToJSON converts a grouping to JSON, buckets in interval order.
func ToJSON(g *models.Grouping, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(g, "", "  ")
	}
	return json.Marshal(g)
}

// ToTable renders a grouping as a text table with one row per bucket and
// a footer carrying the dropped and total counts.
func ToTable(g *models.Grouping) string {
	x := table.NewWriter()
	x.Style().Format.Header = text.FormatDefault
	x.Style().Format.Footer = text.FormatDefault
	x.AppendHeader(table.Row{"interval", "low", "high", "count", "share"})

	assigned := g.Assigned()
	for _, b := range g.Buckets {
		x.AppendRow(table.Row{b.Label, formatBound(b.Low), formatBound(b.High), b.Count, share(b.Count, assigned)})
	}

	x.AppendSeparator()
	x.AppendFooter(table.Row{"dropped", g.Dropped, "missing", g.Missing, fmt.Sprintf("total %d", g.Total)})
	x.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return x.Render()
}

func formatBound(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func share(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}
