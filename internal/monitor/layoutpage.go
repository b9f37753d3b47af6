package monitor

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/wall"
)

// LayoutPage builds an interactive page with every hold placed on the wall
// and a per-panel count, split by grid family. Holds that fail to resolve
// are counted in the subtitle instead of drawn.
func LayoutPage(s *wall.Session) *components.Page {
	families := []layout.Family{layout.Main, layout.Aux}
	points := map[layout.Family][]opts.ScatterData{}
	counts := map[layout.Family]map[layout.Panel]int{}
	for _, f := range families {
		counts[f] = map[layout.Panel]int{}
	}

	failed := 0
	for _, id := range s.Dataset().IDs() {
		res, err := s.Lookup(id)
		if err != nil {
			failed++
			continue
		}
		f := res.Position.Family
		points[f] = append(points[f], opts.ScatterData{
			Name:  id,
			Value: []interface{}{round1(res.Placement.X), round1(res.Placement.Y)},
		})
		counts[f][res.Position.Panel]++
	}

	m := s.Mapper()
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Hold layout", Width: "700px", Height: "880px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    s.Layout().Name,
			Subtitle: fmt.Sprintf("holds=%d unresolved=%d", s.Dataset().Len(), failed),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Formatter: opts.FuncOpts(`function (p) { return p.seriesName + ' ' + p.name; }`),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x (px)", Min: 0, Max: m.Width()}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y (px)", Min: 0, Max: m.Height(), Inverse: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	for _, f := range families {
		scatter.AddSeries(f.DisplayName(), points[f], charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	}

	panels := make([]string, len(layout.PanelOrder))
	for i, p := range layout.PanelOrder {
		panels[i] = string(p)
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "700px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Holds per panel"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(panels)
	for _, f := range families {
		data := make([]opts.BarData, len(layout.PanelOrder))
		for i, p := range layout.PanelOrder {
			data[i] = opts.BarData{Value: counts[f][p]}
		}
		bar.AddSeries(f.DisplayName(), data, charts.WithBarChartOpts(opts.BarChart{Stack: "holds"}))
	}

	page := components.NewPage()
	page.SetPageTitle("Hold layout")
	page.AddCharts(scatter, bar)
	return page
}

// WriteLayoutPage renders LayoutPage as standalone HTML.
func WriteLayoutPage(w io.Writer, s *wall.Session) error {
	return LayoutPage(s).Render(w)
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
