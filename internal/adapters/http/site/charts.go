package site

import (
	"html/template"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/okian/floww/internal/domain/charts"
)

// echartsJS is loaded by pages that embed chart snippets.
const echartsJS = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

const (
	chartWidth  = "100%"
	chartHeight = "300px"
	radarColor  = "#3B82F6"
)

// barChart renders one grouped bar chart with a series per entry of series,
// one category per team.
func barChart(id string, bars []charts.Bar, series []charts.Series) template.HTML {
	c := echarts.NewBar()
	c.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{ChartID: id, Width: chartWidth, Height: chartHeight}),
		echarts.WithYAxisOpts(opts.YAxis{Min: 0, Max: charts.FullMark}),
	)

	names := make([]string, len(bars))
	for i, b := range bars {
		names[i] = b.Name
	}
	c.SetXAxis(names)

	for _, s := range series {
		data := make([]opts.BarData, len(bars))
		for i, b := range bars {
			data[i] = opts.BarData{Name: b.Name, Value: b.Value(s.Key)}
		}
		c.AddSeries(s.Label, data, echarts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
	}
	return snippet(c.RenderSnippet())
}

// radarChart renders a team's radar with one spoke per point.
func radarChart(id string, points []charts.RadarPoint) template.HTML {
	indicators := make([]*opts.Indicator, len(points))
	values := make([]int, len(points))
	for i, p := range points {
		indicators[i] = &opts.Indicator{Name: p.Subject, Max: charts.FullMark}
		values[i] = p.A
	}

	c := echarts.NewRadar()
	c.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{ChartID: id, Width: chartWidth, Height: chartHeight}),
		echarts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)
	c.AddSeries("Performance", []opts.RadarData{{Name: "Performance", Value: values}},
		echarts.WithItemStyleOpts(opts.ItemStyle{Color: radarColor}))
	return snippet(c.RenderSnippet())
}

// snippet joins the container element and its init script.
func snippet(s render.ChartSnippet) template.HTML {
	return template.HTML(s.Element + s.Script) //nolint:gosec // options are JSON encoded by go-echarts
}
