//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"io"
	"math"
)

// DistanceMap - render the inter-topic distance map as a standalone html page
func DistanceMap(points []str.TopicPoint, labels map[int]string, w io.Writer) error {
	return DistanceMapSized(points, labels, vv.MAPCHRTWIDTH, vv.MAPCHRTHEIGHT, w)
}

// DistanceMapSized - DistanceMap() with a chosen canvas size ("1200px", "80%", ...)
func DistanceMapSized(points []str.TopicPoint, labels map[int]string, width string, height string, w io.Writer) error {
	const (
		PAGETITLE = "Inter-topic distance map"
	)

	if len(points) == 0 {
		return str.NewProcError(COMP, str.ErrDegenerate, "no topics to draw")
	}

	sc := newscatter(len(points), width, height)
	sc.AddSeries(SERIESNAME, scatterpoints(points, labels),
		charts.WithLabelOpts(opts.Label{
			Show:      true,
			Position:  "inside",
			Formatter: "{b}",
		}),
	)

	p := components.NewPage()
	p.PageTitle = PAGETITLE
	p.AddCharts(sc)
	return p.Render(w)
}

const (
	SERIESNAME = "topics"
)

// scatterpoints - a bubble per topic; area grows with the topic's share of the corpus
func scatterpoints(points []str.TopicPoint, labels map[int]string) []opts.ScatterData {
	var maxf float64
	for _, p := range points {
		maxf = math.Max(maxf, p.Freq)
	}

	sd := make([]opts.ScatterData, len(points))
	for i, p := range points {
		sz := vv.MAPSYMMIN
		if maxf > 0 {
			sz += int(math.Round(float64(vv.MAPSYMMAX-vv.MAPSYMMIN) * math.Sqrt(p.Freq/maxf)))
		}
		sd[i] = opts.ScatterData{
			Name:       pointname(p.Topic, labels),
			Value:      []interface{}{p.X, p.Y, p.Freq},
			SymbolSize: sz,
		}
	}
	return sd
}

func pointname(topic int, labels map[int]string) string {
	if l, ok := labels[topic]; ok && l != "" {
		return fmt.Sprintf("%d: %s", topic, l)
	}
	return fmt.Sprintf("%d", topic)
}

// newscatter - a pre-formatted charts.Scatter
func newscatter(k int, width string, height string) *charts.Scatter {
	const (
		TITLESTR  = "Inter-topic distance map"
		SUBTITLE  = "%d topics; Jensen-Shannon divergence, principal coordinates"
		LEFTALIGN = "20"
		SAVETYPE  = "svg"
		SAVESTR   = "Save to file..."
		SAVENAME  = "topicmap"
	)

	tit := opts.Title{
		Title:    TITLESTR,
		Subtitle: fmt.Sprintf(SUBTITLE, k),
		Left:     LEFTALIGN,
	}

	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE,
		Name:  SAVENAME,
		Title: SAVESTR,
	}

	tbo := opts.Toolbox{
		Show:    true,
		Orient:  "vertical",
		Left:    LEFTALIGN,
		Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs},
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: width, Height: height}),
		charts.WithTitleOpts(tit),
		charts.WithToolboxOpts(tbo),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Formatter: "{b}"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "PC1", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "PC2", Type: "value"}),
	)
	return sc
}
