package report

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/robalyx/airlock/internal/member"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart dimensions and styling constants control the visual appearance
// of the roster chart.
const (
	chartWidth    = 1024
	chartHeight   = 640
	titleFontSize = 12.0
	axisFontSize  = 10.0
	xAxisRotation = 45.0
	gridLineWidth = 1.0
	dotWidth      = 3.0
	flaggedDot    = 4.0
	paddingTop    = 30
	paddingBottom = 30
	paddingLeft   = 20
	paddingRight  = 20
	axisDateFmt   = "2006-01-02"
)

// ErrNoChartData is returned when no member has both a creation and a join time.
var ErrNoChartData = errors.New("no members with creation and join times to plot")

// RosterChart plots every member's join time against their account creation
// time. Cohorts show up as tight clusters; flagged members are drawn in red.
type RosterChart struct {
	roster  []*member.Record
	flagged map[uint64]struct{}
}

// NewRosterChart creates a chart for the roster, highlighting the flagged members.
func NewRosterChart(roster []*member.Record, flagged []*member.Flagged) *RosterChart {
	ids := make(map[uint64]struct{}, len(flagged))
	for _, f := range flagged {
		ids[f.Record.ID] = struct{}{}
	}

	return &RosterChart{roster: roster, flagged: ids}
}

// Build renders the chart as a PNG.
func (c *RosterChart) Build() (*bytes.Buffer, error) {
	var clearX, clearY, flaggedX, flaggedY []float64
	for _, record := range c.roster {
		if !record.Usable() || !record.HasJoinTime() || record.CreatedAt.IsZero() {
			continue
		}

		x := float64(record.JoinedAt.UnixNano())
		y := float64(record.CreatedAt.UnixNano())
		if _, ok := c.flagged[record.ID]; ok {
			flaggedX = append(flaggedX, x)
			flaggedY = append(flaggedY, y)
		} else {
			clearX = append(clearX, x)
			clearY = append(clearY, y)
		}
	}

	if len(clearX)+len(flaggedX) == 0 {
		return nil, ErrNoChartData
	}

	// Only series with points are added so the legend stays accurate
	var series []chart.Series
	if len(clearX) > 0 {
		series = append(series, c.createSeries("Members", clearX, clearY, chart.ColorBlue, dotWidth))
	}
	if len(flaggedX) > 0 {
		series = append(series, c.createSeries("Flagged", flaggedX, flaggedY, chart.ColorRed, flaggedDot))
	}

	graph := &chart.Chart{
		Title:      "Account creation vs server join",
		TitleStyle: chart.Style{FontSize: titleFontSize},
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    paddingTop,
				Left:   paddingLeft,
				Right:  paddingRight,
				Bottom: paddingBottom,
			},
		},
		XAxis: chart.XAxis{
			Name: "Joined",
			Style: chart.Style{
				FontSize:            axisFontSize,
				TextRotationDegrees: xAxisRotation,
			},
			GridMajorStyle: gridStyle(),
			Range:          paddedRange(slices.Concat(clearX, flaggedX)),
			ValueFormatter: formatDate,
		},
		YAxis: chart.YAxis{
			Name:           "Created",
			Style:          chart.Style{FontSize: axisFontSize},
			GridMajorStyle: gridStyle(),
			Range:          paddedRange(slices.Concat(clearY, flaggedY)),
			ValueFormatter: formatDate,
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(graph),
	}

	buf := new(bytes.Buffer)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render roster chart: %w", err)
	}

	return buf, nil
}

// createSeries builds a scatter series.
func (c *RosterChart) createSeries(name string, xValues, yValues []float64, color drawing.Color, width float64) chart.Series {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotColor:    color,
			DotWidth:    width,
		},
	}
}

func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor: chart.ColorAlternateGray,
		StrokeWidth: gridLineWidth,
	}
}

// paddedRange spans the values with a day of margin so a single instant
// still gives the axis a non-zero width.
func paddedRange(values []float64) *chart.ContinuousRange {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	margin := float64(24 * time.Hour)
	return &chart.ContinuousRange{Min: lo - margin, Max: hi + margin}
}

func formatDate(v any) string {
	if f, ok := v.(float64); ok {
		return time.Unix(0, int64(f)).UTC().Format(axisDateFmt)
	}
	return ""
}
