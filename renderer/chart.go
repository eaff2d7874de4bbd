package renderer

import (
	"errors"

	stonkstats "github.com/kristopherluo/StonkStats.io"
	"github.com/vicanso/go-charts/v2"
)

// CurvePNG renders an equity curve to a PNG line chart.
func CurvePNG(curve []stonkstats.CurveSample, title string) ([]byte, error) {
	if len(curve) < 2 {
		return nil, errors.New("not enough data points")
	}

	labels := make([]string, len(curve))
	values := make([]float64, len(curve))
	var yMin, yMax float64
	for i, c := range curve {
		labels[i] = c.On.Format("Jan 02")
		if c.Live {
			labels[i] = "now"
		}
		v := c.Balance.AsFloat()
		values[i] = v
		if i == 0 {
			yMin, yMax = v, v
		} else {
			if v < yMin {
				yMin = v
			}
			if v > yMax {
				yMax = v
			}
		}
	}

	// pad the y-range so a flat curve does not hug the borders
	pad := (yMax - yMin) * 0.05
	if pad < yMax*0.002 {
		pad = yMax * 0.002
	}
	yMin -= pad
	if yMin < 0 {
		yMin = 0
	}
	yMax += pad

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 10}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
