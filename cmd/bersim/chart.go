package main

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gta100/susa/sim"
)

// renderChart writes an HTML BER/FER curve for one sweep.
func renderChart(path, title string, points []sim.Point) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "BCJR decoding over AWGN",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Eb/N0 (dB)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "error rate", Type: "log"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	xAxis := make([]string, len(points))
	ber := make([]opts.LineData, len(points))
	fer := make([]opts.LineData, len(points))
	for i, p := range points {
		xAxis[i] = fmt.Sprintf("%.1f", p.EbN0dB)
		ber[i] = opts.LineData{Value: p.BER}
		fer[i] = opts.LineData{Value: p.FER}
	}

	line.SetXAxis(xAxis).
		AddSeries("BER", ber).
		AddSeries("FER", fer)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return line.Render(f)
}
