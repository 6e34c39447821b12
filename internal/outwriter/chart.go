package outwriter

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// chartBins is the number of histogram buckets in the length chart.
const chartBins = 20

// WriteLengthChart renders an HTML histogram of observation lengths, one
// bar series per activity, binned over the global length range.
func WriteLengthChart(lengthsByActivity map[string][]int, path string) error {
	minLen, maxLen := 0, 0
	first := true
	for _, lengths := range lengthsByActivity {
		for _, l := range lengths {
			if first || l < minLen {
				minLen = l
			}
			if first || l > maxLen {
				maxLen = l
			}
			first = false
		}
	}
	if first {
		return fmt.Errorf("no observations to chart")
	}

	width := (maxLen - minLen) / chartBins
	if width < 1 {
		width = 1
	}
	labels := make([]string, 0, chartBins)
	for b := 0; b < chartBins; b++ {
		labels = append(labels, fmt.Sprintf("%d", minLen+b*width))
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Observation length distribution",
			Subtitle: fmt.Sprintf("samples per observation, bin width %d", width),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels)

	// Stable series order regardless of map iteration.
	names := make([]string, 0, len(lengthsByActivity))
	for name := range lengthsByActivity {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		counts := make([]int, chartBins)
		for _, l := range lengthsByActivity[name] {
			b := (l - minLen) / width
			if b >= chartBins {
				b = chartBins - 1
			}
			counts[b]++
		}
		series := make([]opts.BarData, chartBins)
		for i, c := range counts {
			series[i] = opts.BarData{Value: c}
		}
		bar.AddSeries(name, series)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return bar.Render(f)
}
