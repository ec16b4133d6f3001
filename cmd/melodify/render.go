package main

import (
	"strings"

	"github.com/melodify-live/melodify-client/internal/views"
	"github.com/melodify-live/melodify-client/internal/waveform"
)

const (
	// waveformBuckets is how many bars the printed waveform has
	waveformBuckets = 16

	// peakBarWidth is the column count of the tallest waveform bar
	peakBarWidth = 40
)

// chartLevels maps a relative listen count onto one printable character,
// quietest to loudest
var chartLevels = []byte(" .:-=+*#")

// renderChart flattens the simulated hourly series into one line, one
// character per hour
func renderChart(chart views.Chart) string {
	maxListens := 0
	for _, p := range chart.Points {
		if p.Listens > maxListens {
			maxListens = p.Listens
		}
	}

	var sb strings.Builder
	for _, p := range chart.Points {
		idx := 0
		if maxListens > 0 {
			idx = p.Listens * (len(chartLevels) - 1) / maxListens
		}
		sb.WriteByte(chartLevels[idx])
	}
	return sb.String()
}

// renderPeaks draws one bar per normalized peak bucket
func renderPeaks(peaks []waveform.Peak) string {
	var sb strings.Builder
	for _, p := range peaks {
		n := int(p*peakBarWidth + 0.5)
		if n < 0 {
			n = 0
		}
		if n > peakBarWidth {
			n = peakBarWidth
		}
		sb.WriteString(strings.Repeat("#", n))
		sb.WriteByte('\n')
	}
	return sb.String()
}
