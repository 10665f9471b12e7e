package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/aqi"
)

// TextRenderer writes a one-screen summary of a payload to Out.
type TextRenderer struct {
	Out io.Writer
}

func (r *TextRenderer) Render(p aqi.PredictionData) {
	fmt.Fprintf(r.Out, "AQI %d (%s)\n", p.OverallAQI, p.AQICategory)

	perf, ok := p.ModelPerformances[p.SelectedModel]
	if ok {
		fmt.Fprintf(r.Out, "model: %s  confidence: %.1f%%  mae: %.1f\n",
			p.SelectedModel, perf.R2Score*100, perf.MAE)
	} else {
		fmt.Fprintf(r.Out, "model: %s\n", p.SelectedModel)
	}

	fmt.Fprintf(r.Out, "7-day trend: %s\n", seriesLine(p.TrendData))
	fmt.Fprintf(r.Out, "pollutants:  %s\n", seriesLine(p.PollutantForecast))
	if p.ModelStatus != "" {
		fmt.Fprintf(r.Out, "status: %s\n", p.ModelStatus)
	}
}

func seriesLine(s aqi.Series) string {
	parts := make([]string, 0, len(s.Labels))
	for i, label := range s.Labels {
		if i >= len(s.Data) {
			break
		}
		parts = append(parts, fmt.Sprintf("%s=%g", label, s.Data[i]))
	}
	return strings.Join(parts, " ")
}
