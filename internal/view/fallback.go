package view

import "github.com/Prabhu-Raj-Samraj/Project-AQI/internal/aqi"

// FallbackPayload returns the fixed demo payload rendered when live data is
// unavailable. Values sit in the realistic mid ranges so demo mode reads like
// real output.
func FallbackPayload() aqi.PredictionData {
	return aqi.PredictionData{
		OverallAQI:  46,
		AQICategory: aqi.CategoryForAQI(46),
		PollutantForecast: aqi.Series{
			Labels: []string{"PM2.5", "PM10", "NO2", "SO2", "CO", "O3"},
			Data:   []float64{20, 30, 30, 20, 1.5, 50},
		},
		TrendData: aqi.Series{
			Labels: []string{"08-01", "08-02", "08-03", "08-04", "08-05", "08-06", "08-07"},
			Data:   []float64{42, 48, 35, 58, 46, 53, 40},
		},
		AccuracyComparison: aqi.Series{
			Labels: []string{"GB", "XGB", "RF", "LSTM"},
			Data:   []float64{84.9, 83.0, 80.1, 60.3},
		},
		ModelPerformances: aqi.ModelPerformances(),
		SelectedModel:     aqi.BestModel,
		ModelStatus:       "demo",
	}
}
