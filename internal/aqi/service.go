package aqi

import (
	"fmt"
	"math"
	"time"

	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/common"
)

// Cache is the contract the prediction cache must satisfy.
type Cache interface {
	Get(key string) (PredictionData, bool)
	Put(key string, data PredictionData)
}

// Service builds endpoint payloads from the predictor, consulting the
// prediction cache for the expensive-to-recompute prediction page.
type Service struct {
	cache     Cache
	predictor *Predictor
	now       func() time.Time
}

// NewService creates a new Service.
func NewService(cache Cache, predictor *Predictor) *Service {
	return &Service{
		cache:     cache,
		predictor: predictor,
		now:       time.Now,
	}
}

// Health reports the service and model status.
func (s *Service) Health() HealthStatus {
	return HealthStatus{
		Status:          "healthy",
		ModelsTrained:   true,
		AvailableModels: Models(),
		BestModel:       BestModel,
		Timestamp:       s.now().UTC().Format(time.RFC3339),
	}
}

// Dashboard builds the main dashboard payload for a date.
func (s *Service) Dashboard(date time.Time) DashboardData {
	current := s.predictor.AQIForDate(date)
	nextDay := s.predictor.AQIForDate(date.AddDate(0, 0, 1))

	conc := s.predictor.Concentrations(date)
	sensor := SensorData{
		PM25: common.Round1(conc[PollutantPM25]),
		O3:   common.Round1(conc[PollutantO3] * 1000),
		NO2:  common.Round1(conc[PollutantNO2] * 1000),
	}

	return DashboardData{
		CurrentAQI:      current,
		CurrentCategory: CategoryForAQI(current),
		MainPollutant:   s.predictor.MainPollutant(date),
		NextDayAQI:      nextDay,
		NextDayCategory: CategoryForAQI(nextDay),
		SensorData:      sensor,
		PollutantConcentrations: map[string]string{
			"pm25": fmt.Sprintf("%.1f µg/m³", sensor.PM25),
			"co":   fmt.Sprintf("%.1f ppm", common.Round1(conc[PollutantCO])),
			"o3":   fmt.Sprintf("%.1f ppb", sensor.O3),
		},
		ChartAQI: s.predictor.MonthlyChart(date),
		Date:     date.Format(DateLayout),
	}
}

// Prediction builds the prediction-page payload for a date and model. Results
// are cached per (date, model).
func (s *Service) Prediction(date time.Time, model Model) PredictionData {
	key := date.Format(DateLayout) + "|" + string(model)
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	overall := s.predictor.AQIForDate(date)
	conc := s.predictor.Concentrations(date)

	forecast := Series{
		Labels: []string{"PM2.5", "PM10", "NO2", "SO2", "CO", "O3"},
		Data: []float64{
			roundWhole(conc[PollutantPM25]),
			roundWhole(conc[PollutantPM10]),
			roundWhole(conc[PollutantNO2] * 1000),
			roundWhole(conc[PollutantSO2] * 1000),
			common.Round1(conc[PollutantCO]),
			roundWhole(conc[PollutantO3] * 1000),
		},
	}

	perfs := ModelPerformances()
	accuracy := Series{
		Labels: []string{"GB", "XGB", "RF", "LSTM"},
		Data: []float64{
			common.Round1(perfs[ModelGradientBoosting].R2Score * 100),
			common.Round1(perfs[ModelXGBoost].R2Score * 100),
			common.Round1(perfs[ModelRandomForest].R2Score * 100),
			common.Round1(perfs[ModelLSTM].R2Score * 100),
		},
	}

	payload := PredictionData{
		OverallAQI:         overall,
		AQICategory:        CategoryForAQI(overall),
		PollutantForecast:  forecast,
		TrendData:          s.predictor.Trend(date, 7),
		AccuracyComparison: accuracy,
		ModelPerformances:  perfs,
		SelectedModel:      model,
		ModelStatus:        "ready",
	}

	s.cache.Put(key, payload)
	return payload
}

// Pollutants builds the pollutants-page payload for a month.
func (s *Service) Pollutants(year int, month time.Month, filter, pollutant string) PollutantsData {
	return PollutantsData{
		HighestConcentration: s.predictor.HighestConcentrationDays(year, month),
		ChartData:            s.predictor.ChartData(filter, year, month, s.now().UTC()),
		CalendarData:         s.predictor.CalendarData(year, month),
		MonthYear:            time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006"),
		FilterType:           filter,
		SelectedPollutant:    pollutant,
	}
}

// Recommendations builds band-dependent health advice for a date.
func (s *Service) Recommendations(date time.Time) RecommendationsData {
	aqi := s.predictor.AQIForDate(date)

	var recs []Recommendation
	switch {
	case aqi <= 50:
		recs = []Recommendation{
			{Icon: "fa-person-hiking", Title: "Outdoor Activities", Description: "Great time for walks, sports, or picnics!"},
			{Icon: "fa-wind", Title: "Ventilation", Description: "Open your windows and enjoy the breeze."},
		}
	case aqi <= 100:
		recs = []Recommendation{
			{Icon: "fa-person-walking", Title: "Light Outdoor Activity", Description: "Short walks are fine unless you're sensitive."},
			{Icon: "fa-house", Title: "Indoor Time", Description: "Try to stay indoors during peak hours."},
		}
	default:
		recs = []Recommendation{
			{Icon: "fa-head-side-mask", Title: "Wear a Mask", Description: "Use a pollution mask outdoors."},
			{Icon: "fa-fan", Title: "Use Air Purifier", Description: "Keep air clean inside your home or office."},
		}
	}

	return RecommendationsData{
		AQI:             aqi,
		Category:        CategoryForAQI(aqi),
		Recommendations: recs,
	}
}

func roundWhole(v float64) float64 {
	return math.Round(v)
}
