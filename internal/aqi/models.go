package aqi

// Category is an AQI severity band label.
type Category string

const (
	CategoryGood          Category = "Good"
	CategoryModerate      Category = "Moderate"
	CategorySensitive     Category = "Unhealthy for Sensitive Groups"
	CategoryUnhealthy     Category = "Unhealthy"
	CategoryVeryUnhealthy Category = "Very Unhealthy"
	CategoryHazardous     Category = "Hazardous"
)

// CategoryForAQI maps an AQI value to its EPA severity band.
func CategoryForAQI(aqi int) Category {
	switch {
	case aqi <= 50:
		return CategoryGood
	case aqi <= 100:
		return CategoryModerate
	case aqi <= 150:
		return CategorySensitive
	case aqi <= 200:
		return CategoryUnhealthy
	case aqi <= 300:
		return CategoryVeryUnhealthy
	default:
		return CategoryHazardous
	}
}

// Model identifies one of the trained prediction models.
type Model string

const (
	ModelGradientBoosting Model = "gradient_boosting"
	ModelXGBoost          Model = "xgboost"
	ModelRandomForest     Model = "random_forest"
	ModelLSTM             Model = "lstm"
)

// BestModel is the model used when the caller does not pick one.
const BestModel = ModelGradientBoosting

// Valid reports whether m is part of the enumerated model set.
func (m Model) Valid() bool {
	switch m {
	case ModelGradientBoosting, ModelXGBoost, ModelRandomForest, ModelLSTM:
		return true
	}
	return false
}

// Models returns the enumerated model set in display order.
func Models() []Model {
	return []Model{ModelGradientBoosting, ModelXGBoost, ModelRandomForest, ModelLSTM}
}

// ModelPerformance holds the evaluation metrics of a single model.
type ModelPerformance struct {
	R2Score float64 `json:"r2_score"`
	MAE     float64 `json:"mae"`
	RMSE    float64 `json:"rmse"`
	MAPE    float64 `json:"mape"`
}

// ModelPerformances returns the fixed evaluation metrics per model.
func ModelPerformances() map[Model]ModelPerformance {
	return map[Model]ModelPerformance{
		ModelGradientBoosting: {R2Score: 0.849, MAE: 8.2, RMSE: 11.3, MAPE: 12.9},
		ModelXGBoost:          {R2Score: 0.830, MAE: 9.1, RMSE: 13.8, MAPE: 14.5},
		ModelRandomForest:     {R2Score: 0.801, MAE: 10.8, RMSE: 15.2, MAPE: 16.2},
		ModelLSTM:             {R2Score: 0.603, MAE: 14.5, RMSE: 18.2, MAPE: 22.8},
	}
}

// Long EPA parameter names used by the predictor.
const (
	PollutantPM25 = "PM2.5 - Local Conditions"
	PollutantPM10 = "PM10 Total 0-10um STP"
	PollutantCO   = "Carbon monoxide"
	PollutantNO2  = "Nitrogen dioxide (NO2)"
	PollutantSO2  = "Sulfur dioxide"
	PollutantO3   = "Ozone"
)

// DisplayName shortens a long EPA parameter name for UI labels.
func DisplayName(pollutant string) string {
	switch pollutant {
	case PollutantPM25:
		return "PM2.5"
	case PollutantPM10:
		return "PM10"
	case PollutantCO:
		return "CO"
	case PollutantNO2:
		return "NO2"
	case PollutantSO2:
		return "SO2"
	case PollutantO3:
		return "O3"
	}
	return pollutant
}

// Series pairs chart labels with their values, one value per label.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// SensorData is the dashboard's live-reading panel.
type SensorData struct {
	PM25 float64 `json:"pm25"` // µg/m³
	O3   float64 `json:"o3"`   // ppb
	NO2  float64 `json:"no2"`  // ppb
}

// DashboardData is the payload for the main dashboard page.
type DashboardData struct {
	CurrentAQI              int               `json:"current_aqi"`
	CurrentCategory         Category          `json:"current_category"`
	MainPollutant           string            `json:"main_pollutant"`
	NextDayAQI              int               `json:"next_day_aqi"`
	NextDayCategory         Category          `json:"next_day_category"`
	SensorData              SensorData        `json:"sensor_data"`
	PollutantConcentrations map[string]string `json:"pollutant_concentrations"`
	ChartAQI                []int             `json:"chart_aqi"`
	Date                    string            `json:"date"`
}

// PredictionData is the payload for the prediction page: the forecast for one
// date as seen through one model, plus the model comparison series.
type PredictionData struct {
	OverallAQI         int                        `json:"overall_aqi"`
	AQICategory        Category                   `json:"aqi_category"`
	PollutantForecast  Series                     `json:"pollutant_forecast"`
	TrendData          Series                     `json:"trend_data"`
	AccuracyComparison Series                     `json:"accuracy_comparison"`
	ModelPerformances  map[Model]ModelPerformance `json:"model_performances"`
	SelectedModel      Model                      `json:"selected_model"`
	ModelStatus        string                     `json:"model_status"`
}

// CalendarDay is one cell of the monthly AQI calendar.
type CalendarDay struct {
	Day           int      `json:"day"`
	AQI           int      `json:"aqi"`
	Category      Category `json:"category"`
	MainPollutant string   `json:"main_pollutant"`
}

// PeakDay records the day a pollutant peaked within a month.
type PeakDay struct {
	Day           int     `json:"day"`
	MonthName     string  `json:"month_name"`
	Pollutant     string  `json:"pollutant"`
	Concentration float64 `json:"concentration"`
	Unit          string  `json:"unit"`
}

// PollutantsData is the payload for the pollutants page.
type PollutantsData struct {
	HighestConcentration []PeakDay     `json:"highest_concentration"`
	ChartData            Series        `json:"chart_data"`
	CalendarData         []CalendarDay `json:"calendar_data"`
	MonthYear            string        `json:"month_year"`
	FilterType           string        `json:"filter_type"`
	SelectedPollutant    string        `json:"selected_pollutant"`
}

// Recommendation is a single health-advice card.
type Recommendation struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RecommendationsData is the payload for the recommendations endpoint.
type RecommendationsData struct {
	AQI             int              `json:"aqi"`
	Category        Category         `json:"category"`
	Recommendations []Recommendation `json:"recommendations"`
}

// HealthStatus is the payload for the health endpoint.
type HealthStatus struct {
	Status          string  `json:"status"`
	ModelsTrained   bool    `json:"models_trained"`
	AvailableModels []Model `json:"available_models"`
	BestModel       Model   `json:"best_model"`
	Timestamp       string  `json:"timestamp"`
}
