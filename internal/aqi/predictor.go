package aqi

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/common"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// breakpoint is one row of an EPA AQI breakpoint table: a concentration
// interval [CLow, CHigh] mapping linearly onto the index interval [ILow, IHigh].
type breakpoint struct {
	CLow, CHigh float64
	ILow, IHigh float64
}

var breakpoints = map[string][]breakpoint{
	"PM2.5": {
		{0.0, 12.0, 0, 50}, {12.1, 35.4, 51, 100}, {35.5, 55.4, 101, 150},
		{55.5, 150.4, 151, 200}, {150.5, 250.4, 201, 300}, {250.5, 350.4, 301, 400},
		{350.5, 500.4, 401, 500},
	},
	"PM10": {
		{0, 54, 0, 50}, {55, 154, 51, 100}, {155, 254, 101, 150},
		{255, 354, 151, 200}, {355, 424, 201, 300}, {425, 504, 301, 400},
		{505, 604, 401, 500},
	},
	"CO": {
		{0.0, 4.4, 0, 50}, {4.5, 9.4, 51, 100}, {9.5, 12.4, 101, 150},
		{12.5, 15.4, 151, 200}, {15.5, 30.4, 201, 300}, {30.5, 40.4, 301, 400},
		{40.5, 50.4, 401, 500},
	},
	"SO2": {
		{0, 35, 0, 50}, {36, 75, 51, 100}, {76, 185, 101, 150},
		{186, 304, 151, 200}, {305, 604, 201, 300}, {605, 804, 301, 400},
		{805, 1004, 401, 500},
	},
	"NO2": {
		{0, 53, 0, 50}, {54, 100, 51, 100}, {101, 360, 101, 150},
		{361, 649, 151, 200}, {650, 1249, 201, 300}, {1250, 1649, 301, 400},
		{1650, 2049, 401, 500},
	},
	"O3": {
		{0.000, 0.054, 0, 50}, {0.055, 0.070, 51, 100}, {0.071, 0.085, 101, 150},
		{0.086, 0.105, 151, 200}, {0.106, 0.200, 201, 300},
	},
}

// IndividualAQI converts a single pollutant concentration to its AQI
// contribution using piecewise-linear interpolation over the breakpoint table.
// Values above every breakpoint report high but not extreme; the result is
// capped at 200.
func IndividualAQI(concentration float64, pollutant string) int {
	table, ok := breakpoints[pollutant]
	if !ok {
		return 50
	}
	for _, bp := range table {
		if concentration >= bp.CLow && concentration <= bp.CHigh {
			aqi := (bp.IHigh-bp.ILow)/(bp.CHigh-bp.CLow)*(concentration-bp.CLow) + bp.ILow
			return int(math.Round(common.Clamp(aqi, 0, 200)))
		}
	}
	return 180
}

// Predictor produces deterministic, date-seeded AQI predictions. The same
// date always yields the same numbers, across processes and restarts.
type Predictor struct{}

// NewPredictor creates a Predictor.
func NewPredictor() *Predictor {
	return &Predictor{}
}

// seedFor derives a 32-bit seed from an arbitrary key string.
func seedFor(key string) int64 {
	sum := md5.Sum([]byte(key))
	v, err := strconv.ParseUint(hex.EncodeToString(sum[:])[:8], 16, 64)
	if err != nil {
		return 0
	}
	return int64(v % (1 << 32))
}

func rngFor(key string) *rand.Rand {
	return rand.New(rand.NewSource(seedFor(key)))
}

// AQIForDate predicts the AQI for a calendar date: a seasonal sine baseline
// plus a seeded normal variation, clamped to [15, 150].
func (p *Predictor) AQIForDate(date time.Time) int {
	rng := rngFor(date.Format(DateLayout))

	dayOfYear := float64(date.YearDay())
	base := 45 + 25*math.Sin(dayOfYear*2*math.Pi/365)
	variation := rng.NormFloat64() * 15

	return int(math.Round(common.Clamp(base+variation, 15, 150)))
}

// Concentrations predicts pollutant concentrations for a date, keyed by the
// long EPA parameter names. Units: µg/m³ for particulates, ppm for CO and
// gas fractions for NO2/SO2/O3.
func (p *Predictor) Concentrations(date time.Time) map[string]float64 {
	rng := rngFor(date.Format(DateLayout))

	dayOfYear := float64(date.YearDay())
	seasonal := math.Sin(dayOfYear * 2 * math.Pi / 365)

	// Draw order is fixed; reordering would change every prediction.
	pm25 := math.Max(5, 20+10*seasonal+rng.NormFloat64()*8)
	pm10 := math.Max(10, 35+15*seasonal+rng.NormFloat64()*12)
	co := math.Max(0.1, 1.2+0.5*seasonal+rng.NormFloat64()*0.4)
	no2 := math.Max(0.005, 0.025+0.010*seasonal+rng.NormFloat64()*0.008)
	so2 := math.Max(0.002, 0.012+0.005*seasonal+rng.NormFloat64()*0.004)
	o3 := math.Max(0.020, 0.050+0.015*math.Abs(seasonal)+rng.NormFloat64()*0.012)

	return map[string]float64{
		PollutantPM25: pm25,
		PollutantPM10: pm10,
		PollutantCO:   co,
		PollutantNO2:  no2,
		PollutantSO2:  so2,
		PollutantO3:   o3,
	}
}

// MainPollutant picks the dominant pollutant for a date with a weighted,
// seeded choice. PM2.5 dominates most days.
func (p *Predictor) MainPollutant(date time.Time) string {
	rng := rngFor(date.Format(DateLayout))

	r := rng.Float64()
	switch {
	case r < 0.45:
		return PollutantPM25
	case r < 0.70:
		return PollutantO3
	case r < 0.90:
		return PollutantNO2
	default:
		return PollutantPM10
	}
}

// Trend predicts AQI for the given number of consecutive days starting at
// start, with "MM-DD" labels.
func (p *Predictor) Trend(start time.Time, days int) Series {
	s := Series{
		Labels: make([]string, 0, days),
		Data:   make([]float64, 0, days),
	}
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		s.Labels = append(s.Labels, d.Format("01-02"))
		s.Data = append(s.Data, float64(p.AQIForDate(d)))
	}
	return s
}

// MonthlyChart predicts one AQI value (mid-month) for each of the 12 months
// ending at base's month.
func (p *Predictor) MonthlyChart(base time.Time) []int {
	chart := make([]int, 0, 12)
	for i := 0; i < 12; i++ {
		m := time.Date(base.Year(), base.Month()-11+time.Month(i), 15, 0, 0, 0, 0, time.UTC)
		chart = append(chart, p.AQIForDate(m))
	}
	return chart
}

// peakProfile describes a pollutant's expected monthly peak distribution.
type peakProfile struct {
	Pollutant string
	Unit      string
	Base      float64
	Std       float64
}

var peakProfiles = []peakProfile{
	{PollutantPM25, "µg/m³", 35, 12},
	{PollutantO3, "ppb", 65, 15},
	{PollutantNO2, "ppb", 28, 10},
	{PollutantSO2, "ppb", 18, 6},
	{PollutantCO, "ppm", 1.2, 0.4},
}

// HighestConcentrationDays predicts, per pollutant, the day of the month with
// the highest concentration and its value.
func (p *Predictor) HighestConcentrationDays(year int, month time.Month) []PeakDay {
	numDays := daysInMonth(year, month)
	monthSeed := seedFor(fmt.Sprintf("%04d-%02d", year, int(month)))
	monthName := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January")

	peaks := make([]PeakDay, 0, len(peakProfiles))
	for i, prof := range peakProfiles {
		rng := rand.New(rand.NewSource(monthSeed + int64(i)*1000))

		day := rng.Intn(numDays) + 1
		concentration := math.Max(prof.Base*0.3, prof.Base+rng.NormFloat64()*prof.Std)
		if prof.Unit == "ppm" {
			concentration = common.Clamp(concentration, 0.2, 3.0)
		} else {
			concentration = common.Clamp(concentration, 5, 80)
		}

		peaks = append(peaks, PeakDay{
			Day:           day,
			MonthName:     monthName,
			Pollutant:     DisplayName(prof.Pollutant),
			Concentration: common.Round1(concentration),
			Unit:          prof.Unit,
		})
	}
	return peaks
}

// CalendarData predicts one calendar cell per day of the month.
func (p *Predictor) CalendarData(year int, month time.Month) []CalendarDay {
	numDays := daysInMonth(year, month)

	cells := make([]CalendarDay, 0, numDays)
	for day := 1; day <= numDays; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		aqi := p.AQIForDate(date)
		cells = append(cells, CalendarDay{
			Day:           day,
			AQI:           aqi,
			Category:      CategoryForAQI(aqi),
			MainPollutant: DisplayName(p.MainPollutant(date)),
		})
	}
	return cells
}

// ChartData builds the pollutants-page chart for the requested granularity.
// filter must be one of "hourly", "weekly" or "daily". now anchors the
// windows when the requested month is the current one.
func (p *Predictor) ChartData(filter string, year int, month time.Month, now time.Time) Series {
	switch filter {
	case "hourly":
		return p.hourlyChart(year, month, now)
	case "weekly":
		return p.weeklyChart(year, month)
	default:
		return p.dailyChart(year, month, now)
	}
}

func (p *Predictor) hourlyChart(year int, month time.Month, now time.Time) Series {
	day := 15
	if year == now.Year() && month == now.Month() {
		day = now.Day()
	}
	base := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	baseAQI := float64(p.AQIForDate(base))
	rng := rngFor(base.Format(DateLayout) + "#hourly")

	hours := []int{0, 3, 6, 9, 12, 15, 18, 21}
	s := Series{}
	for _, h := range hours {
		mult := 1.0
		switch {
		case h == 0 || h == 3 || h == 21: // night
			mult = 0.85
		case h == 6 || h == 9: // morning rush
			mult = 1.15
		case h == 12 || h == 15: // afternoon peak
			mult = 1.25
		case h == 18: // evening rush
			mult = 1.10
		}

		jitter := 0.9 + rng.Float64()*0.2
		v := common.Clamp(baseAQI*mult*jitter, 20, 110)

		s.Labels = append(s.Labels, fmt.Sprintf("%02d:00", h))
		s.Data = append(s.Data, math.Round(v))
	}
	return s
}

func (p *Predictor) weeklyChart(year int, month time.Month) Series {
	s := Series{}
	for i := 0; i < 4; i++ {
		day := 7 + i*7
		if day > 28 {
			day = 28
		}
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		s.Labels = append(s.Labels, fmt.Sprintf("Week %d", i+1))
		s.Data = append(s.Data, float64(p.AQIForDate(date)))
	}
	return s
}

func (p *Predictor) dailyChart(year int, month time.Month, now time.Time) Series {
	numDays := daysInMonth(year, month)

	startDay, endDay := 1, numDays
	if year == now.Year() && month == now.Month() {
		// Show a two-week window centered on today.
		startDay = now.Day() - 6
		if startDay < 1 {
			startDay = 1
		}
		endDay = now.Day() + 7
		if endDay > numDays {
			endDay = numDays
		}
		if endDay-startDay+1 < 14 {
			startDay = endDay - 13
			if startDay < 1 {
				startDay = 1
			}
		}
	} else if numDays > 14 {
		endDay = 14
	}

	s := Series{}
	for day := startDay; day <= endDay; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		s.Labels = append(s.Labels, date.Format("Jan 02"))
		s.Data = append(s.Data, float64(p.AQIForDate(date)))
	}
	return s
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
