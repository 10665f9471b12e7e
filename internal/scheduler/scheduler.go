package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/aqi"
)

// warmDays is how far ahead the cache is pre-warmed.
const warmDays = 7

// Scheduler periodically pre-warms the prediction cache for the coming week.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *aqi.Service
	model     aqi.Model
	interval  time.Duration
}

// New creates a new Scheduler.
func New(service *aqi.Service, model aqi.Model, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		model:     model,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running prediction warm-up job")

		now := time.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		for i := 0; i < warmDays; i++ {
			s.service.Prediction(today.AddDate(0, 0, i), s.model)
		}

		log.Println("scheduler: completed prediction warm-up job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
