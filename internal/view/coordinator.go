// Package view coordinates the dashboard's client-side state: the selected
// date and model, the calendar cursor, popover visibility, and the single
// in-flight data load that feeds the renderer.
package view

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/aqi"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrUnknownModel = errors.New("unknown model")
	ErrInvalidDelta = errors.New("month delta must be -1 or +1")
)

// Fetcher retrieves the prediction payload for a date and model. It must
// respect the context deadline.
type Fetcher interface {
	Fetch(ctx context.Context, date time.Time, model aqi.Model) (aqi.PredictionData, error)
}

// Renderer consumes a payload and updates whatever surface it owns. It must
// not fail; rendering problems are the renderer's to swallow.
type Renderer interface {
	Render(payload aqi.PredictionData)
}

// State is a snapshot of the coordinator's view state.
type State struct {
	SelectedDate  time.Time // midnight UTC
	SelectedModel aqi.Model

	// Calendar cursor: the month the calendar widget displays. Independent
	// of SelectedDate.
	CursorYear  int
	CursorMonth time.Month

	DatePopoverOpen  bool
	ModelPopoverOpen bool
}

// Coordinator owns the view state for one dashboard session. It is created
// once by the host application; interaction handlers call its methods, which
// mutate state and trigger at most one data load at a time.
type Coordinator struct {
	mu    sync.Mutex
	state State

	// loading is the reentrancy guard for LoadData: checked and set with a
	// single CAS before the fetch suspends.
	loading atomic.Bool

	fetcher   Fetcher
	renderer  Renderer
	timeout   time.Duration
	onWarning func(msg string)
	sessionID string
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTimeout bounds how long a single data load may take.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

// WithWarningHandler routes non-blocking user-facing warnings (such as the
// fallback-data notice) to fn instead of the process log.
func WithWarningHandler(fn func(msg string)) Option {
	return func(c *Coordinator) { c.onWarning = fn }
}

// WithInitialDate overrides the default selected date (today).
func WithInitialDate(d time.Time) Option {
	return func(c *Coordinator) {
		day := midnightUTC(d)
		c.state.SelectedDate = day
		c.state.CursorYear = day.Year()
		c.state.CursorMonth = day.Month()
	}
}

// WithInitialModel overrides the default selected model.
func WithInitialModel(m aqi.Model) Option {
	return func(c *Coordinator) { c.state.SelectedModel = m }
}

// New creates a Coordinator with defaults: today, the best model, calendar
// cursor on the current month, all popovers closed.
func New(fetcher Fetcher, renderer Renderer, opts ...Option) *Coordinator {
	today := midnightUTC(time.Now().UTC())

	c := &Coordinator{
		state: State{
			SelectedDate:  today,
			SelectedModel: aqi.BestModel,
			CursorYear:    today.Year(),
			CursorMonth:   today.Month(),
		},
		fetcher:   fetcher,
		renderer:  renderer,
		timeout:   5 * time.Second,
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionID identifies this dashboard session.
func (c *Coordinator) SessionID() string {
	return c.sessionID
}

// State returns a snapshot of the current view state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loading reports whether a data load is in flight.
func (c *Coordinator) Loading() bool {
	return c.loading.Load()
}

// SelectDate sets the selected date, closes the date popover, and triggers
// exactly one reload.
func (c *Coordinator) SelectDate(d time.Time) error {
	if d.IsZero() {
		return ErrInvalidDate
	}

	c.mu.Lock()
	c.state.SelectedDate = midnightUTC(d)
	c.state.DatePopoverOpen = false
	c.mu.Unlock()

	c.LoadData()
	return nil
}

// SelectModel sets the selected model, closes the model popover, and triggers
// exactly one reload.
func (c *Coordinator) SelectModel(m aqi.Model) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownModel, m)
	}

	c.mu.Lock()
	c.state.SelectedModel = m
	c.state.ModelPopoverOpen = false
	c.mu.Unlock()

	c.LoadData()
	return nil
}

// ToggleDatePopover flips the date popover. Opening it closes the model
// popover; at most one popover is ever open.
func (c *Coordinator) ToggleDatePopover() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.DatePopoverOpen {
		c.state.DatePopoverOpen = false
		return
	}
	c.state.DatePopoverOpen = true
	c.state.ModelPopoverOpen = false
}

// ToggleModelPopover flips the model popover, closing the date popover when
// opening.
func (c *Coordinator) ToggleModelPopover() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.ModelPopoverOpen {
		c.state.ModelPopoverOpen = false
		return
	}
	c.state.ModelPopoverOpen = true
	c.state.DatePopoverOpen = false
}

// NavigateMonth moves the calendar cursor one month in either direction,
// wrapping year boundaries. It never touches the selected date and never
// triggers a reload.
func (c *Coordinator) NavigateMonth(delta int) error {
	if delta != -1 && delta != 1 {
		return ErrInvalidDelta
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t := time.Date(c.state.CursorYear, c.state.CursorMonth+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	c.state.CursorYear = t.Year()
	c.state.CursorMonth = t.Month()
	return nil
}

// LoadData fetches the payload for the current selection and hands it to the
// renderer. A call arriving while a load is outstanding is dropped silently.
// A failed or timed-out fetch is not retried here: the fixed fallback payload
// is rendered and a warning emitted. The in-flight flag clears on every exit
// path. Returns whether this call performed the load.
func (c *Coordinator) LoadData() bool {
	if !c.loading.CAS(false, true) {
		return false
	}
	defer c.loading.Store(false)

	c.mu.Lock()
	date := c.state.SelectedDate
	model := c.state.SelectedModel
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	payload, err := c.fetcher.Fetch(ctx, date, model)
	if err != nil {
		c.warn(fmt.Sprintf("live data unavailable (%v); showing demo data", err))
		payload = FallbackPayload()
	}

	c.renderer.Render(payload)
	return true
}

func (c *Coordinator) warn(msg string) {
	if c.onWarning != nil {
		c.onWarning(msg)
		return
	}
	log.Printf("view: %s", msg)
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
