package view

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/aqi"
)

// fetcherFunc adapts a function to the Fetcher interface.
type fetcherFunc func(ctx context.Context, date time.Time, model aqi.Model) (aqi.PredictionData, error)

func (f fetcherFunc) Fetch(ctx context.Context, date time.Time, model aqi.Model) (aqi.PredictionData, error) {
	return f(ctx, date, model)
}

// captureRenderer records every rendered payload.
type captureRenderer struct {
	mu       sync.Mutex
	payloads []aqi.PredictionData
}

func (r *captureRenderer) Render(p aqi.PredictionData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
}

func (r *captureRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

func (r *captureRenderer) last(t *testing.T) aqi.PredictionData {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.payloads) == 0 {
		t.Fatal("nothing rendered")
	}
	return r.payloads[len(r.payloads)-1]
}

func okFetcher(counter *int) fetcherFunc {
	return func(ctx context.Context, date time.Time, model aqi.Model) (aqi.PredictionData, error) {
		if counter != nil {
			*counter++
		}
		p := FallbackPayload()
		p.SelectedModel = model
		p.ModelStatus = "ready"
		return p, nil
	}
}

// TestPopoverMutualExclusion verifies that no sequence of toggle calls ever
// leaves both popovers open.
func TestPopoverMutualExclusion(t *testing.T) {
	c := New(okFetcher(nil), &captureRenderer{})

	steps := []func(){
		c.ToggleDatePopover,
		c.ToggleModelPopover,
		c.ToggleModelPopover,
		c.ToggleDatePopover,
		c.ToggleDatePopover,
		c.ToggleModelPopover,
		c.ToggleDatePopover,
		c.ToggleModelPopover,
	}
	for i, step := range steps {
		step()
		st := c.State()
		if st.DatePopoverOpen && st.ModelPopoverOpen {
			t.Fatalf("step %d: both popovers open", i)
		}
	}
}

func TestTogglePopoverOpensAndCloses(t *testing.T) {
	c := New(okFetcher(nil), &captureRenderer{})

	c.ToggleDatePopover()
	if st := c.State(); !st.DatePopoverOpen {
		t.Fatal("date popover should be open")
	}

	// Opening the model popover closes the date popover.
	c.ToggleModelPopover()
	st := c.State()
	if st.DatePopoverOpen || !st.ModelPopoverOpen {
		t.Fatalf("want model popover open only, got date=%v model=%v", st.DatePopoverOpen, st.ModelPopoverOpen)
	}

	// Closing is a pure visibility change.
	c.ToggleModelPopover()
	st = c.State()
	if st.DatePopoverOpen || st.ModelPopoverOpen {
		t.Fatal("both popovers should be closed")
	}
}

// TestLoadDataSingleFlight verifies that a LoadData call arriving while one
// is outstanding is dropped without a second fetch.
func TestLoadDataSingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	fetcher := fetcherFunc(func(ctx context.Context, date time.Time, model aqi.Model) (aqi.PredictionData, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-release
		return FallbackPayload(), nil
	})

	renderer := &captureRenderer{}
	c := New(fetcher, renderer)

	done := make(chan bool)
	go func() { done <- c.LoadData() }()

	<-started
	if !c.Loading() {
		t.Fatal("expected loading flag set during fetch")
	}
	if c.LoadData() {
		t.Fatal("second concurrent LoadData should be a no-op")
	}

	close(release)
	if !<-done {
		t.Fatal("first LoadData should have performed the load")
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("want 1 fetch, got %d", calls)
	}
	if renderer.count() != 1 {
		t.Fatalf("want 1 render, got %d", renderer.count())
	}
}

// TestLoadDataFallbackOnError verifies that any fetch failure renders the
// fallback payload, emits a warning, and clears the loading flag.
func TestLoadDataFallbackOnError(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context, date time.Time, model aqi.Model) (aqi.PredictionData, error) {
		return aqi.PredictionData{}, errors.New("connection refused")
	})

	renderer := &captureRenderer{}
	var warning string
	c := New(fetcher, renderer, WithWarningHandler(func(msg string) { warning = msg }))

	if !c.LoadData() {
		t.Fatal("LoadData should have run")
	}
	if c.Loading() {
		t.Fatal("loading flag must be clear after a failed load")
	}
	if got := renderer.last(t); got.ModelStatus != "demo" {
		t.Fatalf("want fallback payload rendered, got status %q", got.ModelStatus)
	}
	if !strings.Contains(warning, "demo data") {
		t.Fatalf("want fallback warning, got %q", warning)
	}
}

// TestLoadDataFallbackOnTimeout verifies the bounded-timeout path.
func TestLoadDataFallbackOnTimeout(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context, date time.Time, model aqi.Model) (aqi.PredictionData, error) {
		<-ctx.Done()
		return aqi.PredictionData{}, ctx.Err()
	})

	renderer := &captureRenderer{}
	c := New(fetcher, renderer,
		WithTimeout(10*time.Millisecond),
		WithWarningHandler(func(string) {}),
	)

	if !c.LoadData() {
		t.Fatal("LoadData should have run")
	}
	if c.Loading() {
		t.Fatal("loading flag must be clear after a timeout")
	}
	if got := renderer.last(t); got.ModelStatus != "demo" {
		t.Fatalf("want fallback payload after timeout, got status %q", got.ModelStatus)
	}
}

func TestNavigateMonthWrapsYears(t *testing.T) {
	var calls int
	c := New(okFetcher(&calls), &captureRenderer{},
		WithInitialDate(time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)))

	if err := c.NavigateMonth(1); err != nil {
		t.Fatal(err)
	}
	st := c.State()
	if st.CursorYear != 2025 || st.CursorMonth != time.January {
		t.Fatalf("want January 2025, got %s %d", st.CursorMonth, st.CursorYear)
	}

	if err := c.NavigateMonth(-1); err != nil {
		t.Fatal(err)
	}
	if err := c.NavigateMonth(-1); err != nil {
		t.Fatal(err)
	}
	st = c.State()
	if st.CursorYear != 2024 || st.CursorMonth != time.November {
		t.Fatalf("want November 2024, got %s %d", st.CursorMonth, st.CursorYear)
	}

	// January back to December crosses the year the other way.
	c2 := New(okFetcher(nil), &captureRenderer{},
		WithInitialDate(time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)))
	if err := c2.NavigateMonth(-1); err != nil {
		t.Fatal(err)
	}
	st = c2.State()
	if st.CursorYear != 2023 || st.CursorMonth != time.December {
		t.Fatalf("want December 2023, got %s %d", st.CursorMonth, st.CursorYear)
	}

	if err := c.NavigateMonth(2); !errors.Is(err, ErrInvalidDelta) {
		t.Fatalf("want ErrInvalidDelta, got %v", err)
	}

	// Navigation never touches the selection and never reloads.
	st = c.State()
	if !st.SelectedDate.Equal(time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("selected date changed to %v", st.SelectedDate)
	}
	if calls != 0 {
		t.Fatalf("navigation triggered %d fetches", calls)
	}
}

// TestSelectorsEachTriggerReload verifies that a date change followed by a
// model change issues two independent reloads, not one merged one.
func TestSelectorsEachTriggerReload(t *testing.T) {
	var calls int
	renderer := &captureRenderer{}
	c := New(okFetcher(&calls), renderer)

	c.ToggleDatePopover()
	if err := c.SelectDate(time.Date(2025, time.March, 8, 14, 30, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	st := c.State()
	if st.DatePopoverOpen {
		t.Fatal("SelectDate must close the date popover")
	}
	if !st.SelectedDate.Equal(time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("selected date not normalized: %v", st.SelectedDate)
	}

	if err := c.SelectModel(aqi.ModelXGBoost); err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Fatalf("want exactly 2 reload triggers, got %d", calls)
	}
	if renderer.count() != 2 {
		t.Fatalf("want 2 renders, got %d", renderer.count())
	}
}

func TestSelectValidation(t *testing.T) {
	var calls int
	c := New(okFetcher(&calls), &captureRenderer{})

	if err := c.SelectDate(time.Time{}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
	if err := c.SelectModel("deep_thought"); !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("want ErrUnknownModel, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("rejected selections must not trigger reloads, got %d", calls)
	}
}

// TestSelectModelSwitchesConfidence verifies that after switching to lstm the
// rendered payload reflects lstm's metrics rather than the previous model's.
func TestSelectModelSwitchesConfidence(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context, date time.Time, model aqi.Model) (aqi.PredictionData, error) {
		p := FallbackPayload()
		p.SelectedModel = model
		p.ModelStatus = "ready"
		return p, nil
	})

	renderer := &captureRenderer{}
	c := New(fetcher, renderer)

	if got := c.State().SelectedModel; got != aqi.ModelGradientBoosting {
		t.Fatalf("default model should be gradient_boosting, got %s", got)
	}

	if err := c.SelectModel(aqi.ModelLSTM); err != nil {
		t.Fatal(err)
	}

	p := renderer.last(t)
	if p.SelectedModel != aqi.ModelLSTM {
		t.Fatalf("rendered payload selected model = %s, want lstm", p.SelectedModel)
	}
	perf, ok := p.ModelPerformances[p.SelectedModel]
	if !ok {
		t.Fatal("payload lacks metrics for the selected model")
	}
	want := aqi.ModelPerformances()[aqi.ModelLSTM].R2Score
	if perf.R2Score != want {
		t.Fatalf("confidence = %v, want lstm's %v", perf.R2Score, want)
	}
}
