// Package fetch is the data-fetching collaborator of the view coordinator:
// an HTTP client for the AirSight API with retries, a circuit breaker and
// outbound rate limiting.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/aqi"
)

// Failure kinds. Callers dispatch with errors.Is; every fetch error wraps
// exactly one of these.
var (
	ErrNetwork   = errors.New("network failure")
	ErrTimeout   = errors.New("fetch timed out")
	ErrMalformed = errors.New("malformed response")
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
)

// Client fetches payloads from the AirSight API.
type Client struct {
	baseURL string
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

// NewClient creates a Client for the API at baseURL.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "airsight-api",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL: baseURL,
		client:  httpClient,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// Fetch retrieves the prediction payload for a date and model.
func (c *Client) Fetch(ctx context.Context, date time.Time, model aqi.Model) (aqi.PredictionData, error) {
	values := url.Values{}
	values.Set("date", date.Format(aqi.DateLayout))
	values.Set("model", string(model))

	var payload aqi.PredictionData
	if err := c.getJSON(ctx, "/api/prediction", values, &payload); err != nil {
		return aqi.PredictionData{}, err
	}

	if err := checkPredictionShape(payload); err != nil {
		return aqi.PredictionData{}, err
	}
	return payload, nil
}

// Dashboard retrieves the dashboard payload for a date.
func (c *Client) Dashboard(ctx context.Context, date time.Time) (aqi.DashboardData, error) {
	values := url.Values{}
	values.Set("date", date.Format(aqi.DateLayout))

	var payload aqi.DashboardData
	if err := c.getJSON(ctx, "/api/dashboard", values, &payload); err != nil {
		return aqi.DashboardData{}, err
	}

	if payload.CurrentCategory == "" || payload.Date == "" {
		return aqi.DashboardData{}, fmt.Errorf("%w: incomplete dashboard payload", ErrMalformed)
	}
	return payload, nil
}

// checkPredictionShape rejects payloads that decoded but are structurally
// unusable for rendering.
func checkPredictionShape(p aqi.PredictionData) error {
	switch {
	case len(p.ModelPerformances) == 0:
		return fmt.Errorf("%w: missing model performances", ErrMalformed)
	case !p.SelectedModel.Valid():
		return fmt.Errorf("%w: unknown selected model %q", ErrMalformed, p.SelectedModel)
	case len(p.TrendData.Labels) != len(p.TrendData.Data):
		return fmt.Errorf("%w: trend labels/data length mismatch", ErrMalformed)
	case len(p.PollutantForecast.Labels) != len(p.PollutantForecast.Data):
		return fmt.Errorf("%w: forecast labels/data length mismatch", ErrMalformed)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, values url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return classify(err)
	}

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Request-ID", uuid.NewString())
		return req, nil
	}

	resp, err := c.doWithResilience(ctx, buildRequest)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// doWithResilience executes the HTTP request with retries, exponential
// backoff, and a circuit breaker.
func (c *Client) doWithResilience(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := c.circuit.Execute(func() (interface{}, error) {
			resp, execErr := c.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		// An open circuit will not heal within this call; stop retrying.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, err
		}
		// Context errors are final too.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}

		lastErr = err
		if attempt >= c.backoff.MaxRetries {
			return nil, lastErr
		}

		delay := c.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.backoff.MaxInterval > 0 && delay > c.backoff.MaxInterval {
			delay = c.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}

// classify wraps a transport-level error into one of the exported failure
// kinds.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
