package httpapi

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/aqi"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *aqi.Service) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(service.Health())
	})

	api.Get("/dashboard", func(c *fiber.Ctx) error {
		date, err := parseDateQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(service.Dashboard(date))
	})

	api.Get("/prediction", func(c *fiber.Ctx) error {
		date, err := parseDateQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		model := aqi.Model(c.Query("model", string(aqi.BestModel)))
		if !model.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "unknown model: "+string(model))
		}

		return c.JSON(service.Prediction(date, model))
	})

	api.Get("/pollutants", func(c *fiber.Ctx) error {
		var req pollutantsQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		payload := service.Pollutants(req.Year, time.Month(req.Month), req.Filter, req.Pollutant)
		return c.JSON(payload)
	})

	api.Get("/recommendations", func(c *fiber.Ctx) error {
		date, err := parseDateQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(service.Recommendations(date))
	})
}

// parseDateQuery reads the optional date query parameter, defaulting to today.
func parseDateQuery(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(aqi.DateLayout, raw)
}

// pollutantsQuery holds query parameters for the pollutants endpoint.
type pollutantsQuery struct {
	Year      int    `validate:"gte=1900,lte=2100"`
	Month     int    `validate:"gte=1,lte=12"`
	Filter    string `validate:"oneof=hourly weekly daily"`
	Pollutant string `validate:"required"`
}

func (q *pollutantsQuery) bind(c *fiber.Ctx) error {
	now := time.Now().UTC()

	q.Year = c.QueryInt("year", now.Year())
	q.Month = c.QueryInt("month", int(now.Month()))
	q.Filter = c.Query("filter", "daily")
	q.Pollutant = c.Query("pollutant", "PM2.5")
	return nil
}
