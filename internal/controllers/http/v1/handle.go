package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultDailyRows = 7
	maxDailyRows     = 366
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid query parameters"`
}

// StatusResponse is returned by the root endpoint
type StatusResponse struct {
	Status    string   `json:"status" example:"EnvHealth API is live (PM2.5 + rainfall)"`
	Endpoints []string `json:"endpoints,omitempty"`
	Cities    []string `json:"cities,omitempty"`
}

type cityQuery struct {
	City string `query:"city"`
}

type dailyQuery struct {
	City string `query:"city"`
	N    int    `query:"n"`
}

// handleRoot godoc
// @Summary Service status
// @Description Liveness message with the available endpoints and known cities
// @Tags Status
// @Produce json
// @Success 200 {object} StatusResponse
// @Router / [get]
func (r *routes) handleRoot(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{
		Status:    "EnvHealth API is live (PM2.5 + rainfall)",
		Endpoints: endpoints,
		Cities:    r.service.Cities(),
	})
}

// handleRootHead godoc
// @Summary Uptime probe
// @Tags Status
// @Success 200
// @Router / [head]
func (r *routes) handleRootHead(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{Status: "ok"})
}

// handleSummary godoc
// @Summary Current air-quality summary
// @Description Latest PM2.5 near the city, recent rainfall and the derived risk level.
// @Description When the air-quality provider is unreachable the PM2.5 value is synthetic;
// @Description the X-PM25-Source header reports live, synthetic or none.
// @Tags AirQuality
// @Produce json
// @Param city query string false "City name (default: Delhi)" example(Mumbai)
// @Success 200 {object} models.Summary
// @Header 200 {string} X-PM25-Source "live, synthetic or none"
// @Failure 400 {object} ErrorResponse
// @Router /summary [get]
func (r *routes) handleSummary(c *fiber.Ctx) error {
	var q cityQuery
	if err := r.parseQuery(c, &q); err != nil {
		return badRequest(c, err)
	}

	summary := r.service.Summary(c.UserContext(), r.cityOrDefault(q.City))

	c.Set(PM25SourceHeader, string(summary.PM25Source))
	return c.JSON(summary)
}

// handleForecast godoc
// @Summary Synthetic PM2.5 forecast
// @Description Five-day projection around the current PM2.5 baseline with a p10/p90 band
// @Tags AirQuality
// @Produce json
// @Param city query string false "City name (default: Delhi)" example(Jaipur)
// @Success 200 {object} models.ForecastResult
// @Failure 400 {object} ErrorResponse
// @Router /forecast [get]
func (r *routes) handleForecast(c *fiber.Ctx) error {
	var q cityQuery
	if err := r.parseQuery(c, &q); err != nil {
		return badRequest(c, err)
	}

	return c.JSON(r.service.Forecast(c.UserContext(), r.cityOrDefault(q.City)))
}

// handleDailyData godoc
// @Summary Daily history
// @Description Placeholder daily averages for the last n days, newest first.
// @Description Only a non-integer n is rejected.
// @Tags AirQuality
// @Produce json
// @Param city query string false "City name (default: Delhi)"
// @Param n query integer false "Number of days, clamped to 0-366 (default: 7)" example(7)
// @Success 200 {array} models.DailyRow
// @Failure 400 {object} ErrorResponse
// @Router /data/daily [get]
func (r *routes) handleDailyData(c *fiber.Ctx) error {
	q := dailyQuery{N: defaultDailyRows}
	if err := r.parseQuery(c, &q); err != nil {
		return badRequest(c, err)
	}

	return c.JSON(r.service.DailyHistory(r.cityOrDefault(q.City), clampRows(q.N)))
}

func (r *routes) parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		r.l.Debug("cannot parse query", map[string]any{
			"path":  c.Path(),
			"query": string(c.Request().URI().QueryString()),
			"err":   err.Error(),
		})
		return errors.New("invalid query parameters")
	}

	return nil
}

// cityOrDefault maps an absent or blank city to the default one.
func (r *routes) cityOrDefault(city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return r.service.DefaultCity()
	}
	return city
}

func clampRows(n int) int {
	return min(max(n, 0), maxDailyRows)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
}
