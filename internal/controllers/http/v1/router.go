package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "envhealth-api/docs"
	"envhealth-api/internal/services/airquality"
	"envhealth-api/pkg/logger"
)

// PM25SourceHeader tells the caller whether current_pm25 is live, synthetic or absent.
const PM25SourceHeader = "X-PM25-Source"

var endpoints = []string{"/summary", "/forecast", "/data/daily"}

type routes struct {
	service *airquality.Service
	l       *logger.Logger
}

func NewRouter(
	app *fiber.App,
	service *airquality.Service,
	l *logger.Logger,
) {
	r := &routes{
		service: service,
		l:       l,
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	// HEAD must come first: fiber registers GET handlers for HEAD as well.
	app.Head("/", r.handleRootHead)
	app.Get("/", r.handleRoot)

	app.Get("/summary", r.handleSummary)
	app.Get("/forecast", r.handleForecast)
	app.Get("/data/daily", r.handleDailyData)
}
