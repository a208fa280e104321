package airquality

import "envhealth-api/internal/models"

const (
	highRiskAbove   = 100.0
	mediumRiskAbove = 60.0
)

// Classify maps a PM2.5 concentration to a risk level. nil means no value could be
// produced at all.
func Classify(pm25 *float64) models.RiskLevel {
	if pm25 == nil {
		return models.RiskUnknown
	}
	return ClassifyValue(*pm25)
}

func ClassifyValue(pm25 float64) models.RiskLevel {
	switch {
	case pm25 > highRiskAbove:
		return models.RiskHigh
	case pm25 > mediumRiskAbove:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
