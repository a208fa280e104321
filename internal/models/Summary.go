package models

type Summary struct {
	City         string    `json:"city" example:"Delhi"`
	CurrentPM25  *float64  `json:"current_pm25" example:"57"`
	RecentRainMM *float64  `json:"recent_rain_mm" example:"2.5"`
	RiskLevel    RiskLevel `json:"risk_level" example:"Low"`

	// PM25Source is where CurrentPM25 came from. It stays out of the body.
	PM25Source DataSource `json:"-"`
}
