package models

// ForecastPoint is one day of a forecast timeline. Observed is set on the first day only.
type ForecastPoint struct {
	Date            Date     `json:"date" swaggertype:"string" example:"2025-07-25"`
	Observed        *float64 `json:"obs" example:"57"`
	PredictedMedian float64  `json:"pred_median" example:"63"`
	P10             float64  `json:"p10" example:"42"`
	P90             float64  `json:"p90" example:"82"`
}

type ForecastLocation struct {
	Lat  float64   `json:"lat" example:"28.7041"`
	Lon  float64   `json:"lon" example:"77.1025"`
	PM25 float64   `json:"pm25" example:"57"`
	Risk RiskLevel `json:"risk" example:"Low"`
	Name string    `json:"name" example:"Delhi"`
}

type Next24h struct {
	PM25Median          float64    `json:"pm25_median" example:"57"`
	EstimatedAdmissions int        `json:"estimated_admissions" example:"5"`
	Confidence          Confidence `json:"confidence" example:"Medium"`
}

type ForecastResult struct {
	Timeline  []ForecastPoint    `json:"timeline"`
	Locations []ForecastLocation `json:"locations"`
	Next24h   Next24h            `json:"next24h"`
}
