package models

type DailyRow struct {
	Date        Date    `json:"date" swaggertype:"string" example:"2025-07-25"`
	City        string  `json:"city" example:"Delhi"`
	AvgPM25     float64 `json:"avg_pm25" example:"74"`
	DailyRainMM float64 `json:"daily_rain_mm" example:"3"`
}
