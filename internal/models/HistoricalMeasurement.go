package models

import (
	"strconv"
	"time"
)

// HistoricalMeasurement is one archived PM2.5 reading as written by the ingestion helper.
type HistoricalMeasurement struct {
	UTC       time.Time
	Parameter string
	Value     float64
	Unit      string
	Location  string
	Lat       float64
	Lon       float64
}

// CSVHeader lists the columns of CSVRecord, in order.
func CSVHeader() []string {
	return []string{"utc", "parameter", "value", "unit", "location", "lat", "lon"}
}

func (m HistoricalMeasurement) CSVRecord() []string {
	return []string{
		m.UTC.UTC().Format(time.RFC3339),
		m.Parameter,
		strconv.FormatFloat(m.Value, 'f', -1, 64),
		m.Unit,
		m.Location,
		strconv.FormatFloat(m.Lat, 'f', -1, 64),
		strconv.FormatFloat(m.Lon, 'f', -1, 64),
	}
}
