package models

import "time"

type MeasurementKind string

const (
	KindPM25     MeasurementKind = "pm25"
	KindRainfall MeasurementKind = "rainfall"
)

type DataSource string

const (
	SourceNone      DataSource = "none"
	SourceLive      DataSource = "live"
	SourceSynthetic DataSource = "synthetic"
)

type Measurement struct {
	Value     float64         `json:"value"`
	Kind      MeasurementKind `json:"kind"`
	Source    DataSource      `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
}
