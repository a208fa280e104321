package models

import "strconv"

type Coordinate struct {
	Latitude  float64 `json:"lat" example:"28.7041"`
	Longitude float64 `json:"lon" example:"77.1025"`
}

// String renders the coordinate as "lat,lon", the form OpenAQ accepts.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

type City struct {
	Name       string     `json:"name" example:"Delhi"`
	Coordinate Coordinate `json:"coordinate"`
}
