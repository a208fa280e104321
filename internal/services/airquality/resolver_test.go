package airquality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"envhealth-api/internal/models"
)

var testTable = map[string]models.Coordinate{
	"Delhi":  {Latitude: 28.7041, Longitude: 77.1025},
	"Mumbai": {Latitude: 19.0760, Longitude: 72.8777},
	"Jaipur": {Latitude: 26.9124, Longitude: 75.7873},
}

func TestCoordinateResolver_Resolve(t *testing.T) {
	r := NewCoordinateResolver(testTable, "Delhi")

	assert.Equal(t, testTable["Mumbai"], r.Resolve("Mumbai"))
	assert.Equal(t, testTable["Delhi"], r.Resolve("Delhi"))
}

func TestCoordinateResolver_UnknownCityFallsBackToDefault(t *testing.T) {
	r := NewCoordinateResolver(testTable, "Delhi")

	assert.Equal(t, testTable["Delhi"], r.Resolve("Atlantis"))
	assert.Equal(t, testTable["Delhi"], r.Resolve(""))
	// lookups are exact
	assert.Equal(t, testTable["Delhi"], r.Resolve("mumbai"))

	city := r.ResolveCity("Atlantis")
	assert.Equal(t, "Delhi", city.Name)
}

func TestCoordinateResolver_TableIsCopied(t *testing.T) {
	table := map[string]models.Coordinate{"Delhi": {Latitude: 1, Longitude: 2}}
	r := NewCoordinateResolver(table, "Delhi")

	table["Delhi"] = models.Coordinate{Latitude: 9, Longitude: 9}

	assert.Equal(t, models.Coordinate{Latitude: 1, Longitude: 2}, r.Resolve("Delhi"))
}

func TestCoordinateResolver_Cities(t *testing.T) {
	r := NewCoordinateResolver(testTable, "Delhi")

	assert.Equal(t, []string{"Delhi", "Jaipur", "Mumbai"}, r.Cities())
	assert.Equal(t, "Delhi", r.DefaultCity())
}
