package airquality

import (
	"sort"

	"envhealth-api/internal/models"
)

// CoordinateResolver maps city names to fixed coordinates. It is read-only after
// construction and safe for concurrent use.
type CoordinateResolver struct {
	table       map[string]models.Coordinate
	defaultCity string
}

// NewCoordinateResolver copies table. defaultCity must be a key of table.
func NewCoordinateResolver(table map[string]models.Coordinate, defaultCity string) *CoordinateResolver {
	copied := make(map[string]models.Coordinate, len(table))
	for name, coord := range table {
		copied[name] = coord
	}

	return &CoordinateResolver{
		table:       copied,
		defaultCity: defaultCity,
	}
}

// Resolve never fails: unknown cities get the default city's coordinate.
func (r *CoordinateResolver) Resolve(city string) models.Coordinate {
	return r.ResolveCity(city).Coordinate
}

// ResolveCity returns the table entry actually used for city.
func (r *CoordinateResolver) ResolveCity(city string) models.City {
	if coord, ok := r.table[city]; ok {
		return models.City{Name: city, Coordinate: coord}
	}
	return models.City{Name: r.defaultCity, Coordinate: r.table[r.defaultCity]}
}

func (r *CoordinateResolver) DefaultCity() string {
	return r.defaultCity
}

func (r *CoordinateResolver) Cities() []string {
	names := make([]string, 0, len(r.table))
	for name := range r.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
