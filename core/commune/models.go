package commune

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/lotola/observatoire/core"
)

type Commune struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Latitude  null.Float64 `json:"latitude"`
	Longitude null.Float64 `json:"longitude"`
	CreatedAt time.Time    `json:"created_at"` // UTC
}

// HasCoordinates reports whether the commune can be placed on the map.
// Communes without coordinates are still valid for tallying.
func (c Commune) HasCoordinates() bool {
	return c.Latitude.Valid && c.Longitude.Valid
}

// NewCommune contains information needed to create a new Commune.
// Coordinates arrive as form text and must parse as numbers.
type NewCommune struct {
	Name      string `json:"name" validate:"required"`
	Latitude  string `json:"latitude" validate:"required,numeric"`
	Longitude string `json:"longitude" validate:"required,numeric"`
}

func (nc *NewCommune) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Latitude = core.CleanString(nc.Latitude)
	nc.Longitude = core.CleanString(nc.Longitude)
	return validate.Struct(nc)
}

// Coordinates parses the latitude/longitude fields.
func (nc NewCommune) Coordinates() (lat, lng float64, err error) {
	if lat, err = strconv.ParseFloat(nc.Latitude, 64); err != nil {
		return 0, 0, err
	}
	if lng, err = strconv.ParseFloat(nc.Longitude, 64); err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}
