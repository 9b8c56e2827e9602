package reason

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lotola/observatoire/core"
)

// Reason is one entry of the open-ended relocation-reason taxonomy.
type Reason struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewReason contains information needed to create a new taxonomy entry.
type NewReason struct {
	Label string `json:"label" validate:"required"`
}

func (nr *NewReason) Validate(validate *validator.Validate) error {
	nr.Label = core.CleanString(nr.Label)
	return validate.Struct(nr)
}
