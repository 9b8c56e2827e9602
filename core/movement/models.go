package movement

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lotola/observatoire/core"
)

// ReasonOther is the sentinel reason selection meaning a free-text reason is
// supplied in CustomReason.
const ReasonOther = "__other__"

// Movement is a single recorded relocation event between two communes.
// Communes and reasons are referenced by name, not id: renaming or deleting
// either silently orphans historic movements (accepted limitation).
type Movement struct {
	ID                 string    `json:"id"`
	OriginCommune      string    `json:"origin_commune"`
	DestinationCommune string    `json:"destination_commune"`
	Reason             string    `json:"reason"`
	Date               string    `json:"date"` // calendar date as entered; no enforced format
	RecordedAt         time.Time `json:"recorded_at"`
}

// NewMovement contains information needed to record a new Movement.
type NewMovement struct {
	OriginCommune      string `json:"origin_commune" validate:"required"`
	DestinationCommune string `json:"destination_commune" validate:"required"`
	Reason             string `json:"reason"`
	CustomReason       string `json:"custom_reason"`
	Date               string `json:"date" validate:"required"`
}

func (nm *NewMovement) Validate(validate *validator.Validate) error {
	nm.OriginCommune = core.CleanString(nm.OriginCommune)
	nm.DestinationCommune = core.CleanString(nm.DestinationCommune)
	nm.Reason = core.CleanString(nm.Reason)
	nm.CustomReason = core.CleanString(nm.CustomReason)
	nm.Date = core.CleanString(nm.Date)

	if err := validate.Struct(nm); err != nil {
		return err
	}
	if nm.Reason == ReasonOther && nm.CustomReason == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "custom_reason", Error: "this field is required"})
	}
	return nil
}

// ReasonLabel is the normalized reason label to store: the trimmed custom text
// when the sentinel is selected, the selected label otherwise.
func (nm NewMovement) ReasonLabel() string {
	if nm.Reason == ReasonOther {
		return nm.CustomReason
	}
	return nm.Reason
}
