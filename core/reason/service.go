package reason

import (
	"time"

	"github.com/pkg/errors"

	"github.com/lotola/observatoire/core"
)

var (
	// errors
	ErrNotFound    = errors.New("reason not found")
	ErrLabelExists = errors.New("a reason with this label already exists")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateReason(r Reason) (Reason, error)
		QueryAllReasons() ([]Reason, error)
		GetReasonByID(id string) (Reason, error)
		// GetReasonByLabel matches case-insensitively.
		GetReasonByLabel(label string) (Reason, error)
		DeleteReasonsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a taxonomy entry. Label uniqueness is case-insensitive: no entry
// may be duplicated by casing alone.
func (svc *Service) Create(nr NewReason) (Reason, error) {
	if _, err := svc.repo.GetReasonByLabel(nr.Label); err == nil {
		return Reason{}, core.NewValidationError(ErrLabelExists, core.FieldError{Field: "label", Error: ErrLabelExists.Error()})
	} else if errors.Cause(err) != ErrNotFound {
		return Reason{}, err
	}
	return svc.repo.CreateReason(Reason{Label: nr.Label, CreatedAt: nowFunc().UTC()})
}

// GetOrCreate returns the case-insensitive match for label, creating the entry
// when none exists. The returned entry keeps its original casing; a fresh entry
// stores the label as provided.
func (svc *Service) GetOrCreate(label string) (Reason, error) {
	r, err := svc.repo.GetReasonByLabel(label)
	if err == nil {
		return r, nil
	}
	if errors.Cause(err) != ErrNotFound {
		return Reason{}, err
	}
	return svc.repo.CreateReason(Reason{Label: label, CreatedAt: nowFunc().UTC()})
}

func (svc *Service) QueryAll() ([]Reason, error) {
	return svc.repo.QueryAllReasons()
}

func (svc *Service) GetByID(id string) (Reason, error) {
	return svc.repo.GetReasonByID(id)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteReasonsByID(ids...)
}
