package movement

import (
	"time"

	"github.com/pkg/errors"

	"github.com/lotola/observatoire/core/reason"
)

var (
	// errors
	ErrNotFound = errors.New("movement not found")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateMovement(m Movement) (Movement, error)
		QueryAllMovements() ([]Movement, error)
		GetMovementByID(id string) (Movement, error)
		DeleteMovementsByID(ids ...string) error
	}

	// ReasonEnsurer resolves a free-text reason to a taxonomy entry, creating
	// one when no case-insensitive match exists.
	ReasonEnsurer interface {
		GetOrCreate(label string) (reason.Reason, error)
	}

	Service struct {
		repo    Repository
		reasons ReasonEnsurer
	}
)

func NewService(repo Repository, reasons ReasonEnsurer) *Service {
	return &Service{repo: repo, reasons: reasons}
}

// Create records a movement. A custom reason is ensured in the taxonomy first;
// the two writes are not atomic and a failed movement insert leaves the new
// taxonomy entry in place (accepted partial outcome, no rollback).
func (svc *Service) Create(nm NewMovement) (Movement, error) {
	label := nm.ReasonLabel()

	if nm.Reason == ReasonOther {
		if _, err := svc.reasons.GetOrCreate(label); err != nil {
			return Movement{}, errors.Wrap(err, "ensuring reason taxonomy entry")
		}
	}

	m := Movement{
		OriginCommune:      nm.OriginCommune,
		DestinationCommune: nm.DestinationCommune,
		Reason:             label,
		Date:               nm.Date,
		RecordedAt:         nowFunc().UTC(),
	}
	return svc.repo.CreateMovement(m)
}

func (svc *Service) QueryAll() ([]Movement, error) {
	return svc.repo.QueryAllMovements()
}

func (svc *Service) GetByID(id string) (Movement, error) {
	return svc.repo.GetMovementByID(id)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteMovementsByID(ids...)
}
