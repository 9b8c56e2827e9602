package commune

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lotola/observatoire/core"
)

var (
	// errors
	ErrNotFound = errors.New("commune not found")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateCommune(c Commune) (Commune, error)
		QueryAllCommunes() ([]Commune, error)
		GetCommuneByID(id string) (Commune, error)
		DeleteCommunesByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nc NewCommune) (Commune, error) {
	lat, lng, err := nc.Coordinates()
	if err != nil {
		return Commune{}, core.NewValidationError(err, core.FieldError{Field: "latitude", Error: "must be a valid number"})
	}
	c := Commune{
		Name:      nc.Name,
		Latitude:  null.Float64From(lat),
		Longitude: null.Float64From(lng),
		CreatedAt: nowFunc().UTC(),
	}
	return svc.repo.CreateCommune(c)
}

func (svc *Service) QueryAll() ([]Commune, error) {
	return svc.repo.QueryAllCommunes()
}

func (svc *Service) GetByID(id string) (Commune, error) {
	return svc.repo.GetCommuneByID(id)
}

// Delete removes communes by id. Historic movements referencing a deleted
// commune's name are left untouched; the name match simply stops resolving.
func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteCommunesByID(ids...)
}
