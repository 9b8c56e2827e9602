package dummy

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lotola/observatoire/core/commune"
)

type communeRepository struct {
	mu       sync.RWMutex
	communes []commune.Commune
}

var _ commune.Repository = (*communeRepository)(nil)

func NewCommuneRepository() commune.Repository {
	return &communeRepository{}
}

func (repo *communeRepository) CreateCommune(c commune.Commune) (commune.Commune, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	c.ID = uuid.New().String()
	repo.communes = append(repo.communes, c)
	return c, nil
}

func (repo *communeRepository) QueryAllCommunes() ([]commune.Commune, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	communes := make([]commune.Commune, len(repo.communes))
	copy(communes, repo.communes)
	return communes, nil
}

func (repo *communeRepository) GetCommuneByID(id string) (commune.Commune, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, c := range repo.communes {
		if c.ID == id {
			return c, nil
		}
	}
	return commune.Commune{}, commune.ErrNotFound
}

func (repo *communeRepository) DeleteCommunesByID(ids ...string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}
	kept := repo.communes[:0]
	for _, c := range repo.communes {
		if _, ok := doomed[c.ID]; !ok {
			kept = append(kept, c)
		}
	}
	repo.communes = kept
	return nil
}
