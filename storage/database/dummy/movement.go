package dummy

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lotola/observatoire/core/movement"
)

type movementRepository struct {
	mu        sync.RWMutex
	movements []movement.Movement
}

var _ movement.Repository = (*movementRepository)(nil)

func NewMovementRepository() movement.Repository {
	return &movementRepository{}
}

func (repo *movementRepository) CreateMovement(m movement.Movement) (movement.Movement, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	m.ID = uuid.New().String()
	repo.movements = append(repo.movements, m)
	return m, nil
}

func (repo *movementRepository) QueryAllMovements() ([]movement.Movement, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	movs := make([]movement.Movement, len(repo.movements))
	copy(movs, repo.movements)
	return movs, nil
}

func (repo *movementRepository) GetMovementByID(id string) (movement.Movement, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, m := range repo.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return movement.Movement{}, movement.ErrNotFound
}

func (repo *movementRepository) DeleteMovementsByID(ids ...string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}
	kept := repo.movements[:0]
	for _, m := range repo.movements {
		if _, ok := doomed[m.ID]; !ok {
			kept = append(kept, m)
		}
	}
	repo.movements = kept
	return nil
}
