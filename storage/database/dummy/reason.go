package dummy

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lotola/observatoire/core/reason"
)

type reasonRepository struct {
	mu      sync.RWMutex
	reasons []reason.Reason
}

var _ reason.Repository = (*reasonRepository)(nil)

func NewReasonRepository() reason.Repository {
	return &reasonRepository{}
}

func (repo *reasonRepository) CreateReason(r reason.Reason) (reason.Reason, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	r.ID = uuid.New().String()
	repo.reasons = append(repo.reasons, r)
	return r, nil
}

func (repo *reasonRepository) QueryAllReasons() ([]reason.Reason, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	reasons := make([]reason.Reason, len(repo.reasons))
	copy(reasons, repo.reasons)
	return reasons, nil
}

func (repo *reasonRepository) GetReasonByID(id string) (reason.Reason, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, r := range repo.reasons {
		if r.ID == id {
			return r, nil
		}
	}
	return reason.Reason{}, reason.ErrNotFound
}

func (repo *reasonRepository) GetReasonByLabel(label string) (reason.Reason, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, r := range repo.reasons {
		if strings.EqualFold(r.Label, label) {
			return r, nil
		}
	}
	return reason.Reason{}, reason.ErrNotFound
}

func (repo *reasonRepository) DeleteReasonsByID(ids ...string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}
	kept := repo.reasons[:0]
	for _, r := range repo.reasons {
		if _, ok := doomed[r.ID]; !ok {
			kept = append(kept, r)
		}
	}
	repo.reasons = kept
	return nil
}
