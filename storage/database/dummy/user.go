// Package dummy implements volatile in-memory repositories for tests and
// local development.
package dummy

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lotola/observatoire/core/user"
)

type userRepository struct {
	mu    sync.RWMutex
	users []user.User
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository() user.Repository {
	return &userRepository{}
}

func (repo *userRepository) CheckEmailUniqueness(email string, exclUsers ...user.User) error {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	excluded := func(usr user.User) bool {
		for _, ex := range exclUsers {
			if ex.ID == usr.ID {
				return true
			}
		}
		return false
	}
	for _, usr := range repo.users {
		if usr.Email == email && !excluded(usr) {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	usr.ID = uuid.New().String()
	repo.users = append(repo.users, usr)
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	users := make([]user.User, len(repo.users))
	copy(users, repo.users)
	return users, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, usr := range repo.users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, usr := range repo.users {
		if usr.Email == email {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i, u := range repo.users {
		if u.ID == usr.ID {
			repo.users[i] = usr
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) DeleteUsersByID(ids ...string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}
	kept := repo.users[:0]
	for _, usr := range repo.users {
		if _, ok := doomed[usr.ID]; !ok {
			kept = append(kept, usr)
		}
	}
	repo.users = kept
	return nil
}
