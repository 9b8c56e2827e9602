package testutil

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/lotola/observatoire/core/commune"
	"github.com/lotola/observatoire/core/movement"
	"github.com/lotola/observatoire/core/reason"
	"github.com/lotola/observatoire/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd, role string,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		FullName:  name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCommune(t *testing.T, repo commune.Repository, name string, coords ...float64) commune.Commune {
	c := commune.Commune{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if len(coords) == 2 {
		c.Latitude = null.Float64From(coords[0])
		c.Longitude = null.Float64From(coords[1])
	}
	c, err := repo.CreateCommune(c)
	if err != nil {
		t.Fatalf("CreateCommune() failed: %v", err)
	}
	return c
}

func CreateReason(t *testing.T, repo reason.Repository, label string) reason.Reason {
	r, err := repo.CreateReason(reason.Reason{Label: label, CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("CreateReason() failed: %v", err)
	}
	return r
}

func CreateMovement(t *testing.T, repo movement.Repository, origin, dest, reasonLabel, date string) movement.Movement {
	m, err := repo.CreateMovement(movement.Movement{
		OriginCommune:      origin,
		DestinationCommune: dest,
		Reason:             reasonLabel,
		Date:               date,
		RecordedAt:         time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateMovement() failed: %v", err)
	}
	return m
}
