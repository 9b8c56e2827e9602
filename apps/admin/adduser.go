package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lotola/observatoire/core"
	"github.com/lotola/observatoire/core/user"
)

// addUser updates or creates an account. With admin set, the account gets the
// admin role; its id then serves as authorization code for registrations.
func (cli *commandLine) addUser(email, name, pwd string, admin bool) error {
	email = core.CleanString(email, true /* lower */)
	name = core.CleanString(name)

	usr, err := cli.usrRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Email:     email,
			Role:      user.RoleUtilisateur,
			CreatedAt: time.Now().UTC(),
		}
	}
	if name != "" {
		usr.FullName = name
	}
	if admin {
		usr.Role = user.RoleAdmin
		usr.LastRoleUpdate = null.TimeFrom(time.Now().UTC())
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == "" {
		_, err = cli.usrRepo.CreateUser(usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(usr)
	}
	return err
}
