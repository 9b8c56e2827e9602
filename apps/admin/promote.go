package main

import (
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/lotola/observatoire/core"
	"github.com/lotola/observatoire/core/user"
)

func (cli *commandLine) promote(email, role string) error {
	role = core.CleanString(role, true /* lower */)
	if !user.KnownRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}

	usr, err := cli.usrRepo.GetUserByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	usr.Role = role
	usr.LastRoleUpdate = null.TimeFrom(time.Now().UTC())
	_, err = cli.usrRepo.UpdateUser(usr)
	return err
}
