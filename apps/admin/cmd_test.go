package main

import (
	"bytes"
	"database/sql"
	"fmt"
	"testing"

	"github.com/lotola/observatoire/core/user"
	"github.com/lotola/observatoire/storage/database/dummy"
	testutil "github.com/lotola/observatoire/tests"
)

func setup() (*commandLine, user.Repository) {
	usrRepo := dummy.NewUserRepository()
	return &commandLine{usrRepo: usrRepo}, usrRepo
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup()

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s requires a VERSION argument", command)
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create requires a NAME argument")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to requires a VERSION argument"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create requires a NAME argument"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, usrRepo := setup()

	usr := testutil.CreateUser(t, usrRepo, "Awe", "awe@test.cd", "mdrLol1", user.RoleAgent)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.cd"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", usr.Email}, extra: extra{pwd: "newPwd1"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUserByID(usr.ID)
				if err != nil {
					t.Fatalf("GetUserByID() failed: %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addUserAndPromote(t *testing.T) {
	cli, usrRepo := setup()

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("LePassw0rd"), nil }

	// create an admin account
	if err := cli.run([]string{"admin", "adduser", "-email", "boss@test.cd", "-name", "Boss", "-admin"}); err != nil {
		t.Fatalf("cli.run(adduser) failed: %v", err)
	}
	boss, err := usrRepo.GetUserByEmail("boss@test.cd")
	if err != nil {
		t.Fatalf("GetUserByEmail() failed: %v", err)
	}
	if boss.Role != user.RoleAdmin {
		t.Errorf("role = %q, want %q", boss.Role, user.RoleAdmin)
	}
	if err = boss.CheckPassword("LePassw0rd"); err != nil {
		t.Errorf("password was not set: %v", err)
	}

	// adduser on an existing email updates in place
	if err = cli.run([]string{"admin", "adduser", "-email", "boss@test.cd", "-name", "Big Boss"}); err != nil {
		t.Fatalf("cli.run(adduser) failed: %v", err)
	}
	users, _ := usrRepo.QueryAllUsers()
	if len(users) != 1 {
		t.Fatalf("got %d accounts, want 1", len(users))
	}
	if users[0].FullName != "Big Boss" {
		t.Errorf("full name = %q, want %q", users[0].FullName, "Big Boss")
	}

	// promote
	if err = cli.run([]string{"admin", "promote", "-email", "boss@test.cd", "-role", user.RoleDecision}); err != nil {
		t.Fatalf("cli.run(promote) failed: %v", err)
	}
	boss, _ = usrRepo.GetUserByEmail("boss@test.cd")
	if boss.Role != user.RoleDecision {
		t.Errorf("role = %q, want %q", boss.Role, user.RoleDecision)
	}
	if !boss.LastRoleUpdate.Valid {
		t.Error("lastRoleUpdate was not stamped")
	}

	// unknown role is refused
	if err = cli.run([]string{"admin", "promote", "-email", "boss@test.cd", "-role", "superuser"}); err == nil {
		t.Error("cli.run(promote) accepted an unknown role")
	}
}
