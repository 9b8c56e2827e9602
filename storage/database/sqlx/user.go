// Package sqlxrepo implements repositories backed by PostgreSQL via sqlx.
package sqlxrepo

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lotola/observatoire/core/user"
)

// id columns are postgres UUIDs; a malformed id cannot match any row but
// would fail the query with pq's "invalid input syntax for type uuid"
// instead of sql.ErrNoRows. Trap it up front so malformed ids read as
// not-found, the same as the in-memory backend.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validIDs(ids []string) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if isValidID(id) {
			valid = append(valid, id)
		}
	}
	return valid
}

type userRow struct {
	ID             string    `db:"id"`
	Email          string    `db:"email"`
	FullName       string    `db:"full_name"`
	Role           string    `db:"role"`
	PasswordHash   []byte    `db:"password_hash"`
	CreatedAt      time.Time `db:"created_at"`
	LastLogin      null.Time `db:"last_login"`
	LastRoleUpdate null.Time `db:"last_role_update"`
}

func (r userRow) user() user.User {
	return user.User{
		ID:             r.ID,
		Email:          r.Email,
		FullName:       r.FullName,
		Role:           r.Role,
		PasswordHash:   r.PasswordHash,
		CreatedAt:      r.CreatedAt,
		LastLogin:      r.LastLogin,
		LastRoleUpdate: r.LastRoleUpdate,
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckEmailUniqueness(email string, exclUsers ...user.User) error {
	query := `SELECT COUNT(*) FROM "user" WHERE email = $1`
	args := []interface{}{email}
	if len(exclUsers) > 0 {
		ids := make([]string, 0, len(exclUsers))
		for _, usr := range exclUsers {
			ids = append(ids, usr.ID)
		}
		q, inArgs, err := sqlx.In(`SELECT COUNT(*) FROM "user" WHERE email = ? AND id NOT IN (?)`, email, ids)
		if err != nil {
			return errors.Wrap(err, "building query")
		}
		query = repo.db.Rebind(q)
		args = inArgs
	}

	var count int
	if err := repo.db.Get(&count, query, args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()

	const query = `
		INSERT INTO "user" (id, email, full_name, role, password_hash, created_at, last_login, last_role_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.Exec(query,
		usr.ID, usr.Email, usr.FullName, usr.Role, usr.PasswordHash,
		usr.CreatedAt, usr.LastLogin, usr.LastRoleUpdate,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var rows []userRow
	if err := repo.db.Select(&rows, `SELECT * FROM "user" ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, len(rows))
	for i, row := range rows {
		users[i] = row.user()
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	if !isValidID(id) {
		return user.User{}, user.ErrNotFound
	}
	var row userRow
	if err := repo.db.Get(&row, `SELECT * FROM "user" WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.user(), nil
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	var row userRow
	if err := repo.db.Get(&row, `SELECT * FROM "user" WHERE email = $1`, email); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.user(), nil
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	const query = `
		UPDATE "user"
		SET email = $2, full_name = $3, role = $4, password_hash = $5, last_login = $6, last_role_update = $7
		WHERE id = $1`
	res, err := repo.db.Exec(query,
		usr.ID, usr.Email, usr.FullName, usr.Role, usr.PasswordHash,
		usr.LastLogin, usr.LastRoleUpdate,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) DeleteUsersByID(ids ...string) error {
	if ids = validIDs(ids); len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM "user" WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
