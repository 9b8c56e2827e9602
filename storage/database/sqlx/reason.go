package sqlxrepo

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/lotola/observatoire/core/reason"
)

type reasonRow struct {
	ID        string    `db:"id"`
	Label     string    `db:"label"`
	CreatedAt time.Time `db:"created_at"`
}

func (r reasonRow) reason() reason.Reason {
	return reason.Reason{ID: r.ID, Label: r.Label, CreatedAt: r.CreatedAt}
}

type reasonRepository struct {
	db *sqlx.DB
}

var _ reason.Repository = (*reasonRepository)(nil)

func NewReasonRepository(db *sqlx.DB) reason.Repository {
	return &reasonRepository{db: db}
}

func (repo *reasonRepository) CreateReason(r reason.Reason) (reason.Reason, error) {
	r.ID = uuid.New().String()

	const query = `INSERT INTO reason (id, label, created_at) VALUES ($1, $2, $3)`
	if _, err := repo.db.Exec(query, r.ID, r.Label, r.CreatedAt); err != nil {
		return reason.Reason{}, errors.Wrap(err, "creating reason")
	}
	return r, nil
}

func (repo *reasonRepository) QueryAllReasons() ([]reason.Reason, error) {
	var rows []reasonRow
	if err := repo.db.Select(&rows, `SELECT * FROM reason ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying reasons")
	}
	reasons := make([]reason.Reason, len(rows))
	for i, row := range rows {
		reasons[i] = row.reason()
	}
	return reasons, nil
}

func (repo *reasonRepository) GetReasonByLabel(label string) (reason.Reason, error) {
	var row reasonRow
	if err := repo.db.Get(&row, `SELECT * FROM reason WHERE LOWER(label) = LOWER($1)`, label); err != nil {
		if err == sql.ErrNoRows {
			return reason.Reason{}, reason.ErrNotFound
		}
		return reason.Reason{}, errors.Wrap(err, "getting reason")
	}
	return row.reason(), nil
}

func (repo *reasonRepository) GetReasonByID(id string) (reason.Reason, error) {
	if !isValidID(id) {
		return reason.Reason{}, reason.ErrNotFound
	}
	var row reasonRow
	if err := repo.db.Get(&row, `SELECT * FROM reason WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return reason.Reason{}, reason.ErrNotFound
		}
		return reason.Reason{}, errors.Wrap(err, "getting reason")
	}
	return row.reason(), nil
}

func (repo *reasonRepository) DeleteReasonsByID(ids ...string) error {
	if ids = validIDs(ids); len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM reason WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting reasons")
	}
	return nil
}
