package sqlxrepo

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lotola/observatoire/core/commune"
)

type communeRow struct {
	ID        string       `db:"id"`
	Name      string       `db:"name"`
	Latitude  null.Float64 `db:"latitude"`
	Longitude null.Float64 `db:"longitude"`
	CreatedAt time.Time    `db:"created_at"`
}

func (r communeRow) commune() commune.Commune {
	return commune.Commune{
		ID:        r.ID,
		Name:      r.Name,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		CreatedAt: r.CreatedAt,
	}
}

type communeRepository struct {
	db *sqlx.DB
}

var _ commune.Repository = (*communeRepository)(nil)

func NewCommuneRepository(db *sqlx.DB) commune.Repository {
	return &communeRepository{db: db}
}

func (repo *communeRepository) CreateCommune(c commune.Commune) (commune.Commune, error) {
	c.ID = uuid.New().String()

	const query = `
		INSERT INTO commune (id, name, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := repo.db.Exec(query, c.ID, c.Name, c.Latitude, c.Longitude, c.CreatedAt); err != nil {
		return commune.Commune{}, errors.Wrap(err, "creating commune")
	}
	return c, nil
}

func (repo *communeRepository) QueryAllCommunes() ([]commune.Commune, error) {
	var rows []communeRow
	if err := repo.db.Select(&rows, `SELECT * FROM commune ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying communes")
	}
	communes := make([]commune.Commune, len(rows))
	for i, row := range rows {
		communes[i] = row.commune()
	}
	return communes, nil
}

func (repo *communeRepository) GetCommuneByID(id string) (commune.Commune, error) {
	if !isValidID(id) {
		return commune.Commune{}, commune.ErrNotFound
	}
	var row communeRow
	if err := repo.db.Get(&row, `SELECT * FROM commune WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return commune.Commune{}, commune.ErrNotFound
		}
		return commune.Commune{}, errors.Wrap(err, "getting commune")
	}
	return row.commune(), nil
}

func (repo *communeRepository) DeleteCommunesByID(ids ...string) error {
	if ids = validIDs(ids); len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM commune WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting communes")
	}
	return nil
}
