package sqlxrepo

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/lotola/observatoire/core/movement"
)

type movementRow struct {
	ID                 string    `db:"id"`
	OriginCommune      string    `db:"origin_commune"`
	DestinationCommune string    `db:"destination_commune"`
	Reason             string    `db:"reason"`
	Date               string    `db:"date"`
	RecordedAt         time.Time `db:"recorded_at"`
}

func (r movementRow) movement() movement.Movement {
	return movement.Movement{
		ID:                 r.ID,
		OriginCommune:      r.OriginCommune,
		DestinationCommune: r.DestinationCommune,
		Reason:             r.Reason,
		Date:               r.Date,
		RecordedAt:         r.RecordedAt,
	}
}

type movementRepository struct {
	db *sqlx.DB
}

var _ movement.Repository = (*movementRepository)(nil)

func NewMovementRepository(db *sqlx.DB) movement.Repository {
	return &movementRepository{db: db}
}

func (repo *movementRepository) CreateMovement(m movement.Movement) (movement.Movement, error) {
	m.ID = uuid.New().String()

	const query = `
		INSERT INTO movement (id, origin_commune, destination_commune, reason, date, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := repo.db.Exec(query, m.ID, m.OriginCommune, m.DestinationCommune, m.Reason, m.Date, m.RecordedAt)
	if err != nil {
		return movement.Movement{}, errors.Wrap(err, "creating movement")
	}
	return m, nil
}

func (repo *movementRepository) QueryAllMovements() ([]movement.Movement, error) {
	var rows []movementRow
	if err := repo.db.Select(&rows, `SELECT * FROM movement ORDER BY recorded_at`); err != nil {
		return nil, errors.Wrap(err, "querying movements")
	}
	movs := make([]movement.Movement, len(rows))
	for i, row := range rows {
		movs[i] = row.movement()
	}
	return movs, nil
}

func (repo *movementRepository) GetMovementByID(id string) (movement.Movement, error) {
	if !isValidID(id) {
		return movement.Movement{}, movement.ErrNotFound
	}
	var row movementRow
	if err := repo.db.Get(&row, `SELECT * FROM movement WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return movement.Movement{}, movement.ErrNotFound
		}
		return movement.Movement{}, errors.Wrap(err, "getting movement")
	}
	return row.movement(), nil
}

func (repo *movementRepository) DeleteMovementsByID(ids ...string) error {
	if ids = validIDs(ids); len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM movement WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting movements")
	}
	return nil
}
