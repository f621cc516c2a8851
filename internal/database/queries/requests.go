package queries

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vetlab-project/vetlab-server/internal/database"
	"github.com/vetlab-project/vetlab-server/internal/models"
)

// ErrNoSelection is returned by DeleteByIDs when no ids were given. It is
// distinct from deleting ids that no longer exist, which succeeds with
// count zero.
var ErrNoSelection = errors.New("no request ids selected")

// DefaultListLimit caps the staff listing page.
const DefaultListLimit = 50

type RequestQueries struct {
	db *database.DB
}

func NewRequestQueries(db *database.DB) *RequestQueries {
	return &RequestQueries{db: db}
}

// Create inserts a new pickup request. Status and creation time are set
// here, at the moment of persistence: every record starts out "pendiente".
// The assigned id is written back into req.
func (q *RequestQueries) Create(req *models.Request) error {
	req.Status = models.StatusPending
	req.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO solicitudes (
			zona, dueno, tel, email, mascota, mascota_tipo, mascota_edad, mascota_raza,
			muestra, muestra_detalle, direccion, fecha, horario, estado, creado
		) VALUES (
			:zona, :dueno, :tel, :email, :mascota, :mascota_tipo, :mascota_edad, :mascota_raza,
			:muestra, :muestra_detalle, :direccion, :fecha, :horario, :estado, :creado
		)
	`

	if q.db.DriverName() == "postgres" {
		rows, err := q.db.NamedQuery(query+" RETURNING id", req)
		if err != nil {
			return database.WrapError("create request", err)
		}
		defer rows.Close()
		if rows.Next() {
			if err := rows.Scan(&req.ID); err != nil {
				return database.WrapError("create request", err)
			}
		}
		return nil
	}

	result, err := q.db.NamedExec(query, req)
	if err != nil {
		return database.WrapError("create request", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return database.WrapError("create request", err)
	}
	req.ID = id
	return nil
}

// ListRecent returns up to limit requests, newest first. Ties on the
// creation timestamp break toward the higher id. An empty table yields an
// empty slice, not an error.
func (q *RequestQueries) ListRecent(limit int) ([]models.Request, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var requests []models.Request
	query := q.db.Rebind(`
		SELECT * FROM solicitudes
		ORDER BY creado DESC, id DESC
		LIMIT ?
	`)
	if err := q.db.Select(&requests, query, limit); err != nil {
		return nil, database.WrapError("list requests", err)
	}
	return requests, nil
}

// DeleteByIDs removes the given requests in a single statement. Ids that
// do not exist are ignored; the returned count reflects rows actually
// removed. An empty id set returns ErrNoSelection without touching the
// database.
func (q *RequestQueries) DeleteByIDs(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoSelection
	}

	query, args, err := sqlx.In(`DELETE FROM solicitudes WHERE id IN (?)`, ids)
	if err != nil {
		return 0, database.WrapError("delete requests", err)
	}

	result, err := q.db.Exec(q.db.Rebind(query), args...)
	if err != nil {
		return 0, database.WrapError("delete requests", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, database.WrapError("delete requests", err)
	}
	return affected, nil
}

// CountByStatus returns how many requests sit in each lifecycle state.
func (q *RequestQueries) CountByStatus() (map[string]int, error) {
	counts := make(map[string]int)

	rows, err := q.db.Query(`SELECT estado, COUNT(*) FROM solicitudes GROUP BY estado`)
	if err != nil {
		return nil, database.WrapError("count requests", err)
	}
	defer rows.Close()

	for rows.Next() {
		var estado string
		var count int
		if err := rows.Scan(&estado, &count); err != nil {
			return nil, database.WrapError("count requests", err)
		}
		counts[estado] = count
	}
	return counts, database.WrapError("count requests", rows.Err())
}
