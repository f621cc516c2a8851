package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Connect("", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableColumns(t *testing.T, db *DB, table string) []string {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	return cols
}

func TestMigrateCreatesSchema(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	cols := tableColumns(t, db, "solicitudes")
	require.Contains(t, cols, "muestra")
	require.Contains(t, cols, "muestra_detalle")
	require.Contains(t, cols, "creado")

	userCols := tableColumns(t, db, "usuarios")
	require.Contains(t, userCols, "clave_hash")
	require.Contains(t, userCols, "ultimo_acceso")
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	firstRun := tableColumns(t, db, "solicitudes")

	_, err := db.Exec(`
		INSERT INTO solicitudes (dueno, tel, mascota, muestra, direccion, creado)
		VALUES ('Ana', '555-1111', 'Rex', 'sangre', 'Calle 1', CURRENT_TIMESTAMP)
	`)
	require.NoError(t, err)

	// Second run must neither change the column set nor touch rows.
	require.NoError(t, db.Migrate())

	require.Equal(t, firstRun, tableColumns(t, db, "solicitudes"))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM solicitudes`))
	require.Equal(t, 1, count)
}

func TestWrapErrorPassesThroughNoRows(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	var dueno string
	err := db.Get(&dueno, `SELECT dueno FROM solicitudes WHERE id = 1`)
	require.ErrorIs(t, WrapError("test", err), sql.ErrNoRows)
	require.Nil(t, WrapError("test", nil))
}
