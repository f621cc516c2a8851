package database

import (
	"fmt"
	"log"
)

// A migration is one ordered schema step. Steps marked required create the
// core tables and abort startup on failure; optional steps add columns to
// existing installs and are skipped with a log line when they fail (SQLite
// has no ADD COLUMN IF NOT EXISTS, so a duplicate column surfaces as an
// error on every run after the first).
type migration struct {
	name     string
	stmt     string
	postgres string // dialect override, used when non-empty on a postgres backend
	required bool
}

var migrations = []migration{
	{
		name:     "001_create_solicitudes",
		required: true,
		stmt: `
			CREATE TABLE IF NOT EXISTS solicitudes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				zona TEXT DEFAULT '',
				dueno TEXT NOT NULL,
				tel TEXT NOT NULL,
				email TEXT DEFAULT '',
				mascota TEXT NOT NULL,
				mascota_tipo TEXT DEFAULT '',
				mascota_edad INTEGER,
				mascota_raza TEXT DEFAULT '',
				muestra TEXT NOT NULL,
				direccion TEXT NOT NULL,
				fecha TEXT,
				horario TEXT DEFAULT '',
				estado TEXT NOT NULL DEFAULT 'pendiente',
				creado TIMESTAMP NOT NULL
			)`,
		postgres: `
			CREATE TABLE IF NOT EXISTS solicitudes (
				id BIGSERIAL PRIMARY KEY,
				zona TEXT DEFAULT '',
				dueno TEXT NOT NULL,
				tel TEXT NOT NULL,
				email TEXT DEFAULT '',
				mascota TEXT NOT NULL,
				mascota_tipo TEXT DEFAULT '',
				mascota_edad INTEGER,
				mascota_raza TEXT DEFAULT '',
				muestra TEXT NOT NULL,
				direccion TEXT NOT NULL,
				fecha TEXT,
				horario TEXT DEFAULT '',
				estado TEXT NOT NULL DEFAULT 'pendiente',
				creado TIMESTAMPTZ NOT NULL
			)`,
	},
	{
		name:     "002_create_usuarios",
		required: true,
		stmt: `
			CREATE TABLE IF NOT EXISTS usuarios (
				id TEXT PRIMARY KEY,
				usuario TEXT UNIQUE NOT NULL,
				nombre TEXT NOT NULL,
				clave_hash TEXT NOT NULL,
				rol TEXT NOT NULL,
				creado TIMESTAMP NOT NULL
			)`,
		postgres: `
			CREATE TABLE IF NOT EXISTS usuarios (
				id UUID PRIMARY KEY,
				usuario TEXT UNIQUE NOT NULL,
				nombre TEXT NOT NULL,
				clave_hash TEXT NOT NULL,
				rol TEXT NOT NULL,
				creado TIMESTAMPTZ NOT NULL
			)`,
	},
	{
		name: "003_solicitudes_muestra_detalle",
		stmt: `ALTER TABLE solicitudes ADD COLUMN muestra_detalle TEXT DEFAULT ''`,
	},
	{
		name:     "004_usuarios_ultimo_acceso",
		stmt:     `ALTER TABLE usuarios ADD COLUMN ultimo_acceso TIMESTAMP`,
		postgres: `ALTER TABLE usuarios ADD COLUMN ultimo_acceso TIMESTAMPTZ`,
	},
}

// Migrate applies the ordered migration list. It is safe to run on every
// startup: core table creation is idempotent, and failed column additions
// are logged and skipped. Only a required-step failure is returned.
func (db *DB) Migrate() error {
	for _, m := range migrations {
		stmt := m.stmt
		if db.DriverName() == "postgres" && m.postgres != "" {
			stmt = m.postgres
		}

		if _, err := db.Exec(stmt); err != nil {
			if m.required {
				return fmt.Errorf("migration %s failed: %w", m.name, WrapError("migrate", err))
			}
			log.Printf("Migration %s skipped: %v", m.name, err)
			continue
		}
	}
	return nil
}
