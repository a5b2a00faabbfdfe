package store

import (
	"database/sql"
	"fmt"
	"log"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var db *sql.DB

// Init opens the stat database and verifies the connection.
func Init(path string) error {
	handle, err := sql.Open("sqlite", fmt.Sprintf("file:%s", filepath.ToSlash(path)))
	if err != nil {
		return fmt.Errorf("open stat database: %w", err)
	}
	if err := handle.Ping(); err != nil {
		handle.Close()
		return fmt.Errorf("ping stat database: %w", err)
	}
	db = handle
	log.Printf("stat database opened: %s", path)
	return nil
}

// DB exposes the handle for tooling (sample generation).
func DB() *sql.DB {
	return db
}

// SetDB swaps the handle; used by tests and the sample generator.
func SetDB(handle *sql.DB) {
	db = handle
}

// Close releases the database handle.
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// CreateSchema creates all tables used by the store. Safe to call on an
// existing database.
func CreateSchema(handle *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS defenders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL, nation TEXT, squad TEXT, comp TEXT,
			age INTEGER, born INTEGER, mp INTEGER, starts INTEGER, min INTEGER, ninety_s REAL,
			aerwon_percentage REAL, tklwon REAL, clr REAL, blksh REAL, "int" REAL,
			pasmedcmp REAL, pasmedcmp_percentage REAL
		)`,
		`CREATE TABLE IF NOT EXISTS midfielders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL, nation TEXT, squad TEXT, comp TEXT,
			age INTEGER, born INTEGER, mp INTEGER, starts INTEGER, min INTEGER, ninety_s REAL,
			recov REAL, pastotcmp REAL, pastotcmp_percentage REAL, pasprog REAL,
			tklmid3rd REAL, carprog REAL, "int" REAL
		)`,
		`CREATE TABLE IF NOT EXISTS forwards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL, nation TEXT, squad TEXT, comp TEXT,
			age INTEGER, born INTEGER, mp INTEGER, starts INTEGER, min INTEGER, ninety_s REAL,
			goals REAL, sot REAL, sot_percentage REAL, scash REAL, touattpen REAL,
			assists REAL, sca REAL
		)`,
		`CREATE TABLE IF NOT EXISTS goalkeepers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL, nation TEXT, squad TEXT, comp TEXT,
			age INTEGER, born INTEGER, mp INTEGER, starts INTEGER, min INTEGER, ninety_s REAL,
			pastotcmp_percentage REAL, pastotcmp REAL, err REAL, save_percentage REAL,
			sweeper_actions REAL, pas3rd REAL
		)`,
		`CREATE TABLE IF NOT EXISTS market_values (
			name TEXT NOT NULL, year INTEGER NOT NULL,
			mv REAL NOT NULL, age INTEGER, club TEXT, nr REAL, pr REAL,
			PRIMARY KEY (name, year)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_market_values_name ON market_values(name)`,
	}
	for _, stmt := range stmts {
		if _, err := handle.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
