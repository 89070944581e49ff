package main

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/gta100/susa/sim"
)

// Store persists sweep results in a sqlite database, one row per Eb/N0
// point, keyed by the run fingerprint so repeated sweeps of the same
// configuration are easy to spot.
type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS ber_points (
			run_id TEXT NOT NULL,
			code TEXT NOT NULL,
			ebn0_db REAL NOT NULL,
			frames INTEGER NOT NULL,
			bits INTEGER NOT NULL,
			bit_errors INTEGER NOT NULL,
			frame_errors INTEGER NOT NULL,
			ber REAL NOT NULL,
			fer REAL NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_ber_points_run ON ber_points(run_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordSweep inserts every point of a finished sweep.
func (s *Store) RecordSweep(runID, codeDesc string, points []sim.Point) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO ber_points (run_id, code, ebn0_db, frames, bits, bit_errors, frame_errors, ber, fer)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(runID, codeDesc, p.EbN0dB, p.Frames, p.Bits, p.BitErrors, p.FrameErrors, p.BER, p.FER); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}
