// Package storage provides the session casebook: which labs the detective
// has solved and how their exams went.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// The database lives in memory and disappears with the process.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/forenzy/internal/exam"
)

// Store manages the in-memory SQLite casebook of one session.
type Store struct {
	db *sql.DB
}

// SolvedEntry records a lab the player has finished.
type SolvedEntry struct {
	LabID       string
	Times       int // how often the lab was solved this session
	FirstSolved time.Time
}

// ExamEntry records one submitted exam.
type ExamEntry struct {
	ID        int64
	Name      string
	Score     int
	Correct   int
	Total     int
	Tier      string
	CreatedAt time.Time
}

// OpenMemory creates an empty casebook.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// every new connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS solved_labs (
			lab_id TEXT PRIMARY KEY,
			times INTEGER NOT NULL DEFAULT 1,
			first_solved DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS exam_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			tier TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_exam_results_score ON exam_results(score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordSolved marks a lab as solved. Solving it again bumps the count.
func (s *Store) RecordSolved(labID string) error {
	_, err := s.db.Exec(
		`INSERT INTO solved_labs (lab_id) VALUES (?)
		 ON CONFLICT(lab_id) DO UPDATE SET times = times + 1`,
		labID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record solved lab: %w", err)
	}
	return nil
}

// IsSolved reports whether the lab has been solved this session.
func (s *Store) IsSolved(labID string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM solved_labs WHERE lab_id = ?", labID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query solved lab: %w", err)
	}
	return n > 0, nil
}

// SolvedLabs returns every solved lab, in the order they were first solved.
func (s *Store) SolvedLabs() ([]SolvedEntry, error) {
	rows, err := s.db.Query(
		`SELECT lab_id, times, first_solved
		 FROM solved_labs
		 ORDER BY first_solved, rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solved labs: %w", err)
	}
	defer rows.Close()

	var entries []SolvedEntry
	for rows.Next() {
		var e SolvedEntry
		var firstSolved any
		if err := rows.Scan(&e.LabID, &e.Times, &firstSolved); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.FirstSolved = parseTime(firstSolved)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// SolvedSet returns the solved lab ids as a set.
func (s *Store) SolvedSet() (map[string]bool, error) {
	entries, err := s.SolvedLabs()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		set[e.LabID] = true
	}
	return set, nil
}

// RecordExam stores a submitted exam for the named detective.
// Returns the ID of the inserted record.
func (s *Store) RecordExam(name string, r exam.Result) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO exam_results (name, score, correct, total, tier) VALUES (?, ?, ?, ?, ?)",
		name, r.Score, r.Correct, r.Total, r.Tier.Label,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save exam result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// ExamResults returns the most recent exams first.
func (s *Store) ExamResults(limit int) ([]ExamEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, name, score, correct, total, tier, created_at
		 FROM exam_results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query exam results: %w", err)
	}
	defer rows.Close()

	var entries []ExamEntry
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestExam returns the highest-scoring exam. ok is false before the first one.
func (s *Store) BestExam() (entry ExamEntry, ok bool, err error) {
	row := s.db.QueryRow(
		`SELECT id, name, score, correct, total, tier, created_at
		 FROM exam_results
		 ORDER BY score DESC, id
		 LIMIT 1`,
	)
	entry, err = scanExam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ExamEntry{}, false, nil
	}
	if err != nil {
		return ExamEntry{}, false, err
	}
	return entry, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExam(row scanner) (ExamEntry, error) {
	var e ExamEntry
	var createdAt any
	err := row.Scan(&e.ID, &e.Name, &e.Score, &e.Correct, &e.Total, &e.Tier, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return e, err
	}
	if err != nil {
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// parseTime handles the datetime column as either time.Time or string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
