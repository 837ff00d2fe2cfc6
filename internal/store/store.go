// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/cubetui/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for solve data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			puzzle TEXT NOT NULL,
			case_id TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY,
			session_id INTEGER NOT NULL,
			time_ms INTEGER NOT NULL,
			puzzle TEXT NOT NULL DEFAULT '',
			scramble TEXT NOT NULL,
			case_id TEXT NOT NULL DEFAULT '',
			penalty INTEGER NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS personal_bests (
			puzzle TEXT NOT NULL,
			kind TEXT NOT NULL,
			time_ms INTEGER NOT NULL,
			achieved_at TEXT NOT NULL,
			PRIMARY KEY (puzzle, kind)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_solves_created_at ON solves(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_solves_session ON solves(session_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// CreateSession records the start of a practice session and returns its id.
func (s *Store) CreateSession(ctx context.Context, startedAt time.Time, puzzle, caseID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (started_at, puzzle, case_id) VALUES (?, ?, ?)`,
		startedAt.Format(time.RFC3339Nano), puzzle, caseID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertSolve stores a completed solve and returns its id.
func (s *Store) InsertSolve(ctx context.Context, solve model.Solve) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO solves (session_id, time_ms, puzzle, scramble, case_id, penalty, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		solve.SessionID,
		solve.TimeMs,
		solve.Puzzle,
		solve.Scramble,
		solve.CaseID,
		int(solve.Penalty),
		solve.Notes,
		solve.Date.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePenalty changes the penalty of a stored solve.
func (s *Store) UpdatePenalty(ctx context.Context, id int64, p model.Penalty) error {
	res, err := s.db.ExecContext(ctx, `UPDATE solves SET penalty = ? WHERE id = ?`, int(p), id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// UpdateNotes changes the notes of a stored solve.
func (s *Store) UpdateNotes(ctx context.Context, id int64, notes string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE solves SET notes = ? WHERE id = ?`, notes, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// DeleteSolve removes a solve from the history.
func (s *Store) DeleteSolve(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM solves WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no solve with id %d", id)
	}
	return nil
}

// ListSolves returns solves matching the filter, oldest first. A case
// filter selects that case's drills; a puzzle filter without a case selects
// full solves of that puzzle, keeping drill times out of solve statistics.
func (s *Store) ListSolves(ctx context.Context, cfg model.StatsConfig) ([]model.Solve, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Puzzle != "" {
		clauses = append(clauses, "puzzle = ?")
		args = append(args, cfg.Puzzle)
	}
	if cfg.CaseID != "" {
		clauses = append(clauses, "case_id = ?")
		args = append(args, cfg.CaseID)
	} else if cfg.Puzzle != "" {
		clauses = append(clauses, "case_id = ''")
	}
	if cfg.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, session_id, time_ms, puzzle, scramble, case_id, penalty, notes, created_at
		FROM solves
		WHERE %s
		ORDER BY created_at ASC, id ASC`, strings.Join(clauses, " AND "))
	return s.querySolves(ctx, query, args...)
}

// ListSessionSolves returns all solves of one session, oldest first.
func (s *Store) ListSessionSolves(ctx context.Context, sessionID int64) ([]model.Solve, error) {
	return s.querySolves(ctx,
		`SELECT id, session_id, time_ms, puzzle, scramble, case_id, penalty, notes, created_at
		 FROM solves WHERE session_id = ? ORDER BY created_at ASC, id ASC`, sessionID)
}

func (s *Store) querySolves(ctx context.Context, query string, args ...any) ([]model.Solve, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var solves []model.Solve
	for rows.Next() {
		var solve model.Solve
		var penalty int
		var createdAt string
		if err := rows.Scan(&solve.ID, &solve.SessionID, &solve.TimeMs, &solve.Puzzle, &solve.Scramble, &solve.CaseID, &penalty, &solve.Notes, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		solve.Penalty = model.Penalty(penalty)
		solve.Date = parsed
		solves = append(solves, solve)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return solves, nil
}

// GetPersonalBests returns the stored record values of one puzzle, keyed
// by kind.
func (s *Store) GetPersonalBests(ctx context.Context, puzzle string) (map[model.PBKind]model.PersonalBest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT puzzle, kind, time_ms, achieved_at FROM personal_bests WHERE puzzle = ?`, puzzle)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	bests := map[model.PBKind]model.PersonalBest{}
	for rows.Next() {
		var pb model.PersonalBest
		var kind string
		var achievedAt string
		if err := rows.Scan(&pb.Puzzle, &kind, &pb.TimeMs, &achievedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, achievedAt)
		if err != nil {
			return nil, err
		}
		pb.Kind = model.PBKind(kind)
		pb.AchievedAt = parsed
		bests[pb.Kind] = pb
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bests, nil
}

// UpsertPersonalBest stores or replaces the record for one puzzle and kind.
func (s *Store) UpsertPersonalBest(ctx context.Context, pb model.PersonalBest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO personal_bests (puzzle, kind, time_ms, achieved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(puzzle, kind) DO UPDATE SET time_ms = excluded.time_ms, achieved_at = excluded.achieved_at`,
		pb.Puzzle, string(pb.Kind), pb.TimeMs, pb.AchievedAt.Format(time.RFC3339Nano))
	return err
}
