package scorestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/handblast/puzzle"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS best_score (
	id    INTEGER PRIMARY KEY CHECK (id = 1),
	score INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	score      INTEGER NOT NULL,
	placements INTEGER NOT NULL,
	lines      INTEGER NOT NULL,
	best_combo INTEGER NOT NULL,
	started_at INTEGER NOT NULL,
	ended_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_score ON runs (score DESC);
CREATE TABLE IF NOT EXISTS saved_game (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	run_id     TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	board      TEXT NOT NULL,
	tray       TEXT NOT NULL,
	score      INTEGER NOT NULL,
	placements INTEGER NOT NULL,
	lines      INTEGER NOT NULL,
	best_combo INTEGER NOT NULL
);
`

// Run is one finished game.
type Run struct {
	ID         uuid.UUID
	Score      int
	Placements int
	Lines      int
	BestCombo  int
	StartedAt  time.Time
	EndedAt    time.Time
}

// SavedGame is a game left unfinished when the program exited.
type SavedGame struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Game      puzzle.Snapshot
}

// SQLite stores the best score, the run history and the saved game in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) LoadBest() (int, error) {
	var best int
	err := s.db.QueryRow(`SELECT score FROM best_score WHERE id = 1`).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load best score: %w", err)
	}
	return best, nil
}

func (s *SQLite) SaveBest(best int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_score (id, score) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET score = excluded.score`,
		best,
	)
	if err != nil {
		return fmt.Errorf("save best score: %w", err)
	}
	return nil
}

// RecordRun appends a finished run to the history.
func (s *SQLite) RecordRun(ctx context.Context, run Run) error {
	if run.ID == uuid.Nil {
		return fmt.Errorf("run id is required")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, score, placements, lines, best_combo, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(),
		run.Score,
		run.Placements,
		run.Lines,
		run.BestCombo,
		run.StartedAt.UTC().UnixMilli(),
		run.EndedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// TopRuns returns up to limit runs ordered by score, best first.
func (s *SQLite) TopRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, score, placements, lines, best_combo, started_at, ended_at
		 FROM runs ORDER BY score DESC, ended_at ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			id             string
			run            Run
			started, ended int64
		)
		if err := rows.Scan(&id, &run.Score, &run.Placements, &run.Lines, &run.BestCombo, &started, &ended); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", id, err)
		}
		run.StartedAt = time.UnixMilli(started).UTC()
		run.EndedAt = time.UnixMilli(ended).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// SaveGame replaces the saved game.
func (s *SQLite) SaveGame(ctx context.Context, g SavedGame) error {
	if g.RunID == uuid.Nil {
		return fmt.Errorf("run id is required")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO saved_game (id, run_id, started_at, board, tray, score, placements, lines, best_combo)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			run_id = excluded.run_id,
			started_at = excluded.started_at,
			board = excluded.board,
			tray = excluded.tray,
			score = excluded.score,
			placements = excluded.placements,
			lines = excluded.lines,
			best_combo = excluded.best_combo`,
		g.RunID.String(),
		g.StartedAt.UTC().UnixMilli(),
		g.Game.Board.String(),
		g.Game.Tray.String(),
		g.Game.Score,
		g.Game.Stats.Placements,
		g.Game.Stats.Lines,
		g.Game.Stats.BestCombo,
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", g.RunID, err)
	}
	return nil
}

// LoadGame returns the saved game, if there is one.
func (s *SQLite) LoadGame(ctx context.Context) (SavedGame, bool, error) {
	var (
		g                 SavedGame
		id, board, tray string
		started         int64
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT run_id, started_at, board, tray, score, placements, lines, best_combo
		 FROM saved_game WHERE id = 1`,
	).Scan(&id, &started, &board, &tray, &g.Game.Score, &g.Game.Stats.Placements, &g.Game.Stats.Lines, &g.Game.Stats.BestCombo)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedGame{}, false, nil
	}
	if err != nil {
		return SavedGame{}, false, fmt.Errorf("load saved game: %w", err)
	}

	if g.RunID, err = uuid.Parse(id); err != nil {
		return SavedGame{}, false, fmt.Errorf("parse run id %q: %w", id, err)
	}
	if g.Game.Board, err = puzzle.ParseBoard(board); err != nil {
		return SavedGame{}, false, fmt.Errorf("saved game %s: %w", id, err)
	}
	if g.Game.Tray, err = puzzle.ParseTray(tray); err != nil {
		return SavedGame{}, false, fmt.Errorf("saved game %s: %w", id, err)
	}
	g.StartedAt = time.UnixMilli(started).UTC()
	return g, true, nil
}

// ClearGame forgets the saved game. It is not an error when there is none.
func (s *SQLite) ClearGame(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saved_game WHERE id = 1`); err != nil {
		return fmt.Errorf("clear saved game: %w", err)
	}
	return nil
}
