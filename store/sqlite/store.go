// Package sqlite provides a SQLite-backed game store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/minaorangina/cheese/game"
	"github.com/minaorangina/cheese/store"
	_ "modernc.org/sqlite"
)

// Store persists one JSON document per game in SQLite
type Store struct {
	sqlDB   *sql.DB
	writeMu sync.Mutex
	subs    *store.Broadcaster
}

// Open opens a SQLite game store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrateUp(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, subs: store.NewBroadcaster()}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save overwrites the game's document
func (s *Store) Save(ctx context.Context, gameID string, state game.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := store.EncodeState(state)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := time.Now().UTC().UnixMilli()
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO games (game_id, document, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET
		   document = excluded.document,
		   updated_at = excluded.updated_at`,
		gameID,
		string(doc),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", gameID, err)
	}

	s.subs.Publish(gameID, state)
	return nil
}

// Load reads the game's document
func (s *Store) Load(ctx context.Context, gameID string) (game.GameState, error) {
	if err := ctx.Err(); err != nil {
		return game.GameState{}, err
	}

	var doc string
	row := s.sqlDB.QueryRowContext(ctx, `SELECT document FROM games WHERE game_id = ?`, gameID)
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.GameState{}, store.ErrFnUnknownGameID(gameID)
		}
		return game.GameState{}, fmt.Errorf("load game %s: %w", gameID, err)
	}
	return store.DecodeState([]byte(doc))
}

func (s *Store) Exists(ctx context.Context, gameID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var found int
	row := s.sqlDB.QueryRowContext(ctx, `SELECT 1 FROM games WHERE game_id = ?`, gameID)
	if err := row.Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("find game %s: %w", gameID, err)
	}
	return true, nil
}

// Subscribe only sees saves made through this Store
func (s *Store) Subscribe(ctx context.Context, gameID string) (<-chan game.GameState, error) {
	return s.subs.Subscribe(ctx, gameID, func() (game.GameState, error) {
		return s.Load(ctx, gameID)
	})
}
