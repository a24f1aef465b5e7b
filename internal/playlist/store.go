// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package playlist persists users' to-play lists and interaction
// profiles in SQLite.
package playlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/playdex/playdex/internal/rank"
)

// ErrNotFound is returned when a list or membership row does not exist.
var ErrNotFound = errors.New("playlist: not found")

// schema is applied on every open; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS playlists (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS playlist_games (
	playlist_id INTEGER NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
	game_id     INTEGER NOT NULL,
	position    INTEGER NOT NULL,
	added_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (playlist_id, game_id)
);

CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	clicked    TEXT NOT NULL DEFAULT '[]',
	played     TEXT NOT NULL DEFAULT '[]',
	ratings    TEXT NOT NULL DEFAULT '{}',
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// List is one to-play list.
type List struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Invalidator receives cache invalidations on membership mutations.
type Invalidator interface {
	InvalidateList(listID int64)
}

// Store is the SQLite-backed playlist and profile store.
type Store struct {
	db     *sql.DB
	cache  Invalidator
	logger zerolog.Logger
}

// Open opens (and if needed creates) the database at path. cache may be
// nil when no arranged-view cache is wired.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(path string, cache Invalidator, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One writer connection sidesteps SQLITE_BUSY under concurrent load;
	// WAL keeps readers unblocked.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{
		db:     db,
		cache:  cache,
		logger: logger.With().Str("component", "playlist").Logger(),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateList creates a named list.
func (s *Store) CreateList(ctx context.Context, name string) (List, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO playlists (name) VALUES (?)`, name)
	if err != nil {
		return List{}, fmt.Errorf("create list: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return List{}, fmt.Errorf("create list: %w", err)
	}
	return s.GetList(ctx, id)
}

// GetList returns one list by ID.
func (s *Store) GetList(ctx context.Context, id int64) (List, error) {
	var l List
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM playlists WHERE id = ?`, id,
	).Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return List{}, ErrNotFound
	}
	if err != nil {
		return List{}, fmt.Errorf("get list %d: %w", id, err)
	}
	return l, nil
}

// Lists returns all lists, newest first.
func (s *Store) Lists(ctx context.Context) ([]List, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM playlists ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	var out []List
	for rows.Next() {
		var l List
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// DeleteList removes a list and, via cascade, its membership.
func (s *Store) DeleteList(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete list %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	s.invalidate(id)
	return nil
}

// AddGame appends a game to a list. Adding a game already on the list
// is a no-op. The arranged-view cache is invalidated before the call
// returns.
func (s *Store) AddGame(ctx context.Context, listID int64, gameID int) error {
	if _, err := s.GetList(ctx, listID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO playlist_games (playlist_id, game_id, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM playlist_games WHERE playlist_id = ?))
		ON CONFLICT (playlist_id, game_id) DO NOTHING`,
		listID, gameID, listID)
	if err != nil {
		return fmt.Errorf("add game %d to list %d: %w", gameID, listID, err)
	}

	s.invalidate(listID)
	return s.touch(ctx, listID)
}

// RemoveGame removes a game from a list.
func (s *Store) RemoveGame(ctx context.Context, listID int64, gameID int) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM playlist_games WHERE playlist_id = ? AND game_id = ?`, listID, gameID)
	if err != nil {
		return fmt.Errorf("remove game %d from list %d: %w", gameID, listID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	s.invalidate(listID)
	return s.touch(ctx, listID)
}

// GameIDs returns a list's game IDs in insertion order.
func (s *Store) GameIDs(ctx context.Context, listID int64) ([]int, error) {
	if _, err := s.GetList(ctx, listID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id FROM playlist_games WHERE playlist_id = ? ORDER BY position`, listID)
	if err != nil {
		return nil, fmt.Errorf("list games of %d: %w", listID, err)
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan game id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// GetProfile returns a user's interaction profile. A user with no stored
// profile gets an empty one, not an error.
func (s *Store) GetProfile(ctx context.Context, userID string) (rank.Profile, error) {
	var clicked, played, ratings string
	err := s.db.QueryRowContext(ctx,
		`SELECT clicked, played, ratings FROM profiles WHERE user_id = ?`, userID,
	).Scan(&clicked, &played, &ratings)
	if errors.Is(err, sql.ErrNoRows) {
		return rank.Profile{}, nil
	}
	if err != nil {
		return rank.Profile{}, fmt.Errorf("get profile %q: %w", userID, err)
	}

	var p rank.Profile
	if err := json.Unmarshal([]byte(clicked), &p.Clicked); err != nil {
		return rank.Profile{}, fmt.Errorf("decode clicked of %q: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(played), &p.Played); err != nil {
		return rank.Profile{}, fmt.Errorf("decode played of %q: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(ratings), &p.Ratings); err != nil {
		return rank.Profile{}, fmt.Errorf("decode ratings of %q: %w", userID, err)
	}
	return p, nil
}

// SaveProfile upserts a user's interaction profile wholesale.
func (s *Store) SaveProfile(ctx context.Context, userID string, p rank.Profile) error {
	clicked, err := json.Marshal(emptySlice(p.Clicked))
	if err != nil {
		return fmt.Errorf("encode clicked: %w", err)
	}
	played, err := json.Marshal(emptySlice(p.Played))
	if err != nil {
		return fmt.Errorf("encode played: %w", err)
	}
	ratings := p.Ratings
	if ratings == nil {
		ratings = map[int]int{}
	}
	encoded, err := json.Marshal(ratings)
	if err != nil {
		return fmt.Errorf("encode ratings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, clicked, played, ratings, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			clicked = excluded.clicked,
			played = excluded.played,
			ratings = excluded.ratings,
			updated_at = CURRENT_TIMESTAMP`,
		userID, string(clicked), string(played), string(encoded))
	if err != nil {
		return fmt.Errorf("save profile %q: %w", userID, err)
	}
	return nil
}

func (s *Store) invalidate(listID int64) {
	if s.cache != nil {
		s.cache.InvalidateList(listID)
	}
}

func (s *Store) touch(ctx context.Context, listID int64) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE playlists SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, listID); err != nil {
		return fmt.Errorf("touch list %d: %w", listID, err)
	}
	return nil
}

// emptySlice keeps nil slices encoding as [] instead of null.
func emptySlice(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
