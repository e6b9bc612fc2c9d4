// Package store persists generation results in an embedded SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/BerylCAtieno/strategy-agent/internal/models"
)

type Store struct {
	DB *sql.DB
}

type Summary struct {
	ID              string    `json:"id"`
	CompanyName     string    `json:"companyName"`
	DurationSeconds float64   `json:"durationSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s := New(db)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS strategy_results (
		id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		result_json TEXT NOT NULL,
		duration_seconds REAL NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create strategy_results table: %w", err)
	}
	_, err = s.DB.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_strategy_results_created ON strategy_results(created_at)`)
	if err != nil {
		return fmt.Errorf("failed to create strategy_results index: %w", err)
	}
	return nil
}

// Save stores the result under a new id, sets result.ID and returns it.
func (s *Store) Save(ctx context.Context, result *models.GenerationResult) (string, error) {
	if result == nil {
		return "", errors.New("store: nil result")
	}
	id := uuid.NewString()
	result.ID = id

	payload, err := json.Marshal(result)
	if err != nil {
		result.ID = ""
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO strategy_results (id, company_name, result_json, duration_seconds, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, result.Profile.CompanyName, string(payload), result.GenerationDurationSeconds, result.GeneratedAt)
	if err != nil {
		result.ID = ""
		return "", fmt.Errorf("failed to insert result: %w", err)
	}
	return id, nil
}

// Get returns nil, nil when no result has the id.
func (s *Store) Get(ctx context.Context, id string) (*models.GenerationResult, error) {
	var payload string
	err := s.DB.QueryRowContext(ctx, `SELECT result_json FROM strategy_results WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query result: %w", err)
	}

	var result models.GenerationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}
	result.ID = id
	return &result, nil
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, company_name, duration_seconds, created_at FROM strategy_results ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.CompanyName, &sum.DurationSeconds, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
