// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists conversion outcomes in a SQLite database with a
// full-text index, so past runs can be searched by subject or sender.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

// DBFileName is the catalog database created in the output folder.
const DBFileName = "catalog.db"

// Store manages the conversion catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path, creating the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			source_file TEXT NOT NULL,
			output_path TEXT,
			subject TEXT,
			sender TEXT,
			date TEXT,
			status TEXT NOT NULL,
			reason TEXT,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='conversions_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE conversions_fts USING fts5(
				subject, sender, source_file,
				content=conversions, content_rowid=rowid
			)`,
			`CREATE TRIGGER conversions_ai AFTER INSERT ON conversions BEGIN
				INSERT INTO conversions_fts(rowid, subject, sender, source_file)
				VALUES (new.rowid, new.subject, new.sender, new.source_file);
			END`,
			`CREATE TRIGGER conversions_ad AFTER DELETE ON conversions BEGIN
				INSERT INTO conversions_fts(conversions_fts, rowid, subject, sender, source_file)
				VALUES('delete', old.rowid, old.subject, old.sender, old.source_file);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// RecordRun inserts one row per conversion result.
func (s *Store) RecordRun(ctx context.Context, result *types.BatchResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO conversions (source_file, output_path, subject, sender, date, status, reason, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	recordedAt := time.Now().UTC().Format(time.RFC3339)
	for _, r := range result.Results {
		dateStr := ""
		if !r.Date.IsZero() {
			dateStr = r.Date.Format(time.RFC3339)
		}
		if _, err := stmt.ExecContext(ctx,
			r.SourceFile, r.OutputPath, r.Subject, r.Sender, dateStr,
			string(r.Status), r.Reason, recordedAt,
		); err != nil {
			return fmt.Errorf("inserting %s: %w", r.SourceFile, err)
		}
	}

	return tx.Commit()
}

// Entry is one catalog row.
type Entry struct {
	SourceFile string `json:"source_file"`
	OutputPath string `json:"output_path,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Sender     string `json:"sender,omitempty"`
	Date       string `json:"date,omitempty"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	RecordedAt string `json:"recorded_at"`
}

// Query runs a full-text search over subject, sender, and source file,
// ranked by relevance.
func (s *Store) Query(ctx context.Context, text string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.source_file, c.output_path, c.subject, c.sender, c.date, c.status, c.reason, c.recorded_at
		 FROM conversions_fts f
		 JOIN conversions c ON c.rowid = f.rowid
		 WHERE conversions_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`, text, limit)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// List returns recent catalog entries, optionally only failures.
func (s *Store) List(ctx context.Context, failedOnly bool, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `SELECT source_file, output_path, subject, sender, date, status, reason, recorded_at
	      FROM conversions`
	args := []any{}
	if failedOnly {
		q += ` WHERE status = ?`
		args = append(args, string(types.ConversionFailed))
	}
	q += ` ORDER BY rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.SourceFile, &e.OutputPath, &e.Subject, &e.Sender,
			&e.Date, &e.Status, &e.Reason, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
