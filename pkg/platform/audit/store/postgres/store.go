package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	audit "unibus/pkg/platform/audit"
)

// Store implements audit.Store on the audit_entries table.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts an entry. Re-appending the same entry ID is a no-op.
func (s *Store) Append(ctx context.Context, entry audit.Entry) error {
	subject, err := json.Marshal(entry.Subject)
	if err != nil {
		return fmt.Errorf("marshal audit subject: %w", err)
	}
	if entry.Subject == nil {
		subject = []byte("{}")
	}

	var requestID *string
	if entry.RequestID != "" {
		requestID = &entry.RequestID
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_entries (id, occurred_at, category, subject, outcome, detail, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`,
		entry.ID,
		entry.Timestamp,
		string(entry.Category),
		string(subject),
		entry.Outcome,
		entry.Detail,
		requestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List returns up to limit entries in insertion order. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	query := `
		SELECT id, occurred_at, category, subject, outcome, detail, request_id
		FROM audit_entries
		ORDER BY seq ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var (
			entry     audit.Entry
			category  string
			subject   []byte
			requestID sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &category, &subject, &entry.Outcome, &entry.Detail, &requestID); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if err := json.Unmarshal(subject, &entry.Subject); err != nil {
			return nil, fmt.Errorf("decode audit subject: %w", err)
		}
		entry.Category = audit.Category(category)
		entry.RequestID = requestID.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
