// Package archive keeps a Postgres copy of every row pushed to the sheets,
// so records survive spreadsheet mishaps and can be re-exported.
package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Store writes finished records into the record_rows table. It satisfies the
// record pipeline's Appender contract.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const insertRow = `
INSERT INTO record_rows (id, destination, sheet, payload)
VALUES ($1, $2, $3, $4)`

// Append stores one row as a JSON payload alongside its destination.
func (s *Store) Append(ctx context.Context, spreadsheet, sheet string, row []string) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, insertRow, uuid.NewString(), spreadsheet, sheet, payload); err != nil {
		return fmt.Errorf("insert record row: %w", err)
	}
	return nil
}

// Count returns how many rows were archived for a destination, zero
// destination meaning all of them.
func (s *Store) Count(ctx context.Context, destination string) (int64, error) {
	var n int64
	var err error
	if destination == "" {
		err = s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM record_rows`)
	} else {
		err = s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM record_rows WHERE destination = $1`, destination)
	}
	if err != nil {
		return 0, fmt.Errorf("count record rows: %w", err)
	}
	return n, nil
}
