package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dbpkg "github.com/BrandonDHaskell/Strazhnik/server/internal/db"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

// RequestStore keeps each request's JSON document in the requests table,
// with a few columns lifted out for listing.
type RequestStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewRequestStore(db *sql.DB, writer *dbpkg.Worker) *RequestStore {
	return &RequestStore{db: db, writer: writer}
}

// Save replaces any row with the same ID, matching the file store's
// same-second overwrite.
func (s *RequestStore) Save(ctx context.Context, id string, rec types.VisitorPassRequest) error {
	if !types.ValidRequestID(id) {
		return fmt.Errorf("save request: invalid id %q", id)
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode request %s: %w", id, err)
	}

	createdMs := rec.CreatedAt.Time().UnixMilli()
	if rec.CreatedAt.IsZero() {
		createdMs = 0
	}
	nowMs := time.Now().UTC().UnixMilli()

	err = s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO requests(
  request_id, created_at_ms, created_by, visitor_last, visitor_first,
  start_date, body_json, stored_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(request_id) DO UPDATE SET
  created_at_ms = excluded.created_at_ms,
  created_by    = excluded.created_by,
  visitor_last  = excluded.visitor_last,
  visitor_first = excluded.visitor_first,
  start_date    = excluded.start_date,
  body_json     = excluded.body_json,
  stored_at_ms  = excluded.stored_at_ms;
`,
			id, createdMs, rec.CreatedBy, rec.Visitor.LastName, rec.Visitor.FirstName,
			rec.Dates.Start.String(), string(body), nowMs,
		); err != nil {
			return fmt.Errorf("Save insert: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrStorageWrite, err)
	}
	return nil
}

func (s *RequestStore) Load(ctx context.Context, id string) (types.VisitorPassRequest, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `
SELECT body_json FROM requests WHERE request_id = ?;
`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return types.VisitorPassRequest{}, store.ErrNotFound
	}
	if err != nil {
		return types.VisitorPassRequest{}, fmt.Errorf("Load query: %w", err)
	}

	var rec types.VisitorPassRequest
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return types.VisitorPassRequest{}, fmt.Errorf("decode request %s: %w", id, err)
	}
	return rec, nil
}

func (s *RequestStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT request_id FROM requests ORDER BY request_id;
`)
	if err != nil {
		return nil, fmt.Errorf("List query: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("List scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ImportFrom copies every request in src that is not already stored here.
// It is used once when switching an installation from the file backend.
func (s *RequestStore) ImportFrom(ctx context.Context, src store.RequestStore) (int, error) {
	ids, err := src.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("import list: %w", err)
	}

	existing, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	have := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		have[id] = struct{}{}
	}

	imported := 0
	for _, id := range ids {
		if _, ok := have[id]; ok {
			continue
		}
		rec, err := src.Load(ctx, id)
		if err != nil {
			return imported, fmt.Errorf("import load %s: %w", id, err)
		}
		if err := s.Save(ctx, id, rec); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
