package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akoval/bdtrack/internal/indexer"
	"github.com/jackc/pgx/v5"
)

// Document is one indexed file known to the system.
type Document struct {
	ID        int64     `json:"id"`
	RelPath   string    `json:"rel_path"`
	Kind      string    `json:"kind"`
	Ext       string    `json:"ext"`
	SizeBytes int64     `json:"size_bytes"`
	MtimeUnix int64     `json:"mtime_unix"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const documentColumns = "id, rel_path, kind, ext, size_bytes, mtime_unix, created_at, updated_at"

func scanDocument(row pgx.Row) (Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.RelPath, &d.Kind, &d.Ext, &d.SizeBytes, &d.MtimeUnix, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// ListDocuments returns documents, newest first, optionally filtered by a
// case-insensitive path substring and an exact kind. limit caps the result.
func (s *Store) ListDocuments(ctx context.Context, query, kind string, limit int) ([]Document, error) {
	sql := "SELECT " + documentColumns + " FROM documents"
	var conds []string
	var args []interface{}

	if q := strings.TrimSpace(query); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		conds = append(conds, fmt.Sprintf("lower(rel_path) LIKE $%d", len(args)))
	}
	if k := strings.TrimSpace(kind); k != "" {
		args = append(args, k)
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	sql += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", len(args))

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// GetDocument returns one document by ID.
func (s *Store) GetDocument(ctx context.Context, id int64) (Document, error) {
	d, err := scanDocument(s.pool.QueryRow(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, fmt.Errorf("document %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("get document %d: %w", id, err)
	}
	return d, nil
}

// CountDocuments returns the catalog size.
func (s *Store) CountDocuments(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// DocumentKinds returns the distinct kinds present in the catalog.
func (s *Store) DocumentKinds(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, "SELECT DISTINCT kind FROM documents ORDER BY kind")
	if err != nil {
		return nil, fmt.Errorf("document kinds: %w", err)
	}
	defer rows.Close()

	var kinds []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, rows.Err()
}

// DocumentCatalog exposes the documents table as the indexer's catalog.
func (s *Store) DocumentCatalog() indexer.Catalog {
	return documentCatalog{s}
}

type documentCatalog struct {
	s *Store
}

func (c documentCatalog) SelectAll(ctx context.Context) ([]indexer.Entry, error) {
	rows, err := c.s.pool.Query(ctx,
		"SELECT rel_path, ext, kind, size_bytes, mtime_unix FROM documents")
	if err != nil {
		return nil, fmt.Errorf("select documents: %w", err)
	}
	defer rows.Close()

	var entries []indexer.Entry
	for rows.Next() {
		var e indexer.Entry
		if err := rows.Scan(&e.RelPath, &e.Ext, &e.Kind, &e.SizeBytes, &e.MtimeUnix); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (c documentCatalog) Begin(ctx context.Context) (indexer.CatalogTx, error) {
	tx, err := c.s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return documentTx{tx}, nil
}

type documentTx struct {
	tx pgx.Tx
}

func (t documentTx) Insert(ctx context.Context, e indexer.Entry) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO documents (rel_path, kind, ext, size_bytes, mtime_unix)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.RelPath, e.Kind, e.Ext, e.SizeBytes, e.MtimeUnix)
	return err
}

func (t documentTx) Update(ctx context.Context, e indexer.Entry) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE documents
		 SET kind = $2, ext = $3, size_bytes = $4, mtime_unix = $5, updated_at = now()
		 WHERE rel_path = $1`,
		e.RelPath, e.Kind, e.Ext, e.SizeBytes, e.MtimeUnix)
	return err
}

func (t documentTx) Delete(ctx context.Context, relPath string) error {
	_, err := t.tx.Exec(ctx, "DELETE FROM documents WHERE rel_path = $1", relPath)
	return err
}

func (t documentTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t documentTx) Rollback(ctx context.Context) error {
	// pgx returns ErrTxClosed after Commit; that is the expected no-op.
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
