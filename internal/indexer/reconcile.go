package indexer

import (
	"context"
	"fmt"
)

// Catalog is the persisted document catalog the reconciler diffs against.
// Implementations are expected to provide per-Begin transactional atomicity;
// the reconciler applies every change of one pass through a single transaction.
type Catalog interface {
	SelectAll(ctx context.Context) ([]Entry, error)
	Begin(ctx context.Context) (CatalogTx, error)
}

// CatalogTx is one catalog transaction. Rollback after Commit must be a no-op
// so callers can defer it unconditionally.
type CatalogTx interface {
	Insert(ctx context.Context, e Entry) error
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, relPath string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Summary reports the outcome of one reconciliation pass.
type Summary struct {
	TotalScanned int `json:"total_scanned"`
	Created      int `json:"created"`
	Updated      int `json:"updated"`
	Deleted      int `json:"deleted"`
}

// Reconcile scans root and aligns the catalog with what is on disk: new paths
// are inserted, changed files (size, mtime, kind or extension) are overwritten,
// vanished paths are deleted. Callers must not run two passes over the same
// catalog concurrently; the pass reads then decides without row-level locking.
func Reconcile(ctx context.Context, catalog Catalog, root string) (Summary, error) {
	entries, err := Scan(root)
	if err != nil {
		return Summary{}, fmt.Errorf("scan %s: %w", root, err)
	}

	existing, err := catalog.SelectAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load catalog: %w", err)
	}
	byPath := make(map[string]Entry, len(existing))
	for _, e := range existing {
		byPath[e.RelPath] = e
	}

	scanned := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		scanned[e.RelPath] = struct{}{}
	}

	tx, err := catalog.Begin(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("begin catalog tx: %w", err)
	}
	defer tx.Rollback(ctx)

	summary := Summary{TotalScanned: len(entries)}

	for _, e := range entries {
		stored, ok := byPath[e.RelPath]
		if !ok {
			if err := tx.Insert(ctx, e); err != nil {
				return Summary{}, fmt.Errorf("insert %s: %w", e.RelPath, err)
			}
			summary.Created++
			continue
		}
		if stored.SizeBytes != e.SizeBytes || stored.MtimeUnix != e.MtimeUnix ||
			stored.Kind != e.Kind || stored.Ext != e.Ext {
			if err := tx.Update(ctx, e); err != nil {
				return Summary{}, fmt.Errorf("update %s: %w", e.RelPath, err)
			}
			summary.Updated++
		}
	}

	for _, stored := range existing {
		if _, ok := scanned[stored.RelPath]; !ok {
			if err := tx.Delete(ctx, stored.RelPath); err != nil {
				return Summary{}, fmt.Errorf("delete %s: %w", stored.RelPath, err)
			}
			summary.Deleted++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Summary{}, fmt.Errorf("commit catalog tx: %w", err)
	}
	return summary, nil
}
