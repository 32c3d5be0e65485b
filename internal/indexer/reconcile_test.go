package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeCatalog is an in-memory Catalog. Changes only land in entries on Commit.
type fakeCatalog struct {
	entries map[string]Entry
	commits int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{entries: make(map[string]Entry)}
}

func (c *fakeCatalog) SelectAll(ctx context.Context) ([]Entry, error) {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	return out, nil
}

func (c *fakeCatalog) Begin(ctx context.Context) (CatalogTx, error) {
	staged := make(map[string]Entry, len(c.entries))
	for k, v := range c.entries {
		staged[k] = v
	}
	return &fakeTx{catalog: c, staged: staged}, nil
}

type fakeTx struct {
	catalog   *fakeCatalog
	staged    map[string]Entry
	committed bool
}

func (tx *fakeTx) Insert(ctx context.Context, e Entry) error {
	tx.staged[e.RelPath] = e
	return nil
}

func (tx *fakeTx) Update(ctx context.Context, e Entry) error {
	tx.staged[e.RelPath] = e
	return nil
}

func (tx *fakeTx) Delete(ctx context.Context, relPath string) error {
	delete(tx.staged, relPath)
	return nil
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	tx.catalog.entries = tx.staged
	tx.catalog.commits++
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error { return nil }

func TestReconcile_FirstRunCreatesAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "aaa")
	writeFile(t, root, "docs/b.csv", "b")

	catalog := newFakeCatalog()
	sum, err := Reconcile(context.Background(), catalog, root)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	want := Summary{TotalScanned: 2, Created: 2}
	if sum != want {
		t.Errorf("summary = %+v, want %+v", sum, want)
	}
	if len(catalog.entries) != 2 {
		t.Errorf("expected 2 catalog entries, got %d", len(catalog.entries))
	}
	if catalog.commits != 1 {
		t.Errorf("expected a single commit, got %d", catalog.commits)
	}
}

func TestReconcile_SecondRunIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "aaa")
	writeFile(t, root, "b.py", "pass")

	catalog := newFakeCatalog()
	ctx := context.Background()
	if _, err := Reconcile(ctx, catalog, root); err != nil {
		t.Fatal(err)
	}
	sum, err := Reconcile(ctx, catalog, root)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Created != 0 || sum.Updated != 0 || sum.Deleted != 0 {
		t.Errorf("second run should be a no-op, got %+v", sum)
	}
}

func TestReconcile_CreateUpdateDelete(t *testing.T) {
	root := t.TempDir()
	catalog := newFakeCatalog()
	catalog.entries["a.md"] = Entry{RelPath: "a.md", Ext: "md", Kind: KindMD, SizeBytes: 1, MtimeUnix: 1}
	catalog.entries["b.md"] = Entry{RelPath: "b.md", Ext: "md", Kind: KindMD, SizeBytes: 1, MtimeUnix: 1}

	// A exists with a different size, C is new, B is gone.
	writeFile(t, root, "a.md", "changed contents")
	writeFile(t, root, "c.md", "new")

	sum, err := Reconcile(context.Background(), catalog, root)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	want := Summary{TotalScanned: 2, Created: 1, Updated: 1, Deleted: 1}
	if sum != want {
		t.Errorf("summary = %+v, want %+v", sum, want)
	}

	if _, ok := catalog.entries["b.md"]; ok {
		t.Error("b.md should have been deleted")
	}
	a, ok := catalog.entries["a.md"]
	if !ok {
		t.Fatal("a.md missing after reconcile")
	}
	if a.SizeBytes != int64(len("changed contents")) {
		t.Errorf("a.md size not updated: %d", a.SizeBytes)
	}
	if _, ok := catalog.entries["c.md"]; !ok {
		t.Error("c.md should have been created")
	}
}

func TestReconcile_UnchangedMtimeAndSizeIsNoop(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "aaa")

	// Pin a stable mtime so the stored entry matches the disk state exactly.
	stamp := time.Now().Add(-time.Hour).Truncate(time.Second)
	path := filepath.Join(root, "a.md")
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	catalog := newFakeCatalog()
	catalog.entries["a.md"] = Entry{
		RelPath:   "a.md",
		Ext:       "md",
		Kind:      KindMD,
		SizeBytes: 3,
		MtimeUnix: stamp.Unix(),
	}

	sum, err := Reconcile(context.Background(), catalog, root)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Updated != 0 {
		t.Errorf("expected no update for identical metadata, got %+v", sum)
	}
}
