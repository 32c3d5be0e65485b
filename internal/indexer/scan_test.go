package indexer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func scanPaths(t *testing.T, root string) map[string]Entry {
	t.Helper()
	entries, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	byPath := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byPath[e.RelPath] = e
	}
	return byPath
}

func TestScan_CollectsMetadata(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes/readme.md", "# hi")
	writeFile(t, root, "data/Companies.CSV", "Company,Website\n")

	byPath := scanPaths(t, root)
	if len(byPath) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(byPath))
	}

	md, ok := byPath["notes/readme.md"]
	if !ok {
		t.Fatal("notes/readme.md not scanned")
	}
	if md.Kind != KindMD || md.Ext != "md" {
		t.Errorf("expected md kind/ext, got kind=%q ext=%q", md.Kind, md.Ext)
	}
	if md.SizeBytes != int64(len("# hi")) {
		t.Errorf("expected size %d, got %d", len("# hi"), md.SizeBytes)
	}
	if md.MtimeUnix == 0 {
		t.Error("expected non-zero mtime")
	}

	// Extension is lowercased before classification.
	csv, ok := byPath["data/Companies.CSV"]
	if !ok {
		t.Fatal("data/Companies.CSV not scanned")
	}
	if csv.Kind != KindCSV || csv.Ext != "csv" {
		t.Errorf("expected csv kind/ext, got kind=%q ext=%q", csv.Kind, csv.Ext)
	}
}

func TestScan_ExcludesDirsAtAnyDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".git/config", "x")
	writeFile(t, root, "sub/.git/objects/aa", "x")
	writeFile(t, root, "sub/__pycache__/mod.cpython-312.pyc", "x")
	writeFile(t, root, ".venv/lib/site.py", "x")
	writeFile(t, root, "kept.md", "x")

	byPath := scanPaths(t, root)
	if len(byPath) != 1 {
		t.Fatalf("expected only kept.md, got %v", keys(byPath))
	}
	if _, ok := byPath["kept.md"]; !ok {
		t.Error("kept.md missing from scan")
	}
}

func TestScan_ExcludesFilesAndBytecode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "product.db-wal", "x")
	writeFile(t, root, "product.db-shm", "x")
	writeFile(t, root, "lib/mod.pyc", "x")
	writeFile(t, root, "product.db", "x")

	byPath := scanPaths(t, root)
	if len(byPath) != 1 {
		t.Fatalf("expected only product.db, got %v", keys(byPath))
	}
	if e := byPath["product.db"]; e.Kind != KindDB {
		t.Errorf("expected db kind, got %q", e.Kind)
	}
}

func keys(m map[string]Entry) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
