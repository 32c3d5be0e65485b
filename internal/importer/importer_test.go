package importer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeCatalog struct {
	websites []string
	inserted []Company
	flushes  int
}

func (c *fakeCatalog) Websites(ctx context.Context) ([]string, error) {
	return c.websites, nil
}

func (c *fakeCatalog) InsertCompanies(ctx context.Context, batch []Company) error {
	c.inserted = append(c.inserted, batch...)
	c.flushes++
	return nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Companies.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImport_MissingFile(t *testing.T) {
	im := New(&fakeCatalog{}, 0)
	_, err := im.Import(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), 0)
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestImport_DedupByNormalizedWebsite(t *testing.T) {
	path := writeCSV(t, "ICP,Company,Website,Score,Reasoning,Notes\n"+
		"fintech,Acme,Example.com/,8,good fit,\n"+
		"fintech,Acme Ltd,https://example.com,7,,\n")

	catalog := &fakeCatalog{}
	res, err := New(catalog, 0).Import(context.Background(), path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalRows != 2 || res.Inserted != 1 || res.Skipped != 1 {
		t.Errorf("result = %+v, want total=2 inserted=1 skipped=1", res)
	}
	if len(catalog.inserted) != 1 {
		t.Fatalf("expected 1 inserted company, got %d", len(catalog.inserted))
	}
	if catalog.inserted[0].Website != "example.com" {
		t.Errorf("stored website = %q, want %q", catalog.inserted[0].Website, "example.com")
	}
}

func TestImport_DedupAgainstCatalog(t *testing.T) {
	path := writeCSV(t, "ICP,Company,Website\nfintech,Acme,https://Example.com/\n")

	catalog := &fakeCatalog{websites: []string{"example.com"}}
	res, err := New(catalog, 0).Import(context.Background(), path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Inserted != 0 || res.Skipped != 1 {
		t.Errorf("result = %+v, want inserted=0 skipped=1", res)
	}
}

func TestImport_EmptyWebsitesNeverDedup(t *testing.T) {
	path := writeCSV(t, "ICP,Company,Website\n"+
		"fintech,Acme,\n"+
		"fintech,Acme,\n")

	catalog := &fakeCatalog{}
	res, err := New(catalog, 0).Import(context.Background(), path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Inserted != 2 || res.Skipped != 0 {
		t.Errorf("result = %+v, want inserted=2 skipped=0", res)
	}
}

func TestImport_SkipsFullyEmptyRows(t *testing.T) {
	path := writeCSV(t, "ICP,Company,Website,Score\n"+
		"fintech,,,\n"+
		"fintech,Acme,,9\n")

	catalog := &fakeCatalog{}
	res, err := New(catalog, 0).Import(context.Background(), path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Inserted != 1 || res.Skipped != 1 {
		t.Errorf("result = %+v, want inserted=1 skipped=1", res)
	}
}

func TestImport_RowLimitCountsRowsRead(t *testing.T) {
	content := "ICP,Company,Website\n"
	for i := 0; i < 10; i++ {
		content += "fintech,,\n" // all skipped, still count toward the limit
	}
	path := writeCSV(t, content)

	res, err := New(&fakeCatalog{}, 0).Import(context.Background(), path, 5)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalRows != 5 {
		t.Errorf("TotalRows = %d, want 5", res.TotalRows)
	}
	if res.Skipped != 5 {
		t.Errorf("Skipped = %d, want 5", res.Skipped)
	}
}

func TestImport_BatchFlushing(t *testing.T) {
	content := "ICP,Company,Website\n"
	for i := 0; i < 5; i++ {
		content += "fintech,Acme,\n"
	}
	path := writeCSV(t, content)

	catalog := &fakeCatalog{}
	res, err := New(catalog, 2).Import(context.Background(), path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Inserted != 5 {
		t.Errorf("Inserted = %d, want 5", res.Inserted)
	}
	// Two full batches plus the remainder.
	if catalog.flushes != 3 {
		t.Errorf("flushes = %d, want 3", catalog.flushes)
	}
}

func TestImport_MissingColumnsReadAsEmpty(t *testing.T) {
	path := writeCSV(t, "Company\nAcme\n")

	catalog := &fakeCatalog{}
	res, err := New(catalog, 0).Import(context.Background(), path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Inserted != 1 {
		t.Fatalf("result = %+v, want 1 inserted", res)
	}
	c := catalog.inserted[0]
	if c.Category != "" || c.Website != "" || c.Score != "" {
		t.Errorf("missing columns should be empty, got %+v", c)
	}
}

func TestImport_RawRowPreserved(t *testing.T) {
	path := writeCSV(t, "ICP,Company,Website\nfintech,Acme,HTTPS://Example.com/\n")

	catalog := &fakeCatalog{}
	if _, err := New(catalog, 0).Import(context.Background(), path, 0); err != nil {
		t.Fatal(err)
	}
	var raw map[string]string
	if err := json.Unmarshal([]byte(catalog.inserted[0].RawJSON), &raw); err != nil {
		t.Fatalf("raw row is not valid JSON: %v", err)
	}
	// Raw row keeps the original, un-normalized value.
	if raw["Website"] != "HTTPS://Example.com/" {
		t.Errorf("raw Website = %q, want original value", raw["Website"])
	}
}

func TestImport_Windows1251Export(t *testing.T) {
	// "Финтех" encoded as Windows-1251 in the ICP column.
	content := append([]byte("ICP,Company,Website\n"), 0xD4, 0xE8, 0xED, 0xF2, 0xE5, 0xF5)
	content = append(content, []byte(",Acme,acme.ru\n")...)
	path := filepath.Join(t.TempDir(), "Companies.csv")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	catalog := &fakeCatalog{}
	res, err := New(catalog, 0).Import(context.Background(), path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Inserted != 1 {
		t.Fatalf("result = %+v, want 1 inserted", res)
	}
	if catalog.inserted[0].Category != "Финтех" {
		t.Errorf("Category = %q, want decoded cp1251 value", catalog.inserted[0].Category)
	}
}
