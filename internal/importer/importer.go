// Package importer ingests company rows from a spreadsheet CSV export into the
// persisted company catalog. The catalog is append-only from the importer's
// point of view: a normalized website is the dedup key and later duplicates are
// skipped, never merged. Rows without a website carry no uniqueness guarantee
// and are always inserted.
package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akoval/bdtrack/internal/textenc"
)

// ErrFileNotFound is returned when the import file does not exist.
var ErrFileNotFound = errors.New("import file not found")

// DefaultBatchSize is how many accepted rows are buffered before a flush.
const DefaultBatchSize = 1000

// Company is one accepted catalog row. Website is already normalized; empty
// means absent (stored as NULL). RawJSON preserves the original row verbatim
// for audit.
type Company struct {
	Category  string
	Name      string
	Website   string
	Score     string
	Reasoning string
	Notes     string
	RawJSON   string
}

// Catalog is the persisted company catalog the importer writes to.
// Websites returns every stored non-empty website; InsertCompanies performs a
// bulk insert and commits it.
type Catalog interface {
	Websites(ctx context.Context) ([]string, error)
	InsertCompanies(ctx context.Context, batch []Company) error
}

// Result summarizes one import run. TotalRows counts rows read, including
// skipped ones.
type Result struct {
	TotalRows int    `json:"total_rows"`
	Inserted  int    `json:"inserted"`
	Skipped   int    `json:"skipped"`
	Path      string `json:"path"`
}

// Importer parses company CSV exports and inserts unseen rows.
type Importer struct {
	catalog   Catalog
	batchSize int
}

// New creates an Importer. batchSize <= 0 falls back to DefaultBatchSize.
func New(catalog Catalog, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Importer{catalog: catalog, batchSize: batchSize}
}

// Import reads the CSV at path and inserts rows whose normalized website has
// not been seen, either in the catalog before the run or earlier in the run.
// limit > 0 stops after that many rows read. Accepted rows are flushed in
// batches so an interrupted run loses only the un-flushed tail.
func (im *Importer) Import(ctx context.Context, path string, limit int) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}

	seen := make(map[string]struct{})
	websites, err := im.catalog.Websites(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load existing websites: %w", err)
	}
	for _, w := range websites {
		if n := NormalizeWebsite(w); n != "" {
			seen[n] = struct{}{}
		}
	}

	reader := csv.NewReader(strings.NewReader(textenc.Decode(data)))
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err == io.EOF {
		return Result{Path: path}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}

	result := Result{Path: path}
	var pending []Company

	for {
		if limit > 0 && result.TotalRows >= limit {
			break
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read row %d: %w", result.TotalRows+1, err)
		}
		result.TotalRows++

		row := rowMap(header, record)
		field := func(name string) string { return norm(row[name]) }

		name := field("Company")
		website := NormalizeWebsite(row["Website"])

		if name == "" && website == "" {
			result.Skipped++
			continue
		}
		if website != "" {
			if _, dup := seen[website]; dup {
				result.Skipped++
				continue
			}
		}

		raw, err := json.Marshal(row)
		if err != nil {
			return Result{}, fmt.Errorf("serialize row %d: %w", result.TotalRows, err)
		}

		pending = append(pending, Company{
			Category:  field("ICP"),
			Name:      name,
			Website:   website,
			Score:     field("Score"),
			Reasoning: field("Reasoning"),
			Notes:     field("Notes"),
			RawJSON:   string(raw),
		})
		result.Inserted++
		if website != "" {
			seen[website] = struct{}{}
		}

		if len(pending) >= im.batchSize {
			if err := im.catalog.InsertCompanies(ctx, pending); err != nil {
				return Result{}, fmt.Errorf("flush batch: %w", err)
			}
			pending = pending[:0]
		}
	}

	if len(pending) > 0 {
		if err := im.catalog.InsertCompanies(ctx, pending); err != nil {
			return Result{}, fmt.Errorf("flush final batch: %w", err)
		}
	}
	return result, nil
}

// rowMap pairs header names with record values. Short records read as empty
// strings for the trailing columns.
func rowMap(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i < len(record) {
			row[name] = record[i]
		} else {
			row[name] = ""
		}
	}
	return row
}
