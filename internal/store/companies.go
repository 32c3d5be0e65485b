package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akoval/bdtrack/internal/importer"
	"github.com/jackc/pgx/v5"
)

// Company is one imported organization record. Website holds the normalized
// form; empty means absent (NULL in the table).
type Company struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	Website   string    `json:"website,omitempty"`
	Score     string    `json:"score"`
	Reasoning string    `json:"reasoning"`
	Notes     string    `json:"notes"`
	RawJSON   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

const companyColumns = "id, category, name, COALESCE(website, ''), score, reasoning, notes, raw_json, created_at"

func scanCompany(row pgx.Row) (Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.Category, &c.Name, &c.Website, &c.Score, &c.Reasoning, &c.Notes, &c.RawJSON, &c.CreatedAt)
	return c, err
}

// ListCompanies returns companies, newest first, optionally filtered by a
// case-insensitive name/website substring and an exact category.
func (s *Store) ListCompanies(ctx context.Context, query, category string, limit int) ([]Company, error) {
	sql := "SELECT " + companyColumns + " FROM companies"
	var conds []string
	var args []interface{}

	if q := strings.TrimSpace(query); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		conds = append(conds, fmt.Sprintf("(lower(name) LIKE $%d OR lower(website) LIKE $%d)", len(args), len(args)))
	}
	if c := strings.TrimSpace(category); c != "" {
		args = append(args, c)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	sql += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", len(args))

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// GetCompany returns one company by ID.
func (s *Store) GetCompany(ctx context.Context, id int64) (Company, error) {
	c, err := scanCompany(s.pool.QueryRow(ctx,
		"SELECT "+companyColumns+" FROM companies WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Company{}, fmt.Errorf("company %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Company{}, fmt.Errorf("get company %d: %w", id, err)
	}
	return c, nil
}

// CountCompanies returns the catalog size.
func (s *Store) CountCompanies(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM companies").Scan(&n); err != nil {
		return 0, fmt.Errorf("count companies: %w", err)
	}
	return n, nil
}

// CompanyCatalog exposes the companies table as the importer's catalog.
func (s *Store) CompanyCatalog() importer.Catalog {
	return companyCatalog{s}
}

type companyCatalog struct {
	s *Store
}

func (c companyCatalog) Websites(ctx context.Context) ([]string, error) {
	rows, err := c.s.pool.Query(ctx, "SELECT website FROM companies WHERE website IS NOT NULL")
	if err != nil {
		return nil, fmt.Errorf("select websites: %w", err)
	}
	defer rows.Close()

	var websites []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		websites = append(websites, w)
	}
	return websites, rows.Err()
}

// InsertCompanies bulk-inserts one accepted batch and commits it. Uses a pgx
// batch inside a transaction so one flush is one unit of work.
func (c companyCatalog) InsertCompanies(ctx context.Context, companies []importer.Company) error {
	if len(companies) == 0 {
		return nil
	}
	tx, err := c.s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin insert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, co := range companies {
		batch.Queue(
			`INSERT INTO companies (category, name, website, score, reasoning, notes, raw_json)
			 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)`,
			co.Category, co.Name, co.Website, co.Score, co.Reasoning, co.Notes, co.RawJSON)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert companies batch: %w", err)
	}
	return tx.Commit(ctx)
}
