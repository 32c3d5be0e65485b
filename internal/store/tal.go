package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// TAL is the target-account list of one hypothesis (at most one per
// hypothesis).
type TAL struct {
	ID           int64     `json:"id"`
	HypothesisID int64     `json:"hypothesis_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// TALAccount is one company on a TAL, unique per (tal, company).
type TALAccount struct {
	ID        int64     `json:"id"`
	TALID     int64     `json:"tal_id"`
	CompanyID int64     `json:"company_id"`
	FitReason string    `json:"fit_reason"`
	PainHint  string    `json:"pain_hint"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`

	// Joined from companies for listing.
	CompanyName    string `json:"company_name"`
	CompanyWebsite string `json:"company_website,omitempty"`
}

// EnsureTAL returns the hypothesis' TAL, creating it on first use.
func (s *Store) EnsureTAL(ctx context.Context, hypothesisID int64) (TAL, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tals (hypothesis_id, name)
		 VALUES ($1, $2)
		 ON CONFLICT (hypothesis_id) DO NOTHING`,
		hypothesisID, fmt.Sprintf("TAL-H-%d", hypothesisID))
	if err != nil {
		return TAL{}, fmt.Errorf("ensure tal: %w", err)
	}

	var t TAL
	err = s.pool.QueryRow(ctx,
		"SELECT id, hypothesis_id, name, created_at FROM tals WHERE hypothesis_id = $1",
		hypothesisID).Scan(&t.ID, &t.HypothesisID, &t.Name, &t.CreatedAt)
	if err != nil {
		return TAL{}, fmt.Errorf("load tal: %w", err)
	}
	return t, nil
}

// AddTALAccount links a company to a TAL. Adding an already-linked company is
// a no-op and reports added=false.
func (s *Store) AddTALAccount(ctx context.Context, talID, companyID int64, fitReason, painHint string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO tal_accounts (tal_id, company_id, fit_reason, pain_hint)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (tal_id, company_id) DO NOTHING`,
		talID, companyID, fitReason, painHint)
	if err != nil {
		return false, fmt.Errorf("add tal account: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListTALAccounts returns a TAL's accounts with company info, newest first.
func (s *Store) ListTALAccounts(ctx context.Context, talID int64) ([]TALAccount, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.tal_id, a.company_id, a.fit_reason, a.pain_hint, a.status, a.notes, a.created_at,
		        c.name, COALESCE(c.website, '')
		 FROM tal_accounts a
		 JOIN companies c ON c.id = a.company_id
		 WHERE a.tal_id = $1
		 ORDER BY a.id DESC`, talID)
	if err != nil {
		return nil, fmt.Errorf("list tal accounts: %w", err)
	}
	defer rows.Close()

	var out []TALAccount
	for rows.Next() {
		var a TALAccount
		if err := rows.Scan(&a.ID, &a.TALID, &a.CompanyID, &a.FitReason, &a.PainHint, &a.Status, &a.Notes,
			&a.CreatedAt, &a.CompanyName, &a.CompanyWebsite); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountTALAccounts returns the TAL size for a hypothesis, 0 when no TAL exists.
func (s *Store) CountTALAccounts(ctx context.Context, hypothesisID int64) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM tal_accounts a
		 JOIN tals t ON t.id = a.tal_id
		 WHERE t.hypothesis_id = $1`, hypothesisID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tal accounts: %w", err)
	}
	return n, nil
}

// GetTALAccount returns one TAL account by ID.
func (s *Store) GetTALAccount(ctx context.Context, id int64) (TALAccount, error) {
	var a TALAccount
	err := s.pool.QueryRow(ctx,
		`SELECT id, tal_id, company_id, fit_reason, pain_hint, status, notes, created_at
		 FROM tal_accounts WHERE id = $1`, id).
		Scan(&a.ID, &a.TALID, &a.CompanyID, &a.FitReason, &a.PainHint, &a.Status, &a.Notes, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return TALAccount{}, fmt.Errorf("tal account %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return TALAccount{}, fmt.Errorf("get tal account %d: %w", id, err)
	}
	return a, nil
}
