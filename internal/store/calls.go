package store

import (
	"context"
	"fmt"
	"time"
)

// Call is one logged sales call with the observations used for hypothesis
// validation.
type Call struct {
	ID           int64  `json:"id"`
	HypothesisID *int64 `json:"hypothesis_id,omitempty"`
	TALAccountID *int64 `json:"tal_account_id,omitempty"`
	CompanyID    *int64 `json:"company_id,omitempty"`

	CallDate      *time.Time `json:"call_date,omitempty"`
	Summary       string     `json:"summary"`
	TranscriptURL string     `json:"transcript_url"`

	PainConfirmed bool   `json:"pain_confirmed"`
	Severity      int    `json:"severity"` // 1-5, 0 = unset
	Interest      bool   `json:"interest"`
	FollowUp      bool   `json:"follow_up"`
	Disqualifier  string `json:"disqualifier"`

	CreatedAt time.Time `json:"created_at"`
}

// CreateCall inserts a call record.
func (s *Store) CreateCall(ctx context.Context, c Call) (Call, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO calls (hypothesis_id, tal_account_id, company_id, call_date,
			summary, transcript_url, pain_confirmed, severity, interest, follow_up, disqualifier)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		c.HypothesisID, c.TALAccountID, c.CompanyID, c.CallDate,
		c.Summary, c.TranscriptURL, c.PainConfirmed, c.Severity, c.Interest, c.FollowUp, c.Disqualifier).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return Call{}, fmt.Errorf("create call: %w", err)
	}
	return c, nil
}

// ListCallsByHypothesis returns a hypothesis' calls in chronological insert
// order. Metrics depend on this ordering (first pain-confirming call index).
func (s *Store) ListCallsByHypothesis(ctx context.Context, hypothesisID int64) ([]Call, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, hypothesis_id, tal_account_id, company_id, call_date,
		        summary, transcript_url, pain_confirmed, severity, interest, follow_up, disqualifier, created_at
		 FROM calls
		 WHERE hypothesis_id = $1
		 ORDER BY id ASC`, hypothesisID)
	if err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}
	defer rows.Close()

	var out []Call
	for rows.Next() {
		var c Call
		if err := rows.Scan(&c.ID, &c.HypothesisID, &c.TALAccountID, &c.CompanyID, &c.CallDate,
			&c.Summary, &c.TranscriptURL, &c.PainConfirmed, &c.Severity, &c.Interest, &c.FollowUp,
			&c.Disqualifier, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
