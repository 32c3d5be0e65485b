package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Hypothesis decisions.
const (
	DecisionOpen         = "open"
	DecisionValidated    = "validated"
	DecisionInvalidated  = "invalidated"
	DecisionInconclusive = "inconclusive"
)

// Hypothesis is one recorded assumption about a customer segment. The VP
// point / ICP / sub-vertical links are optional framework references; the
// freeform segment/problem/assumption fields predate the framework and are
// kept for older records.
type Hypothesis struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	VPPointID     *int64 `json:"vp_point_id,omitempty"`
	ICPID         *int64 `json:"icp_id,omitempty"`
	SubVerticalID *int64 `json:"sub_vertical_id,omitempty"`

	Pain           string `json:"pain"`
	ExpectedSignal string `json:"expected_signal"`
	Disqualifiers  string `json:"disqualifiers"`

	Segment       string `json:"segment"`
	Problem       string `json:"problem"`
	Assumption    string `json:"assumption"`
	Channel       string `json:"channel"`
	SuccessMetric string `json:"success_metric"`
	MinimalSignal string `json:"minimal_signal"`

	Decision      string `json:"decision"`
	DecisionNotes string `json:"decision_notes"`
	Status        string `json:"status"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const hypothesisColumns = `id, title, vp_point_id, icp_id, sub_vertical_id,
	pain, expected_signal, disqualifiers,
	segment, problem, assumption, channel, success_metric, minimal_signal,
	decision, decision_notes, status, start_date, end_date, created_at, updated_at`

func scanHypothesis(row pgx.Row) (Hypothesis, error) {
	var h Hypothesis
	err := row.Scan(&h.ID, &h.Title, &h.VPPointID, &h.ICPID, &h.SubVerticalID,
		&h.Pain, &h.ExpectedSignal, &h.Disqualifiers,
		&h.Segment, &h.Problem, &h.Assumption, &h.Channel, &h.SuccessMetric, &h.MinimalSignal,
		&h.Decision, &h.DecisionNotes, &h.Status, &h.StartDate, &h.EndDate, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

// CreateHypothesis inserts h and returns it with generated fields populated.
func (s *Store) CreateHypothesis(ctx context.Context, h Hypothesis) (Hypothesis, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO hypotheses (title, vp_point_id, icp_id, sub_vertical_id,
			pain, expected_signal, disqualifiers,
			segment, problem, assumption, channel, success_metric, minimal_signal,
			decision, decision_notes, status, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		 RETURNING `+hypothesisColumns,
		h.Title, h.VPPointID, h.ICPID, h.SubVerticalID,
		h.Pain, h.ExpectedSignal, h.Disqualifiers,
		h.Segment, h.Problem, h.Assumption, h.Channel, h.SuccessMetric, h.MinimalSignal,
		h.Decision, h.DecisionNotes, h.Status, h.StartDate, h.EndDate)

	created, err := scanHypothesis(row)
	if err != nil {
		return Hypothesis{}, fmt.Errorf("create hypothesis: %w", err)
	}
	return created, nil
}

// ListHypotheses returns all hypotheses, newest first.
func (s *Store) ListHypotheses(ctx context.Context) ([]Hypothesis, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+hypothesisColumns+" FROM hypotheses ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("list hypotheses: %w", err)
	}
	defer rows.Close()

	var out []Hypothesis
	for rows.Next() {
		h, err := scanHypothesis(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hypothesis: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// GetHypothesis returns one hypothesis by ID.
func (s *Store) GetHypothesis(ctx context.Context, id int64) (Hypothesis, error) {
	h, err := scanHypothesis(s.pool.QueryRow(ctx,
		"SELECT "+hypothesisColumns+" FROM hypotheses WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Hypothesis{}, fmt.Errorf("hypothesis %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Hypothesis{}, fmt.Errorf("get hypothesis %d: %w", id, err)
	}
	return h, nil
}

// UpdateHypothesisDecision updates the decision fields and status.
func (s *Store) UpdateHypothesisDecision(ctx context.Context, id int64, decision, notes, status string) (Hypothesis, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE hypotheses
		 SET decision = $2, decision_notes = $3, status = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+hypothesisColumns,
		id, decision, notes, status)

	h, err := scanHypothesis(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Hypothesis{}, fmt.Errorf("hypothesis %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Hypothesis{}, fmt.Errorf("update hypothesis %d: %w", id, err)
	}
	return h, nil
}
