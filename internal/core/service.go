// Package core provides the business logic of the tracker: hypothesis and
// call recording, TAL building, validation metrics, and the orchestration of
// the file reindex and company import runs. It has no HTTP dependencies.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/akoval/bdtrack/internal/importer"
	"github.com/akoval/bdtrack/internal/indexer"
	"github.com/akoval/bdtrack/internal/knowledge"
	"github.com/akoval/bdtrack/internal/store"
	"github.com/google/uuid"
)

// ErrInvalid marks a request rejected for bad input.
var ErrInvalid = errors.New("invalid input")

// Service wires the persisted catalogs to the reconciliation routines and the
// domain operations.
type Service struct {
	store    *store.Store
	importer *importer.Importer
	root     string
}

// NewService creates a Service indexing and importing relative to root.
func NewService(st *store.Store, root string, importBatchSize int) *Service {
	return &Service{
		store:    st,
		importer: importer.New(st.CompanyCatalog(), importBatchSize),
		root:     root,
	}
}

// Store exposes the underlying store for read-mostly handlers.
func (s *Service) Store() *store.Store {
	return s.store
}

// ReindexReport is the outcome of one reindex run.
type ReindexReport struct {
	RunID string `json:"run_id"`
	indexer.Summary
}

// Reindex reconciles the document catalog against the file tree. Passes over
// the same catalog must not overlap; callers serialize.
func (s *Service) Reindex(ctx context.Context) (ReindexReport, error) {
	runID := uuid.New().String()
	started := time.Now()

	summary, err := indexer.Reconcile(ctx, s.store.DocumentCatalog(), s.root)
	if err != nil {
		return ReindexReport{}, fmt.Errorf("reindex: %w", err)
	}

	slog.Info("reindex completed",
		"run_id", runID,
		"total_scanned", summary.TotalScanned,
		"created", summary.Created,
		"updated", summary.Updated,
		"deleted", summary.Deleted,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return ReindexReport{RunID: runID, Summary: summary}, nil
}

// ImportReport is the outcome of one company import run.
type ImportReport struct {
	RunID string `json:"run_id"`
	importer.Result
}

// ImportCompanies runs the spreadsheet importer against path, resolved
// relative to the index root. limit > 0 caps how many rows are read.
func (s *Service) ImportCompanies(ctx context.Context, path string, limit int) (ImportReport, error) {
	runID := uuid.New().String()
	started := time.Now()

	abs, err := indexer.ResolveUnderRoot(s.root, path)
	if err != nil {
		return ImportReport{}, fmt.Errorf("%w: import path escapes the tracked tree", ErrInvalid)
	}

	result, err := s.importer.Import(ctx, abs, limit)
	if err != nil {
		return ImportReport{}, err
	}
	result.Path = path

	slog.Info("company import completed",
		"run_id", runID,
		"path", result.Path,
		"total_rows", result.TotalRows,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return ImportReport{RunID: runID, Result: result}, nil
}

// HypothesisInput is the payload for creating a hypothesis.
type HypothesisInput struct {
	Title         string `json:"title"`
	VPPointID     *int64 `json:"vp_point_id"`
	ICPID         *int64 `json:"icp_id"`
	SubVerticalID *int64 `json:"sub_vertical_id"`

	Pain           string `json:"pain"`
	ExpectedSignal string `json:"expected_signal"`
	Disqualifiers  string `json:"disqualifiers"`

	Segment       string `json:"segment"`
	Problem       string `json:"problem"`
	Assumption    string `json:"assumption"`
	Channel       string `json:"channel"`
	SuccessMetric string `json:"success_metric"`
	MinimalSignal string `json:"minimal_signal"`

	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CreateHypothesis stores a new hypothesis and writes its markdown card.
// Card writing is best-effort: a failed write logs a warning, it never fails
// the create.
func (s *Service) CreateHypothesis(ctx context.Context, in HypothesisInput) (store.Hypothesis, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return store.Hypothesis{}, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = "draft"
	}

	h := store.Hypothesis{
		Title:          title,
		VPPointID:      in.VPPointID,
		ICPID:          in.ICPID,
		SubVerticalID:  in.SubVerticalID,
		Pain:           strings.TrimSpace(in.Pain),
		ExpectedSignal: strings.TrimSpace(in.ExpectedSignal),
		Disqualifiers:  strings.TrimSpace(in.Disqualifiers),
		Segment:        strings.TrimSpace(in.Segment),
		Problem:        strings.TrimSpace(in.Problem),
		Assumption:     strings.TrimSpace(in.Assumption),
		Channel:        strings.TrimSpace(in.Channel),
		SuccessMetric:  strings.TrimSpace(in.SuccessMetric),
		MinimalSignal:  strings.TrimSpace(in.MinimalSignal),
		Decision:       store.DecisionOpen,
		Status:         status,
		StartDate:      parseDate(in.StartDate),
		EndDate:        parseDate(in.EndDate),
	}

	created, err := s.store.CreateHypothesis(ctx, h)
	if err != nil {
		return store.Hypothesis{}, err
	}

	if _, err := s.WriteCard(ctx, created); err != nil {
		slog.Warn("hypothesis card write failed", "hypothesis_id", created.ID, "error", err)
	}
	return created, nil
}

// UpdateDecision records a validation decision on a hypothesis and refreshes
// its card.
func (s *Service) UpdateDecision(ctx context.Context, id int64, decision, notes, status string) (store.Hypothesis, error) {
	switch decision {
	case store.DecisionOpen, store.DecisionValidated, store.DecisionInvalidated, store.DecisionInconclusive:
	default:
		return store.Hypothesis{}, fmt.Errorf("%w: unknown decision %q", ErrInvalid, decision)
	}

	h, err := s.store.GetHypothesis(ctx, id)
	if err != nil {
		return store.Hypothesis{}, err
	}
	if status = strings.TrimSpace(status); status == "" {
		status = h.Status
	}

	updated, err := s.store.UpdateHypothesisDecision(ctx, id, decision, strings.TrimSpace(notes), status)
	if err != nil {
		return store.Hypothesis{}, err
	}
	if _, err := s.WriteCard(ctx, updated); err != nil {
		slog.Warn("hypothesis card write failed", "hypothesis_id", id, "error", err)
	}
	return updated, nil
}

// WriteCard renders and writes the hypothesis' markdown card, enriched with
// TAL size and call metrics. Failed reference lookups leave the names empty,
// matching the permissive card semantics.
func (s *Service) WriteCard(ctx context.Context, h store.Hypothesis) (string, error) {
	card := knowledge.Card{Hypothesis: h}

	if h.VPPointID != nil {
		if name, err := s.store.GetVPPointName(ctx, *h.VPPointID); err == nil {
			card.VPPointName = name
		}
	}
	if h.ICPID != nil {
		if name, err := s.store.GetICPName(ctx, *h.ICPID); err == nil {
			card.ICPName = name
		}
	}
	if h.SubVerticalID != nil {
		if name, err := s.store.GetSubVerticalName(ctx, *h.SubVerticalID); err == nil {
			card.SubVerticalName = name
		}
	}

	talSize, err := s.store.CountTALAccounts(ctx, h.ID)
	if err != nil {
		talSize = 0
	}
	card.Facts = &knowledge.Facts{TALSize: talSize}
	if calls, err := s.store.ListCallsByHypothesis(ctx, h.ID); err == nil {
		m := ComputeValidationMetrics(calls)
		card.Facts.TotalCalls = m.TotalCalls
		card.Facts.PainRate = m.PainRate
		card.Facts.InterestRate = m.InterestRate
		card.Facts.FollowRate = m.FollowRate
	}

	return knowledge.Write(s.root, card)
}

// RefreshCard regenerates the card for an existing hypothesis.
func (s *Service) RefreshCard(ctx context.Context, id int64) (string, error) {
	h, err := s.store.GetHypothesis(ctx, id)
	if err != nil {
		return "", err
	}
	return s.WriteCard(ctx, h)
}

// HypothesisMetrics computes validation metrics for a hypothesis.
func (s *Service) HypothesisMetrics(ctx context.Context, id int64) (ValidationMetrics, error) {
	if _, err := s.store.GetHypothesis(ctx, id); err != nil {
		return ValidationMetrics{}, err
	}
	calls, err := s.store.ListCallsByHypothesis(ctx, id)
	if err != nil {
		return ValidationMetrics{}, err
	}
	return ComputeValidationMetrics(calls), nil
}

// CallInput is the payload for logging a call against a hypothesis.
type CallInput struct {
	TALAccountID  *int64 `json:"tal_account_id"`
	CallDate      string `json:"call_date"`
	Summary       string `json:"summary"`
	TranscriptURL string `json:"transcript_url"`
	PainConfirmed bool   `json:"pain_confirmed"`
	Severity      int    `json:"severity"`
	Interest      bool   `json:"interest"`
	FollowUp      bool   `json:"follow_up"`
	Disqualifier  string `json:"disqualifier"`
}

// LogCall records a call against a hypothesis. A TAL account reference also
// links the call to that account's company; a dangling reference is dropped
// rather than rejected.
func (s *Service) LogCall(ctx context.Context, hypothesisID int64, in CallInput) (store.Call, error) {
	if _, err := s.store.GetHypothesis(ctx, hypothesisID); err != nil {
		return store.Call{}, err
	}

	call := store.Call{
		HypothesisID:  &hypothesisID,
		CallDate:      parseDate(in.CallDate),
		Summary:       strings.TrimSpace(in.Summary),
		TranscriptURL: strings.TrimSpace(in.TranscriptURL),
		PainConfirmed: in.PainConfirmed,
		Severity:      in.Severity,
		Interest:      in.Interest,
		FollowUp:      in.FollowUp,
		Disqualifier:  strings.TrimSpace(in.Disqualifier),
	}
	if in.TALAccountID != nil {
		if acct, err := s.store.GetTALAccount(ctx, *in.TALAccountID); err == nil {
			call.TALAccountID = &acct.ID
			call.CompanyID = &acct.CompanyID
		}
	}
	return s.store.CreateCall(ctx, call)
}

// TALView is a TAL plus its accounts.
type TALView struct {
	TAL      store.TAL          `json:"tal"`
	Accounts []store.TALAccount `json:"accounts"`
}

// HypothesisTAL returns the hypothesis' TAL, creating it on first access.
func (s *Service) HypothesisTAL(ctx context.Context, hypothesisID int64) (TALView, error) {
	if _, err := s.store.GetHypothesis(ctx, hypothesisID); err != nil {
		return TALView{}, err
	}
	tal, err := s.store.EnsureTAL(ctx, hypothesisID)
	if err != nil {
		return TALView{}, err
	}
	accounts, err := s.store.ListTALAccounts(ctx, tal.ID)
	if err != nil {
		return TALView{}, err
	}
	return TALView{TAL: tal, Accounts: accounts}, nil
}

// AddTALAccount puts a company on the hypothesis' TAL. Re-adding an existing
// company reports added=false and succeeds.
func (s *Service) AddTALAccount(ctx context.Context, hypothesisID, companyID int64, fitReason, painHint string) (bool, error) {
	if _, err := s.store.GetHypothesis(ctx, hypothesisID); err != nil {
		return false, err
	}
	if _, err := s.store.GetCompany(ctx, companyID); err != nil {
		return false, err
	}
	tal, err := s.store.EnsureTAL(ctx, hypothesisID)
	if err != nil {
		return false, err
	}
	return s.store.AddTALAccount(ctx, tal.ID, companyID, strings.TrimSpace(fitReason), strings.TrimSpace(painHint))
}

// parseDate parses an ISO date, returning nil for empty or malformed values.
func parseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
