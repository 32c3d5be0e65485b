package store

import (
	"context"
	"fmt"
	"time"
)

// VPPoint is a value-proposition point: a job to be done and the friction it
// removes.
type VPPoint struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	JobToBeDone   string    `json:"job_to_be_done"`
	PainFriction  string    `json:"pain_friction"`
	OutcomeMetric string    `json:"outcome_metric"`
	CreatedAt     time.Time `json:"created_at"`
}

// ICP is an ideal customer profile.
type ICP struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	Scale           string    `json:"scale"`
	DecisionContext string    `json:"decision_context"`
	CreatedAt       time.Time `json:"created_at"`
}

// Vertical groups sub-verticals of one market segment.
type Vertical struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"created_at"`
	Subs        []SubVertical `json:"subs,omitempty"`
}

// SubVertical is a named slice of a vertical, unique per vertical.
type SubVertical struct {
	ID          int64     `json:"id"`
	VerticalID  int64     `json:"vertical_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateVPPoint inserts a VP point.
func (s *Store) CreateVPPoint(ctx context.Context, p VPPoint) (VPPoint, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO vp_points (name, job_to_be_done, pain_friction, outcome_metric)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		p.Name, p.JobToBeDone, p.PainFriction, p.OutcomeMetric).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return VPPoint{}, fmt.Errorf("create vp point: %w", err)
	}
	return p, nil
}

// ListVPPoints returns all VP points ordered by name.
func (s *Store) ListVPPoints(ctx context.Context) ([]VPPoint, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, job_to_be_done, pain_friction, outcome_metric, created_at FROM vp_points ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list vp points: %w", err)
	}
	defer rows.Close()

	var out []VPPoint
	for rows.Next() {
		var p VPPoint
		if err := rows.Scan(&p.ID, &p.Name, &p.JobToBeDone, &p.PainFriction, &p.OutcomeMetric, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateICP inserts an ICP.
func (s *Store) CreateICP(ctx context.Context, p ICP) (ICP, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO icps (name, role, scale, decision_context)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		p.Name, p.Role, p.Scale, p.DecisionContext).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return ICP{}, fmt.Errorf("create icp: %w", err)
	}
	return p, nil
}

// ListICPs returns all ICPs ordered by name.
func (s *Store) ListICPs(ctx context.Context) ([]ICP, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, role, scale, decision_context, created_at FROM icps ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list icps: %w", err)
	}
	defer rows.Close()

	var out []ICP
	for rows.Next() {
		var p ICP
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Scale, &p.DecisionContext, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateVertical inserts a vertical.
func (s *Store) CreateVertical(ctx context.Context, v Vertical) (Vertical, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO verticals (name, description) VALUES ($1, $2) RETURNING id, created_at`,
		v.Name, v.Description).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return Vertical{}, fmt.Errorf("create vertical: %w", err)
	}
	return v, nil
}

// CreateSubVertical inserts a sub-vertical under an existing vertical.
func (s *Store) CreateSubVertical(ctx context.Context, sub SubVertical) (SubVertical, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO sub_verticals (vertical_id, name, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		sub.VerticalID, sub.Name, sub.Description).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return SubVertical{}, fmt.Errorf("create sub-vertical: %w", err)
	}
	return sub, nil
}

// ListVerticals returns all verticals with their sub-verticals, newest first.
func (s *Store) ListVerticals(ctx context.Context) ([]Vertical, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, description, created_at FROM verticals ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("list verticals: %w", err)
	}
	defer rows.Close()

	var out []Vertical
	index := make(map[int64]int)
	for rows.Next() {
		var v Vertical
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.CreatedAt); err != nil {
			return nil, err
		}
		index[v.ID] = len(out)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := s.pool.Query(ctx,
		"SELECT id, vertical_id, name, description, created_at FROM sub_verticals ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list sub-verticals: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var sub SubVertical
		if err := subRows.Scan(&sub.ID, &sub.VerticalID, &sub.Name, &sub.Description, &sub.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[sub.VerticalID]; ok {
			out[i].Subs = append(out[i].Subs, sub)
		}
	}
	return out, subRows.Err()
}

// GetVPPointName returns the name for an optional VP point reference.
func (s *Store) GetVPPointName(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.pool.QueryRow(ctx, "SELECT name FROM vp_points WHERE id = $1", id).Scan(&name)
	return name, err
}

// GetICPName returns the name for an optional ICP reference.
func (s *Store) GetICPName(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.pool.QueryRow(ctx, "SELECT name FROM icps WHERE id = $1", id).Scan(&name)
	return name, err
}

// GetSubVerticalName returns the name for an optional sub-vertical reference.
func (s *Store) GetSubVerticalName(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.pool.QueryRow(ctx, "SELECT name FROM sub_verticals WHERE id = $1", id).Scan(&name)
	return name, err
}
