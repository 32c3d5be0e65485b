// Package knowledge renders hypothesis summary cards as markdown files under
// the knowledge directory of the indexed tree.
package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/akoval/bdtrack/internal/store"
)

// CardsSubdir is where cards land relative to the repository root.
const CardsSubdir = "knowledge/hypotheses"

// Facts are the lightweight aggregates appended to an enriched card.
type Facts struct {
	TALSize      int64
	TotalCalls   int
	PainRate     int
	InterestRate int
	FollowRate   int
}

// Card is everything needed to render one hypothesis card.
type Card struct {
	Hypothesis      store.Hypothesis
	VPPointName     string
	ICPName         string
	SubVerticalName string
	Facts           *Facts
}

var cardTemplate = template.Must(template.New("card").Parse(`# Hypothesis #{{.Hypothesis.ID}}: {{.Hypothesis.Title}}

- **Status**: {{.Hypothesis.Status}}
- **Channel**: {{.Hypothesis.Channel}}
- **Decision**: {{.Hypothesis.Decision}}

## Framework
- **VP Point**: {{.VPPointName}}
- **ICP**: {{.ICPName}}
- **Vertical/Sub**: {{.SubVerticalName}}

### Pain
{{.Hypothesis.Pain}}

### Expected signal
{{.Hypothesis.ExpectedSignal}}

### Disqualifiers
{{.Hypothesis.Disqualifiers}}

## Segment / ICP
{{.Hypothesis.Segment}}

## Problem
{{.Hypothesis.Problem}}

## Assumption
{{.Hypothesis.Assumption}}

## Success metric
{{.Hypothesis.SuccessMetric}}

## Minimal signal
{{.Hypothesis.MinimalSignal}}
{{- if .Facts}}

## Facts
- **TAL size**: {{.Facts.TALSize}}
- **Calls**: {{.Facts.TotalCalls}}
{{- if gt .Facts.TotalCalls 0}}
- **Pain confirmed rate**: {{.Facts.PainRate}}%
- **Interest rate**: {{.Facts.InterestRate}}%
- **Follow-up rate**: {{.Facts.FollowRate}}%
{{- end}}
{{- end}}
`))

// Render produces the markdown card body.
func Render(c Card) (string, error) {
	var sb strings.Builder
	if err := cardTemplate.Execute(&sb, c); err != nil {
		return "", fmt.Errorf("render card: %w", err)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n", nil
}

// Filename builds the card file name "<id>-<safe-title>.md". The title is
// reduced to alphanumerics, '-' and '_'; an empty remainder falls back to
// "hypothesis".
func Filename(h store.Hypothesis) string {
	var sb strings.Builder
	for _, ch := range h.Title {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-', ch == '_':
			sb.WriteRune(ch)
		}
	}
	safe := strings.TrimSpace(sb.String())
	if safe == "" {
		safe = "hypothesis"
	}
	return fmt.Sprintf("%d-%s.md", h.ID, safe)
}

// Write renders the card and writes it under root. Returns the written path.
func Write(root string, c Card) (string, error) {
	body, err := Render(c)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, filepath.FromSlash(CardsSubdir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cards dir: %w", err)
	}
	path := filepath.Join(dir, Filename(c.Hypothesis))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write card: %w", err)
	}
	return path, nil
}
