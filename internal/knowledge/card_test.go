package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akoval/bdtrack/internal/store"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		id    int64
		title string
		want  string
	}{
		{1, "LowFXfees", "1-LowFXfees.md"},
		{2, "Low FX fees!", "2-LowFXfees.md"},
		{3, "with-dash_и_underscore", "3-with-dash_underscore.md"},
		{4, "???", "4-hypothesis.md"},
		{5, "", "5-hypothesis.md"},
	}
	for _, tt := range tests {
		h := store.Hypothesis{ID: tt.id, Title: tt.title}
		if got := Filename(h); got != tt.want {
			t.Errorf("Filename(%d, %q) = %q, want %q", tt.id, tt.title, got, tt.want)
		}
	}
}

func TestRender_BaseCard(t *testing.T) {
	body, err := Render(Card{
		Hypothesis: store.Hypothesis{
			ID:       7,
			Title:    "SMB wires",
			Status:   "active",
			Decision: store.DecisionOpen,
			Pain:     "manual reconciliation",
		},
		VPPointName: "Faster payouts",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(body, "# Hypothesis #7: SMB wires\n") {
		t.Errorf("unexpected heading: %q", firstLine(body))
	}
	if !strings.Contains(body, "- **VP Point**: Faster payouts") {
		t.Error("VP point name missing")
	}
	if !strings.Contains(body, "### Pain\nmanual reconciliation") {
		t.Error("pain section missing")
	}
	if strings.Contains(body, "## Facts") {
		t.Error("base card must not contain facts")
	}
	if !strings.HasSuffix(body, "\n") {
		t.Error("card must end with a newline")
	}
}

func TestRender_EnrichedCard(t *testing.T) {
	body, err := Render(Card{
		Hypothesis: store.Hypothesis{ID: 1, Title: "t", Decision: store.DecisionOpen},
		Facts: &Facts{
			TALSize:      12,
			TotalCalls:   4,
			PainRate:     50,
			InterestRate: 25,
			FollowRate:   25,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"## Facts",
		"- **TAL size**: 12",
		"- **Calls**: 4",
		"- **Pain confirmed rate**: 50%",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("enriched card missing %q", want)
		}
	}
}

func TestRender_NoRatesWithoutCalls(t *testing.T) {
	body, err := Render(Card{
		Hypothesis: store.Hypothesis{ID: 1, Title: "t"},
		Facts:      &Facts{TALSize: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(body, "rate") {
		t.Error("rates must be omitted when there are no calls")
	}
}

func TestWrite(t *testing.T) {
	root := t.TempDir()
	path, err := Write(root, Card{Hypothesis: store.Hypothesis{ID: 9, Title: "Acme"}})
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "knowledge", "hypotheses", "9-Acme.md")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Hypothesis #9: Acme") {
		t.Error("written card missing heading")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
