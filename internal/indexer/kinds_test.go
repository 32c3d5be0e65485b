package indexer

import "testing"

func TestGuessKind(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"csv", KindCSV},
		{"html", KindHTML},
		{"htm", KindHTML},
		{"md", KindMD},
		{"py", KindPy},
		{"jpg", KindImage},
		{"jpeg", KindImage},
		{"png", KindImage},
		{"gif", KindImage},
		{"webp", KindImage},
		{"db", KindDB},
		{"sqlite", KindDB},
		{"xyz", KindOther},
		{"", KindOther},
		{"go", KindOther},
	}

	for _, tt := range tests {
		if got := GuessKind(tt.ext); got != tt.want {
			t.Errorf("GuessKind(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}
