package quiz

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Лев Толстой", "лев толстой"},
		{"truncate period", "Толстой. Русский классик.", "толстой"},
		{"truncate paren", "Толстой (писатель)", "толстой "},
		{"period before paren", "Толстой. (писатель)", "толстой"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGrade(t *testing.T) {
	const reference = "Лев Николаевич Толстой (великий русский писатель). Автор романа."

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"exact short answer", "Толстой", true},
		{"full name", "Лев Николаевич Толстой", true},
		{"half matched", "Лев Пушкин", true},
		{"wrong answer", "Пушкин", false},
		{"case insensitive", "тОлСтОй", true},
		{"empty candidate", "", false},
		{"whitespace candidate", "   ", false},
		{"parenthetical part does not count", "великий русский", false},
		{"trailing sentence does not count", "Автор романа", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grade(tt.candidate, reference, DefaultThreshold); got != tt.want {
				t.Errorf("Grade(%q) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestGradeWholeWordsOnly(t *testing.T) {
	// Substring overlap must not count as a match.
	if Grade("cart", "art", DefaultThreshold) {
		t.Error("Grade matched a substring instead of a whole word")
	}
	if Grade("art", "cart", DefaultThreshold) {
		t.Error("Grade matched a whole word against a substring")
	}
}

func TestGradeRatioDividesByCandidate(t *testing.T) {
	// A terse correct answer passes even though it covers little of the
	// reference, while rambling dilutes the ratio below the threshold.
	if !Grade("Толстой", "Лев Николаевич Толстой", DefaultThreshold) {
		t.Error("terse correct answer rejected")
	}
	if Grade("может быть это Толстой", "Толстой", DefaultThreshold) {
		t.Error("rambling answer accepted")
	}
}

func TestGradeThresholdBounds(t *testing.T) {
	if Grade("Толстой", "Толстой", -0.1) {
		t.Error("negative threshold accepted an answer")
	}
	if Grade("Толстой", "Толстой", 1.1) {
		t.Error("threshold above one accepted an answer")
	}
	// Threshold zero still requires a non-empty candidate.
	if Grade("", "Толстой", 0) {
		t.Error("empty candidate accepted at zero threshold")
	}
	if !Grade("что угодно", "Толстой", 0) {
		t.Error("zero threshold rejected a non-empty candidate")
	}
	// Threshold one demands full containment.
	if Grade("Лев Пушкин", "Лев Николаевич Толстой", 1) {
		t.Error("partial match accepted at threshold one")
	}
	if !Grade("Лев Толстой", "Лев Николаевич Толстой", 1) {
		t.Error("full containment rejected at threshold one")
	}
}

func TestGradeEmptyReference(t *testing.T) {
	if Grade("Толстой", "", DefaultThreshold) {
		t.Error("empty reference accepted an answer")
	}
}
