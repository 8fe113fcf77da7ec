package profile

import (
	"reflect"
	"testing"
)

func TestParseExperienceLevel(t *testing.T) {
	level, ok := ParseExperienceLevel(" Advanced ")
	if !ok || level != Advanced {
		t.Fatalf("expected advanced, got %q ok=%v", level, ok)
	}

	if _, ok := ParseExperienceLevel("wizard"); ok {
		t.Fatalf("expected unknown level to be rejected")
	}

	if _, ok := ParseExperienceLevel(""); ok {
		t.Fatalf("expected empty level to be rejected")
	}
}

func TestSeverityOrdering(t *testing.T) {
	if Beginner.Severity() >= Intermediate.Severity() {
		t.Fatalf("beginner must rank below intermediate")
	}
	if Intermediate.Severity() >= Advanced.Severity() {
		t.Fatalf("intermediate must rank below advanced")
	}
	if ExperienceLevel("unknown").Severity() != 0 {
		t.Fatalf("unknown level must have zero severity")
	}
}

func TestNormalizeSet(t *testing.T) {
	got := NormalizeSet([]string{"React", "react", "  ", "PostgreSQL", "REACT", "Go"})
	want := []string{"Go", "PostgreSQL", "React"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeSet = %v, want %v", got, want)
	}
}

func TestNormalizeSetFirstSpellingWins(t *testing.T) {
	got := NormalizeSet([]string{"nodeJS", "NodeJS"})
	if len(got) != 1 || got[0] != "nodeJS" {
		t.Fatalf("expected first spelling to win, got %v", got)
	}
}

func TestNewDerivesConfidence(t *testing.T) {
	p := New(
		[]string{"Go", "Python", "Rust"},
		[]string{"Docker", "Kubernetes", "React"},
		[]string{"devops"},
		Intermediate,
		SourceFast,
	)

	// 7 of 15 target skills, rounded.
	if p.Confidence != 47 {
		t.Fatalf("expected confidence 47, got %d", p.Confidence)
	}
	if p.Provenance != SourceFast {
		t.Fatalf("unexpected provenance: %q", p.Provenance)
	}
}

func TestConfidenceCapsAtHundred(t *testing.T) {
	languages := make([]string, 0, 20)
	for _, l := range []string{
		"Go", "Rust", "Python", "Java", "Ruby", "PHP", "Swift", "Kotlin",
		"Scala", "Dart", "Elixir", "Haskell", "Clojure", "Julia", "Perl",
		"Lua", "Bash", "SQL", "HTML", "CSS",
	} {
		languages = append(languages, l)
	}

	p := New(languages, nil, nil, Advanced, SourceFast)
	if p.Confidence != 100 {
		t.Fatalf("expected confidence capped at 100, got %d", p.Confidence)
	}
}

func TestEmptyProfileHasZeroConfidence(t *testing.T) {
	p := New(nil, nil, nil, Beginner, SourceFast)
	if p.Confidence != 0 {
		t.Fatalf("expected confidence 0, got %d", p.Confidence)
	}
	if p.TotalSkills() != 0 {
		t.Fatalf("expected no skills, got %d", p.TotalSkills())
	}
}

func TestContains(t *testing.T) {
	set := []string{"Go", "Python"}
	if !Contains(set, "go") {
		t.Fatalf("expected case-insensitive membership")
	}
	if Contains(set, "Rust") {
		t.Fatalf("did not expect Rust in set")
	}
}

func TestPartialIsEmpty(t *testing.T) {
	var p *Partial
	if !p.IsEmpty() {
		t.Fatalf("nil partial must be empty")
	}
	if !(&Partial{Confidence: 85}).IsEmpty() {
		t.Fatalf("confidence alone does not make a partial non-empty")
	}
	if (&Partial{Languages: []string{"Go"}}).IsEmpty() {
		t.Fatalf("partial with languages must not be empty")
	}
	if (&Partial{ExperienceLevel: Advanced}).IsEmpty() {
		t.Fatalf("partial with a level must not be empty")
	}
}
