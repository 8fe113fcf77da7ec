package profile

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gitscout/gitscout/internal/vocab"
)

// titleCaser formats AI-supplied tokens that have no canonical alias.
// Unicode-aware casing, same base language for every call.
var titleCaser = cases.Title(language.English)

// Merge combines the fast extraction result with an optional AI partial.
// The fast profile is the authoritative baseline: an empty partial passes it
// through unchanged. A non-empty partial unions the container sets, takes
// the AI experience level when present and recombines confidence as
// min(100, fast + ai/2).
func Merge(fast *Profile, partial *Partial) *Profile {
	if fast == nil {
		return nil
	}
	if partial.IsEmpty() {
		return fast
	}

	merged := &Profile{
		Languages:       unionSets(fast.Languages, partial.Languages),
		Technologies:    unionSets(fast.Technologies, partial.Technologies),
		Interests:       unionInterests(fast.Interests, partial.Interests),
		ExperienceLevel: fast.ExperienceLevel,
		Provenance:      SourceHybrid,
	}

	if partial.ExperienceLevel.Severity() > 0 {
		merged.ExperienceLevel = partial.ExperienceLevel
	}

	merged.Confidence = fast.Confidence + partial.Confidence/2
	if merged.Confidence > 100 {
		merged.Confidence = 100
	}

	return merged
}

// unionSets merges the baseline set with extra tokens. Extra tokens are
// resolved through the alias table; tokens the table does not know are
// title-cased so AI output stays presentable next to canonical entries.
func unionSets(base, extra []string) []string {
	combined := make([]string, 0, len(base)+len(extra))
	combined = append(combined, base...)
	for _, token := range extra {
		combined = append(combined, displayForm(token))
	}
	return NormalizeSet(combined)
}

// unionInterests merges interest tags, keeping only tags from the closed
// interest vocabulary.
func unionInterests(base, extra []string) []string {
	combined := make([]string, 0, len(base)+len(extra))
	combined = append(combined, base...)
	for _, tag := range extra {
		if vocab.KnownInterest(tag) {
			combined = append(combined, tag)
		}
	}
	return NormalizeSet(combined)
}

// displayForm picks a presentable spelling for an AI-supplied token: the
// canonical alias when one exists, Title Case for all-lowercase tokens, and
// the token unchanged otherwise (mixed casing is assumed intentional).
func displayForm(token string) string {
	if canonical, ok := vocab.Lookup(token); ok {
		return canonical
	}
	if token == strings.ToLower(token) {
		return titleCaser.String(token)
	}
	return token
}
