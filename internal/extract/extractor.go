// Package extract implements the rule-based resume analyzer. It scans raw
// text against the vocabulary tables and experience heuristics and always
// produces a valid profile, degrading to an empty one for degenerate input.
package extract

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/gitscout/gitscout/internal/profile"
	"github.com/gitscout/gitscout/internal/vocab"
)

var (
	languagePatterns  = compileTokens(vocab.Languages)
	frameworkPatterns = compileTokens(vocab.Frameworks)
	devopsPatterns    = compileTokens(vocab.DevOpsTools)
	datastorePatterns = compileTokens(vocab.Datastores)

	// Experience indicator groups, evaluated against the raw text. Every
	// matching group contributes its severity; the maximum wins, so a
	// resume mentioning both "student" and "Senior Engineer" classifies
	// as advanced.
	beginnerIndicators = compilePatterns(
		`\b(0-1|1)\s*years?\s*(of)?\s*experience`,
		`\bjunior\b`,
		`\bentry\s*level\b`,
		`\bfreshers?\b`,
		`\bintern\b`,
		`\bstudent\b`,
		`\blearning\b`,
		`\bnew\s*grad(uate)?\b`,
	)
	intermediateIndicators = compilePatterns(
		`\b(2|3|4|5)\s*\+?\s*years?\s*(of)?\s*experience`,
		`\bmid[\s-]?level\b`,
		`\bsoftware\s*engineer\b`,
		`\bdeveloper\b`,
	)
	advancedIndicators = compilePatterns(
		`\b(5|6|7|8|9|10|\d{2})\s*\+?\s*years?\s*(of)?\s*experience`,
		`\bsenior\b`,
		`\bstaff\b`,
		`\bprincipal\b`,
		`\blead\b`,
		`\barchitect\b`,
		`\bmanager\b`,
		`\bdirector\b`,
		`\bhead\s*of\b`,
	)
)

// compileTokens wraps each vocabulary entry in a case-insensitive
// word-boundary pattern. Entries are already regex-safe.
func compileTokens(tokens []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(tokens))
	for _, token := range tokens {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+token+`\b`))
	}
	return patterns
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+expr))
	}
	return patterns
}

// Extractor is the fast, deterministic resume analyzer.
type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Analyze scans text and returns a profile with provenance "fast". It never
// fails: text with no recognizable content yields an empty profile with
// confidence 0. Minimum-length validation is the caller's concern.
func (e *Extractor) Analyze(text string) *profile.Profile {
	lowered := strings.ToLower(text)

	languages := scanTokens(languagePatterns, text)

	technologies := scanTokens(frameworkPatterns, text)
	technologies = append(technologies, scanTokens(devopsPatterns, text)...)
	technologies = append(technologies, scanTokens(datastorePatterns, text)...)

	interests := scanInterests(lowered)

	level := classifyExperience(text)

	result := profile.New(languages, technologies, interests, level, profile.SourceFast)

	e.logger.Debug("fast extraction finished",
		zap.Int("languages", len(result.Languages)),
		zap.Int("technologies", len(result.Technologies)),
		zap.Int("interests", len(result.Interests)),
		zap.String("experience_level", string(result.ExperienceLevel)),
		zap.Int("confidence", result.Confidence),
	)

	return result
}

// scanTokens collects the canonical form of every vocabulary token that
// occurs in the text. The first matched substring decides the spelling
// passed to canonicalization.
func scanTokens(patterns []*regexp.Regexp, text string) []string {
	var found []string
	for _, pattern := range patterns {
		if match := pattern.FindString(text); match != "" {
			found = append(found, vocab.Canonical(match))
		}
	}
	return found
}

// scanInterests tests each interest category against the lowercased text.
// The first keyword hit claims the category; remaining keywords of that
// category are skipped.
func scanInterests(lowered string) []string {
	var found []string
	for _, interest := range vocab.Interests {
		for _, keyword := range interest.Keywords {
			if strings.Contains(lowered, keyword) {
				found = append(found, interest.Name)
				break
			}
		}
	}
	return found
}

// classifyExperience evaluates the three indicator groups and keeps the
// maximum severity observed. Ties favor seniority; no indicator at all
// defaults to beginner.
func classifyExperience(text string) profile.ExperienceLevel {
	severity := 0
	for _, pattern := range advancedIndicators {
		if pattern.MatchString(text) {
			severity = max(severity, profile.Advanced.Severity())
		}
	}
	for _, pattern := range intermediateIndicators {
		if pattern.MatchString(text) {
			severity = max(severity, profile.Intermediate.Severity())
		}
	}
	for _, pattern := range beginnerIndicators {
		if pattern.MatchString(text) {
			severity = max(severity, profile.Beginner.Severity())
		}
	}

	switch {
	case severity >= profile.Advanced.Severity():
		return profile.Advanced
	case severity >= profile.Intermediate.Severity():
		return profile.Intermediate
	default:
		return profile.Beginner
	}
}
