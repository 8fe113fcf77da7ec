// Package profile defines the skill profile produced by resume analysis and
// the merge rules for combining the fast and AI extraction results.
package profile

import (
	"sort"
	"strings"
)

// ExperienceLevel is the coarse seniority bucket of a profile.
type ExperienceLevel string

const (
	Beginner     ExperienceLevel = "beginner"
	Intermediate ExperienceLevel = "intermediate"
	Advanced     ExperienceLevel = "advanced"
)

// confidenceTargetSkills is the number of distinct extracted tokens that
// corresponds to full extraction confidence.
const confidenceTargetSkills = 15

// ParseExperienceLevel validates a free-form level string against the enum.
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	switch ExperienceLevel(strings.ToLower(strings.TrimSpace(s))) {
	case Beginner:
		return Beginner, true
	case Intermediate:
		return Intermediate, true
	case Advanced:
		return Advanced, true
	default:
		return "", false
	}
}

// Severity orders levels for comparisons: beginner 1, intermediate 2,
// advanced 3. Unknown levels map to 0.
func (l ExperienceLevel) Severity() int {
	switch l {
	case Beginner:
		return 1
	case Intermediate:
		return 2
	case Advanced:
		return 3
	default:
		return 0
	}
}

// Provenance records which extractor(s) produced a profile.
type Provenance string

const (
	SourceFast   Provenance = "fast"
	SourceAI     Provenance = "ai"
	SourceHybrid Provenance = "hybrid"
)

// Profile is the structured summary of a resume. The three container fields
// are deduplicated sets of canonical strings, serialized as sorted arrays.
type Profile struct {
	Languages       []string        `json:"languages"`
	Technologies    []string        `json:"technologies"`
	Interests       []string        `json:"interests"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	Confidence      int             `json:"confidence"`
	Provenance      Provenance      `json:"provenance"`
}

// Partial is an incomplete profile produced by the AI extractor. Any field
// may be absent; absent fields contribute nothing during a merge.
type Partial struct {
	Languages       []string
	Technologies    []string
	Interests       []string
	ExperienceLevel ExperienceLevel
	Confidence      int
}

// IsEmpty reports whether the partial carries no extracted information.
func (p *Partial) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.Languages) == 0 && len(p.Technologies) == 0 &&
		len(p.Interests) == 0 && p.ExperienceLevel == ""
}

// New builds a profile from raw token sets, normalizing the containers and
// deriving confidence from their combined size.
func New(languages, technologies, interests []string, level ExperienceLevel, source Provenance) *Profile {
	p := &Profile{
		Languages:       NormalizeSet(languages),
		Technologies:    NormalizeSet(technologies),
		Interests:       NormalizeSet(interests),
		ExperienceLevel: level,
		Provenance:      source,
	}
	p.RecomputeConfidence()
	return p
}

// RecomputeConfidence derives confidence from the container sizes:
// min(100, round(100 * distinct / 15)). Confidence is never stored ad hoc.
func (p *Profile) RecomputeConfidence() {
	total := len(p.Languages) + len(p.Technologies) + len(p.Interests)
	confidence := (total*100 + confidenceTargetSkills/2) / confidenceTargetSkills
	if confidence > 100 {
		confidence = 100
	}
	p.Confidence = confidence
}

// TotalSkills returns the combined size of the three containers.
func (p *Profile) TotalSkills() int {
	return len(p.Languages) + len(p.Technologies) + len(p.Interests)
}

// NormalizeSet deduplicates tokens case-insensitively, drops empty entries
// and returns a sorted slice. The first-seen spelling of a token wins.
func NormalizeSet(tokens []string) []string {
	seen := make(map[string]string, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key := strings.ToLower(token)
		if _, ok := seen[key]; !ok {
			seen[key] = token
		}
	}

	result := make([]string, 0, len(seen))
	for _, token := range seen {
		result = append(result, token)
	}
	sort.Strings(result)
	return result
}

// Contains reports whether the set holds token, ignoring case.
func Contains(set []string, token string) bool {
	for _, entry := range set {
		if strings.EqualFold(entry, token) {
			return true
		}
	}
	return false
}
