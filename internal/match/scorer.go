// Package match scores candidate issues and repositories against a skill
// profile. Scoring is a pure function of its inputs: four weighted rules,
// summed and clamped to [0, 100].
package match

import (
	"fmt"
	"strings"

	"github.com/gitscout/gitscout/internal/github"
	"github.com/gitscout/gitscout/internal/profile"
	"github.com/gitscout/gitscout/internal/vocab"
)

// Rule weights.
const (
	languageMatchWeight = 35

	experienceFullWeight = 25
	// Credit for an adjacent difficulty bucket, e.g. an intermediate
	// profile picking up a beginner-labeled issue.
	experienceAdjacentWeight = 20
	// Advanced profiles can handle anything, so they always earn a
	// baseline without producing a reason.
	experienceAdvancedBaseline = 15
	experienceAdvancedBonus    = 10

	technologyPerMatch = 12
	technologyCap      = 25

	interestWeight = 15

	maxScore   = 100
	maxReasons = 3
)

// Difficulty label buckets. Matching is by substring, so "good first issue :tada:"
// still counts.
var (
	beginnerLabels     = []string{"good first issue", "beginner", "easy", "first-timers-only", "starter", "good-first-issue"}
	intermediateLabels = []string{"help wanted", "medium", "intermediate", "help-wanted"}
	advancedLabels     = []string{"advanced", "complex", "expert"}
)

// Result is the outcome of scoring a single candidate.
type Result struct {
	// Score is in [0, 100].
	Score int `json:"score"`
	// Reasons holds up to three explanations, ordered by which rule fired
	// first. Rules that contributed nothing leave no reason.
	Reasons []string `json:"reasons"`
}

// ScoreIssue scores one issue against a profile. Missing candidate fields
// (no language, no labels) zero out the corresponding rule rather than
// failing the computation.
func ScoreIssue(p *profile.Profile, issue *github.Issue) Result {
	if p == nil || issue == nil {
		return Result{Reasons: []string{}}
	}

	score := 0
	reasons := []string{}
	labels := issue.LabelNames()
	text := strings.ToLower(issue.Title + " " + strings.Join(labels, " "))

	// 1. Primary-language match.
	if issue.Language != "" && profile.Contains(p.Languages, issue.Language) {
		score += languageMatchWeight
		reasons = append(reasons, fmt.Sprintf("%s developer", issue.Language))
	}

	// 2. Experience-level alignment.
	expScore, expReason := experienceAlignment(p.ExperienceLevel, labels)
	score += expScore
	if expReason != "" {
		reasons = append(reasons, expReason)
	}

	// 3. Technology mentions in title and labels.
	techMatches := matchingTechnologies(p.Technologies, text)
	if len(techMatches) > 0 {
		points := len(techMatches) * technologyPerMatch
		if points > technologyCap {
			points = technologyCap
		}
		score += points
		reasons = append(reasons, technologyReason(techMatches))
	}

	// 4. Interest match. First interest with a keyword hit wins; no
	// stacking across interests.
	if interest := firstMatchingInterest(p.Interests, text); interest != "" {
		score += interestWeight
		reasons = append(reasons, fmt.Sprintf("Related to your interest in %s", interest))
	}

	return Result{
		Score:   clampScore(score),
		Reasons: capReasons(reasons),
	}
}

func experienceAlignment(level profile.ExperienceLevel, labels []string) (int, string) {
	hasBeginner := anyLabelContains(labels, beginnerLabels)
	hasIntermediate := anyLabelContains(labels, intermediateLabels)
	hasAdvanced := anyLabelContains(labels, advancedLabels)

	switch level {
	case profile.Beginner:
		if hasBeginner {
			return experienceFullWeight, "Good first issue"
		}
	case profile.Intermediate:
		if hasIntermediate || hasBeginner {
			return experienceAdjacentWeight, "Matches your experience level"
		}
	case profile.Advanced:
		if hasAdvanced {
			return experienceAdvancedBaseline + experienceAdvancedBonus, "Challenging issue for senior devs"
		}
		return experienceAdvancedBaseline, ""
	}

	return 0, ""
}

func anyLabelContains(labels, keywords []string) bool {
	for _, label := range labels {
		for _, keyword := range keywords {
			if strings.Contains(label, keyword) {
				return true
			}
		}
	}
	return false
}

// matchingTechnologies returns the profile technologies mentioned in the
// candidate text, preserving profile order.
func matchingTechnologies(technologies []string, text string) []string {
	var matches []string
	for _, tech := range technologies {
		if tech == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(tech)) {
			matches = append(matches, tech)
		}
	}
	return matches
}

func technologyReason(matches []string) string {
	if len(matches) > 2 {
		matches = matches[:2]
	}
	return "Uses " + strings.Join(matches, ", ")
}

// firstMatchingInterest tests each profile interest's keyword list against
// the candidate text. Unknown interests fall back to their own name as the
// sole keyword.
func firstMatchingInterest(interests []string, text string) string {
	for _, interest := range interests {
		keywords := vocab.InterestKeywords(interest)
		if len(keywords) == 0 {
			keywords = []string{strings.ToLower(interest)}
		}
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				return interest
			}
		}
	}
	return ""
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func capReasons(reasons []string) []string {
	if len(reasons) > maxReasons {
		return reasons[:maxReasons]
	}
	return reasons
}
