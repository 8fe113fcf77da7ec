package match

import (
	"strings"
	"time"

	"github.com/gitscout/gitscout/internal/github"
	"github.com/gitscout/gitscout/internal/profile"
)

// Repository rule weights.
const (
	repoLanguageWeight = 30

	repoTopicPerMatch = 10
	repoTopicCap      = 40

	repoRecencyWeek    = 20
	repoRecencyMonth   = 15
	repoRecencyQuarter = 10
	repoRecencyHalf    = 5

	repoOpenIssuesBonus = 10
)

// ScoreRepository scores a repository against a profile: primary language,
// topic overlap with the profile's interests, update recency relative to
// now, and whether there are open issues to pick up. Clamped to [0, 100].
func ScoreRepository(p *profile.Profile, repo *github.Repository, now time.Time) int {
	if p == nil || repo == nil {
		return 0
	}

	score := 0

	if repo.Language != "" && profile.Contains(p.Languages, repo.Language) {
		score += repoLanguageWeight
	}

	topicPoints := countTopicMatches(repo.Topics, p.Interests) * repoTopicPerMatch
	if topicPoints > repoTopicCap {
		topicPoints = repoTopicCap
	}
	score += topicPoints

	score += recencyPoints(repo.UpdatedAt, now)

	if repo.OpenIssuesCount > 0 {
		score += repoOpenIssuesBonus
	}

	return clampScore(score)
}

// countTopicMatches counts repository topics overlapping any profile
// interest. Overlap is substring containment in either direction, so topic
// "machine-learning" matches interest "machine learning" only via an exact
// piece, while "web" matches "webassembly".
func countTopicMatches(topics, interests []string) int {
	count := 0
	for _, topic := range topics {
		topic = strings.ToLower(topic)
		for _, interest := range interests {
			interest = strings.ToLower(interest)
			if strings.Contains(topic, interest) || strings.Contains(interest, topic) {
				count++
				break
			}
		}
	}
	return count
}

func recencyPoints(updatedAt string, now time.Time) int {
	updated, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return 0
	}

	days := int(now.Sub(updated).Hours() / 24)
	switch {
	case days < 7:
		return repoRecencyWeek
	case days < 30:
		return repoRecencyMonth
	case days < 90:
		return repoRecencyQuarter
	case days < 180:
		return repoRecencyHalf
	}
	return 0
}
