// Package recommend turns a skill profile into a ranked list of candidate
// issues and repositories. Searches fan out concurrently, results are
// deduplicated, scored and sorted; ranking is deterministic for a given set
// of search results.
package recommend

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gitscout/gitscout/internal/github"
	"github.com/gitscout/gitscout/internal/match"
	"github.com/gitscout/gitscout/internal/profile"
)

const (
	// Searching every profile language burns through the rate limit fast;
	// the first few carry almost all of the signal.
	maxLanguageQueries = 3
	perQueryResults    = 30
	resultLimit        = 25
)

type issueSearcher interface {
	SearchIssues(*github.IssueSearchParams) (*github.Issues, error)
}

type repositorySearcher interface {
	SearchRepositories(*github.RepositorySearchParams) (*github.Repositories, error)
}

// RankedIssue pairs an issue with its match result.
type RankedIssue struct {
	Issue   *github.Issue `json:"issue"`
	Score   int           `json:"score"`
	Reasons []string      `json:"reasons"`
}

// RankedRepository pairs a repository with its match score.
type RankedRepository struct {
	Repository *github.Repository `json:"repository"`
	Score      int                `json:"score"`
}

type Recommender struct {
	issues issueSearcher
	repos  repositorySearcher
	logger *zap.Logger
	now    func() time.Time
}

// New creates a recommender backed by the given search client.
func New(client *github.Client, logger *zap.Logger) *Recommender {
	return newRecommender(client, client, logger)
}

func newRecommender(issues issueSearcher, repos repositorySearcher, logger *zap.Logger) *Recommender {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Recommender{
		issues: issues,
		repos:  repos,
		logger: logger,
		now:    time.Now,
	}
}

// Issues searches for issues matching the profile and returns the top
// candidates ranked by match score.
func (r *Recommender) Issues(p *profile.Profile) ([]*RankedIssue, error) {
	if p == nil {
		return nil, nil
	}

	queries := r.buildIssueQueries(p)

	var (
		mu    sync.Mutex
		group errgroup.Group
		found []*github.Issue
		errs  []error
	)

	for _, params := range queries {
		group.Go(func() error {
			result, err := r.issues.SearchIssues(params)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// A single failed query must not cost the results of the
				// others; drop it and keep going.
				r.logger.Warn("issue search failed, skipping query",
					zap.String("language", params.Language),
					zap.Error(err),
				)
				errs = append(errs, err)
				return nil
			}

			found = append(found, result.Items...)
			return nil
		})
	}

	group.Wait()

	if len(errs) == len(queries) {
		return nil, fmt.Errorf("all issue searches failed: %w", errors.Join(errs...))
	}

	r.logger.Debug("issue searches finished",
		zap.Int("queries", len(queries)),
		zap.Int("failed", len(errs)),
		zap.Int("raw_results", len(found)),
	)

	ranked := rankIssues(p, dedupeIssues(found))
	if len(ranked) > resultLimit {
		ranked = ranked[:resultLimit]
	}
	return ranked, nil
}

// Repositories searches for repositories matching the profile and returns
// the top candidates ranked by match score.
func (r *Recommender) Repositories(p *profile.Profile) ([]*RankedRepository, error) {
	if p == nil {
		return nil, nil
	}

	params := &github.RepositorySearchParams{
		HelpWanted: true,
		Sort:       "stars",
		Order:      "desc",
		PerPage:    perQueryResults,
	}
	if len(p.Languages) > 0 {
		params.Language = p.Languages[0]
	}
	for _, interest := range p.Interests {
		params.Topics = append(params.Topics, strings.ReplaceAll(interest, " ", "-"))
	}

	result, err := r.repos.SearchRepositories(params)
	if err != nil {
		return nil, err
	}

	now := r.now()
	ranked := make([]*RankedRepository, 0, result.Len())
	for _, repo := range result.Items {
		ranked = append(ranked, &RankedRepository{
			Repository: repo,
			Score:      match.ScoreRepository(p, repo, now),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > resultLimit {
		ranked = ranked[:resultLimit]
	}
	return ranked, nil
}

// buildIssueQueries produces one search per top profile language plus one
// keyword search over the profile's technologies. Difficulty labels follow
// the profile's experience level; advanced profiles search unrestricted.
func (r *Recommender) buildIssueQueries(p *profile.Profile) []*github.IssueSearchParams {
	labels := difficultyLabels(p.ExperienceLevel)

	var queries []*github.IssueSearchParams

	languages := p.Languages
	if len(languages) > maxLanguageQueries {
		languages = languages[:maxLanguageQueries]
	}
	for _, language := range languages {
		queries = append(queries, &github.IssueSearchParams{
			Language:   language,
			Labels:     labels,
			NoAssignee: true,
			Sort:       "updated",
			Order:      "desc",
			PerPage:    perQueryResults,
		})
	}

	if len(p.Technologies) > 0 {
		terms := p.Technologies
		if len(terms) > maxLanguageQueries {
			terms = terms[:maxLanguageQueries]
		}
		queries = append(queries, &github.IssueSearchParams{
			Terms:      strings.Join(terms, " "),
			Labels:     labels,
			NoAssignee: true,
			Sort:       "updated",
			Order:      "desc",
			PerPage:    perQueryResults,
		})
	}

	if len(queries) == 0 {
		// Nothing extracted: fall back to a generic newcomer search.
		queries = append(queries, &github.IssueSearchParams{
			Labels:     []string{"good first issue"},
			NoAssignee: true,
			Sort:       "updated",
			Order:      "desc",
			PerPage:    perQueryResults,
		})
	}

	return queries
}

func difficultyLabels(level profile.ExperienceLevel) []string {
	switch level {
	case profile.Beginner:
		return []string{"good first issue"}
	case profile.Intermediate:
		return []string{"help wanted"}
	}
	return nil
}

// dedupeIssues drops issues already seen under the same ID, keeping the
// first occurrence. The same issue can surface from several queries.
func dedupeIssues(issues []*github.Issue) []*github.Issue {
	seen := make(map[int64]bool, len(issues))
	unique := make([]*github.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue == nil || seen[issue.ID] {
			continue
		}
		seen[issue.ID] = true
		unique = append(unique, issue)
	}
	return unique
}

func rankIssues(p *profile.Profile, issues []*github.Issue) []*RankedIssue {
	ranked := make([]*RankedIssue, 0, len(issues))
	for _, issue := range issues {
		result := match.ScoreIssue(p, issue)
		ranked = append(ranked, &RankedIssue{
			Issue:   issue,
			Score:   result.Score,
			Reasons: result.Reasons,
		})
	}

	// Stable sort plus the ID tie-break keeps ranking independent of the
	// order searches happened to return in.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Issue.ID < ranked[j].Issue.ID
	})

	return ranked
}
