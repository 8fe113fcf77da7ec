package recommend

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gitscout/gitscout/internal/github"
	"github.com/gitscout/gitscout/internal/profile"
)

type fakeSearcher struct {
	mu       sync.Mutex
	queries  []*github.IssueSearchParams
	results  map[string]*github.Issues
	failures map[string]error
	repos    *github.Repositories
	err      error
}

func (f *fakeSearcher) SearchIssues(params *github.IssueSearchParams) (*github.Issues, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, params)
	if f.err != nil {
		return nil, f.err
	}
	if err, ok := f.failures[params.Language]; ok {
		return nil, err
	}
	if result, ok := f.results[params.Language]; ok {
		return result, nil
	}
	return &github.Issues{}, nil
}

func (f *fakeSearcher) SearchRepositories(*github.RepositorySearchParams) (*github.Repositories, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.repos == nil {
		return &github.Repositories{}, nil
	}
	return f.repos, nil
}

func issueWithLabels(id int64, title string, labels ...string) *github.Issue {
	issue := &github.Issue{ID: id, Title: title}
	for _, name := range labels {
		issue.Labels = append(issue.Labels, struct {
			Name        string `json:"name,omitempty"`
			Color       string `json:"color,omitempty"`
			Description string `json:"description,omitempty"`
		}{Name: name})
	}
	return issue
}

func beginnerProfile() *profile.Profile {
	return &profile.Profile{
		Languages:       []string{"Go", "Python"},
		Technologies:    []string{"Docker"},
		Interests:       []string{"devops"},
		ExperienceLevel: profile.Beginner,
	}
}

func TestIssuesRanksByScore(t *testing.T) {
	goIssues := &github.Issues{Items: []*github.Issue{
		issueWithLabels(1, "Refactor build scripts"),
		issueWithLabels(2, "Docker support", "good first issue"),
	}}
	for _, issue := range goIssues.Items {
		issue.Language = "Go"
	}

	searcher := &fakeSearcher{results: map[string]*github.Issues{"Go": goIssues}}
	recommender := newRecommender(searcher, searcher, nil)

	ranked, err := recommender.Issues(beginnerProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked issues, got %d", len(ranked))
	}
	if ranked[0].Issue.ID != 2 {
		t.Fatalf("expected the labeled docker issue first, got %d", ranked[0].Issue.ID)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Fatalf("expected descending scores, got %d then %d", ranked[0].Score, ranked[1].Score)
	}
	if len(ranked[0].Reasons) == 0 {
		t.Fatalf("expected reasons on the top match")
	}
}

func TestIssuesDeduplicatesAcrossQueries(t *testing.T) {
	shared := issueWithLabels(7, "Shared issue", "good first issue")
	searcher := &fakeSearcher{results: map[string]*github.Issues{
		"Go":     {Items: []*github.Issue{shared}},
		"Python": {Items: []*github.Issue{issueWithLabels(7, "Shared issue", "good first issue")}},
	}}
	recommender := newRecommender(searcher, searcher, nil)

	ranked, err := recommender.Issues(beginnerProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ranked) != 1 {
		t.Fatalf("expected the duplicate collapsed, got %d items", len(ranked))
	}
}

func TestIssuesKeepsResultsWhenOneQueryFails(t *testing.T) {
	goIssue := issueWithLabels(3, "Docker cleanup", "good first issue")
	goIssue.Language = "Go"

	searcher := &fakeSearcher{
		results:  map[string]*github.Issues{"Go": {Items: []*github.Issue{goIssue}}},
		failures: map[string]error{"Python": errors.New("403 rate limit exceeded")},
	}
	recommender := newRecommender(searcher, searcher, nil)

	ranked, err := recommender.Issues(beginnerProfile())
	if err != nil {
		t.Fatalf("a single failed query must not fail the recommendation: %v", err)
	}

	if len(ranked) != 1 || ranked[0].Issue.ID != 3 {
		t.Fatalf("expected the surviving query's results, got %v", ranked)
	}
}

func TestIssuesFailsWhenEveryQueryFails(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("403 rate limit exceeded")}
	recommender := newRecommender(searcher, searcher, nil)

	ranked, err := recommender.Issues(beginnerProfile())
	if err == nil {
		t.Fatalf("expected an error when no query succeeded")
	}
	if ranked != nil {
		t.Fatalf("expected no ranking, got %v", ranked)
	}
}

func TestIssuesQueryShape(t *testing.T) {
	searcher := &fakeSearcher{}
	recommender := newRecommender(searcher, searcher, nil)

	if _, err := recommender.Issues(beginnerProfile()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two languages plus one technology query.
	if len(searcher.queries) != 3 {
		t.Fatalf("expected 3 queries, got %d", len(searcher.queries))
	}

	languages := map[string]bool{}
	for _, q := range searcher.queries {
		if q.Language != "" {
			languages[q.Language] = true
		}
		if len(q.Labels) != 1 || q.Labels[0] != "good first issue" {
			t.Fatalf("beginner queries must carry the good first issue label, got %v", q.Labels)
		}
		if !q.NoAssignee {
			t.Fatalf("queries must exclude assigned issues")
		}
	}
	if !languages["Go"] || !languages["Python"] {
		t.Fatalf("expected one query per profile language, got %v", languages)
	}
}

func TestIssuesLimitsLanguageQueries(t *testing.T) {
	p := &profile.Profile{
		Languages:       []string{"Go", "Python", "Rust", "Java", "Ruby"},
		ExperienceLevel: profile.Advanced,
	}

	searcher := &fakeSearcher{}
	recommender := newRecommender(searcher, searcher, nil)

	if _, err := recommender.Issues(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(searcher.queries) != maxLanguageQueries {
		t.Fatalf("expected %d queries, got %d", maxLanguageQueries, len(searcher.queries))
	}
	for _, q := range searcher.queries {
		if len(q.Labels) != 0 {
			t.Fatalf("advanced profiles must search without difficulty labels, got %v", q.Labels)
		}
	}
}

func TestIssuesEmptyProfileFallbackQuery(t *testing.T) {
	searcher := &fakeSearcher{}
	recommender := newRecommender(searcher, searcher, nil)

	if _, err := recommender.Issues(&profile.Profile{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(searcher.queries) != 1 {
		t.Fatalf("expected one fallback query, got %d", len(searcher.queries))
	}
	if len(searcher.queries[0].Labels) != 1 || searcher.queries[0].Labels[0] != "good first issue" {
		t.Fatalf("unexpected fallback query: %+v", searcher.queries[0])
	}
}

func TestIssuesCapsResults(t *testing.T) {
	items := make([]*github.Issue, 0, resultLimit+10)
	for i := 0; i < resultLimit+10; i++ {
		items = append(items, issueWithLabels(int64(i+1), "Issue", "good first issue"))
	}

	searcher := &fakeSearcher{results: map[string]*github.Issues{"Go": {Items: items}}}
	recommender := newRecommender(searcher, searcher, nil)

	p := &profile.Profile{Languages: []string{"Go"}, ExperienceLevel: profile.Beginner}
	ranked, err := recommender.Issues(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ranked) != resultLimit {
		t.Fatalf("expected the ranking capped at %d, got %d", resultLimit, len(ranked))
	}
}

func TestRepositoriesRanked(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -2).Format(time.RFC3339)
	stale := now.AddDate(-1, 0, 0).Format(time.RFC3339)

	searcher := &fakeSearcher{repos: &github.Repositories{Items: []*github.Repository{
		{ID: 1, FullName: "acme/stale", Language: "Go", UpdatedAt: stale},
		{ID: 2, FullName: "acme/active", Language: "Go", UpdatedAt: recent, OpenIssuesCount: 4, Topics: []string{"devops"}},
	}}}

	recommender := newRecommender(searcher, searcher, nil)
	recommender.now = func() time.Time { return now }

	ranked, err := recommender.Repositories(beginnerProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ranked) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(ranked))
	}
	if ranked[0].Repository.ID != 2 {
		t.Fatalf("expected the active repository first, got %+v", ranked[0].Repository)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Fatalf("expected descending scores, got %d then %d", ranked[0].Score, ranked[1].Score)
	}
}

func TestNilProfile(t *testing.T) {
	searcher := &fakeSearcher{}
	recommender := newRecommender(searcher, searcher, nil)

	if ranked, err := recommender.Issues(nil); err != nil || ranked != nil {
		t.Fatalf("expected nil result for nil profile, got %v / %v", ranked, err)
	}
	if ranked, err := recommender.Repositories(nil); err != nil || ranked != nil {
		t.Fatalf("expected nil result for nil profile, got %v / %v", ranked, err)
	}
}
