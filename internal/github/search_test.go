package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestBuildQueryIssueParams(t *testing.T) {
	params := &IssueSearchParams{
		Terms:      "memory leak",
		Labels:     []string{"good first issue", "help-wanted"},
		Language:   "Go",
		NoAssignee: true,
		Sort:       "updated",
		PerPage:    30,
	}

	got := buildQuery(params)
	want := []string{
		"memory leak",
		`label:"good first issue"`,
		"label:help-wanted",
		"language:Go",
		"no:assignee",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("buildQuery = %v, want %v", got, want)
	}
}

func TestBuildQuerySkipsEmptyFields(t *testing.T) {
	if got := buildQuery(&IssueSearchParams{}); len(got) != 0 {
		t.Fatalf("expected no qualifiers for empty params, got %v", got)
	}
}

func TestBuildQueryRepositoryParams(t *testing.T) {
	params := &RepositorySearchParams{
		Language:   "Rust",
		Topics:     []string{"cli"},
		MinStars:   100,
		HelpWanted: true,
	}

	got := buildQuery(params)
	want := []string{
		"language:Rust",
		"topic:cli",
		"stars:>=100",
		"help-wanted-issues:>0",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("buildQuery = %v, want %v", got, want)
	}
}

func TestBuildQueryTrendingShape(t *testing.T) {
	params := &RepositorySearchParams{
		Language:   "Go",
		MinStars:   50,
		PushedFrom: ">2026-01-01",
	}

	got := buildQuery(params)
	want := []string{"language:Go", "stars:>=50", "pushed:>2026-01-01"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("buildQuery = %v, want %v", got, want)
	}
}

func TestRequestParamsCapsPerPage(t *testing.T) {
	values := requestParams("stars", "desc", 500)
	if values.Get("per_page") != "100" {
		t.Fatalf("expected per_page capped at 100, got %q", values.Get("per_page"))
	}
	if values.Get("sort") != "stars" || values.Get("order") != "desc" {
		t.Fatalf("unexpected request params: %v", values)
	}
}

func searchServer(t *testing.T, response map[string]any, capture *map[string][]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = r.URL.Query()
		}
		if r.Header.Get("Accept") != acceptHeader {
			t.Errorf("unexpected Accept header: %q", r.Header.Get("Accept"))
		}
		if r.Header.Get("X-GitHub-Api-Version") != apiVersion {
			t.Errorf("missing api version header")
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			t.Errorf("encoding response: %v", err)
		}
	}))
}

func TestSearchIssuesFiltersPullRequests(t *testing.T) {
	response := map[string]any{
		"total_count": 2,
		"items": []map[string]any{
			{
				"id":     int64(101),
				"number": 7,
				"title":  "Fix flaky test",
				"labels": []map[string]any{{"name": "Good First Issue"}},
				"repository_url": "https://api.github.com/repos/acme/widget",
			},
			{
				"id":           int64(102),
				"title":        "Some pull request",
				"pull_request": map[string]any{"url": "https://api.github.com/repos/acme/widget/pulls/8"},
			},
		},
	}

	var query map[string][]string
	server := searchServer(t, response, &query)
	defer server.Close()

	client := New(context.Background(), nil, "test-token")
	client.APIURL = server.URL

	issues, err := client.SearchIssues(&IssueSearchParams{Language: "Go", Labels: []string{"good first issue"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if issues.Len() != 1 {
		t.Fatalf("expected the pull request filtered out, got %d items", issues.Len())
	}

	issue := issues.Items[0]
	if issue.ID != 101 || issue.Number != 7 {
		t.Fatalf("unexpected issue decoded: %+v", issue)
	}
	if issue.Language != "Go" {
		t.Fatalf("expected query language carried onto the issue, got %q", issue.Language)
	}
	if got := issue.LabelNames(); len(got) != 1 || got[0] != "good first issue" {
		t.Fatalf("unexpected labels: %v", got)
	}
	if issue.RepoFullName() != "acme/widget" {
		t.Fatalf("unexpected repo name: %q", issue.RepoFullName())
	}

	q := query["q"]
	if len(q) != 1 {
		t.Fatalf("expected one q param, got %v", query)
	}
	for _, part := range []string{"is:issue", "state:open", `label:"good first issue"`, "language:Go"} {
		if !strings.Contains(q[0], part) {
			t.Fatalf("expected %q in query %q", part, q[0])
		}
	}
}

func TestSearchRepositories(t *testing.T) {
	response := map[string]any{
		"total_count": 1,
		"items": []map[string]any{
			{
				"id":                int64(55),
				"full_name":         "acme/widget",
				"language":          "Go",
				"stargazers_count":  1200,
				"open_issues_count": 7,
				"topics":            []string{"cli", "devops"},
			},
		},
	}

	server := searchServer(t, response, nil)
	defer server.Close()

	client := New(context.Background(), nil, "")
	client.APIURL = server.URL

	repos, err := client.SearchRepositories(&RepositorySearchParams{Language: "Go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repos.Len() != 1 {
		t.Fatalf("expected 1 repository, got %d", repos.Len())
	}
	repo := repos.Items[0]
	if repo.FullName != "acme/widget" || repo.StargazersCount != 1200 {
		t.Fatalf("unexpected repository decoded: %+v", repo)
	}
	if len(repo.Topics) != 2 {
		t.Fatalf("unexpected topics: %v", repo.Topics)
	}
}

func TestSearchIssuesErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "API rate limit exceeded"}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := New(context.Background(), nil, "")
	client.APIURL = server.URL

	if _, err := client.SearchIssues(nil); err == nil {
		t.Fatalf("expected an error for a non-200 response")
	}
}

func TestIssuesFindByID(t *testing.T) {
	set := &Issues{Items: []*Issue{{ID: 1}, {ID: 2}}}
	if set.FindByID(2) == nil {
		t.Fatalf("expected to find issue 2")
	}
	if set.FindByID(3) != nil {
		t.Fatalf("did not expect to find issue 3")
	}
}
