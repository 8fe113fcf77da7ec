package github

import (
	"encoding/json"
	"os"
	"strings"
)

// Issue is a candidate issue as returned by the search API. Optional fields
// stay zero-valued when GitHub omits them; the scorer treats missing data
// as "rule contributes nothing".
type Issue struct {
	ID      int64  `json:"id,omitempty"`
	Number  int    `json:"number,omitempty"`
	Title   string `json:"title,omitempty"`
	Body    string `json:"body,omitempty"`
	HTMLURL string `json:"html_url,omitempty"`
	State   string `json:"state,omitempty"`
	Labels  []struct {
		Name        string `json:"name,omitempty"`
		Color       string `json:"color,omitempty"`
		Description string `json:"description,omitempty"`
	} `json:"labels,omitempty"`
	Comments      int    `json:"comments,omitempty"`
	Reactions     struct {
		TotalCount int `json:"total_count,omitempty"`
	} `json:"reactions,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
	RepositoryURL string `json:"repository_url,omitempty"`

	// Language is not part of the search payload; it is carried over from
	// the language qualifier of the query that found the issue.
	Language string `json:"-"`
}

// LabelNames returns the lowercased label names of the issue.
func (i *Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, label := range i.Labels {
		names = append(names, strings.ToLower(label.Name))
	}
	return names
}

// RepoFullName derives "owner/repo" from the repository API URL.
func (i *Issue) RepoFullName() string {
	_, after, found := strings.Cut(i.RepositoryURL, "/repos/")
	if !found {
		return ""
	}
	return after
}

// Issues is a search result set of issues.
type Issues struct {
	Items      []*Issue
	TotalCount int
}

func (s *Issues) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}

func (s *Issues) FindByID(id int64) *Issue {
	for _, issue := range s.Items {
		if issue.ID == id {
			return issue
		}
	}
	return nil
}

// DumpToTmpFile writes the issues as indented JSON to a temp file and
// returns its name.
func (s *Issues) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "issues_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Repository is a candidate repository as returned by the search API.
type Repository struct {
	ID              int64    `json:"id,omitempty"`
	Name            string   `json:"name,omitempty"`
	FullName        string   `json:"full_name,omitempty"`
	Description     string   `json:"description,omitempty"`
	HTMLURL         string   `json:"html_url,omitempty"`
	Language        string   `json:"language,omitempty"`
	StargazersCount int      `json:"stargazers_count,omitempty"`
	ForksCount      int      `json:"forks_count,omitempty"`
	OpenIssuesCount int      `json:"open_issues_count,omitempty"`
	Topics          []string `json:"topics,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
	PushedAt        string   `json:"pushed_at,omitempty"`
}

// Repositories is a search result set of repositories.
type Repositories struct {
	Items      []*Repository
	TotalCount int
}

func (s *Repositories) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}
