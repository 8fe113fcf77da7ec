package github

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	issueSearchPath = "/search/issues"
	repoSearchPath  = "/search/repositories"
)

// IssueSearchParams describes one issue search. The gh tag names the search
// qualifier a field renders to (see buildQuery); fields without a gh tag
// become plain request parameters handled by the client.
type IssueSearchParams struct {
	// Terms is free query text, passed through unqualified.
	Terms      string   `gh:"-" yaml:"terms"`
	Labels     []string `gh:"label" yaml:"labels"`
	Language   string   `gh:"language" yaml:"language"`
	State      string   `gh:"state" yaml:"state"`
	NoAssignee bool     `gh:"no:assignee" yaml:"no_assignee" mapstructure:"no_assignee"`

	Sort    string `yaml:"sort"`
	Order   string `yaml:"order"`
	PerPage int    `yaml:"per_page" mapstructure:"per_page"`
}

// RepositorySearchParams describes one repository search.
type RepositorySearchParams struct {
	Terms      string   `gh:"-" yaml:"terms"`
	Language   string   `gh:"language" yaml:"language"`
	Topics     []string `gh:"topic" yaml:"topics"`
	MinStars   int      `gh:"stars" yaml:"min_stars" mapstructure:"min_stars"`
	HelpWanted bool     `gh:"help-wanted-issues:>0" yaml:"help_wanted" mapstructure:"help_wanted"`
	PushedFrom string   `gh:"pushed" yaml:"pushed_from" mapstructure:"pushed_from"`

	Sort    string `yaml:"sort"`
	Order   string `yaml:"order"`
	PerPage int    `yaml:"per_page" mapstructure:"per_page"`
}

// SearchIssues runs an issue search. Pull requests leaking through the
// is:issue qualifier are dropped from the result. The language qualifier,
// when set, is recorded on every returned issue.
func (c *Client) SearchIssues(params *IssueSearchParams) (*Issues, error) {
	if params == nil {
		params = &IssueSearchParams{}
	}

	state := params.State
	if state == "" {
		state = "open"
	}

	q := []string{"is:issue", "state:" + state}
	q = append(q, buildQuery(params)...)

	items, total, err := c.searchItems(issueSearchPath, strings.Join(q, " "), requestParams(params.Sort, params.Order, params.PerPage))
	if err != nil {
		return nil, err
	}

	var issues []*Issue
	for _, item := range items {
		// The search API can return PRs even with is:issue; PRs carry a
		// pull_request key.
		if _, isPR := item["pull_request"]; isPR {
			continue
		}

		issue := &Issue{}
		if err := decodeItem(item, issue); err != nil {
			return nil, fmt.Errorf("decode issue item: %w", err)
		}
		issue.Language = params.Language
		issues = append(issues, issue)
	}

	return &Issues{Items: issues, TotalCount: total}, nil
}

// SearchRepositories runs a repository search.
func (c *Client) SearchRepositories(params *RepositorySearchParams) (*Repositories, error) {
	if params == nil {
		params = &RepositorySearchParams{}
	}

	q := buildQuery(params)
	if len(q) == 0 {
		// Default to repos that actually want contributions.
		q = []string{"help-wanted-issues:>0"}
	}

	items, total, err := c.searchItems(repoSearchPath, strings.Join(q, " "), requestParams(params.Sort, params.Order, params.PerPage))
	if err != nil {
		return nil, err
	}

	var repos []*Repository
	for _, item := range items {
		repo := &Repository{}
		if err := decodeItem(item, repo); err != nil {
			return nil, fmt.Errorf("decode repository item: %w", err)
		}
		repos = append(repos, repo)
	}

	return &Repositories{Items: repos, TotalCount: total}, nil
}

// TrendingRepositories searches for recently pushed repositories above a
// star floor, most starred first.
func (c *Client) TrendingRepositories(language string, pushedSince time.Time, minStars int) (*Repositories, error) {
	return c.SearchRepositories(&RepositorySearchParams{
		Language:   language,
		MinStars:   minStars,
		PushedFrom: ">" + pushedSince.Format("2006-01-02"),
		Sort:       "stars",
		Order:      "desc",
		PerPage:    maxPerPage,
	})
}

// buildQuery renders the gh-tagged fields of a params struct into search
// qualifiers. Tag forms:
//
//	gh:"-"       string appended as raw query text
//	gh:"label"   string or []string rendered as label:"value"
//	gh:"stars"   int > 0 rendered as stars:>=value
//	gh:"x:y"     bool rendered verbatim when true
func buildQuery(params any) []string {
	var q []string

	v := reflect.ValueOf(params).Elem()
	for _, field := range reflect.VisibleFields(v.Type()) {
		key := field.Tag.Get("gh")
		if key == "" {
			continue
		}

		value := v.FieldByIndex(field.Index)
		switch value.Kind() {
		case reflect.String:
			s := strings.TrimSpace(value.String())
			if s == "" {
				continue
			}
			if key == "-" {
				q = append(q, s)
				continue
			}
			q = append(q, qualifier(key, s))
		case reflect.Slice:
			for i := 0; i < value.Len(); i++ {
				if s := strings.TrimSpace(value.Index(i).String()); s != "" {
					q = append(q, qualifier(key, s))
				}
			}
		case reflect.Int:
			if n := value.Int(); n > 0 {
				q = append(q, fmt.Sprintf("%s:>=%d", key, n))
			}
		case reflect.Bool:
			if value.Bool() {
				q = append(q, key)
			}
		}
	}

	return q
}

// qualifier renders key:value, quoting values with spaces.
func qualifier(key, value string) string {
	if strings.ContainsAny(value, " \t") {
		return fmt.Sprintf("%s:%q", key, value)
	}
	return key + ":" + value
}

func requestParams(sort, order string, perPage int) url.Values {
	values := url.Values{}
	if sort != "" {
		values.Set("sort", sort)
	}
	if order != "" {
		values.Set("order", order)
	}
	if perPage > 0 {
		if perPage > maxPerPage {
			perPage = maxPerPage
		}
		values.Set("per_page", strconv.Itoa(perPage))
	}
	return values
}

// decodeItem maps one loosely-typed search item onto a typed struct, reusing
// the json tags for field naming.
func decodeItem(item map[string]any, target any) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(item)
}
