package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/gitscout/gitscout/internal/analysis"
	"github.com/gitscout/gitscout/internal/extract"
	"github.com/gitscout/gitscout/internal/github"
	"github.com/gitscout/gitscout/internal/logger"
	"github.com/gitscout/gitscout/internal/profile"
	"github.com/gitscout/gitscout/internal/recommend"
	"github.com/gitscout/gitscout/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowMatches        = "Show top matches"
	PromptReportByRepository = "Report by repository"
	PromptShowRepositories   = "Show matching repositories"
	PromptIssuesToFile       = "Dump issues to file"
	PromptExit               = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowMatches, PromptReportByRepository, PromptShowRepositories, PromptIssuesToFile, PromptExit},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <resume.txt>",
	Short: "Find open-source issues matching a resume or a saved skill profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		recommendRun(cmd, path)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().BoolP("enhance", "e", false, "enhance the rule-based extraction with the configured ai provider")
	recommendCmd.Flags().StringP("profile", "p", "", "a previously saved profile json, skips resume analysis")
	recommendCmd.Flags().BoolP("non-interactive", "y", false, "print ranked matches as json and exit without prompting")
}

func recommendRun(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	skillProfile, err := loadOrAnalyzeProfile(ctx, cmd, config, path, logger)
	if err != nil {
		logger.Fatal("building a skill profile", zap.Error(err))
	}

	logger.Info("skill profile ready",
		zap.Strings("languages", skillProfile.Languages),
		zap.String("experience", string(skillProfile.ExperienceLevel)),
		zap.Int("confidence", skillProfile.Confidence),
	)

	client := github.New(ctx, logger, resolveGithubToken(config, logger))
	if config.GitHub != nil && config.GitHub.UserAgent != "" {
		client.UserAgent = config.GitHub.UserAgent
	}

	recommender := recommend.New(client, logger)

	issues, err := recommender.Issues(skillProfile)
	if err != nil {
		logger.Fatal("searching for issues", zap.Error(err))
	}

	if len(issues) == 0 {
		logger.Info("exiting", zap.String("reason", "no matching issues found"))
		return
	}

	if cmd.Flag("non-interactive").Value.String() == "true" {
		pretty, _ := json.MarshalIndent(issues, "", "  ")
		fmt.Println(string(pretty))
		return
	}

	for {
		logger.Info("current list of matches", zap.Int("count", len(issues)))

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, recommender, skillProfile, issues, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, recommender *recommend.Recommender, p *profile.Profile, issues []*recommend.RankedIssue, logger *zap.Logger) error {
	switch action {
	case PromptShowMatches:
		for _, ranked := range issues {
			fmt.Printf("%3d%%  %s\n      %s\n", ranked.Score, ranked.Issue.Title, ranked.Issue.HTMLURL)
			for _, reason := range ranked.Reasons {
				fmt.Printf("      - %s\n", reason)
			}
		}
		return nil
	case PromptReportByRepository:
		pretty, _ := json.MarshalIndent(reportByRepository(issues), "", "  ")
		logger.Info(string(pretty), zap.Int("issues count", len(issues)))
		return nil
	case PromptShowRepositories:
		repos, err := recommender.Repositories(p)
		if err != nil {
			return fmt.Errorf("searching for repositories: %w", err)
		}
		for _, ranked := range repos {
			fmt.Printf("%3d%%  %s (%d stars, %d open issues)\n      %s\n",
				ranked.Score, ranked.Repository.FullName,
				ranked.Repository.StargazersCount, ranked.Repository.OpenIssuesCount,
				ranked.Repository.HTMLURL,
			)
		}
		return nil
	case PromptIssuesToFile:
		set := &github.Issues{TotalCount: len(issues)}
		for _, ranked := range issues {
			set.Items = append(set.Items, ranked.Issue)
		}
		filename, err := set.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// loadOrAnalyzeProfile builds the skill profile either from a saved profile
// json or by analyzing the given resume text.
func loadOrAnalyzeProfile(ctx context.Context, cmd *cobra.Command, config *Config, path string, logger *zap.Logger) (*profile.Profile, error) {
	if profilePath := cmd.Flag("profile").Value.String(); profilePath != "" {
		data, err := os.ReadFile(profilePath)
		if err != nil {
			return nil, fmt.Errorf("reading profile file: %w", err)
		}

		saved := &profile.Profile{}
		if err := json.Unmarshal(data, saved); err != nil {
			return nil, fmt.Errorf("parsing profile file: %w", err)
		}
		return saved, nil
	}

	if path == "" {
		return nil, errors.New("a resume file or the --profile flag is required")
	}

	text, err := readResumeText(path)
	if err != nil {
		return nil, err
	}

	enhance := cmd.Flag("enhance").Value.String() == "true"
	analyzer := analysis.New(extract.New(logger), newAIExtractor(ctx, config, enhance, logger), logger)

	return analyzer.Analyze(ctx, text, enhance), nil
}

// resolveGithubToken loads the search token. The token is optional, so a
// missing one only lowers the rate limit.
func resolveGithubToken(config *Config, logger *zap.Logger) string {
	githubCfg := &GitHubConfig{}
	if config != nil && config.GitHub != nil {
		githubCfg = config.GitHub
	}

	token, err := secrets.Load(secrets.Source{
		Name:  "github token",
		Value: githubCfg.Token,
		File:  githubCfg.TokenFile,
		Env:   "GITHUB_TOKEN",
	})
	if err != nil {
		logger.Warn("no github token configured, using unauthenticated requests with lower rate limits",
			zap.String("hint", "set GITHUB_TOKEN or the 'github.token' key in the configuration file"),
		)
		return ""
	}

	return token
}

func reportByRepository(issues []*recommend.RankedIssue) map[string]int {
	report := make(map[string]int)
	for _, ranked := range issues {
		repo := ranked.Issue.RepoFullName()
		if repo == "" {
			repo = "unknown"
		}
		report[repo]++
	}
	return report
}
