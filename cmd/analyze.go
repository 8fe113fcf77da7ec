package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gitscout/gitscout/internal/ai"
	"github.com/gitscout/gitscout/internal/ai/gemini"
	"github.com/gitscout/gitscout/internal/analysis"
	"github.com/gitscout/gitscout/internal/extract"
	"github.com/gitscout/gitscout/internal/logger"
	"github.com/gitscout/gitscout/internal/profile"
	"github.com/gitscout/gitscout/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// minResumeLength is the shortest text worth analyzing. Anything below it is
// almost certainly a failed text extraction, not a resume.
const minResumeLength = 50

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume.txt>",
	Short: "Extract a skill profile from a plain-text resume",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyzeRun(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolP("enhance", "e", false, "enhance the rule-based extraction with the configured ai provider")
	analyzeCmd.Flags().StringP("output", "o", "", "write the profile json to a file instead of stdout")
}

func analyzeRun(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	text, err := readResumeText(path)
	if err != nil {
		logger.Fatal("reading resume text", zap.Error(err))
	}

	enhance := cmd.Flag("enhance").Value.String() == "true"
	analyzer := analysis.New(extract.New(logger), newAIExtractor(ctx, config, enhance, logger), logger)

	result := analyzer.Analyze(ctx, text, enhance)

	if err := writeProfile(result, cmd.Flag("output").Value.String()); err != nil {
		logger.Fatal("writing profile", zap.Error(err))
	}
}

func readResumeText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(string(data))
	if utf8.RuneCountInString(text) < minResumeLength {
		return "", fmt.Errorf("resume text is too short to analyze (%d characters, need at least %d)",
			utf8.RuneCountInString(text), minResumeLength)
	}

	return text, nil
}

// newAIExtractor wires the configured ai provider, or a disabled stub when
// enhancement was not requested or cannot be configured. A missing api key
// downgrades to the rule-based pipeline instead of failing the command.
func newAIExtractor(ctx context.Context, config *Config, enhance bool, logger *zap.Logger) ai.Extractor {
	if !enhance {
		return ai.Disabled{}
	}

	geminiCfg := &GeminiConfig{}
	if config != nil && config.AI != nil && config.AI.Gemini != nil {
		geminiCfg = config.AI.Gemini
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: geminiCfg.APIKey,
		File:  geminiCfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		logger.Warn("ai enhancement requested but not configured, using the rule-based extraction only",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or the 'ai.gemini.api-key' key in the configuration file"),
		)
		return ai.Disabled{}
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model, geminiCfg.MaxRetries, logger)
	if err != nil {
		logger.Warn("creating gemini client failed, using the rule-based extraction only", zap.Error(err))
		return ai.Disabled{}
	}

	return gemini.NewExtractor(generator, logger, geminiCfg.MaxLogLength)
}

func writeProfile(p *profile.Profile, path string) error {
	pretty, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	if path == "" {
		fmt.Println(string(pretty))
		return nil
	}

	return os.WriteFile(path, append(pretty, '\n'), 0o644)
}
