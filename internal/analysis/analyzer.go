// Package analysis orchestrates the extraction pipeline: the rule-based
// pass always runs, the AI pass is an optional overlay, and the two results
// are merged into one profile.
package analysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/gitscout/gitscout/internal/ai"
	"github.com/gitscout/gitscout/internal/extract"
	"github.com/gitscout/gitscout/internal/profile"
)

type Analyzer struct {
	fast   *extract.Extractor
	ai     ai.Extractor
	logger *zap.Logger
}

func New(fast *extract.Extractor, aiExtractor ai.Extractor, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if aiExtractor == nil {
		aiExtractor = ai.Disabled{}
	}

	return &Analyzer{
		fast:   fast,
		ai:     aiExtractor,
		logger: logger,
	}
}

// AIAvailable reports whether the AI overlay is configured.
func (a *Analyzer) AIAvailable() bool {
	return a.ai.Available()
}

// Analyze produces a skill profile for the text. The rule-based result is
// always computed and always usable; when enhance is set and an AI extractor
// is configured, its partial is merged on top. An AI failure degrades to the
// rule-based result alone.
func (a *Analyzer) Analyze(ctx context.Context, text string, enhance bool) *profile.Profile {
	fastProfile := a.fast.Analyze(text)

	if !enhance {
		return fastProfile
	}

	if !a.ai.Available() {
		a.logger.Debug("ai enhancement requested but no extractor is configured")
		return fastProfile
	}

	a.logger.Info("enhancing profile with ai extraction")
	partial := a.ai.Analyze(ctx, text)
	merged := profile.Merge(fastProfile, partial)

	a.logger.Info("analysis complete",
		zap.String("provenance", string(merged.Provenance)),
		zap.Int("languages", len(merged.Languages)),
		zap.Int("technologies", len(merged.Technologies)),
		zap.Int("interests", len(merged.Interests)),
		zap.Int("confidence", merged.Confidence),
	)

	return merged
}
