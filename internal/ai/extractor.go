package ai

import (
	"context"

	"github.com/gitscout/gitscout/internal/profile"
)

// Extractor is the optional AI-backed resume analyzer. Implementations are
// best-effort: Analyze never returns an error, converting every failure into
// an empty partial so the fast result stays usable on its own.
type Extractor interface {
	// Analyze extracts a partial profile from raw resume text.
	Analyze(ctx context.Context, text string) *profile.Partial

	// Available reports whether the underlying service is configured.
	Available() bool
}

// Disabled is the Extractor used when no AI credentials are configured.
type Disabled struct{}

func (Disabled) Analyze(context.Context, string) *profile.Partial { return &profile.Partial{} }

func (Disabled) Available() bool { return false }
