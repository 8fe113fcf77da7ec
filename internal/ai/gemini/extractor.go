package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/gitscout/gitscout/internal/logger"
	"github.com/gitscout/gitscout/internal/profile"
	"github.com/gitscout/gitscout/internal/vocab"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	// maxInputRunes bounds the resume prefix sent to the model, keeping
	// prompts inside downstream token limits.
	maxInputRunes = 8000

	// extractionConfidence is the fixed confidence assigned to a
	// successful AI extraction. It is halved during merging.
	extractionConfidence = 85
)

// Extractor delegates resume analysis to a text-completion service with a
// structured-output contract. It is a best-effort enhancer: every failure,
// from transport errors to malformed replies, becomes an empty partial.
type Extractor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	model := ""
	if generator != nil {
		model = generator.Model()
	}

	return &Extractor{
		generator: generator,
		logger:    logger.WithCommonFields(log, "gemini", model),
		maxLogLen: maxLogLength,
	}
}

// Available reports whether the extractor has a configured backend.
func (e *Extractor) Available() bool {
	return e != nil && e.generator != nil
}

// Analyze runs one structured-output request over a bounded prefix of the
// resume text. It never returns an error: failures are logged and reported
// as an empty partial so the caller falls back to the fast result.
func (e *Extractor) Analyze(ctx context.Context, text string) *profile.Partial {
	partial, err := e.analyze(ctx, text)
	if err != nil {
		e.logger.Warn("ai extraction failed, continuing without enhancement", zap.Error(err))
		return &profile.Partial{}
	}
	return partial
}

func (e *Extractor) analyze(ctx context.Context, text string) (*profile.Partial, error) {
	if !e.Available() {
		return nil, fmt.Errorf("gemini generator is not configured")
	}

	prompt := buildPrompt(truncateRunes(text, maxInputRunes))

	e.logger.Debug("gemini extraction request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini extraction response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Extract skills, technologies, interests and experienceLevel as JSON.\n\nResume text:\n{{RESUME_TEXT}}"
	}
	return strings.ReplaceAll(template, "{{RESUME_TEXT}}", resumeText)
}

// parseResponse locates the first balanced JSON object in the reply and
// coerces every recognized field, discarding anything malformed instead of
// failing the whole extraction.
func parseResponse(raw string) (*profile.Partial, error) {
	cleaned := firstJSONObject(stripCodeFences(raw))
	if cleaned == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	partial := &profile.Partial{
		// The wire contract names the language list "skills".
		Languages:    coerceStrings(data["skills"]),
		Technologies: coerceStrings(data["technologies"]),
		Interests:    coerceInterests(data["interests"]),
		Confidence:   extractionConfidence,
	}

	if level, ok := profile.ParseExperienceLevel(coerceString(data["experienceLevel"])); ok {
		partial.ExperienceLevel = level
	}

	return partial, nil
}

func stripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}

// firstJSONObject returns the first balanced {...} substring, honoring
// string literals and escapes. Returns "" when no balanced object exists.
func firstJSONObject(raw string) string {
	start := strings.IndexByte(raw, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return ""
}

func coerceString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// coerceStrings accepts only an array of strings, skipping non-string
// elements and blanks. Any other shape yields nil.
func coerceStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	var result []string
	for _, item := range items {
		if s := coerceString(item); s != "" {
			result = append(result, s)
		}
	}
	return result
}

// coerceInterests additionally restricts tags to the closed interest
// vocabulary.
func coerceInterests(v any) []string {
	var result []string
	for _, tag := range coerceStrings(v) {
		tag = strings.ToLower(tag)
		if vocab.KnownInterest(tag) {
			result = append(result, tag)
		}
	}
	return result
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
