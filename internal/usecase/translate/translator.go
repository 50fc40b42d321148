// Package translate converts free-form natural-language phrases into shell
// command lines by ordered pattern matching. Interpretation is a pure
// function of the phrase and the fixed rule tables: the stages run in a
// strict priority order (multi-step synthesizer, pattern table, keyword
// fallback, verbatim passthrough) and the first that produces a command
// wins. The translator never fails — an uninterpreted phrase degrades to
// passthrough.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"shellmate/internal/domain"
	"shellmate/internal/infra/tracer"
)

// Translator maps phrases to command lines.
type Translator struct {
	logger *slog.Logger
}

// New creates a Translator.
func New(logger *slog.Logger) *Translator {
	return &Translator{logger: logger}
}

// Interpret resolves a phrase into a command line plus an explanation of
// how it was understood.
func (t *Translator) Interpret(ctx context.Context, phrase string) domain.TranslationOutcome {
	_, span := tracer.StartSpan(ctx, "translator.interpret")
	defer span.End()

	normalized := strings.ToLower(strings.TrimSpace(phrase))

	if command, ok := synthesize(normalized); ok {
		span.SetAttributes(tracer.StringAttr("translate.stage", "synthesizer"))
		t.logger.Debug("phrase interpreted", "stage", "synthesizer", "command", command)
		return domain.TranslationOutcome{
			CommandLine: command,
			Explanation: domain.ExplainMultiStep,
			Matched:     true,
		}
	}

	if command, category, ok := matchRules(normalized); ok {
		span.SetAttributes(
			tracer.StringAttr("translate.stage", "pattern"),
			tracer.StringAttr("translate.category", category),
		)
		t.logger.Debug("phrase interpreted", "stage", "pattern", "category", category, "command", command)
		return domain.TranslationOutcome{
			CommandLine: command,
			Explanation: fmt.Sprintf("AI interpreted '%s' as '%s'", phrase, command),
			Matched:     true,
		}
	}

	if command, ok := interpretKeywords(normalized); ok {
		span.SetAttributes(tracer.StringAttr("translate.stage", "keywords"))
		t.logger.Debug("phrase interpreted", "stage", "keywords", "command", command)
		return domain.TranslationOutcome{
			CommandLine: command,
			Explanation: domain.ExplainKeywords,
			Matched:     true,
		}
	}

	span.SetAttributes(tracer.StringAttr("translate.stage", "passthrough"))
	return domain.TranslationOutcome{
		CommandLine: phrase,
		Explanation: domain.ExplainPassthrough,
		Matched:     false,
	}
}

// maxStarterSuggestions bounds Suggest responses.
const maxStarterSuggestions = 5

// starters are the canonical phrase openers offered as suggestions.
var starters = []string{
	"create a file named",
	"create a folder named",
	"list all files",
	"show me the files",
	"delete the file",
	"copy the file",
	"move the file",
	"go to the directory",
	"show me system info",
	"find files named",
	"where am I",
	"clear the screen",
	"help me",
}

// Suggest returns up to five canonical starters that begin with, or
// contain, the partial phrase.
func (t *Translator) Suggest(partial string) []string {
	partialLower := strings.ToLower(partial)

	var suggestions []string
	for _, starter := range starters {
		if strings.HasPrefix(starter, partialLower) || strings.Contains(starter, partialLower) {
			suggestions = append(suggestions, starter)
			if len(suggestions) == maxStarterSuggestions {
				break
			}
		}
	}
	return suggestions
}
