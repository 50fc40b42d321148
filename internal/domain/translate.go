package domain

// Explanation strings returned by the translator. The exact wording is part
// of the contract with existing front ends.
const (
	ExplainMultiStep   = "AI interpreted multi-step command"
	ExplainKeywords    = "AI interpreted using keywords"
	ExplainPassthrough = "No AI interpretation found, executing as-is"
)

// TranslationOutcome is the result of interpreting a natural-language phrase.
// When Matched is false the phrase is passed through verbatim.
type TranslationOutcome struct {
	CommandLine string
	Explanation string
	Matched     bool
}
