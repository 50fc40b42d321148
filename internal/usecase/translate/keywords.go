package translate

import "strings"

// Keyword fallback: applied only when neither the synthesizer nor the
// pattern table matched. Each heuristic scans the whitespace-split tokens
// for an intent word plus an adjacent operand; the first that fires wins.

func containsAny(tokens []string, words ...string) bool {
	for _, tok := range tokens {
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}

// interpretKeywords returns a best-effort command for the phrase, or
// ok=false when no heuristic applies.
func interpretKeywords(phrase string) (string, bool) {
	tokens := strings.Fields(phrase)

	if containsAny(tokens, "create", "make", "new") && containsAny(tokens, "file") {
		for i, tok := range tokens {
			if tok == "file" && i+1 < len(tokens) {
				return "touch " + tokens[i+1], true
			}
		}
		return "touch newfile.txt", true
	}

	if containsAny(tokens, "create", "make", "new") && containsAny(tokens, "folder", "directory", "dir") {
		for i, tok := range tokens {
			if (tok == "folder" || tok == "directory" || tok == "dir") && i+1 < len(tokens) {
				return "mkdir " + tokens[i+1], true
			}
		}
		return "mkdir newfolder", true
	}

	if containsAny(tokens, "go", "navigate", "change") && containsAny(tokens, "directory", "folder", "to") {
		for i, tok := range tokens {
			if tok == "to" && i+1 < len(tokens) {
				return "cd " + tokens[i+1], true
			}
		}
	}

	if containsAny(tokens, "list", "show") && containsAny(tokens, "files", "contents") {
		return "ls", true
	}

	if containsAny(tokens, "delete", "remove", "rm") {
		for _, tok := range tokens {
			switch tok {
			case "delete", "remove", "rm", "file", "the":
			default:
				return "rm " + tok, true
			}
		}
	}

	return "", false
}
