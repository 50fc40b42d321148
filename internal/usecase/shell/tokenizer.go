package shell

import (
	"strings"
	"unicode"

	"shellmate/internal/domain"
)

type tokenizeState int

const (
	stateOutside tokenizeState = iota
	stateSingleQuote
	stateDoubleQuote
)

// Tokenize splits a command line into tokens with shell-style quoting:
// whitespace separates tokens, single and double quotes group substrings
// into one token, backslash escapes the next character outside single
// quotes. An unterminated quote is a parse error.
func Tokenize(line string) ([]string, error) {
	var (
		tokens   []string
		buf      strings.Builder
		state    = stateOutside
		escaping bool
		inToken  bool
	)

	flush := func() {
		if inToken {
			tokens = append(tokens, buf.String())
			buf.Reset()
			inToken = false
		}
	}

	for _, ch := range line {
		if escaping {
			// Inside double quotes only \" and \\ are special; a backslash
			// before anything else is literal.
			if state == stateDoubleQuote && ch != '"' && ch != '\\' {
				buf.WriteRune('\\')
			}
			buf.WriteRune(ch)
			inToken = true
			escaping = false
			continue
		}

		switch state {
		case stateOutside:
			switch {
			case unicode.IsSpace(ch):
				flush()
			case ch == '\'':
				state = stateSingleQuote
				inToken = true
			case ch == '"':
				state = stateDoubleQuote
				inToken = true
			case ch == '\\':
				escaping = true
			default:
				buf.WriteRune(ch)
				inToken = true
			}
		case stateSingleQuote:
			if ch == '\'' {
				state = stateOutside
			} else {
				buf.WriteRune(ch)
			}
		case stateDoubleQuote:
			switch ch {
			case '"':
				state = stateOutside
			case '\\':
				escaping = true
			default:
				buf.WriteRune(ch)
			}
		}
	}

	if escaping {
		return nil, domain.NewDomainError("Tokenize", domain.ErrParse, "trailing escape character")
	}
	if state != stateOutside {
		return nil, domain.NewDomainError("Tokenize", domain.ErrParse, "unterminated quote")
	}
	flush()
	return tokens, nil
}
