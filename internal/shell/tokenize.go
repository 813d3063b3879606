package shell

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote is returned by Tokenize when a quoted argument is not closed.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Tokenize splits a command line at whitespace. Double quotes group the enclosed text, whitespace included,
// into the current token, and are removed. An empty pair of quotes results in an empty token.
func Tokenize(line string) ([]string, error) {
	var (
		tokens          []string
		current         strings.Builder
		inToken, quoted bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			inToken = true
		case unicode.IsSpace(r) && !quoted:
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if quoted {
		return nil, ErrUnterminatedQuote
	}

	if inToken {
		tokens = append(tokens, current.String())
	}

	return tokens, nil
}
