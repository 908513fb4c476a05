package eval

import (
	"strings"
	"unicode"

	"github.com/quarkw/constfit/schema"
)

// tokenKind identifies the members of the closed token set. The grammar is
// restricted to arithmetic, grouping and the fixed function set; there is
// no assignment, no control flow and no way to reach host code.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of expression"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokCaret:
		return "'^'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	}
	return "unknown token"
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits expr into tokens. Numbers are maximal digit runs with at most
// one decimal point; identifiers are letter-led runs of letters and digits
// (unicode letters included, so aliases like π lex as identifiers).
func lex(expr string) ([]token, error) {
	runes := []rune(expr)
	toks := make([]token, 0, len(runes)/2+1)

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r >= '0' && r <= '9', r == '.':
			start := i
			seenDot := false
			for i < len(runes) && (runes[i] >= '0' && runes[i] <= '9' || runes[i] == '.') {
				if runes[i] == '.' {
					if seenDot {
						return nil, schema.NewEvalError(schema.ParseError,
							"malformed number %q at position %d", string(runes[start:i+1]), start)
					}
					seenDot = true
				}
				i++
			}
			text := string(runes[start:i])
			if text == "." {
				return nil, schema.NewEvalError(schema.ParseError, "unexpected '.' at position %d", start)
			}
			toks = append(toks, token{kind: tokNumber, text: text, pos: start})
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || runes[i] >= '0' && runes[i] <= '9' || runes[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: strings.ToLower(string(runes[start:i])), pos: start})
		default:
			kind, ok := operatorKind(r)
			if !ok {
				return nil, schema.NewEvalError(schema.ParseError,
					"unexpected character %q at position %d", string(r), i)
			}
			toks = append(toks, token{kind: kind, text: string(r), pos: i})
			i++
		}
	}

	toks = append(toks, token{kind: tokEOF, pos: len(runes)})
	return toks, nil
}

func operatorKind(r rune) (tokenKind, bool) {
	switch r {
	case '+':
		return tokPlus, true
	case '-':
		return tokMinus, true
	case '*':
		return tokStar, true
	case '/':
		return tokSlash, true
	case '^':
		return tokCaret, true
	case '(':
		return tokLParen, true
	case ')':
		return tokRParen, true
	}
	return tokEOF, false
}
