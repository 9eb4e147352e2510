package formula

import (
	"fmt"

	"sheetengine/grid"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokCellRef
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string       // raw text for tokNumber
	pos  grid.Position // parsed position for tokCellRef (may be out of range)
}

var singleCharTokens = map[rune]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'(': tokLParen,
	')': tokRParen,
}

// lex tokenizes a formula expression (the text after the leading '='),
// returning ErrFormulaParse on any lexically invalid input: an
// unexpected character, or a letter/digit word that is not a
// well-formed "column-letters row-digits" cell reference.
func lex(expr string) ([]token, error) {
	runes := []rune(expr)
	var tokens []token
	for i := 0; i < len(runes); {
		ch := runes[i]
		switch {
		case ch == ' ' || ch == '\t':
			i++
		case isDigit(ch) || ch == '.':
			start := i
			i = scanNumber(runes, i)
			tokens = append(tokens, token{kind: tokNumber, text: string(runes[start:i])})
		case isLetter(ch):
			start := i
			for i < len(runes) && (isLetter(runes[i]) || isDigit(runes[i])) {
				i++
			}
			word := string(runes[start:i])
			pos, ok := grid.ParseLoose(word)
			if !ok {
				return nil, fmt.Errorf("%w: invalid cell reference %q", ErrFormulaParse, word)
			}
			tokens = append(tokens, token{kind: tokCellRef, pos: pos})
		default:
			kind, ok := singleCharTokens[ch]
			if !ok {
				return nil, fmt.Errorf("%w: unexpected character %q", ErrFormulaParse, ch)
			}
			tokens = append(tokens, token{kind: kind})
			i++
		}
	}
	return tokens, nil
}

// scanNumber advances past a floating-point literal (digits, optional
// '.', digits, optional exponent) starting at i, returning the index
// just past it.
func scanNumber(runes []rune, i int) int {
	for i < len(runes) && isDigit(runes[i]) {
		i++
	}
	if i < len(runes) && runes[i] == '.' {
		i++
		for i < len(runes) && isDigit(runes[i]) {
			i++
		}
	}
	if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
		j := i + 1
		if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
			j++
		}
		if j < len(runes) && isDigit(runes[j]) {
			i = j
			for i < len(runes) && isDigit(runes[i]) {
				i++
			}
		}
	}
	return i
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }
func isLetter(ch rune) bool {
	return ('A' <= ch && ch <= 'Z') || ('a' <= ch && ch <= 'z')
}
