package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrMalformedToken is returned for tokens that are not a letter followed
	// by a column index.
	ErrMalformedToken = errors.New("malformed token")
	// ErrColumnOutOfRange is returned for column indices past the grid width.
	ErrColumnOutOfRange = errors.New("column out of range")
)

var tokenPattern = regexp.MustCompile(`^([A-Za-z])(\d+)$`)

// Token is one parsed entry of an input sequence: a shape code and the
// leftmost column the shape occupies.
type Token struct {
	Code   string
	Column int
}

func (t Token) String() string {
	return t.Code + strconv.Itoa(t.Column)
}

// ParseToken parses a "<Letter><Integer>" token for a grid of the given
// width. A column equal to the width is clamped to the last column; larger
// columns are rejected.
func ParseToken(s string, columns int) (Token, error) {
	s = strings.TrimSpace(s)
	match := tokenPattern.FindStringSubmatch(s)
	if match == nil {
		return Token{}, fmt.Errorf("%w: %q", ErrMalformedToken, s)
	}

	column, err := strconv.Atoi(match[2])
	if err != nil {
		return Token{}, fmt.Errorf("%w: %q: %v", ErrMalformedToken, s, err)
	}

	if column == columns {
		column = columns - 1
	}
	if column > columns {
		return Token{}, fmt.Errorf("%w: %q on a %d-wide grid", ErrColumnOutOfRange, s, columns)
	}

	return Token{Code: match[1], Column: column}, nil
}

// ParseSequence parses a comma-separated token sequence. Any malformed token
// fails the whole sequence.
func ParseSequence(input string, columns int) ([]Token, error) {
	parts := strings.Split(input, ",")
	tokens := make([]Token, 0, len(parts))
	for i, part := range parts {
		token, err := ParseToken(part, columns)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
