package page

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"bookcatalog/internal/service"
)

var (
	ErrMissingField       = errors.New("a required field is empty")
	ErrInvalidYear        = errors.New("publication year is not a number")
	ErrInvalidAuthorChars = errors.New("author contains characters other than letters, spaces, hyphens and periods")
	ErrUnboundControl     = errors.New("no delete control for this id in the current table")
)

const (
	MsgMissingField       = "All fields are required."
	MsgInvalidYear        = "Year must be a number."
	MsgInvalidAuthorChars = "Author name cannot contain symbols."
	MsgCreateFailed       = "Error: could not add the book."
	MsgNoBooks            = "No books in the catalog."
	MsgNoMatches          = "No books match your search."
)

// Whitespace here is the browser's \s, which is wider than RE2's ASCII \s.
var authorPattern = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}\-.]+$`)

// Year is a parsed publication year. It remembers whether the input was blank
// or not a number at all.
type Year struct {
	value  int
	number bool
	blank  bool
}

func YearOf(n int) Year {
	return Year{value: n, number: true}
}

// ParseYear reads a leading integer the way the browser's parseInt does:
// leading whitespace and a sign are allowed, anything after the digits is ignored.
func ParseYear(raw string) Year {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	if s == "" {
		return Year{blank: true}
	}

	end := 0
	if s[0] == '+' || s[0] == '-' {
		end = 1
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return Year{}
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return Year{}
	}
	return YearOf(n)
}

func (y Year) Value() int     { return y.value }
func (y Year) IsNumber() bool { return y.number }

// missing treats 0 like an empty input. That is long-standing behaviour and is kept.
func (y Year) missing() bool {
	return y.blank || (y.number && y.value == 0)
}

// Validate checks a form in order and stops at the first failure.
func Validate(title, author string, year Year, genre string) error {
	if title == "" || author == "" || year.missing() || genre == "" {
		return ErrMissingField
	}
	if !year.IsNumber() {
		return ErrInvalidYear
	}
	if !authorPattern.MatchString(author) {
		return ErrInvalidAuthorChars
	}
	return nil
}

// Message is the fixed user-facing text for err, or "" when err has none.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrMissingField):
		return MsgMissingField
	case errors.Is(err, ErrInvalidYear):
		return MsgInvalidYear
	case errors.Is(err, ErrInvalidAuthorChars):
		return MsgInvalidAuthorChars
	case errors.Is(err, service.ErrCreateFailed):
		return MsgCreateFailed
	default:
		return ""
	}
}
