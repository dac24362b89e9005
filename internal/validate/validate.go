package validate

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const MinPasswordLen = 6

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[0-9]{1,18}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces the minimum length, in characters, for new accounts.
func Password(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLen
}

// Name trims an optional display name and caps its length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) <= 100
}

// ID validates a numeric resource identifier (products, orders).
func ID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if !reID.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Qty reports whether q is a usable cart quantity.
func Qty(q int) bool { return q > 0 }

const maxTermLen = 100

// Q unescapes a search term taken from a path segment, then applies Term.
func Q(raw string) (string, bool) {
	s, err := url.PathUnescape(raw)
	if err != nil {
		s = raw
	}
	return Term(s)
}

// Term trims an already decoded search term and caps it at 100 characters.
func Term(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if utf8.RuneCountInString(s) > maxTermLen {
		s = string([]rune(s)[:maxTermLen])
	}
	return s, true
}

// Label unescapes a free-text path label such as a category.
func Label(raw string) string {
	s, err := url.PathUnescape(raw)
	if err != nil {
		s = raw
	}
	return strings.TrimSpace(s)
}
