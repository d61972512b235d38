package catalog

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseNumber interprets a field the way catalog files have always been read
// by the browser viewer: surrounding whitespace is ignored, a blank string is
// zero, decimal and exponent forms are accepted, 0x/0o/0b integer literals are
// accepted, and "Infinity" is a number. Anything else reports ok=false.
func ParseNumber(value string) (float64, bool) {
	s := trimSpace(value)
	if s == "" {
		return 0, true
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if n, ok, handled := parsePrefixedInteger(s); handled {
		return n, ok
	}
	if !isDecimalLiteral(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Overflow and underflow still yield ±Inf or 0, matching the viewer.
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// NumberOrZero returns the parsed value of a field, or zero when the field is
// not numeric.
func NumberOrZero(value string) float64 {
	n, ok := ParseNumber(value)
	if !ok || math.IsNaN(n) {
		return 0
	}
	return n
}

func parsePrefixedInteger(s string) (float64, bool, bool) {
	if len(s) < 2 || s[0] != '0' {
		return 0, false, false
	}
	var base int
	switch s[1] {
	case 'x', 'X':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	default:
		return 0, false, false
	}
	digits := s[2:]
	if digits == "" || strings.ContainsRune(digits, '_') {
		return 0, false, true
	}
	var n float64
	for i := 0; i < len(digits); i++ {
		d := digitValue(digits[i])
		if d < 0 || d >= base {
			return 0, false, true
		}
		n = n*float64(base) + float64(d)
	}
	return n, true, true
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// isDecimalLiteral accepts [sign] digits [. digits] [e [sign] digits] with at
// least one mantissa digit, rejecting the extra forms strconv understands
// (hex floats, underscores, inf, nan).
func isDecimalLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
