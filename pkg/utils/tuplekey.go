package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// TupleComponent is one element of a parsed tuple-key string. Digit
// sequences become integers; everything else stays a string with
// surrounding quotes stripped.
type TupleComponent struct {
	Int    int
	IsInt  bool
	String string
}

// ParseTupleKey parses a wire-format tuple key such as
// "(plastic, extrude, filament)" or "('spare_part', 2)" into its ordered
// components.
func ParseTupleKey(s string) ([]TupleComponent, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "(") || !strings.HasSuffix(trimmed, ")") {
		return nil, fmt.Errorf("not a tuple key: %q", s)
	}
	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return nil, fmt.Errorf("empty tuple key: %q", s)
	}
	parts := strings.Split(inner, ",")
	components := make([]TupleComponent, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `'"`)
		if p != "" && isDigits(p) {
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil, fmt.Errorf("malformed numeric component %q in %q: %w", p, s, err)
			}
			components = append(components, TupleComponent{Int: n, IsInt: true})
			continue
		}
		components = append(components, TupleComponent{String: p})
	}
	return components, nil
}

// ParseIntegerKey coerces a digit-string key to int. The second return
// value is false when s is not a plain digit sequence.
func ParseIntegerKey(s string) (int, bool) {
	if s != "" && isDigits(s) {
		n, err := strconv.Atoi(s)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
