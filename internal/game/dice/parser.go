package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormula is wrapped by every error returned from Parse.
var ErrInvalidFormula = errors.New("dice: invalid formula")

// Expression is a parsed dice formula such as "2d6+6".
//
// Invariant: Count >= 1, Faces >= 1 after a successful Parse.
type Expression struct {
	Raw      string // original input string
	Count    int    // number of dice
	Faces    int    // faces per die
	Modifier int    // flat modifier (may be negative)
}

// String renders the expression in canonical "NdM[+B]" form.
func (e Expression) String() string {
	switch {
	case e.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", e.Count, e.Faces, e.Modifier)
	case e.Modifier < 0:
		return fmt.Sprintf("%dd%d%d", e.Count, e.Faces, e.Modifier)
	default:
		return fmt.Sprintf("%dd%d", e.Count, e.Faces)
	}
}

// Parse parses a dice formula string into an Expression.
// Supported forms: "d6", "3d6", "2d6+6", "3d6-1". Whitespace is ignored.
//
// Postcondition: Returns a valid Expression or an error wrapping ErrInvalidFormula.
func Parse(expr string) (Expression, error) {
	raw := expr
	s := strings.ToLower(strings.Join(strings.Fields(expr), ""))
	if s == "" {
		return Expression{}, fmt.Errorf("%w: empty expression", ErrInvalidFormula)
	}

	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Expression{}, fmt.Errorf("%w: missing 'd' in %q", ErrInvalidFormula, raw)
	}

	// Count defaults to 1 when omitted.
	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		if !startsWithDigit(countStr) {
			return Expression{}, fmt.Errorf("%w: die count in %q must be a number", ErrInvalidFormula, raw)
		}
		var err error
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return Expression{}, fmt.Errorf("%w: die count in %q: %v", ErrInvalidFormula, raw, err)
		}
	}
	if count < 1 {
		return Expression{}, fmt.Errorf("%w: die count in %q must be >= 1", ErrInvalidFormula, raw)
	}

	rest := s[dIdx+1:]

	// The first sign after position 0 starts the modifier.
	modOffset := -1
	for i := 1; i < len(rest); i++ {
		if rest[i] == '+' || rest[i] == '-' {
			modOffset = i
			break
		}
	}

	facesStr, modStr := rest, ""
	if modOffset >= 0 {
		facesStr, modStr = rest[:modOffset], rest[modOffset:]
	}

	if !startsWithDigit(facesStr) {
		return Expression{}, fmt.Errorf("%w: die faces in %q must be a number", ErrInvalidFormula, raw)
	}
	faces, err := strconv.Atoi(facesStr)
	if err != nil {
		return Expression{}, fmt.Errorf("%w: die faces in %q: %v", ErrInvalidFormula, raw, err)
	}
	if faces < 1 {
		return Expression{}, fmt.Errorf("%w: die faces in %q must be >= 1", ErrInvalidFormula, raw)
	}

	modifier := 0
	if modStr != "" {
		modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Expression{}, fmt.Errorf("%w: modifier in %q: %v", ErrInvalidFormula, raw, err)
		}
	}

	return Expression{
		Raw:      raw,
		Count:    count,
		Faces:    faces,
		Modifier: modifier,
	}, nil
}

// startsWithDigit rejects the sign prefixes strconv.Atoi would accept.
func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
