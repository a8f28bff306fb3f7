// Package character defines the character sheet model and the attribute
// engine that rolls and renders it.
package character

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ebina4yaka/coc-cli-tool/internal/game/dice"
)

// Kind identifies one attribute of a character.
type Kind int

// Attribute kinds in canonical sheet order.
const (
	Strength Kind = iota
	Constitution
	Power
	Dexterity
	Appearance
	Size
	Intelligence
	Education

	numKinds
)

var kindCodes = [numKinds]string{
	Strength:     "STR",
	Constitution: "CON",
	Power:        "POW",
	Dexterity:    "DEX",
	Appearance:   "APP",
	Size:         "SIZ",
	Intelligence: "INT",
	Education:    "EDU",
}

// Kinds returns every attribute kind in canonical order.
//
// Postcondition: len(result) == 8; result[i] == Kind(i).
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Code returns the three-letter display code, e.g. "STR".
func (k Kind) Code() string {
	if !k.Valid() {
		return fmt.Sprintf("<%d>", int(k))
	}
	return kindCodes[k]
}

// String implements fmt.Stringer.
func (k Kind) String() string { return k.Code() }

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool { return k >= 0 && k < numKinds }

// ParseKind resolves a display code (case-insensitive) to its Kind.
func ParseKind(code string) (Kind, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for k, c := range kindCodes {
		if c == code {
			return Kind(k), true
		}
	}
	return 0, false
}

// Formula describes how one attribute is rolled: Count dice of Faces faces
// plus a flat Bonus.
type Formula struct {
	Count int
	Faces int
	Bonus int
}

// String renders the formula in dice notation, e.g. "2d6+6".
func (f Formula) String() string {
	return dice.Expression{Count: f.Count, Faces: f.Faces, Modifier: f.Bonus}.String()
}

// Table maps every Kind to its Formula. Indexing by Kind guarantees exactly
// one entry per attribute.
type Table [numKinds]Formula

// Formula returns the formula for k.
//
// Precondition: k.Valid().
func (t Table) Formula(k Kind) Formula {
	return t[k]
}

// Limits on a single attribute formula. They keep every score far from int
// overflow and every roll small enough to render on one line.
const (
	MaxDice  = 255
	MaxFaces = 255
	MaxBonus = 255
)

// Validate checks that every formula rolls between 1 and MaxDice dice of
// between 1 and MaxFaces faces, with a bonus in [-MaxBonus, MaxBonus].
//
// Postcondition: Returns nil, or a *ConfigError for the first invalid attribute
// in canonical order.
func (t Table) Validate() error {
	for _, k := range Kinds() {
		f := t[k]
		if f.Count < 1 || f.Count > MaxDice {
			return &ConfigError{Kind: k, Reason: fmt.Sprintf("dice count must be in [1, %d], got %d", MaxDice, f.Count)}
		}
		if f.Faces < 1 || f.Faces > MaxFaces {
			return &ConfigError{Kind: k, Reason: fmt.Sprintf("dice faces must be in [1, %d], got %d", MaxFaces, f.Faces)}
		}
		if f.Bonus < -MaxBonus || f.Bonus > MaxBonus {
			return &ConfigError{Kind: k, Reason: fmt.Sprintf("bonus must be in [-%d, %d], got %d", MaxBonus, MaxBonus, f.Bonus)}
		}
	}
	return nil
}

// ConfigError reports an attribute whose formula cannot be rolled.
type ConfigError struct {
	Kind   Kind
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid attribute table: %s: %s", e.Kind.Code(), e.Reason)
}

// Result is one rolled attribute.
//
// Invariant: Score == Dice.Sum() + Formula.Bonus.
type Result struct {
	Kind    Kind
	Formula Formula
	Dice    *dice.Dice
	Score   int
}

// Bonus returns the flat bonus applied to the dice sum.
func (r Result) Bonus() int { return r.Formula.Bonus }

// Sheet is a generated character: one Result per Kind in canonical order.
type Sheet struct {
	ID      uuid.UUID
	Edition string
	Results []Result
}

// Result returns the rolled result for k.
//
// Postcondition: Returns the Result and true, or a zero Result and false if k is absent.
func (s *Sheet) Result(k Kind) (Result, bool) {
	for _, r := range s.Results {
		if r.Kind == k {
			return r, true
		}
	}
	return Result{}, false
}
