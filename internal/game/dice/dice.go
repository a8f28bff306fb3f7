// Package dice provides the randomness abstraction and the per-attribute
// dice roll used when generating character sheets.
package dice

import (
	"strconv"
	"strings"
)

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Generator produces one die value for a die with the given number of faces.
// A Generator may return values outside [1, faces]; Dice clamps them.
type Generator func(faces int) int

// SourceGenerator adapts src into a Generator yielding values in [1, faces].
//
// Precondition: src must be non-nil.
func SourceGenerator(src Source) Generator {
	if src == nil {
		panic("dice: SourceGenerator precondition violated: src must be non-nil")
	}
	return func(faces int) int {
		return src.Intn(faces) + 1
	}
}

// Dice rolls count dice of faces faces once and keeps the values in draw order.
// A Dice value is scoped to a single attribute roll.
//
// Invariant: after a roll, len(Values()) == count and every value is in [1, faces].
type Dice struct {
	count  int
	faces  int
	values []int
}

// New returns an unrolled Dice for count dice with faces faces.
//
// Precondition: count >= 1 and faces >= 1.
func New(count, faces int) *Dice {
	if count < 1 || faces < 1 {
		panic("dice: New precondition violated: count and faces must be >= 1")
	}
	return &Dice{count: count, faces: faces}
}

// Roll draws fresh values from src, replacing any previous roll.
//
// Precondition: src must be non-nil.
func (d *Dice) Roll(src Source) {
	d.RollWith(SourceGenerator(src))
}

// RollWith draws one value per die from gen, clamping each into [1, faces],
// and replaces any previous roll.
//
// Precondition: gen must be non-nil.
// Postcondition: len(d.Values()) equals the dice count.
func (d *Dice) RollWith(gen Generator) {
	if gen == nil {
		panic("dice: RollWith precondition violated: gen must be non-nil")
	}
	values := make([]int, d.count)
	for i := range values {
		values[i] = clamp(gen(d.faces), 1, d.faces)
	}
	d.values = values
}

// Values returns a copy of the rolled values in draw order.
// Returns an empty slice before the first roll.
func (d *Dice) Values() []int {
	out := make([]int, len(d.values))
	copy(out, d.values)
	return out
}

// Sum returns the sum of the rolled values, or 0 before the first roll.
func (d *Dice) Sum() int {
	total := 0
	for _, v := range d.values {
		total += v
	}
	return total
}

// String renders the rolled values joined by "+", e.g. "4+5+1".
// Returns "" before the first roll.
func (d *Dice) String() string {
	parts := make([]string, len(d.values))
	for i, v := range d.values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "+")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
