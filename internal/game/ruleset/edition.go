// Package ruleset defines the rules editions a character sheet can be
// generated for and their attribute tables.
package ruleset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ebina4yaka/coc-cli-tool/internal/game/character"
)

// DefaultEdition is the edition used when none is selected.
const DefaultEdition = "coc6"

// ErrUnsupportedEdition is wrapped by errors for editions that are known but
// not implemented yet.
var ErrUnsupportedEdition = errors.New("edition not implemented")

// ErrUnknownEdition is returned for edition IDs that are not registered.
var ErrUnknownEdition = errors.New("unknown edition")

// UnsupportedError reports a known edition that has no implementation.
type UnsupportedError struct {
	Edition string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("edition %q: not implemented", e.Edition)
}

// Unwrap returns ErrUnsupportedEdition.
func (e *UnsupportedError) Unwrap() error { return ErrUnsupportedEdition }

// Edition is a named rules variant.
//
// Invariant: when Implemented is true, Table is valid.
type Edition struct {
	ID          string
	Title       string
	Implemented bool
	Table       character.Table
}

// Header returns the banner printed above a sheet, e.g. "==== CoC6 ====".
func (e *Edition) Header() string {
	return "==== " + e.Title + " ===="
}

// WithTable returns a copy of e that rolls with table instead of its own.
//
// Postcondition: Returns the copy, or a *character.ConfigError if table is invalid.
func (e *Edition) WithTable(table character.Table) (*Edition, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	cp := *e
	cp.Table = table
	return &cp, nil
}

// Registry provides lookup of editions by ID.
type Registry struct {
	editions map[string]*Edition
	order    []string
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{editions: make(map[string]*Edition)}
}

// DefaultRegistry returns a Registry holding every known edition.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(CoC6())
	r.Register(CoC7())
	return r
}

// Register adds an Edition to the registry. IDs are matched case-insensitively.
//
// Precondition: ed must be non-nil with a non-empty ID.
// Postcondition: ed is retrievable via Lookup; if called multiple times with
// the same ID, the last call wins.
func (r *Registry) Register(ed *Edition) {
	if ed == nil {
		panic("Registry.Register: precondition violated: edition must be non-nil")
	}
	if ed.ID == "" {
		panic("Registry.Register: precondition violated: edition ID must be non-empty")
	}
	id := strings.ToLower(ed.ID)
	if _, ok := r.editions[id]; !ok {
		r.order = append(r.order, id)
	}
	r.editions[id] = ed
}

// Lookup returns the implemented edition for id.
//
// Postcondition: Returns the Edition, an *UnsupportedError for a placeholder
// edition, or an error wrapping ErrUnknownEdition.
func (r *Registry) Lookup(id string) (*Edition, error) {
	ed, ok := r.editions[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownEdition, id, strings.Join(r.IDs(), ", "))
	}
	if !ed.Implemented {
		return nil, &UnsupportedError{Edition: ed.ID}
	}
	return ed, nil
}

// IDs returns every registered edition ID in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
