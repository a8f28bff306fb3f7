package ruleset

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ebina4yaka/coc-cli-tool/internal/game/character"
	"github.com/ebina4yaka/coc-cli-tool/internal/game/dice"
)

// ErrInvalidTable is wrapped by table file errors that do not concern a
// single known attribute.
var ErrInvalidTable = errors.New("invalid attribute table")

// tableFile is the on-disk form of an attribute table:
//
//	attributes:
//	  STR: 3d6
//	  SIZ: 2d6+6
type tableFile struct {
	Attributes map[string]string `yaml:"attributes"`
}

// LoadTable reads an attribute table from the YAML file at path.
//
// Precondition: path must be a readable file.
// Postcondition: Returns a valid Table, or an error. Per-attribute problems
// are reported as *character.ConfigError.
func LoadTable(path string) (character.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return character.Table{}, fmt.Errorf("reading %s: %w", path, err)
	}
	table, err := ParseTable(data)
	if err != nil {
		return character.Table{}, fmt.Errorf("parsing table file %s: %w", path, err)
	}
	return table, nil
}

// ParseTable decodes a YAML attribute table. Every attribute must appear
// exactly once.
func ParseTable(data []byte) (character.Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return character.Table{}, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	var table character.Table
	seen := make(map[character.Kind]bool, len(f.Attributes))

	codes := make([]string, 0, len(f.Attributes))
	for code := range f.Attributes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		k, ok := character.ParseKind(code)
		if !ok {
			return character.Table{}, fmt.Errorf("%w: unknown attribute %q", ErrInvalidTable, code)
		}
		if seen[k] {
			return character.Table{}, fmt.Errorf("%w: attribute %s listed more than once", ErrInvalidTable, k.Code())
		}
		seen[k] = true

		expr, err := dice.Parse(f.Attributes[code])
		if err != nil {
			return character.Table{}, &character.ConfigError{Kind: k, Reason: err.Error()}
		}
		table[k] = character.Formula{Count: expr.Count, Faces: expr.Faces, Bonus: expr.Modifier}
	}

	for _, k := range character.Kinds() {
		if !seen[k] {
			return character.Table{}, &character.ConfigError{Kind: k, Reason: "missing from table"}
		}
	}
	if err := table.Validate(); err != nil {
		return character.Table{}, err
	}
	return table, nil
}
