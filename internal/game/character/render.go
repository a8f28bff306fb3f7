package character

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Render formats r as "<CODE>: <SCORE> (<dice>[+<bonus>])", e.g.
//
//	"STR:  7 (2+2+3)"
//	"INT: 15 (4+5+6)"
//
// Single-digit scores are padded to two columns. The bonus suffix appears
// only when the bonus is positive. A Result without dice renders an empty
// breakdown.
func Render(r Result) string {
	var b strings.Builder
	b.WriteString(r.Kind.Code())
	b.WriteString(": ")
	b.WriteString(renderScore(r.Score))
	b.WriteString(" (")
	if r.Dice != nil {
		b.WriteString(r.Dice.String())
	}
	if bonus := r.Bonus(); bonus > 0 {
		b.WriteString("+")
		b.WriteString(strconv.Itoa(bonus))
	}
	b.WriteString(")")
	return b.String()
}

func renderScore(score int) string {
	if score >= 0 && score < 10 {
		return " " + strconv.Itoa(score)
	}
	return strconv.Itoa(score)
}

// RenderSheet renders every result of s in sheet order, one line each.
func RenderSheet(s *Sheet) []string {
	lines := make([]string, len(s.Results))
	for i, r := range s.Results {
		lines[i] = Render(r)
	}
	return lines
}

type sheetDoc struct {
	ID         string         `yaml:"id"`
	Edition    string         `yaml:"edition"`
	Attributes []attributeDoc `yaml:"attributes"`
}

type attributeDoc struct {
	Code    string `yaml:"code"`
	Formula string `yaml:"formula"`
	Rolls   []int  `yaml:"rolls,flow"`
	Bonus   int    `yaml:"bonus"`
	Score   int    `yaml:"score"`
}

// MarshalYAML encodes s as a YAML document listing each attribute's
// formula, individual rolls, bonus, and score in sheet order.
func MarshalYAML(s *Sheet) ([]byte, error) {
	doc := sheetDoc{
		ID:         s.ID.String(),
		Edition:    s.Edition,
		Attributes: make([]attributeDoc, len(s.Results)),
	}
	for i, r := range s.Results {
		rolls := []int{}
		if r.Dice != nil {
			rolls = r.Dice.Values()
		}
		doc.Attributes[i] = attributeDoc{
			Code:    r.Kind.Code(),
			Formula: r.Formula.String(),
			Rolls:   rolls,
			Bonus:   r.Bonus(),
			Score:   r.Score,
		}
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding sheet %s: %w", s.ID, err)
	}
	return out, nil
}
