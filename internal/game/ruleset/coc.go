package ruleset

import "github.com/ebina4yaka/coc-cli-tool/internal/game/character"

// coc6Table is the Call of Cthulhu 6th edition attribute table.
var coc6Table = character.Table{
	character.Strength:     {Count: 3, Faces: 6},
	character.Constitution: {Count: 3, Faces: 6},
	character.Power:        {Count: 3, Faces: 6},
	character.Dexterity:    {Count: 3, Faces: 6},
	character.Appearance:   {Count: 3, Faces: 6},
	character.Size:         {Count: 2, Faces: 6, Bonus: 6},
	character.Intelligence: {Count: 2, Faces: 6, Bonus: 6},
	character.Education:    {Count: 3, Faces: 6, Bonus: 3},
}

func init() {
	if err := coc6Table.Validate(); err != nil {
		panic("ruleset: built-in coc6 table: " + err.Error())
	}
}

// CoC6 returns the Call of Cthulhu 6th edition.
func CoC6() *Edition {
	return &Edition{ID: "coc6", Title: "CoC6", Implemented: true, Table: coc6Table}
}

// CoC7 returns the Call of Cthulhu 7th edition placeholder.
// TODO: implement the 7th edition percentile attributes (STR = 3d6*5, etc.).
func CoC7() *Edition {
	return &Edition{ID: "coc7", Title: "CoC7"}
}
