package character

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ebina4yaka/coc-cli-tool/internal/game/dice"
)

// Builder rolls complete sheets for one edition's attribute table.
type Builder struct {
	edition string
	table   Table
	roller  *dice.Roller
	logger  *zap.Logger
}

// NewBuilder validates table and returns a Builder that rolls with roller.
//
// Precondition: edition must be non-empty; roller must be non-nil.
// Postcondition: Returns a Builder, or a *ConfigError if table is invalid.
func NewBuilder(edition string, table Table, roller *dice.Roller) (*Builder, error) {
	if edition == "" {
		return nil, errors.New("edition must not be empty")
	}
	if roller == nil {
		return nil, errors.New("roller must not be nil")
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Builder{
		edition: edition,
		table:   table,
		roller:  roller,
		logger:  roller.Logger(),
	}, nil
}

// Build rolls every attribute in canonical order.
//
// Postcondition: len(sheet.Results) == 8 and sheet.Results[i].Kind == Kind(i).
func (b *Builder) Build() *Sheet {
	sheet := b.newSheet()
	for i, k := range Kinds() {
		sheet.Results[i] = b.roll(sheet.ID, k)
	}
	b.logBuilt(sheet)
	return sheet
}

// BuildConcurrent rolls every attribute in its own goroutine. Each result is
// stored in its canonical slot, so ordering matches Build.
//
// Postcondition: Returns a sheet ordered like Build, or ctx.Err() if ctx is
// done before the rolls complete.
func (b *Builder) BuildConcurrent(ctx context.Context) (*Sheet, error) {
	sheet := b.newSheet()
	g, gctx := errgroup.WithContext(ctx)
	for i, k := range Kinds() {
		i, k := i, k
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sheet.Results[i] = b.roll(sheet.ID, k)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	b.logBuilt(sheet)
	return sheet, nil
}

// BuildWith rolls every attribute in canonical order, drawing all die values
// from gen. Use it for reproducible sheets and tests.
//
// Precondition: gen must be non-nil.
func (b *Builder) BuildWith(gen dice.Generator) *Sheet {
	sheet := b.newSheet()
	for i, k := range Kinds() {
		sheet.Results[i] = RollResult(k, b.table.Formula(k), gen)
	}
	b.logBuilt(sheet)
	return sheet
}

// RollResult rolls a single attribute with formula f using gen.
//
// Precondition: f.Count >= 1, f.Faces >= 1, gen non-nil.
// Postcondition: result.Score == result.Dice.Sum() + f.Bonus.
func RollResult(k Kind, f Formula, gen dice.Generator) Result {
	d := dice.New(f.Count, f.Faces)
	d.RollWith(gen)
	return newResult(k, f, d)
}

func newResult(k Kind, f Formula, d *dice.Dice) Result {
	return Result{
		Kind:    k,
		Formula: f,
		Dice:    d,
		Score:   d.Sum() + f.Bonus,
	}
}

func (b *Builder) newSheet() *Sheet {
	return &Sheet{
		ID:      uuid.New(),
		Edition: b.edition,
		Results: make([]Result, numKinds),
	}
}

func (b *Builder) roll(sheetID uuid.UUID, k Kind) Result {
	f := b.table.Formula(k)
	d := b.roller.Roll(f.Count, f.Faces,
		zap.String("sheet_id", sheetID.String()),
		zap.String("attribute", k.Code()),
	)
	return newResult(k, f, d)
}

func (b *Builder) logBuilt(s *Sheet) {
	b.logger.Debug("sheet built",
		zap.String("sheet_id", s.ID.String()),
		zap.String("edition", s.Edition),
		zap.Int("attributes", len(s.Results)),
	)
}
