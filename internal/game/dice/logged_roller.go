package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with count, faces, values, and sum.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil || logger == nil {
		panic("dice: NewLoggedRoller precondition violated: src and logger must be non-nil")
	}
	return &Roller{src: src, logger: logger}
}

// Roll rolls a fresh Dice for count dice of faces faces and logs the result.
// Any extra fields are appended to the log entry.
//
// Precondition: count >= 1 and faces >= 1.
// Postcondition: Returns a rolled Dice with exactly count values.
func (r *Roller) Roll(count, faces int, fields ...zap.Field) *Dice {
	d := New(count, faces)
	d.Roll(r.src)
	r.logger.Debug("dice roll", append(fields,
		zap.Int("count", count),
		zap.Int("faces", faces),
		zap.Ints("values", d.Values()),
		zap.Int("sum", d.Sum()),
	)...)
	return d
}

// Logger returns the logger used for roll audit entries.
func (r *Roller) Logger() *zap.Logger { return r.logger }
