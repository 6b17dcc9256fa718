package core

import (
	"errors"
	"fmt"
)

// Programming errors. These are raised with panic, wrapped with context.
var (
	ErrSizeMismatch = errors.New("core: shadow size mismatch")
	ErrOutOfRange   = errors.New("core: index out of range")
	ErrUnknownTile  = errors.New("core: unknown tile")
	ErrOverdraw     = errors.New("core: archive retrieve exceeds held tiles")
	ErrBadChoose    = errors.New("core: choose count must be positive")
)

// Caller errors. These are returned.
var (
	ErrInvalidRules  = errors.New("core: invalid rules")
	ErrInvalidLevel  = errors.New("core: invalid level")
	ErrCellOccupied  = errors.New("core: cell already occupied")
	ErrOutOfBounds   = errors.New("core: tile outside board volume")
	ErrIllegalMove   = errors.New("core: move precondition failed")
	ErrEmptyHistory  = errors.New("core: no move to undo")
	ErrStagingFull   = errors.New("core: staging area is full")
	ErrNotOnBoard    = errors.New("core: tile is not on the board")
	ErrTileNotStaged = errors.New("core: tile is not staged")
)

// fatalf panics with err wrapped in a formatted message.
func fatalf(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)))
}
