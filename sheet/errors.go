package sheet

import "errors"

var (
	// ErrInvalidPosition is returned by any Sheet operation given a
	// Position outside the valid grid.
	ErrInvalidPosition = errors.New("sheet: invalid position")
	// ErrCircularRef is returned by SetCell when installing the given
	// formula would introduce a dependency cycle. The Sheet is left
	// unchanged when this is returned.
	ErrCircularRef = errors.New("sheet: circular dependency")
)
