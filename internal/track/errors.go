package track

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds indicates a lookup outside the parsed rectangle.
	ErrOutOfBounds = errors.New("track: coordinate out of bounds")

	// ErrInvalidTrackCharacter indicates a map character outside the track vocabulary.
	ErrInvalidTrackCharacter = errors.New("track: invalid track character")
)

// InvalidCharError locates an unrecognised character in the input map.
type InvalidCharError struct {
	Row  int
	Col  int
	Char rune
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("%v %q at row %d, column %d", ErrInvalidTrackCharacter, e.Char, e.Row, e.Col)
}

func (e *InvalidCharError) Unwrap() error {
	return ErrInvalidTrackCharacter
}
