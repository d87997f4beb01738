package paging

import "fmt"

// Direction is the navigation direction relative to the cursor.
type Direction string

const (
	// Forward returns rows with keys strictly greater than the cursor.
	Forward Direction = "forward"
	// Backward returns rows with keys strictly less than the cursor.
	Backward Direction = "backward"
)

// ParseDirection converts a query value into a Direction.
// An empty string means Forward.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", Forward:
		return Forward, nil
	case Backward:
		return Backward, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

func (d Direction) String() string { return string(d) }
