package detail

import "fmt"

type Direction int

const (
	Increase Direction = iota
	Decrease
)

func (d Direction) String() string {
	switch d {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "increase" or "decrease".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "increase", "+":
		return Increase, nil
	case "decrease", "-":
		return Decrease, nil
	}
	return 0, fmt.Errorf("unknown servings direction %q", s)
}

// AdjustServings moves current one step in direction. The result is never
// below 1.
func AdjustServings(current int, d Direction) int {
	if current < 1 {
		current = 1
	}
	switch d {
	case Increase:
		return current + 1
	case Decrease:
		if current > 1 {
			return current - 1
		}
	}
	return current
}
