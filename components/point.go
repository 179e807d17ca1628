// Package components defines the grid value types and the snake agent.
package components

import "fmt"

// Point is an integer board coordinate. Y grows downward.
type Point struct {
	X, Y int
}

// Add returns p translated by other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Equals reports whether both points name the same cell.
func (p Point) Equals(other Point) bool {
	return p == other
}

// InBounds reports whether p lies on a size x size board.
func (p Point) InBounds(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four moves a snake can make.
// The order matches the controller output layer.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left

	NumDirections = 4
)

// Directions lists every direction in controller output order.
var Directions = [NumDirections]Direction{Up, Right, Down, Left}

// Vector returns the unit step for d.
func (d Direction) Vector() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	}
	panic(fmt.Sprintf("components: invalid direction %d", d))
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("direction(%d)", d)
}

// Food is a single food target, paired by index with one snake.
type Food struct {
	Position Point
}
