package components

import (
	"fmt"
	"math"

	"github.com/pthm-cable/snakes/neural"
)

// Fitness shaping: below fitnessScoreKnee each food doubles fitness;
// above it growth becomes linear in score.
const fitnessScoreKnee = 10

// Snake is one agent: a body on the grid plus the controller that steers it.
// Body[0] is the head. The body is never empty and len(Body)-1 == Score.
type Snake struct {
	Body  []Point
	Brain *neural.Network

	MaxMoves       int
	RemainingMoves int
	Alive          bool
	Score          int
	Lifetime       int // ticks survived; zeroed on starvation
}

// NewSnake creates a live, one-segment snake at start. The snake takes
// ownership of brain.
func NewSnake(start Point, maxMoves int, brain *neural.Network) *Snake {
	return &Snake{
		Body:           []Point{start},
		Brain:          brain,
		MaxMoves:       maxMoves,
		RemainingMoves: maxMoves,
		Alive:          true,
	}
}

// Head returns the head position.
func (s *Snake) Head() Point {
	if len(s.Body) == 0 {
		panic("components: snake has an empty body")
	}
	return s.Body[0]
}

// Tail returns every segment except the head.
func (s *Snake) Tail() []Point {
	return s.Body[1:]
}

// Len returns the number of body segments.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Decide asks the controller for the next move.
func (s *Snake) Decide(observation [8]float64) Direction {
	idx := s.Brain.Decide(observation[:])
	if idx < 0 || idx >= NumDirections {
		panic(fmt.Sprintf("components: controller produced output %d, want [0,%d)", idx, NumDirections))
	}
	return Directions[idx]
}

// Move advances the head one cell in d and drags the body behind it.
// Running out of moves kills the snake and forfeits its lifetime.
func (s *Snake) Move(d Direction) {
	next := s.Head().Add(d.Vector())

	// Shift in place: every segment takes its predecessor's cell.
	copy(s.Body[1:], s.Body[:len(s.Body)-1])
	s.Body[0] = next

	s.RemainingMoves--
	s.Lifetime++

	if s.RemainingMoves <= 0 {
		s.Alive = false
		s.Lifetime = 0
	}
}

// CheckCollisions kills the snake if its head overlaps its tail or has left
// the board. It only ever clears Alive, so repeated calls are harmless.
// Returns whether the snake is still alive.
func (s *Snake) CheckCollisions(boardSize int) bool {
	head := s.Head()

	if s.OccupiesTail(head) {
		s.Alive = false
	}
	if !head.InBounds(boardSize) {
		s.Alive = false
	}

	return s.Alive
}

// Grow appends a copy of the last segment and refills the move budget.
// The new segment separates from the tail on the next Move.
func (s *Snake) Grow() {
	last := s.Body[len(s.Body)-1]
	s.Body = append(s.Body, last)
	s.RemainingMoves = s.MaxMoves
}

// Eat grows the snake and counts the food.
func (s *Snake) Eat() {
	s.Grow()
	s.Score++
}

// Occupies reports whether any segment, head included, is on p.
func (s *Snake) Occupies(p Point) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}

// OccupiesTail reports whether a non-head segment is on p.
func (s *Snake) OccupiesTail(p Point) bool {
	for _, part := range s.Tail() {
		if part == p {
			return true
		}
	}
	return false
}

// Fitness is the selection weight used by fitness-proportional selection.
func (s *Snake) Fitness() float64 {
	lifetime := float64(s.Lifetime)
	if s.Score < fitnessScoreKnee {
		return math.Floor(lifetime * math.Pow(2, float64(s.Score)))
	}
	return lifetime * math.Pow(2, fitnessScoreKnee) * float64(s.Score-(fitnessScoreKnee-1))
}
