// Package systems implements the per-tick rules that act on snakes and food.
package systems

import "github.com/pthm-cable/snakes/components"

// Observation layout: four food flags followed by four obstacle flags,
// each ordered up, right, down, left.
const (
	ObsFoodUp = iota
	ObsFoodRight
	ObsFoodDown
	ObsFoodLeft
	ObsObstacleUp
	ObsObstacleRight
	ObsObstacleDown
	ObsObstacleLeft

	NumObservations
)

// Observation is the controller input vector. Every entry is 0 or 1.
type Observation [NumObservations]float64

// Observe computes what the snake senses from its current head position.
// Food flags compare coordinates strictly; obstacle flags look only at the
// four orthogonal neighbours of the head (own tail or off-board).
func Observe(s *components.Snake, food components.Point, boardSize int) Observation {
	var obs Observation
	head := s.Head()

	obs[ObsFoodUp] = flag(head.Y > food.Y)
	obs[ObsFoodRight] = flag(head.X < food.X)
	obs[ObsFoodDown] = flag(head.Y < food.Y)
	obs[ObsFoodLeft] = flag(head.X > food.X)

	for i, d := range components.Directions {
		next := head.Add(d.Vector())
		obs[ObsObstacleUp+i] = flag(!next.InBounds(boardSize) || s.OccupiesTail(next))
	}

	return obs
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
