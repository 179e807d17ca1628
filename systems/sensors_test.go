package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/snakes/components"
	"github.com/pthm-cable/snakes/neural"
)

func testSnake(body ...components.Point) *components.Snake {
	rng := rand.New(rand.NewSource(42))
	s := components.NewSnake(body[0], 100, neural.MustNewNetwork(rng, neural.Gaussian, neural.DefaultSizes...))
	s.Body = append([]components.Point(nil), body...)
	s.Score = len(body) - 1
	return s
}

func TestObserveFoodFlags(t *testing.T) {
	tests := []struct {
		name string
		food components.Point
		want [4]float64 // up, right, down, left
	}{
		{"up-right", components.Point{X: 4, Y: 0}, [4]float64{1, 1, 0, 0}},
		{"down-left", components.Point{X: 0, Y: 4}, [4]float64{0, 0, 1, 1}},
		{"same column above", components.Point{X: 2, Y: 1}, [4]float64{1, 0, 0, 0}},
		{"same row right", components.Point{X: 3, Y: 2}, [4]float64{0, 1, 0, 0}},
		{"on head", components.Point{X: 2, Y: 2}, [4]float64{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSnake(components.Point{X: 2, Y: 2})
			obs := Observe(s, tt.food, 5)
			for i := 0; i < 4; i++ {
				if obs[ObsFoodUp+i] != tt.want[i] {
					t.Fatalf("food flags = %v, want %v", obs[:4], tt.want)
				}
			}
		})
	}
}

func TestObserveWalls(t *testing.T) {
	tests := []struct {
		name string
		head components.Point
		want [4]float64 // up, right, down, left
	}{
		{"center", components.Point{X: 2, Y: 2}, [4]float64{0, 0, 0, 0}},
		{"top-left corner", components.Point{X: 0, Y: 0}, [4]float64{1, 0, 0, 1}},
		{"bottom-right corner", components.Point{X: 4, Y: 4}, [4]float64{0, 1, 1, 0}},
		{"right edge", components.Point{X: 4, Y: 2}, [4]float64{0, 1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSnake(tt.head)
			obs := Observe(s, tt.head, 5)
			for i := 0; i < 4; i++ {
				if obs[ObsObstacleUp+i] != tt.want[i] {
					t.Fatalf("obstacle flags = %v, want %v", obs[4:], tt.want)
				}
			}
		})
	}
}

func TestObserveOwnBody(t *testing.T) {
	// Head at (2,2) with tail to the left and below.
	s := testSnake(
		components.Point{X: 2, Y: 2},
		components.Point{X: 1, Y: 2},
		components.Point{X: 1, Y: 3},
		components.Point{X: 2, Y: 3},
	)
	obs := Observe(s, components.Point{X: 0, Y: 0}, 10)

	want := [4]float64{0, 0, 1, 1}
	for i := 0; i < 4; i++ {
		if obs[ObsObstacleUp+i] != want[i] {
			t.Fatalf("obstacle flags = %v, want %v", obs[4:], want)
		}
	}
}

func TestObserveIgnoresDiagonalsAndDistance(t *testing.T) {
	s := testSnake(
		components.Point{X: 2, Y: 2},
		components.Point{X: 3, Y: 3}, // diagonal
		components.Point{X: 2, Y: 4}, // two cells down
	)
	obs := Observe(s, components.Point{X: 2, Y: 2}, 10)
	for i := ObsObstacleUp; i <= ObsObstacleLeft; i++ {
		if obs[i] != 0 {
			t.Fatalf("obstacle flags = %v, want all zero", obs[4:])
		}
	}
}
