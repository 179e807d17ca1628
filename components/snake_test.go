package components

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/snakes/neural"
)

func newTestSnake(start Point, maxMoves int) *Snake {
	rng := rand.New(rand.NewSource(42))
	return NewSnake(start, maxMoves, neural.MustNewNetwork(rng, neural.Gaussian, neural.DefaultSizes...))
}

func checkInvariant(t *testing.T, s *Snake) {
	t.Helper()
	if len(s.Body)-1 != s.Score {
		t.Fatalf("len(body)-1 = %d, score = %d", len(s.Body)-1, s.Score)
	}
}

func TestDirectionVectors(t *testing.T) {
	tests := []struct {
		d    Direction
		want Point
	}{
		{Up, Point{0, -1}},
		{Right, Point{1, 0}},
		{Down, Point{0, 1}},
		{Left, Point{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := tt.d.Vector(); got != tt.want {
				t.Errorf("%v.Vector() = %v, want %v", tt.d, got, tt.want)
			}
		})
	}

	for i, d := range Directions {
		if int(d) != i {
			t.Errorf("Directions[%d] = %v", i, d)
		}
	}
}

func TestPointAdd(t *testing.T) {
	p := Point{2, 3}
	q := p.Add(Point{-1, 4})
	if q != (Point{1, 7}) {
		t.Errorf("Add = %v, want (1,7)", q)
	}
	if p != (Point{2, 3}) {
		t.Error("Add mutated receiver")
	}
	if !q.Equals(Point{1, 7}) {
		t.Error("Equals false for equal points")
	}
}

func TestMoveKeepsLength(t *testing.T) {
	s := newTestSnake(Point{2, 2}, 100)
	s.Eat()
	s.Move(Right)
	s.Eat()
	s.Move(Right)
	checkInvariant(t, s)

	before := s.Len()
	s.Move(Down)
	if s.Len() != before {
		t.Errorf("Move changed length: %d -> %d", before, s.Len())
	}

	want := []Point{{4, 3}, {4, 2}, {3, 2}}
	for i, p := range want {
		if s.Body[i] != p {
			t.Fatalf("body = %v, want %v", s.Body, want)
		}
	}
	checkInvariant(t, s)
}

func TestGrowDuplicatesTail(t *testing.T) {
	s := newTestSnake(Point{1, 1}, 10)
	s.Eat()
	s.Move(Right)
	s.RemainingMoves = 3

	last := s.Body[len(s.Body)-1]
	before := s.Len()
	s.Grow()

	if s.Len() != before+1 {
		t.Errorf("Grow: length %d -> %d", before, s.Len())
	}
	if s.Body[len(s.Body)-1] != last {
		t.Errorf("new segment %v, want %v", s.Body[len(s.Body)-1], last)
	}
	if s.RemainingMoves != s.MaxMoves {
		t.Errorf("RemainingMoves = %d, want %d", s.RemainingMoves, s.MaxMoves)
	}
}

func TestEatKeepsInvariant(t *testing.T) {
	s := newTestSnake(Point{0, 0}, 50)
	for i := 0; i < 5; i++ {
		s.Eat()
		checkInvariant(t, s)
		s.Move(Right)
		checkInvariant(t, s)
	}
	if s.Score != 5 {
		t.Errorf("score = %d, want 5", s.Score)
	}
}

func TestWallCollision(t *testing.T) {
	const board = 5
	tests := []struct {
		name  string
		start Point
		dir   Direction
	}{
		{"right edge", Point{board - 1, 2}, Right},
		{"left edge", Point{0, 2}, Left},
		{"top edge", Point{2, 0}, Up},
		{"bottom edge", Point{2, board - 1}, Down},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSnake(tt.start, 100)
			if !s.CheckCollisions(board) {
				t.Fatal("snake dead before moving")
			}
			s.Move(tt.dir)
			if s.CheckCollisions(board) {
				t.Errorf("head at %v should be dead on a %d board", s.Head(), board)
			}
		})
	}
}

func TestSelfCollision(t *testing.T) {
	s := newTestSnake(Point{2, 2}, 100)
	s.Body = []Point{{2, 2}, {3, 2}, {3, 3}, {2, 3}, {1, 3}}
	s.Score = 4

	// Moving down lands on (2,3), which is still tail after the shift.
	s.Move(Down)
	if s.CheckCollisions(10) {
		t.Errorf("head %v overlaps tail %v but snake is alive", s.Head(), s.Tail())
	}
}

func TestCheckCollisionsIdempotent(t *testing.T) {
	alive := newTestSnake(Point{2, 2}, 100)
	first := alive.CheckCollisions(5)
	second := alive.CheckCollisions(5)
	if !first || !second || !alive.Alive {
		t.Error("in-bounds snake should stay alive across repeated checks")
	}

	dead := newTestSnake(Point{4, 2}, 100)
	dead.Move(Right)
	dead.CheckCollisions(5)
	snapshot := *dead
	dead.CheckCollisions(5)
	if dead.Alive || dead.Lifetime != snapshot.Lifetime || dead.Head() != snapshot.Head() {
		t.Error("second CheckCollisions changed state")
	}
}

func TestStarvation(t *testing.T) {
	s := newTestSnake(Point{2, 2}, 3)
	s.Move(Right)
	s.Move(Down)
	if !s.Alive {
		t.Fatal("snake starved early")
	}
	if s.Lifetime != 2 {
		t.Errorf("lifetime = %d, want 2", s.Lifetime)
	}

	s.Move(Left)
	if s.Alive {
		t.Error("snake should starve when moves run out")
	}
	if s.Lifetime != 0 {
		t.Errorf("lifetime = %d, want 0 after starvation", s.Lifetime)
	}
}

func TestFitness(t *testing.T) {
	tests := []struct {
		name     string
		lifetime int
		score    int
		want     float64
	}{
		{"no food", 37, 0, 37},
		{"three food", 10, 3, 80},
		{"nine food", 2, 9, 1024},
		{"knee", 3, 10, 3 * 1024},
		{"past knee", 3, 12, 3 * 1024 * 3},
		{"starved", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Snake{Lifetime: tt.lifetime, Score: tt.score}
			if got := s.Fitness(); got != tt.want {
				t.Errorf("Fitness() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecideMapsOutputToDirection(t *testing.T) {
	s := newTestSnake(Point{2, 2}, 10)
	for _, l := range s.Brain.Layers {
		l.W.Zero()
		l.B.Zero()
	}
	s.Brain.Layers[len(s.Brain.Layers)-1].B.SetVec(int(Left), 3)

	if got := s.Decide([8]float64{}); got != Left {
		t.Errorf("Decide = %v, want left", got)
	}
}
