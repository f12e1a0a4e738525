package engine

import "testing"

// seqRand replays a fixed sequence of draws
type seqRand struct {
	values []int
	i      int
}

func (r *seqRand) Intn(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.i%len(r.values)]
	r.i++
	if v < 0 {
		v = -v
	}
	return v % n
}

func createTestConfig() *GameConfig {
	return &GameConfig{
		Name:        "Engine Test Config",
		Description: "Configuration for engine tests",
		GridWidth:   10,
		GridHeight:  8,
		TickRate:    DefaultTickRate,
		Seed:        42,
		Messages: Messages{
			Welcome:    "Welcome to engine test!",
			AppleEaten: "Apple! Length: %d",
			HitWall:    "Wall! Length: %d",
			HitSelf:    "Self! Length: %d",
			BoardFull:  "Full! Length: %d",
			Status:     "Length: %d",
		},
	}
}

func mustRestore(t testing.TB, snap RoundSnapshot) *RoundState {
	t.Helper()
	round, err := RestoreRound(snap, &seqRand{values: []int{0}})
	if err != nil {
		t.Fatalf("RestoreRound failed: %v", err)
	}
	return round
}

func cells(pairs ...int) []Cell {
	out := make([]Cell, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Cell{X: pairs[i], Y: pairs[i+1]})
	}
	return out
}
