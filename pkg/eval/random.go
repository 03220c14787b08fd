package eval

import "math/rand"

// Random adds a small amount of noise to evaluations, to vary otherwise-deterministic play.
// The limit specifies how many centipawns to add/remove, in the range [-limit/2; limit/2].
// The zero value always returns zero.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

// Sample returns a noise offset to add to a leaf score.
func (n Random) Sample() Score {
	if n.limit <= 0 {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}
