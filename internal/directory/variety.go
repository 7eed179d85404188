package directory

import "math/rand"

// offsetWindow bounds how deep offset rotation pages into the directory.
// Rotating past the tail of the result set would return nothing.
const offsetWindow = 50

// RotateOffset derives a page offset from the per-owner search session
// counter so repeated searches surface different subsets. Deterministic for a
// given session value.
func RotateOffset(session, limit int) int {
	if limit <= 0 || session <= 0 {
		return 0
	}
	return (session * limit) % offsetWindow
}

// ShuffleAndCap reorders records with the given seed and keeps at most keep
// of them. Pure presentation variety: the input slice is left untouched.
func ShuffleAndCap(records []Position, seed int64, keep int) []Position {
	if len(records) == 0 {
		return nil
	}
	out := make([]Position, len(records))
	copy(out, records)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if keep > 0 && len(out) > keep {
		out = out[:keep]
	}
	return out
}
