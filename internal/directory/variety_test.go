package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateOffset(t *testing.T) {
	assert.Equal(t, 0, RotateOffset(0, 10), "session 0 should start at offset 0")
	assert.Equal(t, 0, RotateOffset(-1, 10), "negative session should start at offset 0")
	assert.Equal(t, 0, RotateOffset(3, 0), "non-positive limit should yield 0")

	// Deterministic and bounded.
	for session := 1; session < 200; session++ {
		first := RotateOffset(session, 10)
		second := RotateOffset(session, 10)
		require.Equal(t, first, second, "rotation not deterministic for session %d", session)
		require.GreaterOrEqual(t, first, 0)
		require.Less(t, first, offsetWindow)
	}

	// Consecutive sessions should not all land on the same page.
	assert.NotEqual(t, RotateOffset(1, 10), RotateOffset(2, 10))
}

func TestShuffleAndCap_Deterministic(t *testing.T) {
	records := []Position{
		{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"},
	}

	first := ShuffleAndCap(records, 42, 0)
	second := ShuffleAndCap(records, 42, 0)
	require.Len(t, first, len(records), "expected all records with no cap")
	assert.Equal(t, first, second, "same seed should produce the same order")
}

func TestShuffleAndCap_Cap(t *testing.T) {
	records := make([]Position, 10)
	for i := range records {
		records[i].Name = string(rune('a' + i))
	}
	capped := ShuffleAndCap(records, 7, 6)
	assert.Len(t, capped, 6)
	assert.Len(t, records, 10, "input slice must not be mutated")
}

func TestShuffleAndCap_Empty(t *testing.T) {
	assert.Nil(t, ShuffleAndCap(nil, 1, 6))
}
