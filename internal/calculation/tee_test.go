package calculation

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSeq yields 1..n and records how many values were produced
func countingSeq(n int, produced *int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 1; i <= n; i++ {
			*produced++
			if !yield(i) {
				return
			}
		}
	}
}

func TestTee_BothViewsSeeEverything(t *testing.T) {
	produced := 0
	first, second, stop := Tee(countingSeq(5, &produced))
	defer stop()

	a := slices.Collect(first)
	b := slices.Collect(second)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, a)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, b)
	assert.Equal(t, 5, produced, "source read exactly once")
}

func TestTee_InterleavedPullsStayBounded(t *testing.T) {
	produced := 0
	first, second, stop := Tee(countingSeq(100, &produced))
	defer stop()

	nextA, stopA := iter.Pull(first)
	defer stopA()
	nextB, stopB := iter.Pull(second)
	defer stopB()

	for i := 1; i <= 100; i++ {
		a, ok := nextA()
		require.True(t, ok)
		b, ok := nextB()
		require.True(t, ok)
		assert.Equal(t, i, a)
		assert.Equal(t, i, b)
		assert.Equal(t, i, produced, "source ran ahead at %d", i)
	}

	_, ok := nextA()
	assert.False(t, ok)
	_, ok = nextB()
	assert.False(t, ok)
}

func TestTee_LaggingViewReplaysBuffer(t *testing.T) {
	produced := 0
	first, second, stop := Tee(countingSeq(4, &produced))
	defer stop()

	nextA, stopA := iter.Pull(first)
	defer stopA()

	for i := 1; i <= 3; i++ {
		v, ok := nextA()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 3, produced)

	assert.Equal(t, []int{1, 2, 3, 4}, slices.Collect(second))
	assert.Equal(t, 4, produced)

	v, ok := nextA()
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestTee_EarlyBreak(t *testing.T) {
	produced := 0
	first, second, stop := Tee(countingSeq(10, &produced))

	for v := range first {
		if v == 2 {
			break
		}
	}
	for v := range second {
		if v == 2 {
			break
		}
	}
	stop()

	assert.Equal(t, 2, produced)
}

func TestTee_Empty(t *testing.T) {
	produced := 0
	first, second, stop := Tee(countingSeq(0, &produced))
	defer stop()

	assert.Empty(t, slices.Collect(first))
	assert.Empty(t, slices.Collect(second))
}
