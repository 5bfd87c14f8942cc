//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rank

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTopWordsTwoTopics(t *testing.T) {
	phi := mat.NewDense(2, 3, []float64{
		0.5, 0.3, 0.2,
		0.1, 0.1, 0.8,
	})

	rl, err := TopWords(phi, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, str.RankedList{{ID: 0, Prob: 0.5}, {ID: 1, Prob: 0.3}}, rl)

	rl, err = TopWords(phi, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, str.RankedList{{ID: 2, Prob: 0.8}, {ID: 0, Prob: 0.1}}, rl)
}

func TestTopShortInput(t *testing.T) {
	rl, err := Top([]float64{0.2, 0.7, 0.1}, 100)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2}, rl.IDs())
}

func TestTopTiesPreferLowerID(t *testing.T) {
	vals := []float64{0.1, 0.3, 0.1, 0.3, 0.1, 0.1}
	rl, err := Top(vals, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 0, 2}, rl.IDs())
}

func TestTopMatchesFullSort(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	vals := make([]float64, 5000)
	for i := range vals {
		// coarse values so that ties are common
		vals[i] = float64(rnd.Intn(300)) / 1000
	}

	limit := 100
	rl, err := Top(vals, limit)
	require.NoError(t, err)
	require.Len(t, rl, limit)

	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return vals[idx[a]] > vals[idx[b]] })
	assert.Equal(t, idx[:limit], rl.IDs())

	for i := 1; i < len(rl); i++ {
		assert.GreaterOrEqual(t, rl[i-1].Prob, rl[i].Prob)
	}
}

func TestTopDocs(t *testing.T) {
	theta := mat.NewDense(4, 2, []float64{
		0.9, 0.1,
		0.2, 0.8,
		0.6, 0.4,
		0.3, 0.7,
	})
	rl, err := TopDocs(theta, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, rl.IDs())

	all, err := AllTopDocs(theta, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []int{0, 2, 3, 1}, all[0].IDs())
}

func TestRankFailures(t *testing.T) {
	phi := mat.NewDense(2, 2, []float64{0.5, 0.5, 0.5, 0.5})

	_, err := TopWords(phi, 2, 10)
	assert.True(t, errors.Is(err, str.ErrIndex))

	_, err = TopWords(phi, -1, 10)
	assert.True(t, errors.Is(err, str.ErrIndex))

	_, err = TopWords(phi, 0, 0)
	assert.True(t, errors.Is(err, str.ErrDegenerate))

	_, err = Top(nil, 5)
	assert.True(t, errors.Is(err, str.ErrDegenerate))

	_, err = Top([]float64{0.1, math.NaN()}, 5)
	assert.True(t, errors.Is(err, str.ErrNumerical))
}

func TestRankDoesNotMutate(t *testing.T) {
	vals := []float64{0.1, 0.5, 0.4}
	_, err := Top(vals, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.5, 0.4}, vals)
}

func TestMass(t *testing.T) {
	rl := str.RankedList{{ID: 0, Prob: 0.5}, {ID: 1, Prob: 0.3}, {ID: 2, Prob: 0.2}}
	assert.InDelta(t, 0.8, rl.Mass(2), 1e-12)
	assert.InDelta(t, 1.0, rl.Mass(10), 1e-12)
}
