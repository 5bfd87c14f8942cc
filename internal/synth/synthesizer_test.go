//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package synth

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func abcd(t *testing.T) str.Vocabulary {
	v, err := str.NewVocabulary([]string{"a", "b", "c", "d"})
	require.NoError(t, err)
	return v
}

func newsynth(t *testing.T, gm float64, jt int, seed int64) *Synthesizer {
	s, err := New(Options{GoodMass: gm, Jitter: jt, Rnd: rand.New(rand.NewSource(seed))})
	require.NoError(t, err)
	return s
}

func TestTopicWithoutJitter(t *testing.T) {
	s := newsynth(t, 0.75, 0, 1)
	a := str.Annotation{ID: 0, Label: "x", Keep: []string{"a", "b"}, Stop: []string{"c"}}

	p, err := s.Topic(a, abcd(t))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.375, 0.375, 0, 0.25}, p, 1e-12)
}

func TestTopicWithJitter(t *testing.T) {
	s := newsynth(t, 0.75, 5, 3)
	a := str.Annotation{ID: 0, Label: "x", Keep: []string{"a", "b"}, Stop: []string{"c"}}

	p, err := s.Topic(a, abcd(t))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, floats.Sum(p), 1e-9)
	assert.Equal(t, 0.0, p[2])
	for _, i := range []int{0, 1} {
		assert.InDelta(t, 0.375, p[i], 0.375*0.11)
	}
	assert.InDelta(t, 0.25, p[3], 0.25*0.11)
}

func TestTopicSumsToOne(t *testing.T) {
	words := []string{"w0", "w1", "w2", "w3", "w4", "w5", "w6", "w7", "w8", "w9"}
	v, err := str.NewVocabulary(words)
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(99))
	for trial := 0; trial < 200; trial++ {
		gm := 0.01 + 0.98*rnd.Float64()
		s := newsynth(t, gm, rnd.Intn(20), int64(trial))
		perm := rnd.Perm(len(words))
		nk := 1 + rnd.Intn(5)
		ns := rnd.Intn(4)
		a := str.Annotation{ID: trial}
		for _, i := range perm[:nk] {
			a.Keep = append(a.Keep, words[i])
		}
		for _, i := range perm[nk : nk+ns] {
			a.Stop = append(a.Stop, words[i])
		}

		p, err := s.Topic(a, v)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, floats.Sum(p), 1e-9)
		for _, w := range a.Stop {
			id, _ := v.ID(w)
			assert.Equal(t, 0.0, p[id])
		}
	}
}

func TestTopicEverythingKeptOrStopped(t *testing.T) {
	s := newsynth(t, 0.75, 0, 1)
	a := str.Annotation{ID: 0, Keep: []string{"a", "b", "d"}, Stop: []string{"c"}}
	p, err := s.Topic(a, abcd(t))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 0, 1.0 / 3}, p, 1e-12)
}

func TestTopicStopBeatsKeep(t *testing.T) {
	s := newsynth(t, 0.75, 0, 1)
	a := str.Annotation{ID: 0, Keep: []string{"a", "b"}, Stop: []string{"b"}}
	p, err := s.Topic(a, abcd(t))
	require.NoError(t, err)
	assert.Equal(t, 0.0, p[1])
	assert.InDelta(t, 0.75, p[0], 1e-12)
}

func TestBuildPadsAndSkips(t *testing.T) {
	s := newsynth(t, 0.75, 5, 5)
	anns := []str.Annotation{
		{ID: 0, Label: "first", Keep: []string{"a"}},
		{ID: 1, Label: "nothing kept", Stop: []string{"d"}},
		{ID: 2, Label: "unknown only", Keep: []string{"zzz"}},
		{ID: 3, Label: "second", Keep: []string{"b", "c"}},
	}

	out, err := s.Build(5, anns, abcd(t))
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.Equal(t, "first", out[0].Label)
	assert.Equal(t, 0, out[0].Source)
	assert.Equal(t, "second", out[1].Label)
	assert.Equal(t, 3, out[1].Source)
	for i, st := range out {
		assert.Equal(t, i, st.Index)
		assert.InDelta(t, 1.0, floats.Sum(st.Probs), 1e-9)
		if i >= 2 {
			assert.Equal(t, -1, st.Source)
			for _, p := range st.Probs {
				assert.InDelta(t, 0.25, p, 0.25*0.11)
			}
		}
	}
}

func TestBuildMoreAnnotationsThanK(t *testing.T) {
	s := newsynth(t, 0.75, 0, 5)
	anns := []str.Annotation{
		{ID: 0, Keep: []string{"a"}},
		{ID: 1, Keep: []string{"b"}},
	}
	out, err := s.Build(1, anns, abcd(t))
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestSeededRunsRepeat(t *testing.T) {
	a := []str.Annotation{{ID: 0, Keep: []string{"a"}, Stop: []string{"b"}}}
	x, err := newsynth(t, 0.75, 5, 42).Build(3, a, abcd(t))
	require.NoError(t, err)
	y, err := newsynth(t, 0.75, 5, 42).Build(3, a, abcd(t))
	require.NoError(t, err)
	assert.Equal(t, x, y)
}

func TestNewRejectsBadOptions(t *testing.T) {
	for _, gm := range []float64{0, 1, -0.5, 1.5} {
		_, err := New(Options{GoodMass: gm})
		assert.True(t, errors.Is(err, str.ErrDegenerate), "goodmass %v", gm)
	}
	for _, j := range []int{-1, 100, 150} {
		_, err := New(Options{GoodMass: 0.5, Jitter: j})
		assert.True(t, errors.Is(err, str.ErrDegenerate), "jitter %d", j)
	}
	_, err := New(Options{GoodMass: 0.5, Jitter: 99})
	assert.NoError(t, err)
}

func TestNormalizeFailures(t *testing.T) {
	assert.True(t, errors.Is(normalize([]float64{0, 0}), str.ErrNumerical))
	assert.True(t, errors.Is(normalize([]float64{0.5, -0.1}), str.ErrNumerical))
}

func TestDefaultNewK(t *testing.T) {
	assert.Equal(t, 14, DefaultNewK(10, 4))
	assert.Equal(t, 14, DefaultNewK(10, -1))
}
