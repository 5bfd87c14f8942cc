//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func fixture(t *testing.T) Inputs {
	t.Helper()
	v, err := str.NewVocabulary([]string{"ball", "goal", "vote", "senate"})
	require.NoError(t, err)

	return Inputs{
		Vocab:   v,
		DocText: []string{"ball goal", "vote senate"},
		Phi: mat.NewDense(2, 4, []float64{
			0.5, 0.3, 0.1, 0.1,
			0.1, 0.1, 0.2, 0.6,
		}),
		TopWords: []str.RankedList{
			{{ID: 0, Prob: 0.5}, {ID: 1, Prob: 0.3}},
			{{ID: 3, Prob: 0.6}, {ID: 2, Prob: 0.2}},
		},
		TopDocs: []str.RankedList{
			{{ID: 0, Prob: 0.9}, {ID: 1, Prob: 0.1}},
			{{ID: 1, Prob: 0.8}, {ID: 0, Prob: 0.2}},
		},
		Labels:     map[int]string{1: "politics"},
		Points:     []str.TopicPoint{{Topic: 0, X: -0.2, Y: 0, Freq: 55}, {Topic: 1, X: 0.2, Y: 0, Freq: 45}},
		Milestones: []int{1, 10},
	}
}

func TestAssemble(t *testing.T) {
	vp, err := Assemble(fixture(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"ball", "goal", "vote", "senate"}, vp.Vocab)
	assert.Len(t, vp.DocTxt, 2)
	assert.Equal(t, []str.WordProb{{Prob: 0.6, WordID: 3}, {Prob: 0.2, WordID: 2}}, vp.TopTopicTerms[1])
	assert.Equal(t, []str.DocProb{{Prob: 0.9, DocID: 0}, {Prob: 0.1, DocID: 1}}, vp.TopDocsTopic[0])
	assert.Equal(t, map[int]string{1: "politics"}, vp.TopicLabels)
	assert.InDelta(t, 0.5, vp.CumulativeMass[0][1], 1e-12)
	assert.InDelta(t, 0.8, vp.CumulativeMass[0][10], 1e-12)
	assert.InDeltaSlice(t, []float64{0.1, 0.6}, vp.WordTopicProbs["senate"], 1e-12)
	assert.Len(t, vp.WordTopicProbs, 4)
	assert.Len(t, vp.TopicCoordinates, 2)
}

func TestAssembleJSONKeys(t *testing.T) {
	in := fixture(t)
	in.Labels = nil
	vp, err := Assemble(in)
	require.NoError(t, err)

	b, err := json.Marshal(vp)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, k := range []string{"vocab", "doc_txt", "top_topic_terms", "top_docs_topic", "topic_labels",
		"cumulative_mass", "word_topic_probs", "topic_coordinates"} {
		assert.Contains(t, raw, k)
	}
	assert.Equal(t, "{}", string(raw["topic_labels"]))
}

func TestAssembleRefusesGaps(t *testing.T) {
	in := fixture(t)
	in.Points = in.Points[:1]
	_, err := Assemble(in)
	assert.True(t, errors.Is(err, str.ErrMalformed))

	in = fixture(t)
	in.Labels = map[int]string{5: "nowhere"}
	_, err = Assemble(in)
	assert.True(t, errors.Is(err, str.ErrIndex))

	in = fixture(t)
	in.TopWords[0] = append(in.TopWords[0], str.RankedEntry{ID: 9, Prob: 0.01})
	_, err = Assemble(in)
	assert.True(t, errors.Is(err, str.ErrIndex))

	in = fixture(t)
	in.Phi = nil
	_, err = Assemble(in)
	assert.True(t, errors.Is(err, str.ErrMissingInput))
}

func TestLDAvis(t *testing.T) {
	in := fixture(t)
	theta := mat.NewDense(2, 2, []float64{0.9, 0.1, 0.2, 0.8})
	tf := str.TermFrequency{Counts: []int{1, 1, 1, 1}, DocLengths: []int{2, 2}}

	lp, err := LDAvis(in.Phi, theta, in.Vocab, tf)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.1, 0.2, 0.6}, lp.TopicTermDists[1])
	assert.Equal(t, []float64{0.2, 0.8}, lp.DocTopicDists[1])
	assert.Equal(t, []int{2, 2}, lp.DocLengths)

	tf.DocLengths = []int{2}
	_, err = LDAvis(in.Phi, theta, in.Vocab, tf)
	assert.True(t, errors.Is(err, str.ErrMalformed))
}

func TestDistanceMap(t *testing.T) {
	in := fixture(t)
	var buf bytes.Buffer
	require.NoError(t, DistanceMap(in.Points, in.Labels, &buf))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "1: politics")
	assert.Contains(t, html, "Inter-topic distance map")
}

func TestScatterSizes(t *testing.T) {
	sd := scatterpoints([]str.TopicPoint{{Topic: 0, Freq: 100}, {Topic: 1, Freq: 25}, {Topic: 2, Freq: 0}}, nil)
	assert.Equal(t, 60, sd[0].SymbolSize)
	assert.Equal(t, 34, sd[1].SymbolSize)
	assert.Equal(t, 8, sd[2].SymbolSize)
	assert.Equal(t, "2", sd[2].Name)
}
