//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/gen"
	"github.com/e-gun/TopicDistillery/internal/str"
	"gonum.org/v1/gonum/mat"
)

const (
	COMP = "vis"
)

// Inputs - the finished sub-results that go into one payload
type Inputs struct {
	Vocab      str.Vocabulary
	DocText    []string
	Phi        mat.Matrix // K x V; source of the per-word topic vectors
	TopWords   []str.RankedList
	TopDocs    []str.RankedList
	Labels     map[int]string // may be nil
	Points     []str.TopicPoint
	Milestones []int
}

// Assemble - compose the visualization payload; every sub-result must be present and sized for K topics
func Assemble(in Inputs) (str.VisPayload, error) {
	const (
		FAIL1 = "no topic-word matrix"
		FAIL2 = "%d topics but %d %s"
		FAIL3 = "label for topic %d but only %d topics"
		FAIL4 = "topic-word matrix has %d columns for %d terms"
	)

	var vp str.VisPayload
	if in.Phi == nil {
		return vp, str.NewProcError(COMP, str.ErrMissingInput, FAIL1)
	}
	k, v := in.Phi.Dims()
	if v != in.Vocab.Len() {
		return vp, str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL4, v, in.Vocab.Len()))
	}

	for _, c := range []struct {
		n    int
		what string
	}{
		{len(in.TopWords), "word lists"},
		{len(in.TopDocs), "document lists"},
		{len(in.Points), "map coordinates"},
	} {
		if c.n != k {
			return vp, str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL2, k, c.n, c.what))
		}
	}

	labels := make(map[int]string, len(in.Labels))
	for t, l := range in.Labels {
		if t < 0 || t >= k {
			return vp, str.NewProcError(COMP, str.ErrIndex, fmt.Sprintf(FAIL3, t, k))
		}
		labels[t] = l
	}

	words, err := wordlists(in.TopWords, v)
	if err != nil {
		return vp, err
	}

	vp = str.VisPayload{
		Vocab:            in.Vocab.Terms,
		DocTxt:           in.DocText,
		TopTopicTerms:    words,
		TopDocsTopic:     doclists(in.TopDocs),
		TopicLabels:      labels,
		CumulativeMass:   CumulativeMass(in.TopWords, in.Milestones),
		WordTopicProbs:   WordTopicProbs(in.Phi, in.Vocab, in.TopWords),
		TopicCoordinates: in.Points,
	}
	if vp.DocTxt == nil {
		vp.DocTxt = []string{}
	}
	return vp, nil
}

func wordlists(ll []str.RankedList, v int) (map[int][]str.WordProb, error) {
	const (
		FAIL = "word id %d outside a vocabulary of %d"
	)
	out := make(map[int][]str.WordProb, len(ll))
	for t, rl := range ll {
		wp := make([]str.WordProb, len(rl))
		for i, e := range rl {
			if e.ID < 0 || e.ID >= v {
				return nil, str.NewProcError(COMP, str.ErrIndex, fmt.Sprintf(FAIL, e.ID, v)).WithTopic(t)
			}
			wp[i] = str.WordProb{Prob: e.Prob, WordID: e.ID}
		}
		out[t] = wp
	}
	return out, nil
}

func doclists(ll []str.RankedList) map[int][]str.DocProb {
	out := make(map[int][]str.DocProb, len(ll))
	for t, rl := range ll {
		dp := make([]str.DocProb, len(rl))
		for i, e := range rl {
			dp[i] = str.DocProb{Prob: e.Prob, DocID: e.ID}
		}
		out[t] = dp
	}
	return out
}

// CumulativeMass - topic -> rank -> mass of the top 'rank' words; ranks past the end of a list use the whole list
func CumulativeMass(ll []str.RankedList, milestones []int) map[int]map[int]float64 {
	out := make(map[int]map[int]float64, len(ll))
	for t, rl := range ll {
		cm := make(map[int]float64, len(milestones))
		for _, r := range milestones {
			cm[r] = rl.Mass(r)
		}
		out[t] = cm
	}
	return out
}

// WordTopicProbs - for every word that shows up in some top list: its probability under each topic
func WordTopicProbs(phi mat.Matrix, vocab str.Vocabulary, ll []str.RankedList) map[string][]float64 {
	seen := make(map[int]struct{})
	for _, rl := range ll {
		for _, e := range rl {
			seen[e.ID] = struct{}{}
		}
	}

	out := make(map[string][]float64, len(seen))
	for _, id := range gen.SortedKeys(seen) {
		term, ok := vocab.Term(id)
		if !ok {
			continue
		}
		out[term] = mat.Col(nil, id, phi)
	}
	return out
}
