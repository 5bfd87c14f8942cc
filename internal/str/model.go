//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import (
	"fmt"
	"golang.org/x/text/unicode/norm"
)

//
// VOCABULARY
//

// Vocabulary - ordered unique terms; the position of a term is its id
type Vocabulary struct {
	Terms []string
	index map[string]int
}

// NewVocabulary - index the terms; a repeated term is a malformed vocabulary
func NewVocabulary(terms []string) (Vocabulary, error) {
	idx := make(map[string]int, len(terms))
	for i, t := range terms {
		k := norm.NFC.String(t)
		if j, ok := idx[k]; ok {
			return Vocabulary{}, NewProcError("vocab", ErrMalformed, fmt.Sprintf("term '%s' at %d repeats term %d", t, i, j))
		}
		idx[k] = i
	}
	return Vocabulary{Terms: terms, index: idx}, nil
}

func (v Vocabulary) Len() int {
	return len(v.Terms)
}

// ID - look up a term; the lookup is NFC-normalized so that editor input matches the sampler's output
func (v Vocabulary) ID(term string) (int, bool) {
	i, ok := v.index[norm.NFC.String(term)]
	return i, ok
}

func (v Vocabulary) Term(id int) (string, bool) {
	if id < 0 || id >= len(v.Terms) {
		return "", false
	}
	return v.Terms[id], true
}

//
// RANKED LISTS
//

// RankedEntry - an id (word or doc) and its probability under one topic
type RankedEntry struct {
	ID   int
	Prob float64
}

// RankedList - descending by Prob; equal Prob ascending by ID
type RankedList []RankedEntry

func (rl RankedList) IDs() []int {
	ids := make([]int, len(rl))
	for i := range rl {
		ids[i] = rl[i].ID
	}
	return ids
}

// Mass - cumulative probability of the first n entries
func (rl RankedList) Mass(n int) float64 {
	if n > len(rl) {
		n = len(rl)
	}
	var m float64
	for i := 0; i < n; i++ {
		m += rl[i].Prob
	}
	return m
}

//
// ANNOTATIONS AND RECONCILIATION
//

// Annotation - what an editor said about one old topic
type Annotation struct {
	ID    int
	Label string
	Keep  []string
	Stop  []string
}

// OverlapScore - how one old topic's kept words sit in one new topic's ranked list
type OverlapScore struct {
	Old     int
	New     int
	Overlap int
	Pos     int
}

// Better - does o beat p? more overlap first, then an earlier first hit
func (o OverlapScore) Better(p OverlapScore) bool {
	if o.Overlap != p.Overlap {
		return o.Overlap > p.Overlap
	}
	return o.Pos < p.Pos
}

//
// SYNTHESIS
//

// SynthesizedTopic - one line of the prior topic file
type SynthesizedTopic struct {
	Index  int
	Label  string
	Source int // old topic id; -1 if padded
	Probs  []float64
}

//
// GEOMETRY
//

type TopicPoint struct {
	Topic int     `json:"topic"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Freq  float64 `json:"freq"`
}

//
// CORPUS COUNTS
//

// TermFrequency - corpus counts per term id and token counts per document
type TermFrequency struct {
	Counts     []int
	DocLengths []int
}
