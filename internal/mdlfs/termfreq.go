//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdlfs

import (
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/nlp"
	"golang.org/x/text/unicode/norm"
	"strings"
)

// nonzeroer - the sparse matrices nlp hands back can walk their own entries
type nonzeroer interface {
	DoNonZero(fn func(i, j int, v float64))
}

// DeriveTermFreq - count the model's terms in the raw documents
//
// the vectoriser's tokeniser lowercases; terms that differ only by case share one slot
// and the count goes to the first of them
func DeriveTermFreq(vocab str.Vocabulary, docs []string) (str.TermFrequency, error) {
	tf := str.TermFrequency{
		Counts:     make([]int, vocab.Len()),
		DocLengths: make([]int, len(docs)),
	}
	if len(docs) == 0 || vocab.Len() == 0 {
		return tf, nil
	}

	vectoriser := nlp.NewCountVectoriser()

	// slot -> first vocabulary id that lowercases to it
	var owner []int
	vectoriser.Vocabulary = make(map[string]int, vocab.Len())
	for id, t := range vocab.Terms {
		k := strings.ToLower(norm.NFC.String(t))
		if _, ok := vectoriser.Vocabulary[k]; ok {
			continue
		}
		vectoriser.Vocabulary[k] = len(owner)
		owner = append(owner, id)
	}

	nd := make([]string, len(docs))
	for i := range docs {
		nd[i] = norm.NFC.String(docs[i])
	}

	counts, err := vectoriser.Transform(nd...)
	if err != nil {
		return tf, str.NewProcError(COMP, str.ErrMalformed, "").Wrap(err)
	}

	// terms x documents
	add := func(slot, doc int, v float64) {
		c := int(v)
		tf.Counts[owner[slot]] += c
		tf.DocLengths[doc] += c
	}

	if nz, ok := counts.(nonzeroer); ok {
		nz.DoNonZero(add)
	} else {
		r, c := counts.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if v := counts.At(i, j); v != 0 {
					add(i, j, v)
				}
			}
		}
	}
	return tf, nil
}
