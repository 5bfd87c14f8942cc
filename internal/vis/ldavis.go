//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/str"
	"gonum.org/v1/gonum/mat"
)

// LDAvis - the payload pyLDAvis.prepare() takes as keyword arguments
func LDAvis(phi, theta mat.Matrix, vocab str.Vocabulary, tf str.TermFrequency) (str.LDAvisPayload, error) {
	const (
		FAIL1 = "phi has %d terms; vocabulary %d; term counts %d"
		FAIL2 = "theta has %d topics and %d documents; phi has %d topics; there are %d document lengths"
	)

	var lp str.LDAvisPayload
	k, v := phi.Dims()
	d, kt := theta.Dims()

	if v != vocab.Len() || v != len(tf.Counts) {
		return lp, str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL1, v, vocab.Len(), len(tf.Counts)))
	}
	if kt != k || d != len(tf.DocLengths) {
		return lp, str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL2, kt, d, k, len(tf.DocLengths)))
	}

	lp.TopicTermDists = rows(phi)
	lp.DocTopicDists = rows(theta)
	lp.DocLengths = tf.DocLengths
	lp.Vocab = vocab.Terms
	lp.TermFrequency = tf.Counts
	return lp, nil
}

func rows(m mat.Matrix) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}
