//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdlfs

import (
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/str"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"strconv"
	"strings"
)

// Model - one fitted topic model: phi is K x V, theta is D x K
type Model struct {
	Phi   *mat.Dense
	Theta *mat.Dense
	Vocab str.Vocabulary
	Docs  []string
	TF    str.TermFrequency
}

func (m *Model) K() int {
	k, _ := m.Phi.Dims()
	return k
}

// check - the pieces have to agree with one another
func (m *Model) check() error {
	const (
		FAIL1 = "phi has %d columns but the vocabulary holds %d terms"
		FAIL2 = "phi has %d topics but theta has %d"
		FAIL3 = "theta has %d documents but there are %d document lengths"
	)
	k, v := m.Phi.Dims()
	if v != m.Vocab.Len() {
		return str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL1, v, m.Vocab.Len()))
	}
	d, kt := m.Theta.Dims()
	if k != kt {
		return str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL2, k, kt))
	}
	if m.TF.DocLengths != nil && len(m.TF.DocLengths) != d {
		return str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL3, d, len(m.TF.DocLengths)))
	}
	return nil
}

func todense(rows [][]float64) *mat.Dense {
	d := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, r := range rows {
		d.SetRow(i, r)
	}
	return d
}

// LoadPhi - segan topic-word file: the topic count, then "topicId p1 ... pV" per topic
func LoadPhi(fn string) (*mat.Dense, error) {
	rows, err := loadrows(fn, true, 1, "")
	if err != nil {
		return nil, err
	}
	return todense(rows), nil
}

// LoadTheta - segan document-topic file: the document count, then "docId p1 ... pK" per document
func LoadTheta(fn string) (*mat.Dense, error) {
	rows, err := loadrows(fn, true, 1, "")
	if err != nil {
		return nil, err
	}
	return todense(rows), nil
}

// SeganFiles - where a segan run left its results
type SeganFiles struct {
	Phi     string
	Theta   string
	Vocab   string
	TF      string // may be empty
	DocText string
}

// LoadSegan - read a segan results set; without a term-frequency file the counts are derived from the text
func LoadSegan(sf SeganFiles) (*Model, error) {
	var err error
	m := &Model{}

	if m.Vocab, err = LoadVocab(sf.Vocab); err != nil {
		return nil, err
	}
	if m.Phi, err = LoadPhi(sf.Phi); err != nil {
		return nil, err
	}
	if m.Theta, err = LoadTheta(sf.Theta); err != nil {
		return nil, err
	}
	if m.Docs, err = LoadDocText(sf.DocText); err != nil {
		return nil, err
	}

	if sf.TF != "" {
		m.TF, err = LoadTermFreq(sf.TF, m.Vocab.Len())
	} else {
		m.TF, err = DeriveTermFreq(m.Vocab, m.Docs)
	}
	if err != nil {
		return nil, err
	}

	if err = m.check(); err != nil {
		return nil, err
	}
	return m, nil
}

//
// MALLET
//

// MalletFiles - the outputs of "mallet train-topics" plus the text it was fed
type MalletFiles struct {
	DocTopics   string // --output-doc-topics
	WordCounts  string // --word-topic-counts-file
	WordWeights string // --topic-word-weights-file
	DocText     string
}

// LoadMalletVocab - the second column of the word-topic counts file is the term
func LoadMalletVocab(fn string) (str.Vocabulary, error) {
	const (
		FAIL = "expected 'id term topic:count ...'"
	)
	var terms []string
	err := eachline(fn, func(n int, line string) error {
		ff := strings.Fields(line)
		if len(ff) == 0 {
			return nil
		}
		if len(ff) < 2 {
			return malformed(fn, n, FAIL)
		}
		terms = append(terms, ff[1])
		return nil
	})
	if err != nil {
		return str.Vocabulary{}, err
	}
	v, err := str.NewVocabulary(terms)
	if err != nil {
		return v, err.(*str.ProcError).WithPath(fn)
	}
	return v, nil
}

// LoadMalletPhi - "topic<TAB>term<TAB>weight" lines become a K x V matrix whose rows sum to 1
func LoadMalletPhi(fn string, vocab str.Vocabulary) (*mat.Dense, error) {
	const (
		FAIL1 = "expected 'topic<TAB>term<TAB>weight'"
		FAIL2 = "term '%s' is not in the vocabulary"
		FAIL3 = "topic %d carries no weight"
		FAIL4 = "topic ids must run from 0: missing %d"
	)

	weights := make(map[int][]float64)
	maxk := -1
	err := eachline(fn, func(n int, line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		ff := strings.Split(strings.TrimSpace(line), "\t")
		if len(ff) != 3 {
			return malformed(fn, n, FAIL1)
		}
		k, e1 := strconv.Atoi(ff[0])
		w, e2 := strconv.ParseFloat(ff[2], 64)
		if e1 != nil || e2 != nil || k < 0 || w < 0 {
			return malformed(fn, n, FAIL1)
		}
		id, ok := vocab.ID(ff[1])
		if !ok {
			return str.NewProcError(COMP, str.ErrIndex, fmt.Sprintf("line %d: "+FAIL2, n, ff[1])).WithPath(fn)
		}
		if _, ok = weights[k]; !ok {
			weights[k] = make([]float64, vocab.Len())
		}
		weights[k][id] += w
		if k > maxk {
			maxk = k
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if maxk < 0 {
		return nil, str.NewProcError(COMP, str.ErrMalformed, "no rows").WithPath(fn)
	}

	phi := mat.NewDense(maxk+1, vocab.Len(), nil)
	for k := 0; k <= maxk; k++ {
		row, ok := weights[k]
		if !ok {
			return nil, str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL4, k)).WithPath(fn)
		}
		t := floats.Sum(row)
		if !(t > 0) {
			return nil, str.NewProcError(COMP, str.ErrNumerical, fmt.Sprintf(FAIL3, k)).WithPath(fn).WithTopic(k)
		}
		floats.Scale(1/t, row)
		phi.SetRow(k, row)
	}
	return phi, nil
}

// LoadMalletTheta - "docIndex name p1 ... pK"; '#' lines are headers
func LoadMalletTheta(fn string) (*mat.Dense, error) {
	rows, err := loadrows(fn, false, 2, "#")
	if err != nil {
		return nil, err
	}
	return todense(rows), nil
}

// LoadMallet - read a Mallet results set; term frequencies are always derived from the text
func LoadMallet(mf MalletFiles) (*Model, error) {
	var err error
	m := &Model{}

	if m.Vocab, err = LoadMalletVocab(mf.WordCounts); err != nil {
		return nil, err
	}
	if m.Phi, err = LoadMalletPhi(mf.WordWeights, m.Vocab); err != nil {
		return nil, err
	}
	if m.Theta, err = LoadMalletTheta(mf.DocTopics); err != nil {
		return nil, err
	}
	if m.Docs, err = LoadDocText(mf.DocText); err != nil {
		return nil, err
	}
	if m.TF, err = DeriveTermFreq(m.Vocab, m.Docs); err != nil {
		return nil, err
	}

	if err = m.check(); err != nil {
		return nil, err
	}
	return m, nil
}
