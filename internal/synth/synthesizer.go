//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package synth

import (
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/mm"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"gonum.org/v1/gonum/floats"
	"math"
	"math/rand"
	"time"
)

const (
	COMP = "synth"
)

type Options struct {
	GoodMass float64
	Jitter   int // percent
	Rnd      *rand.Rand
	Msg      *mm.MessageMaker
}

// Synthesizer - turns annotations into prior topic-word distributions
type Synthesizer struct {
	opt Options
}

func New(o Options) (*Synthesizer, error) {
	const (
		FAIL1 = "goodmass must lie strictly between 0 and 1: %v"
		FAIL2 = "jitter must lie between 0 and 99: %d"
	)
	if !(o.GoodMass > 0 && o.GoodMass < 1) {
		return nil, str.NewProcError(COMP, str.ErrDegenerate, fmt.Sprintf(FAIL1, o.GoodMass))
	}
	if o.Jitter < 0 || o.Jitter >= 100 {
		return nil, str.NewProcError(COMP, str.ErrDegenerate, fmt.Sprintf(FAIL2, o.Jitter))
	}
	if o.Rnd == nil {
		o.Rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Msg == nil {
		o.Msg = mm.Silent()
	}
	return &Synthesizer{opt: o}, nil
}

// Build - one topic per annotation with kept words, then uniform topics until there are newK of them
func (s *Synthesizer) Build(newK int, anns []str.Annotation, vocab str.Vocabulary) ([]str.SynthesizedTopic, error) {
	const (
		MSG1 = "annotation %d ('%s') keeps no known words: skipped"
		MSG2 = "%d annotated topics exceed the requested %d topics"
		MSG3 = "synthesized %d annotated and %d padded topics over %d words"
		FAIL = "empty vocabulary"
	)

	if vocab.Len() == 0 {
		return nil, str.NewProcError(COMP, str.ErrDegenerate, FAIL)
	}

	var out []str.SynthesizedTopic
	for _, a := range anns {
		p, err := s.Topic(a, vocab)
		if err != nil {
			return nil, err
		}
		if p == nil {
			s.opt.Msg.NOTE(fmt.Sprintf(MSG1, a.ID, a.Label))
			continue
		}
		out = append(out, str.SynthesizedTopic{Index: len(out), Label: a.Label, Source: a.ID, Probs: p})
	}

	emitted := len(out)
	if emitted > newK {
		s.opt.Msg.WARN(fmt.Sprintf(MSG2, emitted, newK))
	}

	for len(out) < newK {
		p, err := s.Uniform(vocab.Len())
		if err != nil {
			return nil, err
		}
		out = append(out, str.SynthesizedTopic{Index: len(out), Source: -1, Probs: p})
	}

	s.opt.Msg.FYI(fmt.Sprintf(MSG3, emitted, len(out)-emitted, vocab.Len()))
	return out, nil
}

// Topic - the prior for one annotation in vocabulary order; nil if nothing known was kept
func (s *Synthesizer) Topic(a str.Annotation, vocab str.Vocabulary) ([]float64, error) {
	const (
		MSG1 = "annotation %d: '%s' is not in the vocabulary"
	)

	lookup := func(ww []string) map[int]struct{} {
		ids := make(map[int]struct{}, len(ww))
		for _, w := range ww {
			if id, ok := vocab.ID(w); ok {
				ids[id] = struct{}{}
			} else {
				s.opt.Msg.WARN(fmt.Sprintf(MSG1, a.ID, w))
			}
		}
		return ids
	}

	stop := lookup(a.Stop)
	keep := lookup(a.Keep)
	for id := range stop {
		// a word both kept and stopped is stopped
		delete(keep, id)
	}
	if len(keep) == 0 {
		return nil, nil
	}

	nbad := vocab.Len() - len(keep) - len(stop)
	kb := s.opt.GoodMass / float64(len(keep))
	bb := 0.0
	if nbad > 0 {
		bb = (1 - s.opt.GoodMass) / float64(nbad)
	} else {
		kb = 1 / float64(len(keep))
	}

	p := make([]float64, vocab.Len())
	for i := range p {
		if _, ok := stop[i]; ok {
			continue
		}
		if _, ok := keep[i]; ok {
			p[i] = s.jitter(kb)
		} else {
			p[i] = s.jitter(bb)
		}
	}

	if err := normalize(p); err != nil {
		return nil, err.(*str.ProcError).WithTopic(a.ID)
	}
	return p, nil
}

// Uniform - a padded topic: 1/V everywhere, jittered and renormalized
func (s *Synthesizer) Uniform(v int) ([]float64, error) {
	p := make([]float64, v)
	for i := range p {
		p[i] = s.jitter(1 / float64(v))
	}
	if err := normalize(p); err != nil {
		return nil, err
	}
	return p, nil
}

// jitter - base +/- up to Jitter percent of itself
func (s *Synthesizer) jitter(base float64) float64 {
	if s.opt.Jitter == 0 {
		return base
	}
	r := s.opt.Rnd.Intn(2*s.opt.Jitter+1) - s.opt.Jitter
	return base + base*float64(r)/100
}

// normalize - scale p so that it sums to 1
func normalize(p []float64) error {
	const (
		FAIL1 = "value at %d is %v"
		FAIL2 = "total mass is %v"
	)
	for i, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return str.NewProcError(COMP, str.ErrNumerical, fmt.Sprintf(FAIL1, i, v))
		}
	}
	t := floats.Sum(p)
	if !(t > 0) || math.IsInf(t, 0) {
		return str.NewProcError(COMP, str.ErrNumerical, fmt.Sprintf(FAIL2, t))
	}
	floats.Scale(1/t, p)
	return nil
}

// DefaultNewK - how many topics to ask for when the user did not say
func DefaultNewK(nanns int, added int) int {
	if added < 0 {
		added = vv.ADDEDTOPICS
	}
	return nanns + added
}
