//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package recon

import (
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/gen"
	"github.com/e-gun/TopicDistillery/internal/mm"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"sort"
	"strings"
)

const (
	COMP = "recon"
)

// Reconciler - carries the labels of an old, annotated topic solution over to a new one
type Reconciler struct {
	Strategy string // vv.RECONDROP or vv.RECONREASSIGN
	Msg      *mm.MessageMaker
}

func New(strategy string, m *mm.MessageMaker) *Reconciler {
	if strategy == "" {
		strategy = vv.RECONDEFAULT
	}
	if m == nil {
		m = mm.Silent()
	}
	return &Reconciler{Strategy: strategy, Msg: m}
}

type holding struct {
	ann   int
	score str.OverlapScore
}

// Reconcile - map new topic ids to old labels; 'lists' are the new topics' ranked words
func (r *Reconciler) Reconcile(anns []str.Annotation, lists []str.RankedList, vocab str.Vocabulary) (map[int]string, error) {
	const (
		MSG1 = "old topic %d ('%s') overlaps no new topic: label dropped"
		MSG2 = "new topic %d: '%s' (overlap %d, pos %d) beats '%s' (overlap %d, pos %d)"
		MSG3 = "old topic %d ('%s') -> new topic %d (overlap %d, pos %d)"
		MSG4 = "reconciled %d of %d labelled topics (%s) onto %d new topics"
	)

	labelled := Labelled(Conflate(anns))
	sort.SliceStable(labelled, func(i, j int) bool { return labelled[i].ID < labelled[j].ID })

	cands := make([][]str.OverlapScore, len(labelled))
	for i, a := range labelled {
		ss, err := Score(a, lists, vocab)
		if err != nil {
			return nil, err
		}
		cands[i] = Candidates(ss)
	}

	ptr := make([]int, len(labelled))
	queue := make([]int, len(labelled))
	for i := range queue {
		queue[i] = i
	}

	held := make(map[int]holding)
	for len(queue) > 0 {
		o := queue[0]
		queue = queue[1:]

		if ptr[o] >= len(cands[o]) {
			r.Msg.NOTE(fmt.Sprintf(MSG1, labelled[o].ID, labelled[o].Label))
			continue
		}

		s := cands[o][ptr[o]]
		inc, taken := held[s.New]
		if !taken {
			held[s.New] = holding{ann: o, score: s}
			continue
		}

		// the incumbent keeps the topic unless the challenger is strictly better
		w, l := inc, holding{ann: o, score: s}
		if s.Better(inc.score) {
			w, l = l, inc
			held[s.New] = w
		}
		r.Msg.WARN(fmt.Sprintf(MSG2, s.New, labelled[w.ann].Label, w.score.Overlap, w.score.Pos,
			labelled[l.ann].Label, l.score.Overlap, l.score.Pos))

		if r.Strategy == vv.RECONREASSIGN {
			ptr[l.ann]++
			queue = append(queue, l.ann)
		} else {
			r.Msg.NOTE(fmt.Sprintf(MSG1, labelled[l.ann].ID, labelled[l.ann].Label))
		}
	}

	labels := make(map[int]string, len(held))
	for _, k := range gen.SortedKeys(held) {
		h := held[k]
		labels[k] = labelled[h.ann].Label
		r.Msg.PEEK(fmt.Sprintf(MSG3, labelled[h.ann].ID, labelled[h.ann].Label, k, h.score.Overlap, h.score.Pos))
	}
	pct := "n/a"
	if len(labelled) > 0 {
		pct = gen.FmtPct(float64(len(labels)) / float64(len(labelled)))
	}
	r.Msg.FYI(fmt.Sprintf(MSG4, len(labels), len(labelled), pct, len(lists)))

	return labels, nil
}

// Score - how the kept words of one annotation sit in each new topic's ranked list
func Score(a str.Annotation, lists []str.RankedList, vocab str.Vocabulary) ([]str.OverlapScore, error) {
	const (
		FAIL = "word id %d not in a vocabulary of %d"
	)

	// a word that is both kept and stopped counts as stopped
	keep := make(map[int]struct{}, len(a.Keep))
	for _, w := range a.Keep {
		if id, ok := vocab.ID(w); ok {
			keep[id] = struct{}{}
		}
	}
	for _, w := range a.Stop {
		if id, ok := vocab.ID(w); ok {
			delete(keep, id)
		}
	}

	scores := make([]str.OverlapScore, len(lists))
	for k, rl := range lists {
		s := str.OverlapScore{Old: a.ID, New: k, Pos: len(rl)}
		for i, e := range rl {
			if e.ID < 0 || e.ID >= vocab.Len() {
				return nil, str.NewProcError(COMP, str.ErrIndex, fmt.Sprintf(FAIL, e.ID, vocab.Len())).WithTopic(k)
			}
			if _, ok := keep[e.ID]; ok {
				s.Overlap++
				if i < s.Pos {
					s.Pos = i
				}
			}
		}
		scores[k] = s
	}
	return scores, nil
}

// Candidates - the scores worth trying, best first; a topic with no overlap is never a candidate
func Candidates(ss []str.OverlapScore) []str.OverlapScore {
	var cc []str.OverlapScore
	for _, s := range ss {
		if s.Overlap > 0 {
			cc = append(cc, s)
		}
	}
	sort.SliceStable(cc, func(i, j int) bool {
		if cc[i].Better(cc[j]) {
			return true
		}
		if cc[j].Better(cc[i]) {
			return false
		}
		return cc[i].New < cc[j].New
	})
	return cc
}

// Labelled - only the annotations with a label take part in reconciliation
func Labelled(anns []str.Annotation) []str.Annotation {
	var out []str.Annotation
	for _, a := range anns {
		if strings.TrimSpace(a.Label) != "" {
			out = append(out, a)
		}
	}
	return out
}

// Conflate - merge annotations that carry the same non-empty label
func Conflate(anns []str.Annotation) []str.Annotation {
	// the merged record keeps the first record's id and place; a word kept in one record and stopped in
	// another ends up wherever the later record put it
	seen := make(map[string]int)
	var out []str.Annotation
	for _, a := range anns {
		a = clone(a)
		a.Label = strings.TrimSpace(a.Label)
		l := a.Label
		if l == "" {
			out = append(out, a)
			continue
		}
		j, ok := seen[l]
		if !ok {
			seen[l] = len(out)
			out = append(out, a)
			continue
		}
		prev := out[j]
		prev.Keep = gen.UniqueInOrder(append(gen.SetSubtraction(prev.Keep, a.Stop), a.Keep...))
		prev.Stop = gen.UniqueInOrder(append(gen.SetSubtraction(prev.Stop, a.Keep), a.Stop...))
		out[j] = prev
	}
	return out
}

func clone(a str.Annotation) str.Annotation {
	a.Keep = append([]string(nil), a.Keep...)
	a.Stop = append([]string(nil), a.Stop...)
	return a
}
