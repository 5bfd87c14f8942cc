//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package rank

import (
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/emirpasic/gods/trees/binaryheap"
	"gonum.org/v1/gonum/mat"
	"math"
)

const (
	COMP = "rank"
)

// worse - does a rank below b? lower probability; on a tie the higher id
func worse(a, b str.RankedEntry) bool {
	if a.Prob != b.Prob {
		return a.Prob < b.Prob
	}
	return a.ID > b.ID
}

// heapcomparator - the heap root is the entry that would be dropped first
func heapcomparator(a, b interface{}) int {
	x := a.(str.RankedEntry)
	y := b.(str.RankedEntry)
	switch {
	case worse(x, y):
		return -1
	case worse(y, x):
		return 1
	default:
		return 0
	}
}

// Top - the 'limit' largest values of vals as a RankedList; ids are positions in vals
func Top(vals []float64, limit int) (str.RankedList, error) {
	const (
		FAIL1 = "limit must be at least 1: %d"
		FAIL2 = "nothing to rank"
		FAIL3 = "value at %d is %v"
	)

	if limit < 1 {
		return nil, str.NewProcError(COMP, str.ErrDegenerate, fmt.Sprintf(FAIL1, limit))
	}
	if len(vals) == 0 {
		return nil, str.NewProcError(COMP, str.ErrDegenerate, FAIL2)
	}

	// a min-heap holding at most 'limit' entries: O(N log limit)
	h := binaryheap.NewWith(heapcomparator)
	for i, p := range vals {
		if math.IsNaN(p) {
			return nil, str.NewProcError(COMP, str.ErrNumerical, fmt.Sprintf(FAIL3, i, p))
		}
		e := str.RankedEntry{ID: i, Prob: p}
		if h.Size() < limit {
			h.Push(e)
			continue
		}
		root, _ := h.Peek()
		if worse(root.(str.RankedEntry), e) {
			h.Pop()
			h.Push(e)
		}
	}

	rl := make(str.RankedList, h.Size())
	for i := len(rl) - 1; i >= 0; i-- {
		v, _ := h.Pop()
		rl[i] = v.(str.RankedEntry)
	}
	return rl, nil
}

// TopWords - the most probable words of one topic; phi is topics x vocabulary
func TopWords(phi mat.Matrix, topic int, limit int) (str.RankedList, error) {
	k, _ := phi.Dims()
	if err := checktopic(topic, k); err != nil {
		return nil, err
	}
	rl, err := Top(mat.Row(nil, topic, phi), limit)
	if err != nil {
		return nil, withtopic(err, topic)
	}
	return rl, nil
}

// TopDocs - the documents that carry the most of one topic; theta is documents x topics
func TopDocs(theta mat.Matrix, topic int, limit int) (str.RankedList, error) {
	_, k := theta.Dims()
	if err := checktopic(topic, k); err != nil {
		return nil, err
	}
	rl, err := Top(mat.Col(nil, topic, theta), limit)
	if err != nil {
		return nil, withtopic(err, topic)
	}
	return rl, nil
}

// AllTopWords - TopWords() for every topic
func AllTopWords(phi mat.Matrix, limit int) ([]str.RankedList, error) {
	k, _ := phi.Dims()
	return alltop(k, limit, phi, TopWords)
}

// AllTopDocs - TopDocs() for every topic
func AllTopDocs(theta mat.Matrix, limit int) ([]str.RankedList, error) {
	_, k := theta.Dims()
	return alltop(k, limit, theta, TopDocs)
}

func alltop(k int, limit int, m mat.Matrix, fnc func(mat.Matrix, int, int) (str.RankedList, error)) ([]str.RankedList, error) {
	all := make([]str.RankedList, k)
	for t := 0; t < k; t++ {
		rl, err := fnc(m, t, limit)
		if err != nil {
			return nil, err
		}
		all[t] = rl
	}
	return all, nil
}

func checktopic(topic int, k int) error {
	const (
		FAIL = "topic not in [0, %d)"
	)
	if topic < 0 || topic >= k {
		return str.NewProcError(COMP, str.ErrIndex, fmt.Sprintf(FAIL, k)).WithTopic(topic)
	}
	return nil
}

func withtopic(err error, topic int) error {
	if pe, ok := err.(*str.ProcError); ok {
		return pe.WithTopic(topic)
	}
	return err
}
