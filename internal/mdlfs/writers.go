//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdlfs

import (
	"bufio"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"io"
	"os"
	"strconv"
	"strings"
)

// WritePrior - the prior-topic file the sampler re-reads: the topic count, then "V<TAB>p1<TAB>...<TAB>pV" per topic
func WritePrior(w io.Writer, topics []str.SynthesizedTopic) error {
	const (
		FAIL = "topic has %d probabilities; the first topic had %d"
	)

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", len(topics)); err != nil {
		return err
	}

	for _, t := range topics {
		if len(t.Probs) != len(topics[0].Probs) {
			return str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL, len(t.Probs), len(topics[0].Probs))).WithTopic(t.Index)
		}
		bw.WriteString(strconv.Itoa(len(t.Probs)))
		for _, p := range t.Probs {
			bw.WriteString(vv.PRIORSEP)
			bw.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePriorFile - WritePrior() to disk; returns the md5 of what was written
func WritePriorFile(fn string, topics []str.SynthesizedTopic) (string, error) {
	return WriteWith(fn, func(w io.Writer) error { return WritePrior(w, topics) })
}

// ReadPriorTopicCount - the first line of a prior-topic file, which is all the re-run driver looks at
func ReadPriorTopicCount(fn string) (int, error) {
	const (
		FAIL = "the first line should be the topic count"
	)
	f, err := openinput(fn)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := newscanner(f)
	if !sc.Scan() {
		return 0, malformed(fn, 1, FAIL)
	}
	k, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || k < 0 {
		return 0, malformed(fn, 1, FAIL)
	}
	return k, nil
}

// WriteJSON - marshal v into fn; returns the md5 of what was written
func WriteJSON(fn string, v any) (string, error) {
	return WriteWith(fn, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	})
}

// WriteWith - write-then-close with a running md5; fnc does the writing
func WriteWith(fn string, fnc func(w io.Writer) error) (string, error) {
	const (
		FAIL = "cannot write"
	)

	f, err := os.Create(fn)
	if err != nil {
		return "", str.NewProcError(COMP, str.ErrMissingInput, FAIL).WithPath(fn).Wrap(err)
	}

	h := md5.New()
	err = fnc(io.MultiWriter(f, h))
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		if _, ok := err.(*str.ProcError); ok {
			return "", err
		}
		return "", str.NewProcError(COMP, str.ErrMalformed, FAIL).WithPath(fn).Wrap(err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
