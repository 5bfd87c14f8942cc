//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdlfs

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/str"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

const (
	COMP    = "mdlfs"
	MAXLINE = 256 * 1024 * 1024 // a phi line holds one number per vocabulary item
)

// openinput - os.Open() that turns "not there" into ErrMissingInput
func openinput(fn string) (*os.File, error) {
	f, err := os.Open(fn)
	if err != nil {
		kind := str.ErrMalformed
		if errors.Is(err, fs.ErrNotExist) {
			kind = str.ErrMissingInput
		}
		return nil, str.NewProcError(COMP, kind, "").WithPath(fn).Wrap(err)
	}
	return f, nil
}

func newscanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), MAXLINE)
	return sc
}

func malformed(fn string, line int, msg string) error {
	return str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf("line %d: %s", line, msg)).WithPath(fn)
}

// eachline - feed every line of a file to fnc along with its 1-based number
func eachline(fn string, fnc func(n int, line string) error) error {
	f, err := openinput(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := newscanner(f)
	n := 0
	for sc.Scan() {
		n++
		if err = fnc(n, sc.Text()); err != nil {
			return err
		}
	}
	if err = sc.Err(); err != nil {
		return str.NewProcError(COMP, str.ErrMalformed, "").WithPath(fn).Wrap(err)
	}
	return nil
}

// parserow - the floats on a whitespace-separated line after skipping 'skip' leading fields
func parserow(fn string, n int, line string, skip int) ([]float64, error) {
	const (
		FAIL1 = "expected more than %d fields"
		FAIL2 = "cannot parse '%s'"
	)
	ff := strings.Fields(line)
	if len(ff) <= skip {
		return nil, malformed(fn, n, fmt.Sprintf(FAIL1, skip))
	}
	row := make([]float64, len(ff)-skip)
	for i, s := range ff[skip:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, malformed(fn, n, fmt.Sprintf(FAIL2, s))
		}
		row[i] = v
	}
	return row, nil
}

// loadrows - numeric rows of equal width; a header line (if any) must give the row count
func loadrows(fn string, header bool, skip int, comment string) ([][]float64, error) {
	const (
		FAIL1 = "cannot parse the row count '%s'"
		FAIL2 = "row has %d values; the first row had %d"
		FAIL3 = "header promised %d rows; found %d"
		FAIL4 = "no rows"
	)

	want := -1
	var rows [][]float64
	err := eachline(fn, func(n int, line string) error {
		t := strings.TrimSpace(line)
		if t == "" || (comment != "" && strings.HasPrefix(t, comment)) {
			return nil
		}
		if header && want < 0 {
			k, err := strconv.Atoi(t)
			if err != nil {
				return malformed(fn, n, fmt.Sprintf(FAIL1, t))
			}
			want = k
			return nil
		}
		row, err := parserow(fn, n, t, skip)
		if err != nil {
			return err
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return malformed(fn, n, fmt.Sprintf(FAIL2, len(row), len(rows[0])))
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if header && want != len(rows) {
		return nil, malformed(fn, 1, fmt.Sprintf(FAIL3, want, len(rows)))
	}
	if len(rows) == 0 {
		return nil, str.NewProcError(COMP, str.ErrMalformed, FAIL4).WithPath(fn)
	}
	return rows, nil
}

// LoadVocab - one term per line
func LoadVocab(fn string) (str.Vocabulary, error) {
	var terms []string
	err := eachline(fn, func(n int, line string) error {
		terms = append(terms, strings.TrimSpace(line))
		return nil
	})
	if err != nil {
		return str.Vocabulary{}, err
	}

	// a trailing newline is not a term
	for len(terms) > 0 && terms[len(terms)-1] == "" {
		terms = terms[:len(terms)-1]
	}

	v, err := str.NewVocabulary(terms)
	if err != nil {
		return v, err.(*str.ProcError).WithPath(fn)
	}
	return v, nil
}

// LoadDocText - one document per line; "id<TAB>text" or bare text; a directory means every *.txt inside it
func LoadDocText(fn string) ([]string, error) {
	st, err := os.Stat(fn)
	if err == nil && st.IsDir() {
		return loaddocdir(fn)
	}

	var docs []string
	err = eachline(fn, func(n int, line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		if _, txt, ok := strings.Cut(line, "\t"); ok {
			docs = append(docs, strings.TrimSpace(txt))
		} else {
			docs = append(docs, strings.TrimSpace(line))
		}
		return nil
	})
	return docs, err
}

func loaddocdir(dir string) ([]string, error) {
	ee, err := os.ReadDir(dir)
	if err != nil {
		return nil, str.NewProcError(COMP, str.ErrMissingInput, "").WithPath(dir).Wrap(err)
	}
	// ReadDir() sorts by name
	var docs []string
	for _, e := range ee {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		dd, err := LoadDocText(dir + string(os.PathSeparator) + e.Name())
		if err != nil {
			return nil, err
		}
		docs = append(docs, dd...)
	}
	return docs, nil
}

// LoadTermFreq - "[first] termId:count termId:count ..." per document; the first field is not a term
func LoadTermFreq(fn string, vsize int) (str.TermFrequency, error) {
	const (
		FAIL1 = "bad term count '%s'"
		FAIL2 = "term id %d not in a vocabulary of %d"
	)

	tf := str.TermFrequency{Counts: make([]int, vsize)}
	err := eachline(fn, func(n int, line string) error {
		ff := strings.Fields(line)
		if len(ff) == 0 {
			return nil
		}
		dl := 0
		for _, kv := range ff[1:] {
			k, v, ok := strings.Cut(kv, ":")
			if !ok {
				return malformed(fn, n, fmt.Sprintf(FAIL1, kv))
			}
			id, e1 := strconv.Atoi(strings.TrimSpace(k))
			ct, e2 := strconv.Atoi(strings.TrimSpace(v))
			if e1 != nil || e2 != nil || ct < 0 {
				return malformed(fn, n, fmt.Sprintf(FAIL1, kv))
			}
			if id < 0 || id >= vsize {
				return str.NewProcError(COMP, str.ErrIndex, fmt.Sprintf("line %d: "+FAIL2, n, id, vsize)).WithPath(fn)
			}
			tf.Counts[id] += ct
			dl += ct
		}
		tf.DocLengths = append(tf.DocLengths, dl)
		return nil
	})
	return tf, err
}
