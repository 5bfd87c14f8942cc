//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdlfs

import (
	"encoding/json"
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/gen"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"golang.org/x/text/unicode/norm"
	"io"
	"strconv"
	"strings"
)

// exportword - pointers so that a missing field can be told apart from a zero value
type exportword struct {
	Word       *string  `json:"word"`
	Importance *float64 `json:"importance"`
}

type exporttopic struct {
	TopicLabel *string       `json:"topiclabel"`
	Words      *[]exportword `json:"words"`
}

// LoadExport - read the editor's export file
func LoadExport(fn string) ([]str.Annotation, error) {
	f, err := openinput(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	aa, err := ParseExport(f)
	if err != nil {
		if pe, ok := err.(*str.ProcError); ok {
			return nil, pe.WithPath(fn)
		}
		return nil, err
	}
	return aa, nil
}

// ParseExport - {"0": {"topiclabel": "...", "words": [{"word": "...", "importance": 1}, ...]}, "1": ...}
//
// keys must be exactly "0" through "n-1"; importance 1 keeps a word, -2 stops it, anything else is neutral;
// a word both kept and stopped is stopped
func ParseExport(r io.Reader) ([]str.Annotation, error) {
	const (
		FAIL1 = "not an editor export"
		FAIL2 = "key '%s' is not a topic number"
		FAIL3 = "topic %d is missing"
		FAIL4 = "no 'topiclabel'"
		FAIL5 = "word %d lacks 'word' or 'importance'"
		FAIL6 = "no 'words'"
	)

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, str.NewProcError(COMP, str.ErrMalformed, FAIL1).Wrap(err)
	}

	for k := range raw {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || strconv.Itoa(i) != k {
			return nil, str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL2, k))
		}
	}

	aa := make([]str.Annotation, len(raw))
	for i := range aa {
		blob, ok := raw[strconv.Itoa(i)]
		if !ok {
			return nil, str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL3, i))
		}

		var et exporttopic
		if err := json.Unmarshal(blob, &et); err != nil {
			return nil, str.NewProcError(COMP, str.ErrMalformed, FAIL1).WithTopic(i).Wrap(err)
		}
		if et.TopicLabel == nil {
			return nil, str.NewProcError(COMP, str.ErrMalformed, FAIL4).WithTopic(i)
		}
		if et.Words == nil {
			return nil, str.NewProcError(COMP, str.ErrMalformed, FAIL6).WithTopic(i)
		}

		a := str.Annotation{ID: i, Label: *et.TopicLabel}
		for j, w := range *et.Words {
			if w.Word == nil || w.Importance == nil {
				return nil, str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL5, j)).WithTopic(i)
			}
			term := norm.NFC.String(strings.TrimSpace(*w.Word))
			switch *w.Importance {
			case vv.IMPKEEP:
				a.Keep = append(a.Keep, term)
			case vv.IMPSTOP:
				a.Stop = append(a.Stop, term)
			}
		}
		a.Stop = gen.UniqueInOrder(a.Stop)
		a.Keep = gen.UniqueInOrder(gen.SetSubtraction(a.Keep, a.Stop))
		aa[i] = a
	}
	return aa, nil
}
