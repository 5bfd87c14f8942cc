//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingInput = errors.New("missing input")
	ErrMalformed    = errors.New("malformed record")
	ErrDegenerate   = errors.New("degenerate input")
	ErrNumerical    = errors.New("numerical instability")
	ErrIndex        = errors.New("index out of range")
)

// ProcError - a failure plus where it happened; errors.Is() sees both Kind and Err
type ProcError struct {
	Component string
	Topic     int // -1 if not about one topic
	Path      string
	Kind      error
	Msg       string
	Err       error
}

func NewProcError(component string, kind error, msg string) *ProcError {
	return &ProcError{Component: component, Topic: -1, Kind: kind, Msg: msg}
}

func (e *ProcError) Error() string {
	var b strings.Builder
	b.WriteString(e.Component)
	if e.Path != "" {
		b.WriteString(fmt.Sprintf(" '%s'", e.Path))
	}
	if e.Topic >= 0 {
		b.WriteString(fmt.Sprintf(" topic %d", e.Topic))
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Msg != "" {
		b.WriteString(": " + e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *ProcError) Unwrap() []error {
	ee := []error{e.Kind}
	if e.Err != nil {
		ee = append(ee, e.Err)
	}
	return ee
}

func (e *ProcError) WithTopic(k int) *ProcError {
	e.Topic = k
	return e
}

func (e *ProcError) WithPath(p string) *ProcError {
	e.Path = p
	return e
}

func (e *ProcError) Wrap(err error) *ProcError {
	e.Err = err
	return e
}
