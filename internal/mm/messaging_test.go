//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func quietmaker(lvl int) (*MessageMaker, *bytes.Buffer) {
	var buf bytes.Buffer
	m := NewMessageMaker("Topic Distillery", "TDS", "0.0.0")
	m.SetOutput(&buf)
	m.SetBW(true)
	m.LLvl = lvl
	return m, &buf
}

func TestEmitRespectsThreshold(t *testing.T) {
	m, buf := quietmaker(MSGNOTE)

	m.TMI("too much information")
	m.PEEK("peeking")
	assert.Empty(t, buf.String())

	m.NOTE("a note")
	assert.Contains(t, buf.String(), "a note")
	assert.Contains(t, buf.String(), "svc=TDS")

	buf.Reset()
	m.WARN("careful")
	assert.Contains(t, buf.String(), "level=warning")

	buf.Reset()
	m.CRIT("broken")
	assert.Contains(t, buf.String(), "level=error")
}

func TestMandatoryAlwaysShows(t *testing.T) {
	m, buf := quietmaker(-1)
	m.MAND("always")
	m.CRIT("never")
	assert.Contains(t, buf.String(), "always")
	assert.NotContains(t, buf.String(), "never")
}

func TestColorInBlackAndWhite(t *testing.T) {
	m, _ := quietmaker(0)
	assert.Equal(t, "[gl=3]", m.ColStyle("[C6gl=C33C0S1S0]"))
}

func TestECExits(t *testing.T) {
	m, buf := quietmaker(0)
	m.Win = false
	code := -1
	m.Exit = func(c int) { code = c }

	m.EC(nil)
	assert.Equal(t, -1, code)

	c := m.Clone("vis")
	c.EC(errors.New("phi file is empty"))
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "(vis) UNRECOVERABLE ERROR")
	assert.Contains(t, buf.String(), "phi file is empty")
}

func TestERReportsWithoutExiting(t *testing.T) {
	m, buf := quietmaker(0)
	code := -1
	m.Exit = func(c int) { code = c }

	assert.False(t, m.ER(nil))
	assert.Empty(t, buf.String())

	assert.True(t, m.ER(errors.New("ledger is locked")))
	assert.Equal(t, -1, code)
	assert.Contains(t, buf.String(), "ledger is locked")
}
