//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"runtime"
	"testing"

	"github.com/e-gun/TopicDistillery/internal/vv"
	"github.com/stretchr/testify/assert"
)

func TestVersionLine(t *testing.T) {
	GitCommit = "64974732"
	t.Cleanup(func() { GitCommit = "" })

	c := BuildDefaultConfig()
	c.Mode = vv.MODEPRIOR
	l := VersionLine(*c)
	assert.Contains(t, l, vv.MYNAME)
	assert.Contains(t, l, "v"+vv.VERSION)
	assert.Contains(t, l, "git: C464974732")
	assert.Contains(t, l, "mode: prior")
}

func TestBuildInfo(t *testing.T) {
	c := BuildDefaultConfig()
	bi := BuildInfo(*c)
	assert.Contains(t, bi, runtime.Version())
	assert.Contains(t, bi, vv.FMTSEGAN)
	assert.Contains(t, bi, vv.LEDGERNONE)
	assert.Contains(t, bi, "clock")
	assert.NotContains(t, bi, "Built:")

	c.Seed = 42
	c.LedgerType = vv.LEDGERSQLITE
	bi = BuildInfo(*c)
	assert.Contains(t, bi, "C342C0 (jitter 5%)")
	assert.Contains(t, bi, vv.LEDGERSQLITE)
}

func TestCopyright(t *testing.T) {
	c := Copyright()
	assert.Contains(t, c, vv.PROJURL)
	assert.Contains(t, c, "GNU General Public License version 3")
}
