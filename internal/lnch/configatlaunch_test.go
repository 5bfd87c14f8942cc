//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := BuildDefaultConfig()
	require.NoError(t, Validate(c))
	assert.Equal(t, vv.TOPN, c.TopN)
	assert.Equal(t, vv.GOODMASS, c.GoodMass)
	assert.Equal(t, []int{10, 20, 30, 40, 50}, c.Milestones)
	assert.Equal(t, vv.RECONDROP, c.ReconcileStrat)
}

func TestParseArgs(t *testing.T) {
	c := BuildDefaultConfig()
	args := []string{"-m", "prior", "-k", "24", "-gm", "0.8", "-sd", "42", "-rs", "reassign", "-bw",
		"-pg", `{"Pass": "x", "Host": "db", "Port": 5433, "DBName": "t", "User": "u"}`}

	act, err := ParseArgs(args, c)
	require.NoError(t, err)
	assert.Equal(t, ACTRUN, act)
	assert.Equal(t, vv.MODEPRIOR, c.Mode)
	assert.Equal(t, 24, c.NewK)
	assert.InDelta(t, 0.8, c.GoodMass, 1e-12)
	assert.Equal(t, int64(42), c.Seed)
	assert.Equal(t, vv.RECONREASSIGN, c.ReconcileStrat)
	assert.True(t, c.BlackAndWhite)
	assert.Equal(t, 5433, c.PGLogin.Port)
	assert.NoError(t, Validate(c))
}

func TestParseArgsFailures(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing value", []string{"-k"}},
		{"not a number", []string{"-k", "many"}},
		{"bad goodmass", []string{"-gm", "most"}},
		{"bad credentials", []string{"-pg", "{"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args, BuildDefaultConfig())
			assert.Error(t, err)
		})
	}
}

func TestParseArgsActions(t *testing.T) {
	act, err := ParseArgs([]string{"-gl", "5", "-h"}, BuildDefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, ACTHELP, act)

	act, _ = ParseArgs([]string{"-v"}, BuildDefaultConfig())
	assert.Equal(t, ACTVERSION, act)
}

func TestValidate(t *testing.T) {
	c := BuildDefaultConfig()
	c.GoodMass = 1
	c.Mode = "draw"
	c.Jitter = -1
	err := Validate(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, str.ErrDegenerate))
	assert.Contains(t, err.Error(), "unknown mode: 'draw'")
	assert.Contains(t, err.Error(), "jitter")
}

func TestValidateJitterCeiling(t *testing.T) {
	c := BuildDefaultConfig()
	c.Jitter = 150
	err := Validate(c)
	assert.True(t, errors.Is(err, str.ErrDegenerate))
	assert.Contains(t, err.Error(), "150")

	c.Jitter = 99
	assert.NoError(t, Validate(c))
}

func TestReadConfigFile(t *testing.T) {
	const yml = `
mode: prior
goodmass: 0.6
phifile: /data/run1/topwords.phi
milestones: [5, 15]
pglogin:
  host: db.example.org
`
	dir := t.TempDir()
	fn := filepath.Join(dir, "tds-conf.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(yml), 0644))

	t.Setenv("TDS_JITTER", "9")

	c := BuildDefaultConfig()
	require.NoError(t, ReadConfigFile(fn, c))
	assert.Equal(t, vv.MODEPRIOR, c.Mode)
	assert.InDelta(t, 0.6, c.GoodMass, 1e-12)
	assert.Equal(t, "/data/run1/topwords.phi", c.PhiFile)
	assert.Equal(t, []int{5, 15}, c.Milestones)
	assert.Equal(t, "db.example.org", c.PGLogin.Host)
	assert.Equal(t, vv.DEFAULTPSQLPORT, c.PGLogin.Port)
	assert.Equal(t, 9, c.Jitter)
	assert.Equal(t, vv.TOPN, c.TopN)
}

func TestReadConfigFileMissing(t *testing.T) {
	err := ReadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"), BuildDefaultConfig())
	assert.Error(t, err)
}

func TestFindConfigFile(t *testing.T) {
	assert.Equal(t, "mine.yaml", FindConfigFile([]string{"-gl", "3", "-c", "mine.yaml"}))
}
