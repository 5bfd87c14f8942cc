//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"runtime"
)

//
// VERSION INFO BUILD TIME INJECTION
//

// these next variables should be injected at build time: 'go build -ldflags "-X main.GitCommit=$GIT_COMMIT"', etc
// values are loaded into this file at runtime by main.go

var GitCommit string
var VersSuppl string
var BuildDate string

// VersionLine - one line naming the build and what this run will do
func VersionLine(cc str.CurrentConfiguration) string {
	// example:
	// [TDS] Topic Distillery (v0.3.1) [git: 64974732] [gl=2; el=0] [mode: vis]
	const (
		SN = "[C1%sC0] "
		GC = " [C4git: C4%sC0]"
		LL = " [C6gl=%d; el=%dC0]"
		ME = "C5%sC0 (C2v%sC0)"
		MD = " [C3mode: %sC0]"
	)
	gc := ""
	if GitCommit != "" {
		gc = fmt.Sprintf(GC, GitCommit)
	}
	return fmt.Sprintf(SN, vv.SHORTNAME) + fmt.Sprintf(ME, vv.MYNAME, vv.VERSION+VersSuppl) + gc +
		fmt.Sprintf(LL, cc.LogLevel, cc.EchoLog) + fmt.Sprintf(MD, cc.Mode)
}

// BuildInfo - the toolchain plus the settings that decide what a run produces
func BuildInfo(cc str.CurrentConfiguration) string {
	// example:
	// 	Built:	2024-03-14@19:02:51		Golang:	go1.23.2
	//	System:	darwin-arm64			Input:	segan
	//	Ledger:	sqlite				Seed:	42 (jitter 5%)
	const (
		BD = "\tS1Built:S0\tC3%sC0\t"
		GV = "\tS1Golang:S0\tC3%sC0\n"
		SY = "\tS1System:S0\tC3%s-%sC0\t"
		IF = "\t\tS1Input:S0\tC3%sC0\n"
		LG = "\tS1Ledger:S0\tC3%sC0\t\t\t"
		SD = "\tS1Seed:S0\tC3%sC0 (jitter %d%%)"
		CK = "clock"
	)

	seed := CK
	if cc.Seed != 0 {
		seed = fmt.Sprintf("%d", cc.Seed)
	}

	bi := ""
	if BuildDate != "" {
		bi = fmt.Sprintf(BD, BuildDate)
	}
	bi += fmt.Sprintf(GV, runtime.Version())
	bi += fmt.Sprintf(SY, runtime.GOOS, runtime.GOARCH)
	bi += fmt.Sprintf(IF, cc.InputFormat)
	bi += fmt.Sprintf(LG, cc.LedgerType)
	bi += fmt.Sprintf(SD, seed, cc.Jitter)
	return bi
}

// Copyright - the GPL notice
func Copyright() string {
	return fmt.Sprintf(vv.TERMINALTEXT, vv.PROJYEAR, vv.PROJAUTH, vv.PROJURL)
}

func PrintVersion(cc str.CurrentConfiguration) {
	fmt.Println(Msg.ColStyle(VersionLine(cc)))
}

func PrintBuildInfo(cc str.CurrentConfiguration) {
	fmt.Println(Msg.ColStyle(BuildInfo(cc)))
}

func PrintCopyright() {
	fmt.Println(Msg.ColStyle(Copyright()))
}
