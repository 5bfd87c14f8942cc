//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/dstl"
	"github.com/e-gun/TopicDistillery/internal/ledger"
	"github.com/e-gun/TopicDistillery/internal/lnch"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"github.com/e-gun/TopicDistillery/web"
	"github.com/pkg/profile"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// these can be set via ldflags: "go build -ldflags '-X main.GitCommit=...'"
var GitCommit string
var VersSuppl string
var BuildDate string

func main() {
	lnch.GitCommit = GitCommit
	lnch.VersSuppl = VersSuppl
	lnch.BuildDate = BuildDate

	lnch.ConfigAtLaunch()

	// exit only once run() has unwound its defers: profiles are flushed and the ledger closed
	if code := run(); code != 0 {
		lnch.Msg.ExitOrHang(code)
	}
}

func run() int {
	const (
		FAIL = "unknown mode '%s'"
		MSG  = "'%s' finished"
	)

	cfg := lnch.Config
	msg := lnch.Msg

	// go tool pprof --pdf ./topicdistillery /path/to/cpu.pprof > profile.pdf
	if cfg.ProfileCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.OutputDir)).Stop()
	} else if cfg.ProfileMEM {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(cfg.OutputDir)).Stop()
	}

	if cfg.LogLevel >= 1 {
		lnch.PrintVersion(*cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()

	l, err := ledger.Open(ctx, cfg, lnch.NewMessageMakerConfigured("ledger"))
	if msg.ER(err) {
		return 1
	}
	defer l.Close()

	d := dstl.New(cfg, lnch.NewMessageMakerConfigured("dstl"), l)

	switch cfg.Mode {
	case vv.MODEVIS:
		err = d.RunVis(ctx)
	case vv.MODEPRIOR:
		err = d.RunPrior(ctx)
	case vv.MODELDAVIS:
		err = d.RunLDAvis(ctx)
	case vv.MODESERVE:
		err = web.StartEchoServer(ctx, d)
	case vv.MODERUNS:
		err = d.Runs(ctx, os.Stdout)
	default:
		err = fmt.Errorf(FAIL, cfg.Mode)
	}
	if msg.ER(err) {
		return 1
	}

	msg.Timer("Z", fmt.Sprintf(MSG, cfg.Mode), start, start)
	return 0
}
