//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/dstl"
	"github.com/e-gun/TopicDistillery/internal/mm"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"net/http"
	"strings"
	"time"
)

const (
	COMP = "web"
)

// Server - the serve mode; payloads are computed once by NewServer() and only read afterwards
type Server struct {
	Cfg *str.CurrentConfiguration
	Msg *mm.MessageMaker
	D   *dstl.Distillery
	res *dstl.Results
}

// NewServer - distill the configured model and hold on to the results
func NewServer(ctx context.Context, d *dstl.Distillery) (*Server, error) {
	const (
		MSG = "payloads ready: %d topics, %d terms"
	)
	res, err := d.Distill(ctx)
	if err != nil {
		return nil, err
	}
	d.Msg.NOTE(fmt.Sprintf(MSG, res.Model.K(), res.Model.Vocab.Len()))
	return &Server{Cfg: d.Cfg, Msg: d.Msg, D: d, res: res}, nil
}

// Echo - the configured *echo.Echo with every route attached
func (s *Server) Echo() *echo.Echo {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "${remote_ip}\t${custom}\t${status}\t${bytes_out}\t${uri}\n"
	)

	// ctf - a CustomTagFunc that returns a short user agent
	ctf := func(c echo.Context, buf *bytes.Buffer) (int, error) {
		ua := strings.Fields(c.Request().UserAgent())
		if len(ua) == 0 {
			return 0, nil
		}
		return buf.WriteString(ua[len(ua)-1])
	}

	//
	// SETUP
	//

	e := echo.New()
	e.Server.ReadTimeout = vv.TIMEOUTRD
	e.Server.WriteTimeout = vv.TIMEOUTWR

	switch s.Cfg.EchoLog {
	case 3:
		e.Use(middleware.Logger())
	case 2:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT, CustomTagFunc: ctf}))
	case 1:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	default:
		// do nothing
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(vv.MAXECHOREQPERSECOND)))

	e.Use(middleware.Recover())

	e.Use(middleware.BodyLimit(vv.MAXPOSTBODY))

	if s.Cfg.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	}

	//
	// ROUTES
	//

	//
	// [a] ldavis ("rt-vis.go")
	//

	e.GET("/ldavis/json", s.RtLDAvisJSON)

	//
	// [b] prior ("rt-prior.go")
	//

	e.POST("/prior/build", s.RtPriorBuild) // "POST /prior/build?k=12" with the editor export as the body

	//
	// [c] runs ("rt-runs.go")
	//

	e.GET("/runs/list", s.RtRunsList)

	//
	// [d] vis ("rt-vis.go")
	//

	e.GET("/vis/json", s.RtVisJSON)
	e.GET("/vis/map", s.RtVisMap)

	e.HideBanner = true
	e.HidePort = false
	e.Debug = false
	return e
}

// Start - serve until ctx is done; this blocks
func (s *Server) Start(ctx context.Context) error {
	const (
		MSG1 = "serving on http://%s"
		MSG2 = "shutting down"
	)

	e := s.Echo()
	addr := fmt.Sprintf("%s:%d", s.Cfg.HostIP, s.Cfg.HostPort)

	go func() {
		<-ctx.Done()
		s.Msg.NOTE(MSG2)
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(sctx)
	}()

	s.Msg.NOTE(fmt.Sprintf(MSG1, addr))
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartEchoServer - NewServer() then Start(); does not return while the server is alive
func StartEchoServer(ctx context.Context, d *dstl.Distillery) error {
	s, err := NewServer(ctx, d)
	if err != nil {
		return err
	}
	return s.Start(ctx)
}

// errstatus - bad input is the caller's problem; everything else is ours
func errstatus(err error) int {
	switch {
	case errors.Is(err, str.ErrMalformed), errors.Is(err, str.ErrIndex), errors.Is(err, str.ErrDegenerate),
		errors.Is(err, str.ErrMissingInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errresponse - report and send {"error": "..."}
func (s *Server) errresponse(c echo.Context, err error) error {
	st := errstatus(err)
	s.Msg.WARN(fmt.Sprintf("%s %s: %d %s", c.Request().Method, c.Request().URL.Path, st, err.Error()))
	return c.JSON(st, map[string]string{"error": err.Error()})
}
