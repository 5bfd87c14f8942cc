//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"github.com/e-gun/TopicDistillery/internal/gen"
	"github.com/labstack/echo/v4"
)

// RtRunsList - what the ledger holds, newest first
func (s *Server) RtRunsList(c echo.Context) error {
	ss, err := s.D.Ledger.List(c.Request().Context())
	if err != nil {
		return s.errresponse(c, err)
	}
	return gen.JSONresponse(c, ss)
}
