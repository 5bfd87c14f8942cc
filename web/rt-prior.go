//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/mdlfs"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/labstack/echo/v4"
	"net/http"
	"strconv"
)

// RtPriorBuild - editor export in, prior-topic file out; "k" is optional and defaults to one per label plus AddedK
func (s *Server) RtPriorBuild(c echo.Context) error {
	const (
		FAIL = "'k' should be a positive integer, not '%s'"
		MSG  = "built a %d byte prior from %d annotations"
	)

	k := 0
	if q := c.QueryParam("k"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			return s.errresponse(c, str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL, q)))
		}
		k = n
	}

	anns, err := mdlfs.ParseExport(c.Request().Body)
	if err != nil {
		return s.errresponse(c, err)
	}

	b, err := s.D.PriorText(anns, s.res.Model.Vocab, k)
	if err != nil {
		return s.errresponse(c, err)
	}
	s.Msg.FYI(fmt.Sprintf(MSG, len(b), len(anns)))

	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, b)
}
