//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"github.com/e-gun/TopicDistillery/internal/gen"
	"github.com/labstack/echo/v4"
	"net/http"
)

// RtVisJSON - the payload the editor front-end reads as data.json
func (s *Server) RtVisJSON(c echo.Context) error {
	return gen.JSONresponse(c, s.res.Vis)
}

// RtVisMap - the inter-topic distance map
func (s *Server) RtVisMap(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, s.res.Map)
}

// RtLDAvisJSON - the pyLDAvis arrays
func (s *Server) RtLDAvisJSON(c echo.Context) error {
	return gen.JSONresponse(c, s.res.LDAvis)
}
