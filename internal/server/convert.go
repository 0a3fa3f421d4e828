package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"url2media/internal/model"
)

type convertRequest struct {
	URL     string `json:"url" form:"url" query:"url"`
	Format  string `json:"format" form:"format" query:"format"`
	Quality string `json:"quality" form:"quality" query:"quality"`
}

func (s *Server) handleConvert(c echo.Context) error {
	var in convertRequest
	if err := c.Bind(&in); err != nil {
		return c.String(http.StatusBadRequest, "malformed request body")
	}

	req, err := model.ParseRequest(in.URL, in.Format, in.Quality)
	if err != nil {
		var reqErr *model.RequestError
		if errors.As(err, &reqErr) {
			return c.String(http.StatusBadRequest, reqErr.Reason)
		}
		return c.String(http.StatusBadRequest, "invalid request")
	}

	log := s.log.WithFields(logrus.Fields{
		"url":    req.SourceURL,
		"format": string(req.Format),
	})
	log.Info("conversion requested")

	res, err := s.svc.Convert(c.Request().Context(), req)
	if err != nil {
		log.WithError(err).Error("conversion failed")
		return c.String(http.StatusInternalServerError, "server error")
	}

	log.WithFields(logrus.Fields{
		"title": res.Title,
		"bytes": len(res.Data),
	}).Info("conversion finished")

	// Sanitized titles may still carry non-ASCII letters; percent-encoding
	// keeps both header values inside the ASCII field-value range.
	h := c.Response().Header()
	h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(res.Filename)))
	h.Set("X-Filename", url.PathEscape(res.Title))
	return c.Blob(http.StatusOK, res.ContentType, res.Data)
}
