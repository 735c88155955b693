// Package server provides the HTTP REST API for the text processing service.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/textpipe/internal/acquire"
	"github.com/jonathan/textpipe/internal/enrich"
	"github.com/jonathan/textpipe/internal/pipeline"
)

// Client-facing detail strings for validation failures. Enrichment and
// acquisition errors keep their underlying message instead.
const (
	detailTextTooShort  = "Text is too short."
	detailThinContent   = "Could not extract enough text from URL."
	detailBadScheme     = "URL must start with http:// or https://."
	detailFileMustBePDF = "File must be a PDF."
)

// HTTPStatus maps an error to its response status. Client input errors are
// 4xx; acquisition and persistence failures are 5xx.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrTextTooShort),
		errors.Is(err, pipeline.ErrThinContent),
		errors.Is(err, acquire.ErrUnsupportedScheme),
		errors.Is(err, enrich.ErrTextTooShort):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorDetail maps an error to the human-readable detail string returned to
// clients. Unrecognized errors pass their message through.
func errorDetail(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrTextTooShort), errors.Is(err, enrich.ErrTextTooShort):
		return detailTextTooShort
	case errors.Is(err, pipeline.ErrThinContent):
		return detailThinContent
	case errors.Is(err, acquire.ErrUnsupportedScheme):
		return detailBadScheme
	default:
		return err.Error()
	}
}
