package problems

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

func TestWriteBadRequestDataIncludesFields(t *testing.T) {
	is := is.New(t)
	w := httptest.NewRecorder()

	ReportNewBadRequestData(w, "required fields are missing", []string{"name", "length"}, "")

	is.Equal(w.Code, http.StatusBadRequest)
	is.Equal(w.Header().Get("Content-Type"), ProblemReportContentType)
	is.Equal(w.Body.String(), "{\n  \"type\": \"urn:diwise:problems:BadRequestData\",\n  \"title\": \"Bad Request Data\",\n  \"detail\": \"required fields are missing\",\n  \"fields\": [\n    \"name\",\n    \"length\"\n  ]\n}")
}

func TestErrorFromBadRequestDataReport(t *testing.T) {
	is := is.New(t)

	err := NewErrorFromProblemReport(http.StatusBadRequest, ProblemReportContentType, []byte(`{"type":"urn:diwise:problems:BadRequestData","detail":"missing","fields":["name"]}`))

	is.True(errors.Is(err, ErrBadRequest))
	is.Equal(err.Error(), "missing")
	is.Equal(Fields(err), []string{"name"})
}

func TestErrorFromNotFoundStatus(t *testing.T) {
	is := is.New(t)

	err := NewErrorFromProblemReport(http.StatusNotFound, ProblemReportContentType, []byte(`{"type":"something"}`))
	is.True(errors.Is(err, ErrNotFound))
}

func TestErrorFromUnknownReport(t *testing.T) {
	is := is.New(t)

	err := NewErrorFromProblemReport(http.StatusTeapot, ProblemReportContentType, []byte(`{"type":"teapot"}`))
	is.True(errors.Is(err, ErrInternal))

	err = NewErrorFromProblemReport(http.StatusBadGateway, "text/html", []byte(`<html/>`))
	is.True(errors.Is(err, ErrBadResponse))
}

func TestUnauthorizedRequestReportMapsBackToError(t *testing.T) {
	is := is.New(t)
	w := httptest.NewRecorder()

	ReportUnauthorizedRequest(w, "malformed authorization header", "")

	is.Equal(w.Code, http.StatusUnauthorized)
	is.Equal(w.Header().Get("Content-Type"), ProblemReportContentType)

	err := NewErrorFromProblemReport(w.Code, w.Header().Get("Content-Type"), w.Body.Bytes())
	is.True(errors.Is(err, ErrUnauthorized))
	is.Equal(err.Error(), "malformed authorization header")
}
