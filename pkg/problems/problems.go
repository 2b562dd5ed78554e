package problems

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrBadRequest = fmt.Errorf("bad request")
var ErrBadResponse = fmt.Errorf("bad response")
var ErrInternal = fmt.Errorf("internal error")
var ErrInvalidRequest = fmt.Errorf("invalid request")
var ErrNotFound = fmt.Errorf("not found")
var ErrRequest = fmt.Errorf("request error")
var ErrUnauthorized = fmt.Errorf("unauthorized")

type myError struct {
	msg    string
	fields []string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

func NewBadRequestDataError(msg string, fields ...string) error {
	return &myError{
		msg:    msg,
		fields: fields,
		target: ErrBadRequest,
	}
}

func NewInvalidRequestError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrInvalidRequest,
	}
}

func NewNotFoundError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrNotFound,
	}
}

func NewUnauthorizedError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrUnauthorized,
	}
}

// Fields returns the offending field names carried by a bad request error
func Fields(err error) []string {
	var me *myError
	if errors.As(err, &me) {
		return me.fields
	}
	return nil
}

const (
	TypeBadRequestData      string = "urn:diwise:problems:BadRequestData"
	TypeInvalidRequest      string = "urn:diwise:problems:InvalidRequest"
	TypeInternalError       string = "urn:diwise:problems:InternalError"
	TypeResourceNotFound    string = "urn:diwise:problems:ResourceNotFound"
	TypeUnauthorizedRequest string = "urn:diwise:problems:UnauthorizedRequest"
)

func NewErrorFromProblemReport(code int, contentType string, body []byte) error {
	report := &struct {
		Type   string   `json:"type"`
		Title  string   `json:"title"`
		Detail string   `json:"detail"`
		Fields []string `json:"fields"`
	}{}

	err := json.Unmarshal(body, report)
	if err != nil {
		return fmt.Errorf("failed to process problem report (content-type: %s): %s (%w)", contentType, err.Error(), ErrBadResponse)
	}

	switch {
	case code == http.StatusNotFound || report.Type == TypeResourceNotFound:
		return NewNotFoundError(report.Detail)
	case report.Type == TypeBadRequestData:
		return NewBadRequestDataError(report.Detail, report.Fields...)
	case report.Type == TypeInvalidRequest:
		return NewInvalidRequestError(report.Detail)
	case code == http.StatusUnauthorized || report.Type == TypeUnauthorizedRequest:
		return NewUnauthorizedError(report.Detail)
	}

	return fmt.Errorf(
		"[code: %d] unknown problem report of type \"%s\" with detail \"%s\" received (%w)",
		code, report.Type, report.Detail, ErrInternal,
	)
}

// ProblemDetails stores details about a certain problem according to RFC7807
// See https://tools.ietf.org/html/rfc7807
type ProblemDetails interface {
	ContentType() string
	Type() string
	Title() string
	Detail() string
	MarshalJSON() ([]byte, error)
	WriteResponse(w http.ResponseWriter)
}

// ProblemDetailsImpl is an implementation of the ProblemDetails interface
type ProblemDetailsImpl struct {
	typ     string
	title   string
	detail  string
	fields  []string
	code    int
	traceID string
}

const (
	// ProblemReportContentType as required by https://tools.ietf.org/html/rfc7807
	ProblemReportContentType string = "application/problem+json"
)

// BadRequestData reports that the request includes input data which does not meet the requirements of the operation
type BadRequestData struct {
	ProblemDetailsImpl
}

func NewBadRequestData(detail string, fields []string, traceID string) *BadRequestData {
	return &BadRequestData{
		ProblemDetailsImpl: ProblemDetailsImpl{
			typ:     TypeBadRequestData,
			title:   "Bad Request Data",
			detail:  detail,
			fields:  fields,
			code:    http.StatusBadRequest,
			traceID: traceID,
		},
	}
}

func ReportNewBadRequestData(w http.ResponseWriter, detail string, fields []string, traceID string) {
	brd := NewBadRequestData(detail, fields, traceID)
	brd.WriteResponse(w)
}

// InvalidRequest reports that the request is syntactically invalid or includes wrong content
type InvalidRequest struct {
	ProblemDetailsImpl
}

func NewInvalidRequest(detail, traceID string) *InvalidRequest {
	return &InvalidRequest{
		ProblemDetailsImpl: ProblemDetailsImpl{
			typ:     TypeInvalidRequest,
			title:   "Invalid Request",
			detail:  detail,
			code:    http.StatusBadRequest,
			traceID: traceID,
		},
	}
}

func ReportNewInvalidRequest(w http.ResponseWriter, detail, traceID string) {
	ir := NewInvalidRequest(detail, traceID)
	ir.WriteResponse(w)
}

// InternalError reports that there has been an error during the operation execution
type InternalError struct {
	ProblemDetailsImpl
}

func NewInternalError(detail, traceID string) *InternalError {
	return &InternalError{
		ProblemDetailsImpl: ProblemDetailsImpl{
			typ:     TypeInternalError,
			title:   "Internal Error",
			detail:  detail,
			code:    http.StatusInternalServerError,
			traceID: traceID,
		},
	}
}

func ReportNewInternalError(w http.ResponseWriter, detail, traceID string) {
	ie := NewInternalError(detail, traceID)
	ie.WriteResponse(w)
}

// NotFound reports that the request failed with a not found error of some kind
type NotFound struct {
	ProblemDetailsImpl
}

func NewNotFound(detail, traceID string) *NotFound {
	return &NotFound{
		ProblemDetailsImpl: ProblemDetailsImpl{
			typ:     TypeResourceNotFound,
			title:   "Not Found",
			detail:  detail,
			code:    http.StatusNotFound,
			traceID: traceID,
		},
	}
}

func ReportNotFoundError(w http.ResponseWriter, detail, traceID string) {
	nf := NewNotFound(detail, traceID)
	nf.WriteResponse(w)
}

type UnauthorizedRequest struct {
	ProblemDetailsImpl
}

func NewUnauthorizedRequest(detail, traceID string) *UnauthorizedRequest {
	return &UnauthorizedRequest{
		ProblemDetailsImpl: ProblemDetailsImpl{
			typ:     TypeUnauthorizedRequest,
			title:   "Unauthorized Request",
			detail:  detail,
			code:    http.StatusUnauthorized,
			traceID: traceID,
		},
	}
}

func ReportUnauthorizedRequest(w http.ResponseWriter, detail, traceID string) {
	ur := NewUnauthorizedRequest(detail, traceID)
	ur.WriteResponse(w)
}

func (p *ProblemDetailsImpl) ContentType() string {
	return ProblemReportContentType
}

func (p *ProblemDetailsImpl) Type() string {
	return p.typ
}

func (p *ProblemDetailsImpl) Title() string {
	return p.title
}

func (p *ProblemDetailsImpl) Detail() string {
	return p.detail
}

// MarshalJSON is called when a ProblemDetailsImpl instance should be serialized to JSON
func (p *ProblemDetailsImpl) MarshalJSON() ([]byte, error) {
	var traceID *string

	if p.traceID != "" {
		traceID = &p.traceID
	}

	j, err := json.Marshal(struct {
		Type    string   `json:"type"`
		Title   string   `json:"title"`
		Detail  string   `json:"detail"`
		Fields  []string `json:"fields,omitempty"`
		TraceID *string  `json:"traceID,omitempty"`
	}{
		Type:    p.typ,
		Title:   p.title,
		Detail:  p.detail,
		Fields:  p.fields,
		TraceID: traceID,
	})
	if err != nil {
		return nil, err
	}

	return j, nil
}

// ResponseCode returns the HTTP response code to be used when returning a specific problem
func (p *ProblemDetailsImpl) ResponseCode() int {
	if p.code != 0 {
		return p.code
	}

	return http.StatusBadRequest
}

// WriteResponse writes the contents of this instance to a http.ResponseWriter
func (p *ProblemDetailsImpl) WriteResponse(w http.ResponseWriter) {
	w.Header().Add("Content-Type", p.ContentType())
	w.Header().Add("Content-Language", "en")
	w.WriteHeader(p.ResponseCode())

	pdbytes, err := json.MarshalIndent(p, "", "  ")
	if err == nil {
		w.Write(pdbytes)
	}
}
