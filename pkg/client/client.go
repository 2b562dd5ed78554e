package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/diwise/entity-accessor/pkg/entity"
	"github.com/diwise/entity-accessor/pkg/problems"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type InspectorClient interface {
	Inspect(ctx context.Context, schema string, payload any) (*InspectionResult, error)
	Schemas(ctx context.Context) ([]string, error)
}

type InspectionResult struct {
	ID         string      `json:"id"`
	Schema     string      `json:"schema"`
	Fields     *entity.Map `json:"fields"`
	Attributes *entity.Map `json:"attributes"`
}

// Entity wraps the typed fields of the result so that they can be read back
// through the entity accessors
func (r *InspectionResult) Entity() *entity.MapEntity {
	e := entity.NewMapEntity()
	e.ReplaceAll(r.Fields)
	return e
}

func Debug(enabled string) func(*inspectorClient) {
	return func(c *inspectorClient) {
		c.debug = (enabled == "true")
	}
}

func Token(token string) func(*inspectorClient) {
	return func(c *inspectorClient) {
		c.token = token
	}
}

func NewInspectorClient(baseURL string, options ...func(*inspectorClient)) InspectorClient {
	c := &inspectorClient{
		baseURL: baseURL,
		debug:   false,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

const TraceAttributeSchema string = "schema"

var tracer = otel.Tracer("entity-inspector-client")

type inspectorClient struct {
	baseURL string
	token   string
	debug   bool
}

func (c inspectorClient) Inspect(ctx context.Context, schema string, payload any) (*InspectionResult, error) {
	var err error

	ctx, span := tracer.Start(ctx, "inspect",
		trace.WithAttributes(attribute.String(TraceAttributeSchema, schema)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	var body []byte

	switch p := payload.(type) {
	case []byte:
		body = p
	case string:
		body = []byte(p)
	default:
		body, err = json.Marshal(payload)
		if err != nil {
			err = fmt.Errorf("failed to marshal payload: %s (%w)", err.Error(), problems.ErrBadRequest)
			return nil, err
		}
	}

	response, responseBody, err := c.callInspector(
		ctx, http.MethodPost, c.baseURL+"/api/v0/schemas/"+url.PathEscape(schema)+"/inspect", bytes.NewBuffer(body),
	)

	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		err = c.errorFromResponse(response, responseBody)
		return nil, err
	}

	result := &InspectionResult{}
	err = json.Unmarshal(responseBody, result)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal inspection result: %s (%w)", err.Error(), problems.ErrBadResponse)
		return nil, err
	}

	return result, nil
}

func (c inspectorClient) Schemas(ctx context.Context) ([]string, error) {
	var err error

	ctx, span := tracer.Start(ctx, "list-schemas")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	response, responseBody, err := c.callInspector(ctx, http.MethodGet, c.baseURL+"/api/v0/schemas", nil)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		err = c.errorFromResponse(response, responseBody)
		return nil, err
	}

	schemas := []string{}
	err = json.Unmarshal(responseBody, &schemas)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal schema names: %s (%w)", err.Error(), problems.ErrBadResponse)
		return nil, err
	}

	return schemas, nil
}

func (c inspectorClient) errorFromResponse(response *http.Response, responseBody []byte) error {
	contentType := response.Header.Get("Content-Type")
	if response.StatusCode >= http.StatusBadRequest && response.StatusCode <= http.StatusInternalServerError {
		return problems.NewErrorFromProblemReport(response.StatusCode, contentType, responseBody)
	}

	return fmt.Errorf("unexpected response code %d (%w)", response.StatusCode, problems.ErrInternal)
}

func (c inspectorClient) callInspector(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, []byte, error) {
	httpClient := http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), problems.ErrInternal)
	}

	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	req.Header.Add("Accept", "application/json")

	if c.token != "" {
		req.Header.Add("Authorization", "Bearer "+c.token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %s (%w)", err.Error(), problems.ErrRequest)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %s (%w)", err.Error(), problems.ErrBadResponse)
	}

	if c.debug && resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusNotFound {
			reqbytes, _ := httputil.DumpRequest(req, false)
			respbytes, _ := httputil.DumpResponse(resp, false)

			log := logging.GetFromContext(ctx)
			log.Error("request failed", "request", string(reqbytes), "response", string(respbytes))
		}
	}

	return resp, respBody, nil
}
