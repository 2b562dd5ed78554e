package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/open-policy-agent/opa/rego"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("entity-inspector/api/authz")

var (
	ErrAccessDenied         = errors.New("authorization failed")
	ErrMalformedCredentials = errors.New("malformed authorization header")
)

// Enticator decides whether a request may be inspected against a schema
type Enticator interface {
	CheckAccess(ctx context.Context, r *http.Request, schema string) error
}

type enticatorImpl struct {
	preparedQuery rego.PreparedEvalQuery
}

// NewAuthenticator compiles the rego policies read from policies. The policy
// decision is data.example.authz.allow, which is either false or an object.
// An object may narrow the grant with a "schemas" list.
func NewAuthenticator(ctx context.Context, policies io.Reader) (Enticator, error) {
	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policies: %s", err.Error())
	}

	query, err := rego.New(
		rego.Query("x = data.example.authz.allow"),
		rego.Module("schemas.rego", string(module)),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare authz policies: %w", err)
	}

	return &enticatorImpl{preparedQuery: query}, nil
}

func (e *enticatorImpl) CheckAccess(ctx context.Context, r *http.Request, schema string) error {
	var err error

	ctx, span := tracer.Start(ctx, "check-access")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	span.SetAttributes(attribute.String("schema", schema))

	token, err := bearerToken(r)
	if err != nil {
		return err
	}

	results, err := e.preparedQuery.Eval(ctx, rego.EvalInput(policyInput(r, schema, token)))
	if err != nil {
		err = fmt.Errorf("policy evaluation failed: %w", err)
		return err
	}

	if len(results) == 0 || len(results[0].Bindings) == 0 {
		err = errors.New("policy evaluation gave no decision")
		return err
	}

	err = decide(results[0].Bindings["x"], schema)
	return err
}

// bearerToken returns the token of an Authorization header. A missing header
// is an anonymous request, any other scheme is rejected.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", nil
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return "", ErrMalformedCredentials
	}

	return strings.TrimSpace(token), nil
}

func policyInput(r *http.Request, schema, token string) map[string]any {
	segments := []string{}
	for _, s := range strings.Split(r.URL.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	return map[string]any{
		"method": r.Method,
		"path":   segments,
		"schema": schema,
		"token":  token,
	}
}

func decide(binding any, schema string) error {
	switch decision := binding.(type) {
	case bool:
		if !decision {
			return ErrAccessDenied
		}
		return nil
	case map[string]any:
		granted, ok := decision["schemas"]
		if !ok {
			return nil
		}

		names, ok := granted.([]any)
		if !ok {
			return fmt.Errorf("unexpected type %T of granted schemas", granted)
		}

		if !slices.Contains(names, any(schema)) {
			return fmt.Errorf("schema %s is not granted (%w)", schema, ErrAccessDenied)
		}

		return nil
	}

	return fmt.Errorf("unexpected policy decision of type %T", binding)
}
