package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/diwise/entity-accessor/internal/pkg/application/inspector"
	"github.com/diwise/entity-accessor/internal/pkg/presentation/api/auth"
	"github.com/diwise/entity-accessor/pkg/problems"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const TraceAttributeSchema string = "schema"

var tracer = otel.Tracer("entity-inspector/api")

type InspectionCompletionCallback func(ctx context.Context, result *inspector.Result)

func RegisterHandlers(ctx context.Context, r chi.Router, policies io.Reader, app inspector.Inspector, onsuccess InspectionCompletionCallback) error {

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return fmt.Errorf("failed to create api authenticator: %w", err)
	}

	r.Route("/api/v0", func(r chi.Router) {
		r.Use(
			Logger(logging.GetFromContext(ctx)),
			RequiredContentTypes([]string{"application/json", "application/ld+json"}),
		)

		r.Route("/schemas", func(r chi.Router) {
			r.Get("/", NewListSchemasHandler(app))
			r.Post("/{schema}/inspect", NewInspectPayloadHandler(app, authenticator, onsuccess))
		})
	})

	return nil
}

func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(
				trace.SpanFromContext(ctx),
				logger,
				ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequiredContentTypes(validTypes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType := r.Header.Get("Content-Type")
			isValidContentType := true

			if len(contentType) > 0 {
				isValidContentType = false

				for _, t := range validTypes {
					if strings.HasPrefix(contentType, t) {
						isValidContentType = true
						break
					}
				}
			}

			if isValidContentType {
				next.ServeHTTP(w, r)
			} else {
				http.Error(w, "unsupported media type", http.StatusUnsupportedMediaType)
			}
		})
	}
}

// NewListSchemasHandler handles GET requests for the configured schema names
func NewListSchemasHandler(app inspector.Inspector) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx := r.Context()

		labeler, _ := otelhttp.LabelerFromContext(ctx)
		defer func() { addLabelIfError(err, labeler) }()

		schemas := app.Schemas(ctx)

		var body []byte
		body, err = json.Marshal(schemas)
		if err != nil {
			problems.ReportNewInternalError(w, err.Error(), traceID(ctx))
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})
}

// NewInspectPayloadHandler handles POST requests with payloads that should be
// read through the typed accessors of a named schema
func NewInspectPayloadHandler(app inspector.Inspector, authenticator auth.Enticator, onsuccess InspectionCompletionCallback) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		schema := chi.URLParam(r, "schema")

		ctx, span := tracer.Start(r.Context(), "inspect-payload",
			trace.WithAttributes(attribute.String(TraceAttributeSchema, schema)),
		)
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()

		labeler, _ := otelhttp.LabelerFromContext(ctx)
		defer func() { addLabelIfError(err, labeler) }()

		log := logging.GetFromContext(ctx)

		err = authenticator.CheckAccess(ctx, r, schema)
		if err != nil {
			log.Warn("access not granted", "schema", schema, "err", err.Error())
			if errors.Is(err, auth.ErrMalformedCredentials) {
				problems.ReportUnauthorizedRequest(w, err.Error(), traceID(ctx))
				return
			}
			messageToSendToNonAuthenticatedClients := "not found"
			problems.ReportNotFoundError(w, messageToSendToNonAuthenticatedClients, traceID(ctx))
			return
		}

		var body []byte
		body, err = io.ReadAll(r.Body)
		if err != nil {
			problems.ReportNewInvalidRequest(w, fmt.Sprintf("unable to read request body: %s", err.Error()), traceID(ctx))
			return
		}

		var result *inspector.Result
		result, err = app.Inspect(ctx, schema, body)
		if err != nil {
			log.Info("inspection failed", "schema", schema, "err", err.Error())
			mapInspectorToProblemReport(w, err, traceID(ctx))
			return
		}

		var responseBody []byte
		responseBody, err = json.Marshal(result)
		if err != nil {
			problems.ReportNewInternalError(w, err.Error(), traceID(ctx))
			return
		}

		onsuccess(ctx, result)

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(responseBody)
	})
}

func mapInspectorToProblemReport(w http.ResponseWriter, err error, traceID string) {
	switch {
	case errors.Is(err, problems.ErrBadRequest):
		problems.ReportNewBadRequestData(w, err.Error(), problems.Fields(err), traceID)
	case errors.Is(err, problems.ErrInvalidRequest):
		problems.ReportNewInvalidRequest(w, err.Error(), traceID)
	case errors.Is(err, problems.ErrNotFound):
		problems.ReportNotFoundError(w, err.Error(), traceID)
	default:
		problems.ReportNewInternalError(w, err.Error(), traceID)
	}
}

func addLabelIfError(err error, labeler *otelhttp.Labeler) {
	if err != nil {
		labeler.Add(attribute.Bool("error", true))
	}
}

func traceID(ctx context.Context) string {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if spanContext.HasTraceID() {
		return spanContext.TraceID().String()
	}
	return ""
}
