package inspector

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/diwise/entity-accessor/pkg/entity"
	"github.com/diwise/entity-accessor/pkg/problems"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate moq -rm -out inspector_mock.go . Inspector

type Inspector interface {
	Schemas(ctx context.Context) []string
	Inspect(ctx context.Context, schema string, body []byte) (*Result, error)
}

// Result holds the typed reads of a payload inspected against a schema
type Result struct {
	ID         string      `json:"id"`
	Schema     string      `json:"schema"`
	Fields     *entity.Map `json:"fields"`
	Attributes *entity.Map `json:"attributes"`
}

const TraceAttributeSchema string = "schema"

var tracer = otel.Tracer("entity-inspector/inspector")

type inspectorImpl struct {
	schemas map[string]SchemaConfig
	names   []string
}

func New(ctx context.Context, cfg *Config) (Inspector, error) {
	impl := &inspectorImpl{
		schemas: map[string]SchemaConfig{},
	}

	logger := logging.GetFromContext(ctx)

	for _, schema := range cfg.Schemas {
		if _, ok := impl.schemas[schema.Name]; ok {
			return nil, fmt.Errorf("schema %s is configured more than once", schema.Name)
		}

		impl.schemas[schema.Name] = schema
		impl.names = append(impl.names, schema.Name)

		logger.Info("registered schema", "schema", schema.Name, "store", schema.Store, "fields", len(schema.Fields))
	}

	return impl, nil
}

func (i *inspectorImpl) Schemas(ctx context.Context) []string {
	return slices.Clone(i.names)
}

func (i *inspectorImpl) Inspect(ctx context.Context, schemaName string, body []byte) (*Result, error) {
	var err error

	ctx, span := tracer.Start(ctx, "inspect",
		trace.WithAttributes(attribute.String(TraceAttributeSchema, schemaName)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	schema, ok := i.schemas[schemaName]
	if !ok {
		err = problems.NewNotFoundError(fmt.Sprintf("no schema named %s", schemaName))
		return nil, err
	}

	e, err := decode(schema, body)
	if err != nil {
		err = problems.NewInvalidRequestError(fmt.Sprintf("unable to decode request payload: %s", err.Error()))
		return nil, err
	}

	fields := entity.NewMap()
	missing := []string{}

	for _, field := range schema.Fields {
		value, present, readErr := readerFor(field)(e, field.Name, field.Required)
		if readErr != nil {
			name, _ := entity.FieldName(readErr)
			missing = append(missing, name)
			continue
		}

		if present {
			fields.Set(field.Name, value)
		}
	}

	if len(missing) > 0 {
		err = problems.NewBadRequestDataError(
			fmt.Sprintf("required fields are missing or invalid: %s", strings.Join(missing, ", ")),
			missing...,
		)
		return nil, err
	}

	result := &Result{
		ID:         uuid.NewString(),
		Schema:     schema.Name,
		Fields:     fields,
		Attributes: e.Except(schema.Omit...),
	}

	logging.GetFromContext(ctx).Debug("payload inspected", "schema", schema.Name, "id", result.ID, "fields", fields.Len())

	return result, nil
}

func decode(schema SchemaConfig, body []byte) (entity.Entity, error) {
	decorators := []entity.DecoratorFunc{}
	if len(schema.Fields) > 0 {
		decorators = append(decorators, entity.Fields(schema.FieldNames()...))
	}

	if schema.Store == StoreRecord {
		return entity.NewRecordEntityFromJSON(body, decorators...)
	}

	return entity.NewMapEntityFromJSON(body, decorators...)
}
