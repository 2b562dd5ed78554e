package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/diwise/entity-accessor/internal/pkg/application/inspector"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

// Notifier forwards completed inspections to an external endpoint. Posts are
// queued and sent one at a time from a single goroutine.
type Notifier interface {
	Start() error
	Stop() error

	InspectionCompleted(ctx context.Context, result *inspector.Result)
}

var tracer = otel.Tracer("entity-inspector/notifier")

type action func()

type notifier struct {
	endpoint string

	// mu guards started and sends on queue, so that nothing is queued after
	// Stop has closed it
	mu      sync.Mutex
	started bool
	queue   chan action
}

func NewNotifier(ctx context.Context, endpoint string) (Notifier, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("a notification endpoint is required")
	}

	return &notifier{
		endpoint: endpoint,
	}, nil
}

func (n *notifier) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.started {
		return fmt.Errorf("already started")
	}

	n.started = true
	n.queue = make(chan action, 32)

	go n.run(n.queue)

	return nil
}

// Stop blocks until every queued notification has been posted
func (n *notifier) Stop() error {
	n.mu.Lock()

	if !n.started {
		n.mu.Unlock()
		return nil
	}

	n.started = false

	queue := n.queue
	resultChan := make(chan bool)

	queue <- func() {
		// closing the queue makes run return once this action is done
		close(queue)
		resultChan <- true
	}

	n.mu.Unlock()

	<-resultChan
	return nil
}

func (n *notifier) InspectionCompleted(ctx context.Context, result *inspector.Result) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.started {
		return
	}

	var err error

	logger := logging.GetFromContext(ctx)

	ctx, span := tracer.Start(
		tracing.ExtractHeaders(context.Background(), tracing.InjectHeaders(ctx)),
		"post",
	)

	n.queue <- func() {
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		err = postNotification(ctx, result, n.endpoint)
		if err != nil {
			logger.Error("failed to post notification", "err", err.Error())
		}
	}
}

type notification struct {
	ID         string              `json:"id"`
	Type       string              `json:"type"`
	NotifiedAt string              `json:"notifiedAt"`
	Data       []*inspector.Result `json:"data"`
}

func postNotification(ctx context.Context, result *inspector.Result, endpoint string) error {
	n := notification{
		ID:         "urn:diwise:notification:" + uuid.NewString(),
		Type:       "Notification",
		NotifiedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Data:       []*inspector.Result{result},
	}

	body, err := json.MarshalIndent(n, "", " ")
	if err != nil {
		return fmt.Errorf("marshalling error (%w)", err)
	}

	httpClient := http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("unable to create new request (%w)", err)
	}

	req.Header.Add("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request (%w)", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification endpoint returned status code %d", resp.StatusCode)
	}

	return nil
}

func (n *notifier) run(queue <-chan action) {
	// repeat until the queue is closed
	for action := range queue {
		if action == nil {
			return
		}

		action()
	}
}
