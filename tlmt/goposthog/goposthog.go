package goposthog

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/posthog/posthog-go"

	"github.com/sadewadee/job-applier/tlmt"
)

type service struct {
	client     posthog.Client
	distinctID string
	mu         sync.Mutex
}

// New creates a PostHog-backed telemetry client
func New(apiKey, endpoint string) (tlmt.Telemetry, error) {
	if apiKey == "" {
		return nil, errors.New("posthog api key is required")
	}

	client, err := posthog.NewWithConfig(apiKey, posthog.Config{
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, err
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &service{
		client:     client,
		distinctID: hostname,
	}, nil
}

func (s *service) Send(_ context.Context, event tlmt.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	props := posthog.NewProperties()
	for k, v := range event.Props {
		props.Set(k, v)
	}

	return s.client.Enqueue(posthog.Capture{
		DistinctId: s.distinctID,
		Event:      event.Name,
		Properties: props,
	})
}

func (s *service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.client.Close()
}
