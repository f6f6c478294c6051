package iot

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/iot/mocks"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/notify"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb/badgerstore"
)

var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

type MockOpts struct {
	Telemetry  bool
	Thresholds bool
	Alert      bool
	Employee   bool
	Assignment bool
	Analytics  bool
}

type MockServices struct {
	Telemetry  *mocks.MockITelemetry
	Thresholds *mocks.MockIThresholds
	Alert      *mocks.MockIAlert
	Employee   *mocks.MockIEmployee
	Assignment *mocks.MockIAssignment
	Analytics  *mocks.MockIAnalytics
}

func GetMockIOTWithMemoryStore(t *testing.T, opts MockOpts) (*gomock.Controller, *IOT, *MockServices) {
	ctrl := gomock.NewController(t)

	store, err := badgerstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	iotInstance := &IOT{
		Store:    store,
		Clock:    func() time.Time { return fixedNow },
		Location: time.UTC,
	}

	m := &MockServices{
		Telemetry:  mocks.NewMockITelemetry(ctrl),
		Thresholds: mocks.NewMockIThresholds(ctrl),
		Alert:      mocks.NewMockIAlert(ctrl),
		Employee:   mocks.NewMockIEmployee(ctrl),
		Assignment: mocks.NewMockIAssignment(ctrl),
		Analytics:  mocks.NewMockIAnalytics(ctrl),
	}

	services := ServiceOpts{
		Telemetry:  iotInstance.GetITelemetry(),
		Thresholds: iotInstance.GetIThresholds(),
		Alert:      iotInstance.GetIAlert(),
		Employee:   iotInstance.GetIEmployee(),
		Assignment: iotInstance.GetIAssignment(),
		Analytics:  iotInstance.GetIAnalytics(),
	}
	if opts.Telemetry {
		services.Telemetry = m.Telemetry
	}
	if opts.Thresholds {
		services.Thresholds = m.Thresholds
	}
	if opts.Alert {
		services.Alert = m.Alert
	}
	if opts.Employee {
		services.Employee = m.Employee
	}
	if opts.Assignment {
		services.Assignment = m.Assignment
	}
	if opts.Analytics {
		services.Analytics = m.Analytics
	}
	iotInstance.WithServices(services)

	return ctrl, iotInstance, m
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func float(v float64) *float64 { return &v }

type recordingSink struct {
	mu       sync.Mutex
	readings []models.SensorReading
	err      error
}

func (s *recordingSink) WriteReading(_ context.Context, _ string, r models.SensorReading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.readings = append(s.readings, r)
	return nil
}

func (s *recordingSink) Close() {}

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.AlertEvent
	fail   bool
}

func (p *recordingPublisher) PublishAlert(_ context.Context, event notify.AlertEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) RecentAlerts(_ context.Context, limit int) ([]notify.AlertEvent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []notify.AlertEvent{}
	for i := len(p.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, p.events[i])
	}
	return out, nil
}

func (p *recordingPublisher) Close() error { return nil }
