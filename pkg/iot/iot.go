//go:generate mockgen -source=iot.go -destination=mocks/mock_iot.go -package=mocks

package iot

import (
	"context"
	"time"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/analytics"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/notify"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/tsdb"
)

type ITelemetry interface {
	AddReading(ctx context.Context, helmetID string, input *models.SensorReading) (*models.SensorReading, error)
	GetHelmet(ctx context.Context, helmetID string) (*models.Helmet, error)
	GetAllHelmets(ctx context.Context) (map[string]models.Helmet, error)
	GetLatest(ctx context.Context, helmetID string) (*models.SensorReading, error)
	GetAllLatest(ctx context.Context) ([]models.LatestView, error)
	GetHistory(ctx context.Context, helmetID string, limit int, startAfter string) (*models.ReadingPage, error)
	GetRange(ctx context.Context, helmetID string, startDate, endDate string) (*models.ReadingRange, error)
	GetAlertReadings(ctx context.Context, helmetID string, limit int) ([]models.SensorReading, error)
	GetSystemStatus(ctx context.Context, helmetID string) (*models.HelmetSystem, error)
	UpdateLocation(ctx context.Context, helmetID string, location string) error
}

type IThresholds interface {
	UpsertThresholds(ctx context.Context, helmetID string, input *models.Thresholds) error
	GetThresholds(ctx context.Context, helmetID string) (*models.Thresholds, error)
}

type IAlert interface {
	CreateAlert(ctx context.Context, input *models.Alert) (*models.Alert, error)
	CheckAndRaiseAlerts(ctx context.Context, helmetID string, previous, current *models.SensorReading) ([]models.Alert, error)
	AcknowledgeAlert(ctx context.Context, alertID string, resolvedBy string) (*models.Alert, error)
	GetLatestAlert(ctx context.Context) (*models.Alert, error)
	GetAlertHistory(ctx context.Context) ([]models.AlertView, error)
	GetRecentEvents(ctx context.Context, limit int) ([]notify.AlertEvent, error)
}

type IEmployee interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, employeeID string) (*models.Employee, error)
	CreateEmployee(ctx context.Context, input *models.EmployeeInput) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, employeeID string, input *models.EmployeeInput) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID string) error
}

type IAssignment interface {
	AssignHelmet(ctx context.Context, helmetID string, req *models.AssignRequest) (*models.Assignment, error)
	UnassignHelmet(ctx context.Context, helmetID string, unassignedBy string, reason string) (*models.Assignment, error)
	GetAssignment(ctx context.Context, helmetID string) (*models.AssignmentView, error)
	ListAssignments(ctx context.Context) ([]models.AssignmentView, error)
	GetAssignmentHistory(ctx context.Context, helmetID string, limit int) ([]models.AssignmentHistoryEntry, error)
	GetDeviceAssignment(ctx context.Context, helmetID string) (*models.DeviceAssignment, error)
}

type IAnalytics interface {
	GetOverview(ctx context.Context) (*analytics.Overview, error)
	GetSafetyTrends(ctx context.Context) ([]analytics.TrendBucket, error)
	GetMinerPerformance(ctx context.Context) ([]analytics.MinerPerformance, error)
}

type IOT struct {
	Store    rtdb.Store
	Notifier notify.Publisher
	Sink     tsdb.ReadingSink
	// Clock and Location default to time.Now and UTC.
	Clock    func() time.Time
	Location *time.Location

	Telemetry  ITelemetry
	Thresholds IThresholds
	Alert      IAlert
	Employee   IEmployee
	Assignment IAssignment
	Analytics  IAnalytics
}

type ServiceOpts struct {
	Telemetry  ITelemetry
	Thresholds IThresholds
	Alert      IAlert
	Employee   IEmployee
	Assignment IAssignment
	Analytics  IAnalytics
}

func (i *IOT) WithServices(opts ServiceOpts) *IOT {
	if opts.Telemetry != nil {
		i.Telemetry = opts.Telemetry
	}
	if opts.Thresholds != nil {
		i.Thresholds = opts.Thresholds
	}
	if opts.Alert != nil {
		i.Alert = opts.Alert
	}
	if opts.Employee != nil {
		i.Employee = opts.Employee
	}
	if opts.Assignment != nil {
		i.Assignment = opts.Assignment
	}
	if opts.Analytics != nil {
		i.Analytics = opts.Analytics
	}
	return i
}

// WithDefaultServices wires every service to its store backed implementation.
func (i *IOT) WithDefaultServices() *IOT {
	return i.WithServices(ServiceOpts{
		Telemetry:  i.GetITelemetry(),
		Thresholds: i.GetIThresholds(),
		Alert:      i.GetIAlert(),
		Employee:   i.GetIEmployee(),
		Assignment: i.GetIAssignment(),
		Analytics:  i.GetIAnalytics(),
	})
}

func (i *IOT) now() time.Time {
	if i.Clock != nil {
		return i.Clock()
	}
	return time.Now()
}

func (i *IOT) location() *time.Location {
	if i.Location != nil {
		return i.Location
	}
	return time.UTC
}

func (i *IOT) notifier() notify.Publisher {
	if i.Notifier != nil {
		return i.Notifier
	}
	return notify.NopPublisher{}
}

func (i *IOT) sink() tsdb.ReadingSink {
	if i.Sink != nil {
		return i.Sink
	}
	return tsdb.NopSink{}
}
