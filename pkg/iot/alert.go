package iot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/notify"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

const (
	DefaultAlertLocation  = "Unknown Location"
	DefaultAlertSeverity  = models.SeverityInfo
	DefaultResolvedBy     = "System/User"
	DefaultRecentEvents   = 20
	UnknownMinerName      = "Unknown Miner"
	alertTimestampLayout  = "2006-01-02 15:04:05"
	alertIDAttempts       = 16
	originAPI             = "api"
	originReading         = "reading"
	durationNotApplicable = "N/A"
)

var errAlertIDTaken = errors.New("alert id already taken")

func alertLogger() *zap.Logger {
	return common.GetCategoryLogger(common.LoggerNameHelmetCore, common.LoggerCategoryAlert)
}

func (i *IOT) publishAlert(ctx context.Context, kind string, alert models.Alert) {
	event := notify.AlertEvent{Kind: kind, At: i.now().Unix(), Alert: alert}
	if err := i.notifier().PublishAlert(ctx, event); err != nil {
		sideEffectFailures.WithLabelValues("notifier").Inc()
		alertLogger().Warn("Failed to publish alert event", zap.String("kind", kind), zap.String("alert_id", alert.ID), zap.Error(err))
	}
}

// normalizeAlert fills the defaults every stored alert carries.
func (i *IOT) normalizeAlert(alert *models.Alert) {
	if strings.TrimSpace(alert.Location) == "" {
		alert.Location = DefaultAlertLocation
	}
	if strings.TrimSpace(alert.Severity) == "" {
		alert.Severity = DefaultAlertSeverity
	}
	if alert.Timestamp <= 0 {
		alert.Timestamp = models.Timestamp(i.now().Unix())
	}
	alert.Resolved = false
	alert.Acknowledged = false
	alert.ResolvedBy = ""
	alert.ResolvedAt = 0
	alert.Duration = durationNotApplicable
}

func (i *IOT) createAlert(ctx context.Context, input *models.Alert) (*models.Alert, error) {
	logger := alertLogger()

	if input == nil {
		return nil, common.NewValidationError("alert body is required", nil)
	}
	if missing := missingFields(map[string]string{
		"id":        input.ID,
		"alertType": string(input.AlertType),
		"message":   input.Message,
	}, "id", "alertType", "message"); len(missing) > 0 {
		return nil, common.NewValidationError("id, alertType and message are required", missing)
	}
	if err := requireKey("id", input.ID); err != nil {
		return nil, err
	}

	alert := *input
	i.normalizeAlert(&alert)

	logger.Info("Received alert", zap.Reflect("alert", alert))

	if err := i.Store.Set(ctx, alertPath(alert.ID), alert); err != nil {
		return nil, upstream("creating real-time alert", err)
	}

	alertsCreated.WithLabelValues(string(alert.AlertType), originAPI).Inc()
	logger.Info("Alert saved", zap.String("alert_id", alert.ID))
	i.publishAlert(ctx, notify.EventAlertCreated, alert)

	return &alert, nil
}

// insertGeneratedAlert stores alert under a fresh millisecond key, moving to the
// next millisecond while the key is taken.
func (i *IOT) insertGeneratedAlert(ctx context.Context, alert *models.Alert) error {
	id := i.now().UnixMilli()
	for attempt := 0; attempt < alertIDAttempts; attempt++ {
		alert.ID = formatKey(id)
		err := i.Store.Transaction(ctx, alertPath(alert.ID), func(current rtdb.Value) (any, error) {
			if current.Exists() {
				return nil, errAlertIDTaken
			}
			return alert, nil
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, errAlertIDTaken) {
			return err
		}
		id++
	}
	return fmt.Errorf("no free alert id after %d attempts", alertIDAttempts)
}

type alertCategory struct {
	alertType models.AlertType
	label     string
	flag      func(r *models.SensorReading) bool
	value     func(r *models.SensorReading) *float64
	threshold func(t *models.Thresholds) float64
}

var readingAlertCategories = []alertCategory{
	{
		alertType: models.AlertTypePanic,
		label:     "Panic button",
		flag:      func(r *models.SensorReading) bool { return r.PanicAlert },
	},
	{
		alertType: models.AlertTypeTemperature,
		label:     "Temperature",
		flag:      func(r *models.SensorReading) bool { return r.TempAlert },
		value:     func(r *models.SensorReading) *float64 { return r.Temperature },
		threshold: func(t *models.Thresholds) float64 { return t.TemperatureThreshold },
	},
	{
		alertType: models.AlertTypeHumidity,
		label:     "Humidity",
		flag:      func(r *models.SensorReading) bool { return r.HumidityAlert },
		value:     func(r *models.SensorReading) *float64 { return r.Humidity },
		threshold: func(t *models.Thresholds) float64 { return t.HumidityThreshold },
	},
	{
		alertType: models.AlertTypeGas,
		label:     "Gas level",
		flag:      func(r *models.SensorReading) bool { return r.GasAlert },
		value:     func(r *models.SensorReading) *float64 { return r.GasLevel },
		threshold: func(t *models.Thresholds) float64 { return t.GasThreshold },
	},
}

// overThreshold reports whether the category's value exceeds a configured
// threshold. A zero threshold counts as unset.
func (c alertCategory) overThreshold(r *models.SensorReading, t *models.Thresholds) bool {
	if c.value == nil || t == nil {
		return false
	}
	limit := c.threshold(t)
	v := c.value(r)
	return limit > 0 && v != nil && *v > limit
}

func (c alertCategory) active(r *models.SensorReading, t *models.Thresholds) bool {
	if r == nil {
		return false
	}
	return c.flag(r) || c.overThreshold(r, t)
}

func (c alertCategory) message(helmetID string, r *models.SensorReading, t *models.Thresholds) string {
	if c.overThreshold(r, t) {
		return fmt.Sprintf("%s %.2f exceeded threshold %.2f on helmet %s", c.label, *c.value(r), c.threshold(t), helmetID)
	}
	if c.alertType == models.AlertTypePanic {
		return fmt.Sprintf("Panic button pressed on helmet %s", helmetID)
	}
	return fmt.Sprintf("%s alert reported by helmet %s", c.label, helmetID)
}

func (i *IOT) checkAndRaiseAlerts(ctx context.Context, helmetID string, previous, current *models.SensorReading) ([]models.Alert, error) {
	logger := alertLogger()

	if current == nil {
		return nil, nil
	}

	var thresholds *models.Thresholds
	var configured models.Thresholds
	found, err := rtdb.GetInto(ctx, i.Store, helmetChild(helmetID, "thresholds"), &configured)
	if err != nil {
		logger.Warn("Failed to read thresholds, using device flags only", zap.String("helmet_id", helmetID), zap.Error(err))
	} else if found {
		thresholds = &configured
	}

	var due []alertCategory
	for _, c := range readingAlertCategories {
		if c.active(current, thresholds) && !c.active(previous, thresholds) {
			due = append(due, c)
		}
	}
	if len(due) == 0 {
		return nil, nil
	}

	var assignment models.HelmetAssignment
	if _, err := rtdb.GetInto(ctx, i.Store, helmetChild(helmetID, "assignment"), &assignment); err != nil {
		logger.Warn("Failed to read helmet assignment for alert attribution", zap.String("helmet_id", helmetID), zap.Error(err))
	}
	location := current.Location
	if location == "" {
		if _, err := rtdb.GetInto(ctx, i.Store, helmetChild(helmetID, "location"), &location); err != nil {
			logger.Warn("Failed to read helmet location", zap.String("helmet_id", helmetID), zap.Error(err))
		}
	}

	raised := make([]models.Alert, 0, len(due))
	var errs []error
	for _, c := range due {
		alert := models.Alert{
			AlertType: c.alertType,
			Type:      models.AlertLevelWarning,
			Severity:  models.SeverityWarning,
			Message:   c.message(helmetID, current, thresholds),
			Location:  location,
			Timestamp: current.Timestamp,
			HelmetID:  helmetID,
		}
		if c.alertType == models.AlertTypePanic {
			alert.Type = models.AlertLevelEmergency
			alert.Severity = models.SeverityCritical
		}
		if assignment.Status == models.AssignmentStatusActive && assignment.EmployeeID != "" {
			alert.MinerID = assignment.EmployeeID
			alert.EmployeeID = assignment.EmployeeID
		}
		i.normalizeAlert(&alert)

		logger.Info("Alert found", zap.Reflect("alert", alert))

		if err := i.insertGeneratedAlert(ctx, &alert); err != nil {
			errs = append(errs, fmt.Errorf("raise %s alert for helmet %s: %w", c.alertType, helmetID, err))
			continue
		}

		alertsCreated.WithLabelValues(string(alert.AlertType), originReading).Inc()
		logger.Info("Alert saved", zap.String("alert_id", alert.ID))
		i.publishAlert(ctx, notify.EventAlertCreated, alert)
		raised = append(raised, alert)
	}

	return raised, errors.Join(errs...)
}

func (i *IOT) acknowledgeAlert(ctx context.Context, alertID string, resolvedBy string) (*models.Alert, error) {
	logger := alertLogger()

	if err := requireKey("alertId", alertID); err != nil {
		return nil, err
	}

	var alert models.Alert
	found, err := rtdb.GetInto(ctx, i.Store, alertPath(alertID), &alert)
	if err != nil {
		return nil, upstream("acknowledging alert", err)
	}
	if !found {
		return nil, common.NewNotFoundError("Alert not found.")
	}

	now := i.now().Unix()
	duration := durationNotApplicable
	if alert.Timestamp > 0 {
		duration = fmt.Sprintf("%d seconds", now-alert.Timestamp.Int64())
	}
	if strings.TrimSpace(resolvedBy) == "" {
		resolvedBy = DefaultResolvedBy
	}

	if err := i.Store.Update(ctx, alertPath(alertID), map[string]any{
		"resolved":     true,
		"acknowledged": true,
		"resolvedBy":   resolvedBy,
		"resolvedAt":   now,
		"duration":     duration,
	}); err != nil {
		return nil, upstream("acknowledging alert", err)
	}

	alert.ID = alertID
	alert.Resolved = true
	alert.Acknowledged = true
	alert.ResolvedBy = resolvedBy
	alert.ResolvedAt = models.Timestamp(now)
	alert.Duration = duration

	alertsAcknowledged.Inc()
	logger.Info("Alert acknowledged", zap.String("alert_id", alertID), zap.String("resolved_by", resolvedBy), zap.String("duration", duration))
	i.publishAlert(ctx, notify.EventAlertAcknowledged, alert)

	return &alert, nil
}

func (i *IOT) getLatestAlert(ctx context.Context) (*models.Alert, error) {
	nodes, err := i.Store.Children(ctx, rootAlerts, rtdb.Query{LimitToLast: 1})
	if err != nil {
		return nil, upstream("fetching latest alert", err)
	}
	if len(nodes) == 0 {
		return nil, common.NewNotFoundError("No alerts found.")
	}
	var alert models.Alert
	if err := nodes[0].Value.Unmarshal(&alert); err != nil {
		return nil, upstream("decoding latest alert", err)
	}
	alert.ID = nodes[0].Key
	return &alert, nil
}

// alertSnapshot is what alert history and analytics read together. The
// collections are fetched concurrently.
type alertSnapshot struct {
	alertKeys   []string
	alerts      map[string]models.Alert
	assignments map[string]models.Assignment
	employees   map[string]models.Employee
	helmetCount int
}

func (i *IOT) loadAlertSnapshot(ctx context.Context, countHelmets bool) (*alertSnapshot, error) {
	logger := alertLogger()
	snap := &alertSnapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		keys, alerts, err := rtdb.ChildrenInto[models.Alert](gctx, i.Store, rootAlerts, rtdb.Query{}, skipLogger(logger, rootAlerts))
		snap.alertKeys, snap.alerts = keys, alerts
		return err
	})
	g.Go(func() error {
		_, assignments, err := rtdb.ChildrenInto[models.Assignment](gctx, i.Store, rootAssignments, rtdb.Query{}, skipLogger(logger, rootAssignments))
		snap.assignments = assignments
		return err
	})
	g.Go(func() error {
		_, employees, err := rtdb.ChildrenInto[models.Employee](gctx, i.Store, rootEmployees, rtdb.Query{}, skipLogger(logger, rootEmployees))
		snap.employees = employees
		return err
	})
	if countHelmets {
		g.Go(func() error {
			nodes, err := i.Store.Children(gctx, rootHelmets, rtdb.Query{})
			snap.helmetCount = len(nodes)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *alertSnapshot) minerName(alert *models.Alert) string {
	employeeID := alert.EmployeeID
	if employeeID == "" {
		employeeID = alert.MinerID
	}
	if employeeID == "" && alert.HelmetID != "" {
		if a, ok := s.assignments[alert.HelmetID]; ok && a.IsActive() {
			employeeID = a.EmployeeID
		}
	}
	if e, ok := s.employees[employeeID]; ok && employeeID != "" {
		if name := e.DisplayName(); name != "" {
			return name
		}
	}
	return UnknownMinerName
}

func (i *IOT) getAlertHistory(ctx context.Context) ([]models.AlertView, error) {
	snap, err := i.loadAlertSnapshot(ctx, false)
	if err != nil {
		return nil, upstream("fetching alert history", err)
	}

	loc := i.location()
	views := make([]models.AlertView, 0, len(snap.alertKeys))
	for _, key := range snap.alertKeys {
		alert := snap.alerts[key]
		alert.ID = key
		if alert.Timestamp == 0 {
			if ts, err := strconv.ParseInt(key, 10, 64); err == nil {
				alert.Timestamp = models.Timestamp(ts)
			}
		}
		if alert.Duration == "" {
			alert.Duration = durationNotApplicable
		}
		view := models.AlertView{Alert: alert, MinerName: snap.minerName(&alert)}
		if alert.Timestamp > 0 {
			view.TimestampFormatted = time.Unix(alert.Timestamp.Int64(), 0).In(loc).Format(alertTimestampLayout)
		}
		views = append(views, view)
	}

	// newest key first, so equal timestamps keep key order
	for l, r := 0, len(views)-1; l < r; l, r = l+1, r-1 {
		views[l], views[r] = views[r], views[l]
	}
	sort.SliceStable(views, func(a, b int) bool { return views[a].Timestamp > views[b].Timestamp })

	return views, nil
}

func (i *IOT) getRecentEvents(ctx context.Context, limit int) ([]notify.AlertEvent, error) {
	if limit <= 0 {
		limit = DefaultRecentEvents
	}
	events, err := i.notifier().RecentAlerts(ctx, limit)
	if err != nil {
		return nil, upstream("fetching recent alert events", err)
	}
	return events, nil
}

type IAlertImpl struct {
	iot *IOT
}

func (ia *IAlertImpl) CreateAlert(ctx context.Context, input *models.Alert) (*models.Alert, error) {
	return ia.iot.createAlert(ctx, input)
}

func (ia *IAlertImpl) CheckAndRaiseAlerts(ctx context.Context, helmetID string, previous, current *models.SensorReading) ([]models.Alert, error) {
	return ia.iot.checkAndRaiseAlerts(ctx, helmetID, previous, current)
}

func (ia *IAlertImpl) AcknowledgeAlert(ctx context.Context, alertID string, resolvedBy string) (*models.Alert, error) {
	return ia.iot.acknowledgeAlert(ctx, alertID, resolvedBy)
}

func (ia *IAlertImpl) GetLatestAlert(ctx context.Context) (*models.Alert, error) {
	return ia.iot.getLatestAlert(ctx)
}

func (ia *IAlertImpl) GetAlertHistory(ctx context.Context) ([]models.AlertView, error) {
	return ia.iot.getAlertHistory(ctx)
}

func (ia *IAlertImpl) GetRecentEvents(ctx context.Context, limit int) ([]notify.AlertEvent, error) {
	return ia.iot.getRecentEvents(ctx, limit)
}

func (i *IOT) GetIAlert() IAlert {
	return &IAlertImpl{iot: i}
}
