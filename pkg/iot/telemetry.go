package iot

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

const (
	DefaultHistoryLimit      = 50
	DefaultAlertReadingLimit = 20
	alertReadingScanFactor   = 3
)

func telemetryLogger() *zap.Logger {
	return common.GetCategoryLogger(common.LoggerNameHelmetCore, common.LoggerCategoryTelemetry)
}

func upstream(action string, err error) error {
	return common.NewUpstreamError(fmt.Sprintf("Error %s", action), err)
}

func (i *IOT) addReading(ctx context.Context, helmetID string, input *models.SensorReading) (*models.SensorReading, error) {
	logger := telemetryLogger()

	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}
	if input == nil {
		return nil, common.NewValidationError("reading body is required", nil)
	}
	if i.Alert == nil {
		return nil, fmt.Errorf("alert service not available")
	}

	reading := *input
	reading.HelmetID = helmetID
	if reading.Timestamp <= 0 {
		reading.Timestamp = models.Timestamp(i.now().Unix())
	}

	logger.Info("Received reading for helmet", zap.String("helmet_id", helmetID), zap.Reflect("reading", reading))

	var previous models.SensorReading
	hadPrevious, err := rtdb.GetInto(ctx, i.Store, helmetChild(helmetID, "latest"), &previous)
	if err != nil {
		return nil, upstream("reading latest sensor data", err)
	}

	key := formatKey(reading.Timestamp.Int64())
	if err := i.Store.Update(ctx, helmetPath(helmetID), map[string]any{
		rtdb.Join("sensorData", key): reading,
		"latest":                     reading,
		"system/lastSeen":            reading.Timestamp,
		"system/online":              true,
	}); err != nil {
		return nil, upstream("adding sensor data", err)
	}

	readingsIngested.WithLabelValues(strconv.FormatBool(reading.HasAlertFlag())).Inc()
	logger.Info("Stored reading for helmet", zap.String("helmet_id", helmetID), zap.String("key", key))

	if err := i.sink().WriteReading(ctx, helmetID, reading); err != nil {
		sideEffectFailures.WithLabelValues("tsdb").Inc()
		logger.Warn("Failed to mirror reading", zap.String("helmet_id", helmetID), zap.Error(err))
	}

	var prev *models.SensorReading
	if hadPrevious {
		prev = &previous
	}
	if _, err := i.Alert.CheckAndRaiseAlerts(ctx, helmetID, prev, &reading); err != nil {
		logger.Error("Failed to raise alerts for reading", zap.String("helmet_id", helmetID), zap.Error(err))
	}

	return &reading, nil
}

func (i *IOT) getHelmet(ctx context.Context, helmetID string) (*models.Helmet, error) {
	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}
	var helmet models.Helmet
	found, err := rtdb.GetInto(ctx, i.Store, helmetPath(helmetID), &helmet)
	if err != nil {
		return nil, upstream("fetching helmet data", err)
	}
	if !found {
		return nil, common.NewNotFoundError("Helmet not found")
	}
	return &helmet, nil
}

func (i *IOT) getAllHelmets(ctx context.Context) (map[string]models.Helmet, error) {
	_, helmets, err := rtdb.ChildrenInto[models.Helmet](ctx, i.Store, rootHelmets, rtdb.Query{}, skipLogger(telemetryLogger(), rootHelmets))
	if err != nil {
		return nil, upstream("fetching sensor data", err)
	}
	if len(helmets) == 0 {
		return nil, common.NewNotFoundError("No sensor data found")
	}
	return helmets, nil
}

func (i *IOT) getLatest(ctx context.Context, helmetID string) (*models.SensorReading, error) {
	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}
	var reading models.SensorReading
	found, err := rtdb.GetInto(ctx, i.Store, helmetChild(helmetID, "latest"), &reading)
	if err != nil {
		return nil, upstream("fetching latest sensor data", err)
	}
	if !found {
		return nil, common.NewNotFoundError("No latest data found for this helmet")
	}
	return &reading, nil
}

func (i *IOT) getAllLatest(ctx context.Context) ([]models.LatestView, error) {
	keys, helmets, err := rtdb.ChildrenInto[models.Helmet](ctx, i.Store, rootHelmets, rtdb.Query{}, skipLogger(telemetryLogger(), rootHelmets))
	if err != nil {
		return nil, upstream("fetching latest data", err)
	}

	views := make([]models.LatestView, 0, len(keys))
	for _, id := range keys {
		h := helmets[id]
		if h.Latest == nil {
			continue
		}
		location := h.Location
		if location == "" {
			location = h.Latest.Location
		}
		views = append(views, models.LatestView{SensorReading: *h.Latest, HelmetID: id, Location: location})
	}
	if len(views) == 0 {
		return nil, common.NewNotFoundError("No latest data found")
	}
	return views, nil
}

func readingsNewestFirst(nodes []rtdb.Node, logger *zap.Logger) ([]models.SensorReading, string) {
	readings := make([]models.SensorReading, 0, len(nodes))
	oldestKey := ""
	for idx := len(nodes) - 1; idx >= 0; idx-- {
		var r models.SensorReading
		if err := nodes[idx].Value.Unmarshal(&r); err != nil {
			logger.Warn("Skipping malformed reading", zap.String("key", nodes[idx].Key), zap.Error(err))
			continue
		}
		if r.Timestamp == 0 {
			if ts, err := strconv.ParseInt(nodes[idx].Key, 10, 64); err == nil {
				r.Timestamp = models.Timestamp(ts)
			}
		}
		readings = append(readings, r)
		oldestKey = nodes[idx].Key
	}
	return readings, oldestKey
}

func (i *IOT) getHistory(ctx context.Context, helmetID string, limit int, startAfter string) (*models.ReadingPage, error) {
	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	startAfter = strings.TrimSpace(startAfter)

	nodes, err := i.Store.Children(ctx, sensorDataPath(helmetID), rtdb.Query{EndBefore: startAfter, LimitToLast: limit})
	if err != nil {
		return nil, upstream("fetching history data", err)
	}
	if len(nodes) == 0 {
		return nil, common.NewNotFoundError("No history data found")
	}

	readings, oldest := readingsNewestFirst(nodes, telemetryLogger())
	return &models.ReadingPage{Readings: readings, Count: len(readings), NextStartAfter: oldest}, nil
}

func (i *IOT) getRange(ctx context.Context, helmetID string, startDate, endDate string) (*models.ReadingRange, error) {
	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}
	if missing := missingFields(map[string]string{"startDate": startDate, "endDate": endDate}, "startDate", "endDate"); len(missing) > 0 {
		return nil, common.NewValidationError("startDate and endDate are required", missing)
	}

	from, to, err := dayBounds(startDate, endDate, i.location())
	if err != nil {
		return nil, common.NewValidationError("startDate and endDate must be dates (YYYY-MM-DD)", err.Error())
	}
	if from > to {
		return nil, common.NewValidationError("startDate must not be after endDate", nil)
	}

	nodes, err := i.Store.Children(ctx, sensorDataPath(helmetID), rtdb.Query{StartAt: formatKey(from), EndAt: formatKey(to)})
	if err != nil {
		return nil, upstream("fetching data by date range", err)
	}
	if len(nodes) == 0 {
		return nil, common.NewNotFoundError("No data found for the specified date range")
	}

	readings, _ := readingsNewestFirst(nodes, telemetryLogger())
	return &models.ReadingRange{
		Readings:  readings,
		Count:     len(readings),
		DateRange: models.DateRange{Start: from, End: to},
	}, nil
}

func (i *IOT) getAlertReadings(ctx context.Context, helmetID string, limit int) ([]models.SensorReading, error) {
	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultAlertReadingLimit
	}

	nodes, err := i.Store.Children(ctx, sensorDataPath(helmetID), rtdb.Query{LimitToLast: limit * alertReadingScanFactor})
	if err != nil {
		return nil, upstream("fetching alert data", err)
	}
	if len(nodes) == 0 {
		return nil, common.NewNotFoundError("No sensor data found")
	}

	readings, _ := readingsNewestFirst(nodes, telemetryLogger())
	flagged := common.Filter(readings, func(r models.SensorReading) bool { return r.HasAlertFlag() })
	sort.SliceStable(flagged, func(a, b int) bool { return flagged[a].Timestamp > flagged[b].Timestamp })
	if len(flagged) > limit {
		flagged = flagged[:limit]
	}
	return flagged, nil
}

func (i *IOT) getSystemStatus(ctx context.Context, helmetID string) (*models.HelmetSystem, error) {
	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}
	var system models.HelmetSystem
	found, err := rtdb.GetInto(ctx, i.Store, helmetChild(helmetID, "system"), &system)
	if err != nil {
		return nil, upstream("fetching system status", err)
	}
	if !found {
		return nil, common.NewNotFoundError("No system status found for this helmet")
	}
	return &system, nil
}

func (i *IOT) updateLocation(ctx context.Context, helmetID string, location string) error {
	if err := requireKey("helmetId", helmetID); err != nil {
		return err
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return common.NewValidationError("Location is required and must be a non-empty string", []string{"location"})
	}
	if err := i.Store.Set(ctx, helmetChild(helmetID, "location"), location); err != nil {
		return upstream("updating helmet location", err)
	}
	telemetryLogger().Info("Updated helmet location", zap.String("helmet_id", helmetID), zap.String("location", location))
	return nil
}

func skipLogger(logger *zap.Logger, collection string) func(string, error) {
	return func(key string, err error) {
		logger.Warn("Skipping malformed record", zap.String("collection", collection), zap.String("key", key), zap.Error(err))
	}
}

type ITelemetryImpl struct {
	iot *IOT
}

func (it *ITelemetryImpl) AddReading(ctx context.Context, helmetID string, input *models.SensorReading) (*models.SensorReading, error) {
	return it.iot.addReading(ctx, helmetID, input)
}

func (it *ITelemetryImpl) GetHelmet(ctx context.Context, helmetID string) (*models.Helmet, error) {
	return it.iot.getHelmet(ctx, helmetID)
}

func (it *ITelemetryImpl) GetAllHelmets(ctx context.Context) (map[string]models.Helmet, error) {
	return it.iot.getAllHelmets(ctx)
}

func (it *ITelemetryImpl) GetLatest(ctx context.Context, helmetID string) (*models.SensorReading, error) {
	return it.iot.getLatest(ctx, helmetID)
}

func (it *ITelemetryImpl) GetAllLatest(ctx context.Context) ([]models.LatestView, error) {
	return it.iot.getAllLatest(ctx)
}

func (it *ITelemetryImpl) GetHistory(ctx context.Context, helmetID string, limit int, startAfter string) (*models.ReadingPage, error) {
	return it.iot.getHistory(ctx, helmetID, limit, startAfter)
}

func (it *ITelemetryImpl) GetRange(ctx context.Context, helmetID string, startDate, endDate string) (*models.ReadingRange, error) {
	return it.iot.getRange(ctx, helmetID, startDate, endDate)
}

func (it *ITelemetryImpl) GetAlertReadings(ctx context.Context, helmetID string, limit int) ([]models.SensorReading, error) {
	return it.iot.getAlertReadings(ctx, helmetID, limit)
}

func (it *ITelemetryImpl) GetSystemStatus(ctx context.Context, helmetID string) (*models.HelmetSystem, error) {
	return it.iot.getSystemStatus(ctx, helmetID)
}

func (it *ITelemetryImpl) UpdateLocation(ctx context.Context, helmetID string, location string) error {
	return it.iot.updateLocation(ctx, helmetID, location)
}

func (i *IOT) GetITelemetry() ITelemetry {
	return &ITelemetryImpl{iot: i}
}
