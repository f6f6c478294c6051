// Package tsdb mirrors helmet readings into a time-series database for
// long-range dashboards. The hierarchical store stays the source of truth.
package tsdb

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

const MeasurementHelmetReading string = "helmet_reading"

type ReadingSink interface {
	WriteReading(ctx context.Context, helmetID string, reading models.SensorReading) error
	Close()
}

type NopSink struct{}

func (NopSink) WriteReading(context.Context, string, models.SensorReading) error { return nil }

func (NopSink) Close() {}

type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	logger   *zap.Logger
}

func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClient(url, token)
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		logger:   common.GetLoggerWith(common.LoggerNameTSDB, zap.String("bucket", bucket)),
	}
}

func readingFields(r models.SensorReading) map[string]interface{} {
	fields := map[string]interface{}{
		"tempAlert":     r.TempAlert,
		"humidityAlert": r.HumidityAlert,
		"gasAlert":      r.GasAlert,
		"panicAlert":    r.PanicAlert,
	}
	if r.Temperature != nil {
		fields["temperature"] = *r.Temperature
	}
	if r.Humidity != nil {
		fields["humidity"] = *r.Humidity
	}
	if r.GasLevel != nil {
		fields["gasLevel"] = *r.GasLevel
	}
	return fields
}

func (s *InfluxSink) WriteReading(ctx context.Context, helmetID string, reading models.SensorReading) error {
	tags := map[string]string{"helmet_id": helmetID}
	if reading.Location != "" {
		tags["location"] = reading.Location
	}

	p := influxdb2.NewPoint(
		MeasurementHelmetReading,
		tags,
		readingFields(reading),
		time.Unix(reading.Timestamp.Int64(), 0),
	)
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return fmt.Errorf("write reading to influxdb: %w", err)
	}
	s.logger.Debug("Mirrored reading", zap.String("helmet_id", helmetID), zap.Int64("timestamp", reading.Timestamp.Int64()))
	return nil
}

func (s *InfluxSink) Close() {
	s.client.Close()
}
