package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/iot"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

const DefaultTopic = "helmets/+/sensor-data"

// HelmetIDFromTopic extracts the helmet from helmets/{helmetId}/sensor-data.
func HelmetIDFromTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "helmets" || parts[2] != "sensor-data" || parts[1] == "" {
		return "", fmt.Errorf("unexpected topic %q", topic)
	}
	return parts[1], nil
}

// Ingestor feeds readings published by helmets into telemetry ingest.
type Ingestor struct {
	Telemetry iot.ITelemetry
}

func (in *Ingestor) HandleMessage(ctx context.Context, topic string, payload []byte) error {
	logger := common.GetLoggerWith(common.LoggerNameMQTT)

	helmetID, err := HelmetIDFromTopic(topic)
	if err != nil {
		return err
	}

	var reading models.SensorReading
	if err := json.Unmarshal(payload, &reading); err != nil {
		return fmt.Errorf("invalid reading from helmet %s: %w", helmetID, err)
	}

	logger.Debug("Received reading over mqtt", zap.String("helmet_id", helmetID), zap.Int("bytes", len(payload)))

	if _, err := in.Telemetry.AddReading(ctx, helmetID, &reading); err != nil {
		return fmt.Errorf("failed to ingest reading from helmet %s: %w", helmetID, err)
	}
	return nil
}
