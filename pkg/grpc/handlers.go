package grpc

import (
	"context"
	"encoding/json"
	"fmt"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

const (
	fieldHelmetID = "helmetId"
	fieldReading  = "reading"
	fieldLocation = "location"
)

func validateHelmetID(helmetID *string) z.ZogIssueList {
	var helmetIDValidator = z.String().Trim().Min(1).Required()
	return helmetIDValidator.Validate(helmetID)
}

func statusResponse(success bool, message string, fields map[string]any) *structpb.Struct {
	m := map[string]any{"success": success, "message": message}
	for k, v := range fields {
		m[k] = v
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		// only reachable with a value structpb cannot represent
		s, _ = structpb.NewStruct(map[string]any{"success": false, "message": err.Error()})
	}
	return s
}

func errorResponse(err error) *structpb.Struct {
	appErr := common.AsAppError(err)
	if appErr.Kind == common.ErrorKindUpstream {
		common.GetLoggerWith(common.LoggerNameGrpcServer).Error("Device gateway call failed", zap.Error(err))
	}
	return statusResponse(false, appErr.Message, map[string]any{"kind": string(appErr.Kind)})
}

// toValueMap converts a JSON tagged value into the generic shape structpb accepts.
func toValueMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromStruct(s *structpb.Struct, out any) error {
	if s == nil {
		return nil
	}
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (g *DeviceGateway) PostReading(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	helmetID := req.GetFields()[fieldHelmetID].GetStringValue()
	if err := validateHelmetID(&helmetID); err != nil {
		return statusResponse(false, fmt.Sprintf("validation error: %v", err), nil), nil
	}

	readingValue := req.GetFields()[fieldReading].GetStructValue()
	if readingValue == nil {
		return statusResponse(false, "validation error: reading can not be empty", nil), nil
	}

	var reading models.SensorReading
	if err := fromStruct(readingValue, &reading); err != nil {
		return statusResponse(false, fmt.Sprintf("validation error: %v", err), nil), nil
	}

	stored, err := g.Iot.Telemetry.AddReading(ctx, helmetID, &reading)
	if err != nil {
		return errorResponse(err), nil
	}

	return statusResponse(true, "OK", map[string]any{"timestamp": float64(stored.Timestamp)}), nil
}

func (g *DeviceGateway) GetAssignment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	helmetID := req.GetFields()[fieldHelmetID].GetStringValue()
	if err := validateHelmetID(&helmetID); err != nil {
		return statusResponse(false, fmt.Sprintf("validation error: %v", err), nil), nil
	}

	view, err := g.Iot.Assignment.GetDeviceAssignment(ctx, helmetID)
	if err != nil {
		return errorResponse(err), nil
	}

	data, err := toValueMap(view)
	if err != nil {
		return errorResponse(err), nil
	}
	return statusResponse(true, "OK", map[string]any{"assignment": data}), nil
}

// RaisePanic stores a reading with only the panic flag set, which raises the
// PANIC alert unless the helmet is already in panic.
func (g *DeviceGateway) RaisePanic(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	helmetID := req.GetFields()[fieldHelmetID].GetStringValue()
	if err := validateHelmetID(&helmetID); err != nil {
		return statusResponse(false, fmt.Sprintf("validation error: %v", err), nil), nil
	}

	reading := models.SensorReading{
		PanicAlert: true,
		Location:   req.GetFields()[fieldLocation].GetStringValue(),
	}
	stored, err := g.Iot.Telemetry.AddReading(ctx, helmetID, &reading)
	if err != nil {
		return errorResponse(err), nil
	}

	return statusResponse(true, "Panic recorded", map[string]any{"timestamp": float64(stored.Timestamp)}), nil
}
