package grpc

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/iot"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/iot/mocks"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb/badgerstore"
	_ "github.com/chantelleNokue/smart-helmet-backend/pkg/testing"
)

const bufSize = 1024 * 1024

var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

func newTestIOT(t *testing.T) *iot.IOT {
	store, err := badgerstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	iotCore := &iot.IOT{
		Store:    store,
		Clock:    func() time.Time { return fixedNow },
		Location: time.UTC,
	}
	return iotCore.WithDefaultServices()
}

func startTestServerWithInterceptor(t *testing.T, iotCore *iot.IOT, limiterStore *iot.RateLimiterStore) *DeviceGatewayClient {
	listener := bufconn.Listen(bufSize)

	gateway := DeviceGateway{Iot: iotCore, RateLimiterStore: limiterStore}
	interceptor := gateway.CreateRateLimitInterceptor([]string{
		MethodPostReading,
		MethodRaisePanic,
	})
	server := grpc.NewServer(grpc.UnaryInterceptor(interceptor))
	RegisterDeviceGatewayServer(server, &gateway)

	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return listener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewDeviceGatewayClient(conn)
}

func startTestServer(t *testing.T) (*DeviceGatewayClient, *iot.IOT) {
	iotCore := newTestIOT(t)
	return startTestServerWithInterceptor(t, iotCore, nil), iotCore
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func success(r *structpb.Struct) bool {
	return r.GetFields()["success"].GetBoolValue()
}

func message(r *structpb.Struct) string {
	return r.GetFields()["message"].GetStringValue()
}

func TestPostReadingAndGetAssignment(t *testing.T) {
	common.SetTestLoggerNop()
	client, iotCore := startTestServer(t)

	helmetID := uuid.NewString()

	r, err := client.PostReading(context.Background(), mustStruct(t, map[string]any{
		"helmetId": helmetID,
		"reading": map[string]any{
			"timestamp":   1741944000,
			"temperature": 29.5,
			"gasLevel":    120,
		},
	}))
	require.NoError(t, err)
	require.True(t, success(r), message(r))
	assert.Equal(t, float64(1741944000), r.GetFields()["timestamp"].GetNumberValue())

	latest, err := iotCore.Telemetry.GetLatest(context.Background(), helmetID)
	require.NoError(t, err)
	require.NotNil(t, latest.GasLevel)
	assert.Equal(t, 120.0, *latest.GasLevel)

	r, err = client.GetAssignment(context.Background(), mustStruct(t, map[string]any{"helmetId": helmetID}))
	require.NoError(t, err)
	require.True(t, success(r))
	assignment := r.GetFields()["assignment"].GetStructValue().GetFields()
	assert.False(t, assignment["assigned"].GetBoolValue())
	assert.Equal(t, "UNASSIGNED", assignment["employeeId"].GetStringValue())
	assert.Equal(t, "Unknown Area", assignment["location"].GetStringValue())
}

func TestPostReadingEdgeCases(t *testing.T) {
	common.SetTestLoggerNop()
	client, _ := startTestServer(t)

	{
		// empty helmetId will fail validation
		r, err := client.PostReading(context.Background(), mustStruct(t, map[string]any{
			"helmetId": "",
			"reading":  map[string]any{"temperature": 20},
		}))
		assert.NoError(t, err)
		assert.False(t, success(r), "expected PostReading to fail")
		assert.True(t, strings.Contains(message(r), "validation error"), "expected PostReading to fail with validation error")
	}

	{
		// missing reading will fail validation
		r, err := client.PostReading(context.Background(), mustStruct(t, map[string]any{
			"helmetId": uuid.NewString(),
		}))
		assert.NoError(t, err)
		assert.False(t, success(r), "expected PostReading to fail")
		assert.True(t, strings.Contains(message(r), "validation error"))
	}

	{
		// helmet ids the store cannot key are rejected by the service
		r, err := client.PostReading(context.Background(), mustStruct(t, map[string]any{
			"helmetId": "bad/id",
			"reading":  map[string]any{"temperature": 20},
		}))
		assert.NoError(t, err)
		assert.False(t, success(r))
		assert.Equal(t, string(common.ErrorKindValidation), r.GetFields()["kind"].GetStringValue())
	}
}

func TestRaisePanicCreatesAlert(t *testing.T) {
	common.SetTestLoggerNop()
	client, iotCore := startTestServer(t)

	helmetID := uuid.NewString()

	r, err := client.RaisePanic(context.Background(), mustStruct(t, map[string]any{
		"helmetId": helmetID,
		"location": "Shaft 4",
	}))
	require.NoError(t, err)
	require.True(t, success(r), message(r))

	alert, err := iotCore.Alert.GetLatestAlert(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.AlertTypePanic, alert.AlertType)
	assert.Equal(t, models.AlertLevelEmergency, alert.Type)
	assert.Equal(t, helmetID, alert.HelmetID)
	assert.Equal(t, "Shaft 4", alert.Location)
}

func TestRaisePanic_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	mockITelemetry := mocks.NewMockITelemetry(ctrl)

	iotCore := newTestIOT(t)
	iotCore.Telemetry = mockITelemetry
	client := startTestServerWithInterceptor(t, iotCore, nil)

	helmetID := uuid.NewString()

	// internal error should fail too
	mockITelemetry.EXPECT().
		AddReading(gomock.Any(), gomock.Eq(helmetID), gomock.Any()).
		Return(nil, fmt.Errorf("test error")).
		Times(1)

	r, err := client.RaisePanic(context.Background(), mustStruct(t, map[string]any{"helmetId": helmetID}))
	assert.NoError(t, err)
	assert.False(t, success(r), "expected RaisePanic to fail")
	assert.Equal(t, "test error", message(r))
	assert.Equal(t, string(common.ErrorKindUpstream), r.GetFields()["kind"].GetStringValue())
}

func TestRateLimitInterceptor_PostReading(t *testing.T) {
	common.SetTestLoggerNop()

	limiterStore := iot.NewRateLimiterStore(2, 2) // Allow 2 req/sec per helmet
	client := startTestServerWithInterceptor(t, newTestIOT(t), limiterStore)

	ctx := context.Background()
	helmetID := uuid.NewString()

	req := mustStruct(t, map[string]any{
		"helmetId": helmetID,
		"reading":  map[string]any{"temperature": 35.0},
	})

	// First 2 requests should pass
	for i := range 2 {
		_, err := client.PostReading(ctx, req)
		require.NoError(t, err, "expected request %d to pass", i+1)
	}

	// 3rd request should fail immediately
	_, err := client.PostReading(ctx, req)
	require.Error(t, err, "expected third request to be rate limited")

	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error")
	require.Equal(t, codes.ResourceExhausted, st.Code(), "expected ResourceExhausted code")

	// assignment lookups are not throttled
	_, err = client.GetAssignment(ctx, mustStruct(t, map[string]any{"helmetId": helmetID}))
	require.NoError(t, err)

	// other helmets keep their own bucket
	_, err = client.PostReading(ctx, mustStruct(t, map[string]any{
		"helmetId": uuid.NewString(),
		"reading":  map[string]any{"temperature": 35.0},
	}))
	require.NoError(t, err)

	// raising the limit gives the helmet a fresh bucket
	limiterStore.SetLimiter(helmetID, 3, 2)
	_, err = client.PostReading(ctx, req)
	require.NoError(t, err, "expected request after limiter reset to pass")
}
