package iot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

func TestAnalyticsFromStore(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _ := GetMockIOTWithMemoryStore(t, MockOpts{})
	defer ctrl.Finish()

	ctx := context.Background()

	overview, err := iotObj.Analytics.GetOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, overview.TotalAlerts)
	assert.Equal(t, 100, overview.SafetyScore)
	assert.Equal(t, "N/A", overview.AvgResponseTime)

	employee := seedEmployee(t, iotObj, "Tendai", "Moyo", "Drilling")
	_, err = iotObj.Assignment.AssignHelmet(ctx, "h1", &models.AssignRequest{
		EmployeeID: employee.EmployeeID,
		AssignedBy: "supervisor",
		ShiftStart: fixedNow.UnixMilli(),
		ShiftEnd:   fixedNow.UnixMilli() + 3*60*60*1000,
	})
	require.NoError(t, err)
	_, err = iotObj.Telemetry.AddReading(ctx, "h2", &models.SensorReading{Timestamp: 5})
	require.NoError(t, err)

	now := fixedNow.Unix()
	for _, a := range []models.Alert{
		{ID: "a1", AlertType: models.AlertTypePanic, Type: models.AlertLevelEmergency, Message: "panic", HelmetID: "h1", Timestamp: models.Timestamp(now - 600)},
		{ID: "a2", AlertType: models.AlertTypeGas, Type: models.AlertLevelWarning, Message: "gas", HelmetID: "h1", Timestamp: models.Timestamp(now - 300)},
	} {
		_, err := iotObj.Alert.CreateAlert(ctx, &a)
		require.NoError(t, err)
	}
	_, err = iotObj.Alert.AcknowledgeAlert(ctx, "a1", "ops")
	require.NoError(t, err)

	overview, err = iotObj.Analytics.GetOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.TotalAlerts)
	assert.Equal(t, 1, overview.ResolvedAlerts)
	assert.Equal(t, 1, overview.CriticalAlerts)
	assert.Equal(t, 1, overview.WarningAlerts)
	assert.Equal(t, "10.0 min", overview.AvgResponseTime)
	assert.Equal(t, 50, overview.SafetyScore)
	assert.Equal(t, 1, overview.MinersActive)
	assert.Equal(t, 2.0, overview.IncidentRate)
	assert.Equal(t, 2, overview.TotalHelmets)

	trends, err := iotObj.Analytics.GetSafetyTrends(ctx)
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, "Mar 2025", trends[0].Month)
	assert.Equal(t, 2, trends[0].Incidents)
	assert.Equal(t, 1, trends[0].Critical)

	performance, err := iotObj.Analytics.GetMinerPerformance(ctx)
	require.NoError(t, err)
	require.Len(t, performance, 1)
	assert.Equal(t, "Tendai Moyo", performance[0].Name)
	assert.Equal(t, 3.0, performance[0].HoursWorked)
	assert.Equal(t, 2, performance[0].TotalAlerts)
	assert.Equal(t, 1, performance[0].CriticalAlerts)
	assert.Equal(t, 50, performance[0].SafetyScore)
}
