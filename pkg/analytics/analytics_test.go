package analytics

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

func TestSafetyScore(t *testing.T) {
	assert.Equal(t, 100, SafetyScore(0, 0))
	assert.Equal(t, 67, SafetyScore(3, 1))
	assert.Equal(t, 0, SafetyScore(4, 4))
	for total := 1; total <= 20; total++ {
		for critical := 0; critical <= total; critical++ {
			score := SafetyScore(total, critical)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestComputeOverview(t *testing.T) {
	s := Snapshot{
		Alerts: map[string]models.Alert{
			"1": {Type: models.AlertLevelCritical, Resolved: true, Timestamp: 1000, ResolvedAt: 1600},
			"2": {Type: models.AlertLevelEmergency},
			"3": {Type: models.AlertLevelWarning, Resolved: true, Timestamp: 1000, ResolvedAt: 1300},
			"4": {Type: "info"},
			"5": {Type: "mystery"},
			"6": {Resolved: true, Timestamp: 2000, ResolvedAt: 1000},
		},
		Assignments: map[string]models.Assignment{
			"H1": {HelmetID: "H1", EmployeeID: "E1", Status: models.AssignmentStatusActive},
			"H2": {HelmetID: "H2", EmployeeID: "E2", Status: models.AssignmentStatusActive},
			"H3": {HelmetID: "H3", EmployeeID: "E3", Status: models.AssignmentStatusInactive},
			"H4": {HelmetID: "H4", EmployeeID: "E4", Status: models.AssignmentStatusActive},
			"H5": {HelmetID: "H5", EmployeeID: "E5", Status: models.AssignmentStatusActive},
		},
		HelmetCount: 7,
	}

	o := ComputeOverview(s)
	assert.Equal(t, 6, o.TotalAlerts)
	assert.Equal(t, 3, o.ResolvedAlerts)
	assert.Equal(t, 3, o.UnresolvedAlerts)
	assert.Equal(t, 2, o.CriticalAlerts)
	assert.Equal(t, 1, o.WarningAlerts)
	assert.Equal(t, 3, o.InfoAlerts)
	assert.Equal(t, o.TotalAlerts, o.CriticalAlerts+o.WarningAlerts+o.InfoAlerts)
	assert.Equal(t, "7.5 min", o.AvgResponseTime)
	assert.Equal(t, 67, o.SafetyScore)
	assert.Equal(t, 4, o.MinersActive)
	assert.Equal(t, 1.5, o.IncidentRate)
	assert.Equal(t, 7, o.TotalHelmets)
}

func TestComputeOverviewTypeIsCaseSensitive(t *testing.T) {
	o := ComputeOverview(Snapshot{Alerts: map[string]models.Alert{
		"1": {Type: "CRITICAL"},
		"2": {Type: "Emergency"},
		"3": {Type: "WARNING"},
		"4": {Type: models.AlertLevelEmergency},
	}})
	assert.Equal(t, 1, o.CriticalAlerts)
	assert.Equal(t, 0, o.WarningAlerts)
	assert.Equal(t, 3, o.InfoAlerts)
	assert.Equal(t, 75, o.SafetyScore)
}

func TestComputeOverviewResponseTimeNeedsResolved(t *testing.T) {
	o := ComputeOverview(Snapshot{Alerts: map[string]models.Alert{
		"1": {Type: models.AlertLevelInfo, Resolved: true, Timestamp: 1000, ResolvedAt: 1120},
		"2": {Type: models.AlertLevelInfo, Timestamp: 1000, ResolvedAt: 7000},
	}})
	assert.Equal(t, "2.0 min", o.AvgResponseTime)

	o = ComputeOverview(Snapshot{Alerts: map[string]models.Alert{
		"1": {Type: models.AlertLevelInfo, Timestamp: 1000, ResolvedAt: 7000},
	}})
	assert.Equal(t, "N/A", o.AvgResponseTime)
}

func TestComputeOverviewEmpty(t *testing.T) {
	o := ComputeOverview(Snapshot{})
	assert.Equal(t, 0, o.TotalAlerts)
	assert.Equal(t, "N/A", o.AvgResponseTime)
	assert.Equal(t, 100, o.SafetyScore)
	assert.Equal(t, 0.0, o.IncidentRate)
}

func TestComputeOverviewNoActiveMiners(t *testing.T) {
	o := ComputeOverview(Snapshot{Alerts: map[string]models.Alert{"1": {Type: models.AlertLevelWarning}}})
	assert.Equal(t, 0.0, o.IncidentRate)
	assert.Equal(t, 0, o.MinersActive)
}

func TestComputeSafetyTrends(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, loc)
	at := func(y int, m time.Month, d int) models.Timestamp {
		return models.Timestamp(time.Date(y, m, d, 10, 0, 0, 0, loc).Unix())
	}

	alerts := map[string]models.Alert{
		"old":  {AlertType: models.AlertTypePanic, Timestamp: at(2023, time.November, 30)},
		"a":    {AlertType: models.AlertTypePanic, Timestamp: at(2024, time.January, 3)},
		"b":    {AlertType: models.AlertTypeGas, Timestamp: at(2024, time.January, 20)},
		"c":    {AlertType: "critical", Timestamp: at(2024, time.March, 2)},
		"c2":   {AlertType: models.AlertTypeCritical, Timestamp: at(2024, time.March, 9)},
		"d":    {AlertType: models.AlertTypeTemperature, Timestamp: at(2024, time.June, 1)},
		"e":    {AlertType: models.AlertTypeHumidity, Timestamp: at(2024, time.June, 2)},
		"none": {AlertType: models.AlertTypePanic},
	}

	trends := ComputeSafetyTrends(alerts, now, loc)
	require.Len(t, trends, 3)
	assert.Equal(t, TrendBucket{Month: "Jan 2024", Incidents: 2, Critical: 1, SafetyScore: 50}, trends[0])
	// only the exact CRITICAL and PANIC values count as critical
	assert.Equal(t, TrendBucket{Month: "Mar 2024", Incidents: 2, Critical: 1, SafetyScore: 50}, trends[1])
	assert.Equal(t, TrendBucket{Month: "Jun 2024", Incidents: 2, Critical: 0, SafetyScore: 100}, trends[2])
}

func TestComputeSafetyTrendsAlertTypeIsCaseSensitive(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	ts := models.Timestamp(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC).Unix())
	alerts := map[string]models.Alert{
		"1": {AlertType: "panic", Timestamp: ts},
		"2": {AlertType: "Critical", Timestamp: ts},
	}

	trends := ComputeSafetyTrends(alerts, now, time.UTC)
	require.Len(t, trends, 1)
	assert.Equal(t, TrendBucket{Month: "Jun 2024", Incidents: 2, Critical: 0, SafetyScore: 100}, trends[0])
}

func TestComputeSafetyTrendsMonthEndWindow(t *testing.T) {
	now := time.Date(2024, time.August, 31, 12, 0, 0, 0, time.UTC)
	alerts := map[string]models.Alert{
		// six months before 31 Aug clamps to 29 Feb, so 1 Mar is inside the window
		"in":  {AlertType: models.AlertTypeGas, Timestamp: models.Timestamp(time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC).Unix())},
		"out": {AlertType: models.AlertTypeGas, Timestamp: models.Timestamp(time.Date(2024, time.February, 28, 9, 0, 0, 0, time.UTC).Unix())},
	}

	trends := ComputeSafetyTrends(alerts, now, time.UTC)
	require.Len(t, trends, 1)
	assert.Equal(t, "Mar 2024", trends[0].Month)
	assert.Equal(t, 1, trends[0].Incidents)
}

func TestMonthsBefore(t *testing.T) {
	cases := []struct {
		now, want time.Time
	}{
		{time.Date(2024, time.August, 31, 12, 0, 0, 0, time.UTC), time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC)},
		{time.Date(2023, time.August, 31, 0, 0, 0, 0, time.UTC), time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, time.March, 15, 8, 30, 0, 0, time.UTC), time.Date(2023, time.September, 15, 8, 30, 0, 0, time.UTC)},
		{time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, monthsBefore(tc.now, 6), tc.now.String())
	}
}

func TestComputeSafetyTrendsUsesLocation(t *testing.T) {
	harare := time.FixedZone("CAT", 2*3600)
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	// 23:30 UTC on 31 May is already June in UTC+2.
	alerts := map[string]models.Alert{
		"x": {AlertType: models.AlertTypeGas, Timestamp: models.Timestamp(time.Date(2024, time.May, 31, 23, 30, 0, 0, time.UTC).Unix())},
	}

	trends := ComputeSafetyTrends(alerts, now, harare)
	require.Len(t, trends, 1)
	assert.Equal(t, "Jun 2024", trends[0].Month)
}

func performanceSnapshot() Snapshot {
	hour := int64(3_600_000)
	return Snapshot{
		Employees: map[string]models.Employee{
			"E1": {EmployeeID: "E1", FirstName: "Tendai", LastName: "Moyo", Department: "Drilling"},
			"E2": {EmployeeID: "E2", FirstName: "Rudo", LastName: "Chikwanha"},
			"E3": {EmployeeID: "E3", FirstName: "Farai", LastName: "Ncube", Department: "Blasting"},
		},
		Assignments: map[string]models.Assignment{
			"H1": {HelmetID: "H1", EmployeeID: "E1", Status: models.AssignmentStatusActive,
				ShiftStart: models.Timestamp(10 * hour), ShiftEnd: models.Timestamp(18 * hour)},
			"H2": {HelmetID: "H2", EmployeeID: "E2", Status: models.AssignmentStatusInactive,
				ShiftStart: models.Timestamp(10 * hour), ShiftEnd: models.Timestamp(10*hour + hour/4)},
			"H3": {HelmetID: "H3", EmployeeID: "E3", Status: models.AssignmentStatusActive,
				ShiftStart: models.Timestamp(20 * hour), ShiftEnd: models.Timestamp(19 * hour)},
		},
		Alerts: map[string]models.Alert{
			"1": {HelmetID: "H1", Type: models.AlertLevelEmergency},
			"2": {HelmetID: "H1", Type: models.AlertLevelWarning},
			"3": {EmployeeID: "E2", HelmetID: "H1", Type: models.AlertLevelCritical},
			"4": {HelmetID: "H9", Type: models.AlertLevelCritical},
			"5": {HelmetID: "H2", Type: models.AlertLevelWarning},
		},
	}
}

func TestComputeMinerPerformance(t *testing.T) {
	rows := ComputeMinerPerformance(performanceSnapshot())
	require.Len(t, rows, 3)

	assert.Equal(t, MinerPerformance{EmployeeID: "E3", Name: "Farai Ncube", Department: "Blasting", SafetyScore: 100}, rows[0])
	assert.Equal(t, MinerPerformance{EmployeeID: "E1", Name: "Tendai Moyo", Department: "Drilling",
		HoursWorked: 8, TotalAlerts: 2, CriticalAlerts: 1, SafetyScore: 50}, rows[1])
	assert.Equal(t, MinerPerformance{EmployeeID: "E2", Name: "Rudo Chikwanha", Department: "N/A",
		HoursWorked: 0.3, TotalAlerts: 1, CriticalAlerts: 1, SafetyScore: 0}, rows[2])

	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].SafetyScore, rows[i].SafetyScore)
	}
}

func TestMinerPerformanceXLSX(t *testing.T) {
	data, err := MinerPerformanceXLSX(ComputeMinerPerformance(performanceSnapshot()))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{minerPerformanceSheet}, f.GetSheetList())

	rows, err := f.GetRows(minerPerformanceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, minerPerformanceHeader, rows[0])
	assert.Equal(t, "E3", rows[1][0])
	assert.Equal(t, "Tendai Moyo", rows[2][1])
	assert.Equal(t, "50", rows[2][6])
}
