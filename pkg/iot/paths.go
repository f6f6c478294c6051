package iot

import (
	"strconv"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

const (
	rootHelmets           = "helmets"
	rootEmployees         = "employees"
	rootAssignments       = "assignments"
	rootAssignmentHistory = "assignmentHistory"
	rootAlerts            = "alerts"
)

func helmetPath(helmetID string) string { return rtdb.Join(rootHelmets, helmetID) }

func helmetChild(helmetID, child string) string { return rtdb.Join(rootHelmets, helmetID, child) }

func sensorDataPath(helmetID string) string { return helmetChild(helmetID, "sensorData") }

func employeePath(employeeID string) string { return rtdb.Join(rootEmployees, employeeID) }

func assignmentPath(helmetID string) string { return rtdb.Join(rootAssignments, helmetID) }

func historyPath(helmetID string) string { return rtdb.Join(rootAssignmentHistory, helmetID) }

func alertPath(alertID string) string { return rtdb.Join(rootAlerts, alertID) }

func formatKey(v int64) string { return strconv.FormatInt(v, 10) }
