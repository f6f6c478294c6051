package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Timestamp is an integer epoch value (seconds or milliseconds depending on the
// field) that tolerates being stored as a JSON number or a numeric string.
// Anything else decodes to zero, which callers treat as "missing".
type Timestamp int64

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*t = Timestamp(v)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*t = Timestamp(int64(f))
		return nil
	}

	*t = 0
	return nil
}

func (t Timestamp) Int64() int64 {
	return int64(t)
}

type AlertType string

const (
	AlertTypePanic       AlertType = "PANIC"
	AlertTypeCritical    AlertType = "CRITICAL"
	AlertTypeTemperature AlertType = "TEMPERATURE"
	AlertTypeHumidity    AlertType = "HUMIDITY"
	AlertTypeGas         AlertType = "GAS"
)

// AlertLevel is the coarse classification stored in the alert's `type` field.
type AlertLevel string

const (
	AlertLevelCritical  AlertLevel = "critical"
	AlertLevelWarning   AlertLevel = "warning"
	AlertLevelInfo      AlertLevel = "info"
	AlertLevelEmergency AlertLevel = "emergency"
)

const (
	SeverityInfo     string = "INFO"
	SeverityWarning  string = "WARNING"
	SeverityCritical string = "CRITICAL"
)

type AssignmentStatus string

const (
	AssignmentStatusActive   AssignmentStatus = "active"
	AssignmentStatusInactive AssignmentStatus = "inactive"

	// AssignmentStatusUnassigned only appears in read views, never in storage.
	AssignmentStatusUnassigned AssignmentStatus = "unassigned"
)

const (
	EmployeeStatusActive string = "active"

	UserStatusActive string = "active"
	UserStatusBanned string = "banned"
)

type SensorReading struct {
	HelmetID      string    `json:"helmetId,omitempty"`
	Timestamp     Timestamp `json:"timestamp"`
	Temperature   *float64  `json:"temperature,omitempty"`
	Humidity      *float64  `json:"humidity,omitempty"`
	GasLevel      *float64  `json:"gasLevel,omitempty"`
	Location      string    `json:"location,omitempty"`
	TempAlert     bool      `json:"tempAlert"`
	HumidityAlert bool      `json:"humidityAlert"`
	GasAlert      bool      `json:"gasAlert"`
	PanicAlert    bool      `json:"panicAlert"`
}

func (r *SensorReading) HasAlertFlag() bool {
	return r.TempAlert || r.HumidityAlert || r.GasAlert || r.PanicAlert
}

type HelmetSystem struct {
	LastSeen Timestamp `json:"lastSeen"`
	Online   bool      `json:"online"`
}

// HelmetAssignment is the projection of the current assignment embedded in the
// helmet record so devices can read it without joining employees.
type HelmetAssignment struct {
	EmployeeID   string           `json:"employeeId"`
	EmployeeName string           `json:"employeeName"`
	Department   string           `json:"department"`
	AssignedAt   Timestamp        `json:"assignedAt"`
	Status       AssignmentStatus `json:"status"`
}

type Thresholds struct {
	TemperatureThreshold float64 `json:"temperatureThreshold"`
	HumidityThreshold    float64 `json:"humidityThreshold"`
	GasThreshold         float64 `json:"gasThreshold"`
}

type Helmet struct {
	Location   string                   `json:"location,omitempty"`
	Latest     *SensorReading           `json:"latest,omitempty"`
	Assignment *HelmetAssignment        `json:"assignment,omitempty"`
	System     *HelmetSystem            `json:"system,omitempty"`
	Thresholds *Thresholds              `json:"thresholds,omitempty"`
	SensorData map[string]SensorReading `json:"sensorData,omitempty"`
}

type LatestView struct {
	SensorReading
	HelmetID string `json:"helmetId"`
	Location string `json:"location"`
}

type ReadingPage struct {
	Readings       []SensorReading `json:"readings"`
	Count          int             `json:"count"`
	NextStartAfter string          `json:"nextStartAfter,omitempty"`
}

type DateRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

type ReadingRange struct {
	Readings  []SensorReading `json:"readings"`
	Count     int             `json:"count"`
	DateRange DateRange       `json:"dateRange"`
}

type Employee struct {
	EmployeeID string    `json:"employeeId"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Department string    `json:"department"`
	Status     string    `json:"status"`
	CreatedAt  Timestamp `json:"createdAt"`
	UpdatedAt  Timestamp `json:"updatedAt"`
}

func (e *Employee) DisplayName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type EmployeeInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
	Status     string `json:"status,omitempty"`
}

type Assignment struct {
	HelmetID     string           `json:"helmetId"`
	EmployeeID   string           `json:"employeeId"`
	AssignedAt   Timestamp        `json:"assignedAt"`
	AssignedBy   string           `json:"assignedBy"`
	ShiftStart   Timestamp        `json:"shiftStart"`
	ShiftEnd     Timestamp        `json:"shiftEnd"`
	Status       AssignmentStatus `json:"status"`
	UnassignedAt Timestamp        `json:"unassignedAt,omitempty"`
	UnassignedBy string           `json:"unassignedBy,omitempty"`
	Reason       string           `json:"reason,omitempty"`
}

func (a *Assignment) IsActive() bool {
	return a.Status == AssignmentStatusActive
}

// AssignRequest carries shift bounds as received: unix millis or a date string.
type AssignRequest struct {
	EmployeeID string `json:"employeeId"`
	AssignedBy string `json:"assignedBy"`
	ShiftStart any    `json:"shiftStart"`
	ShiftEnd   any    `json:"shiftEnd"`
}

type AssignmentView struct {
	Assignment
	Assigned     bool   `json:"assigned"`
	EmployeeName string `json:"employeeName"`
	Department   string `json:"department"`
}

type AssignmentHistoryEntry struct {
	Assignment
	Timestamp    int64  `json:"timestamp"`
	EmployeeName string `json:"employeeName"`
}

// DeviceAssignment is the compact view polled by helmets to show who wears them.
type DeviceAssignment struct {
	HelmetID     string `json:"helmetId"`
	Assigned     bool   `json:"assigned"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Department   string `json:"department"`
	Location     string `json:"location"`
	AssignedAt   int64  `json:"assignedAt,omitempty"`
	ShiftStart   int64  `json:"shiftStart,omitempty"`
	ShiftEnd     int64  `json:"shiftEnd,omitempty"`
}

type Alert struct {
	ID           string     `json:"id"`
	AlertType    AlertType  `json:"alertType"`
	Type         AlertLevel `json:"type,omitempty"`
	Message      string     `json:"message"`
	Location     string     `json:"location"`
	Timestamp    Timestamp  `json:"timestamp"`
	MinerID      string     `json:"minerId,omitempty"`
	EmployeeID   string     `json:"employeeId,omitempty"`
	HelmetID     string     `json:"helmetId,omitempty"`
	Resolved     bool       `json:"resolved"`
	ResolvedBy   string     `json:"resolvedBy,omitempty"`
	ResolvedAt   Timestamp  `json:"resolvedAt,omitempty"`
	Duration     string     `json:"duration"`
	Acknowledged bool       `json:"acknowledged"`
	Severity     string     `json:"severity"`
}

type AlertView struct {
	Alert
	MinerName          string `json:"minerName"`
	TimestampFormatted string `json:"timestampFormatted"`
}

type UserProfile struct {
	ClerkID      string    `json:"clerkId"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	EmailAddress string    `json:"email_address,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Username     string    `json:"username,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Role         string    `json:"role,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    Timestamp `json:"createdAt"`
	UpdatedAt    Timestamp `json:"updatedAt"`
	BannedAt     Timestamp `json:"bannedAt,omitempty"`
	BanReason    string    `json:"banReason,omitempty"`
	UnbannedAt   Timestamp `json:"unbannedAt,omitempty"`
	UnbanReason  string    `json:"unbanReason,omitempty"`
}

type LoginRecord struct {
	Key         string    `json:"key,omitempty"`
	Timestamp   Timestamp `json:"timestamp"`
	IPAddress   string    `json:"ipAddress"`
	UserAgent   string    `json:"userAgent"`
	LoginMethod string    `json:"loginMethod"`
}
