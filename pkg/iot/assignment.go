package iot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

const (
	DefaultAssignmentHistoryLimit = 10
	DefaultUnassignReason         = "Manual unassignment"
	UnknownName                   = "Unknown"

	deviceUnknownLocation     = "Unknown Area"
	deviceUnassignedID        = "UNASSIGNED"
	deviceUnassignedName      = "Unassigned Helmet"
	deviceUnassignedDept      = "Unassigned"
	deviceUnknownEmployee     = "Unknown Employee"
	deviceUnknownDepartment   = "Unknown Department"
	historyKeyAttempts        = 16
	assignmentEventAssigned   = "assigned"
	assignmentEventUnassigned = "unassigned"
)

var (
	errHelmetAlreadyAssigned = errors.New("helmet already has an active assignment")
	errNoActiveAssignment    = errors.New("helmet has no active assignment")
	errHistoryKeyTaken       = errors.New("history key already taken")
)

func assignmentLogger() *zap.Logger {
	return common.GetCategoryLogger(common.LoggerNameHelmetCore, common.LoggerCategoryAssignment)
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

func (i *IOT) assignHelmet(ctx context.Context, helmetID string, req *models.AssignRequest) (*models.Assignment, error) {
	logger := assignmentLogger()

	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, common.NewValidationError("assignment body is required", nil)
	}

	var missing []string
	if strings.TrimSpace(req.EmployeeID) == "" {
		missing = append(missing, "employeeId")
	}
	if strings.TrimSpace(req.AssignedBy) == "" {
		missing = append(missing, "assignedBy")
	}
	if isBlank(req.ShiftStart) {
		missing = append(missing, "shiftStart")
	}
	if isBlank(req.ShiftEnd) {
		missing = append(missing, "shiftEnd")
	}
	if len(missing) > 0 {
		return nil, common.NewValidationError("Employee ID, assigned by, shift start, and shift end are required", missing)
	}

	loc := i.location()
	shiftStart, errStart := ParseShiftTime(req.ShiftStart, loc)
	shiftEnd, errEnd := ParseShiftTime(req.ShiftEnd, loc)
	if errStart != nil || errEnd != nil {
		return nil, common.NewValidationError(
			"Invalid shiftStart or shiftEnd date format. Use ISO 8601 string or Unix milliseconds.",
			errors.Join(errStart, errEnd).Error(),
		)
	}
	if shiftStart >= shiftEnd {
		return nil, common.NewValidationError("Shift start time must be before shift end time.", nil)
	}

	employee, err := i.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	assignedAt := i.now().UnixMilli()
	assignment := models.Assignment{
		HelmetID:   helmetID,
		EmployeeID: employee.EmployeeID,
		AssignedAt: models.Timestamp(assignedAt),
		AssignedBy: strings.TrimSpace(req.AssignedBy),
		ShiftStart: models.Timestamp(shiftStart),
		ShiftEnd:   models.Timestamp(shiftEnd),
		Status:     models.AssignmentStatusActive,
	}

	logger.Info("Received assignment", zap.Reflect("assignment", assignment))

	err = i.Store.Transaction(ctx, assignmentPath(helmetID), func(current rtdb.Value) (any, error) {
		var existing models.Assignment
		if err := current.Unmarshal(&existing); err != nil {
			return nil, err
		}
		if current.Exists() && existing.IsActive() {
			return nil, errHelmetAlreadyAssigned
		}
		return assignment, nil
	})
	if errors.Is(err, errHelmetAlreadyAssigned) {
		return nil, common.NewConflictError("Helmet is already assigned and active.")
	}
	if err != nil {
		return nil, upstream("assigning helmet", err)
	}

	if err := i.Store.Set(ctx, helmetChild(helmetID, "assignment"), models.HelmetAssignment{
		EmployeeID:   employee.EmployeeID,
		EmployeeName: employee.DisplayName(),
		Department:   employee.Department,
		AssignedAt:   models.Timestamp(assignedAt),
		Status:       models.AssignmentStatusActive,
	}); err != nil {
		return nil, upstream("assigning helmet", err)
	}

	if _, err := i.appendHistory(ctx, helmetID, assignedAt, assignment); err != nil {
		return nil, upstream("recording assignment history", err)
	}

	assignmentEvents.WithLabelValues(assignmentEventAssigned).Inc()
	logger.Info("Helmet assigned", zap.String("helmet_id", helmetID), zap.String("employee_id", employee.EmployeeID))
	return &assignment, nil
}

func (i *IOT) unassignHelmet(ctx context.Context, helmetID string, unassignedBy string, reason string) (*models.Assignment, error) {
	logger := assignmentLogger()

	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}
	unassignedBy = strings.TrimSpace(unassignedBy)
	if unassignedBy == "" {
		return nil, common.NewValidationError("Unassigned by field is required", []string{"unassignedBy"})
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultUnassignReason
	}

	unassignedAt := i.now().UnixMilli()
	var updated models.Assignment
	err := i.Store.Transaction(ctx, assignmentPath(helmetID), func(current rtdb.Value) (any, error) {
		var existing models.Assignment
		if err := current.Unmarshal(&existing); err != nil {
			return nil, err
		}
		if !current.Exists() || !existing.IsActive() {
			return nil, errNoActiveAssignment
		}
		existing.Status = models.AssignmentStatusInactive
		existing.UnassignedAt = models.Timestamp(unassignedAt)
		existing.UnassignedBy = unassignedBy
		existing.Reason = reason
		updated = existing
		return existing, nil
	})
	if errors.Is(err, errNoActiveAssignment) {
		return nil, common.NewNotFoundError("No active assignment found for this helmet to unassign")
	}
	if err != nil {
		return nil, upstream("unassigning helmet", err)
	}

	if err := i.Store.Remove(ctx, helmetChild(helmetID, "assignment")); err != nil {
		return nil, upstream("unassigning helmet", err)
	}

	if _, err := i.appendHistory(ctx, helmetID, unassignedAt, updated); err != nil {
		return nil, upstream("recording assignment history", err)
	}

	assignmentEvents.WithLabelValues(assignmentEventUnassigned).Inc()
	logger.Info("Helmet unassigned", zap.String("helmet_id", helmetID), zap.String("unassigned_by", unassignedBy), zap.String("reason", reason))
	return &updated, nil
}

// appendHistory writes snapshot under the first free key at or after atMillis
// that is greater than every existing key for the helmet.
func (i *IOT) appendHistory(ctx context.Context, helmetID string, atMillis int64, snapshot models.Assignment) (string, error) {
	key := atMillis
	last, err := i.Store.Children(ctx, historyPath(helmetID), rtdb.Query{LimitToLast: 1})
	if err != nil {
		return "", err
	}
	if len(last) == 1 {
		if prev, err := strconv.ParseInt(last[0].Key, 10, 64); err == nil && prev >= key {
			key = prev + 1
		}
	}

	for attempt := 0; attempt < historyKeyAttempts; attempt++ {
		k := formatKey(key)
		err := i.Store.Transaction(ctx, rtdb.Join(historyPath(helmetID), k), func(current rtdb.Value) (any, error) {
			if current.Exists() {
				return nil, errHistoryKeyTaken
			}
			return snapshot, nil
		})
		if err == nil {
			return k, nil
		}
		if !errors.Is(err, errHistoryKeyTaken) {
			return "", err
		}
		key++
	}
	return "", fmt.Errorf("no free history key after %d attempts", historyKeyAttempts)
}

func employeeNameOr(e *models.Employee, fallback string) string {
	if e == nil {
		return fallback
	}
	if name := e.DisplayName(); name != "" {
		return name
	}
	return fallback
}

func departmentOr(e *models.Employee, fallback string) string {
	if e == nil || strings.TrimSpace(e.Department) == "" {
		return fallback
	}
	return e.Department
}

// lookupEmployee returns nil when the employee does not exist.
func (i *IOT) lookupEmployee(ctx context.Context, employeeID string) (*models.Employee, error) {
	if employeeID == "" || rtdb.ValidateKey(employeeID) != nil {
		return nil, nil
	}
	employee, err := i.getEmployee(ctx, employeeID)
	if common.IsKind(err, common.ErrorKindNotFound) {
		return nil, nil
	}
	return employee, err
}

func (i *IOT) currentAssignment(ctx context.Context, helmetID string) (*models.Assignment, error) {
	var assignment models.Assignment
	found, err := rtdb.GetInto(ctx, i.Store, assignmentPath(helmetID), &assignment)
	if err != nil || !found {
		return nil, err
	}
	return &assignment, nil
}

func (i *IOT) getAssignment(ctx context.Context, helmetID string) (*models.AssignmentView, error) {
	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}
	assignment, err := i.currentAssignment(ctx, helmetID)
	if err != nil {
		return nil, upstream("fetching helmet assignment", err)
	}
	if assignment == nil || !assignment.IsActive() {
		return &models.AssignmentView{
			Assignment: models.Assignment{HelmetID: helmetID, Status: models.AssignmentStatusUnassigned},
			Assigned:   false,
		}, nil
	}

	employee, err := i.lookupEmployee(ctx, assignment.EmployeeID)
	if err != nil {
		return nil, upstream("fetching helmet assignment", err)
	}
	assignment.HelmetID = helmetID
	return &models.AssignmentView{
		Assignment:   *assignment,
		Assigned:     true,
		EmployeeName: employeeNameOr(employee, UnknownName),
		Department:   departmentOr(employee, UnknownName),
	}, nil
}

func (i *IOT) listAssignments(ctx context.Context) ([]models.AssignmentView, error) {
	logger := assignmentLogger()

	var (
		keys        []string
		assignments map[string]models.Assignment
		employees   map[string]models.Employee
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		keys, assignments, err = rtdb.ChildrenInto[models.Assignment](gctx, i.Store, rootAssignments, rtdb.Query{}, skipLogger(logger, rootAssignments))
		return err
	})
	g.Go(func() error {
		var err error
		_, employees, err = rtdb.ChildrenInto[models.Employee](gctx, i.Store, rootEmployees, rtdb.Query{}, skipLogger(logger, rootEmployees))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, upstream("fetching all assignments", err)
	}

	views := make([]models.AssignmentView, 0, len(keys))
	for _, helmetID := range keys {
		a := assignments[helmetID]
		a.HelmetID = helmetID
		var employee *models.Employee
		if e, ok := employees[a.EmployeeID]; ok {
			employee = &e
		}
		views = append(views, models.AssignmentView{
			Assignment:   a,
			Assigned:     a.IsActive(),
			EmployeeName: employeeNameOr(employee, UnknownName),
			Department:   departmentOr(employee, UnknownName),
		})
	}
	return views, nil
}

func (i *IOT) getAssignmentHistory(ctx context.Context, helmetID string, limit int) ([]models.AssignmentHistoryEntry, error) {
	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultAssignmentHistoryLimit
	}

	nodes, err := i.Store.Children(ctx, historyPath(helmetID), rtdb.Query{LimitToLast: limit})
	if err != nil {
		return nil, upstream("fetching assignment history", err)
	}

	names := map[string]string{}
	entries := make([]models.AssignmentHistoryEntry, 0, len(nodes))
	for idx := len(nodes) - 1; idx >= 0; idx-- {
		var a models.Assignment
		if err := nodes[idx].Value.Unmarshal(&a); err != nil {
			assignmentLogger().Warn("Skipping malformed history entry", zap.String("helmet_id", helmetID), zap.String("key", nodes[idx].Key), zap.Error(err))
			continue
		}
		ts, _ := strconv.ParseInt(nodes[idx].Key, 10, 64)

		name, cached := names[a.EmployeeID]
		if !cached {
			employee, err := i.lookupEmployee(ctx, a.EmployeeID)
			if err != nil {
				return nil, upstream("fetching assignment history", err)
			}
			name = employeeNameOr(employee, UnknownName)
			names[a.EmployeeID] = name
		}

		entries = append(entries, models.AssignmentHistoryEntry{Assignment: a, Timestamp: ts, EmployeeName: name})
	}
	return entries, nil
}

func (i *IOT) getDeviceAssignment(ctx context.Context, helmetID string) (*models.DeviceAssignment, error) {
	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}

	var (
		assignment *models.Assignment
		location   string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignment, err = i.currentAssignment(gctx, helmetID)
		return err
	})
	g.Go(func() error {
		_, err := rtdb.GetInto(gctx, i.Store, helmetChild(helmetID, "location"), &location)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, upstream("fetching assignment", err)
	}
	if strings.TrimSpace(location) == "" {
		location = deviceUnknownLocation
	}

	if assignment == nil || !assignment.IsActive() {
		return &models.DeviceAssignment{
			HelmetID:     helmetID,
			Assigned:     false,
			EmployeeID:   deviceUnassignedID,
			EmployeeName: deviceUnassignedName,
			Department:   deviceUnassignedDept,
			Location:     location,
		}, nil
	}

	employee, err := i.lookupEmployee(ctx, assignment.EmployeeID)
	if err != nil {
		return nil, upstream("fetching assignment", err)
	}
	return &models.DeviceAssignment{
		HelmetID:     helmetID,
		Assigned:     true,
		EmployeeID:   assignment.EmployeeID,
		EmployeeName: employeeNameOr(employee, deviceUnknownEmployee),
		Department:   departmentOr(employee, deviceUnknownDepartment),
		Location:     location,
		AssignedAt:   assignment.AssignedAt.Int64(),
		ShiftStart:   assignment.ShiftStart.Int64(),
		ShiftEnd:     assignment.ShiftEnd.Int64(),
	}, nil
}

type IAssignmentImpl struct {
	iot *IOT
}

func (ia *IAssignmentImpl) AssignHelmet(ctx context.Context, helmetID string, req *models.AssignRequest) (*models.Assignment, error) {
	return ia.iot.assignHelmet(ctx, helmetID, req)
}

func (ia *IAssignmentImpl) UnassignHelmet(ctx context.Context, helmetID string, unassignedBy string, reason string) (*models.Assignment, error) {
	return ia.iot.unassignHelmet(ctx, helmetID, unassignedBy, reason)
}

func (ia *IAssignmentImpl) GetAssignment(ctx context.Context, helmetID string) (*models.AssignmentView, error) {
	return ia.iot.getAssignment(ctx, helmetID)
}

func (ia *IAssignmentImpl) ListAssignments(ctx context.Context) ([]models.AssignmentView, error) {
	return ia.iot.listAssignments(ctx)
}

func (ia *IAssignmentImpl) GetAssignmentHistory(ctx context.Context, helmetID string, limit int) ([]models.AssignmentHistoryEntry, error) {
	return ia.iot.getAssignmentHistory(ctx, helmetID, limit)
}

func (ia *IAssignmentImpl) GetDeviceAssignment(ctx context.Context, helmetID string) (*models.DeviceAssignment, error) {
	return ia.iot.getDeviceAssignment(ctx, helmetID)
}

func (i *IOT) GetIAssignment() IAssignment {
	return &IAssignmentImpl{iot: i}
}
