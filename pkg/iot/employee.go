package iot

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

func employeeLogger() *zap.Logger {
	return common.GetCategoryLogger(common.LoggerNameHelmetCore, common.LoggerCategoryEmployee)
}

func validateEmployeeInput(input *models.EmployeeInput) error {
	if input == nil {
		return common.NewValidationError("employee body is required", nil)
	}
	missing := missingFields(map[string]string{
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"department": input.Department,
	}, "first_name", "last_name", "department")
	if len(missing) > 0 {
		return common.NewValidationError("First name, last name, and department are required", missing)
	}
	return nil
}

func (i *IOT) listEmployees(ctx context.Context) ([]models.Employee, error) {
	keys, employees, err := rtdb.ChildrenInto[models.Employee](ctx, i.Store, rootEmployees, rtdb.Query{}, skipLogger(employeeLogger(), rootEmployees))
	if err != nil {
		return nil, upstream("fetching employees", err)
	}
	out := make([]models.Employee, 0, len(keys))
	for _, key := range keys {
		e := employees[key]
		e.EmployeeID = key
		out = append(out, e)
	}
	return out, nil
}

func (i *IOT) getEmployee(ctx context.Context, employeeID string) (*models.Employee, error) {
	if err := requireKey("employeeId", employeeID); err != nil {
		return nil, err
	}
	var employee models.Employee
	found, err := rtdb.GetInto(ctx, i.Store, employeePath(employeeID), &employee)
	if err != nil {
		return nil, upstream("fetching employee", err)
	}
	if !found {
		return nil, common.NewNotFoundError("Employee not found")
	}
	employee.EmployeeID = employeeID
	return &employee, nil
}

func (i *IOT) createEmployee(ctx context.Context, input *models.EmployeeInput) (*models.Employee, error) {
	logger := employeeLogger()

	if err := validateEmployeeInput(input); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate employee id: %w", err)
	}

	now := models.Timestamp(i.now().UnixMilli())
	employee := models.Employee{
		EmployeeID: id.String(),
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Department: strings.TrimSpace(input.Department),
		Status:     strings.TrimSpace(input.Status),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if employee.Status == "" {
		employee.Status = models.EmployeeStatusActive
	}

	logger.Info("Received employee", zap.Reflect("employee", employee))

	if err := i.Store.Set(ctx, employeePath(employee.EmployeeID), employee); err != nil {
		return nil, upstream("creating employee", err)
	}

	logger.Info("Employee created", zap.String("employee_id", employee.EmployeeID))
	return &employee, nil
}

func (i *IOT) updateEmployee(ctx context.Context, employeeID string, input *models.EmployeeInput) (*models.Employee, error) {
	logger := employeeLogger()

	existing, err := i.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := validateEmployeeInput(input); err != nil {
		return nil, err
	}

	updated := *existing
	updated.FirstName = strings.TrimSpace(input.FirstName)
	updated.LastName = strings.TrimSpace(input.LastName)
	updated.Department = strings.TrimSpace(input.Department)
	updated.UpdatedAt = models.Timestamp(i.now().UnixMilli())
	if status := strings.TrimSpace(input.Status); status != "" {
		updated.Status = status
	}
	if updated.Status == "" {
		updated.Status = models.EmployeeStatusActive
	}

	if err := i.Store.Update(ctx, employeePath(employeeID), map[string]any{
		"employeeId": employeeID,
		"first_name": updated.FirstName,
		"last_name":  updated.LastName,
		"department": updated.Department,
		"status":     updated.Status,
		"updatedAt":  updated.UpdatedAt,
	}); err != nil {
		return nil, upstream("updating employee", err)
	}

	logger.Info("Employee updated", zap.String("employee_id", employeeID))
	return &updated, nil
}

func (i *IOT) deleteEmployee(ctx context.Context, employeeID string) error {
	if err := requireKey("employeeId", employeeID); err != nil {
		return err
	}
	v, err := i.Store.Get(ctx, employeePath(employeeID))
	if err != nil {
		return upstream("deleting employee", err)
	}
	if !v.Exists() {
		return common.NewNotFoundError(fmt.Sprintf("Employee with ID %s not found.", employeeID))
	}
	if err := i.Store.Remove(ctx, employeePath(employeeID)); err != nil {
		return upstream("deleting employee", err)
	}
	employeeLogger().Info("Employee deleted", zap.String("employee_id", employeeID))
	return nil
}

type IEmployeeImpl struct {
	iot *IOT
}

func (ie *IEmployeeImpl) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return ie.iot.listEmployees(ctx)
}

func (ie *IEmployeeImpl) GetEmployee(ctx context.Context, employeeID string) (*models.Employee, error) {
	return ie.iot.getEmployee(ctx, employeeID)
}

func (ie *IEmployeeImpl) CreateEmployee(ctx context.Context, input *models.EmployeeInput) (*models.Employee, error) {
	return ie.iot.createEmployee(ctx, input)
}

func (ie *IEmployeeImpl) UpdateEmployee(ctx context.Context, employeeID string, input *models.EmployeeInput) (*models.Employee, error) {
	return ie.iot.updateEmployee(ctx, employeeID, input)
}

func (ie *IEmployeeImpl) DeleteEmployee(ctx context.Context, employeeID string) error {
	return ie.iot.deleteEmployee(ctx, employeeID)
}

func (i *IOT) GetIEmployee() IEmployee {
	return &IEmployeeImpl{iot: i}
}
