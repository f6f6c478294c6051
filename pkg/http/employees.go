package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

// Required fields are checked by the employee service so the error names every
// missing field at once.
var employeeRequestSchema = z.Struct(z.Shape{
	"FirstName":  z.String().Trim(),
	"LastName":   z.String().Trim(),
	"Department": z.String().Trim(),
	"Status":     z.String().Trim(),
})

func parseEmployeeInput(c *gin.Context) (*models.EmployeeInput, bool) {
	var input models.EmployeeInput
	if errs := employeeRequestSchema.Parse(zhttp.Request(c.Request), &input); errs != nil {
		respondInvalidBody(c, "Invalid employee payload", errs)
		return nil, false
	}
	return &input, true
}

func (rs *RestfulServer) ListEmployees(c *gin.Context) {
	employees, err := rs.Iot.Employee.ListEmployees(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching employees")
		return
	}
	respondList(c, employees)
}

func (rs *RestfulServer) GetEmployee(c *gin.Context) {
	employee, err := rs.Iot.Employee.GetEmployee(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		respondError(c, err, "Error fetching employee")
		return
	}
	respondData(c, http.StatusOK, employee)
}

func (rs *RestfulServer) CreateEmployee(c *gin.Context) {
	input, ok := parseEmployeeInput(c)
	if !ok {
		return
	}

	employee, err := rs.Iot.Employee.CreateEmployee(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Error creating employee")
		return
	}
	respondMessage(c, http.StatusCreated, "Employee created successfully", gin.H{"data": employee})
}

func (rs *RestfulServer) UpdateEmployee(c *gin.Context) {
	input, ok := parseEmployeeInput(c)
	if !ok {
		return
	}

	employee, err := rs.Iot.Employee.UpdateEmployee(c.Request.Context(), c.Param("employee_id"), input)
	if err != nil {
		respondError(c, err, "Error updating employee")
		return
	}
	respondMessage(c, http.StatusOK, "Employee updated successfully", gin.H{"data": employee})
}

func (rs *RestfulServer) DeleteEmployee(c *gin.Context) {
	employeeID := c.Param("employee_id")

	if err := rs.Iot.Employee.DeleteEmployee(c.Request.Context(), employeeID); err != nil {
		respondError(c, err, "Error deleting employee")
		return
	}
	respondMessage(c, http.StatusOK, fmt.Sprintf("Employee with ID %s deleted successfully.", employeeID), nil)
}
