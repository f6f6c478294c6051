package iot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

func TestEmployeeLifecycle(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _ := GetMockIOTWithMemoryStore(t, MockOpts{})
	defer ctrl.Finish()

	ctx := context.Background()

	list, err := iotObj.Employee.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := iotObj.Employee.CreateEmployee(ctx, &models.EmployeeInput{
		FirstName:  "Tendai",
		LastName:   "Moyo",
		Department: "Drilling",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.EmployeeID)
	assert.Equal(t, models.EmployeeStatusActive, created.Status)
	assert.Equal(t, models.Timestamp(fixedNow.UnixMilli()), created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := iotObj.Employee.GetEmployee(ctx, created.EmployeeID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	second, err := iotObj.Employee.CreateEmployee(ctx, &models.EmployeeInput{
		FirstName:  "Rudo",
		LastName:   "Dube",
		Department: "Blasting",
		Status:     "on_leave",
	})
	require.NoError(t, err)
	assert.Equal(t, "on_leave", second.Status)
	assert.NotEqual(t, created.EmployeeID, second.EmployeeID)

	list, err = iotObj.Employee.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// status is preserved when the update omits it
	iotObj.Clock = func() time.Time { return fixedNow.Add(time.Minute) }
	updated, err := iotObj.Employee.UpdateEmployee(ctx, second.EmployeeID, &models.EmployeeInput{
		FirstName:  "Rudo",
		LastName:   "Dube-Ncube",
		Department: "Blasting",
	})
	require.NoError(t, err)
	assert.Equal(t, "on_leave", updated.Status)
	assert.Equal(t, second.CreatedAt, updated.CreatedAt)
	assert.Equal(t, models.Timestamp(fixedNow.Add(time.Minute).UnixMilli()), updated.UpdatedAt)

	got, err = iotObj.Employee.GetEmployee(ctx, second.EmployeeID)
	require.NoError(t, err)
	assert.Equal(t, "Dube-Ncube", got.LastName)
	assert.Equal(t, second.CreatedAt, got.CreatedAt)

	require.NoError(t, iotObj.Employee.DeleteEmployee(ctx, second.EmployeeID))

	_, err = iotObj.Employee.GetEmployee(ctx, second.EmployeeID)
	assert.True(t, common.IsKind(err, common.ErrorKindNotFound))

	err = iotObj.Employee.DeleteEmployee(ctx, second.EmployeeID)
	assert.True(t, common.IsKind(err, common.ErrorKindNotFound))
}

func TestEmployee_Validation(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, iotObj, _ := GetMockIOTWithMemoryStore(t, MockOpts{})
	defer ctrl.Finish()

	ctx := context.Background()

	_, err := iotObj.Employee.CreateEmployee(ctx, &models.EmployeeInput{FirstName: "Tendai"})
	require.Error(t, err)
	appErr := common.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, common.ErrorKindValidation, appErr.Kind)
	assert.Equal(t, []string{"last_name", "department"}, appErr.Details)

	_, err = iotObj.Employee.UpdateEmployee(ctx, "nobody", &models.EmployeeInput{FirstName: "a", LastName: "b", Department: "c"})
	assert.True(t, common.IsKind(err, common.ErrorKindNotFound))

	created, err := iotObj.Employee.CreateEmployee(ctx, &models.EmployeeInput{FirstName: "a", LastName: "b", Department: "c"})
	require.NoError(t, err)

	_, err = iotObj.Employee.UpdateEmployee(ctx, created.EmployeeID, &models.EmployeeInput{FirstName: "a"})
	assert.True(t, common.IsKind(err, common.ErrorKindValidation))

	_, err = iotObj.Employee.GetEmployee(ctx, "")
	assert.True(t, common.IsKind(err, common.ErrorKindValidation))
}
