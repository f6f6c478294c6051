package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

func (rs *RestfulServer) ListAssignments(c *gin.Context) {
	views, err := rs.Iot.Assignment.ListAssignments(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching all assignments")
		return
	}
	respondList(c, views)
}

func (rs *RestfulServer) GetAssignment(c *gin.Context) {
	view, err := rs.Iot.Assignment.GetAssignment(c.Request.Context(), c.Param("helmet_id"))
	if err != nil {
		respondError(c, err, "Error fetching helmet assignment")
		return
	}
	if !view.Assigned {
		respondMessage(c, http.StatusOK, "Helmet not assigned to any employee", gin.H{"data": view})
		return
	}
	respondData(c, http.StatusOK, view)
}

// AssignHelmet binds with gin because shift bounds arrive either as unix millis
// or as date strings.
func (rs *RestfulServer) AssignHelmet(c *gin.Context) {
	var req models.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, "Invalid assignment payload", err.Error())
		return
	}

	assignment, err := rs.Iot.Assignment.AssignHelmet(c.Request.Context(), c.Param("helmet_id"), &req)
	if err != nil {
		respondError(c, err, "Error assigning helmet")
		return
	}
	respondMessage(c, http.StatusOK, "Helmet assigned successfully", gin.H{"data": assignment})
}

type UnassignRequest struct {
	UnassignedBy string `json:"unassignedBy"`
	Reason       string `json:"reason"`
}

var unassignRequestSchema = z.Struct(z.Shape{
	"UnassignedBy": z.String().Trim(),
	"Reason":       z.String().Trim(),
})

func (rs *RestfulServer) UnassignHelmet(c *gin.Context) {
	var req UnassignRequest
	if errs := unassignRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
		respondInvalidBody(c, "Invalid unassignment payload", errs)
		return
	}

	assignment, err := rs.Iot.Assignment.UnassignHelmet(c.Request.Context(), c.Param("helmet_id"), req.UnassignedBy, req.Reason)
	if err != nil {
		respondError(c, err, "Error unassigning helmet")
		return
	}
	respondMessage(c, http.StatusOK, "Helmet unassigned successfully", gin.H{"data": assignment})
}

func (rs *RestfulServer) GetAssignmentHistory(c *gin.Context) {
	limit, err := queryLimit(c, "limit")
	if err != nil {
		respondError(c, err, "")
		return
	}

	history, err := rs.Iot.Assignment.GetAssignmentHistory(c.Request.Context(), c.Param("helmet_id"), limit)
	if err != nil {
		respondError(c, err, "Error fetching assignment history")
		return
	}
	respondList(c, history)
}

// GetDeviceAssignment answers helmets with a flat body, no data envelope.
func (rs *RestfulServer) GetDeviceAssignment(c *gin.Context) {
	view, err := rs.Iot.Assignment.GetDeviceAssignment(c.Request.Context(), c.Param("helmet_id"))
	if err != nil {
		respondError(c, err, "Error fetching assignment")
		return
	}
	c.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
		*models.DeviceAssignment
	}{Success: true, DeviceAssignment: view})
}
