package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

type AlertRequest struct {
	AlertType  string  `json:"alertType"`
	Type       string  `json:"type"`
	Message    string  `json:"message"`
	Location   string  `json:"location"`
	Timestamp  float64 `json:"timestamp"`
	MinerID    string  `json:"minerId"`
	EmployeeID string  `json:"employeeId"`
	HelmetID   string  `json:"helmetId"`
	Severity   string  `json:"severity"`
}

var alertRequestSchema = z.Struct(z.Shape{
	"AlertType":  z.String().Trim(),
	"Type":       z.String().Trim(),
	"Message":    z.String().Trim(),
	"Location":   z.String().Trim(),
	"Timestamp":  z.Float64().GTE(0),
	"MinerID":    z.String().Trim(),
	"EmployeeID": z.String().Trim(),
	"HelmetID":   z.String().Trim(),
	"Severity":   z.String().Trim(),
})

// alertIDFromBody reads the caller supplied id, which dashboards send either
// as a string or as a number such as a millisecond timestamp.
func alertIDFromBody(raw []byte) string {
	var body struct {
		ID any `json:"id"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return ""
	}

	switch id := body.ID.(type) {
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return strconv.FormatInt(n, 10)
		}
		return id.String()
	default:
		return ""
	}
}

func (rs *RestfulServer) CreateAlert(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		respondInvalidBody(c, "Invalid alert payload", err.Error())
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	var req AlertRequest
	if errs := alertRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
		respondInvalidBody(c, "Invalid alert payload", errs)
		return
	}

	alert, err := rs.Iot.Alert.CreateAlert(c.Request.Context(), &models.Alert{
		ID:         alertIDFromBody(raw),
		AlertType:  models.AlertType(req.AlertType),
		Type:       models.AlertLevel(req.Type),
		Message:    req.Message,
		Location:   req.Location,
		Timestamp:  models.Timestamp(int64(req.Timestamp)),
		MinerID:    req.MinerID,
		EmployeeID: req.EmployeeID,
		HelmetID:   req.HelmetID,
		Severity:   req.Severity,
	})
	if err != nil {
		respondError(c, err, "Failed to create real-time alert")
		return
	}
	respondMessage(c, http.StatusCreated, "Real-time alert created successfully", gin.H{"data": alert})
}

type AcknowledgeRequest struct {
	ResolvedBy string `json:"resolvedBy"`
}

var acknowledgeRequestSchema = z.Struct(z.Shape{
	"ResolvedBy": z.String().Trim(),
})

func (rs *RestfulServer) AcknowledgeAlert(c *gin.Context) {
	alertID := c.Param("alert_id")

	var req AcknowledgeRequest
	if c.Request.ContentLength != 0 {
		if errs := acknowledgeRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
			respondInvalidBody(c, "Invalid acknowledgement payload", errs)
			return
		}
	}

	alert, err := rs.Iot.Alert.AcknowledgeAlert(c.Request.Context(), alertID, req.ResolvedBy)
	if err != nil {
		respondError(c, err, "Failed to acknowledge alert")
		return
	}
	respondMessage(c, http.StatusOK, fmt.Sprintf("Alert %s acknowledged successfully.", alertID), gin.H{"data": alert})
}

func (rs *RestfulServer) GetLatestAlert(c *gin.Context) {
	alert, err := rs.Iot.Alert.GetLatestAlert(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch latest alert")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": alert, "latestAlert": alert})
}

func (rs *RestfulServer) GetAlertHistory(c *gin.Context) {
	views, err := rs.Iot.Alert.GetAlertHistory(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching all alerts history")
		return
	}
	respondList(c, views)
}

func (rs *RestfulServer) GetRecentEvents(c *gin.Context) {
	limit, err := queryLimit(c, "limit")
	if err != nil {
		respondError(c, err, "")
		return
	}

	events, err := rs.Iot.Alert.GetRecentEvents(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Error fetching recent alert events")
		return
	}
	respondList(c, events)
}
