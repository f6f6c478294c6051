package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

func (rs *RestfulServer) GetAllSensorData(c *gin.Context) {
	helmets, err := rs.Iot.Telemetry.GetAllHelmets(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching all sensor data")
		return
	}
	respondData(c, http.StatusOK, helmets)
}

func (rs *RestfulServer) GetAllLatest(c *gin.Context) {
	latest, err := rs.Iot.Telemetry.GetAllLatest(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching all latest sensor data")
		return
	}
	respondList(c, latest)
}

func (rs *RestfulServer) GetHelmet(c *gin.Context) {
	helmet, err := rs.Iot.Telemetry.GetHelmet(c.Request.Context(), c.Param("helmet_id"))
	if err != nil {
		respondError(c, err, "Error fetching helmet data")
		return
	}
	respondData(c, http.StatusOK, helmet)
}

func (rs *RestfulServer) GetLatest(c *gin.Context) {
	reading, err := rs.Iot.Telemetry.GetLatest(c.Request.Context(), c.Param("helmet_id"))
	if err != nil {
		respondError(c, err, "Error fetching latest sensor data")
		return
	}
	respondData(c, http.StatusOK, reading)
}

func (rs *RestfulServer) GetHistory(c *gin.Context) {
	limit, err := queryLimit(c, "limit")
	if err != nil {
		respondError(c, err, "")
		return
	}

	page, err := rs.Iot.Telemetry.GetHistory(c.Request.Context(), c.Param("helmet_id"), limit, c.Query("startAfter"))
	if err != nil {
		respondError(c, err, "Error fetching historical sensor data")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"data":           page.Readings,
		"count":          page.Count,
		"nextStartAfter": page.NextStartAfter,
	})
}

func (rs *RestfulServer) PostSensorData(c *gin.Context) {
	helmetID := c.Param("helmet_id")

	// an empty body is an empty reading
	var reading models.SensorReading
	if err := c.ShouldBindJSON(&reading); err != nil && !errors.Is(err, io.EOF) {
		respondInvalidBody(c, "Invalid sensor data payload", err.Error())
		return
	}

	stored, err := rs.Iot.Telemetry.AddReading(c.Request.Context(), helmetID, &reading)
	if err != nil {
		respondError(c, err, "Error adding sensor data")
		return
	}

	respondMessage(c, http.StatusCreated, "Sensor data added successfully", gin.H{
		"helmetId":  helmetID,
		"timestamp": stored.Timestamp,
		"data":      stored,
	})
}

func (rs *RestfulServer) GetDataRange(c *gin.Context) {
	result, err := rs.Iot.Telemetry.GetRange(c.Request.Context(), c.Param("helmet_id"), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, err, "Error fetching sensor data by date range")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      result.Readings,
		"count":     result.Count,
		"dateRange": result.DateRange,
	})
}

func (rs *RestfulServer) GetAlertReadings(c *gin.Context) {
	limit, err := queryLimit(c, "limit")
	if err != nil {
		respondError(c, err, "")
		return
	}

	readings, err := rs.Iot.Telemetry.GetAlertReadings(c.Request.Context(), c.Param("helmet_id"), limit)
	if err != nil {
		respondError(c, err, "Error fetching alerts")
		return
	}
	respondList(c, readings)
}

func (rs *RestfulServer) GetSystemStatus(c *gin.Context) {
	status, err := rs.Iot.Telemetry.GetSystemStatus(c.Request.Context(), c.Param("helmet_id"))
	if err != nil {
		respondError(c, err, "Error fetching system status")
		return
	}
	respondData(c, http.StatusOK, status)
}

type LocationRequest struct {
	Location string `json:"location"`
}

var locationRequestSchema = z.Struct(z.Shape{
	"Location": z.String().Trim().Required(),
})

func (rs *RestfulServer) UpdateLocation(c *gin.Context) {
	helmetID := c.Param("helmet_id")

	var req LocationRequest
	if errs := locationRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
		respondInvalidBody(c, "Location (string, non-empty) is required in the request body", errs)
		return
	}

	if err := rs.Iot.Telemetry.UpdateLocation(c.Request.Context(), helmetID, req.Location); err != nil {
		respondError(c, err, "Error updating helmet location")
		return
	}

	respondMessage(c, http.StatusOK, fmt.Sprintf("Helmet %s location updated to '%s'", helmetID, req.Location), gin.H{
		"data": gin.H{"helmetId": helmetID, "location": req.Location},
	})
}

type ConfigRequest struct {
	TemperatureThreshold float64 `json:"temperatureThreshold"`
	HumidityThreshold    float64 `json:"humidityThreshold"`
	GasThreshold         float64 `json:"gasThreshold"`
}

var configRequestSchema = z.Struct(z.Shape{
	"TemperatureThreshold": z.Float64().GTE(0),
	"HumidityThreshold":    z.Float64().GTE(0),
	"GasThreshold":         z.Float64().GTE(0),
})

func (rs *RestfulServer) UpdateConfig(c *gin.Context) {
	helmetID := c.Param("helmet_id")

	var req ConfigRequest
	if errs := configRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
		respondInvalidBody(c, "Thresholds must be non-negative numbers", errs)
		return
	}

	thresholds := models.Thresholds{
		TemperatureThreshold: req.TemperatureThreshold,
		HumidityThreshold:    req.HumidityThreshold,
		GasThreshold:         req.GasThreshold,
	}
	if err := rs.Iot.Thresholds.UpsertThresholds(c.Request.Context(), helmetID, &thresholds); err != nil {
		respondError(c, err, "Error saving helmet thresholds")
		return
	}

	respondMessage(c, http.StatusOK, "Thresholds updated successfully", gin.H{"data": thresholds})
}

func (rs *RestfulServer) GetConfig(c *gin.Context) {
	thresholds, err := rs.Iot.Thresholds.GetThresholds(c.Request.Context(), c.Param("helmet_id"))
	if err != nil {
		respondError(c, err, "Error fetching helmet thresholds")
		return
	}
	respondData(c, http.StatusOK, thresholds)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	helmetID := c.Param("helmet_id")

	var req LimiterRequest
	if errs := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
		respondInvalidBody(c, "rate and burst are required", errs)
		return
	}

	rs.SetLimiter(helmetID, req.Rate, req.Burst)

	respondMessage(c, http.StatusOK, "Limiter updated", nil)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
