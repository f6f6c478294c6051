package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/identity"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/iot"
)

const APIPrefix = "/api/v1"

type RestfulServer struct {
	Server           *gin.Engine
	Iot              *iot.IOT
	Identity         *identity.Service
	RateLimiterStore *iot.RateLimiterStore
	// AllowedOrigins defaults to every origin when empty.
	AllowedOrigins []string
}

func (rs *RestfulServer) GetLimiter(helmetID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(helmetID)
	}
}

func (rs *RestfulServer) CheckHelmetLimiter(helmetID string) bool {
	if rs.RateLimiterStore == nil {
		return true
	}
	return rs.RateLimiterStore.Allow(helmetID)
}

func (rs *RestfulServer) SetLimiter(helmetID string, helmetRate float64, helmetBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(helmetID, rate.Limit(helmetRate), helmetBurst)
}

func (rs *RestfulServer) corsOptions() cors.Options {
	origins := rs.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}
}

func (rs *RestfulServer) Setup() {
	rs.Server.Use(corsMiddleware(rs.corsOptions()), requestMetrics())

	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := rs.Server.Group(APIPrefix)

	api.GET("/sensor-data", rs.GetAllSensorData)
	api.GET("/sensor-data/latest", rs.GetAllLatest)

	helmets := api.Group("/helmets/:helmet_id")
	{
		helmets.GET("", rs.GetHelmet)
		helmets.GET("/latest", rs.GetLatest)
		helmets.GET("/history", rs.GetHistory)
		helmets.GET("/data-range", rs.GetDataRange)
		helmets.GET("/system-status", rs.GetSystemStatus)
		helmets.PUT("/location", rs.UpdateLocation)
		helmets.POST("/limiter", rs.PostLimiter)

		// device facing routes share the helmet's token bucket
		device := helmets.Group("", rs.helmetLimiter())
		device.POST("/sensor-data", rs.PostSensorData)
		device.GET("/alerts", rs.GetAlertReadings)
		device.GET("/config", rs.GetConfig)
		device.POST("/config", rs.UpdateConfig)
	}

	employees := api.Group("/employees")
	{
		employees.GET("", rs.ListEmployees)
		employees.POST("", rs.CreateEmployee)
		employees.GET("/:employee_id", rs.GetEmployee)
		employees.PUT("/:employee_id", rs.UpdateEmployee)
		employees.DELETE("/:employee_id", rs.DeleteEmployee)
	}

	assignments := api.Group("/assignments")
	{
		assignments.GET("", rs.ListAssignments)
		assignments.GET("/helmet/:helmet_id", rs.GetAssignment)
		assignments.POST("/helmet/:helmet_id/assign", rs.AssignHelmet)
		assignments.POST("/helmet/:helmet_id/unassign", rs.UnassignHelmet)
		assignments.GET("/history/:helmet_id", rs.GetAssignmentHistory)
	}
	api.GET("/esp32/assignment/:helmet_id", rs.GetDeviceAssignment)

	alerts := api.Group("/alerts")
	{
		alerts.GET("/history", rs.GetAlertHistory)
		alerts.GET("/latest-alert", rs.GetLatestAlert)
		alerts.GET("/events", rs.GetRecentEvents)
		alerts.POST("/realtime", rs.CreateAlert)
		alerts.PUT("/:alert_id/acknowledge", rs.AcknowledgeAlert)
	}

	analytics := api.Group("/analytics")
	{
		analytics.GET("/overview", rs.GetOverview)
		analytics.GET("/safety-trends", rs.GetSafetyTrends)
		analytics.GET("/miner-performance", rs.GetMinerPerformance)
		analytics.GET("/miner-performance/export", rs.ExportMinerPerformance)
	}

	if rs.Identity != nil {
		users := api.Group("/users")
		{
			users.POST("/createUser", rs.CreateUser)
			users.GET("/getUsers", rs.ListUsers)
			users.GET("/getUser/:user_id", rs.GetUser)
			users.DELETE("/deleteUser/:user_id", rs.DeleteUser)
			users.POST("/banUser/:user_id", rs.BanUser)
			users.POST("/unbanUser/:user_id", rs.UnbanUser)
			users.POST("/recordLogin", rs.RecordLogin)
			users.GET("/getLoginHistory/:user_id", rs.GetLoginHistory)
		}
	}
}
