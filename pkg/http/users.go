package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/identity"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

const (
	DefaultBanReason   = "Manual ban by admin"
	DefaultUnbanReason = "Manual unban by admin"
)

var createUserRequestSchema = z.Struct(z.Shape{
	"EmailAddress": z.String().Trim(),
	"Password":     z.String(),
	"FirstName":    z.String().Trim(),
	"LastName":     z.String().Trim(),
	"Username":     z.String().Trim(),
	"PhoneNumber":  z.String().Trim(),
	"Role":         z.String().Trim(),
})

func (rs *RestfulServer) CreateUser(c *gin.Context) {
	var input identity.CreateUserInput
	if errs := createUserRequestSchema.Parse(zhttp.Request(c.Request), &input); errs != nil {
		respondInvalidBody(c, "Invalid user payload", errs)
		return
	}

	profile, err := rs.Identity.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err, "Error creating user via identity provider")
		return
	}
	respondMessage(c, http.StatusCreated, "User created and profile synced successfully.", gin.H{"data": profile})
}

func (rs *RestfulServer) ListUsers(c *gin.Context) {
	limit, err := queryLimit(c, "limit")
	if err != nil {
		respondError(c, err, "")
		return
	}
	offset, err := queryLimit(c, "offset")
	if err != nil {
		respondError(c, err, "")
		return
	}

	users, err := rs.Identity.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err, "Error fetching users")
		return
	}
	respondList(c, users)
}

func (rs *RestfulServer) GetUser(c *gin.Context) {
	profile, err := rs.Identity.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err, "Error fetching user details")
		return
	}
	respondData(c, http.StatusOK, profile)
}

func (rs *RestfulServer) DeleteUser(c *gin.Context) {
	userID := c.Param("user_id")

	if err := rs.Identity.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Error deleting user")
		return
	}
	respondMessage(c, http.StatusOK, "User deleted successfully.", gin.H{"deletedUserId": userID})
}

type BanRequest struct {
	Reason string `json:"reason"`
}

var banRequestSchema = z.Struct(z.Shape{
	"Reason": z.String().Trim(),
})

func parseBanReason(c *gin.Context, fallback string) (string, bool) {
	var req BanRequest
	if c.Request.ContentLength != 0 {
		if errs := banRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
			respondInvalidBody(c, "Invalid ban payload", errs)
			return "", false
		}
	}
	if req.Reason == "" {
		req.Reason = fallback
	}
	return req.Reason, true
}

func (rs *RestfulServer) BanUser(c *gin.Context) {
	userID := c.Param("user_id")
	reason, ok := parseBanReason(c, DefaultBanReason)
	if !ok {
		return
	}

	profile, err := rs.Identity.BanUser(c.Request.Context(), userID, reason)
	if err != nil {
		respondError(c, err, "Error banning user")
		return
	}
	respondMessage(c, http.StatusOK, fmt.Sprintf("User %s banned.", userID), gin.H{"data": profile})
}

func (rs *RestfulServer) UnbanUser(c *gin.Context) {
	userID := c.Param("user_id")
	reason, ok := parseBanReason(c, DefaultUnbanReason)
	if !ok {
		return
	}

	profile, err := rs.Identity.UnbanUser(c.Request.Context(), userID, reason)
	if err != nil {
		respondError(c, err, "Error unbanning user")
		return
	}
	respondMessage(c, http.StatusOK, fmt.Sprintf("User %s unbanned.", userID), gin.H{"data": profile})
}

type LoginRequest struct {
	UserID      string  `json:"userId"`
	IPAddress   string  `json:"ipAddress"`
	UserAgent   string  `json:"userAgent"`
	LoginMethod string  `json:"loginMethod"`
	Timestamp   float64 `json:"timestamp"`
}

var loginRequestSchema = z.Struct(z.Shape{
	"UserID":      z.String().Trim().Required(),
	"IPAddress":   z.String().Trim(),
	"UserAgent":   z.String().Trim(),
	"LoginMethod": z.String().Trim(),
	"Timestamp":   z.Float64().GTE(0),
})

func (rs *RestfulServer) RecordLogin(c *gin.Context) {
	var req LoginRequest
	if errs := loginRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
		respondInvalidBody(c, "userId is required to record login history.", errs)
		return
	}

	record, err := rs.Identity.RecordLogin(c.Request.Context(), req.UserID, &models.LoginRecord{
		Timestamp:   models.Timestamp(int64(req.Timestamp)),
		IPAddress:   req.IPAddress,
		UserAgent:   req.UserAgent,
		LoginMethod: req.LoginMethod,
	})
	if err != nil {
		respondError(c, err, "Error recording login")
		return
	}
	respondMessage(c, http.StatusCreated, "Login record added successfully.", gin.H{"data": record})
}

func (rs *RestfulServer) GetLoginHistory(c *gin.Context) {
	limit, err := queryLimit(c, "limit")
	if err != nil {
		respondError(c, err, "")
		return
	}

	records, err := rs.Identity.GetLoginHistory(c.Request.Context(), c.Param("user_id"), limit, c.Query("startAfter"))
	if err != nil {
		respondError(c, err, "Error fetching login history")
		return
	}
	respondList(c, records)
}
