package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
)

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "count": len(items)})
}

func respondMessage(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondError writes the error envelope. Unclassified errors become 500s whose
// message is the given fallback.
func respondError(c *gin.Context, err error, fallback string) {
	appErr := common.AsAppError(err)
	status := appErr.StatusCode()

	body := gin.H{"success": false, "message": appErr.Message}
	if appErr.Kind == common.ErrorKindUpstream && !common.IsKind(err, common.ErrorKindUpstream) {
		body["message"] = fallback
	}
	if appErr.Details != nil {
		body["error"] = appErr.Details
	} else if appErr.Err != nil {
		body["error"] = appErr.Err.Error()
	}

	if status >= http.StatusInternalServerError {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error(fallback,
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, body)
}

func respondInvalidBody(c *gin.Context, message string, issues any) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message, "error": issues})
}

// queryLimit reads a positive integer query parameter, zero when absent.
func queryLimit(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, common.NewValidationError(name+" must be a positive integer", []string{name})
	}
	return n, nil
}
