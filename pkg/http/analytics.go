package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/analytics"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (rs *RestfulServer) GetOverview(c *gin.Context) {
	overview, err := rs.Iot.Analytics.GetOverview(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching overview analytics")
		return
	}
	respondData(c, http.StatusOK, overview)
}

func (rs *RestfulServer) GetSafetyTrends(c *gin.Context) {
	trends, err := rs.Iot.Analytics.GetSafetyTrends(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching safety trends")
		return
	}
	respondList(c, trends)
}

func (rs *RestfulServer) GetMinerPerformance(c *gin.Context) {
	rows, err := rs.Iot.Analytics.GetMinerPerformance(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching miner performance")
		return
	}
	respondList(c, rows)
}

func (rs *RestfulServer) ExportMinerPerformance(c *gin.Context) {
	rows, err := rs.Iot.Analytics.GetMinerPerformance(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching miner performance")
		return
	}

	workbook, err := analytics.MinerPerformanceXLSX(rows)
	if err != nil {
		respondError(c, err, "Error exporting miner performance")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, analytics.MinerPerformanceFilename))
	c.Data(http.StatusOK, xlsxContentType, workbook)
}
