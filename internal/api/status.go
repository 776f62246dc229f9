package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized bool   `json:"initialized"` // 是否有完成的运行
	TotalRuns   int    `json:"totalRuns"`
	LastRunID   string `json:"lastRunId,omitempty"`
	LastRunTime string `json:"lastRunTime,omitempty"`
	LastStatus  string `json:"lastStatus,omitempty"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	runs, err := h.store.ListRuns(0)
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{Initialized: false})
		return
	}

	resp := StatusResponse{
		Initialized: len(runs) > 0,
		TotalRuns:   len(runs),
	}
	if len(runs) > 0 {
		resp.LastRunID = runs[0].ID
		resp.LastRunTime = runs[0].CreatedAt
		resp.LastStatus = runs[0].Status
	}
	c.JSON(http.StatusOK, resp)
}
