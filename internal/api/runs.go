package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListRuns 列出运行记录
// GET /api/runs?limit=50
func (h *Handler) ListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	runs, err := h.store.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询运行记录失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetRunReport 获取单次运行的处理报告
// GET /api/runs/:id/report
func (h *Handler) GetRunReport(c *gin.Context) {
	run, err := h.store.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询运行记录失败"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "运行记录不存在"})
		return
	}

	var report interface{}
	if run.ReportJSON != "" {
		if err := json.Unmarshal([]byte(run.ReportJSON), &report); err != nil {
			report = nil
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"run":    run,
		"report": report,
	})
}

// GetRunParts 查询某次运行的件号事实表
// GET /api/runs/:id/parts
func (h *Handler) GetRunParts(c *gin.Context) {
	parts, err := h.store.GetFactParts(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询事实表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"parts": parts})
}

// GetRunPlantStatus 查询某次运行的厂区状态长表，可按件号过滤
// GET /api/runs/:id/plant-status?partId=xxx
func (h *Handler) GetRunPlantStatus(c *gin.Context) {
	records, err := h.store.GetPlantStatus(c.Param("id"), c.Query("partId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询状态表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// DownloadExport 下载某次运行导出的工作簿
// GET /api/export/:id
func (h *Handler) DownloadExport(c *gin.Context) {
	runID := c.Param("id")
	run, err := h.store.GetRun(runID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询运行记录失败"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "运行记录不存在"})
		return
	}

	exportPath := filepath.Join(h.dataDir, "exports", runID+".xlsx")
	if _, err := os.Stat(exportPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+runID+`.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(exportPath)
}
