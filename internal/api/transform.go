package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Storbiic/ETL-Dashboard/internal/importer"
)

// TransformRequest 转换请求
type TransformRequest struct {
	FileID      string `json:"fileId" binding:"required"`
	Filename    string `json:"filename"`
	MasterSheet string `json:"masterSheet"` // 空则自动识别
	StatusSheet string `json:"statusSheet"` // 空则自动识别
}

// Transform 执行清洗转换 (SSE 流式响应)
// POST /api/transform
func (h *Handler) Transform(c *gin.Context) {
	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	filePath := h.uploadPath(req.FileID)
	if _, err := os.Stat(filePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "上传文件不存在，请重新上传"})
		return
	}

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	h.mu.RLock()
	opts := h.cfg.Options()
	h.mu.RUnlock()

	coordinator := importer.NewCoordinator(h.store, opts)
	progressChan := coordinator.Transform(importer.TransformOptions{
		FilePath:    filePath,
		Filename:    req.Filename,
		MasterSheet: req.MasterSheet,
		StatusSheet: req.StatusSheet,
		ExportDir:   filepath.Join(h.dataDir, "exports"),
	})

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}
