package api

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Storbiic/ETL-Dashboard/internal/config"
	"github.com/Storbiic/ETL-Dashboard/internal/store"
)

// Handler API 处理器
type Handler struct {
	store   *store.Store
	dataDir string

	mu  sync.RWMutex
	cfg *config.AppConfig
}

// NewHandler 创建 API 处理器
func NewHandler(store *store.Store, cfg *config.AppConfig, dataDir string) *Handler {
	return &Handler{
		store:   store,
		cfg:     cfg,
		dataDir: dataDir,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 工作簿上传与检查
	router.POST("/upload", h.Upload)
	router.GET("/sheets", h.ListSheets)
	router.GET("/preview", h.Preview)
	router.GET("/profile", h.ProfileSheet)

	// 转换执行
	router.POST("/transform", h.Transform)

	// 运行记录与产出
	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id/report", h.GetRunReport)
	router.GET("/runs/:id/parts", h.GetRunParts)
	router.GET("/runs/:id/plant-status", h.GetRunPlantStatus)
	router.GET("/export/:id", h.DownloadExport)

	// 配置管理
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)
}
