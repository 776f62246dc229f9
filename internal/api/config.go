package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Storbiic/ETL-Dashboard/internal/config"
	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// UpdateConfigRequest 更新管线配置请求，省略的字段保持原值
type UpdateConfigRequest struct {
	IDColumn            *string   `json:"idColumn"`
	DescriptionColumn   *string   `json:"descriptionColumn"`
	SupplierColumn      *string   `json:"supplierColumn"`
	PrioritySupplier    *string   `json:"prioritySupplier"`
	RequiredColumns     *[]string `json:"requiredColumns"`
	ActiveCodes         *[]string `json:"activeCodes"`
	InactiveCodes       *[]string `json:"inactiveCodes"`
	DuplicateCodes      *[]string `json:"duplicateCodes"`
	BlankPolicy         *string   `json:"blankPolicy"`
	DateColumnKeywords  *[]string `json:"dateColumnKeywords"`
	PercentKeywords     *[]string `json:"percentKeywords"`
	SeparatorCharacters *string   `json:"separatorCharacters"`
	TextColumns         *[]string `json:"textColumns"`
}

// GetConfig 获取管线配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	h.mu.RLock()
	p := h.cfg.Pipeline
	h.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"idColumn":            p.IDColumn,
		"descriptionColumn":   p.DescriptionColumn,
		"supplierColumn":      p.SupplierColumn,
		"prioritySupplier":    p.PrioritySupplier,
		"requiredColumns":     p.RequiredColumns,
		"activeCodes":         p.ActiveCodes,
		"inactiveCodes":       p.InactiveCodes,
		"duplicateCodes":      p.DuplicateCodes,
		"blankPolicy":         p.BlankPolicy,
		"dateColumnKeywords":  p.DateColumnKeywords,
		"percentKeywords":     p.PercentKeywords,
		"separatorCharacters": p.SeparatorCharacters,
		"textColumns":         p.TextColumns,
	})
}

// UpdateConfig 更新管线配置并持久化
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	if req.BlankPolicy != nil &&
		*req.BlankPolicy != model.BlankAlwaysNew && *req.BlankPolicy != model.BlankFirstOnly {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 blankPolicy 取值"})
		return
	}

	h.mu.Lock()
	p := &h.cfg.Pipeline
	if req.IDColumn != nil {
		p.IDColumn = *req.IDColumn
	}
	if req.DescriptionColumn != nil {
		p.DescriptionColumn = *req.DescriptionColumn
	}
	if req.SupplierColumn != nil {
		p.SupplierColumn = *req.SupplierColumn
	}
	if req.PrioritySupplier != nil {
		p.PrioritySupplier = *req.PrioritySupplier
	}
	if req.RequiredColumns != nil {
		p.RequiredColumns = *req.RequiredColumns
	}
	if req.ActiveCodes != nil {
		p.ActiveCodes = *req.ActiveCodes
	}
	if req.InactiveCodes != nil {
		p.InactiveCodes = *req.InactiveCodes
	}
	if req.DuplicateCodes != nil {
		p.DuplicateCodes = *req.DuplicateCodes
	}
	if req.BlankPolicy != nil {
		p.BlankPolicy = *req.BlankPolicy
	}
	if req.DateColumnKeywords != nil {
		p.DateColumnKeywords = *req.DateColumnKeywords
	}
	if req.PercentKeywords != nil {
		p.PercentKeywords = *req.PercentKeywords
	}
	if req.SeparatorCharacters != nil {
		p.SeparatorCharacters = *req.SeparatorCharacters
	}
	if req.TextColumns != nil {
		p.TextColumns = *req.TextColumns
	}
	err := config.SaveConfig(h.cfg)
	h.mu.Unlock()

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存配置失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "配置更新成功"})
}
