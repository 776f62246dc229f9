package api

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Storbiic/ETL-Dashboard/internal/parser"
)

// SheetSummary 工作表概要及识别结果
type SheetSummary struct {
	Name       string  `json:"name"`
	RowCount   int     `json:"rowCount"`
	SheetType  string  `json:"sheetType"`
	Confidence float64 `json:"confidence"`
}

// UploadResponse 上传响应
type UploadResponse struct {
	FileID   string         `json:"fileId"`
	Filename string         `json:"filename"`
	Sheets   []SheetSummary `json:"sheets"`
}

// Upload 上传工作簿并返回各表识别结果
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	uploadedFile := files[0]
	ext := strings.ToLower(filepath.Ext(uploadedFile.Filename))
	if ext != ".xlsx" && ext != ".xlsm" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "仅支持 .xlsx/.xlsm 文件"})
		return
	}

	// 先从上传流解析，确认是合法工作簿再落盘
	src, err := uploadedFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}
	defer src.Close()

	wb, err := parser.OpenWorkbook(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "解析工作簿失败: " + err.Error()})
		return
	}
	defer wb.Close()

	sheets, err := describeSheets(wb)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "解析工作簿失败: " + err.Error()})
		return
	}

	fileID := wb.FileID()
	savePath := h.uploadPath(fileID)
	if err := c.SaveUploadedFile(uploadedFile, savePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		FileID:   fileID,
		Filename: uploadedFile.Filename,
		Sheets:   sheets,
	})
}

// ListSheets 列出已上传工作簿的工作表
// GET /api/sheets?fileId=xxx
func (h *Handler) ListSheets(c *gin.Context) {
	fileID := c.Query("fileId")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 fileId 参数"})
		return
	}

	wb, err := parser.OpenWorkbookFile(h.uploadPath(fileID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "文件不存在或无法解析"})
		return
	}
	defer wb.Close()

	sheets, err := describeSheets(wb)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "解析工作簿失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheets": sheets})
}

// Preview 预览工作表前若干行
// GET /api/preview?fileId=xxx&sheet=xxx&limit=20
func (h *Handler) Preview(c *gin.Context) {
	fileID := c.Query("fileId")
	sheet := c.Query("sheet")
	if fileID == "" || sheet == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 fileId 或 sheet 参数"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	wb, err := parser.OpenWorkbookFile(h.uploadPath(fileID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "文件不存在或无法解析"})
		return
	}
	defer wb.Close()

	columns, err := wb.Columns(sheet)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取工作表失败: " + err.Error()})
		return
	}
	rows, err := wb.PreviewRows(sheet, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取工作表失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": columns,
		"rows":    rows,
	})
}

// ProfileSheet 对工作表做列级画像
// GET /api/profile?fileId=xxx&sheet=xxx
func (h *Handler) ProfileSheet(c *gin.Context) {
	fileID := c.Query("fileId")
	sheet := c.Query("sheet")
	if fileID == "" || sheet == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 fileId 或 sheet 参数"})
		return
	}

	wb, err := parser.OpenWorkbookFile(h.uploadPath(fileID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "文件不存在或无法解析"})
		return
	}
	defer wb.Close()

	profiles, err := wb.Profile(sheet)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "生成画像失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": profiles})
}

// uploadPath 按 fileID 定位上传文件
func (h *Handler) uploadPath(fileID string) string {
	return filepath.Join(h.dataDir, "uploads", fileID+".xlsx")
}

// describeSheets 对工作簿的每张表做类型识别
func describeSheets(wb *parser.Workbook) ([]SheetSummary, error) {
	infos, err := wb.Sheets()
	if err != nil {
		return nil, err
	}

	recognizer := parser.NewSheetRecognizer()
	out := make([]SheetSummary, 0, len(infos))
	for _, info := range infos {
		summary := SheetSummary{Name: info.Name, RowCount: info.RowCount, SheetType: string(parser.SheetTypeUnknown)}
		if cols, err := wb.Columns(info.Name); err == nil {
			rec := recognizer.Recognize(info.Name, cols)
			summary.SheetType = string(rec.SheetType)
			summary.Confidence = rec.Confidence
		}
		out = append(out, summary)
	}
	return out, nil
}
