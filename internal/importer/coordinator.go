package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Storbiic/ETL-Dashboard/internal/exporter"
	"github.com/Storbiic/ETL-Dashboard/internal/model"
	"github.com/Storbiic/ETL-Dashboard/internal/parser"
	"github.com/Storbiic/ETL-Dashboard/internal/pipeline"
	"github.com/Storbiic/ETL-Dashboard/internal/store"
)

// Coordinator 转换协调器：工作簿 → 识别 → 管线 → 持久化 → 导出
type Coordinator struct {
	store      *store.Store
	recognizer *parser.SheetRecognizer
	opts       model.PipelineOptions
}

// NewCoordinator 创建转换协调器
func NewCoordinator(store *store.Store, opts model.PipelineOptions) *Coordinator {
	return &Coordinator{
		store:      store,
		recognizer: parser.NewSheetRecognizer(),
		opts:       opts,
	}
}

// TransformOptions 转换选项
type TransformOptions struct {
	FilePath    string
	Filename    string
	MasterSheet string // 手动指定 MasterBOM 表名，空则自动识别
	StatusSheet string // 手动指定 Status 表名，空则自动识别
	ExportDir   string // 导出目录，空则不落盘
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/info/warning/error/done
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Transform 执行转换，返回进度通道
func (c *Coordinator) Transform(opts TransformOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doTransform(opts, progressChan)
	}()

	return progressChan
}

// doTransform 执行转换逻辑
func (c *Coordinator) doTransform(opts TransformOptions, progressChan chan ProgressEvent) {
	runID := uuid.New().String()

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "start",
		Message: "开始处理工作簿",
		Data: map[string]string{
			"runId":    runID,
			"filename": filepath.Base(opts.FilePath),
		},
		Timestamp: time.Now(),
	})

	wb, err := parser.OpenWorkbookFile(opts.FilePath)
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("打开文件失败: %v", err),
			Timestamp: time.Now(),
		})
		return
	}
	defer wb.Close()

	// 确定两张输入表
	masterSheet, statusSheet, err := c.resolveSheets(wb, opts)
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   err.Error(),
			Timestamp: time.Now(),
		})
		return
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("MasterBOM 表: %q, Status 表: %q", masterSheet, statusSheet),
		Data: map[string]string{
			"masterSheet": masterSheet,
			"statusSheet": statusSheet,
		},
		Timestamp: time.Now(),
	})

	filename := opts.Filename
	if filename == "" {
		filename = filepath.Base(opts.FilePath)
	}
	if err := c.store.CreateRunLog(runID, filename, fileHash(opts.FilePath), masterSheet, statusSheet); err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("创建运行日志失败: %v", err),
			Timestamp: time.Now(),
		})
	}

	master, err := wb.ToTable(masterSheet)
	if err == nil {
		var status *model.Table
		status, err = wb.ToTable(statusSheet)
		if err == nil {
			c.runPipeline(runID, master, status, opts, progressChan)
			return
		}
	}

	c.store.FailRunLog(runID, err.Error())
	c.sendProgress(progressChan, ProgressEvent{
		Type:      "error",
		Message:   fmt.Sprintf("读取工作表失败: %v", err),
		Timestamp: time.Now(),
	})
}

// runPipeline 运行清洗分类管线并持久化
func (c *Coordinator) runPipeline(runID string, master, status *model.Table, opts TransformOptions, progressChan chan ProgressEvent) {
	c.sendProgress(progressChan, ProgressEvent{
		Type:      "info",
		Message:   fmt.Sprintf("管线启动: MasterBOM %d 行, Status %d 行", len(master.Rows), len(status.Rows)),
		Timestamp: time.Now(),
	})

	result, err := pipeline.New(c.opts).Run(master, status)
	if err != nil {
		// SchemaError 等致命错误：整次运行中止
		c.store.FailRunLog(runID, err.Error())
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("管线失败: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	if n := len(result.Report.IntegrityWarnings); n > 0 {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("发现 %d 条完整性警告", n),
			Timestamp: time.Now(),
		})
	}

	// 持久化三张分析表
	if err := c.persist(runID, result); err != nil {
		c.store.FailRunLog(runID, err.Error())
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("持久化失败: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	// 导出五表工作簿
	if opts.ExportDir != "" {
		exportPath := filepath.Join(opts.ExportDir, runID+".xlsx")
		if err := c.export(result, exportPath); err != nil {
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "warning",
				Message:   fmt.Sprintf("导出失败: %v", err),
				Timestamp: time.Now(),
			})
		} else {
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "info",
				Message:   "导出完成: " + filepath.Base(exportPath),
				Timestamp: time.Now(),
			})
		}
	}

	reportJSON, _ := json.Marshal(result.Report)
	if err := c.store.CompleteRunLog(runID,
		len(result.MasterClean.Rows), len(result.PlantStatus),
		len(result.FactParts), len(result.DimDates), string(reportJSON)); err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("更新运行日志失败: %v", err),
			Timestamp: time.Now(),
		})
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "done",
		Message: "转换完成",
		Data: map[string]interface{}{
			"runId":           runID,
			"masterRows":      len(result.MasterClean.Rows),
			"plantStatusRows": len(result.PlantStatus),
			"factRows":        len(result.FactParts),
			"dimDateRows":     len(result.DimDates),
			"report":          result.Report,
		},
		Timestamp: time.Now(),
	})
}

// resolveSheets 确定 MasterBOM / Status 两张表：优先手动指定，否则按表头识别
func (c *Coordinator) resolveSheets(wb *parser.Workbook, opts TransformOptions) (string, string, error) {
	masterSheet := opts.MasterSheet
	statusSheet := opts.StatusSheet
	if masterSheet != "" && statusSheet != "" {
		return masterSheet, statusSheet, nil
	}

	sheets, err := wb.Sheets()
	if err != nil {
		return "", "", fmt.Errorf("读取工作表列表失败: %w", err)
	}

	for _, info := range sheets {
		cols, err := wb.Columns(info.Name)
		if err != nil {
			continue
		}
		rec := c.recognizer.Recognize(info.Name, cols)
		switch rec.SheetType {
		case parser.SheetTypeMasterBOM:
			if masterSheet == "" {
				masterSheet = info.Name
			}
		case parser.SheetTypeStatus:
			if statusSheet == "" {
				statusSheet = info.Name
			}
		}
	}

	if masterSheet == "" || statusSheet == "" {
		return "", "", fmt.Errorf("无法识别 MasterBOM/Status 工作表，请手动指定")
	}
	return masterSheet, statusSheet, nil
}

// persist 写入 SQLite 产出表
func (c *Coordinator) persist(runID string, result *model.PipelineResult) error {
	if err := c.store.DeleteRunOutputs(runID); err != nil {
		return err
	}
	if err := c.store.BatchInsertPlantStatus(runID, result.PlantStatus); err != nil {
		return err
	}
	if err := c.store.BatchInsertFactParts(runID, result.FactParts); err != nil {
		return err
	}
	return c.store.BatchInsertDimDates(runID, result.DimDates)
}

// export 落盘五表工作簿
func (c *Coordinator) export(result *model.PipelineResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return exporter.NewExporter().Export(result, f)
}

// sendProgress 发送进度事件，通道满时丢弃
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}

func fileHash(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))
}
