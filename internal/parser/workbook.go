package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// Workbook Excel 工作簿访问层
type Workbook struct {
	file   *excelize.File
	fileID string
}

// SheetInfo 工作表概要
type SheetInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"rowCount"`
}

// OpenWorkbook 从流加载工作簿
func OpenWorkbook(reader io.Reader) (*Workbook, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	return &Workbook{file: file, fileID: uuid.New().String()}, nil
}

// OpenWorkbookFile 从路径加载工作簿
func OpenWorkbookFile(path string) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	return &Workbook{file: file, fileID: uuid.New().String()}, nil
}

// FileID 获取文件ID
func (w *Workbook) FileID() string {
	return w.fileID
}

// Sheets 获取工作表列表
func (w *Workbook) Sheets() ([]SheetInfo, error) {
	if w.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := w.file.GetSheetList()
	result := make([]SheetInfo, 0, len(sheets))
	for _, name := range sheets {
		rows, err := w.file.GetRows(name)
		if err != nil {
			continue
		}
		result = append(result, SheetInfo{Name: name, RowCount: len(rows)})
	}
	return result, nil
}

// Columns 获取首行列名
func (w *Workbook) Columns(sheet string) ([]string, error) {
	if w.file == nil {
		return nil, errors.New("no file loaded")
	}

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty sheet")
	}
	return rows[0], nil
}

// PreviewRows 获取预览行（不含表头）
func (w *Workbook) PreviewRows(sheet string, limit int) ([][]string, error) {
	if w.file == nil {
		return nil, errors.New("no file loaded")
	}

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return [][]string{}, nil
	}

	end := limit + 1
	if end > len(rows) {
		end = len(rows)
	}
	return rows[1:end], nil
}

// ToTable 将工作表读取为内存表，整行空白的行剔除
func (w *Workbook) ToTable(sheet string) (*model.Table, error) {
	if w.file == nil {
		return nil, errors.New("no file loaded")
	}

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	t := model.NewTable(sheet, rows[0])
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		// 补齐短行，保证列对齐
		r := make([]string, len(t.Columns))
		copy(r, row)
		t.Rows = append(t.Rows, r)
	}
	return t, nil
}

// ColumnProfile 列画像：非空数、唯一值数、示例值
type ColumnProfile struct {
	Name     string   `json:"name"`
	NonEmpty int      `json:"nonEmpty"`
	Distinct int      `json:"distinct"`
	Samples  []string `json:"samples"`
}

// Profile 对工作表做列级画像，供上传后人工检查
func (w *Workbook) Profile(sheet string) ([]ColumnProfile, error) {
	t, err := w.ToTable(sheet)
	if err != nil {
		return nil, err
	}

	profiles := make([]ColumnProfile, len(t.Columns))
	for col, name := range t.Columns {
		seen := map[string]bool{}
		p := ColumnProfile{Name: name}
		for row := range t.Rows {
			v := strings.TrimSpace(t.Cell(row, col))
			if v == "" {
				continue
			}
			p.NonEmpty++
			if !seen[v] {
				seen[v] = true
				if len(p.Samples) < 5 {
					p.Samples = append(p.Samples, v)
				}
			}
		}
		p.Distinct = len(seen)
		profiles[col] = p
	}
	return profiles, nil
}

// Close 关闭文件
func (w *Workbook) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
