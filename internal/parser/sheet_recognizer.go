package parser

import (
	"strings"
)

// SheetType Sheet 类型
type SheetType string

const (
	SheetTypeMasterBOM SheetType = "masterbom"
	SheetTypeStatus    SheetType = "status"
	SheetTypeUnknown   SheetType = "unknown"
)

// SheetRecognitionResult Sheet 识别结果
type SheetRecognitionResult struct {
	SheetName  string    `json:"sheetName"`
	SheetType  SheetType `json:"sheetType"`
	Confidence float64   `json:"confidence"` // 置信度 0-1
}

// SheetRecognizer Sheet 类型识别器
type SheetRecognizer struct{}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer() *SheetRecognizer {
	return &SheetRecognizer{}
}

// MasterBOM 表的特征列关键词
var masterBOMFields = []string{
	"pn", "part", "item description", "supplier", "psw", "far", "imds",
}

// Status 表的特征列关键词
var statusFields = []string{
	"oem", "project", "ppap", "milestone", "managed by", "total part",
	"psw available", "drawing available",
}

// Recognize 识别 Sheet 类型
// 按列名关键词命中率打分，表名关键词加权
func (r *SheetRecognizer) Recognize(sheetName string, columnNames []string) SheetRecognitionResult {
	normalized := make([]string, len(columnNames))
	for i, col := range columnNames {
		normalized[i] = strings.ToLower(strings.TrimSpace(col))
	}

	masterScore := r.score(sheetName, normalized, "bom", masterBOMFields)
	statusScore := r.score(sheetName, normalized, "status", statusFields)

	result := SheetRecognitionResult{SheetName: sheetName, SheetType: SheetTypeUnknown}
	switch {
	case masterScore >= 0.5 && masterScore >= statusScore:
		result.SheetType = SheetTypeMasterBOM
		result.Confidence = masterScore
	case statusScore >= 0.5:
		result.SheetType = SheetTypeStatus
		result.Confidence = statusScore
	}
	return result
}

// score 命中特征字段的比例，表名命中直接加 0.5
func (r *SheetRecognizer) score(sheetName string, columns []string, nameToken string, fields []string) float64 {
	hits := 0
	for _, f := range fields {
		for _, col := range columns {
			if strings.Contains(col, f) {
				hits++
				break
			}
		}
	}

	score := float64(hits) / float64(len(fields))
	if strings.Contains(strings.ToLower(sheetName), nameToken) {
		score += 0.5
	}
	if score > 1 {
		score = 1
	}
	return score
}
