package cleaner

import (
	"strconv"
	"strings"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// 非数值但业务含义明确的百分比写法
// 缺失类写法（n/a、none、not available）统一走缺失路径，不映射数值
var percentWords = map[string]float64{
	"complete": 1,
	"done":     1,
	"finished": 1,
}

// ParsePercent 解析异构百分比写法到 [0,1]
// 带 % 号一律除以 100；无符号且大于 1 按 0-100 口径除以 100；小于等于 1 原样接受
// 越界结果截断到边界并由 clamped 标记；无法解析时 ok=false，调用方置缺失
func ParsePercent(raw string) (val float64, ok bool, clamped bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false, false
	}

	if v, found := percentWords[strings.ToLower(s)]; found {
		return v, true, false
	}

	hasSign := strings.Contains(s, "%")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, false
	}

	if hasSign {
		f /= 100
	} else if f > 1 {
		f /= 100
	}

	if f < 0 {
		return 0, true, true
	}
	if f > 1 {
		return 1, true, true
	}
	return f, true, false
}

// FormatPercent 百分比的规范表内表示
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ConvertPercentColumns 按列名关键词识别百分比列并整列转换
// 截断与解析失败逐条记入报告，返回被转换的列名
func ConvertPercentColumns(t *model.Table, opts model.PipelineOptions, report *model.Report) []string {
	var converted []string

	for col, name := range t.Columns {
		lower := strings.ToLower(name)
		isPercent := false
		for _, kw := range opts.PercentKeywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				isPercent = true
				break
			}
		}
		if !isPercent {
			continue
		}

		for row := range t.Rows {
			raw := t.Cell(row, col)
			if raw == "" {
				continue
			}
			v, ok, clamped := ParsePercent(raw)
			if !ok {
				report.UnparsedPercents = append(report.UnparsedPercents, model.UnparsedValue{
					Column: name, Row: row, Raw: raw,
				})
				t.SetCell(row, col, "")
				continue
			}
			if clamped {
				report.ClampedPercents = append(report.ClampedPercents, model.ClampedPercent{
					Column: name, Row: row, Raw: raw, Value: v,
				})
			}
			t.SetCell(row, col, FormatPercent(v))
		}
		converted = append(converted, name)
	}

	return converted
}
