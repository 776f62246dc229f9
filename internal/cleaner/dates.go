package cleaner

import (
	"strconv"
	"strings"
	"time"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// LayoutSerial Excel 序列日期的伪布局标记
const LayoutSerial = "serial"

// 严格格式按优先级尝试，要求按原布局重渲染与输入一致（往返可逆）
var strictLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
}

// 宽松格式兜底，不保证往返
var looseLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"2.1.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"January 2, 2006",
}

// excelEpoch Excel 序列日期起点（1900 日期系统，含闰年 bug 偏移）
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDate 解析日期值，返回命中的布局
// 先严格格式，再宽松格式，最后尝试 Excel 序列数；全部失败 ok=false
func ParseDate(raw string) (d time.Time, layout string, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, "", false
	}

	for _, l := range strictLayouts {
		t, err := time.Parse(l, s)
		if err == nil && t.Format(l) == s {
			return t, l, true
		}
	}

	for _, l := range looseLayouts {
		t, err := time.Parse(l, s)
		if err == nil {
			return t, l, true
		}
	}

	// Excel 序列数：1900 日期系统下天数，限定在合理年份区间
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 20000 && f <= 80000 {
		return excelEpoch.AddDate(0, 0, int(f)), LayoutSerial, true
	}

	return time.Time{}, "", false
}

// RenderDate 按命中的布局重渲染日期
func RenderDate(d time.Time, layout string) string {
	if layout == LayoutSerial {
		return strconv.Itoa(int(d.Sub(excelEpoch).Hours() / 24))
	}
	return d.Format(layout)
}

// DetectDateColumns 识别候选日期列
// 仅对列名命中关键词的列做内容采样，避免数值/文本列误判
func DetectDateColumns(t *model.Table, opts model.PipelineOptions) []int {
	var out []int

	for col, name := range t.Columns {
		lower := strings.ToLower(name)
		hit := false
		for _, kw := range opts.DateColumnKeywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}

		// 采样前 10 个非空值，过半可解析才算日期列
		sampled, parsed := 0, 0
		for row := 0; row < len(t.Rows) && sampled < 10; row++ {
			raw := t.Cell(row, col)
			if raw == "" {
				continue
			}
			sampled++
			if _, _, ok := ParseDate(raw); ok {
				parsed++
			}
		}
		if sampled > 0 && parsed*2 > sampled {
			out = append(out, col)
		}
	}

	return out
}

// ExpandDateColumn 为日期列追加派生列并返回逐行解析结果
// 追加 <name>_date/_year/_month/_day/_qtr/_week；解析失败置缺失并记入报告
func ExpandDateColumn(t *model.Table, col int, report *model.Report) []time.Time {
	name := t.Columns[col]
	n := len(t.Rows)

	parsed := make([]time.Time, n)
	dates := make([]string, n)
	years := make([]string, n)
	months := make([]string, n)
	days := make([]string, n)
	qtrs := make([]string, n)
	weeks := make([]string, n)

	for row := 0; row < n; row++ {
		raw := t.Cell(row, col)
		if raw == "" {
			continue
		}
		d, _, ok := ParseDate(raw)
		if !ok {
			report.UnparsedDates = append(report.UnparsedDates, model.UnparsedValue{
				Column: name, Row: row, Raw: raw,
			})
			continue
		}
		parsed[row] = d
		_, isoWeek := d.ISOWeek()
		dates[row] = d.Format("2006-01-02")
		years[row] = strconv.Itoa(d.Year())
		months[row] = strconv.Itoa(int(d.Month()))
		days[row] = strconv.Itoa(d.Day())
		qtrs[row] = strconv.Itoa((int(d.Month())-1)/3 + 1)
		weeks[row] = strconv.Itoa(isoWeek)
	}

	t.AppendColumn(name+"_date", dates)
	t.AppendColumn(name+"_year", years)
	t.AppendColumn(name+"_month", months)
	t.AppendColumn(name+"_day", days)
	t.AppendColumn(name+"_qtr", qtrs)
	t.AppendColumn(name+"_week", weeks)

	report.DateColumns = append(report.DateColumns, name)
	return parsed
}
