package cleaner

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

var titleCaser = cases.Title(language.English)

// 大小写不敏感的哨兵值词表，统一到固定词汇
var sentinelValues = map[string]string{
	"yes":   "Yes",
	"y":     "Yes",
	"true":  "Yes",
	"no":    "No",
	"n":     "No",
	"false": "No",
	"nan":   "",
	"none":  "",
	"null":  "",
	"n/a":   "",
	"na":    "",
	"-":     "",
}

// StandardizeCell 规范化单元格文本：去边缘空白、压缩内部空白、展开转义换行、归一哨兵值
func StandardizeCell(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	// 电子表格里常见字面 "\n" 转义串，展开后按空白折叠
	s = strings.ReplaceAll(s, `\n`, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if v, ok := sentinelValues[strings.ToLower(s)]; ok {
		return v
	}
	return s
}

// StandardizeTable 对全表文本做规范化，名称类列额外做 Title Case
// 每列被修改的单元格数计入报告（仅用于审计）
func StandardizeTable(t *model.Table, opts model.PipelineOptions, report *model.Report) {
	nameCols := map[int]bool{}
	for _, name := range opts.TextColumns {
		if idx := FindColumn(t, name); idx >= 0 {
			nameCols[idx] = true
		}
	}

	for col := range t.Columns {
		modified := 0
		for row := range t.Rows {
			raw := t.Cell(row, col)
			if raw == "" {
				continue
			}
			val := StandardizeCell(raw)
			if nameCols[col] && val != "" {
				val = titleCaser.String(strings.ToLower(val))
			}
			if val != raw {
				t.SetCell(row, col, val)
				modified++
			}
		}
		report.CountModified(t.Columns[col], modified)
	}
}
