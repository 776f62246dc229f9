package cleaner

import (
	"regexp"
	"strings"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// ColProject Status 表的项目名列
const ColProject = "Project"

// 项目名里冗余的前后缀写法
var projectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^project\s*:?\s*`),
	regexp.MustCompile(`(?i)\s*-\s*project$`),
	regexp.MustCompile(`\s*\(.*\)$`), // 括号备注
}

// CleanProjectName 剔除项目名的冗余前后缀与括号备注
func CleanProjectName(raw string) string {
	s := strings.TrimSpace(raw)
	for _, re := range projectPatterns {
		s = re.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// CleanProjectNames 规范化 Project 列，列不存在时不处理
// 修改数并入该列的修改计数
func CleanProjectNames(t *model.Table, report *model.Report) {
	col := t.ColIndex(ColProject)
	if col < 0 {
		return
	}

	modified := 0
	for row := range t.Rows {
		raw := t.Cell(row, col)
		if raw == "" {
			continue
		}
		if v := CleanProjectName(raw); v != raw {
			t.SetCell(row, col, v)
			modified++
		}
	}
	report.CountModified(ColProject, modified)
}
