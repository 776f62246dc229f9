package cleaner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

var (
	reSpaces    = regexp.MustCompile(`\s+`)
	reBadPunct  = regexp.MustCompile("[\"'`;]")
	reCtrlChars = regexp.MustCompile(`[\r\n\t]+`)
)

// NormalizeHeader 规范化单个表头：去首尾空白、压缩内部空白、剔除无效标点
// 不强制小写，业务标签需保持可读
func NormalizeHeader(name string) string {
	name = reCtrlChars.ReplaceAllString(name, " ")
	name = reBadPunct.ReplaceAllString(name, "")
	name = reSpaces.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// NormalizeHeaders 规范化整表表头，保持顺序
// 归一化后的重名通过数字后缀消歧，冲突全部记入报告
func NormalizeHeaders(t *model.Table, report *model.Report) {
	seen := map[string]int{}
	out := make([]string, len(t.Columns))

	for i, col := range t.Columns {
		name := NormalizeHeader(col)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}

		if n, ok := seen[name]; ok {
			renamed := fmt.Sprintf("%s (%d)", name, n+1)
			for {
				if _, taken := seen[renamed]; !taken {
					break
				}
				n++
				renamed = fmt.Sprintf("%s (%d)", name, n+1)
			}
			seen[name] = n + 1
			seen[renamed] = 1
			report.HeaderCollisions = append(report.HeaderCollisions, model.HeaderCollision{
				Original: col,
				Renamed:  renamed,
			})
			out[i] = renamed
			continue
		}

		seen[name] = 1
		out[i] = name
	}

	t.Columns = out
}

// FindColumn 按名称模式定位列：先精确匹配（大小写不敏感），再子串匹配
func FindColumn(t *model.Table, pattern string) int {
	want := strings.ToUpper(strings.TrimSpace(pattern))
	for i, c := range t.Columns {
		if strings.ToUpper(strings.TrimSpace(c)) == want {
			return i
		}
	}
	for i, c := range t.Columns {
		if strings.Contains(strings.ToUpper(c), want) {
			return i
		}
	}
	return -1
}

// RequireColumns 校验必需列，缺失即返回 SchemaError（致命）
func RequireColumns(t *model.Table, patterns ...string) error {
	var missing []string
	for _, p := range patterns {
		if FindColumn(t, p) < 0 {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return &model.SchemaError{Missing: missing}
	}
	return nil
}
