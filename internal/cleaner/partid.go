package cleaner

import (
	"strings"
	"unicode"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// 追加到 MasterBOM 的标准化件号列
const (
	ColPartIDRaw = "part_id_raw"
	ColPartIDStd = "part_id_std"
)

// StandardizePartID 从原始件号派生规范键
// 纯函数：去空白、统一大写、剔除配置的分隔符；空值映射到哨兵键 UNKNOWN
func StandardizePartID(raw string, separators string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.UnknownPartID
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || strings.ContainsRune(separators, r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}

	if b.Len() == 0 {
		return model.UnknownPartID
	}
	return b.String()
}

// AddStandardizedIDs 定位件号列并追加 part_id_raw / part_id_std 两列
// 哨兵键行数计入报告，单独跟踪，不参与重复裁决
func AddStandardizedIDs(t *model.Table, opts model.PipelineOptions, report *model.Report) error {
	idCol := FindColumn(t, opts.IDColumn)
	if idCol < 0 {
		return &model.SchemaError{Missing: []string{opts.IDColumn}}
	}

	raws := make([]string, len(t.Rows))
	stds := make([]string, len(t.Rows))
	unknown := 0
	for row := range t.Rows {
		raw := t.Cell(row, idCol)
		raws[row] = raw
		stds[row] = StandardizePartID(raw, opts.SeparatorCharacters)
		if stds[row] == model.UnknownPartID {
			unknown++
		}
	}

	t.AppendColumn(ColPartIDRaw, raws)
	t.AppendColumn(ColPartIDStd, stds)
	report.UnknownPartRows = unknown
	return nil
}
