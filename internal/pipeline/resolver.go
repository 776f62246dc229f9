package pipeline

import (
	"strings"

	"github.com/Storbiic/ETL-Dashboard/internal/cleaner"
	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// ColIsDuplicate 重复裁决后追加到 MasterBOM 清洗表的标记列
const ColIsDuplicate = "is_duplicate"

// Resolve 对标准化件号冲突的多行做重复裁决
//
// 裁决顺序：优先供应商 → 必需字段完整度 → 输入顺序（稳定确定）。
// 落选行保留并标记 is_duplicate，审计要求任何输入行都不删除。
// 返回 part_id_std 到胜出行号的映射，哨兵键 UNKNOWN 不参与裁决。
func Resolve(master *model.Table, opts model.PipelineOptions, report *model.Report) map[string]int {
	stdCol := master.ColIndex(cleaner.ColPartIDStd)
	if stdCol < 0 {
		return map[string]int{}
	}
	supplierCol := cleaner.FindColumn(master, opts.SupplierColumn)

	requiredCols := make([]int, 0, len(opts.RequiredColumns))
	for _, name := range opts.RequiredColumns {
		if idx := cleaner.FindColumn(master, name); idx >= 0 {
			requiredCols = append(requiredCols, idx)
		}
	}

	// 按首次出现顺序分组
	var order []string
	groups := map[string][]int{}
	for row := range master.Rows {
		std := master.Cell(row, stdCol)
		if std == model.UnknownPartID {
			continue
		}
		if _, ok := groups[std]; !ok {
			order = append(order, std)
		}
		groups[std] = append(groups[std], row)
	}

	winners := make(map[string]int, len(order))
	dupFlags := make([]string, len(master.Rows))
	for i := range dupFlags {
		dupFlags[i] = "false"
	}

	for _, std := range order {
		rows := groups[std]
		if len(rows) == 1 {
			winners[std] = rows[0]
			continue
		}

		winner, reason := pickWinner(master, rows, supplierCol, requiredCols, opts)
		winners[std] = winner

		losers := make([]int, 0, len(rows)-1)
		for _, r := range rows {
			if r != winner {
				dupFlags[r] = "true"
				losers = append(losers, r)
			}
		}

		report.DuplicateResolutions = append(report.DuplicateResolutions, model.DuplicateResolution{
			PartIDStd: std,
			WinnerRow: winner,
			LoserRows: losers,
			Reason:    reason,
		})
	}

	master.AppendColumn(ColIsDuplicate, dupFlags)
	return winners
}

// pickWinner 在冲突行中选出规范行
func pickWinner(master *model.Table, rows []int, supplierCol int, requiredCols []int, opts model.PipelineOptions) (int, string) {
	// 规则一：供应商名命中配置的优先供应商
	if opts.PrioritySupplier != "" && supplierCol >= 0 {
		want := strings.ToUpper(opts.PrioritySupplier)
		for _, r := range rows {
			name := strings.ToUpper(master.Cell(r, supplierCol))
			if strings.Contains(name, want) {
				return r, "priority_supplier"
			}
		}
	}

	// 规则二：必需字段缺失最少；规则三：仍并列时取输入顺序最先
	best := rows[0]
	bestMissing := missingCount(master, rows[0], requiredCols)
	allEqual := true
	for _, r := range rows[1:] {
		m := missingCount(master, r, requiredCols)
		if m != bestMissing {
			allEqual = false
		}
		if m < bestMissing {
			best, bestMissing = r, m
		}
	}
	if allEqual {
		return rows[0], "input_order"
	}
	return best, "completeness"
}

func missingCount(master *model.Table, row int, cols []int) int {
	n := 0
	for _, c := range cols {
		if strings.TrimSpace(master.Cell(row, c)) == "" {
			n++
		}
	}
	return n
}
