package pipeline

import (
	"strings"

	"github.com/Storbiic/ETL-Dashboard/internal/cleaner"
	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// PlantColumns 确定厂区状态列：件号列与描述列之间的全部列
// 描述列缺失时，其余列全部视作厂区列（与源表结构约定一致）
func PlantColumns(t *model.Table, opts model.PipelineOptions) []int {
	idIdx := cleaner.FindColumn(t, opts.IDColumn)
	if idIdx < 0 {
		return nil
	}
	descIdx := cleaner.FindColumn(t, opts.DescriptionColumn)
	if descIdx < 0 || descIdx <= idIdx {
		descIdx = len(t.Columns)
	}

	var out []int
	for i := idIdx + 1; i < descIdx; i++ {
		out = append(out, i)
	}
	return out
}

// isBlankStatus 空白状态码及其常见变体
func isBlankStatus(code string) bool {
	switch code {
	case "", "NAN", "NONE", "N/A":
		return true
	}
	return false
}

// Classify 将厂区状态列展开为长表并逐行分类
//
// 显式两遍设计：第一遍统计每个件的非空状态存在性，第二遍据此定案分类，
// 避免隐式迭代状态。空白码的含义取决于同件的其他厂区记录（见 BlankPolicy）。
func Classify(master *model.Table, plantCols []int, opts model.PipelineOptions, report *model.Report) []model.PlantItemStatus {
	stdCol := master.ColIndex(cleaner.ColPartIDStd)
	rawCol := master.ColIndex(cleaner.ColPartIDRaw)
	if stdCol < 0 || rawCol < 0 || len(plantCols) == 0 {
		return nil
	}
	// 重复裁决的落选行标记（裁决先于分类执行时存在）
	dupCol := master.ColIndex(ColIsDuplicate)

	// 行主序展开，保持输入顺序确定性；落选行的长表记录整行带重复标记，
	// 保证任何输入行都保留在长表中
	rows := make([]model.PlantItemStatus, 0, len(master.Rows)*len(plantCols))
	for r := range master.Rows {
		loser := dupCol >= 0 && master.Cell(r, dupCol) == "true"
		for _, c := range plantCols {
			rows = append(rows, model.PlantItemStatus{
				PartIDStd:    master.Cell(r, stdCol),
				PartIDRaw:    master.Cell(r, rawCol),
				ProjectPlant: master.Columns[c],
				RawStatus:    master.Cell(r, c),
				IsDuplicate:  loser,
			})
		}
	}

	// 第一遍：各件的非空状态记录数
	presence := map[string]int{}
	for i := range rows {
		if !isBlankStatus(normalizeCode(rows[i].RawStatus)) {
			presence[rows[i].PartIDStd]++
		}
	}

	// 第二遍：按件分组，组内按输入顺序定案
	type groupState struct {
		seenPairs  map[string]bool // 厂区+状态码 已出现
		activeSeen bool            // active 标记已出现
	}
	states := map[string]*groupState{}

	for i := range rows {
		row := &rows[i]
		code := normalizeCode(row.RawStatus)

		st := states[row.PartIDStd]
		if st == nil {
			st = &groupState{seenPairs: map[string]bool{}}
			states[row.PartIDStd] = st
		}

		if isBlankStatus(code) {
			if opts.BlankPolicy == model.BlankFirstOnly && presence[row.PartIDStd] > 0 {
				row.StatusClass = model.StatusExcluded
				report.ExcludedBlankRows++
			} else {
				row.StatusClass = model.StatusNew
				row.IsNew = true
			}
			continue
		}

		pairKey := row.ProjectPlant + "\x00" + code
		switch {
		case opts.HasDuplicate(code):
			row.StatusClass = model.StatusDuplicate
			row.IsDuplicate = true
		case opts.HasActive(code):
			row.StatusClass = model.StatusActive
			// 同件重复出现 active 标记或重复 (厂区, 状态码) 即为重复记录
			if st.activeSeen || st.seenPairs[pairKey] {
				row.IsDuplicate = true
			}
			st.activeSeen = true
		case opts.HasInactive(code):
			row.StatusClass = model.StatusInactive
			if st.seenPairs[pairKey] {
				row.IsDuplicate = true
			}
		default:
			row.StatusClass = model.StatusOther
			report.UnknownStatusCodes = append(report.UnknownStatusCodes, model.UnknownStatus{
				PartIDStd:    row.PartIDStd,
				ProjectPlant: row.ProjectPlant,
				Raw:          row.RawStatus,
			})
		}
		st.seenPairs[pairKey] = true
	}

	ComputeRollups(rows)
	return rows
}

// ComputeRollups 按件重算四项统计，永不独立赋值
// n_active/n_inactive/n_new 按基础分类计数，n_duplicate 按重复标记计数
func ComputeRollups(rows []model.PlantItemStatus) {
	type tally struct{ active, inactive, new_, dup int }
	counts := map[string]*tally{}

	for i := range rows {
		t := counts[rows[i].PartIDStd]
		if t == nil {
			t = &tally{}
			counts[rows[i].PartIDStd] = t
		}
		switch rows[i].StatusClass {
		case model.StatusActive:
			t.active++
		case model.StatusInactive:
			t.inactive++
		case model.StatusNew:
			t.new_++
		}
		if rows[i].IsDuplicate || rows[i].StatusClass == model.StatusDuplicate {
			t.dup++
		}
	}

	for i := range rows {
		t := counts[rows[i].PartIDStd]
		rows[i].NActive = t.active
		rows[i].NInactive = t.inactive
		rows[i].NNew = t.new_
		rows[i].NDuplicate = t.dup
	}
}

func normalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
