package pipeline

import (
	"fmt"
	"strings"

	"github.com/Storbiic/ETL-Dashboard/internal/cleaner"
	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// 事实表取值列
const (
	colDescription = "Item Description"
	colSupplierPN  = "Supplier PN"
	colPSW         = "PSW"
	colHandling    = "Handling Manual"
	colFARStatus   = "FAR Status"
	colIMDSStatus  = "IMDS STATUS"
)

// BuildFactParts 组装事实表：每个 part_id_std 恰好一行，取重复裁决的胜出行
// 哨兵键 UNKNOWN 不产出事实行
func BuildFactParts(master *model.Table, winners map[string]int, opts model.PipelineOptions, report *model.Report) []model.FactPart {
	stdCol := master.ColIndex(cleaner.ColPartIDStd)
	rawCol := master.ColIndex(cleaner.ColPartIDRaw)
	if stdCol < 0 || rawCol < 0 {
		return nil
	}

	descCol := cleaner.FindColumn(master, colDescription)
	supplierCol := cleaner.FindColumn(master, opts.SupplierColumn)
	supplierPNCol := cleaner.FindColumn(master, colSupplierPN)
	pswCol := cleaner.FindColumn(master, colPSW)
	handlingCol := cleaner.FindColumn(master, colHandling)
	farCol := cleaner.FindColumn(master, colFARStatus)
	imdsCol := cleaner.FindColumn(master, colIMDSStatus)

	cellAt := func(row, col int) string {
		if col < 0 {
			return ""
		}
		return master.Cell(row, col)
	}

	var facts []model.FactPart
	emitted := map[string]bool{}

	for row := range master.Rows {
		std := master.Cell(row, stdCol)
		if std == model.UnknownPartID || emitted[std] {
			continue
		}
		winner, ok := winners[std]
		if !ok {
			continue
		}
		emitted[std] = true

		psw := cellAt(winner, pswCol)
		handling := cellAt(winner, handlingCol)
		far := cellAt(winner, farCol)
		imds := cellAt(winner, imdsCol)

		facts = append(facts, model.FactPart{
			PartIDStd:      std,
			PartIDRaw:      master.Cell(winner, rawCol),
			Description:    cellAt(winner, descCol),
			SupplierName:   cellAt(winner, supplierCol),
			SupplierPN:     cellAt(winner, supplierPNCol),
			PSW:            psw,
			HandlingManual: handling,
			FARStatus:      far,
			IMDSStatus:     imds,
			PSWOK:          psw != "",
			HasHandling:    handling != "",
			FAROK:          containsFold(far, "OK"),
			IMDSOK:         containsFold(imds, "Yes"),
			SourceRow:      winner,
		})
	}

	return facts
}

// ValidatePlantStatus 长表一致性校验
//
// 引用校验：每条长表记录的 part_id_std 必须存在于清洗后 MasterBOM，
// 悬空引用降级为警告并剔除该行，不中止管线。
// 复合键校验：未标记重复的 (part_id_std, project_plant) 不得重复，
// 违例行剔除并告警。剔除后重算各件统计。
func ValidatePlantStatus(master *model.Table, rows []model.PlantItemStatus, report *model.Report) []model.PlantItemStatus {
	stdCol := master.ColIndex(cleaner.ColPartIDStd)
	known := map[string]bool{}
	if stdCol >= 0 {
		for row := range master.Rows {
			known[master.Cell(row, stdCol)] = true
		}
	}

	out := rows[:0:0]
	seen := map[string]bool{}
	dropped := false

	for _, r := range rows {
		if !known[r.PartIDStd] {
			report.AddIntegrityWarning((&model.IntegrityError{
				Table:   "plant_item_status",
				Key:     fmt.Sprintf("(%s, %s)", r.PartIDStd, r.ProjectPlant),
				Message: "part not found in cleaned MasterBOM, row excluded",
			}).Error())
			dropped = true
			continue
		}
		if !r.IsDuplicate && r.StatusClass != model.StatusExcluded && r.StatusClass != model.StatusDuplicate {
			key := r.PartIDStd + "\x00" + r.ProjectPlant
			if seen[key] {
				report.AddIntegrityWarning((&model.IntegrityError{
					Table:   "plant_item_status",
					Key:     fmt.Sprintf("(%s, %s)", r.PartIDStd, r.ProjectPlant),
					Message: "composite key duplicated, row excluded",
				}).Error())
				dropped = true
				continue
			}
			seen[key] = true
		}
		out = append(out, r)
	}

	if dropped {
		ComputeRollups(out)
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToUpper(s), strings.ToUpper(sub))
}
