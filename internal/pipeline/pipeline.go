package pipeline

import (
	"github.com/Storbiic/ETL-Dashboard/internal/cleaner"
	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// Pipeline MasterBOM/Status 清洗分类管线
// 固定拓扑的单次批处理：配置运行期间只读，输入表不被修改
type Pipeline struct {
	opts model.PipelineOptions
}

// New 创建管线
func New(opts model.PipelineOptions) *Pipeline {
	return &Pipeline{opts: opts}
}

// Run 执行完整管线，产出五张规范化表与处理报告
//
// 仅 SchemaError 致命；其余问题收敛到报告并继续。
// 同样输入重复运行产出逐字节一致。
func (p *Pipeline) Run(master, status *model.Table) (*model.PipelineResult, error) {
	report := model.NewReport()

	masterClean := master.Clone()
	masterClean.Name = "masterbom_clean"
	statusClean := status.Clone()
	statusClean.Name = "status_clean"

	// 表头归一化 + 必需列校验（致命）
	cleaner.NormalizeHeaders(masterClean, report)
	cleaner.NormalizeHeaders(statusClean, report)
	if err := cleaner.RequireColumns(masterClean, p.opts.IDColumn); err != nil {
		return nil, err
	}

	// 厂区状态列按位置确定，须在追加派生列之前
	plantCols := PlantColumns(masterClean, p.opts)

	// 文本规范化与百分比转换
	cleaner.StandardizeTable(masterClean, p.opts, report)
	cleaner.StandardizeTable(statusClean, p.opts, report)
	cleaner.CleanProjectNames(statusClean, report)
	cleaner.ConvertPercentColumns(masterClean, p.opts, report)
	cleaner.ConvertPercentColumns(statusClean, p.opts, report)

	// 件号标准化
	if err := cleaner.AddStandardizedIDs(masterClean, p.opts, report); err != nil {
		return nil, err
	}

	// 日期列识别与展开，顺带收集维度种子
	var roles []DateRole
	for _, t := range []*model.Table{masterClean, statusClean} {
		for _, col := range cleaner.DetectDateColumns(t, p.opts) {
			name := t.Columns[col]
			parsed := cleaner.ExpandDateColumn(t, col, report)
			roles = append(roles, DateRole{Role: name, Dates: parsed})
		}
	}

	// 重复裁决先行：落选行标记写回主表，分类时随行带出
	winners := Resolve(masterClean, p.opts, report)
	plantStatus := Classify(masterClean, plantCols, p.opts, report)
	facts := BuildFactParts(masterClean, winners, p.opts, report)
	plantStatus = ValidatePlantStatus(masterClean, plantStatus, report)

	return &model.PipelineResult{
		MasterClean: masterClean,
		StatusClean: statusClean,
		PlantStatus: plantStatus,
		FactParts:   facts,
		DimDates:    BuildDimDates(roles),
		Report:      report,
	}, nil
}
