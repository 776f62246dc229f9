package model

// HeaderCollision 表头归一化后的冲突记录
type HeaderCollision struct {
	Original string `json:"original"`
	Renamed  string `json:"renamed"`
}

// ClampedPercent 被截断到 [0,1] 的百分比值
type ClampedPercent struct {
	Column string  `json:"column"`
	Row    int     `json:"row"`
	Raw    string  `json:"raw"`
	Value  float64 `json:"value"`
}

// UnparsedValue 无法解析的单元格（日期/百分比），置为缺失而非报错
type UnparsedValue struct {
	Column string `json:"column"`
	Row    int    `json:"row"`
	Raw    string `json:"raw"`
}

// UnknownStatus 未识别的原始状态码，归入 other 类
type UnknownStatus struct {
	PartIDStd    string `json:"partIdStd"`
	ProjectPlant string `json:"projectPlant"`
	Raw          string `json:"raw"`
}

// DuplicateResolution 重复件裁决记录：胜出行 + 被标记行 + 裁决依据
type DuplicateResolution struct {
	PartIDStd string `json:"partIdStd"`
	WinnerRow int    `json:"winnerRow"`
	LoserRows []int  `json:"loserRows"`
	Reason    string `json:"reason"` // priority_supplier/completeness/input_order
}

// Report 处理报告：各阶段非致命问题与修改计数统一收敛到此
type Report struct {
	HeaderCollisions     []HeaderCollision     `json:"headerCollisions,omitempty"`
	ModifiedCells        map[string]int        `json:"modifiedCells,omitempty"`
	ClampedPercents      []ClampedPercent      `json:"clampedPercents,omitempty"`
	UnparsedPercents     []UnparsedValue       `json:"unparsedPercents,omitempty"`
	UnparsedDates        []UnparsedValue       `json:"unparsedDates,omitempty"`
	DateColumns          []string              `json:"dateColumns,omitempty"`
	UnknownStatusCodes   []UnknownStatus       `json:"unknownStatusCodes,omitempty"`
	DuplicateResolutions []DuplicateResolution `json:"duplicateResolutions,omitempty"`
	IntegrityWarnings    []string              `json:"integrityWarnings,omitempty"`
	UnknownPartRows      int                   `json:"unknownPartRows"`
	ExcludedBlankRows    int                   `json:"excludedBlankRows"`
}

// NewReport 创建空报告
func NewReport() *Report {
	return &Report{
		ModifiedCells: map[string]int{},
	}
}

// CountModified 累加某列被修改的单元格数
func (r *Report) CountModified(column string, n int) {
	if n > 0 {
		r.ModifiedCells[column] += n
	}
}

// AddIntegrityWarning 追加引用完整性警告
func (r *Report) AddIntegrityWarning(msg string) {
	r.IntegrityWarnings = append(r.IntegrityWarnings, msg)
}
