package model

import "strings"

// 空白状态处理策略
const (
	BlankAlwaysNew = "always_new" // 空白一律视为 new
	BlankFirstOnly = "first_only" // 仅当该件无其他厂区状态时视为 new，否则剔除
)

// UnknownPartID 空/无效原始件号映射到的哨兵键，永不与真实件合并
const UnknownPartID = "UNKNOWN"

// PipelineOptions 管线配置，每次调用显式传入，运行期间只读
type PipelineOptions struct {
	IDColumn            string   `json:"idColumn"`            // MasterBOM 件号列（按名称模式匹配）
	DescriptionColumn   string   `json:"descriptionColumn"`   // 厂区状态列截止列
	SupplierColumn      string   `json:"supplierColumn"`      // 供应商名称列
	PrioritySupplier    string   `json:"prioritySupplier"`    // 重复裁决优先供应商
	RequiredColumns     []string `json:"requiredColumns"`     // 完整度比较所用的关键列
	ActiveCodes         []string `json:"activeCodes"`         // active 状态码集合
	InactiveCodes       []string `json:"inactiveCodes"`       // inactive 状态码集合
	DuplicateCodes      []string `json:"duplicateCodes"`      // 直接判定 duplicate 的状态码
	BlankPolicy         string   `json:"blankPolicy"`         // always_new / first_only
	DateColumnKeywords  []string `json:"dateColumnKeywords"`  // 日期列名关键词
	PercentKeywords     []string `json:"percentKeywords"`     // 百分比列名关键词
	SeparatorCharacters string   `json:"separatorCharacters"` // 件号标准化时剔除的分隔符
	TextColumns         []string `json:"textColumns"`         // 做 Title Case 的名称类列
}

// DefaultOptions 默认管线配置
func DefaultOptions() PipelineOptions {
	return PipelineOptions{
		IDColumn:          "YAZAKI PN",
		DescriptionColumn: "Item Description",
		SupplierColumn:    "Supplier Name",
		PrioritySupplier:  "",
		RequiredColumns: []string{
			"Item Description", "Supplier Name", "Supplier PN", "PSW",
		},
		ActiveCodes:    []string{"X"},
		InactiveCodes:  []string{"D"},
		DuplicateCodes: []string{"0"},
		BlankPolicy:    BlankAlwaysNew,
		DateColumnKeywords: []string{
			"date", "time", "approved", "promised", "due",
			"created", "updated", "modified", "sop", "milestone",
		},
		PercentKeywords:     []string{"%", "percent", "available", "complete"},
		SeparatorCharacters: "-_./\\",
		TextColumns: []string{
			"Supplier Name", "Original Supplier Name",
			"Item Description", "Part Specification",
		},
	}
}

// HasActive 判断状态码是否属于 active 集合（大小写不敏感）
func (o PipelineOptions) HasActive(code string) bool   { return containsFold(o.ActiveCodes, code) }
func (o PipelineOptions) HasInactive(code string) bool { return containsFold(o.InactiveCodes, code) }
func (o PipelineOptions) HasDuplicate(code string) bool {
	return containsFold(o.DuplicateCodes, code)
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
