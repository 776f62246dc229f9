package model

// 状态分类结果
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusNew       = "new"
	StatusDuplicate = "duplicate"
	StatusOther     = "other"
	StatusExcluded  = "excluded" // 空白且该件已有其他厂区记录（first_only 策略）
)

// PlantItemStatus 厂区-件号长表记录
type PlantItemStatus struct {
	PartIDStd    string `json:"partIdStd"`
	PartIDRaw    string `json:"partIdRaw"`
	ProjectPlant string `json:"projectPlant"`
	RawStatus    string `json:"rawStatus"`
	StatusClass  string `json:"statusClass"`
	IsDuplicate  bool   `json:"isDuplicate"`
	IsNew        bool   `json:"isNew"`
	NActive      int    `json:"nActive"`
	NInactive    int    `json:"nInactive"`
	NNew         int    `json:"nNew"`
	NDuplicate   int    `json:"nDuplicate"`
}

// FactPart 事实表记录：每个 part_id_std 一行（重复裁决后的胜出行）
type FactPart struct {
	PartIDStd      string `json:"partIdStd"`
	PartIDRaw      string `json:"partIdRaw"`
	Description    string `json:"description"`
	SupplierName   string `json:"supplierName"`
	SupplierPN     string `json:"supplierPn"`
	PSW            string `json:"psw"`
	HandlingManual string `json:"handlingManual"`
	FARStatus      string `json:"farStatus"`
	IMDSStatus     string `json:"imdsStatus"`
	PSWOK          bool   `json:"pswOk"`
	HasHandling    bool   `json:"hasHandlingManual"`
	FAROK          bool   `json:"farOk"`
	IMDSOK         bool   `json:"imdsOk"`
	SourceRow      int    `json:"sourceRow"` // 胜出行在清洗后 MasterBOM 中的行号
}

// DimDate 日期维度记录，键为 (date, role)
type DimDate struct {
	Date      string `json:"date"` // 2006-01-02
	Role      string `json:"role"` // 来源语义列名
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	Quarter   int    `json:"quarter"`
	Week      int    `json:"week"` // ISO 周
	Weekday   int    `json:"weekday"`
	MonthName string `json:"monthName"`
	DayName   string `json:"dayName"`
}

// PipelineResult 管线产出：五张规范化表 + 处理报告
type PipelineResult struct {
	MasterClean *Table            `json:"masterClean"`
	StatusClean *Table            `json:"statusClean"`
	PlantStatus []PlantItemStatus `json:"plantStatus"`
	FactParts   []FactPart        `json:"factParts"`
	DimDates    []DimDate         `json:"dimDates"`
	Report      *Report           `json:"report"`
}
