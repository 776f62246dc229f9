package model

// Table 内存中的表格载荷：有序列名 + 字符串单元格
// 管线核心只操作该结构，文件读写在边界层完成
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTable 创建空表
func NewTable(name string, columns []string) *Table {
	return &Table{
		Name:    name,
		Columns: append([]string{}, columns...),
		Rows:    [][]string{},
	}
}

// ColIndex 按列名查找列索引，找不到返回 -1
func (t *Table) ColIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell 读取单元格，越界返回空串
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// SetCell 写入单元格，必要时补齐短行
func (t *Table) SetCell(row, col int, val string) {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return
	}
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = val
}

// AppendColumn 追加一列，values 不足时以空串补齐
func (t *Table) AppendColumn(name string, values []string) {
	col := len(t.Columns)
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		t.SetCell(i, col, v)
	}
}

// Column 取整列值，长度等于行数
func (t *Table) Column(col int) []string {
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cell(i, col)
	}
	return out
}

// Clone 深拷贝，管线各阶段不得修改输入表
func (t *Table) Clone() *Table {
	c := NewTable(t.Name, t.Columns)
	c.Rows = make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		c.Rows[i] = append([]string{}, r...)
	}
	return c
}
