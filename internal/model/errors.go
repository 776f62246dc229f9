package model

import (
	"fmt"
	"strings"
)

// SchemaError 必需列缺失，致命错误：中止整个管线
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: required columns missing: %s", strings.Join(e.Missing, ", "))
}

// IntegrityError 表间引用悬空，可恢复：剔除问题行并记入报告
type IntegrityError struct {
	Table   string
	Key     string
	Message string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity error in %s (%s): %s", e.Table, e.Key, e.Message)
}
