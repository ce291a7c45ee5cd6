package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ── JSON 文本列 ──

// JSONText 以 TEXT 存储的 JSON 文档，实现 GORM Scanner/Valuer 接口。
// 不在数据库层解析内容，postgres 与 sqlite 使用同一列类型。
type JSONText []byte

// Scan 读取 TEXT/BLOB 列
func (j *JSONText) Scan(src interface{}) error {
	if src == nil {
		*j = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSONText(v)
	default:
		return fmt.Errorf("JSONText.Scan: unsupported type %T", src)
	}
	return nil
}

// Value 写入为字符串
func (j JSONText) Value() (driver.Value, error) {
	if j == nil {
		return "null", nil
	}
	return string(j), nil
}

// BaseModel 通用审计字段
type BaseModel struct {
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
