package model

// KVEntry 键值存储表，对应 kv_entries
//
// Key 为完整字符串键（如 planning_<shop>_<week>），Kind/Shop/WeekKey 冗余存储，
// 用于按类型枚举与计数，避免前缀匹配。
type KVEntry struct {
	Key     string   `gorm:"type:varchar(255);primaryKey"         json:"key"`
	Kind    string   `gorm:"type:varchar(32);not null;index:idx_kv_entries_kind_shop"  json:"kind"`
	Shop    string   `gorm:"type:varchar(128);not null;default:'';index:idx_kv_entries_kind_shop" json:"shop"`
	WeekKey string   `gorm:"type:varchar(32);not null;default:''" json:"week_key"`
	Value   JSONText `gorm:"type:text;not null"                   json:"value"`
	BaseModel
}

// TableName 指定表名
func (KVEntry) TableName() string { return "kv_entries" }
