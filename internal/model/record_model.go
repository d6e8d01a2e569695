package model

import (
	"time"
)

// RecordModel 账本记录行：地址 -> 带类型标签的记录字节。
// Address 是主键，重复创建由唯一约束拒绝，这正是捐赠标记去重的机制。
type RecordModel struct {
	Address   string    `json:"address" gorm:"primaryKey;size:66"`
	Kind      string    `json:"kind" gorm:"not null;size:16;index"`
	Data      []byte    `json:"data" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 自定义表名
func (RecordModel) TableName() string {
	return "ledger_record"
}
