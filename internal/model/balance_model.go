package model

import (
	"time"
)

// BalanceModel 地址的 native-unit 余额
type BalanceModel struct {
	Address   string    `json:"address" gorm:"primaryKey;size:66"`
	Amount    int64     `json:"amount" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 自定义表名
func (BalanceModel) TableName() string {
	return "ledger_balance"
}
