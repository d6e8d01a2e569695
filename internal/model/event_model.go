package model

import (
	"time"
)

// EventModel 账本事件记录，读侧按此失效缓存
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EventType string `json:"event_type" gorm:"not null;index"`
	Campaign  string `json:"campaign" gorm:"size:66;index"`
	Donor     string `json:"donor" gorm:"size:66"`
	Data      string `json:"data" gorm:"type:text"`
	Processed bool   `json:"processed" gorm:"default:false"`
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
