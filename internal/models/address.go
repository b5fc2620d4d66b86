package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货地址表
// 每个用户每种地址类型仅一条记录，重复提交走更新
type Address struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                        // 主键
	UserID     uint           `gorm:"not null;uniqueIndex:idx_address_user_type" json:"user_id"`   // 用户ID
	Type       string         `gorm:"type:varchar(20);not null;uniqueIndex:idx_address_user_type" json:"type"` // 地址类型（home/work）
	Street     string         `gorm:"not null" json:"street"`                                      // 街道
	City       string         `gorm:"not null" json:"city"`                                        // 城市
	State      string         `gorm:"default:''" json:"state"`                                     // 省/州
	PostalCode string         `gorm:"type:varchar(20);default:''" json:"postal_code"`              // 邮编
	Country    string         `gorm:"default:''" json:"country"`                                   // 国家
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
