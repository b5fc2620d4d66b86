package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
// 创建后除 Status 外不再修改，订单项为下单时的书籍快照
type Order struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo     string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	UserID      uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	Status      string         `gorm:"index;not null" json:"status"`                              // 订单状态
	TotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额
	AddressID   *uint          `gorm:"index" json:"address_id,omitempty"`                         // 收货地址ID（可为空）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`    // 订单项
	Address *Address    `gorm:"foreignKey:AddressID" json:"address,omitempty"` // 收货地址
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
