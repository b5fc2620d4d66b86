package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
// 书名、作者、价格均为下单时快照，后续书籍变更不影响历史订单
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                               // 主键
	OrderID    uint           `gorm:"index;not null" json:"order_id"`                     // 订单ID
	BookID     uint           `gorm:"index;not null" json:"book_id"`                      // 书籍ID
	BookName   string         `gorm:"not null" json:"book_name"`                          // 书名快照
	AuthorName string         `gorm:"not null" json:"author_name"`                        // 作者快照
	Price      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价快照
	Quantity   int            `gorm:"not null" json:"quantity"`                           // 数量
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
