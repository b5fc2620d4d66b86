package models

import (
	"time"

	"gorm.io/gorm"
)

// WishListItem 心愿单项
type WishListItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                   // 主键
	UserID    uint           `gorm:"not null;uniqueIndex:idx_wish_user_book" json:"user_id"` // 用户ID
	BookID    uint           `gorm:"not null;uniqueIndex:idx_wish_user_book" json:"book_id"` // 书籍ID
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间

	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"` // 关联书籍
}

// TableName 指定表名
func (WishListItem) TableName() string {
	return "wish_list_items"
}
