package models

import (
	"time"

	"gorm.io/gorm"
)

// Book 书籍表
// IsApproved 与 IsApprovalSent 不会同时为 true：
// 审核通过时清除送审标记，送审时清除通过标记
type Book struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                    // 主键
	Name           string         `gorm:"index;not null" json:"name"`                              // 书名
	AuthorName     string         `gorm:"index;not null" json:"author_name"`                       // 作者
	Price          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`     // 价格
	Quantity       int            `gorm:"not null;default:0" json:"quantity"`                      // 库存数量
	Description    string         `gorm:"type:text" json:"description"`                            // 简介
	ImageURL       string         `gorm:"default:''" json:"image_url"`                             // 封面地址
	SellerID       uint           `gorm:"index;not null" json:"seller_id"`                         // 卖家（vendor）ID
	IsApproved     bool           `gorm:"index;default:false" json:"is_approved"`                  // 是否审核通过
	IsApprovalSent bool           `gorm:"index;default:false" json:"is_approval_sent"`             // 是否已送审
	RejectionCount int            `gorm:"default:0" json:"rejection_count"`                        // 被驳回次数
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                 // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	Seller  *User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"` // 卖家信息
	Reviews []Review `gorm:"foreignKey:BookID" json:"reviews,omitempty"`  // 评价列表
}

// TableName 指定表名
func (Book) TableName() string {
	return "books"
}
