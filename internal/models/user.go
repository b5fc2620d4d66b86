package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                           // 主键
	UserName     string         `gorm:"uniqueIndex;not null" json:"user_name"`          // 用户名
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`              // 邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                              // 密码哈希（不返回给前端）
	Role         string         `gorm:"index;not null;default:'customer'" json:"role"`  // 角色（admin/vendor/customer）
	FirstName    string         `gorm:"default:''" json:"first_name"`                   // 名
	LastName     string         `gorm:"default:''" json:"last_name"`                    // 姓
	MobileNumber string         `gorm:"type:varchar(32);default:''" json:"mobile_number"` // 手机号
	ImageURL     string         `gorm:"default:''" json:"image_url"`                    // 头像地址
	IsVerified   bool           `gorm:"default:false" json:"is_verified"`               // 邮箱是否已验证
	TokenVersion uint64         `gorm:"not null;default:0" json:"-"`                    // Token 版本（用于全量失效）
	LastLoginAt  *time.Time     `json:"last_login_at"`                                  // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                        // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间

	Books []Book `gorm:"foreignKey:SellerID" json:"books,omitempty"` // 名下书籍（仅 vendor）
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
