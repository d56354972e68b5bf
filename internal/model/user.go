package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Email       string    `gorm:"size:100;unique;not null" json:"email"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	Username    string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	DisplayName string    `gorm:"size:100" json:"displayName"`
	Bio         string    `gorm:"size:255" json:"bio"`
	Avatar      string    `gorm:"size:255" json:"avatar"`
	Disabled    bool      `gorm:"default:false" json:"disabled"`
	LastLogin   time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// UserBrief 公开的用户摘要信息（搜索结果、会话对方等场景使用）
// swagger:model UserBrief
type UserBrief struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
	}
}
