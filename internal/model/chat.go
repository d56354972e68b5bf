package model

import (
	"time"
)

// Conversation 私聊会话（当前仅支持 1 对 1）
type Conversation struct {
	UUIDBase
	Members  []ConversationMember `gorm:"foreignKey:ConversationID" json:"members"`
	Messages []Message            `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// ConversationMember 会话成员关系
type ConversationMember struct {
	ConversationID string    `gorm:"primaryKey;type:varchar(36)" json:"conversationId"`
	UserID         uint      `gorm:"primaryKey;index" json:"userId"` // 按用户查会话的入口索引
	User           User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JoinedAt       time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (ConversationMember) TableName() string {
	return "conversation_members"
}

// Message 消息记录，仅追加不修改
type Message struct {
	UUIDBase
	ConversationID string    `gorm:"index;index:idx_conv_created;type:varchar(36);not null" json:"conversationId"`
	CreatedAt      time.Time `gorm:"index:idx_conv_created" json:"createdAt"` // (conversation_id, created_at) 组合索引用于最新消息查询
	SenderID       uint      `gorm:"index;not null" json:"senderId"`
	Sender         User      `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Content        string    `gorm:"type:text;not null" json:"content"`
}

func (Message) TableName() string {
	return "messages"
}
