package model

// 通知类型
const (
	NotifyFriendRequest   = "friend_request"
	NotifyRequestAccepted = "request_accepted"
	NotifyNewMessage      = "new_message"
)

// Notification 站内通知，发送方写入后即不关心结果
type Notification struct {
	UUIDBase
	UserID uint   `gorm:"index;not null" json:"userId"`
	Kind   string `gorm:"size:50;not null" json:"kind"`
	Title  string `gorm:"size:255" json:"title"`
	Body   string `gorm:"size:512" json:"body"`
	Read   bool   `gorm:"default:false;index" json:"read"`
}

func (Notification) TableName() string {
	return "notifications"
}
