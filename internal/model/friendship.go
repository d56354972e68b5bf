package model

// 好友关系状态
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipDeclined = "declined"
)

// Friendship 好友关系边（有向：requester 发起，addressee 处理）
// pending -> accepted / declined 均为终态；删除即解除好友
type Friendship struct {
	UUIDBase
	RequesterID uint   `gorm:"index;not null" json:"requesterId"`
	Requester   User   `gorm:"foreignKey:RequesterID;constraint:false" json:"requester,omitempty"`
	AddresseeID uint   `gorm:"index;not null" json:"addresseeId"`
	Addressee   User   `gorm:"foreignKey:AddresseeID;constraint:false" json:"addressee,omitempty"`
	Status      string `gorm:"type:enum('pending','accepted','declined');default:'pending'" json:"status"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// Involves 判断用户是否为该关系边的一方
func (f *Friendship) Involves(userID uint) bool {
	return f.RequesterID == userID || f.AddresseeID == userID
}

// OtherSide 返回关系边中对方的用户 ID
func (f *Friendship) OtherSide(userID uint) uint {
	if f.RequesterID == userID {
		return f.AddresseeID
	}
	return f.RequesterID
}
