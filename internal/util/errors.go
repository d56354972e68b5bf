package util

import "errors"

var (
	ErrUserNotFound          = errors.New("用户不存在")
	ErrEmailRegistered       = errors.New("该邮箱已被注册")
	ErrUsernameTaken         = errors.New("该用户名已被占用")
	ErrFriendshipNotFound    = errors.New("好友申请不存在")
	ErrNotAddressee          = errors.New("无权处理此申请")
	ErrAlreadyHandled        = errors.New("申请已处理")
	ErrSelfFriendship        = errors.New("不能添加自己为好友")
	ErrDuplicateRequest      = errors.New("已存在好友关系或待处理的申请")
	ErrNotConversationMember = errors.New("非会话成员")
	ErrSongNotFound          = errors.New("歌曲不存在")
	ErrNotSongOwner          = errors.New("只能操作自己分享的歌曲")
	ErrPermissionDenied      = errors.New("permission denied")
)
