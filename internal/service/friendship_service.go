package service

import (
	"fmt"
	"songday_backend/internal/model"
	"songday_backend/internal/repository"
	"songday_backend/internal/util"
	"strings"
	"time"

	"gorm.io/gorm"
)

const searchResultLimit = 20

type FriendshipService struct {
	FriendRepo *repository.FriendshipRepository
	UserRepo   *repository.UserRepository
	Notify     *NotificationService
}

func NewFriendshipService(friendRepo *repository.FriendshipRepository, userRepo *repository.UserRepository, notify *NotificationService) *FriendshipService {
	return &FriendshipService{
		FriendRepo: friendRepo,
		UserRepo:   userRepo,
		Notify:     notify,
	}
}

// FriendshipEntry 好友关系条目，User 为对方的摘要信息
type FriendshipEntry struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	User      model.UserBrief `json:"user"`
}

// FriendshipOverview 当前用户的好友全景：已接受的好友、收到的申请、发出的申请
type FriendshipOverview struct {
	Friends  []FriendshipEntry `json:"friends"`
	Incoming []FriendshipEntry `json:"incoming"`
	Outgoing []FriendshipEntry `json:"outgoing"`
}

// partitionFriendships 把关系记录按状态和方向划分到三个列表，已拒绝的不展示
func partitionFriendships(edges []model.Friendship, userID uint) *FriendshipOverview {
	overview := &FriendshipOverview{
		Friends:  []FriendshipEntry{},
		Incoming: []FriendshipEntry{},
		Outgoing: []FriendshipEntry{},
	}

	for _, e := range edges {
		entry := FriendshipEntry{
			ID:        e.ID,
			Status:    e.Status,
			CreatedAt: e.CreatedAt,
		}

		switch e.Status {
		case model.FriendshipAccepted:
			if e.RequesterID == userID {
				entry.User = e.Addressee.Brief()
			} else {
				entry.User = e.Requester.Brief()
			}
			overview.Friends = append(overview.Friends, entry)
		case model.FriendshipPending:
			if e.AddresseeID == userID {
				entry.User = e.Requester.Brief()
				overview.Incoming = append(overview.Incoming, entry)
			} else if e.RequesterID == userID {
				entry.User = e.Addressee.Brief()
				overview.Outgoing = append(overview.Outgoing, entry)
			}
		}
	}

	return overview
}

func (s *FriendshipService) ListFriendships(userID uint) (*FriendshipOverview, error) {
	edges, err := s.FriendRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return partitionFriendships(edges, userID), nil
}

func (s *FriendshipService) SendRequest(requesterID, addresseeID uint) (*model.Friendship, error) {
	if requesterID == addresseeID {
		return nil, util.ErrSelfFriendship
	}

	addressee, err := s.UserRepo.FindByID(addresseeID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	// 已有好友关系或待处理申请时拒绝重复发起
	existing, err := s.FriendRepo.FindBetween(requesterID, addresseeID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrDuplicateRequest
	}

	f := &model.Friendship{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      model.FriendshipPending,
	}
	if err := s.FriendRepo.Create(f); err != nil {
		return nil, err
	}

	if requester, err := s.UserRepo.FindByID(requesterID); err == nil {
		go s.Notify.Notify(addressee.ID, model.NotifyFriendRequest,
			"新的好友申请",
			fmt.Sprintf("%s 请求添加你为好友", requester.DisplayName))
	}
	return f, nil
}

func (s *FriendshipService) Respond(edgeID string, callerID uint, accept bool) error {
	f, err := s.FriendRepo.FindByID(edgeID)
	if err != nil {
		return util.ErrFriendshipNotFound
	}

	if f.AddresseeID != callerID {
		return util.ErrNotAddressee
	}

	if f.Status != model.FriendshipPending {
		return util.ErrAlreadyHandled
	}

	if accept {
		if err := s.FriendRepo.UpdateStatus(edgeID, model.FriendshipAccepted); err != nil {
			return err
		}
		go s.Notify.Notify(f.RequesterID, model.NotifyRequestAccepted,
			"好友申请已通过",
			fmt.Sprintf("%s 接受了你的好友申请", f.Addressee.DisplayName))
		return nil
	}
	return s.FriendRepo.UpdateStatus(edgeID, model.FriendshipDeclined)
}

// Remove 解除好友关系或撤回申请，记录不存在时视为已删除
func (s *FriendshipService) Remove(edgeID string, callerID uint) error {
	f, err := s.FriendRepo.FindByID(edgeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	if !f.Involves(callerID) {
		return util.ErrPermissionDenied
	}

	return s.FriendRepo.Delete(edgeID)
}

// SearchUsers 按昵称或用户名搜索可添加的用户，空查询直接返回空结果
func (s *FriendshipService) SearchUsers(callerID uint, query string) ([]model.UserBrief, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.UserBrief{}, nil
	}

	users, err := s.UserRepo.SearchUsers(query, callerID, searchResultLimit)
	if err != nil {
		return nil, err
	}

	results := make([]model.UserBrief, 0, len(users))
	for i := range users {
		results = append(results, users[i].Brief())
	}
	return results, nil
}
