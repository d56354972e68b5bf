package service

import (
	"errors"
	"fmt"
	"sort"
	"songday_backend/internal/model"
	"songday_backend/internal/repository"
	"songday_backend/internal/util"
	"strings"
	"time"

	"gorm.io/gorm"
)

type ChatService struct {
	ChatRepo *repository.ChatRepository
	UserRepo *repository.UserRepository
	Notify   *NotificationService
}

func NewChatService(chatRepo *repository.ChatRepository, userRepo *repository.UserRepository, notify *NotificationService) *ChatService {
	return &ChatService{
		ChatRepo: chatRepo,
		UserRepo: userRepo,
		Notify:   notify,
	}
}

// ConversationSummary 会话列表条目：对方信息 + 最新一条消息
// 对方用户缺失（数据异常）时 OtherUser 为空，前端按未知用户处理
type ConversationSummary struct {
	ID          string           `json:"id"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	OtherUser   *model.UserBrief `json:"otherUser"`
	LastMessage *model.Message   `json:"lastMessage"`
}

// buildConversationSummaries 组装会话摘要并按最新消息时间倒序排列
// latest 按时间倒序给出，每个会话只取第一条；counterparts 中找不到用户档案时摘要仍然保留
func buildConversationSummaries(
	convs []model.Conversation,
	counterparts []model.ConversationMember,
	profiles []model.User,
	latest []model.Message,
) []ConversationSummary {
	profileByID := make(map[uint]*model.User, len(profiles))
	for i := range profiles {
		profileByID[profiles[i].ID] = &profiles[i]
	}

	counterpartByConv := make(map[string]uint, len(counterparts))
	for _, m := range counterparts {
		if _, ok := counterpartByConv[m.ConversationID]; !ok {
			counterpartByConv[m.ConversationID] = m.UserID
		}
	}

	lastByConv := make(map[string]*model.Message, len(latest))
	for i := range latest {
		m := &latest[i]
		if _, ok := lastByConv[m.ConversationID]; !ok {
			lastByConv[m.ConversationID] = m
		}
	}

	summaries := make([]ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary := ConversationSummary{
			ID:        conv.ID,
			CreatedAt: conv.CreatedAt,
			UpdatedAt: conv.UpdatedAt,
		}

		if uid, ok := counterpartByConv[conv.ID]; ok {
			if p, ok := profileByID[uid]; ok {
				brief := p.Brief()
				summary.OtherUser = &brief
			}
		}

		summary.LastMessage = lastByConv[conv.ID]
		summaries = append(summaries, summary)
	}

	// 有消息的按最新消息时间排，没有消息的按会话创建时间排
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaryTime(summaries[i]).After(summaryTime(summaries[j]))
	})

	return summaries
}

func summaryTime(s ConversationSummary) time.Time {
	if s.LastMessage != nil {
		return s.LastMessage.CreatedAt
	}
	return s.CreatedAt
}

// ListConversations 获取当前用户的会话列表
func (s *ChatService) ListConversations(userID uint) ([]ConversationSummary, error) {
	convIDs, err := s.ChatRepo.GetUserConversationIDsCached(userID)
	if err != nil {
		return nil, err
	}
	if len(convIDs) == 0 {
		return []ConversationSummary{}, nil
	}

	convs, err := s.ChatRepo.GetConversations(convIDs)
	if err != nil {
		return nil, err
	}

	counterparts, err := s.ChatRepo.GetCounterpartMembers(convIDs, userID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(counterparts))
	seen := make(map[uint]bool, len(counterparts))
	for _, m := range counterparts {
		if !seen[m.UserID] {
			seen[m.UserID] = true
			userIDs = append(userIDs, m.UserID)
		}
	}

	profiles, err := s.UserRepo.FindByIDs(userIDs)
	if err != nil {
		return nil, err
	}

	latest, err := s.ChatRepo.GetLatestMessages(convIDs)
	if err != nil {
		return nil, err
	}

	return buildConversationSummaries(convs, counterparts, profiles, latest), nil
}

// GetOrCreatePrivateChat 获取与指定用户的私聊会话，不存在则创建
func (s *ChatService) GetOrCreatePrivateChat(userID, otherID uint) (*model.Conversation, error) {
	if userID == otherID {
		return nil, errors.New("不能和自己创建会话")
	}

	if _, err := s.UserRepo.FindByID(otherID); err != nil {
		return nil, util.ErrUserNotFound
	}

	conv, err := s.ChatRepo.FindPrivateConversation(userID, otherID)
	if err == nil {
		return conv, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	conv = &model.Conversation{}
	if err := s.ChatRepo.CreateConversation(conv); err != nil {
		return nil, err
	}

	for _, uid := range []uint{userID, otherID} {
		member := &model.ConversationMember{
			ConversationID: conv.ID,
			UserID:         uid,
		}
		if err := s.ChatRepo.AddMember(member); err != nil {
			return nil, err
		}
	}

	return conv, nil
}

func (s *ChatService) SendMessage(convID string, senderID uint, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("消息内容不能为空")
	}

	if _, err := s.ChatRepo.GetMember(convID, senderID); err != nil {
		return nil, util.ErrNotConversationMember
	}

	msg := &model.Message{
		ConversationID: convID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.ChatRepo.CreateMessage(msg); err != nil {
		return nil, err
	}

	// 给会话里的其他成员投递通知
	go func() {
		members, err := s.ChatRepo.GetCounterpartMembers([]string{convID}, senderID)
		if err != nil {
			return
		}
		sender, err := s.UserRepo.FindByID(senderID)
		if err != nil {
			return
		}
		for _, m := range members {
			s.Notify.Notify(m.UserID, model.NotifyNewMessage,
				"新消息",
				fmt.Sprintf("%s 给你发来了一条消息", sender.DisplayName))
		}
	}()

	return msg, nil
}

func (s *ChatService) GetMessages(convID string, userID uint, limit, offset int) ([]model.Message, error) {
	if _, err := s.ChatRepo.GetMember(convID, userID); err != nil {
		return nil, util.ErrNotConversationMember
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.ChatRepo.GetMessages(convID, limit, offset)
}
