package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"songday_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const maxCacheMessages = 50 // 每个会话缓存最近50条消息

type ChatRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewChatRepository(db *gorm.DB, rdb *redis.Client) *ChatRepository {
	return &ChatRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func (r *ChatRepository) CreateConversation(conv *model.Conversation) error {
	return r.DB.Create(conv).Error
}

func (r *ChatRepository) AddMember(member *model.ConversationMember) error {
	err := r.DB.Create(member).Error
	if err == nil && r.Redis != nil {
		r.Redis.Del(r.ctx, fmt.Sprintf("chat:relation:user_convs:%d", member.UserID))
	}
	return err
}

func (r *ChatRepository) GetMember(convID string, userID uint) (*model.ConversationMember, error) {
	var member model.ConversationMember
	err := r.DB.Where("conversation_id = ? AND user_id = ?", convID, userID).First(&member).Error
	return &member, err
}

// FindPrivateConversation 查找两个用户共同参与的私聊会话
func (r *ChatRepository) FindPrivateConversation(userID1, userID2 uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.DB.Table("conversations").
		Joins("JOIN conversation_members cm1 ON cm1.conversation_id = conversations.id").
		Joins("JOIN conversation_members cm2 ON cm2.conversation_id = conversations.id").
		Where("cm1.user_id = ?", userID1).
		Where("cm2.user_id = ?", userID2).
		First(&conv).Error

	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetUserConversationIDs 获取用户参与的所有会话 ID
func (r *ChatRepository) GetUserConversationIDs(userID uint) ([]string, error) {
	var ids []string
	err := r.DB.Table("conversation_members").
		Where("user_id = ?", userID).
		Pluck("conversation_id", &ids).Error
	return ids, err
}

// GetUserConversationIDsCached 获取用户参与的所有会话 ID (带缓存)
func (r *ChatRepository) GetUserConversationIDsCached(userID uint) ([]string, error) {
	if r.Redis == nil {
		return r.GetUserConversationIDs(userID)
	}

	key := fmt.Sprintf("chat:relation:user_convs:%d", userID)
	cached, err := r.Redis.SMembers(r.ctx, key).Result()
	if err == nil && len(cached) > 0 {
		return cached, nil
	}

	ids, err := r.GetUserConversationIDs(userID)
	if err == nil && len(ids) > 0 {
		pipe := r.Redis.Pipeline()
		for _, id := range ids {
			pipe.SAdd(r.ctx, key, id)
		}
		pipe.Expire(r.ctx, key, 24*time.Hour)
		pipe.Exec(r.ctx)
	}
	return ids, err
}

func (r *ChatRepository) GetConversations(ids []string) ([]model.Conversation, error) {
	var convs []model.Conversation
	if len(ids) == 0 {
		return convs, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&convs).Error
	return convs, err
}

// GetCounterpartMembers 获取指定会话中除了某个用户以外的成员记录
func (r *ChatRepository) GetCounterpartMembers(convIDs []string, excludeUserID uint) ([]model.ConversationMember, error) {
	var members []model.ConversationMember
	if len(convIDs) == 0 {
		return members, nil
	}
	err := r.DB.Where("conversation_id IN ? AND user_id != ?", convIDs, excludeUserID).
		Find(&members).Error
	return members, err
}

// GetLatestMessages 获取每个会话中最新的一条消息
func (r *ChatRepository) GetLatestMessages(convIDs []string) ([]model.Message, error) {
	var msgs []model.Message
	if len(convIDs) == 0 {
		return msgs, nil
	}
	err := r.DB.Raw(`
		SELECT m.* FROM messages m
		INNER JOIN (
			SELECT conversation_id, MAX(created_at) AS last_at
			FROM messages
			WHERE conversation_id IN ?
			GROUP BY conversation_id
		) latest ON latest.conversation_id = m.conversation_id AND latest.last_at = m.created_at
		ORDER BY m.created_at DESC
	`, convIDs).Scan(&msgs).Error
	return msgs, err
}

func (r *ChatRepository) CreateMessage(msg *model.Message) error {
	if msg.ID == "" {
		msg.ID = model.GenerateUUID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		// 发消息时同步推进会话的活跃时间
		return tx.Model(&model.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("updated_at", msg.CreatedAt).Error
	})

	if err == nil && r.Redis != nil {
		go r.cacheMessage(msg)
	}
	return err
}

func (r *ChatRepository) cacheMessage(msg *model.Message) {
	// 确保Sender信息已加载
	if msg.Sender.ID == 0 {
		r.DB.Preload("Sender").First(msg, "id = ?", msg.ID)
	}

	key := fmt.Sprintf("chat:cache:%s", msg.ConversationID)
	data, _ := json.Marshal(msg)

	pipe := r.Redis.Pipeline()
	pipe.LPush(r.ctx, key, data)
	pipe.LTrim(r.ctx, key, 0, maxCacheMessages-1)
	pipe.Expire(r.ctx, key, 24*time.Hour)
	pipe.Exec(r.ctx)
}

// GetMessages 按时间倒序分页拉取会话消息，第一页优先走缓存
func (r *ChatRepository) GetMessages(convID string, limit, offset int) ([]model.Message, error) {
	if offset == 0 && r.Redis != nil {
		key := fmt.Sprintf("chat:cache:%s", convID)
		cached, err := r.Redis.LRange(r.ctx, key, 0, int64(limit-1)).Result()
		if err == nil && len(cached) >= limit {
			msgs := make([]model.Message, 0, len(cached))
			for _, item := range cached {
				var m model.Message
				if err := json.Unmarshal([]byte(item), &m); err == nil {
					msgs = append(msgs, m)
				}
			}
			if len(msgs) >= limit {
				return msgs, nil
			}
		}
	}

	var msgs []model.Message
	err := r.DB.Preload("Sender").
		Where("conversation_id = ?", convID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error
	return msgs, err
}
