package repository

import (
	"context"
	"fmt"
	"songday_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type FriendshipRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewFriendshipRepository(db *gorm.DB, rdb *redis.Client) *FriendshipRepository {
	return &FriendshipRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func (r *FriendshipRepository) Create(f *model.Friendship) error {
	return r.DB.Create(f).Error
}

func (r *FriendshipRepository) FindByID(id string) (*model.Friendship, error) {
	var f model.Friendship
	err := r.DB.Preload("Requester").Preload("Addressee").First(&f, "id = ?", id).Error
	return &f, err
}

// ListByUser 获取用户作为发起方或接收方的所有关系记录
func (r *FriendshipRepository) ListByUser(userID uint) ([]model.Friendship, error) {
	var edges []model.Friendship
	err := r.DB.Preload("Requester").Preload("Addressee").
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&edges).Error
	return edges, err
}

// FindBetween 查找两个用户之间未被拒绝的关系（方向不限）
func (r *FriendshipRepository) FindBetween(userA, userB uint) (*model.Friendship, error) {
	var f model.Friendship
	err := r.DB.Where(
		"((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)) AND status != ?",
		userA, userB, userB, userA, model.FriendshipDeclined,
	).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FriendshipRepository) UpdateStatus(id string, status string) error {
	var f model.Friendship
	if err := r.DB.First(&f, "id = ?", id).Error; err != nil {
		return err
	}

	err := r.DB.Model(&model.Friendship{}).Where("id = ?", id).Update("status", status).Error
	if err == nil {
		r.invalidateFriendCache(f.RequesterID, f.AddresseeID)
	}
	return err
}

func (r *FriendshipRepository) Delete(id string) error {
	var f model.Friendship
	if err := r.DB.First(&f, "id = ?", id).Error; err != nil {
		return err
	}

	err := r.DB.Delete(&model.Friendship{}, "id = ?", id).Error
	if err == nil {
		r.invalidateFriendCache(f.RequesterID, f.AddresseeID)
	}
	return err
}

// GetFriendIDs 获取已接受的好友 ID 列表（双向）
func (r *FriendshipRepository) GetFriendIDs(userID uint) ([]uint, error) {
	var edges []model.Friendship
	err := r.DB.Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
		userID, userID, model.FriendshipAccepted).
		Find(&edges).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.OtherSide(userID))
	}
	return ids, nil
}

// GetFriendIDsCached 获取好友 ID 列表 (带缓存)
func (r *FriendshipRepository) GetFriendIDsCached(userID uint) ([]uint, error) {
	if r.Redis == nil {
		return r.GetFriendIDs(userID)
	}

	key := fmt.Sprintf("social:friends:%d", userID)
	cached, err := r.Redis.SMembers(r.ctx, key).Result()
	if err == nil && len(cached) > 0 {
		var ids []uint
		for _, s := range cached {
			var id uint
			fmt.Sscanf(s, "%d", &id)
			if id > 0 {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	// 缓存失效，回源数据库
	ids, err := r.GetFriendIDs(userID)
	if err == nil && len(ids) > 0 {
		pipe := r.Redis.Pipeline()
		for _, id := range ids {
			pipe.SAdd(r.ctx, key, id)
		}
		pipe.Expire(r.ctx, key, 24*time.Hour)
		pipe.Exec(r.ctx)
	} else if err == nil {
		// 防止缓存穿透：存一个哨兵值并设置短过期时间
		r.Redis.SAdd(r.ctx, key, 0)
		r.Redis.Expire(r.ctx, key, 5*time.Minute)
	}
	return ids, err
}

func (r *FriendshipRepository) invalidateFriendCache(userIDs ...uint) {
	if r.Redis == nil {
		return
	}
	for _, id := range userIDs {
		r.Redis.Del(r.ctx, fmt.Sprintf("social:friends:%d", id))
	}
}
