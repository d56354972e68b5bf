package repository

import (
	"songday_backend/internal/model"

	"gorm.io/gorm"
)

type SongRepository struct {
	DB *gorm.DB
}

func NewSongRepository(db *gorm.DB) *SongRepository {
	return &SongRepository{DB: db}
}

func (r *SongRepository) Create(song *model.Song) error {
	return r.DB.Create(song).Error
}

func (r *SongRepository) FindByID(id string) (*model.Song, error) {
	var song model.Song
	err := r.DB.Preload("User").First(&song, "id = ?", id).Error
	return &song, err
}

// List 全站分享流，按分享时间倒序
func (r *SongRepository) List(limit, offset int) ([]model.Song, int64, error) {
	var songs []model.Song
	var total int64

	db := r.DB.Model(&model.Song{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&songs).Error
	return songs, total, err
}

func (r *SongRepository) ListByUser(userID uint, limit, offset int) ([]model.Song, int64, error) {
	var songs []model.Song
	var total int64

	db := r.DB.Model(&model.Song{}).Where("user_id = ?", userID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&songs).Error
	return songs, total, err
}

// ListByUsers 好友分享流
func (r *SongRepository) ListByUsers(userIDs []uint, limit, offset int) ([]model.Song, int64, error) {
	var songs []model.Song
	var total int64

	if len(userIDs) == 0 {
		return songs, 0, nil
	}

	db := r.DB.Model(&model.Song{}).Where("user_id IN ?", userIDs)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&songs).Error
	return songs, total, err
}

func (r *SongRepository) Update(song *model.Song) error {
	return r.DB.Save(song).Error
}

func (r *SongRepository) Delete(id string) error {
	return r.DB.Delete(&model.Song{}, "id = ?", id).Error
}
