package service

import (
	"errors"
	"songday_backend/internal/model"
	"songday_backend/internal/repository"
	"songday_backend/internal/util"
	"strings"
)

type SongService struct {
	SongRepo   *repository.SongRepository
	FriendRepo *repository.FriendshipRepository
}

func NewSongService(songRepo *repository.SongRepository, friendRepo *repository.FriendshipRepository) *SongService {
	return &SongService{
		SongRepo:   songRepo,
		FriendRepo: friendRepo,
	}
}

type SongInput struct {
	Title         string `json:"title" binding:"required"`
	Artist        string `json:"artist" binding:"required"`
	Album         string `json:"album"`
	Genre         string `json:"genre"`
	Description   string `json:"description"`
	SpotifyURL    string `json:"spotifyUrl"`
	YoutubeURL    string `json:"youtubeUrl"`
	AppleMusicURL string `json:"appleMusicUrl"`
}

func (s *SongService) Create(userID uint, input *SongInput) (*model.Song, error) {
	title := strings.TrimSpace(input.Title)
	artist := strings.TrimSpace(input.Artist)
	if title == "" || artist == "" {
		return nil, errors.New("歌名和歌手不能为空")
	}

	song := &model.Song{
		UserID:        userID,
		Title:         title,
		Artist:        artist,
		Album:         input.Album,
		Genre:         input.Genre,
		Description:   input.Description,
		SpotifyURL:    input.SpotifyURL,
		YoutubeURL:    input.YoutubeURL,
		AppleMusicURL: input.AppleMusicURL,
	}
	if err := s.SongRepo.Create(song); err != nil {
		return nil, err
	}
	return song, nil
}

// Feed 全站分享流
func (s *SongService) Feed(limit, offset int) ([]model.Song, int64, error) {
	return s.SongRepo.List(limit, offset)
}

// FriendsFeed 好友分享流，包含自己分享的歌
func (s *SongService) FriendsFeed(userID uint, limit, offset int) ([]model.Song, int64, error) {
	friendIDs, err := s.FriendRepo.GetFriendIDsCached(userID)
	if err != nil {
		return nil, 0, err
	}
	return s.SongRepo.ListByUsers(append(friendIDs, userID), limit, offset)
}

func (s *SongService) ListByUser(userID uint, limit, offset int) ([]model.Song, int64, error) {
	return s.SongRepo.ListByUser(userID, limit, offset)
}

func (s *SongService) GetByID(id string) (*model.Song, error) {
	song, err := s.SongRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrSongNotFound
	}
	return song, nil
}

func (s *SongService) Update(id string, userID uint, input *SongInput) (*model.Song, error) {
	song, err := s.SongRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrSongNotFound
	}
	if song.UserID != userID {
		return nil, util.ErrNotSongOwner
	}

	song.Title = strings.TrimSpace(input.Title)
	song.Artist = strings.TrimSpace(input.Artist)
	song.Album = input.Album
	song.Genre = input.Genre
	song.Description = input.Description
	song.SpotifyURL = input.SpotifyURL
	song.YoutubeURL = input.YoutubeURL
	song.AppleMusicURL = input.AppleMusicURL

	if err := s.SongRepo.Update(song); err != nil {
		return nil, err
	}
	return song, nil
}

func (s *SongService) Delete(id string, userID uint) error {
	song, err := s.SongRepo.FindByID(id)
	if err != nil {
		return util.ErrSongNotFound
	}
	if song.UserID != userID {
		return util.ErrNotSongOwner
	}
	return s.SongRepo.Delete(id)
}
