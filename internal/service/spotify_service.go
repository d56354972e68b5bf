package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"songday_backend/internal/config"
	"songday_backend/pkg/logger"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	spotifySearchLimit = 20
	// 令牌提前失效余量，避免在临界点拿着过期令牌请求
	tokenExpiryMargin = 60 * time.Second
)

type SpotifyService struct {
	mu     sync.Mutex
	cfg    config.SpotifyConfig
	client *http.Client

	token       string
	tokenExpiry time.Time
}

func NewSpotifyService(cfg config.SpotifyConfig) *SpotifyService {
	return &SpotifyService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// UpdateConfig 配置热更新时替换凭证并作废缓存的令牌
func (s *SpotifyService) UpdateConfig(cfg config.SpotifyConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.token = ""
	s.tokenExpiry = time.Time{}
}

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// getToken 获取 client credentials 令牌，未过期时复用缓存
func (s *SpotifyService) getToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.tokenExpiry) {
		return s.token, nil
	}

	if s.cfg.ClientID == "" || s.cfg.ClientSecret == "" {
		return "", fmt.Errorf("Spotify 凭证未配置")
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequest(http.MethodPost, s.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Log.Warn("Spotify 令牌获取失败",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", fmt.Errorf("Spotify 令牌获取失败: %d", resp.StatusCode)
	}

	var tr spotifyTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", err
	}

	s.token = tr.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - tokenExpiryMargin)
	return s.token, nil
}

// SpotifyTrack 搜索结果中的单首歌曲
type SpotifyTrack struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	SpotifyURL string `json:"spotifyUrl"`
	ImageURL   string `json:"imageUrl"`
	PreviewURL string `json:"previewUrl"`
}

type spotifySearchResponse struct {
	Tracks struct {
		Items []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Name   string `json:"name"`
				Images []struct {
					URL string `json:"url"`
				} `json:"images"`
			} `json:"album"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
			PreviewURL string `json:"preview_url"`
		} `json:"items"`
	} `json:"tracks"`
}

// SearchTracks 搜索 Spotify 曲库，空查询直接返回空结果
func (s *SpotifyService) SearchTracks(query string) ([]SpotifyTrack, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SpotifyTrack{}, nil
	}

	token, err := s.getToken()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	baseURL := s.cfg.APIBaseURL
	s.mu.Unlock()

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", fmt.Sprintf("%d", spotifySearchLimit))

	req, err := http.NewRequest(http.MethodGet, baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Log.Warn("Spotify 搜索失败",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		// 令牌被提前作废时清掉缓存，下次重新获取
		if resp.StatusCode == http.StatusUnauthorized {
			s.mu.Lock()
			s.token = ""
			s.mu.Unlock()
		}
		return nil, fmt.Errorf("Spotify 搜索失败: %d", resp.StatusCode)
	}

	var sr spotifySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}

	tracks := make([]SpotifyTrack, 0, len(sr.Tracks.Items))
	for _, item := range sr.Tracks.Items {
		names := make([]string, 0, len(item.Artists))
		for _, a := range item.Artists {
			names = append(names, a.Name)
		}

		track := SpotifyTrack{
			ID:         item.ID,
			Title:      item.Name,
			Artist:     strings.Join(names, ", "),
			Album:      item.Album.Name,
			SpotifyURL: item.ExternalURLs.Spotify,
			PreviewURL: item.PreviewURL,
		}
		if len(item.Album.Images) > 0 {
			track.ImageURL = item.Album.Images[0].URL
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}
