package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"songday_backend/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpotifyTestServer(t *testing.T, searchStatus int) (*httptest.Server, *int, *int) {
	t.Helper()
	tokenCalls := 0
	searchCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		searchCalls++
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "track", r.URL.Query().Get("type"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))

		if searchStatus != http.StatusOK {
			w.WriteHeader(searchStatus)
			return
		}

		w.Write([]byte(`{
			"tracks": {
				"items": [{
					"id": "track-1",
					"name": "Karma Police",
					"artists": [{"name": "Radiohead"}, {"name": "Someone"}],
					"album": {
						"name": "OK Computer",
						"images": [{"url": "https://img.example/cover.jpg"}]
					},
					"external_urls": {"spotify": "https://open.spotify.com/track/track-1"},
					"preview_url": "https://p.example/preview.mp3"
				}]
			}
		}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &tokenCalls, &searchCalls
}

func newTestSpotifyService(srv *httptest.Server) *SpotifyService {
	return NewSpotifyService(config.SpotifyConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     srv.URL + "/token",
		APIBaseURL:   srv.URL,
	})
}

func TestSpotifySearchTracks(t *testing.T) {
	srv, _, _ := newSpotifyTestServer(t, http.StatusOK)
	s := newTestSpotifyService(srv)

	tracks, err := s.SearchTracks("karma police")
	require.NoError(t, err)
	require.Len(t, tracks, 1)

	assert.Equal(t, "track-1", tracks[0].ID)
	assert.Equal(t, "Karma Police", tracks[0].Title)
	assert.Equal(t, "Radiohead, Someone", tracks[0].Artist)
	assert.Equal(t, "OK Computer", tracks[0].Album)
	assert.Equal(t, "https://open.spotify.com/track/track-1", tracks[0].SpotifyURL)
	assert.Equal(t, "https://img.example/cover.jpg", tracks[0].ImageURL)
	assert.Equal(t, "https://p.example/preview.mp3", tracks[0].PreviewURL)
}

func TestSpotifyEmptyQuerySkipsUpstream(t *testing.T) {
	srv, tokenCalls, searchCalls := newSpotifyTestServer(t, http.StatusOK)
	s := newTestSpotifyService(srv)

	tracks, err := s.SearchTracks("   ")
	require.NoError(t, err)
	assert.Empty(t, tracks)
	assert.Zero(t, *tokenCalls)
	assert.Zero(t, *searchCalls)
}

func TestSpotifyTokenReuse(t *testing.T) {
	srv, tokenCalls, _ := newSpotifyTestServer(t, http.StatusOK)
	s := newTestSpotifyService(srv)

	_, err := s.SearchTracks("first")
	require.NoError(t, err)
	_, err = s.SearchTracks("second")
	require.NoError(t, err)

	// 令牌未过期时复用缓存，只换发一次
	assert.Equal(t, 1, *tokenCalls)
}

func TestSpotifyUpstreamError(t *testing.T) {
	srv, _, _ := newSpotifyTestServer(t, http.StatusTooManyRequests)
	s := newTestSpotifyService(srv)

	_, err := s.SearchTracks("anything")
	require.Error(t, err)
}

func TestSpotifyUpdateConfigInvalidatesToken(t *testing.T) {
	srv, tokenCalls, _ := newSpotifyTestServer(t, http.StatusOK)
	s := newTestSpotifyService(srv)

	_, err := s.SearchTracks("first")
	require.NoError(t, err)

	s.UpdateConfig(config.SpotifyConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     srv.URL + "/token",
		APIBaseURL:   srv.URL,
	})

	_, err = s.SearchTracks("second")
	require.NoError(t, err)

	// 凭证更新后旧令牌作废，重新换发
	assert.Equal(t, 2, *tokenCalls)
}

func TestSpotifyTokenExpiryMargin(t *testing.T) {
	srv, _, _ := newSpotifyTestServer(t, http.StatusOK)
	s := newTestSpotifyService(srv)

	_, err := s.getToken()
	require.NoError(t, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	// 过期时间应早于名义上的 3600 秒
	assert.True(t, s.tokenExpiry.Before(time.Now().Add(3600*time.Second)))
	assert.True(t, s.tokenExpiry.After(time.Now().Add(3500*time.Second)))
}
