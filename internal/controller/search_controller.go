package controller

import (
	"songday_backend/internal/service"
	"songday_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	SpotifyService *service.SpotifyService
}

func NewSearchController(spotifyService *service.SpotifyService) *SearchController {
	return &SearchController{SpotifyService: spotifyService}
}

// SearchTracks godoc
// @Summary 搜索曲库
// @Description 通过 Spotify 搜索歌曲，用于填写分享信息
// @Tags 搜索
// @Produce  json
// @Param   q query string false "搜索词"
// @Success 200 {object} util.Response{data=[]service.SpotifyTrack}
// @Failure 401 {object} util.Response "未登录"
// @Failure 502 {object} util.Response "上游服务异常"
// @Router /api/search/tracks [get]
func (c *SearchController) SearchTracks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tracks, err := c.SpotifyService.SearchTracks(ctx.Query("q"))
	if err != nil {
		util.Error(ctx, 502, err.Error())
		return
	}
	util.Success(ctx, tracks)
}
