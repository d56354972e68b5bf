package controller

import (
	"errors"
	"songday_backend/internal/service"
	"songday_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SongController struct {
	SongService *service.SongService
}

func NewSongController(songService *service.SongService) *SongController {
	return &SongController{SongService: songService}
}

func pageParams(ctx *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Feed godoc
// @Summary 全站分享流
// @Description 按分享时间倒序返回所有用户分享的歌曲
// @Tags 歌曲
// @Produce  json
// @Param   limit query int false "数量上限" default(20)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/songs [get]
func (c *SongController) Feed(ctx *gin.Context) {
	limit, offset := pageParams(ctx)
	songs, total, err := c.SongService.Feed(limit, offset)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: songs, Total: total, Page: offset/limit + 1, Limit: limit})
}

// FriendsFeed godoc
// @Summary 好友分享流
// @Description 返回好友和自己分享的歌曲
// @Tags 歌曲
// @Produce  json
// @Param   limit query int false "数量上限" default(20)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/songs/friends [get]
func (c *SongController) FriendsFeed(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, offset := pageParams(ctx)
	songs, total, err := c.SongService.FriendsFeed(claims.UserID, limit, offset)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: songs, Total: total, Page: offset/limit + 1, Limit: limit})
}

// MySongs godoc
// @Summary 我的分享
// @Description 返回当前用户分享过的歌曲
// @Tags 歌曲
// @Produce  json
// @Param   limit query int false "数量上限" default(20)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/songs/mine [get]
func (c *SongController) MySongs(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, offset := pageParams(ctx)
	songs, total, err := c.SongService.ListByUser(claims.UserID, limit, offset)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: songs, Total: total, Page: offset/limit + 1, Limit: limit})
}

// GetSong godoc
// @Summary 歌曲详情
// @Tags 歌曲
// @Produce  json
// @Param   id path string true "歌曲ID"
// @Success 200 {object} util.Response{data=model.Song}
// @Failure 404 {object} util.Response "歌曲不存在"
// @Router /api/songs/{id} [get]
func (c *SongController) GetSong(ctx *gin.Context) {
	song, err := c.SongService.GetByID(ctx.Param("id"))
	if err != nil {
		util.Error(ctx, 404, err.Error())
		return
	}
	util.Success(ctx, song)
}

// CreateSong godoc
// @Summary 分享歌曲
// @Description 分享一首歌到自己的动态
// @Tags 歌曲
// @Accept  json
// @Produce  json
// @Param   body body service.SongInput true "歌曲信息"
// @Success 201 {object} util.Response{data=model.Song}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未登录"
// @Router /api/songs [post]
func (c *SongController) CreateSong(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SongInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	song, err := c.SongService.Create(claims.UserID, &req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, song)
}

// UpdateSong godoc
// @Summary 更新分享
// @Description 只能更新自己分享的歌曲
// @Tags 歌曲
// @Accept  json
// @Produce  json
// @Param   id path string true "歌曲ID"
// @Param   body body service.SongInput true "歌曲信息"
// @Success 200 {object} util.Response{data=model.Song}
// @Failure 403 {object} util.Response "只能操作自己分享的歌曲"
// @Failure 404 {object} util.Response "歌曲不存在"
// @Router /api/songs/{id} [put]
func (c *SongController) UpdateSong(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SongInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	song, err := c.SongService.Update(ctx.Param("id"), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSongNotFound):
			util.Error(ctx, 404, err.Error())
		case errors.Is(err, util.ErrNotSongOwner):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, song)
}

// DeleteSong godoc
// @Summary 删除分享
// @Description 只能删除自己分享的歌曲
// @Tags 歌曲
// @Produce  json
// @Param   id path string true "歌曲ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "只能操作自己分享的歌曲"
// @Failure 404 {object} util.Response "歌曲不存在"
// @Router /api/songs/{id} [delete]
func (c *SongController) DeleteSong(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.SongService.Delete(ctx.Param("id"), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSongNotFound):
			util.Error(ctx, 404, err.Error())
		case errors.Is(err, util.ErrNotSongOwner):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
