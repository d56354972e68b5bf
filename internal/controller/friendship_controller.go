package controller

import (
	"errors"
	"songday_backend/internal/service"
	"songday_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FriendshipController struct {
	FriendshipService *service.FriendshipService
}

func NewFriendshipController(friendshipService *service.FriendshipService) *FriendshipController {
	return &FriendshipController{FriendshipService: friendshipService}
}

// ListFriendships godoc
// @Summary 好友全景
// @Description 返回当前用户的好友、收到的申请和发出的申请
// @Tags 好友
// @Produce  json
// @Success 200 {object} util.Response{data=service.FriendshipOverview}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/friendships [get]
func (c *FriendshipController) ListFriendships(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.FriendshipService.ListFriendships(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

type SendRequestBody struct {
	AddresseeID uint `json:"addresseeId" binding:"required"`
}

// SendRequest godoc
// @Summary 发送好友申请
// @Description 向指定用户发起好友申请
// @Tags 好友
// @Accept  json
// @Produce  json
// @Param   body body SendRequestBody true "申请对象"
// @Success 201 {object} util.Response{data=model.Friendship}
// @Failure 400 {object} util.Response "不能添加自己或重复申请"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/friendships [post]
func (c *FriendshipController) SendRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	f, err := c.FriendshipService.SendRequest(claims.UserID, req.AddresseeID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.Error(ctx, 404, err.Error())
		case errors.Is(err, util.ErrSelfFriendship), errors.Is(err, util.ErrDuplicateRequest):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, f)
}

type RespondRequestBody struct {
	Accept bool `json:"accept"`
}

// Respond godoc
// @Summary 处理好友申请
// @Description 接受或拒绝收到的好友申请
// @Tags 好友
// @Accept  json
// @Produce  json
// @Param   id path string true "申请ID"
// @Param   body body RespondRequestBody true "处理结果"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "申请已处理"
// @Failure 403 {object} util.Response "无权处理此申请"
// @Failure 404 {object} util.Response "申请不存在"
// @Router /api/friendships/{id}/respond [post]
func (c *FriendshipController) Respond(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RespondRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.FriendshipService.Respond(ctx.Param("id"), claims.UserID, req.Accept)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrFriendshipNotFound):
			util.Error(ctx, 404, err.Error())
		case errors.Is(err, util.ErrNotAddressee):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrAlreadyHandled):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Remove godoc
// @Summary 删除好友关系
// @Description 解除好友或撤回申请，重复删除视为成功
// @Tags 好友
// @Produce  json
// @Param   id path string true "关系ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "无权操作"
// @Router /api/friendships/{id} [delete]
func (c *FriendshipController) Remove(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.FriendshipService.Remove(ctx.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// SearchUsers godoc
// @Summary 搜索用户
// @Description 按昵称或用户名模糊搜索可添加的用户
// @Tags 好友
// @Produce  json
// @Param   q query string false "搜索词"
// @Success 200 {object} util.Response{data=[]model.UserBrief}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/users/search [get]
func (c *FriendshipController) SearchUsers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.FriendshipService.SearchUsers(claims.UserID, ctx.Query("q"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}
