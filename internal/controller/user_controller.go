package controller

import (
	"errors"
	"songday_backend/internal/service"
	"songday_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary 查看用户资料
// @Description 根据 ID 获取用户公开资料
// @Tags 用户
// @Produce  json
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.UserBrief}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	user, err := c.UserService.GetUserByID(id)
	if err != nil {
		util.Error(ctx, 404, err.Error())
		return
	}
	util.Success(ctx, gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"displayName": user.DisplayName,
		"bio":         user.Bio,
		"avatar":      user.Avatar,
		"lastSeen":    user.LastSeen,
	})
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Description 更新当前用户的昵称和简介
// @Tags 用户
// @Accept  json
// @Produce  json
// @Param   body body service.ProfileUpdate true "资料更新"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未登录"
// @Router /api/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// UploadAvatar godoc
// @Summary 上传头像
// @Description 上传当前用户头像图片
// @Tags 用户
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "头像文件"
// @Success 200 {object} util.Response{data=object} "上传成功"
// @Failure 400 {object} util.Response "文件无效"
// @Failure 401 {object} util.Response "未登录"
// @Router /api/profile/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}

	url, err := c.UserService.UploadAvatar(ctx.Request.Context(), claims.UserID, file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"avatar": url})
}
