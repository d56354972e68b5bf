package controller

import (
	"songday_backend/internal/service"
	"songday_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// List godoc
// @Summary 通知列表
// @Description 按时间倒序返回当前用户的站内通知
// @Tags 通知
// @Produce  json
// @Param   limit query int false "数量上限" default(20)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	items, total, err := c.NotificationService.List(claims.UserID, limit, offset)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: offset/limit + 1, Limit: limit})
}

// MarkRead godoc
// @Summary 标记已读
// @Tags 通知
// @Produce  json
// @Param   id path string true "通知ID"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "未登录"
// @Router /api/notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.NotificationService.MarkRead(ctx.Param("id"), claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UnreadCount godoc
// @Summary 未读数量
// @Tags 通知
// @Produce  json
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/notifications/unread [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	count, err := c.NotificationService.CountUnread(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"unread": count})
}
