package controller

import (
	"errors"
	"songday_backend/internal/service"
	"songday_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// ListConversations godoc
// @Summary 会话列表
// @Description 返回当前用户的所有会话，附带对方信息和最新消息
// @Tags 聊天
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.ConversationSummary}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/conversations [get]
func (c *ChatController) ListConversations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summaries, err := c.ChatService.ListConversations(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}

type CreateChatRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// GetOrCreatePrivateChat godoc
// @Summary 发起私聊
// @Description 获取与指定用户的私聊会话，不存在则创建
// @Tags 聊天
// @Accept  json
// @Produce  json
// @Param   body body CreateChatRequest true "对方用户"
// @Success 200 {object} util.Response{data=model.Conversation}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/conversations [post]
func (c *ChatController) GetOrCreatePrivateChat(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	conv, err := c.ChatService.GetOrCreatePrivateChat(claims.UserID, req.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, conv)
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage godoc
// @Summary 发送消息
// @Description 向指定会话发送一条消息
// @Tags 聊天
// @Accept  json
// @Produce  json
// @Param   id path string true "会话ID"
// @Param   body body SendMessageRequest true "消息内容"
// @Success 201 {object} util.Response{data=model.Message}
// @Failure 400 {object} util.Response "消息内容无效"
// @Failure 403 {object} util.Response "非会话成员"
// @Router /api/conversations/{id}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.ChatService.SendMessage(ctx.Param("id"), claims.UserID, req.Content)
	if err != nil {
		if errors.Is(err, util.ErrNotConversationMember) {
			util.Forbidden(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, msg)
}

// GetMessages godoc
// @Summary 拉取消息
// @Description 按时间倒序分页拉取会话消息
// @Tags 聊天
// @Produce  json
// @Param   id path string true "会话ID"
// @Param   limit query int false "数量上限" default(50)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=[]model.Message}
// @Failure 403 {object} util.Response "非会话成员"
// @Router /api/conversations/{id}/messages [get]
func (c *ChatController) GetMessages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	msgs, err := c.ChatService.GetMessages(ctx.Param("id"), claims.UserID, limit, offset)
	if err != nil {
		if errors.Is(err, util.ErrNotConversationMember) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, msgs)
}
