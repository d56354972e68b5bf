package service

import (
	"songday_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conv(id string, createdAt time.Time) model.Conversation {
	c := model.Conversation{}
	c.ID = id
	c.CreatedAt = createdAt
	c.UpdatedAt = createdAt
	return c
}

func member(convID string, userID uint) model.ConversationMember {
	return model.ConversationMember{ConversationID: convID, UserID: userID}
}

func message(id, convID string, senderID uint, createdAt time.Time) model.Message {
	m := model.Message{ConversationID: convID, SenderID: senderID, Content: "hi"}
	m.ID = id
	m.CreatedAt = createdAt
	return m
}

func profile(id uint, username string) model.User {
	u := model.User{Username: username, DisplayName: username}
	u.ID = id
	return u
}

func TestBuildConversationSummariesEmpty(t *testing.T) {
	summaries := buildConversationSummaries(nil, nil, nil, nil)
	require.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestBuildConversationSummariesJoinsCounterpartAndLastMessage(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	convs := []model.Conversation{conv("c1", base)}
	counterparts := []model.ConversationMember{member("c1", 2)}
	profiles := []model.User{profile(2, "bob")}
	latest := []model.Message{message("m1", "c1", 2, base.Add(time.Hour))}

	summaries := buildConversationSummaries(convs, counterparts, profiles, latest)

	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].OtherUser)
	assert.Equal(t, uint(2), summaries[0].OtherUser.ID)
	assert.Equal(t, "bob", summaries[0].OtherUser.Username)
	require.NotNil(t, summaries[0].LastMessage)
	assert.Equal(t, "m1", summaries[0].LastMessage.ID)
}

func TestBuildConversationSummariesPicksNewestMessage(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	convs := []model.Conversation{conv("c1", base)}
	// latest 按时间倒序给出，同一会话只取第一条
	latest := []model.Message{
		message("m2", "c1", 2, base.Add(2*time.Hour)),
		message("m1", "c1", 2, base.Add(time.Hour)),
	}

	summaries := buildConversationSummaries(convs, nil, nil, latest)

	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].LastMessage)
	assert.Equal(t, "m2", summaries[0].LastMessage.ID)
}

func TestBuildConversationSummariesSortOrder(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	// c1 最新消息 10:00，c2 最新消息 11:00，c3 没有消息但 12:00 创建
	convs := []model.Conversation{
		conv("c1", base),
		conv("c2", base),
		conv("c3", base.Add(3*time.Hour)),
	}
	latest := []model.Message{
		message("m2", "c2", 2, base.Add(2*time.Hour)),
		message("m1", "c1", 2, base.Add(time.Hour)),
	}

	summaries := buildConversationSummaries(convs, nil, nil, latest)

	require.Len(t, summaries, 3)
	assert.Equal(t, "c3", summaries[0].ID) // 无消息按创建时间参与排序
	assert.Equal(t, "c2", summaries[1].ID)
	assert.Equal(t, "c1", summaries[2].ID)
}

func TestBuildConversationSummariesMissingProfile(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	convs := []model.Conversation{conv("c1", base)}
	counterparts := []model.ConversationMember{member("c1", 99)}

	// 对方档案缺失时会话仍然保留，OtherUser 为空
	summaries := buildConversationSummaries(convs, counterparts, nil, nil)

	require.Len(t, summaries, 1)
	assert.Nil(t, summaries[0].OtherUser)
	assert.Nil(t, summaries[0].LastMessage)
}

func TestBuildConversationSummariesStableOnTies(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	convs := []model.Conversation{
		conv("c1", base),
		conv("c2", base),
	}

	summaries := buildConversationSummaries(convs, nil, nil, nil)

	require.Len(t, summaries, 2)
	// 排序键相同时保持输入顺序
	assert.Equal(t, "c1", summaries[0].ID)
	assert.Equal(t, "c2", summaries[1].ID)
}
