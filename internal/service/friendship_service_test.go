package service

import (
	"songday_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edge(id string, requester, addressee uint, status string) model.Friendship {
	f := model.Friendship{
		RequesterID: requester,
		AddresseeID: addressee,
		Status:      status,
		Requester:   model.User{Username: "requester", DisplayName: "Requester"},
		Addressee:   model.User{Username: "addressee", DisplayName: "Addressee"},
	}
	f.ID = id
	f.Requester.ID = requester
	f.Addressee.ID = addressee
	f.CreatedAt = time.Now()
	return f
}

func TestPartitionFriendshipsEmpty(t *testing.T) {
	overview := partitionFriendships(nil, 1)
	require.NotNil(t, overview)
	assert.Empty(t, overview.Friends)
	assert.Empty(t, overview.Incoming)
	assert.Empty(t, overview.Outgoing)
}

func TestPartitionFriendshipsByStatusAndDirection(t *testing.T) {
	edges := []model.Friendship{
		edge("f1", 1, 2, model.FriendshipAccepted), // 我发起的好友
		edge("f2", 3, 1, model.FriendshipAccepted), // 对方发起的好友
		edge("f3", 4, 1, model.FriendshipPending),  // 收到的申请
		edge("f4", 1, 5, model.FriendshipPending),  // 发出的申请
		edge("f5", 1, 6, model.FriendshipDeclined), // 已拒绝，不展示
	}

	overview := partitionFriendships(edges, 1)

	require.Len(t, overview.Friends, 2)
	assert.Equal(t, uint(2), overview.Friends[0].User.ID)
	assert.Equal(t, uint(3), overview.Friends[1].User.ID)

	require.Len(t, overview.Incoming, 1)
	assert.Equal(t, "f3", overview.Incoming[0].ID)
	assert.Equal(t, uint(4), overview.Incoming[0].User.ID)

	require.Len(t, overview.Outgoing, 1)
	assert.Equal(t, "f4", overview.Outgoing[0].ID)
	assert.Equal(t, uint(5), overview.Outgoing[0].User.ID)
}

func TestPartitionFriendshipsShowsCounterpart(t *testing.T) {
	edges := []model.Friendship{
		edge("f1", 7, 1, model.FriendshipAccepted),
	}

	overview := partitionFriendships(edges, 1)

	require.Len(t, overview.Friends, 1)
	// 展示的应该是对方而不是自己
	assert.Equal(t, uint(7), overview.Friends[0].User.ID)
}

func TestSearchUsersEmptyQuery(t *testing.T) {
	// 空查询不应触碰存储层，因此零值 service 也能工作
	s := &FriendshipService{}

	results, err := s.SearchUsers(1, "")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = s.SearchUsers(1, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}
