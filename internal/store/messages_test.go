package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/message"
	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/user"
)

func TestMessages_SendThreadAndConversations(t *testing.T) {
	s := newServices(t, contract.Options{})
	ctx := context.Background()
	seed := seedUsers(t, s.db)
	other := createUser(t, s.db, user.RoleFreelancer)
	proj := s.postProject(t, seed.client, 500)

	send := func(from, to *user.User, content string) *message.Message {
		t.Helper()
		m, err := s.messages.Send(ctx, principal(from), message.SendRequest{ReceiverID: to.ID, Content: content})
		require.NoError(t, err)
		return m
	}

	first := send(seed.client, seed.freelancer, "Hi, interested?")
	send(seed.freelancer, seed.client, "Yes!")
	send(seed.client, seed.freelancer, "Great")
	send(other, seed.client, "Me too")

	_, err := s.messages.Send(ctx, principal(seed.client), message.SendRequest{ReceiverID: seed.freelancer.ID, Content: "About the shop", ProjectID: proj.ID})
	require.NoError(t, err)
	_, err = s.messages.Send(ctx, principal(seed.client), message.SendRequest{ReceiverID: seed.freelancer.ID, Content: "hi", ProjectID: "missing"})
	require.ErrorIs(t, err, message.ErrProjectNotFound)

	notes, err := s.notifications.List(ctx, principal(seed.freelancer), 0)
	require.NoError(t, err)
	require.NotEmpty(t, notes)
	require.Equal(t, notification.TypeNewMessage, notes[0].Type)
	require.Equal(t, "New message from "+seed.client.Name, notes[0].Content)

	convs, err := s.messages.Conversations(ctx, principal(seed.client))
	require.NoError(t, err)
	require.Len(t, convs, 2)
	byUser := map[string]message.Conversation{}
	for _, c := range convs {
		byUser[c.UserID] = c
	}
	require.Equal(t, 1, byUser[seed.freelancer.ID].UnreadCount)
	require.Equal(t, 1, byUser[other.ID].UnreadCount)
	require.Equal(t, other.Name, byUser[other.ID].Name)

	thread, err := s.messages.Thread(ctx, principal(seed.freelancer), seed.client.ID)
	require.NoError(t, err)
	require.Len(t, thread, 4)
	require.Equal(t, first.ID, thread[0].ID, "oldest first")
	for _, m := range thread {
		if m.ReceiverID == seed.freelancer.ID {
			require.True(t, m.Read)
			require.NotNil(t, m.ReadAt)
		}
	}

	// Reading the thread as the freelancer leaves the client's inbox alone.
	convs, err = s.messages.Conversations(ctx, principal(seed.client))
	require.NoError(t, err)
	for _, c := range convs {
		if c.UserID == seed.freelancer.ID {
			require.Equal(t, 1, c.UnreadCount)
		}
	}
}

func TestMessages_MarkReadOnlyOwnInbox(t *testing.T) {
	s := newServices(t, contract.Options{})
	ctx := context.Background()
	seed := seedUsers(t, s.db)

	toFreelancer, err := s.messages.Send(ctx, principal(seed.client), message.SendRequest{ReceiverID: seed.freelancer.ID, Content: "one"})
	require.NoError(t, err)
	toClient, err := s.messages.Send(ctx, principal(seed.freelancer), message.SendRequest{ReceiverID: seed.client.ID, Content: "two"})
	require.NoError(t, err)

	n, err := s.messages.MarkRead(ctx, principal(seed.freelancer), []string{toFreelancer.ID, toClient.ID, "missing"})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = s.messages.MarkRead(ctx, principal(seed.freelancer), []string{toFreelancer.ID})
	require.NoError(t, err)
	require.Equal(t, 0, n, "already read")

	convs, err := s.messages.Conversations(ctx, principal(seed.client))
	require.NoError(t, err)
	require.Len(t, convs, 1)
	require.Equal(t, 1, convs[0].UnreadCount)
}
