package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notepid/roomielink/internal/scripting"
	"github.com/notepid/roomielink/internal/storage"
	"github.com/notepid/roomielink/internal/testutil"
	"github.com/notepid/roomielink/internal/validate"
)

func newStore(t *testing.T, store *storage.Store, delay time.Duration, onReply func(Conversation)) *Store {
	t.Helper()
	r, err := scripting.NewResponder("")
	require.NoError(t, err)
	t.Cleanup(r.Close)

	s := New(store, Options{
		Partition:   "students",
		Username:    "alice",
		DisplayName: "Alice Kim",
		Replier:     r,
		ReplyDelay:  delay,
		OnReply:     onReply,
	})
	t.Cleanup(s.Close)
	return s
}

var (
	sarah = Contact{ID: "sarah", Name: "Sarah Miller", Kind: Roommate}
	raj   = Contact{ID: "raj", Name: "Raj Kumar", Kind: Roommate}
)

func TestLazyCreation(t *testing.T) {
	s := newStore(t, testutil.NewStore(t), time.Hour, nil)

	_, ok := s.Open(sarah.ID)
	assert.False(t, ok)
	list, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, list, "opening must not create a conversation")

	c, err := s.Send(sarah, "Are you still looking?")
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Sarah Miller", c.ContactName)
	require.Len(t, c.History, 3)
	assert.Equal(t, "Hi! I'm interested in your roommate post.", c.History[0].Message)
	assert.Equal(t, "Alice Kim", c.History[0].Sender)
	assert.False(t, c.History[0].Incoming)
	assert.Equal(t, "Sarah Miller", c.History[1].Sender, "the contact acknowledges the opener")
	assert.True(t, c.History[1].Incoming)
	assert.Equal(t, "Are you still looking?", c.History[2].Message)
	assert.Equal(t, "Alice Kim", c.History[2].Sender)
	assert.Equal(t, "Are you still looking?", c.LastMessage)
	assert.False(t, c.Unread)

	c, err = s.Send(sarah, "Second")
	require.NoError(t, err)
	assert.Len(t, c.History, 4, "the greeting is only added once")

	opened, ok := s.Open(sarah.ID)
	require.True(t, ok)
	assert.Equal(t, c.ID, opened.ID)
}

func TestReorderOnActivity(t *testing.T) {
	s := newStore(t, testutil.NewStore(t), time.Hour, nil)

	_, err := s.Send(sarah, "first")
	require.NoError(t, err)
	_, err = s.Send(raj, "second")
	require.NoError(t, err)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "raj", list[0].ContactID)

	_, err = s.Send(sarah, "third")
	require.NoError(t, err)
	list, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"sarah", "raj"}, []string{list[0].ContactID, list[1].ContactID})

	_, err = s.Receive("raj", "hey")
	require.NoError(t, err)
	list, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, "raj", list[0].ContactID)
	assert.True(t, list[0].Unread)
}

func TestReplyDelivered(t *testing.T) {
	replies := make(chan Conversation, 1)
	s := newStore(t, testutil.NewStore(t), 5*time.Millisecond, func(c Conversation) { replies <- c })

	_, err := s.Send(Contact{ID: "bp", Name: "Boston Properties", Kind: Listing}, "Is the apartment available?")
	require.NoError(t, err)

	select {
	case c := <-replies:
		assert.True(t, c.Unread)
		require.Len(t, c.History, 4)
		assert.True(t, c.History[3].Incoming)
		assert.Equal(t, "Boston Properties", c.History[3].Sender)
	case <-time.After(2 * time.Second):
		t.Fatal("reply was not delivered")
	}

	n, err := s.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.MarkRead("bp"))
	n, err = s.UnreadCount()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, s.Pending("bp"))
}

func TestDeleteCancelsReply(t *testing.T) {
	delivered := make(chan Conversation, 1)
	s := newStore(t, testutil.NewStore(t), 20*time.Millisecond, func(c Conversation) { delivered <- c })

	_, err := s.Send(sarah, "hello")
	require.NoError(t, err)
	assert.True(t, s.Pending(sarah.ID))

	require.NoError(t, s.Delete(sarah.ID))
	require.NoError(t, s.Delete(sarah.ID), "delete is idempotent")
	assert.False(t, s.Pending(sarah.ID))

	select {
	case <-delivered:
		t.Fatal("reply delivered after delete")
	case <-time.After(100 * time.Millisecond):
	}

	_, ok := s.Open(sarah.ID)
	assert.False(t, ok)
}

func TestCloseCancelsReplies(t *testing.T) {
	delivered := make(chan Conversation, 1)
	s := newStore(t, testutil.NewStore(t), 20*time.Millisecond, func(c Conversation) { delivered <- c })

	_, err := s.Send(sarah, "hello")
	require.NoError(t, err)
	s.Close()

	select {
	case <-delivered:
		t.Fatal("reply delivered after close")
	case <-time.After(100 * time.Millisecond):
	}

	_, err = s.Send(sarah, "again")
	assert.Error(t, err)
}

func TestPersistedPerOwner(t *testing.T) {
	store := testutil.NewStore(t)
	s := newStore(t, store, time.Hour, nil)
	_, err := s.Send(sarah, "hello")
	require.NoError(t, err)

	reloaded := newStore(t, store, time.Hour, nil)
	_, ok := reloaded.Open(sarah.ID)
	assert.True(t, ok)

	other := New(store, Options{Partition: "landlords", Username: "alice"})
	list, err := other.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSendValidation(t *testing.T) {
	s := newStore(t, testutil.NewStore(t), time.Hour, nil)

	_, err := s.Send(sarah, "   ")
	assert.Equal(t, "message", validate.FieldOf(err))
	_, err = s.Send(Contact{Name: "Nobody"}, "hi")
	assert.Equal(t, "contact", validate.FieldOf(err))

	_, err = s.Receive("ghost", "boo")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.MarkRead("ghost"), ErrNotFound)
}

func TestContactFor(t *testing.T) {
	assert.Equal(t, "bob", ContactFor(Roommate, "bob", "Bob Lee").ID)
	c := ContactFor(Listing, "", "Boston Properties")
	assert.Equal(t, "demo:boston-properties", c.ID)
	assert.Equal(t, Listing, c.Kind)
}

func TestGreetingDependsOnKind(t *testing.T) {
	s := newStore(t, testutil.NewStore(t), time.Hour, nil)

	c, err := s.Send(Contact{ID: "anna", Name: "Anna Lee", Kind: Application, PropertyTitle: "Modern 2BR Apartment"}, "When can you move in?")
	require.NoError(t, err)
	require.Len(t, c.History, 2, "a landlord-started conversation has no acknowledgement")
	assert.Equal(t, "Conversation started", c.History[0].Message)
	assert.Equal(t, "When can you move in?", c.History[1].Message)

	c, err = s.Send(Contact{ID: "bp", Name: "Boston Properties", Kind: Listing}, "Hello")
	require.NoError(t, err)
	require.Len(t, c.History, 3)
	assert.Equal(t, "Hi! I'm interested in your property listing.", c.History[0].Message)
	assert.Equal(t, "Hello! Thanks for your interest in the property.", c.History[1].Message)
	assert.True(t, c.History[1].Incoming)
	assert.False(t, c.Unread)
}
