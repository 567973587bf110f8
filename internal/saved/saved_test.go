package saved

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/notepid/roomielink/internal/model"
	"github.com/notepid/roomielink/internal/testutil"
	"github.com/notepid/roomielink/internal/user"
)

func setup(t *testing.T) (*Tracker, *user.Directory, *user.Session) {
	t.Helper()
	users := user.NewDirectory(testutil.NewStore(t), user.Options{BcryptCost: bcrypt.MinCost, MinPassword: 6})
	require.NoError(t, users.Initialize())
	sess := user.NewSession()
	_, err := users.CreateAccount(sess, user.Students, "alice", "secret1", "a@x.edu", user.Profile{Name: "Alice Kim", University: "mit"})
	require.NoError(t, err)
	return New(users, false), users, sess
}

func TestSaveIdempotent(t *testing.T) {
	tr, users, sess := setup(t)

	ok, err := tr.Save(sess, 4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = tr.Save(sess, 4)
	require.NoError(t, err)
	assert.False(t, ok, "double save is a no-op")

	assert.True(t, tr.IsSaved(sess, 4))
	assert.Equal(t, 1, tr.Count(sess))

	stored, err := users.Get(user.Students, "alice")
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, stored.SavedPosts)
}

func TestUnsave(t *testing.T) {
	tr, _, sess := setup(t)

	ok, err := tr.Unsave(sess, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = tr.Save(sess, 4)
	require.NoError(t, err)
	_, err = tr.Save(sess, 7)
	require.NoError(t, err)

	ok, err = tr.Unsave(sess, 4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, tr.IsSaved(sess, 4))
	assert.True(t, tr.IsSaved(sess, 7))
}

func TestSavedPostsFeedOrder(t *testing.T) {
	tr, _, sess := setup(t)
	for _, id := range []int64{9, 2, 5} {
		_, err := tr.Save(sess, id)
		require.NoError(t, err)
	}

	feed := []model.Post{{ID: 1}, {ID: 2}, {ID: 5}, {ID: 9}}
	got := tr.SavedPosts(sess, feed)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{2, 5, 9}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestLoggedOut(t *testing.T) {
	tr, users, sess := setup(t)
	users.Logout(sess)

	_, err := tr.Save(sess, 1)
	assert.ErrorIs(t, err, user.ErrNotLoggedIn)
	assert.False(t, tr.IsSaved(sess, 1))
	assert.Zero(t, tr.Count(sess))
	assert.Nil(t, tr.SavedPosts(sess, []model.Post{{ID: 1}}))
}

func TestLandlordCannotSave(t *testing.T) {
	tr, users, _ := setup(t)
	sess := user.NewSession()
	_, err := users.CreateAccount(sess, user.Landlords, "lee", "secret1", "l@x.com", user.Profile{Name: "Lee", Company: "Lee Homes"})
	require.NoError(t, err)

	_, err = tr.Save(sess, 1)
	assert.ErrorIs(t, err, user.ErrWrongPartition)
}
