package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/notepid/roomielink/internal/app"
	"github.com/notepid/roomielink/internal/catalog"
	"github.com/notepid/roomielink/internal/config"
	"github.com/notepid/roomielink/internal/user"
)

func openApp(t *testing.T) *app.App {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.App.Debug = false
	cfg.Paths.Data = dir
	cfg.Paths.Database = filepath.Join(dir, "roomielink.db")
	cfg.Auth.BcryptCost = bcrypt.MinCost
	a, cleanup, err := app.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return a
}

func TestUsersScreenListsPartition(t *testing.T) {
	a := openApp(t)
	_, err := a.Users.CreateAccount(nil, user.Students, "alice", "secret1", "a@x.edu", user.Profile{Name: "Alice Kim", University: "mit"})
	require.NoError(t, err)
	_, err = a.Users.CreateAccount(nil, user.Landlords, "lee", "secret1", "l@x.com", user.Profile{Name: "Lee Park", Company: "Park Homes"})
	require.NoError(t, err)

	m := newUsersModel(a, user.Students)
	m.SetSize(100, 40)
	view := m.View()
	assert.Contains(t, view, "alice")
	assert.NotContains(t, view, "lee")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, m.Finished())
}

func TestPostsScreenRemovesPost(t *testing.T) {
	a := openApp(t)
	_, err := a.Users.CreateAccount(a.Session, user.Students, "alice", "secret1", "a@x.edu", user.Profile{Name: "Alice Kim", University: "mit"})
	require.NoError(t, err)
	p, err := a.Catalog.CreatePost(a.Session, catalog.PostFields{
		Content: "Quiet roommate wanted", City: "boston", University: "mit", Locality: "Back Bay",
		Price: "800-1200", RoomType: "private", Gender: "female", Food: "vegetarian",
	})
	require.NoError(t, err)

	m := newPostsModel(a)
	m.SetSize(100, 40)
	require.Len(t, m.posts, 1)
	assert.Contains(t, m.View(), "1 live")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.selected)
	assert.Equal(t, p.ID, m.selected.ID)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.Empty(t, m.posts)
	assert.Equal(t, postsStateList, m.state)
	live, err := a.Catalog.LivePosts()
	require.NoError(t, err)
	assert.Empty(t, live)
}

func TestStorageScreenListsKeys(t *testing.T) {
	a := openApp(t)
	m := newStorageModel(a)
	m.SetSize(120, 40)
	require.NoError(t, m.err)
	assert.NotEmpty(t, m.keys, "the user directory is created on open")
	assert.Contains(t, m.View(), "users")
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("short", 10))
	assert.Equal(t, "a b", excerpt("a\n  b", 10))
	assert.Equal(t, "abcd…", excerpt("abcdefgh", 5))
}
