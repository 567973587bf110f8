package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"
	"github.com/dustin/go-humanize"

	"github.com/notepid/roomielink/internal/app"
	"github.com/notepid/roomielink/internal/model"
)

type postsModel struct {
	app *app.App

	width  int
	height int

	Done bool

	state postsState
	list  list.Model
	err   error

	posts    []model.Post
	selected *model.Post
	status   string
}

type postsState int

const (
	postsStateList postsState = iota
	postsStateDetail
)

type postItem struct {
	idx   int
	title string
	desc  string
}

func (i postItem) Title() string       { return i.title }
func (i postItem) Description() string { return i.desc }
func (i postItem) FilterValue() string { return i.title }

func newPostsModel(a *app.App) *postsModel {
	m := &postsModel{app: a, state: postsStateList}
	m.reloadPosts()
	return m
}

func (m *postsModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h-2)
}

func (m *postsModel) Finished() bool { return m.Done }

func (m *postsModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.err = nil
				m.state = postsStateList
				m.selected = nil
				m.reloadPosts()
			}
		}
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			if m.state == postsStateList {
				m.Done = true
				return nil
			}
		case "esc":
			m.back()
			return nil
		case "x":
			if m.state == postsStateDetail && m.selected != nil {
				m.remove()
				return nil
			}
		}
	}

	if m.state == postsStateDetail {
		return nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			it, ok := m.list.SelectedItem().(postItem)
			if !ok {
				return cmd
			}
			p := m.posts[it.idx]
			m.selected = &p
			m.status = ""
			m.state = postsStateDetail
			return nil
		}
	}

	return cmd
}

func (m *postsModel) remove() {
	ok, err := m.app.Catalog.RemovePost(m.selected.ID)
	if err != nil {
		m.err = err
		return
	}
	if ok {
		m.status = fmt.Sprintf("Post #%d removed", m.selected.ID)
	} else {
		m.status = fmt.Sprintf("Post #%d was already gone", m.selected.ID)
	}
	m.selected = nil
	m.state = postsStateList
	m.reloadPosts()
}

func (m *postsModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Posts error: %v\n\nPress Enter/Esc to go back.", m.err)
	}

	switch m.state {
	case postsStateList:
		m.list.Title = fmt.Sprintf("Roommate Posts (%d live)", len(m.posts))
		footer := "\n(q to quit, enter to view)"
		if m.status != "" {
			footer = "\n" + dimStyle.Render(m.status) + footer
		}
		return m.list.View() + footer
	case postsStateDetail:
		p := m.selected
		header := titleStyle.Render(fmt.Sprintf("Post #%d by %s", p.ID, p.Author.Name)) + "\n"
		meta := fmt.Sprintf("Author: %s (%s)\nWhere: %s / %s, %s\nPrice: %s  Room: %s  Gender: %s  Food: %s\nTags: %s\nPosted: %s\n",
			p.Author.Username, p.Author.University,
			p.City, p.Locality, p.University,
			p.Price, p.RoomType, p.Gender, p.Food,
			strings.Join(p.Tags, ", "),
			humanize.Time(p.CreatedAt),
		)
		return header + meta + "\n" + p.Content + "\n\n(x remove, esc back)"
	default:
		return "Posts"
	}
}

func (m *postsModel) reloadPosts() {
	posts, err := m.app.Catalog.LivePosts()
	if err != nil {
		m.err = err
		return
	}
	m.posts = posts

	items := make([]list.Item, 0, len(posts))
	for i, p := range posts {
		desc := fmt.Sprintf("#%d • %s • %s", p.ID, p.Locality, humanize.Time(p.CreatedAt))
		items = append(items, postItem{idx: i, title: p.Author.Name + ": " + excerpt(p.Content, 50), desc: desc})
	}

	m.list = list.New(items, list.NewDefaultDelegate(), m.width, m.height-2)
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(true)
	m.list.SetShowHelp(true)
}

func (m *postsModel) back() {
	switch m.state {
	case postsStateList:
		m.Done = true
	case postsStateDetail:
		m.state = postsStateList
		m.selected = nil
	}
}

func excerpt(s string, n int) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
