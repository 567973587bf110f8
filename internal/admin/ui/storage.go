package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"
	"github.com/dustin/go-humanize"

	"github.com/notepid/roomielink/internal/app"
	"github.com/notepid/roomielink/internal/storage"
)

// storageModel lists the documents under the configured key prefix.
type storageModel struct {
	app *app.App

	width  int
	height int

	Done bool

	list  list.Model
	keys  []storage.KeyInfo
	total int
	err   error
}

type keyItem struct {
	title string
	desc  string
}

func (i keyItem) Title() string       { return i.title }
func (i keyItem) Description() string { return i.desc }
func (i keyItem) FilterValue() string { return i.title }

func newStorageModel(a *app.App) *storageModel {
	m := &storageModel{app: a}
	m.reload()
	return m
}

func (m *storageModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h-4)
}

func (m *storageModel) Finished() bool { return m.Done }

func (m *storageModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.Done = true
			}
		}
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			if !m.list.SettingFilter() {
				m.Done = true
				return nil
			}
		case "r":
			if !m.list.SettingFilter() {
				m.reload()
				return nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *storageModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Storage error: %v\n\nPress Enter/Esc to go back.", m.err)
	}
	cfg := m.app.Config.Storage
	m.list.Title = fmt.Sprintf("Storage %s*", m.app.Store.Prefix())
	summary := dimStyle.Render(fmt.Sprintf("%s • %d keys, %s • codec %s, compression %s",
		m.app.DBPath, len(m.keys), humanize.Bytes(uint64(m.total)), cfg.Codec, cfg.Compression))
	return m.list.View() + "\n" + summary + "\n(r reload, q back)"
}

func (m *storageModel) reload() {
	keys, err := m.app.Store.Keys()
	if err != nil {
		m.err = err
		return
	}
	m.keys = keys
	m.total = 0

	items := make([]list.Item, 0, len(keys))
	for _, k := range keys {
		m.total += k.Size
		desc := fmt.Sprintf("%s • updated %s • etag %s", humanize.Bytes(uint64(k.Size)), humanize.Time(k.UpdatedAt), k.ETag)
		items = append(items, keyItem{title: k.Key, desc: desc})
	}

	m.list = list.New(items, list.NewDefaultDelegate(), m.width, m.height-4)
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(true)
	m.list.SetShowHelp(true)
}
