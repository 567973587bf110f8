package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/notepid/roomielink/internal/app"
	"github.com/notepid/roomielink/internal/filter"
	"github.com/notepid/roomielink/internal/user"
)

type usersModel struct {
	app       *app.App
	partition user.Partition

	width  int
	height int

	Done bool

	state usersState

	list list.Model
	err  error

	selected *user.User

	form *huh.Form

	createUsername string
	createPassword string
	createName     string
	createEmail    string
	createAffil    string
	createSave     bool

	editName  string
	editEmail string
	editSave  bool

	newPassword string
	pwConfirm   string
	pwSave      bool
}

type usersState int

const (
	usersStateList usersState = iota
	usersStateDetail
	usersStateCreate
	usersStateEditProfile
	usersStateResetPassword
)

type userItem struct {
	username string
	title    string
	desc     string
	kind     string
}

func (i userItem) Title() string       { return i.title }
func (i userItem) Description() string { return i.desc }
func (i userItem) FilterValue() string { return i.title }

func newUsersModel(a *app.App, partition user.Partition) *usersModel {
	m := &usersModel{app: a, partition: partition, state: usersStateList}
	m.reloadList()
	return m
}

func (m *usersModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h-2)
}

func (m *usersModel) Finished() bool { return m.Done }

func (m *usersModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.err = nil
				m.state = usersStateList
				m.form = nil
				m.selected = nil
				m.reloadList()
			}
		}
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			if m.state == usersStateList {
				m.Done = true
				return nil
			}
		case "esc":
			m.back()
			return nil
		}
	}

	switch m.state {
	case usersStateList:
		return m.updateList(msg)
	case usersStateDetail:
		return m.updateDetail(msg)
	case usersStateCreate, usersStateEditProfile, usersStateResetPassword:
		return m.updateForm(msg)
	default:
		return nil
	}
}

func (m *usersModel) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			it, ok := m.list.SelectedItem().(userItem)
			if !ok {
				return cmd
			}
			if it.kind == "create" {
				m.startCreate()
				return nil
			}

			u, err := m.app.Users.Get(m.partition, it.username)
			if err != nil {
				m.err = err
				return nil
			}
			m.selected = u
			m.state = usersStateDetail
			m.list = newActionList(m.width, m.height)
			return nil
		}
	}

	return cmd
}

func (m *usersModel) updateDetail(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			it, ok := m.list.SelectedItem().(userItem)
			if !ok {
				return cmd
			}
			switch it.kind {
			case "edit_profile":
				m.startEditProfile()
			case "reset_password":
				m.startResetPassword()
			case "back":
				m.back()
			}
			return nil
		}
	}

	return cmd
}

func (m *usersModel) updateForm(msg tea.Msg) tea.Cmd {
	if m.form == nil {
		m.err = fmt.Errorf("internal error: form not initialized")
		return nil
	}
	updated, cmd := m.form.Update(msg)
	f, ok := updated.(*huh.Form)
	if !ok {
		m.err = fmt.Errorf("internal error: unexpected form model type")
		return nil
	}
	m.form = f
	if m.form.State != huh.StateCompleted {
		return cmd
	}

	switch m.state {
	case usersStateCreate:
		if m.createSave {
			profile := user.Profile{Name: m.createName}
			if m.partition == user.Students {
				profile.University = m.createAffil
			} else {
				profile.Company = m.createAffil
			}
			if _, err := m.app.Users.CreateAccount(nil, m.partition, strings.TrimSpace(m.createUsername), m.createPassword, strings.TrimSpace(m.createEmail), profile); err != nil {
				m.err = err
				return nil
			}
		}
		m.form = nil
		m.state = usersStateList
		m.reloadList()
		return nil
	case usersStateEditProfile:
		if m.editSave && m.selected != nil {
			u, err := m.app.Users.UpdateProfile(m.partition, m.selected.Username, m.editName, strings.TrimSpace(m.editEmail))
			if err != nil {
				m.err = err
				return nil
			}
			m.selected = u
		}
	case usersStateResetPassword:
		if m.pwSave && m.selected != nil {
			if err := m.app.Users.ResetPassword(m.partition, m.selected.Username, m.newPassword); err != nil {
				m.err = err
				return nil
			}
		}
	}
	m.form = nil
	m.state = usersStateDetail
	m.list = newActionList(m.width, m.height)
	return nil
}

func (m *usersModel) heading() string {
	if m.partition == user.Landlords {
		return "Landlords"
	}
	return "Students"
}

func (m *usersModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("%s error: %v\n\nPress Enter/Esc to go back.", m.heading(), m.err)
	}

	switch m.state {
	case usersStateList:
		m.list.Title = m.heading()
		return m.list.View() + "\n(q to quit, enter to select)"
	case usersStateDetail:
		if m.selected == nil {
			return "No user selected\n\n(esc to go back)"
		}
		u := m.selected
		header := titleStyle.Render(fmt.Sprintf("%s (%s)", u.Username, u.Initials)) + "\n"
		meta := fmt.Sprintf("Name: %s\nEmail: %s\n", u.Name, u.Email)
		if aff := u.Affiliation(); aff != "" {
			meta += fmt.Sprintf("Affiliation: %s\n", aff)
		}
		if m.partition == user.Students {
			meta += fmt.Sprintf("Saved posts: %d\n", len(u.SavedPosts))
		} else {
			meta += fmt.Sprintf("Listings: %d\nApplications: %d\n", len(u.Listings), len(u.Applications))
		}
		meta += dimStyle.Render(fmt.Sprintf("Joined %s, last login %s",
			humanize.Time(u.CreatedAt), humanize.Time(u.LastLogin))) + "\n\n"
		m.list.Title = "Actions"
		return header + meta + m.list.View() + "\n(esc to go back)"
	default:
		return m.form.View() + "\n\n(esc to go back)"
	}
}

func (m *usersModel) reloadList() {
	users, err := m.app.Users.List(m.partition)
	if err != nil {
		m.err = err
		return
	}

	items := make([]list.Item, 0, len(users)+1)
	items = append(items, userItem{title: "+ Create new " + m.partition.UserType(), desc: "Add a new account", kind: "create"})
	for _, u := range users {
		desc := fmt.Sprintf("%s • last login %s", u.Name, humanize.Time(u.LastLogin))
		if aff := u.Affiliation(); aff != "" {
			desc = fmt.Sprintf("%s, %s • last login %s", u.Name, aff, humanize.Time(u.LastLogin))
		}
		items = append(items, userItem{username: u.Username, title: u.Username, desc: desc, kind: "user"})
	}

	m.list = list.New(items, list.NewDefaultDelegate(), m.width, m.height-2)
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(true)
	m.list.SetShowHelp(true)
	m.list.Title = m.heading()
}

func newActionList(w, h int) list.Model {
	items := []list.Item{
		userItem{title: "Edit profile", desc: "Name and email", kind: "edit_profile"},
		userItem{title: "Reset password", desc: "Set a new password", kind: "reset_password"},
		userItem{title: "Back", desc: "Return to the account list", kind: "back"},
	}
	l := list.New(items, list.NewDefaultDelegate(), w, h-10)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)
	return l
}

// universityOptions lists every known university, grouped by city.
func universityOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, city := range filter.CityOrder {
		info := filter.Cities[city]
		for _, u := range info.Universities {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", u.Name, info.Name), u.Value))
		}
	}
	return opts
}

func (m *usersModel) startCreate() {
	m.state = usersStateCreate
	m.createUsername = ""
	m.createPassword = ""
	m.createName = ""
	m.createEmail = ""
	m.createAffil = ""
	m.createSave = true

	var affiliation huh.Field
	if m.partition == user.Students {
		affiliation = huh.NewSelect[string]().Title("University").Options(universityOptions()...).Value(&m.createAffil)
	} else {
		affiliation = huh.NewInput().Title("Company").Value(&m.createAffil).Validate(nonEmpty("company"))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&m.createUsername).Validate(nonEmpty("username")),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&m.createPassword).Validate(nonEmpty("password")),
			huh.NewInput().Title("Full name").Value(&m.createName).Validate(nonEmpty("name")),
			huh.NewInput().Title("Email").Value(&m.createEmail).Validate(nonEmpty("email")),
			affiliation,
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Create " + m.partition.UserType() + "?").Value(&m.createSave),
		),
	)
}

func (m *usersModel) startEditProfile() {
	m.state = usersStateEditProfile
	m.editName = m.selected.Name
	m.editEmail = m.selected.Email
	m.editSave = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full name").Value(&m.editName).Validate(nonEmpty("name")),
			huh.NewInput().Title("Email").Value(&m.editEmail).Validate(nonEmpty("email")),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Save changes?").Value(&m.editSave),
		),
	)
}

func (m *usersModel) startResetPassword() {
	m.state = usersStateResetPassword
	m.newPassword = ""
	m.pwConfirm = ""
	m.pwSave = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("New password").EchoMode(huh.EchoModePassword).Value(&m.newPassword).Validate(nonEmpty("password")),
			huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&m.pwConfirm).Validate(func(s string) error {
				if s != m.newPassword {
					return fmt.Errorf("passwords do not match")
				}
				return nil
			}),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Reset password?").Value(&m.pwSave),
		),
	)
}

func (m *usersModel) back() {
	switch m.state {
	case usersStateList:
		m.Done = true
	case usersStateDetail:
		m.state = usersStateList
		m.selected = nil
		m.form = nil
		m.reloadList()
	default:
		m.state = usersStateDetail
		m.form = nil
		m.list = newActionList(m.width, m.height)
	}
}

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}
