package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meetulr/talawa-admin/internal/api"
	"github.com/meetulr/talawa-admin/internal/tagtree"
	"github.com/meetulr/talawa-admin/internal/ui/components"
)

// --- Messages ---

type tagCreatedMsg struct {
	create uint64
	tag    *api.Tag
	err    error
}

type assignedMembersLoadedMsg struct {
	panel  uint64
	ticket tagtree.Ticket
	page   api.MemberPage
	err    error
}

// --- Tags Model ---

// TagsModel browses the organization tag tree, creates tags and manages
// who carries them.
type TagsModel struct {
	client *api.Client
	orgID  string
	tags   tagTreeView

	prompting    bool
	promptParent *api.Tag
	prompt       textinput.Model
	creating     bool
	createID     uint64

	addPeople *AddPeopleModal

	membersID    uint64
	membersTag   *api.Tag
	membersPager *tagtree.Pager[api.MemberRef]

	width  int
	height int
}

// NewTagsModel creates the tag browser.
func NewTagsModel(client *api.Client, orgID string) TagsModel {
	ti := textinput.New()
	ti.Placeholder = "tag name"
	ti.CharLimit = 128
	return TagsModel{
		client: client,
		orgID:  orgID,
		tags:   newTagTreeView(client, orgID),
		prompt: ti,
	}
}

func (m TagsModel) Init() tea.Cmd {
	return m.tags.init()
}

func (m TagsModel) capturesKeys() bool {
	return m.prompting || m.addPeople != nil
}

func (m TagsModel) Update(msg tea.Msg) (TagsModel, tea.Cmd) {
	if m.addPeople != nil {
		switch msg.(type) {
		case membersToAssignLoadedMsg, peopleAddedMsg, tea.KeyMsg:
			modal, cmd := m.addPeople.Update(msg)
			if !modal.closed {
				m.addPeople = &modal
				return m, cmd
			}
			m.addPeople = nil
			if modal.added {
				tag := modal.tag
				load := m.showMembers(&tag)
				return m, tea.Batch(cmd, load)
			}
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tagPageLoadedMsg:
		if ok, err := m.tags.apply(msg); ok && err != nil {
			return m, errCmd(err)
		}
		return m, nil

	case tagCreatedMsg:
		if !m.creating || msg.create != m.createID {
			return m, nil
		}
		m.creating = false
		if msg.err != nil {
			return m, errCmd(fmt.Errorf("create tag: %w", msg.err))
		}
		name := ""
		if msg.tag != nil {
			name = msg.tag.Name
		}
		reload := m.tags.reset()
		return m, tea.Batch(
			reload,
			toastCmd("success", fmt.Sprintf("Tag %q created.", components.SanitizeOneLine(name))),
		)

	case assignedMembersLoadedMsg:
		if msg.panel != m.membersID || m.membersPager == nil {
			return m, nil
		}
		if msg.err != nil {
			m.membersPager.Fail(msg.ticket)
			return m, errCmd(fmt.Errorf("load assigned members: %w", msg.err))
		}
		m.membersPager.Apply(msg.ticket, msg.page)
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKeys(msg)
		}
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m TagsModel) handleKeys(msg tea.KeyMsg) (TagsModel, tea.Cmd) {
	switch {
	case isDown(msg):
		m.tags.down()
	case isUp(msg):
		m.tags.up()
	case isEnter(msg):
		cmd := m.tags.activate()
		return m, cmd
	case isKey(msg, "right"):
		cmd := m.tags.expand()
		return m, cmd
	case isKey(msg, "left"):
		m.tags.collapse()
	case isKey(msg, "n"):
		if tag, ok := m.tags.currentTag(); ok {
			return m.openPrompt(&tag)
		}
		return m.openPrompt(nil)
	case isKey(msg, "N"):
		return m.openPrompt(nil)
	case isKey(msg, "p"):
		tag, ok := m.tags.currentTag()
		if !ok {
			return m, toastCmd("warning", "No tag selected")
		}
		modal := NewAddPeopleModal(m.client, tag)
		modal.width = m.width
		m.addPeople = &modal
		return m, modal.Init()
	case isKey(msg, "m"):
		tag, ok := m.tags.currentTag()
		if !ok {
			return m, toastCmd("warning", "No tag selected")
		}
		if m.membersTag != nil && m.membersTag.ID == tag.ID {
			m.membersTag = nil
			m.membersPager = nil
			return m, nil
		}
		cmd := m.showMembers(&tag)
		return m, cmd
	case isKey(msg, "M"):
		if m.membersPager == nil {
			return m, nil
		}
		ticket, ok := m.membersPager.LoadMore()
		if !ok {
			return m, nil
		}
		return m, m.fetchMembers(ticket)
	case isKey(msg, "r"):
		m.membersTag = nil
		m.membersPager = nil
		cmd := m.tags.reset()
		return m, cmd
	}
	return m, nil
}

func (m *TagsModel) openPrompt(parent *api.Tag) (TagsModel, tea.Cmd) {
	m.prompting = true
	m.promptParent = parent
	m.prompt.SetValue("")
	cmd := m.prompt.Focus()
	return *m, cmd
}

func (m TagsModel) handlePromptKeys(msg tea.KeyMsg) (TagsModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case isEnter(msg):
		name := strings.TrimSpace(m.prompt.Value())
		if name == "" {
			return m, toastCmd("warning", "Tag name cannot be blank!")
		}
		m.prompting = false
		m.prompt.Blur()
		m.creating = true
		m.createID = nextViewID()
		return m, m.createTag(name)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m TagsModel) createTag(name string) tea.Cmd {
	client := m.client
	create := m.createID
	input := api.CreateTagInput{Name: name, OrganizationID: m.orgID}
	if m.promptParent != nil {
		input.ParentTagID = m.promptParent.ID
	}
	return func() tea.Msg {
		if client == nil {
			return tagCreatedMsg{create: create, err: fmt.Errorf("api client not configured")}
		}
		tag, err := client.CreateUserTag(input)
		return tagCreatedMsg{create: create, tag: tag, err: err}
	}
}

// showMembers opens the assigned-members panel for tag and loads its first
// page. Any previous panel is discarded.
func (m *TagsModel) showMembers(tag *api.Tag) tea.Cmd {
	m.membersID = nextViewID()
	m.membersTag = tag
	m.membersPager = tagtree.NewPager[api.MemberRef](tagtree.MembersToAssignPageSize)
	ticket, _ := m.membersPager.Start()
	return m.fetchMembers(ticket)
}

func (m TagsModel) fetchMembers(ticket tagtree.Ticket) tea.Cmd {
	client := m.client
	panel := m.membersID
	tagID := m.membersTag.ID
	return func() tea.Msg {
		msg := assignedMembersLoadedMsg{panel: panel, ticket: ticket}
		if client == nil {
			msg.err = fmt.Errorf("api client not configured")
			return msg
		}
		msg.page, msg.err = client.UserTagAssignedMembers(tagID, ticket.Args)
		return msg
	}
}

func (m TagsModel) View() string {
	if m.addPeople != nil {
		return m.addPeople.View()
	}
	if m.prompting {
		title := "New Tag"
		if m.promptParent != nil {
			title = "New Tag under " + components.SanitizeOneLine(m.promptParent.Name)
		}
		return components.Indent(components.InputDialog(title, m.prompt.Value()), 1)
	}

	m.tags.width = m.width
	body := m.tags.render(nil)
	if m.creating {
		body += "\n\n" + MutedStyle.Render("Creating tag...")
	}
	out := components.TitledBox("Tags", body, m.width)
	if m.membersTag != nil {
		out += "\n" + components.TitledBox("Assigned to "+components.SanitizeOneLine(m.membersTag.Name), m.renderMembers(), m.width)
	}
	return out
}

func (m TagsModel) renderMembers() string {
	items := m.membersPager.Items()
	if len(items) == 0 {
		if m.membersPager.Loading() {
			return MutedStyle.Render("Loading members...")
		}
		return MutedStyle.Render("No one assigned")
	}
	tableWidth := components.BoxContentWidth(m.width)
	if tableWidth <= 0 {
		tableWidth = 60
	}
	cols := []components.TableColumn{
		{Header: "Name", Width: tableWidth / 2},
		{Header: "ID", Width: tableWidth / 3},
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.DisplayName(), it.ID})
	}
	lines := []string{components.TableGrid(cols, rows, tableWidth)}
	switch {
	case m.membersPager.Loading():
		lines = append(lines, MutedStyle.Render("  Loading more..."))
	case m.membersPager.CanLoadMore():
		lines = append(lines, MutedStyle.Render(fmt.Sprintf("  %d of %d, press M for more", len(items), m.membersPager.Total())))
	}
	return strings.Join(lines, "\n")
}

func (m TagsModel) hints() []string {
	if m.addPeople != nil {
		return m.addPeople.hints()
	}
	if m.prompting {
		return []string{
			components.Hint("enter", "Create"),
			components.Hint("esc", "Cancel"),
		}
	}
	return []string{
		components.Hint("↑/↓", "Scroll"),
		components.Hint("enter", "Expand"),
		components.Hint("n", "New"),
		components.Hint("N", "New Root"),
		components.Hint("p", "Add People"),
		components.Hint("m", "Members"),
		components.Hint("r", "Reload"),
	}
}
