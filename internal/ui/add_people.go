package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/meetulr/talawa-admin/internal/api"
	"github.com/meetulr/talawa-admin/internal/tagtree"
	"github.com/meetulr/talawa-admin/internal/ui/components"
)

// --- Messages ---

type membersToAssignLoadedMsg struct {
	modal  uint64
	ticket tagtree.Ticket
	page   api.MemberPage
	err    error
}

type peopleAddedMsg struct {
	modal uint64
	tagID string
	count int
	err   error
}

const (
	addPeopleVisibleRows = tagtree.MembersToAssignPageSize + 1
	loadMoreKey          = "\x00more"
)

// --- Add People Modal ---

// AddPeopleModal collects members that do not carry a tag yet and adds them
// to it in one mutation.
type AddPeopleModal struct {
	id         uint64
	client     *api.Client
	tag        api.Tag
	pager      *tagtree.Pager[api.MemberRef]
	list       *components.List
	pending    []api.MemberRef
	chip       int
	submitting bool
	closed     bool
	added      bool
	width      int
}

// NewAddPeopleModal builds the modal for tag.
func NewAddPeopleModal(client *api.Client, tag api.Tag) AddPeopleModal {
	return AddPeopleModal{
		id:     nextViewID(),
		client: client,
		tag:    tag,
		pager:  tagtree.NewPager[api.MemberRef](tagtree.MembersToAssignPageSize),
		list:   components.NewList(addPeopleVisibleRows),
	}
}

func (m AddPeopleModal) Init() tea.Cmd {
	ticket, ok := m.pager.Start()
	if !ok {
		return nil
	}
	return m.fetch(ticket)
}

func (m AddPeopleModal) fetch(ticket tagtree.Ticket) tea.Cmd {
	client := m.client
	modal := m.id
	tagID := m.tag.ID
	return func() tea.Msg {
		msg := membersToAssignLoadedMsg{modal: modal, ticket: ticket}
		if client == nil {
			msg.err = fmt.Errorf("api client not configured")
			return msg
		}
		msg.page, msg.err = client.UserTagMembersToAssignTo(tagID, ticket.Args)
		return msg
	}
}

func (m AddPeopleModal) Update(msg tea.Msg) (AddPeopleModal, tea.Cmd) {
	switch msg := msg.(type) {
	case membersToAssignLoadedMsg:
		if msg.modal != m.id {
			return m, nil
		}
		if msg.err != nil {
			m.pager.Fail(msg.ticket)
			m.refresh()
			return m, errCmd(fmt.Errorf("load members: %w", msg.err))
		}
		m.pager.Apply(msg.ticket, msg.page)
		m.refresh()
		return m, nil

	case peopleAddedMsg:
		if msg.modal != m.id {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			return m, errCmd(fmt.Errorf("add people: %w", msg.err))
		}
		m.pending = nil
		m.chip = 0
		m.added = true
		m.closed = true
		return m, toastCmd("success", fmt.Sprintf("%d people added to %s.", msg.count, components.SanitizeOneLine(m.tag.Name)))

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m AddPeopleModal) handleKeys(msg tea.KeyMsg) (AddPeopleModal, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch {
	case isBack(msg):
		m.closed = true
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isEnter(msg):
		if m.onLoadMore() {
			return m.loadMore()
		}
		m.togglePending()
	case isSpace(msg):
		if m.onLoadMore() {
			return m.loadMore()
		}
		m.togglePending()
	case isKey(msg, "left"):
		if m.chip > 0 {
			m.chip--
		}
	case isKey(msg, "right"):
		if m.chip < len(m.pending)-1 {
			m.chip++
		}
	case isKey(msg, "backspace"):
		m.removeChip()
	case isSave(msg):
		return m.submit()
	}
	return m, nil
}

func (m *AddPeopleModal) refresh() {
	items := m.pager.Items()
	keys := make([]string, 0, len(items)+1)
	for _, it := range items {
		keys = append(keys, it.ID)
	}
	if m.pager.CanLoadMore() {
		keys = append(keys, loadMoreKey)
	}
	m.list.Replace(keys)
}

func (m AddPeopleModal) onLoadMore() bool {
	idx := m.list.Selected()
	return idx >= 0 && idx < len(m.list.Items) && m.list.Items[idx] == loadMoreKey
}

func (m AddPeopleModal) loadMore() (AddPeopleModal, tea.Cmd) {
	ticket, ok := m.pager.LoadMore()
	if !ok {
		return m, nil
	}
	return m, m.fetch(ticket)
}

func (m *AddPeopleModal) togglePending() {
	idx := m.list.Selected()
	items := m.pager.Items()
	if idx < 0 || idx >= len(items) {
		return
	}
	member := items[idx]
	for i, p := range m.pending {
		if p.ID == member.ID {
			m.pending = append(m.pending[:i:i], m.pending[i+1:]...)
			m.clampChip()
			return
		}
	}
	m.pending = append(m.pending, member)
	m.chip = len(m.pending) - 1
}

// removeChip drops the focused pending member.
func (m *AddPeopleModal) removeChip() {
	if len(m.pending) == 0 {
		return
	}
	m.pending = append(m.pending[:m.chip:m.chip], m.pending[m.chip+1:]...)
	m.clampChip()
}

func (m *AddPeopleModal) clampChip() {
	if m.chip >= len(m.pending) {
		m.chip = len(m.pending) - 1
	}
	if m.chip < 0 {
		m.chip = 0
	}
}

func (m AddPeopleModal) isPending(id string) bool {
	for _, p := range m.pending {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (m AddPeopleModal) submit() (AddPeopleModal, tea.Cmd) {
	if len(m.pending) == 0 {
		return m, toastCmd("warning", "No one selected")
	}
	m.submitting = true
	client := m.client
	modal := m.id
	tagID := m.tag.ID
	ids := make([]string, len(m.pending))
	for i, p := range m.pending {
		ids[i] = p.ID
	}
	return m, func() tea.Msg {
		if client == nil {
			return peopleAddedMsg{modal: modal, tagID: tagID, err: fmt.Errorf("api client not configured")}
		}
		_, err := client.AddPeopleToTag(tagID, ids)
		return peopleAddedMsg{modal: modal, tagID: tagID, count: len(ids), err: err}
	}
}

func (m AddPeopleModal) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Selected"))
	b.WriteString("\n")
	if len(m.pending) == 0 {
		b.WriteString(MutedStyle.Render("No one selected"))
	} else {
		chips := make([]string, 0, len(m.pending))
		for i, p := range m.pending {
			style := ChipStyle
			if i == m.chip {
				style = FocusedChipStyle
			}
			chips = append(chips, style.Render(components.SanitizeOneLine(p.DisplayName())))
		}
		b.WriteString(strings.Join(chips, " "))
	}
	b.WriteString("\n\n")
	b.WriteString(HeaderStyle.Render("Members"))
	b.WriteString("\n")
	b.WriteString(m.renderList())
	if m.submitting {
		b.WriteString("\n\n")
		b.WriteString(MutedStyle.Render("Adding..."))
	}
	title := "Add People to " + components.SanitizeOneLine(m.tag.Name)
	return components.TitledBox(title, b.String(), m.width)
}

func (m AddPeopleModal) renderList() string {
	items := m.pager.Items()
	if len(items) == 0 {
		switch {
		case m.pager.Loading():
			return MutedStyle.Render("Loading members...")
		case !m.pager.Loaded():
			return MutedStyle.Render("Members not loaded")
		default:
			return MutedStyle.Render("No one to assign")
		}
	}
	visible := m.list.Visible()
	lines := make([]string, 0, len(visible)+1)
	for i := range visible {
		abs := m.list.RelToAbs(i)
		var line string
		if abs >= len(items) {
			line = MutedStyle.Render("...fetch more")
		} else {
			box := MutedStyle.Render("[ ]")
			if m.isPending(items[abs].ID) {
				box = CheckedStyle.Render("[x]")
			}
			line = box + " " + NormalStyle.Render(components.SanitizeOneLine(items[abs].DisplayName()))
		}
		if m.list.IsSelected(abs) {
			lines = append(lines, SelectedStyle.Render("  > ")+line)
		} else {
			lines = append(lines, "    "+line)
		}
	}
	if m.pager.Loading() {
		lines = append(lines, MutedStyle.Render("    Loading more..."))
	}
	return strings.Join(lines, "\n")
}

func (m AddPeopleModal) hints() []string {
	return []string{
		components.Hint("↑/↓", "Scroll"),
		components.Hint("space", "Toggle"),
		components.Hint("←/→", "Pick"),
		components.Hint("backspace", "Remove"),
		components.Hint("ctrl+s", "Add"),
		components.Hint("esc", "Close"),
	}
}
