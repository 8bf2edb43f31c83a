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

type ancestorsLoadedMsg struct {
	req   tagtree.AncestorRequest
	chain []api.Tag
	err   error
}

type assignDoneMsg struct {
	session uint64
	count   int
	err     error
}

// --- Assign Tags Modal ---

// AssignTagsModal lets the user check tags in the org tag tree and assign
// all of them to one member. Checking a tag also checks its ancestors.
type AssignTagsModal struct {
	client     *api.Client
	memberID   string
	tags       tagTreeView
	sel        *tagtree.Selection
	submitting bool
	closed     bool
	assigned   bool
	width      int
}

// NewAssignTagsModal builds a fresh modal with every node collapsed and an
// empty selection.
func NewAssignTagsModal(client *api.Client, orgID, memberID string) AssignTagsModal {
	return AssignTagsModal{
		client:   client,
		memberID: memberID,
		tags:     newTagTreeView(client, orgID),
		sel:      tagtree.NewSelection(),
	}
}

func (m AssignTagsModal) Init() tea.Cmd {
	return m.tags.init()
}

// capturesKeys reports whether global shortcuts must be suppressed.
func (m AssignTagsModal) capturesKeys() bool {
	return !m.closed
}

func (m AssignTagsModal) Update(msg tea.Msg) (AssignTagsModal, tea.Cmd) {
	switch msg := msg.(type) {
	case tagPageLoadedMsg:
		if ok, err := m.tags.apply(msg); ok && err != nil {
			return m, errCmd(err)
		}
		return m, nil

	case ancestorsLoadedMsg:
		failures := m.sel.Resolve(msg.req, msg.chain, msg.err)
		if len(failures) == 0 {
			return m, nil
		}
		texts := make([]string, 0, len(failures))
		for _, f := range failures {
			texts = append(texts, fmt.Sprintf("Could not %s %q: %v", f.Request.Op, f.Request.Tag.Name, f.Err))
		}
		return m, toastCmd("error", texts...)

	case assignDoneMsg:
		if msg.session != m.sel.Session() {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			return m, errCmd(fmt.Errorf("assign tags: %w", msg.err))
		}
		m.assigned = true
		m.closed = true
		return m, toastCmd("success", fmt.Sprintf("%d tag(s) assigned.", msg.count))

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m AssignTagsModal) handleKeys(msg tea.KeyMsg) (AssignTagsModal, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch {
	case isBack(msg):
		m.closed = true
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
	case isSpace(msg):
		tag, ok := m.tags.currentTag()
		if !ok {
			return m, nil
		}
		req, issued := m.sel.Toggle(tag, !m.sel.IsChecked(tag.ID))
		if issued {
			return m, m.lookupAncestors(req)
		}
	case isKey(msg, "backspace"):
		explicit := m.sel.Explicit()
		if len(explicit) == 0 {
			return m, nil
		}
		if req, issued := m.sel.Deselect(explicit[len(explicit)-1]); issued {
			return m, m.lookupAncestors(req)
		}
	case isSave(msg):
		return m.submit()
	}
	return m, nil
}

func (m AssignTagsModal) lookupAncestors(req tagtree.AncestorRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if client == nil {
			return ancestorsLoadedMsg{req: req, err: fmt.Errorf("api client not configured")}
		}
		chain, err := client.UserTagAncestors(req.Tag.ID)
		return ancestorsLoadedMsg{req: req, chain: chain, err: err}
	}
}

func (m AssignTagsModal) submit() (AssignTagsModal, tea.Cmd) {
	if m.sel.Empty() {
		return m, toastCmd("warning", "No tag selected")
	}
	if m.sel.Pending() > 0 {
		return m, toastCmd("warning", "Still resolving parent tags, try again in a moment.")
	}
	m.submitting = true
	client := m.client
	memberID := m.memberID
	session := m.sel.Session()
	ids := m.sel.CheckedIDs()
	return m, func() tea.Msg {
		if client == nil {
			return assignDoneMsg{session: session, err: fmt.Errorf("api client not configured")}
		}
		for i, id := range ids {
			if err := client.AssignUserTag(id, memberID); err != nil {
				return assignDoneMsg{session: session, count: i, err: err}
			}
		}
		return assignDoneMsg{session: session, count: len(ids)}
	}
}

func (m AssignTagsModal) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Selected Tags"))
	b.WriteString("\n")
	explicit := m.sel.Explicit()
	if len(explicit) == 0 {
		b.WriteString(MutedStyle.Render("No tag selected"))
	} else {
		chips := make([]string, 0, len(explicit))
		for _, t := range explicit {
			chips = append(chips, ChipStyle.Render(components.SanitizeOneLine(t.Name)))
		}
		b.WriteString(strings.Join(chips, " "))
	}
	if n := m.sel.Pending(); n > 0 {
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render(fmt.Sprintf("Resolving parent tags (%d)...", n)))
	}
	b.WriteString("\n\n")
	b.WriteString(HeaderStyle.Render("All Tags"))
	b.WriteString("\n")
	m.tags.width = m.width
	b.WriteString(m.tags.render(m.sel.IsChecked))
	if m.submitting {
		b.WriteString("\n\n")
		b.WriteString(MutedStyle.Render("Assigning..."))
	}
	return components.TitledBox("Assign Tags", b.String(), m.width)
}

func (m AssignTagsModal) hints() []string {
	return []string{
		components.Hint("↑/↓", "Scroll"),
		components.Hint("enter/→", "Expand"),
		components.Hint("←", "Collapse"),
		components.Hint("space", "Check"),
		components.Hint("backspace", "Remove"),
		components.Hint("ctrl+s", "Assign"),
		components.Hint("esc", "Close"),
	}
}
