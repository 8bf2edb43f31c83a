package ui

import (
	"fmt"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meetulr/talawa-admin/internal/api"
	"github.com/meetulr/talawa-admin/internal/tagtree"
	"github.com/meetulr/talawa-admin/internal/ui/components"
)

// viewSeq hands out ids to every tree view and modal instance so responses
// addressed to a disposed instance are dropped.
var viewSeq atomic.Uint64

func nextViewID() uint64 {
	return viewSeq.Add(1)
}

// tagPageLoadedMsg carries one page of roots (parentID == "") or children.
type tagPageLoadedMsg struct {
	view     uint64
	parentID string
	ticket   tagtree.Ticket
	page     api.TagPage
	err      error
}

const tagTreeVisibleRows = 12

// tagTreeView is the navigable, lazily loaded tag forest shared by the tag
// browser and the assign-to-tags modal.
type tagTreeView struct {
	id     uint64
	client *api.Client
	orgID  string
	tree   *tagtree.Tree
	rows   []tagtree.Row
	list   *components.List
	width  int
}

func newTagTreeView(client *api.Client, orgID string) tagTreeView {
	return tagTreeView{
		id:     nextViewID(),
		client: client,
		orgID:  orgID,
		tree:   tagtree.NewTree(),
		list:   components.NewList(tagTreeVisibleRows),
	}
}

// init requests the first page of root tags.
func (v *tagTreeView) init() tea.Cmd {
	ticket, ok := v.tree.Roots().Start()
	if !ok {
		return nil
	}
	return v.fetch("", ticket)
}

// reset discards the whole tree and reloads the roots.
func (v *tagTreeView) reset() tea.Cmd {
	v.id = nextViewID()
	v.tree = tagtree.NewTree()
	v.rows = nil
	v.list.SetItems(nil)
	return v.init()
}

func (v tagTreeView) fetch(parentID string, ticket tagtree.Ticket) tea.Cmd {
	client := v.client
	orgID := v.orgID
	view := v.id
	return func() tea.Msg {
		msg := tagPageLoadedMsg{view: view, parentID: parentID, ticket: ticket}
		if client == nil {
			msg.err = fmt.Errorf("api client not configured")
			return msg
		}
		if parentID == "" {
			if orgID == "" {
				msg.err = fmt.Errorf("organization id not configured; run talawa login")
				return msg
			}
			msg.page, msg.err = client.OrganizationUserTags(orgID, ticket.Args)
			return msg
		}
		msg.page, msg.err = client.UserTagChildTags(parentID, ticket.Args)
		return msg
	}
}

// apply stores a fetched page. It reports whether the message belonged to
// this view, and the fetch error if any.
func (v *tagTreeView) apply(msg tagPageLoadedMsg) (bool, error) {
	if msg.view != v.id {
		return false, nil
	}
	if msg.err != nil {
		if msg.parentID == "" {
			v.tree.Roots().Fail(msg.ticket)
		} else {
			v.tree.FailChildren(msg.parentID, msg.ticket)
		}
		v.refresh()
		return true, msg.err
	}
	if msg.parentID == "" {
		v.tree.Roots().Apply(msg.ticket, msg.page)
	} else {
		v.tree.ApplyChildren(msg.parentID, msg.ticket, msg.page)
	}
	v.refresh()
	return true, nil
}

func (v *tagTreeView) refresh() {
	v.rows = v.tree.Rows()
	keys := make([]string, len(v.rows))
	for i, r := range v.rows {
		keys[i] = r.Tag.ID
	}
	v.list.Replace(keys)
}

func (v *tagTreeView) up()   { v.list.Up() }
func (v *tagTreeView) down() { v.list.Down() }

// current returns the highlighted row.
func (v tagTreeView) current() (tagtree.Row, bool) {
	idx := v.list.Selected()
	if idx < 0 || idx >= len(v.rows) {
		return tagtree.Row{}, false
	}
	return v.rows[idx], true
}

// currentTag returns the highlighted tag, if the cursor is on a tag row.
func (v tagTreeView) currentTag() (api.Tag, bool) {
	row, ok := v.current()
	if !ok || row.Kind != tagtree.RowTag {
		return api.Tag{}, false
	}
	return row.Tag, true
}

// activate toggles the highlighted tag open or closed, or follows the
// highlighted load-more row.
func (v *tagTreeView) activate() tea.Cmd {
	row, ok := v.current()
	if !ok {
		return nil
	}
	switch row.Kind {
	case tagtree.RowTag:
		ticket, fetch := v.tree.ToggleExpand(row.Tag)
		v.refresh()
		if fetch {
			return v.fetch(row.Tag.ID, ticket)
		}
	case tagtree.RowLoadMore:
		return v.loadMore(row.ListID)
	}
	return nil
}

// expand opens the highlighted tag; it never collapses.
func (v *tagTreeView) expand() tea.Cmd {
	tag, ok := v.currentTag()
	if !ok {
		return v.activate()
	}
	ticket, fetch := v.tree.Expand(tag)
	v.refresh()
	if fetch {
		return v.fetch(tag.ID, ticket)
	}
	return nil
}

// collapse closes the highlighted tag.
func (v *tagTreeView) collapse() {
	if tag, ok := v.currentTag(); ok {
		v.tree.Collapse(tag.ID)
		v.refresh()
	}
}

func (v *tagTreeView) loadMore(listID string) tea.Cmd {
	var (
		ticket tagtree.Ticket
		ok     bool
	)
	if listID == "" {
		ticket, ok = v.tree.Roots().LoadMore()
	} else {
		ticket, ok = v.tree.LoadMoreChildren(listID)
	}
	v.refresh()
	if !ok {
		return nil
	}
	return v.fetch(listID, ticket)
}

// render draws the visible rows. checked is nil when the view has no
// checkboxes.
func (v tagTreeView) render(checked func(id string) bool) string {
	roots := v.tree.Roots()
	if len(v.rows) == 0 {
		switch {
		case roots.Loading():
			return MutedStyle.Render("Loading tags...")
		case !roots.Loaded():
			return MutedStyle.Render("Tags not loaded")
		default:
			return MutedStyle.Render("No tags found")
		}
	}

	contentWidth := components.BoxContentWidth(v.width)
	visible := v.list.Visible()
	lines := make([]string, 0, len(visible))
	for i := range visible {
		abs := v.list.RelToAbs(i)
		line := renderTagRow(v.rows[abs], checked)
		if contentWidth > 4 && lipgloss.Width(line) > contentWidth-4 {
			line = components.ClampTextWidth(line, contentWidth-4)
		}
		if v.list.IsSelected(abs) {
			lines = append(lines, SelectedStyle.Render("  > ")+line)
		} else {
			lines = append(lines, "    "+line)
		}
	}
	return strings.Join(lines, "\n")
}

func renderTagRow(row tagtree.Row, checked func(id string) bool) string {
	indent := strings.Repeat("  ", row.Depth)
	switch row.Kind {
	case tagtree.RowLoading:
		return indent + MutedStyle.Render("Loading subtags...")
	case tagtree.RowLoadMore:
		return indent + MutedStyle.Render("...fetch more")
	}

	marker := " "
	if !row.Tag.IsLeaf() {
		switch row.State {
		case tagtree.NodeExpanded:
			marker = "▾"
		case tagtree.NodeLoading:
			marker = "…"
		default:
			marker = "▸"
		}
	}
	parts := []string{indent + AccentStyle.Render(marker)}
	if checked != nil {
		if checked(row.Tag.ID) {
			parts = append(parts, CheckedStyle.Render("[x]"))
		} else {
			parts = append(parts, MutedStyle.Render("[ ]"))
		}
	}
	parts = append(parts, NormalStyle.Render(components.SanitizeOneLine(row.Tag.Name)))
	if !row.Tag.IsLeaf() {
		parts = append(parts, MutedStyle.Render(fmt.Sprintf("(%d)", row.Tag.ChildCount)))
	}
	return strings.Join(parts, " ")
}
