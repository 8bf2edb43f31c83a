package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meetulr/talawa-admin/internal/api"
	"github.com/meetulr/talawa-admin/internal/member"
	"github.com/meetulr/talawa-admin/internal/store"
	"github.com/meetulr/talawa-admin/internal/ui/components"
)

// --- Messages ---

type memberLoadedMsg struct {
	view   uint64
	member *api.Member
	err    error
}

type memberSavedMsg struct {
	view     uint64
	member   *api.Member
	cacheErr error
	err      error
}

type tagUnassignedMsg struct {
	view uint64
	tag  api.TagRef
	err  error
}

// --- Form Fields ---

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldEnum
	fieldDate
	fieldToggle
	fieldImage
)

type memberField struct {
	label   string
	kind    fieldKind
	ref     func(*member.Form) *string
	options []member.Option
}

var memberFields = []memberField{
	{label: "First Name", kind: fieldText, ref: func(f *member.Form) *string { return &f.FirstName }},
	{label: "Last Name", kind: fieldText, ref: func(f *member.Form) *string { return &f.LastName }},
	{label: "Email", kind: fieldText, ref: func(f *member.Form) *string { return &f.Email }},
	{label: "Gender", kind: fieldEnum, ref: func(f *member.Form) *string { return &f.Gender }, options: member.GenderOptions},
	{label: "Birth Date", kind: fieldDate, ref: func(f *member.Form) *string { return &f.BirthDate }},
	{label: "Education Grade", kind: fieldEnum, ref: func(f *member.Form) *string { return &f.EducationGrade }, options: member.EducationGradeOptions},
	{label: "Employment Status", kind: fieldEnum, ref: func(f *member.Form) *string { return &f.EmploymentStatus }, options: member.EmploymentStatusOptions},
	{label: "Marital Status", kind: fieldEnum, ref: func(f *member.Form) *string { return &f.MaritalStatus }, options: member.MaritalStatusOptions},
	{label: "Phone", kind: fieldText, ref: func(f *member.Form) *string { return &f.PhoneNumber }},
	{label: "Address", kind: fieldText, ref: func(f *member.Form) *string { return &f.Address }},
	{label: "City", kind: fieldText, ref: func(f *member.Form) *string { return &f.City }},
	{label: "State", kind: fieldText, ref: func(f *member.Form) *string { return &f.State }},
	{label: "Country Code", kind: fieldText, ref: func(f *member.Form) *string { return &f.CountryCode }},
	{label: "Language", kind: fieldEnum, ref: func(f *member.Form) *string { return &f.AppLanguageCode }, options: member.LanguageOptions},
	{label: "Image", kind: fieldImage},
	{label: "Plugin Creation", kind: fieldToggle},
}

func (f memberField) editable() bool {
	return f.kind == fieldText || f.kind == fieldDate || f.kind == fieldImage
}

// --- Member Model ---

// MemberModel shows one member's profile, edits it, and manages the tags
// assigned to them.
type MemberModel struct {
	id       uint64
	client   *api.Client
	cache    *store.Store
	orgID    string
	memberID string

	member  *api.Member
	loading bool
	tagList *components.List

	editing   bool
	saving    bool
	form      member.Form
	original  member.Form
	field     int
	input     textinput.Model
	imagePath string

	confirmUnassign *api.TagRef
	assign          *AssignTagsModal

	width  int
	height int
}

// NewMemberModel creates the member screen for memberID.
func NewMemberModel(client *api.Client, cache *store.Store, orgID, memberID string) MemberModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	return MemberModel{
		id:       nextViewID(),
		client:   client,
		cache:    cache,
		orgID:    orgID,
		memberID: memberID,
		tagList:  components.NewList(8),
		input:    ti,
	}
}

func (m MemberModel) Init() tea.Cmd {
	if m.memberID == "" {
		return nil
	}
	return m.load()
}

func (m MemberModel) capturesKeys() bool {
	return m.editing || m.confirmUnassign != nil || m.assign != nil
}

// hasUnsaved reports whether the edit form differs from the loaded record.
func (m MemberModel) hasUnsaved() bool {
	if !m.editing {
		return false
	}
	form := m.form
	m.commitInput(&form)
	return form != m.original || strings.TrimSpace(m.imagePath) != ""
}

func (m MemberModel) load() tea.Cmd {
	client := m.client
	view := m.id
	id := m.memberID
	return func() tea.Msg {
		if client == nil {
			return memberLoadedMsg{view: view, err: fmt.Errorf("api client not configured")}
		}
		mem, err := client.GetMember(id)
		return memberLoadedMsg{view: view, member: mem, err: err}
	}
}

func (m MemberModel) Update(msg tea.Msg) (MemberModel, tea.Cmd) {
	if m.assign != nil {
		switch msg.(type) {
		case tagPageLoadedMsg, ancestorsLoadedMsg, assignDoneMsg, tea.KeyMsg:
			modal, cmd := m.assign.Update(msg)
			if !modal.closed {
				m.assign = &modal
				return m, cmd
			}
			m.assign = nil
			if modal.assigned {
				m.loading = true
				return m, tea.Batch(cmd, m.load())
			}
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case memberLoadedMsg:
		if msg.view != m.id {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, errCmd(fmt.Errorf("load member: %w", msg.err))
		}
		m.setMember(msg.member)
		return m, nil

	case memberSavedMsg:
		if msg.view != m.id {
			return m, nil
		}
		m.saving = false
		if msg.err != nil {
			return m, errCmd(fmt.Errorf("update member: %w", msg.err))
		}
		m.editing = false
		m.imagePath = ""
		m.input.Blur()
		if msg.member != nil {
			m.setMember(msg.member)
		}
		if msg.cacheErr != nil {
			return m, toastCmd("warning", "Profile saved, but the local cache was not refreshed: "+msg.cacheErr.Error())
		}
		return m, toastCmd("success", "Profile updated.")

	case tagUnassignedMsg:
		if msg.view != m.id {
			return m, nil
		}
		if msg.err != nil {
			return m, errCmd(fmt.Errorf("unassign tag: %w", msg.err))
		}
		m.loading = true
		return m, tea.Batch(
			m.load(),
			toastCmd("success", fmt.Sprintf("Tag %q unassigned.", components.SanitizeOneLine(msg.tag.Name))),
		)

	case tea.KeyMsg:
		switch {
		case m.confirmUnassign != nil:
			return m.handleConfirmKeys(msg)
		case m.editing:
			return m.handleEditKeys(msg)
		default:
			return m.handleViewKeys(msg)
		}
	}
	return m, nil
}

func (m *MemberModel) setMember(mem *api.Member) {
	m.member = mem
	ids := make([]string, len(mem.TagsAssigned))
	for i, t := range mem.TagsAssigned {
		ids[i] = t.ID
	}
	m.tagList.Replace(ids)
	if !m.editing {
		m.form = member.FromMember(*mem)
		m.original = m.form
	}
}

// --- View Mode ---

func (m MemberModel) handleViewKeys(msg tea.KeyMsg) (MemberModel, tea.Cmd) {
	switch {
	case isDown(msg):
		m.tagList.Down()
	case isUp(msg):
		m.tagList.Up()
	case isKey(msg, "r"):
		if m.memberID == "" {
			return m, nil
		}
		m.loading = true
		return m, m.load()
	case isKey(msg, "e"):
		if m.member == nil {
			return m, nil
		}
		m.editing = true
		m.form = member.FromMember(*m.member)
		m.original = m.form
		m.imagePath = ""
		m.field = 0
		cmd := m.focusField()
		return m, cmd
	case isKey(msg, "a"):
		if m.member == nil {
			return m, nil
		}
		modal := NewAssignTagsModal(m.client, m.orgID, m.member.ID)
		modal.width = m.width
		m.assign = &modal
		return m, modal.Init()
	case isKey(msg, "u", "x"):
		tag, ok := m.currentTag()
		if !ok {
			return m, nil
		}
		m.confirmUnassign = &tag
	}
	return m, nil
}

func (m MemberModel) currentTag() (api.TagRef, bool) {
	if m.member == nil {
		return api.TagRef{}, false
	}
	idx := m.tagList.Selected()
	if idx < 0 || idx >= len(m.member.TagsAssigned) {
		return api.TagRef{}, false
	}
	return m.member.TagsAssigned[idx], true
}

func (m MemberModel) handleConfirmKeys(msg tea.KeyMsg) (MemberModel, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		tag := *m.confirmUnassign
		m.confirmUnassign = nil
		return m, m.unassign(tag)
	case isKey(msg, "n"), isBack(msg):
		m.confirmUnassign = nil
	}
	return m, nil
}

func (m MemberModel) unassign(tag api.TagRef) tea.Cmd {
	client := m.client
	view := m.id
	memberID := m.member.ID
	return func() tea.Msg {
		if client == nil {
			return tagUnassignedMsg{view: view, tag: tag, err: fmt.Errorf("api client not configured")}
		}
		err := client.UnassignUserTag(tag.ID, memberID)
		return tagUnassignedMsg{view: view, tag: tag, err: err}
	}
}

// --- Edit Mode ---

func (m MemberModel) handleEditKeys(msg tea.KeyMsg) (MemberModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	f := memberFields[m.field]
	switch {
	case isBack(msg):
		m.editing = false
		m.imagePath = ""
		m.form = m.original
		m.input.Blur()
		return m, nil
	case isSave(msg):
		return m.save()
	case isDown(msg), isKey(msg, "tab"):
		m.commitInput(&m.form)
		m.field = (m.field + 1) % len(memberFields)
		cmd := m.focusField()
		return m, cmd
	case isUp(msg), isKey(msg, "shift+tab"):
		m.commitInput(&m.form)
		m.field = (m.field - 1 + len(memberFields)) % len(memberFields)
		cmd := m.focusField()
		return m, cmd
	}

	switch f.kind {
	case fieldEnum:
		switch {
		case isKey(msg, "left"):
			p := f.ref(&m.form)
			*p = member.Cycle(f.options, *p, -1)
		case isKey(msg, "right"), isSpace(msg):
			p := f.ref(&m.form)
			*p = member.Cycle(f.options, *p, 1)
		}
		return m, nil
	case fieldToggle:
		if isSpace(msg) || isEnter(msg) || isKey(msg, "left", "right") {
			m.form.PluginCreationAllowed = !m.form.PluginCreationAllowed
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// focusField loads the highlighted field into the text input.
func (m *MemberModel) focusField() tea.Cmd {
	f := memberFields[m.field]
	if !f.editable() {
		m.input.Blur()
		return nil
	}
	switch f.kind {
	case fieldImage:
		m.input.Placeholder = "path to image file"
		m.input.SetValue(m.imagePath)
	case fieldDate:
		m.input.Placeholder = "YYYY-MM-DD"
		m.input.SetValue(*f.ref(&m.form))
	default:
		m.input.Placeholder = f.label
		m.input.SetValue(*f.ref(&m.form))
	}
	m.input.CursorEnd()
	return m.input.Focus()
}

// commitInput writes the text input back into form.
func (m *MemberModel) commitInput(form *member.Form) {
	f := memberFields[m.field]
	switch f.kind {
	case fieldImage:
		m.imagePath = m.input.Value()
	case fieldText, fieldDate:
		*f.ref(form) = m.input.Value()
	}
}

func (m MemberModel) save() (MemberModel, tea.Cmd) {
	m.commitInput(&m.form)
	if warnings := m.form.Validate(); len(warnings) > 0 {
		return m, toastCmd("warning", warnings...)
	}
	m.saving = true

	client := m.client
	cache := m.cache
	view := m.id
	id := m.member.ID
	form := m.form
	imagePath := strings.TrimSpace(m.imagePath)
	return m, func() tea.Msg {
		if client == nil {
			return memberSavedMsg{view: view, err: fmt.Errorf("api client not configured")}
		}
		if imagePath != "" {
			encoded, err := member.EncodeImage(imagePath)
			if err != nil {
				return memberSavedMsg{view: view, err: err}
			}
			form.Image = encoded
		}
		updated, err := client.UpdateMember(form.ToUpdateInput(id))
		if err != nil {
			return memberSavedMsg{view: view, err: err}
		}
		return memberSavedMsg{view: view, member: updated, cacheErr: refreshCache(cache, id, form)}
	}
}

// refreshCache rewrites the cached profile when id is the signed-in member.
func refreshCache(cache *store.Store, id string, form member.Form) error {
	if cache == nil {
		return nil
	}
	ctx := context.Background()
	current, ok, err := cache.GetItem(ctx, store.KeyID)
	if err != nil {
		return err
	}
	if !ok || current != id {
		return nil
	}
	return cache.SetItems(ctx, form.CacheItems())
}

// --- Rendering ---

func (m MemberModel) View() string {
	if m.assign != nil {
		return m.assign.View()
	}
	if m.confirmUnassign != nil {
		name := strings.TrimSpace(m.member.FirstName + " " + m.member.LastName)
		return components.ConfirmPreviewDialog("Unassign Tag", []components.TableRow{
			{Label: "Tag", Value: m.confirmUnassign.Name},
			{Label: "Member", Value: name},
		}, m.width)
	}
	if m.memberID == "" {
		return components.TitledBox("Member", MutedStyle.Render("No member configured. Run talawa login or pass a member id."), m.width)
	}
	if m.member == nil {
		return components.TitledBox("Member", MutedStyle.Render("Loading member..."), m.width)
	}
	if m.editing {
		return m.renderEdit()
	}
	out := m.renderProfile() + "\n" + m.renderTags()
	if m.loading {
		out += "\n" + MutedStyle.Render("Refreshing...")
	}
	return out
}

func (m MemberModel) renderHeader() string {
	mem := m.member
	name := strings.TrimSpace(mem.FirstName + " " + mem.LastName)
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			SelectedStyle.Render(components.SanitizeOneLine(name)),
			" ",
			TypeBadgeStyle.Render(mem.Role()),
		),
		MutedStyle.Render(components.SanitizeOneLine(mem.Email)),
		MutedStyle.Render("Joined on " + member.PrettyDate(mem.CreatedAt)),
		MutedStyle.Render("Language: " + member.LanguageName(mem.Profile.AppLanguageCode)),
	}
	return strings.Join(lines, "\n")
}

func (m MemberModel) renderProfile() string {
	form := member.FromMember(*m.member)
	rows := make([]string, 0, len(memberFields))
	for _, f := range memberFields {
		rows = append(rows, components.InfoRow(f.label, fieldDisplay(f, form, "")))
	}
	body := m.renderHeader() + "\n\n" + strings.Join(rows, "\n")
	return components.TitledBox("Member", body, m.width)
}

func (m MemberModel) renderTags() string {
	tags := m.member.TagsAssigned
	if len(tags) == 0 {
		return components.TitledBox("Tags", MutedStyle.Render("No tags assigned"), m.width)
	}
	ids := m.tagList.Visible()
	lines := make([]string, 0, len(ids))
	for i := range ids {
		abs := m.tagList.RelToAbs(i)
		name := NormalStyle.Render(components.SanitizeOneLine(tags[abs].Name))
		if m.tagList.IsSelected(abs) {
			lines = append(lines, SelectedStyle.Render("  > ")+name)
		} else {
			lines = append(lines, "    "+name)
		}
	}
	return components.TitledBox(fmt.Sprintf("Tags (%d)", len(tags)), strings.Join(lines, "\n"), m.width)
}

func (m MemberModel) renderEdit() string {
	rows := make([]string, 0, len(memberFields)+2)
	for i, f := range memberFields {
		label := FieldLabelStyle.Render(fmt.Sprintf("%-18s", f.label))
		var value string
		if i == m.field && f.editable() {
			value = m.input.View()
		} else {
			value = fieldDisplay(f, m.form, m.imagePath)
			if i == m.field && f.kind == fieldEnum {
				value = AccentStyle.Render("‹ ") + value + AccentStyle.Render(" ›")
			}
		}
		prefix := "    "
		if i == m.field {
			prefix = SelectedStyle.Render("  > ")
		}
		rows = append(rows, prefix+label+" "+value)
	}
	if m.saving {
		rows = append(rows, "", MutedStyle.Render("Saving..."))
	}
	return components.ActiveBox(HeaderStyle.Render("Edit Member")+"\n\n"+strings.Join(rows, "\n"), m.width)
}

func fieldDisplay(f memberField, form member.Form, imagePath string) string {
	switch f.kind {
	case fieldToggle:
		if form.PluginCreationAllowed {
			return CheckedStyle.Render("[x]")
		}
		return MutedStyle.Render("[ ]")
	case fieldImage:
		if strings.TrimSpace(imagePath) != "" {
			return components.SanitizeOneLine(imagePath)
		}
		if form.Image == "" {
			return MutedStyle.Render("none")
		}
		return MutedStyle.Render("set")
	case fieldEnum:
		v := *f.ref(&form)
		if v == "" {
			return MutedStyle.Render("-")
		}
		return components.SanitizeOneLine(member.LabelFor(f.options, v))
	default:
		v := *f.ref(&form)
		if v == "" {
			return MutedStyle.Render("-")
		}
		return components.SanitizeOneLine(v)
	}
}

func (m MemberModel) hints() []string {
	switch {
	case m.assign != nil:
		return m.assign.hints()
	case m.confirmUnassign != nil:
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	case m.editing:
		return []string{
			components.Hint("↑/↓", "Fields"),
			components.Hint("←/→", "Cycle"),
			components.Hint("space", "Toggle"),
			components.Hint("ctrl+s", "Save"),
			components.Hint("esc", "Cancel"),
		}
	}
	return []string{
		components.Hint("↑/↓", "Tags"),
		components.Hint("e", "Edit"),
		components.Hint("a", "Assign Tags"),
		components.Hint("u", "Unassign"),
		components.Hint("r", "Reload"),
	}
}
