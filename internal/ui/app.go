package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meetulr/talawa-admin/internal/api"
	"github.com/meetulr/talawa-admin/internal/config"
	"github.com/meetulr/talawa-admin/internal/store"
	"github.com/meetulr/talawa-admin/internal/ui/components"
)

// --- Tab Constants ---

const (
	tabMember = 0
	tabTags   = 1
	tabCount  = 2
)

var tabNames = []string{"Member", "Tags"}

const startupCheckTimeout = 700 * time.Millisecond

// --- Messages ---

type errMsg struct{ err error }
type clearToastMsg struct{ seq int }

// toastMsg asks the app to show a transient notification. Each text is shown
// on its own line.
type toastMsg struct {
	level string
	texts []string
}

type startupCheckedMsg struct {
	status string
	err    error
}

type appToast struct {
	seq   int
	level string
	lines []string
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return errMsg{err} }
}

func toastCmd(level string, texts ...string) tea.Cmd {
	return func() tea.Msg { return toastMsg{level: level, texts: texts} }
}

// --- App Model ---

// App is the root TUI model that routes between tabs.
type App struct {
	client *api.Client
	config *config.Config
	cache  *store.Store

	tab         int
	width       int
	height      int
	err         string
	helpOpen    bool
	quitConfirm bool

	startupChecking bool
	toast           *appToast
	toastSeq        int

	member MemberModel
	tags   TagsModel
}

// NewApp creates the root application model.
func NewApp(client *api.Client, cfg *config.Config, cache *store.Store) App {
	var orgID, memberID string
	if cfg != nil {
		orgID = cfg.OrgID
		memberID = cfg.MemberID
	}
	return App{
		client:          client,
		config:          cfg,
		cache:           cache,
		tab:             tabMember,
		startupChecking: client != nil,
		member:          NewMemberModel(client, cache, orgID, memberID),
		tags:            NewTagsModel(client, orgID),
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.member.Init(), a.tags.Init()}
	if a.startupChecking {
		cmds = append(cmds, a.runStartupCheckCmd())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.member.width = msg.Width
		a.member.height = msg.Height
		a.tags.width = msg.Width
		a.tags.height = msg.Height
		if a.member.assign != nil {
			a.member.assign.width = msg.Width
		}
		if a.tags.addPeople != nil {
			a.tags.addPeople.width = msg.Width
		}
		return a, nil

	case errMsg:
		a.err = components.SanitizeText(msg.err.Error())
		return a, nil
	case toastMsg:
		cmd := a.setToast(msg.level, msg.texts...)
		return a, cmd
	case clearToastMsg:
		if a.toast != nil && a.toast.seq == msg.seq {
			a.toast = nil
		}
		return a, nil
	case startupCheckedMsg:
		a.startupChecking = false
		if msg.err != nil {
			cmd := a.setToast("warning", "API check failed: "+msg.err.Error())
			return a, cmd
		}
		cmd := a.setToast("success", fmt.Sprintf("Connected to %s (%s)", a.client.BaseURL(), msg.status))
		return a, cmd

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}
		if a.err != "" {
			a.err = ""
		}
		if isKey(msg, "ctrl+c") {
			return a.quit()
		}

		if !a.activeCapturesKeys() {
			switch {
			case isKey(msg, "?"):
				a.helpOpen = true
				return a, nil
			case isQuit(msg):
				return a.quit()
			case isKey(msg, "1"):
				a.tab = tabMember
				return a, nil
			case isKey(msg, "2"):
				a.tab = tabTags
				return a, nil
			case isKey(msg, "tab"):
				a.tab = (a.tab + 1) % tabCount
				return a, nil
			}
		}

		var cmd tea.Cmd
		switch a.tab {
		case tabMember:
			a.member, cmd = a.member.Update(msg)
		case tabTags:
			a.tags, cmd = a.tags.Update(msg)
		}
		return a, cmd
	}

	// Responses go to both tabs; each drops messages addressed elsewhere.
	var memberCmd, tagsCmd tea.Cmd
	a.member, memberCmd = a.member.Update(msg)
	a.tags, tagsCmd = a.tags.Update(msg)
	return a, tea.Batch(memberCmd, tagsCmd)
}

func (a App) quit() (tea.Model, tea.Cmd) {
	if a.member.hasUnsaved() {
		a.quitConfirm = true
		return a, nil
	}
	return a, tea.Quit
}

func (a App) activeCapturesKeys() bool {
	switch a.tab {
	case tabMember:
		return a.member.capturesKeys()
	case tabTags:
		return a.tags.capturesKeys()
	}
	return false
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)

	var content string
	switch {
	case a.quitConfirm:
		content = components.Indent(components.ConfirmDialog("Quit", "You have unsaved changes. Quit anyway?"), 1)
	case a.helpOpen:
		content = a.renderHelp()
	case a.tab == tabTags:
		content = a.tags.View()
	default:
		content = a.member.View()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.err != "" {
		feedback = "\n\n" + centerBlockUniform(components.ErrorBox("Error", a.err, a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n\n%s%s", banner, tabs, content, hints, feedback)
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	}
	if a.helpOpen {
		return []string{components.Hint("esc", "Back")}
	}
	return a.statusHintsForTab()
}

func (a App) statusHintsForTab() []string {
	var tabHints []string
	switch a.tab {
	case tabMember:
		tabHints = a.member.hints()
	case tabTags:
		tabHints = a.tags.hints()
	}
	if a.activeCapturesKeys() {
		return tabHints
	}
	base := []string{
		components.Hint("1/2", "Tabs"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	}
	return append(base, tabHints...)
}

func (a App) renderHelp() string {
	hints := a.statusHintsForTab()
	lines := make([]string, 0, len(hints)+2)
	lines = append(lines, MutedStyle.Render("esc to close"))
	lines = append(lines, "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint)
	}
	return components.Indent(components.TitledBox("Help", strings.Join(lines, "\n"), a.width), 1)
}

func (a App) runStartupCheckCmd() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		status, err := client.WithTimeout(startupCheckTimeout).Health()
		return startupCheckedMsg{status: status, err: err}
	}
}

func (a *App) setToast(level string, texts ...string) tea.Cmd {
	lines := make([]string, 0, len(texts))
	for _, t := range texts {
		if clean := components.SanitizeOneLine(t); clean != "" {
			lines = append(lines, clean)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	a.toastSeq++
	seq := a.toastSeq
	a.toast = &appToast{seq: seq, level: level, lines: lines}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	text := strings.Join(a.toast.lines, "\n")
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
		text = WarningStyle.Render(text)
	case "error":
		return components.ErrorBox("Error", text, a.width)
	}
	return components.TitledBox(title, text, a.width)
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
