package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetulr/talawa-admin/internal/api"
	"github.com/meetulr/talawa-admin/internal/config"
	"github.com/meetulr/talawa-admin/internal/member"
)

func newTestApp() App {
	return NewApp(nil, &config.Config{OrgID: "org1", MemberID: "m1"}, nil)
}

func updateApp(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	next, ok := model.(App)
	require.True(t, ok)
	return next, cmd
}

func TestAppTabSwitching(t *testing.T) {
	a := newTestApp()
	assert.Equal(t, tabMember, a.tab)

	a, _ = updateApp(t, a, keyRunes("2"))
	assert.Equal(t, tabTags, a.tab)
	assert.Contains(t, a.View(), "Tags not loaded")

	a, _ = updateApp(t, a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabMember, a.tab)

	a, _ = updateApp(t, a, keyRunes("1"))
	assert.Equal(t, tabMember, a.tab)
}

func TestAppCapturingTabKeepsKeys(t *testing.T) {
	a := newTestApp()
	a, _ = updateApp(t, a, keyRunes("2"))
	a.tags.prompting = true
	a.tags.prompt.Focus()

	a, _ = updateApp(t, a, keyRunes("1"))
	assert.Equal(t, tabTags, a.tab)
	assert.Equal(t, "1", a.tags.prompt.Value())

	a, _ = updateApp(t, a, keyRunes("q"))
	assert.False(t, a.quitConfirm)
	assert.Equal(t, "1q", a.tags.prompt.Value())
}

func TestAppToastLifecycle(t *testing.T) {
	a := newTestApp()

	a, cmd := updateApp(t, a, toastMsg{level: "success", texts: []string{"first line", "second line"}})
	require.NotNil(t, cmd)
	require.NotNil(t, a.toast)
	view := a.View()
	assert.Contains(t, view, "Success")
	assert.Contains(t, view, "first line")
	assert.Contains(t, view, "second line")
	firstSeq := a.toast.seq

	a, _ = updateApp(t, a, toastMsg{level: "warning", texts: []string{"newer"}})
	a, _ = updateApp(t, a, clearToastMsg{seq: firstSeq})
	require.NotNil(t, a.toast)
	assert.Equal(t, []string{"newer"}, a.toast.lines)

	a, _ = updateApp(t, a, clearToastMsg{seq: a.toast.seq})
	assert.Nil(t, a.toast)
}

func TestAppToastDropsBlankLines(t *testing.T) {
	a := newTestApp()
	a, cmd := updateApp(t, a, toastMsg{level: "info", texts: []string{"  ", "\x1b[31m"}})
	assert.Nil(t, cmd)
	assert.Nil(t, a.toast)
}

func TestAppErrorShownUntilNextKey(t *testing.T) {
	a := newTestApp()
	a, _ = updateApp(t, a, errMsg{errors.New("load member: boom")})
	assert.Contains(t, a.View(), "load member: boom")

	a, _ = updateApp(t, a, keyRunes("2"))
	assert.Empty(t, a.err)
	assert.Equal(t, tabTags, a.tab)
}

func TestAppStartupCheckToasts(t *testing.T) {
	a := NewApp(api.NewClient("http://api.example.test/", "tok"), &config.Config{}, nil)
	require.True(t, a.startupChecking)

	ok, _ := updateApp(t, a, startupCheckedMsg{status: "ok"})
	assert.False(t, ok.startupChecking)
	require.NotNil(t, ok.toast)
	assert.Equal(t, "success", ok.toast.level)
	assert.Equal(t, []string{"Connected to http://api.example.test (ok)"}, ok.toast.lines)

	failed, _ := updateApp(t, a, startupCheckedMsg{err: errors.New("connection refused")})
	require.NotNil(t, failed.toast)
	assert.Equal(t, "warning", failed.toast.level)
	assert.Equal(t, []string{"API check failed: connection refused"}, failed.toast.lines)
}

func TestAppQuit(t *testing.T) {
	a := newTestApp()
	_, cmd := updateApp(t, a, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppQuitConfirmsUnsavedEdits(t *testing.T) {
	a := newTestApp()
	a.member.member = &api.Member{ID: "m1", FirstName: "Ada"}
	a.member.editing = true
	a.member.original = member.Form{FirstName: "Ada"}
	a.member.form = a.member.original
	a.member.input.SetValue("Grace")
	require.True(t, a.member.hasUnsaved())

	a, cmd := updateApp(t, a, keyCtrlC)
	assert.Nil(t, cmd)
	assert.True(t, a.quitConfirm)
	assert.Contains(t, a.View(), "unsaved changes")

	a, _ = updateApp(t, a, keyRunes("n"))
	assert.False(t, a.quitConfirm)
	assert.True(t, a.member.editing)

	a, _ = updateApp(t, a, keyCtrlC)
	_, cmd = updateApp(t, a, keyRunes("y"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppHelp(t *testing.T) {
	a := newTestApp()
	a, _ = updateApp(t, a, keyRunes("?"))
	require.True(t, a.helpOpen)
	assert.Contains(t, a.View(), "Help")

	a, _ = updateApp(t, a, keyEsc)
	assert.False(t, a.helpOpen)
}

func TestAppRoutesResponsesToBothTabs(t *testing.T) {
	a := newTestApp()
	a, _ = updateApp(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, a.member.width)
	assert.Equal(t, 120, a.tags.width)

	mem := &api.Member{ID: "m1", FirstName: "Ada", LastName: "Lovelace"}
	a, _ = updateApp(t, a, memberLoadedMsg{view: a.member.id, member: mem})
	require.NotNil(t, a.member.member)
	assert.Contains(t, a.View(), "Ada Lovelace")
}
