package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/meetulr/talawa-admin/internal/api"
)

// --- Fake GraphQL API ---

type gqlCall struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// gqlFailure makes the fake server answer with a GraphQL error.
type gqlFailure string

type fakeAPI struct {
	mu    sync.Mutex
	calls []gqlCall
	reply func(call gqlCall) any
}

func newFakeAPI(t *testing.T, reply func(call gqlCall) any) (*fakeAPI, *api.Client) {
	t.Helper()
	f := &fakeAPI{reply: reply}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call gqlCall
		if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.calls = append(f.calls, call)
		f.mu.Unlock()

		data := f.reply(call)
		var body []byte
		if msg, ok := data.(gqlFailure); ok {
			body, _ = json.Marshal(map[string]any{
				"data":   nil,
				"errors": []any{map[string]any{"message": string(msg)}},
			})
		} else {
			body, _ = json.Marshal(map[string]any{"data": data})
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return f, api.NewClient(srv.URL, "tok_test")
}

func (f *fakeAPI) callsTo(op string) []gqlCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []gqlCall
	for _, c := range f.calls {
		if c.OperationName == op {
			out = append(out, c)
		}
	}
	return out
}

func tagNode(id, name string, children int) map[string]any {
	return map[string]any{
		"_id":       id,
		"name":      name,
		"childTags": map[string]any{"totalCount": children},
	}
}

func memberNode(id, first, last string) map[string]any {
	return map[string]any{"_id": id, "firstName": first, "lastName": last}
}

func connectionOf(hasNext bool, total int, nodes ...map[string]any) map[string]any {
	edges := make([]any, 0, len(nodes))
	end := ""
	for _, n := range nodes {
		end = n["_id"].(string)
		edges = append(edges, map[string]any{"node": n, "cursor": end})
	}
	return map[string]any{
		"edges":      edges,
		"pageInfo":   map[string]any{"hasNextPage": hasNext, "endCursor": end},
		"totalCount": total,
	}
}

func orgTagsReply(conn map[string]any) map[string]any {
	return map[string]any{"organizations": []any{map[string]any{"userTags": conn}}}
}

func childTagsReply(conn map[string]any) map[string]any {
	return map[string]any{"getUserTag": map[string]any{"childTags": conn}}
}

// --- Keys ---

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyUp        = tea.KeyMsg{Type: tea.KeyUp}
	keyDown      = tea.KeyMsg{Type: tea.KeyDown}
	keyRight     = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft      = tea.KeyMsg{Type: tea.KeyLeft}
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc       = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keySave      = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
	keyCtrlC     = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// --- Command Loop ---

// drain runs cmd, expanding batches, and returns the produced messages.
// Only call it on commands that do not tick or blink.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

type updater[M any] interface {
	Update(tea.Msg) (M, tea.Cmd)
}

// settle feeds every message produced by cmd back into m until nothing is
// left. Toasts and errors are app level; they are returned instead.
func settle[M updater[M]](t *testing.T, m M, cmd tea.Cmd) (M, []tea.Msg) {
	t.Helper()
	var notices []tea.Msg
	queue := drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case toastMsg, errMsg:
			notices = append(notices, msg)
			continue
		}
		var next tea.Cmd
		m, next = m.Update(msg)
		queue = append(queue, drain(next)...)
	}
	return m, notices
}

// press sends one key and settles the resulting command.
func press[M updater[M]](t *testing.T, m M, key tea.KeyMsg) (M, []tea.Msg) {
	t.Helper()
	m, cmd := m.Update(key)
	return settle(t, m, cmd)
}

// toasts returns the toast lines of the given level.
func toasts(notices []tea.Msg, level string) []string {
	var out []string
	for _, n := range notices {
		if tm, ok := n.(toastMsg); ok && tm.level == level {
			out = append(out, tm.texts...)
		}
	}
	return out
}

func errorsIn(notices []tea.Msg) []string {
	var out []string
	for _, n := range notices {
		if em, ok := n.(errMsg); ok {
			out = append(out, em.err.Error())
		}
	}
	return out
}

func requireNoErrors(t *testing.T, notices []tea.Msg) {
	t.Helper()
	require.Empty(t, errorsIn(notices))
}
