package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetulr/talawa-admin/internal/config"
	"github.com/meetulr/talawa-admin/internal/store"
)

type gqlCall struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("TALAWA_HOME", t.TempDir())
	for _, k := range []string{"TALAWA_API_URL", "TALAWA_API_KEY", "TALAWA_ORG_ID", "TALAWA_MEMBER_ID"} {
		t.Setenv(k, "")
	}
}

func graphqlServer(t *testing.T, reply func(r *http.Request, call gqlCall) any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call gqlCall
		require.NoError(t, json.NewDecoder(r.Body).Decode(&call))
		body, _ := json.Marshal(map[string]any{"data": reply(r, call)})
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func saveConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	require.NoError(t, cfg.Save())
}

func run(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

var adaRecord = map[string]any{"user": map[string]any{
	"user": map[string]any{
		"_id":          "m1",
		"firstName":    "Ada",
		"lastName":     "Lovelace",
		"email":        "ada@example.com",
		"gender":       "FEMALE",
		"createdAt":    "2024-03-05T10:00:00.000Z",
		"tagsAssigned": []any{map[string]any{"_id": "t-vol", "name": "Volunteers"}},
	},
	"appUserProfile": map[string]any{"_id": "p1", "appLanguageCode": "en", "adminFor": []any{map[string]any{"_id": "org1"}}},
}}

// --- Login ---

func TestLoginRequiresToken(t *testing.T) {
	isolateHome(t)
	var out bytes.Buffer
	err := RunInteractiveLogin(strings.NewReader("\n\n"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token is required")
}

func TestLoginRequiresMemberID(t *testing.T) {
	isolateHome(t)
	var out bytes.Buffer
	err := RunInteractiveLogin(strings.NewReader("\ntok\norg1\n\n"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member id is required")
}

func TestLoginSavesConfigAndSeedsCache(t *testing.T) {
	isolateHome(t)
	srv := graphqlServer(t, func(r *http.Request, call gqlCall) any {
		assert.Equal(t, "Bearer tok_live", r.Header.Get("Authorization"))
		assert.Equal(t, "UserDetails", call.OperationName)
		assert.Equal(t, "m1", call.Variables["id"])
		return adaRecord
	})

	var out bytes.Buffer
	input := srv.URL + "\ntok_live\norg1\nm1\n"
	require.NoError(t, RunInteractiveLogin(strings.NewReader(input), &out))
	assert.Contains(t, out.String(), "logged in as Ada Lovelace")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, srv.URL, cfg.APIURL)
	assert.Equal(t, "tok_live", cfg.APIKey)
	assert.Equal(t, "org1", cfg.OrgID)
	assert.Equal(t, "m1", cfg.MemberID)
	assert.Equal(t, "Ada Lovelace", cfg.Username)

	cache, err := store.Open(CachePath())
	require.NoError(t, err)
	defer cache.Close()
	id, ok, err := cache.GetItem(context.Background(), store.KeyID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "m1", id)
	first, _, err := cache.GetItem(context.Background(), store.KeyFirstName)
	require.NoError(t, err)
	assert.Equal(t, "Ada", first)
}

func TestLoginFailsForUnknownMember(t *testing.T) {
	isolateHome(t)
	srv := graphqlServer(t, func(*http.Request, gqlCall) any {
		return map[string]any{"user": nil}
	})

	var out bytes.Buffer
	err := RunInteractiveLogin(strings.NewReader(srv.URL+"\ntok\norg1\nghost\n"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")

	_, statErr := os.Stat(config.Path())
	assert.True(t, os.IsNotExist(statErr))
}

// --- Tags ---

func TestTagsListNotLoggedIn(t *testing.T) {
	isolateHome(t)
	_, err := run(t, TagsCmd(), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestTagsListRequiresOrg(t *testing.T) {
	isolateHome(t)
	saveConfig(t, config.Config{APIURL: "http://127.0.0.1:1", APIKey: "tok"})
	_, err := run(t, TagsCmd(), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "organization id not configured")
}

func tagPagesServer(t *testing.T) *httptest.Server {
	return graphqlServer(t, func(_ *http.Request, call gqlCall) any {
		require.Equal(t, "OrganizationUserTags", call.OperationName)
		node := map[string]any{"_id": "t-vol", "name": "Volunteers", "childTags": map[string]any{"totalCount": 3}}
		hasNext := true
		if call.Variables["after"] != nil {
			node = map[string]any{"_id": "t-don", "name": "Donors", "childTags": map[string]any{"totalCount": 0}}
			hasNext = false
		}
		conn := map[string]any{
			"edges":      []any{map[string]any{"node": node, "cursor": node["_id"]}},
			"pageInfo":   map[string]any{"hasNextPage": hasNext, "endCursor": node["_id"]},
			"totalCount": 2,
		}
		return map[string]any{"organizations": []any{map[string]any{"userTags": conn}}}
	})
}

func TestTagsListFirstPage(t *testing.T) {
	isolateHome(t)
	srv := tagPagesServer(t)
	saveConfig(t, config.Config{APIURL: srv.URL, APIKey: "tok", OrgID: "org1"})

	out, err := run(t, TagsCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Volunteers")
	assert.Contains(t, out, "Subtags")
	assert.NotContains(t, out, "Donors")
	assert.Contains(t, out, "showing 1 of 2, use --all for the rest")
}

func TestTagsListAll(t *testing.T) {
	isolateHome(t)
	srv := tagPagesServer(t)
	saveConfig(t, config.Config{APIURL: srv.URL, APIKey: "tok", OrgID: "org1"})

	out, err := run(t, TagsCmd(), "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Volunteers")
	assert.Contains(t, out, "Donors")
	assert.NotContains(t, out, "showing")
}

func TestTagsAncestors(t *testing.T) {
	isolateHome(t)
	srv := graphqlServer(t, func(_ *http.Request, call gqlCall) any {
		assert.Equal(t, "t-drv", call.Variables["id"])
		return map[string]any{"getUserTagAncestors": []any{
			map[string]any{"_id": "t-vol", "name": "Volunteers"},
			map[string]any{"_id": "t-drv", "name": "Drivers"},
		}}
	})
	saveConfig(t, config.Config{APIURL: srv.URL, APIKey: "tok", OrgID: "org1"})

	out, err := run(t, TagsCmd(), "ancestors", "t-drv")
	require.NoError(t, err)
	assert.Equal(t, "Volunteers  (t-vol)\n  Drivers  (t-drv)\n", out)
}

func TestTagsAncestorsNeedsID(t *testing.T) {
	isolateHome(t)
	_, err := run(t, TagsCmd(), "ancestors")
	require.Error(t, err)
}

// --- Member ---

func TestMemberShowDefaultsToSignedInMember(t *testing.T) {
	isolateHome(t)
	srv := graphqlServer(t, func(_ *http.Request, call gqlCall) any {
		assert.Equal(t, "m1", call.Variables["id"])
		return adaRecord
	})
	saveConfig(t, config.Config{APIURL: srv.URL, APIKey: "tok", OrgID: "org1", MemberID: "m1"})

	out, err := run(t, MemberCmd(), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Admin")
	assert.Contains(t, out, "Female")
	assert.Contains(t, out, "5 March 2024")
	assert.Contains(t, out, "Volunteers")
}

func TestMemberShowRequiresID(t *testing.T) {
	isolateHome(t)
	saveConfig(t, config.Config{APIURL: "http://127.0.0.1:1", APIKey: "tok", OrgID: "org1"})

	_, err := run(t, MemberCmd(), "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member id required")
}
