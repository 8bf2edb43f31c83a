package tagtree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetulr/talawa-admin/internal/api"
)

func parentTag(id string, children int) api.Tag {
	return api.Tag{ID: id, Name: id, ChildCount: children}
}

func tagPage(prefix string, from, n int, hasNext bool) api.TagPage {
	items := make([]api.Tag, 0, n)
	for i := from; i < from+n; i++ {
		items = append(items, api.Tag{ID: fmt.Sprintf("%s%d", prefix, i), Name: fmt.Sprintf("%s%d", prefix, i)})
	}
	end := ""
	if n > 0 {
		end = items[len(items)-1].ID
	}
	return api.TagPage{Items: items, PageInfo: api.PageInfo{EndCursor: end, HasNextPage: hasNext}}
}

func loadRoots(t *testing.T, tree *Tree, page api.TagPage) {
	t.Helper()
	ticket, ok := tree.Roots().Start()
	require.True(t, ok)
	require.True(t, tree.Roots().Apply(ticket, page))
}

func TestTreeLeafNeverExpands(t *testing.T) {
	tree := NewTree()
	_, ok := tree.Expand(parentTag("leaf", 0))
	assert.False(t, ok)
	assert.Equal(t, NodeCollapsed, tree.State("leaf"))

	_, ok = tree.ToggleExpand(parentTag("leaf", 0))
	assert.False(t, ok)
	assert.Equal(t, NodeCollapsed, tree.State("leaf"))
}

func TestTreeExpandFetchesFirstChildPage(t *testing.T) {
	tree := NewTree()
	ticket, ok := tree.Expand(parentTag("p", 12))
	require.True(t, ok)
	assert.Equal(t, api.PageArgs{First: ChildTagsPageSize}, ticket.Args)
	assert.Equal(t, NodeLoading, tree.State("p"))

	require.True(t, tree.ApplyChildren("p", ticket, tagPage("c", 0, 5, true)))
	assert.Equal(t, NodeExpanded, tree.State("p"))

	more, ok := tree.LoadMoreChildren("p")
	require.True(t, ok)
	assert.Equal(t, "c4", more.Args.After)
}

func TestTreeReexpandUsesCachedChildren(t *testing.T) {
	tree := NewTree()
	ticket, _ := tree.Expand(parentTag("p", 2))
	tree.ApplyChildren("p", ticket, tagPage("c", 0, 2, false))

	assert.True(t, tree.Collapse("p"))
	assert.Equal(t, NodeCollapsed, tree.State("p"))

	_, fetch := tree.Expand(parentTag("p", 2))
	assert.False(t, fetch)
	assert.Equal(t, NodeExpanded, tree.State("p"))

	n, ok := tree.Node("p")
	require.True(t, ok)
	assert.Equal(t, 2, n.Children.Len())
}

func TestTreeCollapseWhileLoadingKeepsPage(t *testing.T) {
	tree := NewTree()
	ticket, _ := tree.Expand(parentTag("p", 3))
	tree.Collapse("p")

	require.True(t, tree.ApplyChildren("p", ticket, tagPage("c", 0, 3, false)))
	assert.Equal(t, NodeCollapsed, tree.State("p"))

	_, fetch := tree.Expand(parentTag("p", 3))
	assert.False(t, fetch)
	assert.Equal(t, NodeExpanded, tree.State("p"))
}

func TestTreeFailedExpandCanRetry(t *testing.T) {
	tree := NewTree()
	ticket, _ := tree.Expand(parentTag("p", 3))
	require.True(t, tree.FailChildren("p", ticket))
	assert.Equal(t, NodeCollapsed, tree.State("p"))

	_, ok := tree.Expand(parentTag("p", 3))
	assert.True(t, ok)
}

func TestTreeLoadMoreChildrenNeedsExpandedNode(t *testing.T) {
	tree := NewTree()
	_, ok := tree.LoadMoreChildren("missing")
	assert.False(t, ok)

	tree.Expand(parentTag("p", 8))
	_, ok = tree.LoadMoreChildren("p")
	assert.False(t, ok)
}

func TestTreeRowsFlattenInDisplayOrder(t *testing.T) {
	tree := NewTree()
	loadRoots(t, tree, api.TagPage{
		Items: []api.Tag{parentTag("r0", 6), parentTag("r1", 2), parentTag("r2", 0)},
		PageInfo: api.PageInfo{
			EndCursor:   "r2",
			HasNextPage: true,
		},
	})

	ticket, _ := tree.Expand(parentTag("r0", 6))
	rows := tree.Rows()
	require.Len(t, rows, 5)
	assert.Equal(t, RowLoading, rows[1].Kind)
	assert.Equal(t, "r0", rows[1].ListID)

	tree.ApplyChildren("r0", ticket, tagPage("c", 0, 5, true))
	childTicket, _ := tree.Expand(parentTag("r1", 2))
	tree.ApplyChildren("r1", childTicket, tagPage("d", 0, 2, false))

	rows = tree.Rows()
	var got []string
	for _, r := range rows {
		switch r.Kind {
		case RowTag:
			got = append(got, fmt.Sprintf("%d:%s", r.Depth, r.Tag.ID))
		case RowLoadMore:
			got = append(got, fmt.Sprintf("%d:more(%s)", r.Depth, r.ListID))
		case RowLoading:
			got = append(got, fmt.Sprintf("%d:loading(%s)", r.Depth, r.ListID))
		}
	}
	assert.Equal(t, []string{
		"0:r0",
		"1:c0", "1:c1", "1:c2", "1:c3", "1:c4",
		"1:more(r0)",
		"0:r1",
		"1:d0", "1:d1",
		"0:r2",
		"0:more()",
	}, got)
	assert.Equal(t, NodeExpanded, rows[0].State)
}

func TestTreeRowsSkipRepeatedTags(t *testing.T) {
	tree := NewTree()
	loadRoots(t, tree, api.TagPage{Items: []api.Tag{parentTag("r0", 1)}})

	ticket, _ := tree.Expand(parentTag("r0", 1))
	tree.ApplyChildren("r0", ticket, api.TagPage{Items: []api.Tag{parentTag("r0", 1)}})

	rows := tree.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "r0", rows[0].Tag.ID)
}
