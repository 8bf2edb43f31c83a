package tagtree

import "github.com/meetulr/talawa-admin/internal/api"

// NodeState is the expand state of one tag node.
type NodeState int

const (
	NodeCollapsed NodeState = iota
	NodeLoading
	NodeExpanded
)

func (s NodeState) String() string {
	switch s {
	case NodeLoading:
		return "loading"
	case NodeExpanded:
		return "expanded"
	default:
		return "collapsed"
	}
}

// Node is the per-tag view state with its lazily fetched children.
type Node struct {
	Tag      api.Tag
	State    NodeState
	Children *Pager[api.Tag]
}

// Tree is the view state of a lazily loaded, paginated tag forest, keyed by
// tag id. Children caches survive collapse; only a fresh Tree resets them.
type Tree struct {
	roots *Pager[api.Tag]
	nodes map[string]*Node
}

// NewTree creates an empty tree whose roots page in OrgTagsPageSize steps.
func NewTree() *Tree {
	return &Tree{
		roots: NewPager[api.Tag](OrgTagsPageSize),
		nodes: make(map[string]*Node),
	}
}

// Roots exposes the root list pager.
func (t *Tree) Roots() *Pager[api.Tag] {
	return t.roots
}

func (t *Tree) node(tag api.Tag) *Node {
	n, ok := t.nodes[tag.ID]
	if !ok {
		n = &Node{Tag: tag, Children: NewPager[api.Tag](ChildTagsPageSize)}
		t.nodes[tag.ID] = n
		return n
	}
	n.Tag = tag
	return n
}

// Node returns the view state for id, if the tag was ever expanded.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// State returns the expand state of id.
func (t *Tree) State(id string) NodeState {
	if n, ok := t.nodes[id]; ok {
		return n.State
	}
	return NodeCollapsed
}

// Expand opens tag. It returns a ticket when the first page of children must
// be fetched; re-expanding a node whose children are cached needs no fetch.
// Leaf tags never expand.
func (t *Tree) Expand(tag api.Tag) (Ticket, bool) {
	if tag.IsLeaf() {
		return Ticket{}, false
	}
	n := t.node(tag)
	if n.State != NodeCollapsed {
		return Ticket{}, false
	}
	if n.Children.Loaded() {
		n.State = NodeExpanded
		return Ticket{}, false
	}
	n.State = NodeLoading
	return n.Children.Start()
}

// Collapse closes id and keeps its children cache.
func (t *Tree) Collapse(id string) bool {
	n, ok := t.nodes[id]
	if !ok || n.State == NodeCollapsed {
		return false
	}
	n.State = NodeCollapsed
	return true
}

// ToggleExpand expands a collapsed tag or collapses an open one.
func (t *Tree) ToggleExpand(tag api.Tag) (Ticket, bool) {
	if t.State(tag.ID) != NodeCollapsed {
		t.Collapse(tag.ID)
		return Ticket{}, false
	}
	return t.Expand(tag)
}

// LoadMoreChildren requests the next page of an expanded node's children.
func (t *Tree) LoadMoreChildren(id string) (Ticket, bool) {
	n, ok := t.nodes[id]
	if !ok || n.State != NodeExpanded {
		return Ticket{}, false
	}
	return n.Children.LoadMore()
}

// ApplyChildren stores a fetched children page for id. A node collapsed while
// its first page was loading keeps the page but stays collapsed.
func (t *Tree) ApplyChildren(id string, ticket Ticket, page api.TagPage) bool {
	n, ok := t.nodes[id]
	if !ok || !n.Children.Apply(ticket, page) {
		return false
	}
	for _, child := range page.Items {
		if existing, ok := t.nodes[child.ID]; ok {
			existing.Tag = child
		}
	}
	if n.State == NodeLoading {
		n.State = NodeExpanded
	}
	return true
}

// FailChildren records a failed children fetch for id.
func (t *Tree) FailChildren(id string, ticket Ticket) bool {
	n, ok := t.nodes[id]
	if !ok || !n.Children.Fail(ticket) {
		return false
	}
	if n.State == NodeLoading {
		n.State = NodeCollapsed
	}
	return true
}

// RowKind distinguishes tag rows from list affordance rows.
type RowKind int

const (
	RowTag RowKind = iota
	RowLoading
	RowLoadMore
)

// Row is one flattened, renderable line of the tree.
type Row struct {
	Kind  RowKind
	Tag   api.Tag
	Depth int
	// ListID owns the loading/load-more rows: the parent tag id, or "" for roots.
	ListID string
	State  NodeState
}

// Rows flattens the loaded roots and every expanded subtree in display order.
func (t *Tree) Rows() []Row {
	rows := make([]Row, 0, t.roots.Len()+1)
	seen := make(map[string]bool)
	for _, tag := range t.roots.Items() {
		rows = t.appendRows(rows, tag, 0, seen)
	}
	if t.roots.CanLoadMore() {
		rows = append(rows, Row{Kind: RowLoadMore})
	}
	return rows
}

func (t *Tree) appendRows(rows []Row, tag api.Tag, depth int, seen map[string]bool) []Row {
	if seen[tag.ID] {
		return rows
	}
	seen[tag.ID] = true

	n, ok := t.nodes[tag.ID]
	state := NodeCollapsed
	if ok {
		state = n.State
	}
	rows = append(rows, Row{Kind: RowTag, Tag: tag, Depth: depth, State: state})
	if !ok || state == NodeCollapsed {
		return rows
	}
	for _, child := range n.Children.Items() {
		rows = t.appendRows(rows, child, depth+1, seen)
	}
	switch {
	case n.Children.Loading():
		rows = append(rows, Row{Kind: RowLoading, Depth: depth + 1, ListID: tag.ID})
	case n.Children.CanLoadMore():
		rows = append(rows, Row{Kind: RowLoadMore, Depth: depth + 1, ListID: tag.ID})
	}
	return rows
}
