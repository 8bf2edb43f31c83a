package tagtree

import "github.com/meetulr/talawa-admin/internal/api"

// Fixed page sizes per list.
const (
	MembersToAssignPageSize = 7
	OrgTagsPageSize         = 10
	ChildTagsPageSize       = 5
)

// Pager is a forward cursor window over one paginated list.
//
// Entries are append-only: a page is added after everything already loaded
// and nothing is reordered, dropped, or de-duplicated. At most one request is
// in flight; LoadMore while one is pending is dropped, not queued.
type Pager[T any] struct {
	pageSize   int
	items      []T
	endCursor  string
	hasMore    bool
	started    bool
	loaded     bool
	inFlight   bool
	generation uint64
	total      int
}

// NewPager creates an empty pager fetching pageSize entries per request.
func NewPager[T any](pageSize int) *Pager[T] {
	return &Pager[T]{pageSize: pageSize}
}

// Ticket identifies the pager generation a request was issued under.
type Ticket struct {
	Generation uint64
	Args       api.PageArgs
}

// Start requests the first page. It returns false when the first page was
// already requested.
func (p *Pager[T]) Start() (Ticket, bool) {
	if p.started {
		return Ticket{}, false
	}
	p.started = true
	p.inFlight = true
	return Ticket{Generation: p.generation, Args: api.PageArgs{First: p.pageSize}}, true
}

// LoadMore requests the page after the trailing cursor. It is a no-op when
// there is nothing more to load or a request is already in flight.
func (p *Pager[T]) LoadMore() (Ticket, bool) {
	if !p.loaded || !p.hasMore || p.inFlight {
		return Ticket{}, false
	}
	p.inFlight = true
	return Ticket{
		Generation: p.generation,
		Args:       api.PageArgs{First: p.pageSize, After: p.endCursor},
	}, true
}

// Apply appends a fetched page. Pages requested under an older generation
// are ignored and Apply reports false.
func (p *Pager[T]) Apply(t Ticket, page api.Page[T]) bool {
	if t.Generation != p.generation || !p.inFlight {
		return false
	}
	p.items = append(p.items, page.Items...)
	p.endCursor = page.PageInfo.EndCursor
	p.hasMore = page.PageInfo.HasNextPage
	p.total = page.TotalCount
	p.loaded = true
	p.inFlight = false
	return true
}

// Fail clears the in-flight flag after a failed request so the list can be
// retried. Stale tickets are ignored.
func (p *Pager[T]) Fail(t Ticket) bool {
	if t.Generation != p.generation || !p.inFlight {
		return false
	}
	p.inFlight = false
	if !p.loaded {
		p.started = false
	}
	return true
}

// Reset discards every loaded entry and invalidates outstanding requests.
func (p *Pager[T]) Reset() {
	p.generation++
	p.items = nil
	p.endCursor = ""
	p.hasMore = false
	p.started = false
	p.loaded = false
	p.inFlight = false
	p.total = 0
}

// Items returns the loaded entries in load order.
func (p *Pager[T]) Items() []T {
	return p.items
}

// Len returns the number of loaded entries.
func (p *Pager[T]) Len() int {
	return len(p.items)
}

// HasMore reports whether the server advertised another page.
func (p *Pager[T]) HasMore() bool {
	return p.hasMore
}

// Loading reports whether a request is in flight.
func (p *Pager[T]) Loading() bool {
	return p.inFlight
}

// Loaded reports whether at least one page has been applied.
func (p *Pager[T]) Loaded() bool {
	return p.loaded
}

// Total returns the server-reported total count of the list.
func (p *Pager[T]) Total() int {
	return p.total
}

// CanLoadMore reports whether the load-more affordance should be offered.
func (p *Pager[T]) CanLoadMore() bool {
	return p.loaded && p.hasMore && !p.inFlight
}

// PageSize returns the fixed request size.
func (p *Pager[T]) PageSize() int {
	return p.pageSize
}
