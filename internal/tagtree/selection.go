package tagtree

import (
	"sort"
	"sync/atomic"

	"github.com/meetulr/talawa-admin/internal/api"
)

// OpKind says whether an ancestor lookup belongs to a select or a deselect.
type OpKind int

const (
	OpSelect OpKind = iota
	OpDeselect
)

func (k OpKind) String() string {
	if k == OpDeselect {
		return "deselect"
	}
	return "select"
}

// AncestorRequest is one ancestor-chain lookup, correlated with the tag and
// operation that issued it.
type AncestorRequest struct {
	Session uint64
	Seq     uint64
	Tag     api.Tag
	Op      OpKind
}

// Failure reports an operation abandoned because its lookup failed.
type Failure struct {
	Request AncestorRequest
	Err     error
}

type pendingOp struct {
	req   AncestorRequest
	done  bool
	chain []api.Tag
	err   error
}

var selectionSessions atomic.Uint64

// Selection owns the explicit selection list, the Selection Set and the
// ancestor reference counts of one assign-to-tags session.
//
// Invariants: a tag is checked iff it is explicitly selected or its count is
// > 0; counts are positive and a key is removed when it would reach zero.
// Lookup results are applied strictly in issue order.
type Selection struct {
	session  uint64
	seq      uint64
	explicit []api.Tag
	checked  map[string]struct{}
	counts   map[string]int
	credited map[string]bool
	queue    []*pendingOp
}

// NewSelection creates an empty selection session.
func NewSelection() *Selection {
	return &Selection{
		session:  selectionSessions.Add(1),
		checked:  make(map[string]struct{}),
		counts:   make(map[string]int),
		credited: make(map[string]bool),
	}
}

// Select marks tag explicitly selected and returns the ancestor lookup to run.
// Selecting an already selected tag is a no-op.
func (s *Selection) Select(tag api.Tag) (AncestorRequest, bool) {
	if s.indexOf(tag.ID) >= 0 {
		return AncestorRequest{}, false
	}
	s.explicit = append(s.explicit, tag)
	s.checked[tag.ID] = struct{}{}
	return s.enqueue(tag, OpSelect), true
}

// Deselect drops tag from the explicit selection and returns the ancestor
// lookup to run. Deselecting a tag that is not explicitly selected changes
// nothing and issues no lookup.
func (s *Selection) Deselect(tag api.Tag) (AncestorRequest, bool) {
	idx := s.indexOf(tag.ID)
	if idx < 0 {
		return AncestorRequest{}, false
	}
	removed := s.explicit[idx]
	s.explicit = append(s.explicit[:idx:idx], s.explicit[idx+1:]...)
	if s.counts[tag.ID] == 0 {
		delete(s.checked, tag.ID)
	}
	return s.enqueue(removed, OpDeselect), true
}

// Toggle selects or deselects tag.
func (s *Selection) Toggle(tag api.Tag, selected bool) (AncestorRequest, bool) {
	if selected {
		return s.Select(tag)
	}
	return s.Deselect(tag)
}

// Resolve records the outcome of one lookup and applies every completed
// lookup at the head of the queue. Requests from another session, unknown
// requests and duplicate results are ignored.
func (s *Selection) Resolve(req AncestorRequest, chain []api.Tag, err error) []Failure {
	if req.Session != s.session {
		return nil
	}
	var op *pendingOp
	for _, candidate := range s.queue {
		if candidate.req.Seq == req.Seq {
			op = candidate
			break
		}
	}
	if op == nil || op.done {
		return nil
	}
	op.done = true
	op.chain = chain
	op.err = err

	var failures []Failure
	for len(s.queue) > 0 && s.queue[0].done {
		head := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		if f := s.apply(head); f != nil {
			failures = append(failures, *f)
		}
	}
	return failures
}

func (s *Selection) apply(op *pendingOp) *Failure {
	tagID := op.req.Tag.ID
	if op.err != nil {
		s.rollback(op)
		return &Failure{Request: op.req, Err: op.err}
	}

	ancestors := Ancestors(tagID, op.chain)
	switch op.req.Op {
	case OpSelect:
		if s.credited[tagID] {
			return nil
		}
		s.credited[tagID] = true
		for _, a := range ancestors {
			s.counts[a.ID]++
			s.checked[a.ID] = struct{}{}
		}
	case OpDeselect:
		if !s.credited[tagID] {
			return nil
		}
		delete(s.credited, tagID)
		for _, a := range ancestors {
			n, ok := s.counts[a.ID]
			if !ok {
				continue
			}
			if n == 1 {
				delete(s.counts, a.ID)
				if s.indexOf(a.ID) < 0 {
					delete(s.checked, a.ID)
				}
				continue
			}
			s.counts[a.ID] = n - 1
		}
	}
	return nil
}

// rollback settles a tag whose operation failed back onto its last applied
// state: explicit iff a select was credited. Nothing happens while a newer
// operation for the same tag is still queued.
func (s *Selection) rollback(op *pendingOp) {
	tag := op.req.Tag
	for _, later := range s.queue {
		if later.req.Tag.ID == tag.ID {
			return
		}
	}
	idx := s.indexOf(tag.ID)
	switch {
	case s.credited[tag.ID] && idx < 0:
		s.explicit = append(s.explicit, tag)
		s.checked[tag.ID] = struct{}{}
	case !s.credited[tag.ID] && idx >= 0:
		s.explicit = append(s.explicit[:idx:idx], s.explicit[idx+1:]...)
		if s.counts[tag.ID] == 0 {
			delete(s.checked, tag.ID)
		}
	}
}

func (s *Selection) enqueue(tag api.Tag, kind OpKind) AncestorRequest {
	s.seq++
	req := AncestorRequest{Session: s.session, Seq: s.seq, Tag: tag, Op: kind}
	s.queue = append(s.queue, &pendingOp{req: req})
	return req
}

func (s *Selection) indexOf(id string) int {
	for i, t := range s.explicit {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// IsChecked reports Selection Set membership, explicit or implicit.
func (s *Selection) IsChecked(id string) bool {
	_, ok := s.checked[id]
	return ok
}

// IsExplicit reports whether the user selected id directly.
func (s *Selection) IsExplicit(id string) bool {
	return s.indexOf(id) >= 0
}

// Explicit returns the explicitly selected tags in selection order.
func (s *Selection) Explicit() []api.Tag {
	out := make([]api.Tag, len(s.explicit))
	copy(out, s.explicit)
	return out
}

// Count returns the reference count of an ancestor, zero when absent.
func (s *Selection) Count(id string) int {
	return s.counts[id]
}

// Counts returns a copy of the reference-count map.
func (s *Selection) Counts() map[string]int {
	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// CheckedIDs returns the Selection Set sorted by id.
func (s *Selection) CheckedIDs() []string {
	ids := make([]string, 0, len(s.checked))
	for id := range s.checked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Pending returns the number of lookups not yet applied.
func (s *Selection) Pending() int {
	return len(s.queue)
}

// Empty reports whether nothing is selected explicitly or implicitly.
func (s *Selection) Empty() bool {
	return len(s.checked) == 0
}

// Session identifies this selection instance.
func (s *Selection) Session() uint64 {
	return s.session
}

// Ancestors drops tagID from a root-to-tag chain, leaving only its ancestors.
func Ancestors(tagID string, chain []api.Tag) []api.Tag {
	if n := len(chain); n > 0 && chain[n-1].ID == tagID {
		chain = chain[:n-1]
	}
	out := make([]api.Tag, 0, len(chain))
	for _, t := range chain {
		if t.ID != tagID {
			out = append(out, t)
		}
	}
	return out
}
