package search

import (
	"context"
	"sync/atomic"
	"time"
)

// searchState carries the shared node counter and stop signal across a
// single Search call, including its parallel root workers.
type searchState struct {
	ctx         context.Context
	deadline    time.Time
	hasDeadline bool
	maxNodes    int64
	nodes       atomic.Int64
	stop        atomic.Bool
}

func newSearchState(ctx context.Context, limits Limits) *searchState {
	st := &searchState{ctx: ctx, maxNodes: limits.MaxNodes}
	if limits.MoveTime > 0 {
		st.deadline = time.Now().Add(limits.MoveTime)
		st.hasDeadline = true
	}
	if d, ok := ctx.Deadline(); ok && (!st.hasDeadline || d.Before(st.deadline)) {
		st.deadline = d
		st.hasDeadline = true
	}
	return st
}

// countNode charges one node against the budget and reports whether the
// search should stop. The clock and context are only consulted every 1024
// nodes to keep the per-node cost down.
func (st *searchState) countNode() bool {
	n := st.nodes.Add(1)
	if st.stop.Load() {
		return true
	}
	if st.maxNodes > 0 && n >= st.maxNodes {
		st.stop.Store(true)
		return true
	}
	if n&1023 == 0 {
		if st.hasDeadline && !time.Now().Before(st.deadline) {
			st.stop.Store(true)
			return true
		}
		if st.ctx != nil && st.ctx.Err() != nil {
			st.stop.Store(true)
			return true
		}
	}
	return false
}

func (st *searchState) stopped() bool { return st.stop.Load() }
