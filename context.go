package evreactor

import "sort"

// NoWait is returned by [Context.InputEvent] and [Context.Timeout] when no
// duration timer is currently armed, i.e. the caller may wait indefinitely
// for the next device event.
const NoWait int64 = -1

// CommandRunner executes a binding's command on a rising edge. The core
// treats its error return as opaque (spec: "Callback non-zero return...
// propagated to the caller of the entry point? No: the core ignores the
// return value") - Run's error is only used for an optional log line.
type CommandRunner interface {
	Run(command string) error
}

type noopRunner struct{}

func (noopRunner) Run(string) error { return nil }

// EventState is one slot in the context's state table: the current value
// of a single typecode, and the bindings that need re-evaluating when it
// changes. Listener entries are weak back-references - they enable lookup,
// never ownership - and may repeat if a binding references the same
// typecode from more than one primary node; re-evaluating a binding twice
// in a row is idempotent, so the redundancy is harmless.
type EventState struct {
	Typecode  Typecode
	Value     int32
	listeners []*Binding
}

// Context indexes a set of bindings by the input states they observe,
// tracks the current value of every such state, owns the armed duration
// timers, and evaluates bindings as new events arrive. Build one with
// [NewContext]; it is not safe for concurrent use (see package doc).
type Context struct {
	states   []*EventState // sorted ascending by Typecode after NewContext
	bindings []*Binding

	// durations is the compact, tombstoned set of currently-armed DUR
	// nodes; see Expr.armed and removeDuration. Its only use is computing
	// the minimum time-to-fire for nextTimeout.
	durations []*Expr

	runner CommandRunner
	log    *loggerHandle
}

// ContextOption configures [NewContext].
type ContextOption func(*Context)

// WithCommandRunner sets the command runner used for rising edges. The
// zero value runs nothing, which is convenient for tests that only care
// about truth-table behavior.
func WithCommandRunner(r CommandRunner) ContextOption {
	return func(c *Context) { c.runner = r }
}

// WithLogger overrides the process-wide default [Logger] for this Context
// alone.
func WithLogger(l Logger) ContextOption {
	return func(c *Context) { c.log = &loggerHandle{logger: l} }
}

// NewContext builds a Context from a list of parsed bindings. It performs
// the two-pass rewrite spec.md describes: pass 1 discovers every distinct
// typecode referenced by a KindPrimary leaf and builds the listener index;
// pass 2 (after sorting the state table) rewrites every KindPrimary into a
// KindCInfo pointing at its now-final slot index. After NewContext returns,
// no KindPrimary node remains reachable from any binding.
func NewContext(bindings []*Binding, opts ...ContextOption) (*Context, error) {
	c := &Context{
		bindings: bindings,
		runner:   noopRunner{},
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, b := range bindings {
		if b.Expr == nil {
			return nil, &InitError{Err: ErrEmptyExpression}
		}
		c.collectPrimaries(b, b.Expr)
	}

	sort.Slice(c.states, func(i, j int) bool {
		return c.states[i].Typecode < c.states[j].Typecode
	})

	var ndurations int
	for _, b := range bindings {
		c.resolvePrimaries(b.Expr, &ndurations)
	}
	c.durations = make([]*Expr, 0, ndurations)

	return c, nil
}

// collectPrimaries is init pass 1: DFS over e, appending a new EventState
// (value 0, empty listeners) for any not-yet-seen typecode, and appending b
// to the listener list of whichever state the typecode resolves to.
func (c *Context) collectPrimaries(b *Binding, e *Expr) {
	switch e.Kind {
	case KindOr, KindXor, KindAnd:
		c.collectPrimaries(b, e.Left)
		c.collectPrimaries(b, e.Right)
	case KindNot:
		c.collectPrimaries(b, e.Child)
	case KindDur:
		c.collectPrimaries(b, e.Child)
	case KindPrimary:
		idx := -1
		for i, s := range c.states {
			if s.Typecode == e.Typecode {
				idx = i
				break
			}
		}
		if idx == -1 {
			c.states = append(c.states, &EventState{Typecode: e.Typecode})
			idx = len(c.states) - 1
		}
		c.states[idx].listeners = append(c.states[idx].listeners, b)
	case KindCInfo:
		// already resolved; nothing to do (defensive - never produced by Parse)
	}
}

// resolvePrimaries is init pass 2: DFS over e, rewriting every KindPrimary
// into a KindCInfo referencing its slot in the now-sorted state table, and
// counting DUR nodes into ndurations so the duration set can be
// preallocated.
func (c *Context) resolvePrimaries(e *Expr, ndurations *int) {
	switch e.Kind {
	case KindOr, KindXor, KindAnd:
		c.resolvePrimaries(e.Left, ndurations)
		c.resolvePrimaries(e.Right, ndurations)
	case KindNot:
		c.resolvePrimaries(e.Child, ndurations)
	case KindDur:
		*ndurations++
		c.resolvePrimaries(e.Child, ndurations)
	case KindPrimary:
		idx := c.stateIndex(e.Typecode)
		e.StateIndex = idx
		e.Kind = KindCInfo
	case KindCInfo:
		// already resolved
	}
}

// stateIndex finds the slot for typecode in the sorted state table via
// binary search. Only valid for typecodes collectPrimaries has already
// registered - callers (resolvePrimaries) rely on that guarantee.
func (c *Context) stateIndex(tc Typecode) int {
	i := sort.Search(len(c.states), func(i int) bool {
		return c.states[i].Typecode >= tc
	})
	return i
}

// findState looks up the slot for tc via binary search, explicitly
// confirming the match (rather than trusting the last index the search
// loop examined): a miss returns ok == false.
func (c *Context) findState(tc Typecode) (idx int, ok bool) {
	i := sort.Search(len(c.states), func(i int) bool {
		return c.states[i].Typecode >= tc
	})
	if i >= len(c.states) || c.states[i].Typecode != tc {
		return 0, false
	}
	return i, true
}

// evalExpr recursively evaluates e, mutating DUR scratch state as a side
// effect. OR/XOR/AND evaluate both children unconditionally - no
// short-circuiting - so a DUR node on either side always gets to advance or
// expire its timer.
func (c *Context) evalExpr(e *Expr, now int64) bool {
	switch e.Kind {
	case KindOr:
		l := c.evalExpr(e.Left, now)
		r := c.evalExpr(e.Right, now)
		return l || r
	case KindXor:
		l := c.evalExpr(e.Left, now)
		r := c.evalExpr(e.Right, now)
		return l != r
	case KindAnd:
		l := c.evalExpr(e.Left, now)
		r := c.evalExpr(e.Right, now)
		return l && r
	case KindNot:
		return !c.evalExpr(e.Child, now)
	case KindDur:
		return c.evalDur(e, now)
	case KindCInfo:
		return e.Match.compare(c.states[e.StateIndex].Value)
	default:
		// KindPrimary reaching eval means NewContext was skipped or the
		// tree was hand-built without resolution; not a state this package
		// ever produces itself.
		return false
	}
}

// evalDur implements the DUR state machine from spec.md 4.4, including the
// documented (not a bug) post-fire behavior: once a DUR node has fired, its
// deadline stays non-zero - and it is not re-added to the duration set -
// until its child goes false, so it keeps reporting true for free in the
// meantime.
func (c *Context) evalDur(e *Expr, now int64) bool {
	child := c.evalExpr(e.Child, now)

	if child {
		switch {
		case !e.armed():
			e.deadline = now + e.Duration
			c.durations = append(c.durations, e)
			return false
		case now >= e.deadline:
			c.removeDuration(e)
			return true
		default:
			return false
		}
	}

	if e.armed() {
		c.removeDuration(e)
		e.deadline = 0
	}
	return false
}

// removeDuration tombstones e's entry in the duration set (nil, rather than
// a slice delete, to avoid reshuffling indices other entries might still
// reference mid-scan) and trims any trailing tombstones.
func (c *Context) removeDuration(e *Expr) {
	for i, d := range c.durations {
		if d == e {
			c.durations[i] = nil
			break
		}
	}
	for len(c.durations) > 0 && c.durations[len(c.durations)-1] == nil {
		c.durations = c.durations[:len(c.durations)-1]
	}
}

// nextTimeout scans the duration set for the soonest deadline, skipping
// tombstones, and returns the minimum (deadline - now) in milliseconds, or
// 0 immediately if any deadline has already passed (the caller should
// re-enter Timeout without waiting). Returns [NoWait] if nothing is armed.
func (c *Context) nextTimeout(now int64) int64 {
	wait := NoWait
	for _, d := range c.durations {
		if d == nil {
			continue
		}
		if d.deadline <= now {
			return 0
		}
		left := d.deadline - now
		if wait == NoWait || left < wait {
			wait = left
		}
	}
	return wait
}

// InputEvent applies a decoded (typecode, value, now) triple: an unknown
// typecode is ignored (the common case - the device produced an event
// nobody listens for), and a value equal to the slot's cached value is
// ignored without re-evaluation. Otherwise the slot is updated and every
// binding listening on it is re-evaluated, in the order it was registered.
// Returns the next poll-wait in milliseconds, or [NoWait].
func (c *Context) InputEvent(tc Typecode, value int32, now int64) int64 {
	idx, ok := c.findState(tc)
	if !ok {
		return c.nextTimeout(now)
	}

	state := c.states[idx]
	if state.Value == value {
		return c.nextTimeout(now)
	}
	state.Value = value

	for _, b := range state.listeners {
		b.eval(c, now, c.runner)
	}

	return c.nextTimeout(now)
}

// Timeout re-evaluates every binding - any of them could own a DUR node
// whose deadline just passed - and returns the next poll-wait in
// milliseconds, or [NoWait]. The caller is expected to invoke Timeout once
// the previously returned wait has elapsed.
func (c *Context) Timeout(now int64) int64 {
	for _, b := range c.bindings {
		b.eval(c, now, c.runner)
	}
	return c.nextTimeout(now)
}

// SeedState sets the initial value of tc's slot directly, without treating
// it as a change - no listener is evaluated. Callers use this once at
// startup, after reading a device's current state via ioctl, so that a
// binding whose predicate is already true the moment the device is opened
// gets picked up by the very next [Context.Timeout] call instead of
// waiting for a transition that may never happen again. Reports whether tc
// is a typecode any binding actually observes.
func (c *Context) SeedState(tc Typecode, value int32) bool {
	idx, ok := c.findState(tc)
	if !ok {
		return false
	}
	c.states[idx].Value = value
	return true
}

// States returns the context's state table, sorted ascending by Typecode.
// Exposed for collaborators that need the set of observed typecodes (e.g.
// cmd/evreactord seeding each one's initial device state); callers must not
// mutate the returned slice's EventState values directly - go through
// SeedState/InputEvent/Timeout instead.
func (c *Context) States() []*EventState {
	return c.states
}
