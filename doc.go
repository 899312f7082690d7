// Package evreactor implements a rule-driven reactor for Linux evdev input
// devices. Callers decode raw device events into (typecode, value, now)
// triples and feed them to a [Context], which tracks the current state of
// every input axis/key/switch referenced by a set of [Binding] predicates,
// and re-evaluates exactly the bindings whose observed state changed.
//
// # Architecture
//
// A [Context] is built once, from a list of parsed [Binding] values (see
// [Parse]), via [NewContext]. Construction rewrites every primary comparator
// leaf in every binding's expression tree into a resolved, indexed form, and
// builds a sorted typecode -> state-slot index so that [Context.InputEvent]
// can dispatch in O(log n).
//
// Two entry points drive the reactor after construction:
//
//	next := ctx.InputEvent(typecode, value, nowMS) // device produced an event
//	next := ctx.Timeout(nowMS)                     // the previous next elapsed
//
// Both return the number of milliseconds the caller may wait before it must
// call Timeout again (or [NoWait] if no duration qualifier is currently
// armed). This mirrors the poll/epoll_wait loop the reactor is meant to sit
// inside: the caller multiplexes device file descriptors with a timeout equal
// to the last returned value.
//
// # Concurrency
//
// A [Context] is not safe for concurrent use. [Context.InputEvent] and
// [Context.Timeout] must be called from a single goroutine, serialized with
// respect to each other, the same way a single-threaded epoll loop would
// call them. There is no internal locking.
//
// # Expression language
//
// Bindings pair a boolean expression over named input events with a shell
// command, one "expr <= command" binding per line, read by [Parse].
// Expressions support comparators
// (eq/ne/lt/gt/le/ge), boolean composition (|, ^, &, !), grouping, and a
// duration qualifier ([500ms]) requiring a sub-expression to hold
// continuously before it reports true.
package evreactor
