package evreactor

// Kind tags the variant of an [Expr] node.
type Kind uint8

const (
	// KindOr, KindXor, KindAnd are binary boolean composition over the 0/1
	// truth values of their children. They are bitwise, not short-circuit:
	// both children are always evaluated, because a [KindDur] node on the
	// unobserved side of an `&`/`|`/`^` would otherwise never get to update
	// its timer (spec: "no short-circuit drift").
	KindOr Kind = iota
	KindXor
	KindAnd
	// KindNot is logical negation of a single child.
	KindNot
	// KindDur requires Child to hold true continuously for Duration
	// milliseconds before it reports true; see [Expr.armed] and
	// [Context.evalExpr].
	KindDur
	// KindPrimary is the pre-resolution leaf form: Typecode names an evdev
	// axis/key/switch directly. [NewContext] rewrites every reachable
	// KindPrimary into a KindCInfo; none may remain afterward.
	KindPrimary
	// KindCInfo is the post-resolution leaf form: StateIndex names a slot
	// in the owning Context's state table instead of a raw typecode.
	KindCInfo
)

// Expr is a node in a binding's predicate tree. Exactly one group of fields
// is meaningful for a given Kind:
//
//	KindOr/KindXor/KindAnd: Left, Right
//	KindNot:                Child
//	KindDur:                Child, Duration, deadline
//	KindPrimary:            Typecode, Match
//	KindCInfo:              StateIndex, Match
//
// This mirrors the original C union via a single struct with unused fields
// per variant rather than an interface, which keeps [NewContext]'s in-place
// KindPrimary -> KindCInfo rewrite a simple field assignment instead of an
// allocation.
type Expr struct {
	Kind Kind

	Left, Right *Expr
	Child       *Expr

	// Duration is the DUR qualifier's threshold, in milliseconds.
	Duration int64
	// deadline is mutable evaluation scratch for KindDur: the absolute time
	// (in the same clock the caller passes to InputEvent/Timeout) at which
	// the node will report true, or 0 if not currently armed. It is set and
	// cleared exclusively by [Context.evalExpr].
	deadline int64

	// Typecode is valid only while Kind == KindPrimary.
	Typecode Typecode
	// StateIndex is valid only while Kind == KindCInfo.
	StateIndex int

	// Match carries the comparator and literal for both leaf kinds.
	Match Match
}

// NewOr, NewXor, NewAnd build binary boolean nodes.
func NewOr(l, r *Expr) *Expr  { return &Expr{Kind: KindOr, Left: l, Right: r} }
func NewXor(l, r *Expr) *Expr { return &Expr{Kind: KindXor, Left: l, Right: r} }
func NewAnd(l, r *Expr) *Expr { return &Expr{Kind: KindAnd, Left: l, Right: r} }

// NewNot builds a negation node.
func NewNot(child *Expr) *Expr { return &Expr{Kind: KindNot, Child: child} }

// NewDur builds a duration qualifier requiring child to hold for durationMS.
func NewDur(durationMS int64, child *Expr) *Expr {
	return &Expr{Kind: KindDur, Duration: durationMS, Child: child}
}

// NewPrimary builds an unresolved leaf comparator over a typecode. It is
// only valid prior to [NewContext]; afterward every reachable KindPrimary
// has been rewritten into a KindCInfo.
func NewPrimary(tc Typecode, cmp Comparator, value int32) *Expr {
	return &Expr{Kind: KindPrimary, Typecode: tc, Match: Match{Cmp: cmp, Value: value}}
}

// armed reports whether this DUR node currently has a live deadline, i.e.
// whether it belongs in the context's duration set. Only meaningful for
// KindDur nodes.
func (e *Expr) armed() bool {
	return e.deadline != 0
}
