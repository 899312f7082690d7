package evreactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyBinding(tc Typecode, value int32, command string) *Binding {
	return &Binding{Expr: NewPrimary(tc, CmpEQ, value), Command: command}
}

func TestMatch_Compare(t *testing.T) {
	cases := []struct {
		cmp   Comparator
		value int32
		state int32
		want  bool
	}{
		{CmpEQ, 5, 5, true},
		{CmpEQ, 5, 4, false},
		{CmpNE, 5, 4, true},
		{CmpNE, 5, 5, false},
		{CmpLT, 5, 4, true},
		{CmpLT, 5, 5, false},
		{CmpGT, 5, 6, true},
		{CmpGT, 5, 5, false},
		{CmpLE, 5, 5, true},
		{CmpLE, 5, 6, false},
		{CmpGE, 5, 5, true},
		{CmpGE, 5, 4, false},
	}
	for _, c := range cases {
		m := Match{Cmp: c.cmp, Value: c.value}
		assert.Equal(t, c.want, m.compare(c.state), "cmp=%s value=%d state=%d", c.cmp, c.value, c.state)
	}
}

func TestContext_OrNoShortCircuit(t *testing.T) {
	keyA := NewTypecode(1, 30)
	keyB := NewTypecode(1, 48)

	dur := NewDur(100, NewPrimary(keyB, CmpEQ, 1))
	b := &Binding{Expr: NewOr(NewPrimary(keyA, CmpEQ, 1), dur), Command: "true"}

	ctx, err := NewContext([]*Binding{b})
	require.NoError(t, err)

	// Left side true keeps the OR true, but the DUR on the right must still
	// arm - no short-circuiting - so it can independently fire later.
	ctx.InputEvent(keyA, 1, 0)
	assert.True(t, b.LastTruth)

	ctx.InputEvent(keyB, 1, 10)
	assert.True(t, dur.armed(), "DUR must arm even though OR was already true via the left branch")
}

func TestContext_DurFiresAfterThreshold(t *testing.T) {
	tc := NewTypecode(1, 30)
	b := &Binding{Expr: NewDur(200, NewPrimary(tc, CmpEQ, 1)), Command: "run"}

	ctx, err := NewContext([]*Binding{b})
	require.NoError(t, err)

	ctx.InputEvent(tc, 1, 0)
	assert.False(t, b.LastTruth, "must not fire before the duration elapses")

	wait := ctx.Timeout(150)
	assert.False(t, b.LastTruth)
	assert.Equal(t, int64(50), wait)

	ctx.Timeout(200)
	assert.True(t, b.LastTruth, "must fire once now >= deadline")
}

func TestContext_DurPostFireDeadlineStaysNonZero(t *testing.T) {
	// Documented quirk (not a bug): once a DUR node fires, its deadline
	// field stays non-zero - and it is not re-armed - until its child goes
	// false, so repeated Timeout calls keep reporting true for free.
	tc := NewTypecode(1, 30)
	d := NewDur(100, NewPrimary(tc, CmpEQ, 1))
	b := &Binding{Expr: d, Command: "run"}

	ctx, err := NewContext([]*Binding{b})
	require.NoError(t, err)

	ctx.InputEvent(tc, 1, 0)
	ctx.Timeout(100)
	require.True(t, b.LastTruth)
	require.True(t, d.armed())

	// A later Timeout call with the child still true must keep reporting
	// true, and must not re-add the node to the duration set.
	wait := ctx.Timeout(500)
	assert.Equal(t, NoWait, wait)
	assert.True(t, d.armed())

	// Child going false disarms it.
	ctx.InputEvent(tc, 0, 600)
	assert.False(t, d.armed())
}

func TestContext_DurDisarmsOnFallingEdge(t *testing.T) {
	tc := NewTypecode(1, 30)
	d := NewDur(1000, NewPrimary(tc, CmpEQ, 1))
	b := &Binding{Expr: d}

	ctx, err := NewContext([]*Binding{b})
	require.NoError(t, err)

	ctx.InputEvent(tc, 1, 0)
	assert.True(t, d.armed())

	ctx.InputEvent(tc, 0, 10)
	assert.False(t, d.armed(), "falling edge before the deadline must disarm, not fire")
}

func TestBinding_LatchesOnRisingEdgeOnly(t *testing.T) {
	tc := NewTypecode(1, 30)
	var runs []string
	run := commandRunnerFunc(func(cmd string) error {
		runs = append(runs, cmd)
		return nil
	})

	b := keyBinding(tc, 1, "fire")
	ctx, err := NewContext([]*Binding{b}, WithCommandRunner(run))
	require.NoError(t, err)

	ctx.InputEvent(tc, 1, 0)
	ctx.InputEvent(tc, 1, 1) // repeated true value: no re-evaluation (cached)
	ctx.InputEvent(tc, 0, 2)
	ctx.InputEvent(tc, 1, 3)

	assert.Equal(t, []string{"fire", "fire"}, runs)
}

type commandRunnerFunc func(string) error

func (f commandRunnerFunc) Run(command string) error { return f(command) }
