package evreactor

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext_SortsStatesAndResolvesPrimaries(t *testing.T) {
	high := NewTypecode(1, 200)
	low := NewTypecode(1, 10)

	b1 := keyBinding(high, 1, "a")
	b2 := keyBinding(low, 1, "b")

	ctx, err := NewContext([]*Binding{b1, b2})
	require.NoError(t, err)

	states := ctx.States()
	require.Len(t, states, 2)
	assert.Less(t, states[0].Typecode, states[1].Typecode, "state table must be sorted ascending by typecode")
	assert.Equal(t, low, states[0].Typecode)
	assert.Equal(t, high, states[1].Typecode)

	assert.Equal(t, KindCInfo, b1.Expr.Kind, "NewContext must rewrite every reachable KindPrimary into KindCInfo")
	assert.Equal(t, KindCInfo, b2.Expr.Kind)
}

func TestNewContext_RejectsNilExpr(t *testing.T) {
	_, err := NewContext([]*Binding{{Expr: nil}})
	require.Error(t, err)
	var initErr *InitError
	assert.ErrorAs(t, err, &initErr)
	assert.ErrorIs(t, err, ErrEmptyExpression)
}

func TestContext_InputEvent_UnknownTypecodeIgnored(t *testing.T) {
	tc := NewTypecode(1, 30)
	other := NewTypecode(1, 31)
	b := keyBinding(tc, 1, "fire")

	ctx, err := NewContext([]*Binding{b})
	require.NoError(t, err)

	wait := ctx.InputEvent(other, 1, 0)
	assert.Equal(t, NoWait, wait)
	assert.False(t, b.LastTruth)
}

func TestContext_SharedTypecodeFansOutToAllListeners(t *testing.T) {
	tc := NewTypecode(1, 30)
	b1 := keyBinding(tc, 1, "one")
	b2 := &Binding{Expr: NewNot(NewPrimary(tc, CmpEQ, 1)), Command: "two"}

	ctx, err := NewContext([]*Binding{b1, b2})
	require.NoError(t, err)

	ctx.InputEvent(tc, 1, 0)
	assert.True(t, b1.LastTruth)
	assert.False(t, b2.LastTruth)
}

func TestContext_XorAndAndComposition(t *testing.T) {
	a := NewTypecode(1, 30)
	c := NewTypecode(1, 31)

	xorB := &Binding{Expr: NewXor(NewPrimary(a, CmpEQ, 1), NewPrimary(c, CmpEQ, 1))}
	andB := &Binding{Expr: NewAnd(NewPrimary(a, CmpEQ, 1), NewPrimary(c, CmpEQ, 1))}

	ctx, err := NewContext([]*Binding{xorB, andB})
	require.NoError(t, err)

	ctx.InputEvent(a, 1, 0)
	assert.True(t, xorB.LastTruth)
	assert.False(t, andB.LastTruth)

	ctx.InputEvent(c, 1, 1)
	assert.False(t, xorB.LastTruth, "both true must flip XOR back to false")
	assert.True(t, andB.LastTruth)
}

func TestContext_Timeout_ReevaluatesEveryBinding(t *testing.T) {
	tc := NewTypecode(1, 30)
	b := &Binding{Expr: NewDur(50, NewPrimary(tc, CmpEQ, 1))}

	ctx, err := NewContext([]*Binding{b})
	require.NoError(t, err)

	ctx.InputEvent(tc, 1, 0)
	wait := ctx.Timeout(10)
	assert.Equal(t, int64(40), wait)

	wait = ctx.Timeout(60)
	assert.Equal(t, NoWait, wait)
	assert.True(t, b.LastTruth)
}

func TestContext_NextTimeout_ReturnsZeroWhenPastDue(t *testing.T) {
	a := NewTypecode(1, 30)
	c := NewTypecode(1, 31)

	b1 := &Binding{Expr: NewDur(100, NewPrimary(a, CmpEQ, 1))}
	b2 := &Binding{Expr: NewDur(10, NewPrimary(c, CmpEQ, 1))}

	ctx, err := NewContext([]*Binding{b1, b2})
	require.NoError(t, err)

	ctx.InputEvent(a, 1, 0)
	ctx.InputEvent(c, 1, 0)

	// b2's deadline (10) has already passed by t=50; b1's (100) hasn't.
	wait := ctx.nextTimeout(50)
	assert.Equal(t, int64(0), wait)
}

func TestCommandRunner_ErrorIsLoggedNotPropagated(t *testing.T) {
	tc := NewTypecode(1, 30)
	wantErr := errors.New("boom")
	run := commandRunnerFunc(func(string) error { return wantErr })

	b := keyBinding(tc, 1, "fire")
	var logs bytes.Buffer
	ctx, err := NewContext([]*Binding{b}, WithCommandRunner(run), WithLogger(NewTextLogger(&logs, LevelDebug)))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		ctx.InputEvent(tc, 1, 0)
	})
	assert.True(t, b.LastTruth)
	assert.Contains(t, logs.String(), "command failed")
}
