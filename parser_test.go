package evreactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SugarIsEqOne(t *testing.T) {
	bindings, err := Parse("KEY_A <= echo hi\n")
	require.NoError(t, err)
	require.Len(t, bindings, 1)

	m := bindings[0].Expr.Match
	assert.Equal(t, CmpEQ, m.Cmp)
	assert.Equal(t, int32(1), m.Value)
	assert.Equal(t, "echo hi", bindings[0].Command)
}

func TestParse_ExplicitComparator(t *testing.T) {
	bindings, err := Parse("ABS_X:ge 200 <= echo moved\n")
	require.NoError(t, err)
	require.Len(t, bindings, 1)

	m := bindings[0].Expr.Match
	assert.Equal(t, CmpGE, m.Cmp)
	assert.Equal(t, int32(200), m.Value)
}

func TestParse_BareZeroIsEqZero(t *testing.T) {
	bindings, err := Parse("KEY_A:0 <= echo released\n")
	require.NoError(t, err)
	m := bindings[0].Expr.Match
	assert.Equal(t, CmpEQ, m.Cmp)
	assert.Equal(t, int32(0), m.Value)
}

func TestParse_OperatorPrecedence(t *testing.T) {
	// OR binds loosest, then XOR, then AND, then NOT/postfix tightest:
	// "a | b ^ c & !d" parses as a | (b ^ (c & (!d))).
	bindings, err := Parse("KEY_A | KEY_B ^ KEY_C & !KEY_D <= echo x\n")
	require.NoError(t, err)
	e := bindings[0].Expr

	require.Equal(t, KindOr, e.Kind)
	require.Equal(t, KindPrimary, e.Left.Kind) // KEY_A
	require.Equal(t, KindXor, e.Right.Kind)

	xor := e.Right
	require.Equal(t, KindPrimary, xor.Left.Kind) // KEY_B
	require.Equal(t, KindAnd, xor.Right.Kind)

	and := xor.Right
	require.Equal(t, KindPrimary, and.Left.Kind) // KEY_C
	require.Equal(t, KindNot, and.Right.Kind)
	require.Equal(t, KindPrimary, and.Right.Child.Kind) // KEY_D
}

func TestParse_Grouping(t *testing.T) {
	bindings, err := Parse("(KEY_A | KEY_B) & KEY_C <= echo x\n")
	require.NoError(t, err)
	e := bindings[0].Expr
	require.Equal(t, KindAnd, e.Kind)
	require.Equal(t, KindOr, e.Left.Kind)
}

func TestParse_DurationSeconds(t *testing.T) {
	bindings, err := Parse("KEY_A[2s] <= echo held\n")
	require.NoError(t, err)
	e := bindings[0].Expr
	require.Equal(t, KindDur, e.Kind)
	assert.Equal(t, int64(2000), e.Duration)
}

func TestParse_DurationMillis(t *testing.T) {
	bindings, err := Parse("KEY_A[250ms] <= echo held\n")
	require.NoError(t, err)
	e := bindings[0].Expr
	require.Equal(t, KindDur, e.Kind)
	assert.Equal(t, int64(250), e.Duration)
}

func TestParse_CommentsAndWhitespaceElided(t *testing.T) {
	src := "# a leading comment\n\n  KEY_A <= echo hi # trailing\nKEY_B <= echo bye\n"
	bindings, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, "echo hi # trailing", bindings[0].Command, "comment markers inside the command text are not comments")
	assert.Equal(t, "echo bye", bindings[1].Command)
}

func TestParse_CommentOnlyLineAfterArrowIsSkipped(t *testing.T) {
	// Documented quirk: whitespace/comment elision after "<=" also eats a
	// comment-only line, so the command is taken from the next line.
	src := "KEY_A <= # just a comment\necho actual-command\n"
	bindings, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, "echo actual-command", bindings[0].Command)
}

func TestParse_MultipleBindings(t *testing.T) {
	src := "KEY_A <= echo a\nKEY_B <= echo b\nKEY_C <= echo c\n"
	bindings, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, bindings, 3)
}

func TestParse_UnknownEventName(t *testing.T) {
	_, err := Parse("NOT_A_REAL_EVENT <= echo x\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEventName)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParse_MissingArrow(t *testing.T) {
	_, err := Parse("KEY_A echo x\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingArrow)
}

func TestParse_UnterminatedGroup(t *testing.T) {
	_, err := Parse("(KEY_A <= echo x\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnterminatedGroup)
}

func TestParse_EmptyExpressionAfterNot(t *testing.T) {
	_, err := Parse("! <= echo x\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyExpression)
}

func TestParse_DanglingOperatorIsError(t *testing.T) {
	_, err := Parse("KEY_A & <= echo x\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyExpression)
}

func TestParse_MalformedDuration(t *testing.T) {
	_, err := Parse("KEY_A[abc] <= echo x\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedDuration)
}

func TestParse_NoBindings(t *testing.T) {
	_, err := Parse("   \n# just a comment\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoBindings)
}

func TestParse_HexValue(t *testing.T) {
	bindings, err := Parse("ABS_X:eq 0x10 <= echo x\n")
	require.NoError(t, err)
	assert.Equal(t, int32(16), bindings[0].Expr.Match.Value)
}
