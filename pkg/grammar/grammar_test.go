package grammar_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/synlex/pkg/grammar"
)

func TestMatchOperator_LongestPrefix(t *testing.T) {
	t.Parallel()

	rust := grammar.Rust()

	tests := []struct {
		src  string
		want string
		kind grammar.OperatorKind
	}{
		{"..=10", "..=", grammar.OpRange},
		{"...", "...", grammar.OpRange},
		{"..x", "..", grammar.OpRange},
		{".x", ".", grammar.OpPath},
		{"<<= 1", "<<=", grammar.OpAssignment},
		{"<< 1", "<<", grammar.OpBitwise},
		{"<x", "<", grammar.OpComparison},
		{"::new", "::", grammar.OpPath},
		{"=>", "=>", grammar.OpArrow},
		{"==", "==", grammar.OpComparison},
	}

	for _, testCase := range tests {
		t.Run(testCase.src, func(t *testing.T) {
			t.Parallel()

			op, ok := rust.MatchOperator(testCase.src)
			require.True(t, ok)
			assert.Equal(t, testCase.want, op.Text)
			assert.Equal(t, testCase.kind, op.Kind)
		})
	}

	_, ok := rust.MatchOperator("abc")
	assert.False(t, ok)
}

func TestNew_ContextualNeverShadowsStrict(t *testing.T) {
	t.Parallel()

	g := grammar.New(grammar.Spec{
		Name:     "Toy",
		Keywords: []string{"fn"},
		Contextual: []grammar.ContextualKeyword{
			{Word: "fn", NotAfter: []string{"."}},
			{Word: "soft"},
		},
		Extensions: []string{"TOY", " .tz ", ""},
	})

	assert.Equal(t, "toy", g.Name)
	assert.True(t, g.IsKeyword("fn"))

	_, ok := g.Contextual("fn")
	assert.False(t, ok)
	_, ok = g.Contextual("soft")
	assert.True(t, ok)

	assert.Equal(t, []string{".toy", ".tz"}, g.Extensions)
	assert.True(t, g.HasExtension(".TZ"))
}

func TestOperatorKind_Names(t *testing.T) {
	t.Parallel()

	for _, kind := range []grammar.OperatorKind{
		grammar.OpArithmetic, grammar.OpComparison, grammar.OpLogical,
		grammar.OpBitwise, grammar.OpAssignment, grammar.OpPath,
		grammar.OpArrow, grammar.OpRange, grammar.OpOther,
	} {
		parsed, ok := grammar.ParseOperatorKind(strings.ToUpper(kind.String()))
		assert.True(t, ok, kind.String())
		assert.Equal(t, kind, parsed)
	}

	_, ok := grammar.ParseOperatorKind("sideways")
	assert.False(t, ok)
	assert.Equal(t, "unknown", grammar.OperatorKind(99).String())
}

func TestBuiltins(t *testing.T) {
	t.Parallel()

	rust := grammar.Rust()
	assert.True(t, rust.IsKeyword("fn"))
	assert.False(t, rust.IsKeyword("union"))
	assert.True(t, rust.IsPunctuation('#'))
	assert.False(t, rust.IsPunctuation('+'))
	assert.True(t, rust.Rules.NestedBlockComments)

	goGrammar := grammar.Go()
	assert.True(t, goGrammar.IsKeyword("func"))
	assert.True(t, goGrammar.Rules.BacktickRawStrings)
	assert.False(t, goGrammar.Rules.Macros)
	assert.False(t, goGrammar.IsPunctuation('#'))

	ops := rust.Operators()
	for i := 1; i < len(ops); i++ {
		assert.GreaterOrEqual(t, len(ops[i-1].Text), len(ops[i].Text), "operators are longest first")
	}
}
