package icumsgfmt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyrocat101/icumsgfmt/ast"
)

func TestParseSimpleMessage(t *testing.T) {
	got, err := Parse("Hello, {name}!")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.IsType(t, &ast.Literal{}, got[0])
	require.IsType(t, &ast.Argument{}, got[1])
	require.IsType(t, &ast.Literal{}, got[2])
}

func TestParseWithIgnoreTagOption(t *testing.T) {
	got, err := Parse("<b>hi</b>", Option{ShouldIgnoreTag: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	lit, ok := got[0].(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, "<b>hi</b>", lit.Value)
}

func TestParsePropagatesError(t *testing.T) {
	_, err := Parse("{")
	require.Error(t, err)
}
