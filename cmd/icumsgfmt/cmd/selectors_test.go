package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pyrocat101/icumsgfmt/ast"
	"github.com/pyrocat101/icumsgfmt/parser"
)

func TestStrangeSelector(t *testing.T) {
	cases := map[string]bool{
		"other": false,
		"one":   false,
		"=0":    false,
		"=42":   false,
		"":      true,
		"=":     true,
		"=1a":   true,
		"a b":   true,
	}
	for selector, want := range cases {
		assert.Equalf(t, want, strangeSelector(selector), "strangeSelector(%q)", selector)
	}
}

func TestCheckSelectorsFindsNothingOnWellFormedMessage(t *testing.T) {
	msg, err := parser.New("{count, plural, one {# item} other {# items}}", nil).Parse()
	assert.NoError(t, err)
	assert.Empty(t, checkSelectors(msg))
}

func TestCheckSelectorsWalksNestedTagsAndSelects(t *testing.T) {
	msg := ast.Message{
		&ast.Tag{
			Name: "b",
			Children: ast.Message{
				&ast.Select{
					Name: "gender",
					Options: ast.OptionList{
						{Selector: "=-1", Body: ast.OptionBody{}},
					},
				},
			},
		},
	}
	assert.Len(t, checkSelectors(msg), 1)
}

func TestCanonicalLocales(t *testing.T) {
	got := canonicalLocales([]string{"en-US", "pt-BR"})
	assert.Equal(t, []string{"en-US", "pt-BR"}, got)
}
