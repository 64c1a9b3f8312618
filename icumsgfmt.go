// Package icumsgfmt parses ICU MessageFormat patterns into an abstract
// syntax tree, without performing any locale-aware formatting or
// evaluation.
package icumsgfmt

import (
	"github.com/pyrocat101/icumsgfmt/ast"
	"github.com/pyrocat101/icumsgfmt/parser"
)

// Option configures Parse. The zero value of each field keeps the
// grammar's default behavior.
type Option = parser.Options

// Parse parses message and returns its AST, or the first error the parser
// encountered. opts may be omitted entirely; passing more than one Option
// is a programmer error and only the first is used.
func Parse(message string, opts ...Option) (ast.Message, error) {
	var options *Option
	if len(opts) > 0 {
		options = &opts[0]
	}
	return parser.New(message, options).Parse()
}
