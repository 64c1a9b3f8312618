package parser

import (
	"strings"
	"unicode"

	"github.com/pyrocat101/icumsgfmt/ast"
)

// parseNumberSkeletonFromString tokenizes the text following `::` in a
// number argument style: split on whitespace runs into tokens, then each
// token on '/' into a stem and its options. An empty skeleton, or a token
// with an empty option segment, is an error.
func parseNumberSkeletonFromString(skeleton string, span ast.Span) (*ast.NumberSkeleton, ErrorKind) {
	if skeleton == "" {
		return nil, ExpectNumberSkeleton
	}

	rawTokens := strings.FieldsFunc(skeleton, unicode.IsSpace)
	tokens := make([]ast.NumberSkeletonToken, 0, len(rawTokens))
	for _, raw := range rawTokens {
		parts := strings.Split(raw, "/")
		stem := parts[0]
		options := make([]string, 0, len(parts)-1)
		for _, opt := range parts[1:] {
			if opt == "" {
				return nil, InvalidNumberSkeleton
			}
			options = append(options, opt)
		}
		tokens = append(tokens, ast.NumberSkeletonToken{Stem: stem, Options: options})
	}

	return &ast.NumberSkeleton{Tokens: tokens, Span: span}, ""
}
