package cmd

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/pyrocat101/icumsgfmt/ast"
)

// strangeSelector reports whether selector is neither an ASCII identifier
// (letters, digits, '_') nor an "=N" exact-match form with unsigned decimal
// digits. The parser accepts more than that: any run of non-whitespace,
// non-Pattern_Syntax characters (so non-ASCII identifiers too) and "="
// followed by a signed decimal integer such as "=-1". Those accepted
// selectors are what this stricter shape check fires on. It exists so
// --strict has something concrete to flag without reaching into CLDR
// plural-category resolution, which stays out of scope.
func strangeSelector(selector string) bool {
	if strings.HasPrefix(selector, "=") {
		_, ok := parseDecimalTail(selector[1:])
		return !ok
	}
	for _, r := range selector {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			continue
		}
		return true
	}
	return selector == ""
}

func parseDecimalTail(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	return len(s), true
}

// selectorWarning names one Plural/Select argument selector that failed
// the --strict shape check, plus the byte offset of that option's body.
type selectorWarning struct {
	Name     string
	Selector string
	Offset   uint
}

// checkSelectors walks msg recursively (into tag children and plural/select
// option bodies) collecting selectorWarnings.
func checkSelectors(msg ast.Message) []selectorWarning {
	var warnings []selectorWarning
	var walk func(ast.Message)
	walk = func(m ast.Message) {
		for _, el := range m {
			switch node := el.(type) {
			case *ast.Plural:
				for _, opt := range node.Options {
					if strangeSelector(opt.Selector) {
						warnings = append(warnings, selectorWarning{Name: node.Name, Selector: opt.Selector, Offset: opt.Body.Span.Start.Offset})
					}
					walk(opt.Body.Value)
				}
			case *ast.Select:
				for _, opt := range node.Options {
					if strangeSelector(opt.Selector) {
						warnings = append(warnings, selectorWarning{Name: node.Name, Selector: opt.Selector, Offset: opt.Body.Span.Start.Offset})
					}
					walk(opt.Body.Value)
				}
			case *ast.Tag:
				walk(node.Children)
			}
		}
	}
	walk(msg)
	return warnings
}

// canonicalLocales parses and canonicalizes each configured locale tag,
// giving golang.org/x/text/language a real job in the --strict path: citing
// the canonical BCP-47 form a warning was checked against. Config loading
// already rejects malformed tags (see config.go), so every tag Make receives
// here is well-formed.
func canonicalLocales(tags []string) []string {
	out := make([]string, len(tags))
	for i, raw := range tags {
		tag := language.Make(raw)
		out[i] = tag.String()
	}
	return out
}
